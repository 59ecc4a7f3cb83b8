package repository

import (
	"context"
	"fmt"
	"time"

	"airops-service/internal/domain/entity"
	"airops-service/internal/domain/repository"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoSentEmailRepository implements the SentEmailRepository interface
type MongoSentEmailRepository struct {
	collection *mongo.Collection
}

// NewMongoSentEmailRepository creates a new MongoDB sent email repository
func NewMongoSentEmailRepository(db *mongo.Database) repository.SentEmailRepository {
	collection := db.Collection("sentEmails")

	ctx := context.Background()

	// Index on pnr for resend lookups
	pnrIndex := mongo.IndexModel{
		Keys: bson.D{
			{Key: "pnr", Value: 1},
			{Key: "sentAt", Value: -1},
		},
	}

	// Index on sentAt for listing
	sentAtIndex := mongo.IndexModel{
		Keys: bson.M{"sentAt": -1},
	}

	collection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		pnrIndex,
		sentAtIndex,
	})

	return &MongoSentEmailRepository{
		collection: collection,
	}
}

// Save saves a sent email record
func (r *MongoSentEmailRepository) Save(ctx context.Context, email *entity.SentEmail) error {
	if email.ID == "" {
		email.ID = uuid.NewString()
	}
	if email.SentAt.IsZero() {
		email.SentAt = time.Now()
	}

	_, err := r.collection.InsertOne(ctx, email)
	if err != nil {
		return fmt.Errorf("failed to save sent email: %w", err)
	}
	return nil
}

// FindLastByPNR finds the most recent email sent for a booking
func (r *MongoSentEmailRepository) FindLastByPNR(ctx context.Context, pnr string) (*entity.SentEmail, error) {
	var email entity.SentEmail
	opts := options.FindOne().SetSort(bson.D{{Key: "sentAt", Value: -1}})
	err := r.collection.FindOne(ctx, bson.M{"pnr": pnr}, opts).Decode(&email)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("sent email for %s: %w", pnr, repository.ErrNotFound)
		}
		return nil, err
	}
	return &email, nil
}

// List returns the most recent sent emails first
func (r *MongoSentEmailRepository) List(ctx context.Context, limit int) ([]entity.SentEmail, error) {
	opts := options.Find().SetSort(bson.D{{Key: "sentAt", Value: -1}})
	if limit > 0 {
		opts.SetLimit(int64(limit))
	}

	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var emails []entity.SentEmail
	if err := cursor.All(ctx, &emails); err != nil {
		return nil, err
	}
	return emails, nil
}

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

// MongoLogRepository implements the append-only LogRepository
type MongoLogRepository struct {
	collection *mongo.Collection
}

// NewMongoLogRepository creates a new MongoDB log repository
func NewMongoLogRepository(db *mongo.Database) repository.LogRepository {
	collection := db.Collection("operationLogs")

	ctx := context.Background()

	// Audit trail lookups join on itemId
	itemIndex := mongo.IndexModel{
		Keys: bson.D{
			{Key: "itemId", Value: 1},
			{Key: "timestamp", Value: 1},
		},
	}

	timestampIndex := mongo.IndexModel{
		Keys: bson.M{"timestamp": -1},
	}

	collection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		itemIndex,
		timestampIndex,
	})

	return &MongoLogRepository{
		collection: collection,
	}
}

// Append inserts a log entry
func (r *MongoLogRepository) Append(ctx context.Context, entry *entity.LogEntry) error {
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now()
	}

	if _, err := r.collection.InsertOne(ctx, entry); err != nil {
		return fmt.Errorf("failed to append log entry: %w", err)
	}
	return nil
}

// List returns the newest entries first
func (r *MongoLogRepository) List(ctx context.Context, limit int) ([]entity.LogEntry, error) {
	opts := options.Find().SetSort(bson.D{{Key: "timestamp", Value: -1}})
	if limit > 0 {
		opts.SetLimit(int64(limit))
	}

	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var entries []entity.LogEntry
	if err := cursor.All(ctx, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// FindByItemID returns an item's entries oldest first
func (r *MongoLogRepository) FindByItemID(ctx context.Context, itemID string) ([]entity.LogEntry, error) {
	opts := options.Find().SetSort(bson.D{{Key: "timestamp", Value: 1}})
	cursor, err := r.collection.Find(ctx, bson.M{"itemId": itemID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var entries []entity.LogEntry
	if err := cursor.All(ctx, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

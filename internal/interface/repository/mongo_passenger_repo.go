package repository

import (
	"context"
	"fmt"
	"time"

	"airops-service/internal/domain/entity"
	"airops-service/internal/domain/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoPassengerRepository implements PassengerRepository
type MongoPassengerRepository struct {
	collection *mongo.Collection
}

// NewMongoPassengerRepository creates a new booking row repository
func NewMongoPassengerRepository(db *mongo.Database) repository.PassengerRepository {
	collection := db.Collection("passengers")

	ctx := context.Background()
	pnrIndex := mongo.IndexModel{
		Keys: bson.M{"pnr": 1},
	}
	collection.Indexes().CreateOne(ctx, pnrIndex)

	return &MongoPassengerRepository{
		collection: collection,
	}
}

// CreateBookings inserts every booking row of a commit
func (r *MongoPassengerRepository) CreateBookings(ctx context.Context, passengers []entity.Passenger) error {
	if len(passengers) == 0 {
		return nil
	}

	now := time.Now()
	docs := make([]interface{}, 0, len(passengers))
	for _, p := range passengers {
		if p.CreatedAt.IsZero() {
			p.CreatedAt = now
		}
		docs = append(docs, p)
	}

	if _, err := r.collection.InsertMany(ctx, docs); err != nil {
		return fmt.Errorf("failed to create bookings: %w", err)
	}
	return nil
}

// FindByPNR returns every row of a booking
func (r *MongoPassengerRepository) FindByPNR(ctx context.Context, pnr string) ([]entity.Passenger, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"pnr": pnr}, options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var passengers []entity.Passenger
	if err := cursor.All(ctx, &passengers); err != nil {
		return nil, err
	}
	return passengers, nil
}

// ExistsPNR reports whether a booking reference is taken
func (r *MongoPassengerRepository) ExistsPNR(ctx context.Context, pnr string) (bool, error) {
	count, err := r.collection.CountDocuments(ctx, bson.M{"pnr": pnr}, options.Count().SetLimit(1))
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// UpdateBagCount patches the bag count of one row; checked-in rows keep theirs
func (r *MongoPassengerRepository) UpdateBagCount(ctx context.Context, passengerID string, bags int) error {
	set := bson.M{"bagCount": bags}
	if bags > 0 {
		set["bagStatus"] = entity.BagStatusBooked
	}

	filter := bson.M{"_id": passengerID, "bagStatus": bson.M{"$ne": entity.BagStatusChecked}}
	if _, err := r.collection.UpdateOne(ctx, filter, bson.M{"$set": set}); err != nil {
		return fmt.Errorf("failed to update passenger: %w", err)
	}
	return nil
}

// UpdateBagStatus sets bag count and status of one row
func (r *MongoPassengerRepository) UpdateBagStatus(ctx context.Context, passengerID string, bags int, status string) error {
	return r.update(ctx, passengerID, bson.M{"bagCount": bags, "bagStatus": status})
}

func (r *MongoPassengerRepository) update(ctx context.Context, passengerID string, set bson.M) error {
	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": passengerID}, bson.M{"$set": set})
	if err != nil {
		return fmt.Errorf("failed to update passenger: %w", err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("passenger %s: %w", passengerID, repository.ErrNotFound)
	}
	return nil
}

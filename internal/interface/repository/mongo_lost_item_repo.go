package repository

import (
	"context"
	"fmt"
	"regexp"
	"time"

	"airops-service/internal/domain/entity"
	"airops-service/internal/domain/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoLostItemRepository implements LostItemRepository
type MongoLostItemRepository struct {
	collection *mongo.Collection
	counters   *mongo.Collection
}

// NewMongoLostItemRepository creates a new lost item repository
func NewMongoLostItemRepository(db *mongo.Database) repository.LostItemRepository {
	collection := db.Collection("lostItems")

	ctx := context.Background()

	// Unique index on itemNumber
	indexModel := mongo.IndexModel{
		Keys:    bson.M{"itemNumber": 1},
		Options: options.Index().SetUnique(true),
	}
	collection.Indexes().CreateOne(ctx, indexModel)

	// Index on fileReference for file close
	frnIndex := mongo.IndexModel{
		Keys: bson.M{"fileReference": 1},
	}
	collection.Indexes().CreateOne(ctx, frnIndex)

	statusIndex := mongo.IndexModel{
		Keys: bson.M{"status": 1},
	}
	collection.Indexes().CreateOne(ctx, statusIndex)

	return &MongoLostItemRepository{
		collection: collection,
		counters:   db.Collection("counters"),
	}
}

// Create inserts a new item
func (r *MongoLostItemRepository) Create(ctx context.Context, item *entity.LostItem) error {
	now := time.Now()
	if item.CreatedAt.IsZero() {
		item.CreatedAt = now
	}
	item.UpdatedAt = now

	_, err := r.collection.InsertOne(ctx, item)
	if mongo.IsDuplicateKeyError(err) {
		return fmt.Errorf("lost item %s: %w", item.ItemNumber, repository.ErrDuplicate)
	}
	return err
}

// FindByID finds an item by id
func (r *MongoLostItemRepository) FindByID(ctx context.Context, id string) (*entity.LostItem, error) {
	var item entity.LostItem
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&item)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("lost item %s: %w", id, repository.ErrNotFound)
		}
		return nil, err
	}
	return &item, nil
}

// FindByFRN returns every item of a file reference group
func (r *MongoLostItemRepository) FindByFRN(ctx context.Context, frn string) ([]entity.LostItem, error) {
	return r.List(ctx, entity.LostItemFilter{FileReference: frn})
}

// List finds items matching the filter, oldest first
func (r *MongoLostItemRepository) List(ctx context.Context, filter entity.LostItemFilter) ([]entity.LostItem, error) {
	query := bson.M{}
	if filter.Status != "" {
		query["status"] = filter.Status
	}
	if filter.FileReference != "" {
		query["fileReference"] = filter.FileReference
	}
	if filter.Category != "" {
		query["category"] = filter.Category
	}
	if filter.Query != "" {
		pattern := bson.M{"$regex": regexp.QuoteMeta(filter.Query), "$options": "i"}
		query["$or"] = []bson.M{
			{"itemNumber": pattern},
			{"fileReference": pattern},
			{"description": pattern},
			{"passengerName": pattern},
			{"flightNumber": pattern},
			{"claimantName": pattern},
		}
	}

	cursor, err := r.collection.Find(ctx, query, options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var items []entity.LostItem
	if err := cursor.All(ctx, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// Update replaces an item document if it still has the expected status
func (r *MongoLostItemRepository) Update(ctx context.Context, item *entity.LostItem, expected entity.LostItemStatus) error {
	item.UpdatedAt = time.Now()

	result, err := r.collection.ReplaceOne(ctx, bson.M{"_id": item.ID, "status": expected}, item)
	if err != nil {
		return fmt.Errorf("failed to update lost item: %w", err)
	}
	if result.MatchedCount > 0 {
		return nil
	}

	count, err := r.collection.CountDocuments(ctx, bson.M{"_id": item.ID})
	if err != nil {
		return fmt.Errorf("failed to update lost item: %w", err)
	}
	if count == 0 {
		return fmt.Errorf("lost item %s: %w", item.ID, repository.ErrNotFound)
	}
	return fmt.Errorf("%w: item %s is no longer %s", entity.ErrInvalidTransition, item.ItemNumber, expected)
}

// NextSequence atomically increments a named counter
func (r *MongoLostItemRepository) NextSequence(ctx context.Context, name string) (int, error) {
	var counter struct {
		Value int `bson:"value"`
	}

	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	err := r.counters.FindOneAndUpdate(
		ctx,
		bson.M{"_id": name},
		bson.M{"$inc": bson.M{"value": 1}},
		opts,
	).Decode(&counter)
	if err != nil {
		return 0, fmt.Errorf("failed to increment sequence %s: %w", name, err)
	}
	return counter.Value, nil
}

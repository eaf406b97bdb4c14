package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/shashiranjanraj/skirmish/app/models"
	"github.com/shashiranjanraj/skirmish/pkg/metrics"
)

// ItemRepository persists catalog items in the "items" collection.
type ItemRepository struct {
	col *mongo.Collection
}

func NewItemRepository(db *mongo.Database) *ItemRepository {
	return &ItemRepository{col: db.Collection("items")}
}

func (r *ItemRepository) Insert(ctx context.Context, i *models.Item) error {
	defer metrics.ObserveStoreOp("items", "insert", time.Now())

	res, err := r.col.InsertOne(ctx, i)
	if err != nil {
		return fmt.Errorf("items: insert: %w", err)
	}
	if id, ok := res.InsertedID.(primitive.ObjectID); ok {
		i.ID = id
	}
	return nil
}

func (r *ItemRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Item, error) {
	defer metrics.ObserveStoreOp("items", "findByID", time.Now())

	var i models.Item
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&i)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("items: find by id: %w", err)
	}
	return &i, nil
}

func (r *ItemRepository) FindAll(ctx context.Context) ([]models.Item, error) {
	defer metrics.ObserveStoreOp("items", "findAll", time.Now())

	cur, err := r.col.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("items: find all: %w", err)
	}
	all := []models.Item{}
	if err := cur.All(ctx, &all); err != nil {
		return nil, fmt.Errorf("items: decode: %w", err)
	}
	return all, nil
}

func (r *ItemRepository) Update(ctx context.Context, i *models.Item) error {
	defer metrics.ObserveStoreOp("items", "update", time.Now())

	_, err := r.col.ReplaceOne(ctx, bson.M{"_id": i.ID}, i)
	if err != nil {
		return fmt.Errorf("items: update: %w", err)
	}
	return nil
}

func (r *ItemRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	defer metrics.ObserveStoreOp("items", "delete", time.Now())

	if _, err := r.col.DeleteOne(ctx, bson.M{"_id": id}); err != nil {
		return fmt.Errorf("items: delete: %w", err)
	}
	return nil
}

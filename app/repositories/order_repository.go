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

// OrderRepository persists orders in the "orders" collection.
type OrderRepository struct {
	col *mongo.Collection
}

func NewOrderRepository(db *mongo.Database) *OrderRepository {
	return &OrderRepository{col: db.Collection("orders")}
}

func (r *OrderRepository) Insert(ctx context.Context, o *models.Order) error {
	defer metrics.ObserveStoreOp("orders", "insert", time.Now())

	res, err := r.col.InsertOne(ctx, o)
	if err != nil {
		return fmt.Errorf("orders: insert: %w", err)
	}
	if id, ok := res.InsertedID.(primitive.ObjectID); ok {
		o.ID = id
	}
	return nil
}

func (r *OrderRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Order, error) {
	defer metrics.ObserveStoreOp("orders", "findByID", time.Now())

	var o models.Order
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&o)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("orders: find by id: %w", err)
	}
	return &o, nil
}

func (r *OrderRepository) FindAll(ctx context.Context) ([]models.Order, error) {
	defer metrics.ObserveStoreOp("orders", "findAll", time.Now())
	return r.find(ctx, bson.M{})
}

func (r *OrderRepository) FindByOwner(ctx context.Context, userID primitive.ObjectID) ([]models.Order, error) {
	defer metrics.ObserveStoreOp("orders", "findByOwner", time.Now())
	return r.find(ctx, bson.M{"userId": userID})
}

func (r *OrderRepository) find(ctx context.Context, filter bson.M) ([]models.Order, error) {
	cur, err := r.col.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("orders: find: %w", err)
	}
	all := []models.Order{}
	if err := cur.All(ctx, &all); err != nil {
		return nil, fmt.Errorf("orders: decode: %w", err)
	}
	return all, nil
}

func (r *OrderRepository) Update(ctx context.Context, o *models.Order) error {
	defer metrics.ObserveStoreOp("orders", "update", time.Now())

	_, err := r.col.ReplaceOne(ctx, bson.M{"_id": o.ID}, o)
	if err != nil {
		return fmt.Errorf("orders: update: %w", err)
	}
	return nil
}

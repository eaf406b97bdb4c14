// Package repositories holds the MongoDB-backed implementations of the
// service store interfaces. Every method maps mongo.ErrNoDocuments to a
// (nil, nil) miss and records its latency in the store metrics.
package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/shashiranjanraj/skirmish/app/models"
	"github.com/shashiranjanraj/skirmish/pkg/metrics"
)

// UserRepository persists users in the "users" collection.
type UserRepository struct {
	col *mongo.Collection
}

func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{col: db.Collection("users")}
}

func (r *UserRepository) Insert(ctx context.Context, u *models.User) error {
	defer metrics.ObserveStoreOp("users", "insert", time.Now())

	res, err := r.col.InsertOne(ctx, u)
	if err != nil {
		return fmt.Errorf("users: insert: %w", err)
	}
	if id, ok := res.InsertedID.(primitive.ObjectID); ok {
		u.ID = id
	}
	return nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	defer metrics.ObserveStoreOp("users", "findByEmail", time.Now())

	var u models.User
	err := r.col.FindOne(ctx, bson.M{"email": email}).Decode(&u)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("users: find by email: %w", err)
	}
	return &u, nil
}

func (r *UserRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	defer metrics.ObserveStoreOp("users", "findByID", time.Now())

	var u models.User
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&u)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("users: find by id: %w", err)
	}
	return &u, nil
}

func (r *UserRepository) UpdatePassword(ctx context.Context, id primitive.ObjectID, hash string) (*models.User, error) {
	defer metrics.ObserveStoreOp("users", "updatePassword", time.Now())

	after := options.After
	var u models.User
	err := r.col.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"password": hash}},
		options.FindOneAndUpdate().SetReturnDocument(after),
	).Decode(&u)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("users: update password: %w", err)
	}
	return &u, nil
}

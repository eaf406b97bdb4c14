// Package database owns the MongoDB client lifecycle.
package database

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/shashiranjanraj/skirmish/config"
)

// Mongo bundles the connected client and the application database handle.
type Mongo struct {
	Client *mongo.Client
	DB     *mongo.Database
}

// Connect opens a client against MONGO_URI, pings it, and ensures the
// indexes the route layer depends on. Returns an error instead of exiting
// so the caller can shut down gracefully.
func Connect(ctx context.Context) (*Mongo, error) {
	clientOpts := options.Client().ApplyURI(config.MongoURI()).
		SetConnectTimeout(5 * time.Second).
		SetServerSelectionTimeout(5 * time.Second).
		SetMaxPoolSize(25)

	client, err := mongo.Connect(ctx, clientOpts)
	if err != nil {
		return nil, fmt.Errorf("database: connect: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("database: ping: %w", err)
	}

	db := client.Database(config.MongoDB())
	m := &Mongo{Client: client, DB: db}

	if err := m.ensureIndexes(ctx); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}

	return m, nil
}

// ensureIndexes creates the indexes the queries rely on: unique user emails,
// owner-scoped encounter name search, and the reverse-reference scan used by
// the combatant deletion guard.
func (m *Mongo) ensureIndexes(ctx context.Context) error {
	users := m.DB.Collection("users")
	if _, err := users.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	}); err != nil {
		return fmt.Errorf("database: users email index: %w", err)
	}

	encounters := m.DB.Collection("encounters")
	if _, err := encounters.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "userId", Value: 1}, {Key: "name", Value: 1}}},
		{Keys: bson.D{{Key: "combatants._id", Value: 1}}},
	}); err != nil {
		return fmt.Errorf("database: encounter indexes: %w", err)
	}

	orders := m.DB.Collection("orders")
	if _, err := orders.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "userId", Value: 1}},
	}); err != nil {
		return fmt.Errorf("database: orders index: %w", err)
	}

	return nil
}

// Close disconnects the client, flushing in-flight operations.
func (m *Mongo) Close(ctx context.Context) error {
	return m.Client.Disconnect(ctx)
}

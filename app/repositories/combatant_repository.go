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

// CombatantRepository persists catalog combatants in the "combatants"
// collection.
type CombatantRepository struct {
	col *mongo.Collection
}

func NewCombatantRepository(db *mongo.Database) *CombatantRepository {
	return &CombatantRepository{col: db.Collection("combatants")}
}

func (r *CombatantRepository) Insert(ctx context.Context, c *models.Combatant) error {
	defer metrics.ObserveStoreOp("combatants", "insert", time.Now())

	res, err := r.col.InsertOne(ctx, c)
	if err != nil {
		return fmt.Errorf("combatants: insert: %w", err)
	}
	if id, ok := res.InsertedID.(primitive.ObjectID); ok {
		c.ID = id
	}
	return nil
}

func (r *CombatantRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Combatant, error) {
	defer metrics.ObserveStoreOp("combatants", "findByID", time.Now())

	var c models.Combatant
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&c)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("combatants: find by id: %w", err)
	}
	return &c, nil
}

func (r *CombatantRepository) FindAll(ctx context.Context) ([]models.Combatant, error) {
	defer metrics.ObserveStoreOp("combatants", "findAll", time.Now())

	cur, err := r.col.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("combatants: find all: %w", err)
	}
	all := []models.Combatant{}
	if err := cur.All(ctx, &all); err != nil {
		return nil, fmt.Errorf("combatants: decode: %w", err)
	}
	return all, nil
}

func (r *CombatantRepository) Update(ctx context.Context, c *models.Combatant) error {
	defer metrics.ObserveStoreOp("combatants", "update", time.Now())

	_, err := r.col.ReplaceOne(ctx, bson.M{"_id": c.ID}, c)
	if err != nil {
		return fmt.Errorf("combatants: update: %w", err)
	}
	return nil
}

func (r *CombatantRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	defer metrics.ObserveStoreOp("combatants", "delete", time.Now())

	if _, err := r.col.DeleteOne(ctx, bson.M{"_id": id}); err != nil {
		return fmt.Errorf("combatants: delete: %w", err)
	}
	return nil
}

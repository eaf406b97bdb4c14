package repositories

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/shashiranjanraj/skirmish/app/models"
	"github.com/shashiranjanraj/skirmish/pkg/metrics"
)

// EncounterRepository persists encounters in the "encounters" collection.
type EncounterRepository struct {
	col *mongo.Collection
}

func NewEncounterRepository(db *mongo.Database) *EncounterRepository {
	return &EncounterRepository{col: db.Collection("encounters")}
}

func (r *EncounterRepository) Insert(ctx context.Context, e *models.Encounter) error {
	defer metrics.ObserveStoreOp("encounters", "insert", time.Now())

	res, err := r.col.InsertOne(ctx, e)
	if err != nil {
		return fmt.Errorf("encounters: insert: %w", err)
	}
	if id, ok := res.InsertedID.(primitive.ObjectID); ok {
		e.ID = id
	}
	return nil
}

func (r *EncounterRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Encounter, error) {
	defer metrics.ObserveStoreOp("encounters", "findByID", time.Now())

	var e models.Encounter
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&e)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("encounters: find by id: %w", err)
	}
	return &e, nil
}

func (r *EncounterRepository) FindAll(ctx context.Context) ([]models.Encounter, error) {
	defer metrics.ObserveStoreOp("encounters", "findAll", time.Now())
	return r.find(ctx, bson.M{})
}

func (r *EncounterRepository) FindByOwner(ctx context.Context, userID primitive.ObjectID) ([]models.Encounter, error) {
	defer metrics.ObserveStoreOp("encounters", "findByOwner", time.Now())
	return r.find(ctx, bson.M{"userId": userID})
}

func (r *EncounterRepository) SearchByOwnerAndName(ctx context.Context, userID primitive.ObjectID, name string) ([]models.Encounter, error) {
	defer metrics.ObserveStoreOp("encounters", "search", time.Now())

	// The search term is user input; quote it so regex metacharacters
	// match literally.
	filter := bson.M{
		"userId": userID,
		"name": bson.M{
			"$regex":   regexp.QuoteMeta(name),
			"$options": "i",
		},
	}
	return r.find(ctx, filter)
}

func (r *EncounterRepository) find(ctx context.Context, filter bson.M) ([]models.Encounter, error) {
	cur, err := r.col.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("encounters: find: %w", err)
	}
	all := []models.Encounter{}
	if err := cur.All(ctx, &all); err != nil {
		return nil, fmt.Errorf("encounters: decode: %w", err)
	}
	return all, nil
}

func (r *EncounterRepository) Update(ctx context.Context, e *models.Encounter) error {
	defer metrics.ObserveStoreOp("encounters", "update", time.Now())

	_, err := r.col.ReplaceOne(ctx, bson.M{"_id": e.ID}, e)
	if err != nil {
		return fmt.Errorf("encounters: update: %w", err)
	}
	return nil
}

func (r *EncounterRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	defer metrics.ObserveStoreOp("encounters", "delete", time.Now())

	if _, err := r.col.DeleteOne(ctx, bson.M{"_id": id}); err != nil {
		return fmt.Errorf("encounters: delete: %w", err)
	}
	return nil
}

func (r *EncounterRepository) CountReferencing(ctx context.Context, combatantID primitive.ObjectID) (int64, error) {
	defer metrics.ObserveStoreOp("encounters", "countReferencing", time.Now())

	n, err := r.col.CountDocuments(ctx, bson.M{"combatants._id": combatantID})
	if err != nil {
		return 0, fmt.Errorf("encounters: count referencing: %w", err)
	}
	return n, nil
}

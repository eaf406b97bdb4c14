package services

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/shashiranjanraj/skirmish/app/models"
)

// Store interfaces the services depend on. The mongo-backed implementations
// live in app/repositories; in-memory implementations for tests live in
// app/storetest. All Find* methods return (nil, nil) — or an empty slice —
// when nothing matches; errors are reserved for store failures.

type UserStore interface {
	Insert(ctx context.Context, u *models.User) error
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	UpdatePassword(ctx context.Context, id primitive.ObjectID, hash string) (*models.User, error)
}

type CombatantStore interface {
	Insert(ctx context.Context, c *models.Combatant) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Combatant, error)
	FindAll(ctx context.Context) ([]models.Combatant, error)
	Update(ctx context.Context, c *models.Combatant) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

type EncounterStore interface {
	Insert(ctx context.Context, e *models.Encounter) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Encounter, error)
	FindAll(ctx context.Context) ([]models.Encounter, error)
	FindByOwner(ctx context.Context, userID primitive.ObjectID) ([]models.Encounter, error)
	// SearchByOwnerAndName matches the owner's encounters whose name contains
	// the given substring, case-insensitively.
	SearchByOwnerAndName(ctx context.Context, userID primitive.ObjectID, name string) ([]models.Encounter, error)
	Update(ctx context.Context, e *models.Encounter) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	// CountReferencing counts encounters whose roster contains the combatant.
	CountReferencing(ctx context.Context, combatantID primitive.ObjectID) (int64, error)
}

type ItemStore interface {
	Insert(ctx context.Context, i *models.Item) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Item, error)
	FindAll(ctx context.Context) ([]models.Item, error)
	Update(ctx context.Context, i *models.Item) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

type OrderStore interface {
	Insert(ctx context.Context, o *models.Order) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Order, error)
	FindAll(ctx context.Context) ([]models.Order, error)
	FindByOwner(ctx context.Context, userID primitive.ObjectID) ([]models.Order, error)
	Update(ctx context.Context, o *models.Order) error
}

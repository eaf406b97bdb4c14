package services

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/shashiranjanraj/skirmish/app/models"
	"github.com/shashiranjanraj/skirmish/pkg/cache"
)

const (
	combatantListKey   = "skirmish:combatants:all"
	combatantKeyPrefix = "skirmish:combatants:"
	catalogCacheTTL    = 30 * time.Second
)

// CombatantService manages the global combatant catalog. Writes are
// admin-gated at the route layer; reads go through a short-TTL Redis cache
// that degrades to the store when Redis is unavailable.
type CombatantService struct {
	combatants CombatantStore
	encounters EncounterStore
}

func NewCombatantService(combatants CombatantStore, encounters EncounterStore) *CombatantService {
	return &CombatantService{combatants: combatants, encounters: encounters}
}

func (s *CombatantService) Create(ctx context.Context, name string, initiative, hitpoints float64) (*models.Combatant, error) {
	c := &models.Combatant{Name: name, Initiative: initiative, Hitpoints: hitpoints}
	if err := s.combatants.Insert(ctx, c); err != nil {
		return nil, fmt.Errorf("create combatant: %w", err)
	}

	cache.Del(combatantListKey) //nolint:errcheck
	return c, nil
}

func (s *CombatantService) Update(ctx context.Context, id, name string, initiative, hitpoints float64) (*models.Combatant, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrCombatantNotFound
	}

	c, err := s.combatants.FindByID(ctx, oid)
	if err != nil {
		return nil, fmt.Errorf("update combatant: lookup: %w", err)
	}
	if c == nil {
		return nil, ErrCombatantNotFound
	}

	c.Name = name
	c.Initiative = initiative
	c.Hitpoints = hitpoints
	if err := s.combatants.Update(ctx, c); err != nil {
		return nil, fmt.Errorf("update combatant: %w", err)
	}

	cache.Del(combatantListKey, combatantKeyPrefix+id) //nolint:errcheck
	return c, nil
}

// Delete removes a combatant unless any encounter still references it.
// The reference scan and the delete are not transactionally isolated from a
// concurrent encounter write; this TOCTOU window is an accepted
// eventual-consistency tradeoff at this scale.
func (s *CombatantService) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrCombatantNotFound
	}

	c, err := s.combatants.FindByID(ctx, oid)
	if err != nil {
		return fmt.Errorf("delete combatant: lookup: %w", err)
	}
	if c == nil {
		return ErrCombatantNotFound
	}

	refs, err := s.encounters.CountReferencing(ctx, oid)
	if err != nil {
		return fmt.Errorf("delete combatant: reference scan: %w", err)
	}
	if refs > 0 {
		return ErrCombatantInUse
	}

	if err := s.combatants.Delete(ctx, oid); err != nil {
		return fmt.Errorf("delete combatant: %w", err)
	}

	cache.Del(combatantListKey, combatantKeyPrefix+id) //nolint:errcheck
	return nil
}

func (s *CombatantService) Get(ctx context.Context, id string) (*models.Combatant, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrCombatantNotFound
	}

	var cached models.Combatant
	if cache.Get(combatantKeyPrefix+id, &cached) {
		return &cached, nil
	}

	c, err := s.combatants.FindByID(ctx, oid)
	if err != nil {
		return nil, fmt.Errorf("get combatant: %w", err)
	}
	if c == nil {
		return nil, ErrCombatantNotFound
	}

	cache.Set(combatantKeyPrefix+id, c, catalogCacheTTL) //nolint:errcheck
	return c, nil
}

func (s *CombatantService) List(ctx context.Context) ([]models.Combatant, error) {
	var cached []models.Combatant
	if cache.Get(combatantListKey, &cached) {
		return cached, nil
	}

	all, err := s.combatants.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list combatants: %w", err)
	}

	cache.Set(combatantListKey, all, catalogCacheTTL) //nolint:errcheck
	return all, nil
}

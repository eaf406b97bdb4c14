package services

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/shashiranjanraj/skirmish/app/models"
)

// EncounterService orchestrates ownership checks, reference resolution, and
// roster construction for encounters.
type EncounterService struct {
	encounters EncounterStore
	combatants CombatantStore
	users      UserStore
}

func NewEncounterService(encounters EncounterStore, combatants CombatantStore, users UserStore) *EncounterService {
	return &EncounterService{encounters: encounters, combatants: combatants, users: users}
}

// resolveCombatants validates every reference before any lookup
// (all-or-nothing), then resolves each to a stored snapshot. A reference
// that is syntactically valid but absent from the catalog also fails: a
// roster never contains an unresolved entry. Duplicates and order are
// preserved.
func (s *EncounterService) resolveCombatants(ctx context.Context, ids []string) ([]models.Combatant, error) {
	oids := make([]primitive.ObjectID, 0, len(ids))
	for _, id := range ids {
		oid, err := primitive.ObjectIDFromHex(id)
		if err != nil {
			return nil, ErrInvalidReference
		}
		oids = append(oids, oid)
	}

	roster := make([]models.Combatant, 0, len(oids))
	for _, oid := range oids {
		c, err := s.combatants.FindByID(ctx, oid)
		if err != nil {
			return nil, fmt.Errorf("resolve combatant %s: %w", oid.Hex(), err)
		}
		if c == nil {
			return nil, ErrInvalidReference
		}
		roster = append(roster, *c)
	}

	return roster, nil
}

// Create builds and persists an encounter owned by the caller.
func (s *EncounterService) Create(ctx context.Context, ownerID, name string, combatantIDs []string) (*models.Encounter, error) {
	owner, err := primitive.ObjectIDFromHex(ownerID)
	if err != nil {
		return nil, ErrUserNotFound
	}

	roster, err := s.resolveCombatants(ctx, combatantIDs)
	if err != nil {
		return nil, err
	}

	e := &models.Encounter{UserID: owner, Name: name, Combatants: roster}
	if err := s.encounters.Insert(ctx, e); err != nil {
		return nil, fmt.Errorf("create encounter: %w", err)
	}

	return e, nil
}

// Update replaces the encounter's roster (and name, when given) in place,
// preserving its id and owner. Only the owner or an admin may update.
func (s *EncounterService) Update(ctx context.Context, id string, caller Caller, name string, combatantIDs []string) (*models.Encounter, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrEncounterNotFound
	}

	e, err := s.encounters.FindByID(ctx, oid)
	if err != nil {
		return nil, fmt.Errorf("update encounter: lookup: %w", err)
	}
	if e == nil {
		return nil, ErrEncounterNotFound
	}

	if !OwnerOrAdmin(e.UserID, caller) {
		return nil, ErrForbidden
	}

	roster, err := s.resolveCombatants(ctx, combatantIDs)
	if err != nil {
		return nil, err
	}

	e.Combatants = roster
	if name != "" {
		e.Name = name
	}
	if err := s.encounters.Update(ctx, e); err != nil {
		return nil, fmt.Errorf("update encounter: %w", err)
	}

	return e, nil
}

// Get returns the encounter with its roster of combatant snapshots.
// Non-owner non-admin callers get ErrForbidden, which the route layer
// surfaces as 404 so they cannot distinguish "not found" from "not yours".
func (s *EncounterService) Get(ctx context.Context, id string, caller Caller) (*models.Encounter, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrEncounterNotFound
	}

	e, err := s.encounters.FindByID(ctx, oid)
	if err != nil {
		return nil, fmt.Errorf("get encounter: %w", err)
	}
	if e == nil {
		return nil, ErrEncounterNotFound
	}

	if !OwnerOrAdmin(e.UserID, caller) {
		return nil, ErrForbidden
	}

	return e, nil
}

// List returns every encounter for admins, or the caller's own otherwise.
// Full scan, no pagination.
func (s *EncounterService) List(ctx context.Context, caller Caller) ([]models.Encounter, error) {
	if caller.IsAdmin() {
		all, err := s.encounters.FindAll(ctx)
		if err != nil {
			return nil, fmt.Errorf("list encounters: %w", err)
		}
		return all, nil
	}

	owner, err := primitive.ObjectIDFromHex(caller.ID)
	if err != nil {
		return nil, ErrUserNotFound
	}

	own, err := s.encounters.FindByOwner(ctx, owner)
	if err != nil {
		return nil, fmt.Errorf("list encounters: %w", err)
	}
	return own, nil
}

// Search finds the caller's encounters whose name contains the query,
// case-insensitively. The query is already owner-scoped; the per-result
// ownership re-check is a deliberate second authorization layer kept for
// admin-search extensions.
func (s *EncounterService) Search(ctx context.Context, caller Caller, name string) ([]models.Encounter, error) {
	owner, err := primitive.ObjectIDFromHex(caller.ID)
	if err != nil {
		return nil, ErrUserNotFound
	}

	matches, err := s.encounters.SearchByOwnerAndName(ctx, owner, name)
	if err != nil {
		return nil, fmt.Errorf("search encounters: %w", err)
	}

	if len(matches) == 0 {
		return nil, ErrNoMatches
	}

	for _, e := range matches {
		if !OwnerOrAdmin(e.UserID, caller) {
			return nil, ErrForbidden
		}
	}

	return matches, nil
}

// OwnerOf returns the public record of the user owning the encounter.
// Unauthenticated by design.
func (s *EncounterService) OwnerOf(ctx context.Context, id string) (*models.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrEncounterNotFound
	}

	e, err := s.encounters.FindByID(ctx, oid)
	if err != nil {
		return nil, fmt.Errorf("encounter owner: lookup: %w", err)
	}
	if e == nil {
		return nil, ErrEncounterNotFound
	}

	user, err := s.users.FindByID(ctx, e.UserID)
	if err != nil {
		return nil, fmt.Errorf("encounter owner: load user: %w", err)
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	return user, nil
}

// Delete removes an encounter; only the owner or an admin may delete, with
// the same existence-hiding as Get.
func (s *EncounterService) Delete(ctx context.Context, id string, caller Caller) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrEncounterNotFound
	}

	e, err := s.encounters.FindByID(ctx, oid)
	if err != nil {
		return fmt.Errorf("delete encounter: lookup: %w", err)
	}
	if e == nil {
		return ErrEncounterNotFound
	}

	if !OwnerOrAdmin(e.UserID, caller) {
		return ErrForbidden
	}

	if err := s.encounters.Delete(ctx, oid); err != nil {
		return fmt.Errorf("delete encounter: %w", err)
	}
	return nil
}

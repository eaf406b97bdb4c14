package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/shashiranjanraj/skirmish/app/models"
	"github.com/shashiranjanraj/skirmish/app/services"
	"github.com/shashiranjanraj/skirmish/app/storetest"
)

type encounterFixture struct {
	svc        *services.EncounterService
	encounters *storetest.Encounters
	combatants *storetest.Combatants
	users      *storetest.Users

	owner services.Caller
	other services.Caller
	admin services.Caller

	goblin models.Combatant
	orc    models.Combatant
}

func newEncounterFixture(t *testing.T) *encounterFixture {
	t.Helper()
	ctx := context.Background()

	f := &encounterFixture{
		encounters: storetest.NewEncounters(),
		combatants: storetest.NewCombatants(),
		users:      storetest.NewUsers(),
	}
	f.svc = services.NewEncounterService(f.encounters, f.combatants, f.users)

	f.goblin = models.Combatant{Name: "Goblin", Initiative: 12, Hitpoints: 7}
	f.orc = models.Combatant{Name: "Orc", Initiative: 10, Hitpoints: 15}
	require.NoError(t, f.combatants.Insert(ctx, &f.goblin))
	require.NoError(t, f.combatants.Insert(ctx, &f.orc))

	f.owner = services.Caller{ID: primitive.NewObjectID().Hex(), Roles: []string{"user"}}
	f.other = services.Caller{ID: primitive.NewObjectID().Hex(), Roles: []string{"user"}}
	f.admin = services.Caller{ID: primitive.NewObjectID().Hex(), Roles: []string{"user", "admin"}}

	return f
}

func TestEncounterCreate_PreservesOrderAndDuplicates(t *testing.T) {
	f := newEncounterFixture(t)

	ids := []string{f.goblin.ID.Hex(), f.orc.ID.Hex(), f.orc.ID.Hex()}
	enc, err := f.svc.Create(context.Background(), f.owner.ID, "bridge fight", ids)
	require.NoError(t, err)

	require.Len(t, enc.Combatants, 3)
	assert.Equal(t, f.goblin.ID, enc.Combatants[0].ID)
	assert.Equal(t, f.orc.ID, enc.Combatants[1].ID)
	assert.Equal(t, f.orc.ID, enc.Combatants[2].ID)
	assert.Equal(t, "bridge fight", enc.Name)
}

func TestEncounterCreate_RejectsMalformedReference(t *testing.T) {
	f := newEncounterFixture(t)

	_, err := f.svc.Create(context.Background(), f.owner.ID, "bad", []string{f.goblin.ID.Hex(), "123"})
	assert.ErrorIs(t, err, services.ErrInvalidReference)
	assert.Zero(t, f.encounters.Len(), "a rejected create must not persist anything")
}

func TestEncounterCreate_RejectsUnknownReference(t *testing.T) {
	f := newEncounterFixture(t)

	absent := primitive.NewObjectID().Hex()
	_, err := f.svc.Create(context.Background(), f.owner.ID, "bad", []string{absent})
	assert.ErrorIs(t, err, services.ErrInvalidReference)
	assert.Zero(t, f.encounters.Len())
}

func TestEncounterCreate_SnapshotsSurviveCatalogEdits(t *testing.T) {
	f := newEncounterFixture(t)
	ctx := context.Background()

	enc, err := f.svc.Create(ctx, f.owner.ID, "cave", []string{f.goblin.ID.Hex()})
	require.NoError(t, err)

	// Editing the catalog entry must not change the stored roster snapshot.
	edited := f.goblin
	edited.Hitpoints = 99
	require.NoError(t, f.combatants.Update(ctx, &edited))

	got, err := f.svc.Get(ctx, enc.ID.Hex(), f.owner)
	require.NoError(t, err)
	assert.Equal(t, 7.0, got.Combatants[0].Hitpoints)
}

func TestEncounterGet_Authorization(t *testing.T) {
	f := newEncounterFixture(t)
	ctx := context.Background()

	enc, err := f.svc.Create(ctx, f.owner.ID, "cave", []string{f.goblin.ID.Hex()})
	require.NoError(t, err)

	_, err = f.svc.Get(ctx, enc.ID.Hex(), f.owner)
	assert.NoError(t, err)

	_, err = f.svc.Get(ctx, enc.ID.Hex(), f.admin)
	assert.NoError(t, err)

	_, err = f.svc.Get(ctx, enc.ID.Hex(), f.other)
	assert.ErrorIs(t, err, services.ErrForbidden)

	_, err = f.svc.Get(ctx, primitive.NewObjectID().Hex(), f.owner)
	assert.ErrorIs(t, err, services.ErrEncounterNotFound)
}

func TestEncounterUpdate(t *testing.T) {
	f := newEncounterFixture(t)
	ctx := context.Background()

	enc, err := f.svc.Create(ctx, f.owner.ID, "cave", []string{f.goblin.ID.Hex()})
	require.NoError(t, err)

	t.Run("owner replaces roster", func(t *testing.T) {
		updated, err := f.svc.Update(ctx, enc.ID.Hex(), f.owner, "", []string{f.orc.ID.Hex()})
		require.NoError(t, err)
		assert.Equal(t, enc.ID, updated.ID)
		assert.Equal(t, "cave", updated.Name, "empty name must keep the old one")
		require.Len(t, updated.Combatants, 1)
		assert.Equal(t, f.orc.ID, updated.Combatants[0].ID)
	})

	t.Run("owner renames", func(t *testing.T) {
		updated, err := f.svc.Update(ctx, enc.ID.Hex(), f.owner, "deep cave", []string{f.orc.ID.Hex()})
		require.NoError(t, err)
		assert.Equal(t, "deep cave", updated.Name)
	})

	t.Run("non-owner rejected", func(t *testing.T) {
		_, err := f.svc.Update(ctx, enc.ID.Hex(), f.other, "stolen", nil)
		assert.ErrorIs(t, err, services.ErrForbidden)
	})

	t.Run("admin allowed, owner unchanged", func(t *testing.T) {
		updated, err := f.svc.Update(ctx, enc.ID.Hex(), f.admin, "", []string{f.goblin.ID.Hex()})
		require.NoError(t, err)
		assert.Equal(t, f.owner.ID, updated.UserID.Hex())
	})

	t.Run("absent encounter", func(t *testing.T) {
		_, err := f.svc.Update(ctx, primitive.NewObjectID().Hex(), f.owner, "", nil)
		assert.ErrorIs(t, err, services.ErrEncounterNotFound)
	})

	t.Run("bad reference leaves roster unchanged", func(t *testing.T) {
		_, err := f.svc.Update(ctx, enc.ID.Hex(), f.owner, "", []string{"123"})
		assert.ErrorIs(t, err, services.ErrInvalidReference)

		got, err := f.svc.Get(ctx, enc.ID.Hex(), f.owner)
		require.NoError(t, err)
		require.Len(t, got.Combatants, 1)
		assert.Equal(t, f.goblin.ID, got.Combatants[0].ID)
	})
}

func TestEncounterList_Scoping(t *testing.T) {
	f := newEncounterFixture(t)
	ctx := context.Background()

	_, err := f.svc.Create(ctx, f.owner.ID, "one", nil)
	require.NoError(t, err)
	_, err = f.svc.Create(ctx, f.other.ID, "two", nil)
	require.NoError(t, err)

	own, err := f.svc.List(ctx, f.owner)
	require.NoError(t, err)
	assert.Len(t, own, 1)

	all, err := f.svc.List(ctx, f.admin)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestEncounterSearch(t *testing.T) {
	f := newEncounterFixture(t)
	ctx := context.Background()

	_, err := f.svc.Create(ctx, f.owner.ID, "Goblin Ambush", nil)
	require.NoError(t, err)
	_, err = f.svc.Create(ctx, f.owner.ID, "Dragon Lair", nil)
	require.NoError(t, err)
	_, err = f.svc.Create(ctx, f.other.ID, "Goblin Warren", nil)
	require.NoError(t, err)

	t.Run("case-insensitive substring", func(t *testing.T) {
		matches, err := f.svc.Search(ctx, f.owner, "goblin")
		require.NoError(t, err)
		require.Len(t, matches, 1)
		assert.Equal(t, "Goblin Ambush", matches[0].Name)
	})

	t.Run("scoped to the caller", func(t *testing.T) {
		matches, err := f.svc.Search(ctx, f.other, "goblin")
		require.NoError(t, err)
		require.Len(t, matches, 1)
		assert.Equal(t, "Goblin Warren", matches[0].Name)
	})

	t.Run("no matches", func(t *testing.T) {
		_, err := f.svc.Search(ctx, f.owner, "kraken")
		assert.ErrorIs(t, err, services.ErrNoMatches)
	})
}

func TestEncounterOwnerOf(t *testing.T) {
	f := newEncounterFixture(t)
	ctx := context.Background()

	user := models.User{Email: "owner@example.com", Roles: []string{"user"}}
	require.NoError(t, f.users.Insert(ctx, &user))

	enc, err := f.svc.Create(ctx, user.ID.Hex(), "cave", nil)
	require.NoError(t, err)

	got, err := f.svc.OwnerOf(ctx, enc.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)
	assert.Equal(t, "owner@example.com", got.Email)

	_, err = f.svc.OwnerOf(ctx, primitive.NewObjectID().Hex())
	assert.ErrorIs(t, err, services.ErrEncounterNotFound)
}

func TestEncounterDelete(t *testing.T) {
	f := newEncounterFixture(t)
	ctx := context.Background()

	enc, err := f.svc.Create(ctx, f.owner.ID, "cave", nil)
	require.NoError(t, err)

	err = f.svc.Delete(ctx, enc.ID.Hex(), f.other)
	assert.ErrorIs(t, err, services.ErrForbidden)

	require.NoError(t, f.svc.Delete(ctx, enc.ID.Hex(), f.owner))

	_, err = f.svc.Get(ctx, enc.ID.Hex(), f.owner)
	assert.ErrorIs(t, err, services.ErrEncounterNotFound)
}

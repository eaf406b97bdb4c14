package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/skirmish/app/models"
	"github.com/shashiranjanraj/skirmish/app/services"
	"github.com/shashiranjanraj/skirmish/app/storetest"
)

func newCombatantService(t *testing.T) (*services.CombatantService, *storetest.Combatants, *storetest.Encounters) {
	t.Helper()
	combatants := storetest.NewCombatants()
	encounters := storetest.NewEncounters()
	return services.NewCombatantService(combatants, encounters), combatants, encounters
}

func TestCombatantCRUD(t *testing.T) {
	svc, _, _ := newCombatantService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, "Goblin", 12, 7)
	require.NoError(t, err)
	require.False(t, created.ID.IsZero())

	got, err := svc.Get(ctx, created.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, "Goblin", got.Name)
	assert.Equal(t, 12.0, got.Initiative)
	assert.Equal(t, 7.0, got.Hitpoints)

	updated, err := svc.Update(ctx, created.ID.Hex(), "Hobgoblin", 13, 11)
	require.NoError(t, err)
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, "Hobgoblin", updated.Name)

	all, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestCombatantGet_NotFound(t *testing.T) {
	svc, _, _ := newCombatantService(t)

	_, err := svc.Get(context.Background(), "not-a-hex-id")
	assert.ErrorIs(t, err, services.ErrCombatantNotFound)

	_, err = svc.Get(context.Background(), "64b0c8c2a2f4e6d8b9a0c1d2")
	assert.ErrorIs(t, err, services.ErrCombatantNotFound)
}

func TestCombatantUpdate_NotFound(t *testing.T) {
	svc, _, _ := newCombatantService(t)

	_, err := svc.Update(context.Background(), "64b0c8c2a2f4e6d8b9a0c1d2", "Ghost", 1, 1)
	assert.ErrorIs(t, err, services.ErrCombatantNotFound)
}

func TestCombatantDelete_BlockedWhileReferenced(t *testing.T) {
	svc, combatants, encounters := newCombatantService(t)
	ctx := context.Background()

	orc, err := svc.Create(ctx, "Orc", 10, 15)
	require.NoError(t, err)

	enc := &models.Encounter{Name: "ambush", Combatants: []models.Combatant{*orc}}
	require.NoError(t, encounters.Insert(ctx, enc))

	err = svc.Delete(ctx, orc.ID.Hex())
	assert.ErrorIs(t, err, services.ErrCombatantInUse)
	assert.EqualError(t, err, "Cannot delete combatant as it is still in use by an encounter.")

	// The blocked delete must leave the combatant in place.
	still, err := combatants.FindByID(ctx, orc.ID)
	require.NoError(t, err)
	assert.NotNil(t, still)
}

func TestCombatantDelete_FreeAfterLastReferenceGone(t *testing.T) {
	svc, combatants, encounters := newCombatantService(t)
	ctx := context.Background()

	orc, err := svc.Create(ctx, "Orc", 10, 15)
	require.NoError(t, err)

	enc := &models.Encounter{Name: "ambush", Combatants: []models.Combatant{*orc}}
	require.NoError(t, encounters.Insert(ctx, enc))
	require.NoError(t, encounters.Delete(ctx, enc.ID))

	require.NoError(t, svc.Delete(ctx, orc.ID.Hex()))

	gone, err := combatants.FindByID(ctx, orc.ID)
	require.NoError(t, err)
	assert.Nil(t, gone)
}

func TestCombatantDelete_NotFound(t *testing.T) {
	svc, _, _ := newCombatantService(t)

	err := svc.Delete(context.Background(), "not-a-hex-id")
	assert.ErrorIs(t, err, services.ErrCombatantNotFound)

	err = svc.Delete(context.Background(), "64b0c8c2a2f4e6d8b9a0c1d2")
	assert.ErrorIs(t, err, services.ErrCombatantNotFound)
}

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

func TestItemCRUD(t *testing.T) {
	items := storetest.NewItems()
	svc := services.NewItemService(items)
	ctx := context.Background()

	created, err := svc.Create(ctx, "Healing Potion", 50)
	require.NoError(t, err)
	require.False(t, created.ID.IsZero())

	got, err := svc.Get(ctx, created.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, "Healing Potion", got.Title)
	assert.Equal(t, 50.0, got.Price)

	updated, err := svc.Update(ctx, created.ID.Hex(), "Greater Healing Potion", 150)
	require.NoError(t, err)
	assert.Equal(t, created.ID, updated.ID)

	all, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)

	require.NoError(t, svc.Delete(ctx, created.ID.Hex()))
	_, err = svc.Get(ctx, created.ID.Hex())
	assert.ErrorIs(t, err, services.ErrItemNotFound)
}

// Deleting an item leaves existing order snapshots intact; there is no
// reference guard on the item catalog.
func TestItemDelete_NoGuard(t *testing.T) {
	items := storetest.NewItems()
	orders := storetest.NewOrders()
	users := storetest.NewUsers()
	itemSvc := services.NewItemService(items)
	orderSvc := services.NewOrderService(orders, items, users)
	ctx := context.Background()

	potion := models.Item{Title: "Healing Potion", Price: 50}
	require.NoError(t, items.Insert(ctx, &potion))

	caller := services.Caller{ID: "64b0c8c2a2f4e6d8b9a0c1d2", Roles: []string{"user"}}
	order, err := orderSvc.Create(ctx, caller.ID, []string{potion.ID.Hex()})
	require.NoError(t, err)

	require.NoError(t, itemSvc.Delete(ctx, potion.ID.Hex()))

	got, err := orderSvc.Get(ctx, order.ID.Hex(), caller)
	require.NoError(t, err)
	require.Len(t, got.Items, 1)
	assert.Equal(t, "Healing Potion", got.Items[0].Title)
}

func TestItemNotFound(t *testing.T) {
	svc := services.NewItemService(storetest.NewItems())
	ctx := context.Background()

	_, err := svc.Get(ctx, "not-a-hex-id")
	assert.ErrorIs(t, err, services.ErrItemNotFound)

	_, err = svc.Update(ctx, "64b0c8c2a2f4e6d8b9a0c1d2", "Ghost", 1)
	assert.ErrorIs(t, err, services.ErrItemNotFound)

	err = svc.Delete(ctx, "64b0c8c2a2f4e6d8b9a0c1d2")
	assert.ErrorIs(t, err, services.ErrItemNotFound)
}

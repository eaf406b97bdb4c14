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

type orderFixture struct {
	svc    *services.OrderService
	orders *storetest.Orders
	items  *storetest.Items
	users  *storetest.Users

	owner services.Caller
	other services.Caller
	admin services.Caller

	potion models.Item
	sword  models.Item
}

func newOrderFixture(t *testing.T) *orderFixture {
	t.Helper()
	ctx := context.Background()

	f := &orderFixture{
		orders: storetest.NewOrders(),
		items:  storetest.NewItems(),
		users:  storetest.NewUsers(),
	}
	f.svc = services.NewOrderService(f.orders, f.items, f.users)

	f.potion = models.Item{Title: "Healing Potion", Price: 50}
	f.sword = models.Item{Title: "Longsword", Price: 15}
	require.NoError(t, f.items.Insert(ctx, &f.potion))
	require.NoError(t, f.items.Insert(ctx, &f.sword))

	f.owner = services.Caller{ID: primitive.NewObjectID().Hex(), Roles: []string{"user"}}
	f.other = services.Caller{ID: primitive.NewObjectID().Hex(), Roles: []string{"user"}}
	f.admin = services.Caller{ID: primitive.NewObjectID().Hex(), Roles: []string{"user", "admin"}}

	return f
}

func TestOrderCreate_ComputesTotal(t *testing.T) {
	f := newOrderFixture(t)

	ids := []string{f.potion.ID.Hex(), f.sword.ID.Hex(), f.sword.ID.Hex()}
	order, err := f.svc.Create(context.Background(), f.owner.ID, ids)
	require.NoError(t, err)

	require.Len(t, order.Items, 3)
	assert.Equal(t, 80.0, order.Total)
	assert.Equal(t, f.potion.ID, order.Items[0].ID)
	assert.Equal(t, f.sword.ID, order.Items[1].ID)
	assert.Equal(t, f.sword.ID, order.Items[2].ID)
}

func TestOrderCreate_RejectsBadReference(t *testing.T) {
	f := newOrderFixture(t)
	ctx := context.Background()

	_, err := f.svc.Create(ctx, f.owner.ID, []string{"123"})
	assert.ErrorIs(t, err, services.ErrInvalidReference)

	_, err = f.svc.Create(ctx, f.owner.ID, []string{primitive.NewObjectID().Hex()})
	assert.ErrorIs(t, err, services.ErrInvalidReference)

	own, err := f.svc.List(ctx, f.owner)
	require.NoError(t, err)
	assert.Empty(t, own)
}

func TestOrderUpdate_RecomputesTotal(t *testing.T) {
	f := newOrderFixture(t)
	ctx := context.Background()

	order, err := f.svc.Create(ctx, f.owner.ID, []string{f.potion.ID.Hex()})
	require.NoError(t, err)
	require.Equal(t, 50.0, order.Total)

	updated, err := f.svc.Update(ctx, order.ID.Hex(), f.owner, []string{f.sword.ID.Hex(), f.sword.ID.Hex()})
	require.NoError(t, err)
	assert.Equal(t, 30.0, updated.Total)
	assert.Len(t, updated.Items, 2)
}

func TestOrderUpdate_Authorization(t *testing.T) {
	f := newOrderFixture(t)
	ctx := context.Background()

	order, err := f.svc.Create(ctx, f.owner.ID, []string{f.potion.ID.Hex()})
	require.NoError(t, err)

	_, err = f.svc.Update(ctx, order.ID.Hex(), f.other, []string{f.sword.ID.Hex()})
	assert.ErrorIs(t, err, services.ErrForbidden)

	updated, err := f.svc.Update(ctx, order.ID.Hex(), f.admin, []string{f.sword.ID.Hex()})
	require.NoError(t, err)
	assert.Equal(t, f.owner.ID, updated.UserID.Hex())

	_, err = f.svc.Update(ctx, primitive.NewObjectID().Hex(), f.owner, nil)
	assert.ErrorIs(t, err, services.ErrOrderNotFound)
}

func TestOrderGet_Authorization(t *testing.T) {
	f := newOrderFixture(t)
	ctx := context.Background()

	order, err := f.svc.Create(ctx, f.owner.ID, []string{f.potion.ID.Hex()})
	require.NoError(t, err)

	_, err = f.svc.Get(ctx, order.ID.Hex(), f.owner)
	assert.NoError(t, err)

	_, err = f.svc.Get(ctx, order.ID.Hex(), f.other)
	assert.ErrorIs(t, err, services.ErrForbidden)

	_, err = f.svc.Get(ctx, primitive.NewObjectID().Hex(), f.owner)
	assert.ErrorIs(t, err, services.ErrOrderNotFound)
}

func TestOrderList_Scoping(t *testing.T) {
	f := newOrderFixture(t)
	ctx := context.Background()

	_, err := f.svc.Create(ctx, f.owner.ID, []string{f.potion.ID.Hex()})
	require.NoError(t, err)
	_, err = f.svc.Create(ctx, f.other.ID, []string{f.sword.ID.Hex()})
	require.NoError(t, err)

	own, err := f.svc.List(ctx, f.owner)
	require.NoError(t, err)
	assert.Len(t, own, 1)

	all, err := f.svc.List(ctx, f.admin)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestOrderOwnerOf(t *testing.T) {
	f := newOrderFixture(t)
	ctx := context.Background()

	user := models.User{Email: "buyer@example.com", Roles: []string{"user"}}
	require.NoError(t, f.users.Insert(ctx, &user))

	order, err := f.svc.Create(ctx, user.ID.Hex(), []string{f.potion.ID.Hex()})
	require.NoError(t, err)

	got, err := f.svc.OwnerOf(ctx, order.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, "buyer@example.com", got.Email)

	_, err = f.svc.OwnerOf(ctx, primitive.NewObjectID().Hex())
	assert.ErrorIs(t, err, services.ErrOrderNotFound)
}

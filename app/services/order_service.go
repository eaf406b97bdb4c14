package services

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/shashiranjanraj/skirmish/app/models"
)

// OrderService mirrors EncounterService's ownership shape for the commerce
// surface: orders hold resolved item snapshots and a computed total.
type OrderService struct {
	orders OrderStore
	items  ItemStore
	users  UserStore
}

func NewOrderService(orders OrderStore, items ItemStore, users UserStore) *OrderService {
	return &OrderService{orders: orders, items: items, users: users}
}

func totalCost(items []models.Item) float64 {
	var total float64
	for _, i := range items {
		total += i.Price
	}
	return total
}

// resolveItems follows the same all-or-nothing rule as encounter rosters:
// every id must be syntactically valid and resolve to a stored item.
func (s *OrderService) resolveItems(ctx context.Context, ids []string) ([]models.Item, error) {
	oids := make([]primitive.ObjectID, 0, len(ids))
	for _, id := range ids {
		oid, err := primitive.ObjectIDFromHex(id)
		if err != nil {
			return nil, ErrInvalidReference
		}
		oids = append(oids, oid)
	}

	resolved := make([]models.Item, 0, len(oids))
	for _, oid := range oids {
		i, err := s.items.FindByID(ctx, oid)
		if err != nil {
			return nil, fmt.Errorf("resolve item %s: %w", oid.Hex(), err)
		}
		if i == nil {
			return nil, ErrInvalidReference
		}
		resolved = append(resolved, *i)
	}

	return resolved, nil
}

func (s *OrderService) Create(ctx context.Context, ownerID string, itemIDs []string) (*models.Order, error) {
	owner, err := primitive.ObjectIDFromHex(ownerID)
	if err != nil {
		return nil, ErrUserNotFound
	}

	items, err := s.resolveItems(ctx, itemIDs)
	if err != nil {
		return nil, err
	}

	o := &models.Order{UserID: owner, Items: items, Total: totalCost(items)}
	if err := s.orders.Insert(ctx, o); err != nil {
		return nil, fmt.Errorf("create order: %w", err)
	}

	return o, nil
}

// Update replaces the order's items and recomputes the total; owner or
// admin only, with the same existence-hiding policy as encounters.
func (s *OrderService) Update(ctx context.Context, id string, caller Caller, itemIDs []string) (*models.Order, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrOrderNotFound
	}

	o, err := s.orders.FindByID(ctx, oid)
	if err != nil {
		return nil, fmt.Errorf("update order: lookup: %w", err)
	}
	if o == nil {
		return nil, ErrOrderNotFound
	}

	if !OwnerOrAdmin(o.UserID, caller) {
		return nil, ErrForbidden
	}

	items, err := s.resolveItems(ctx, itemIDs)
	if err != nil {
		return nil, err
	}

	o.Items = items
	o.Total = totalCost(items)
	if err := s.orders.Update(ctx, o); err != nil {
		return nil, fmt.Errorf("update order: %w", err)
	}

	return o, nil
}

func (s *OrderService) Get(ctx context.Context, id string, caller Caller) (*models.Order, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrOrderNotFound
	}

	o, err := s.orders.FindByID(ctx, oid)
	if err != nil {
		return nil, fmt.Errorf("get order: %w", err)
	}
	if o == nil {
		return nil, ErrOrderNotFound
	}

	if !OwnerOrAdmin(o.UserID, caller) {
		return nil, ErrForbidden
	}

	return o, nil
}

func (s *OrderService) List(ctx context.Context, caller Caller) ([]models.Order, error) {
	if caller.IsAdmin() {
		all, err := s.orders.FindAll(ctx)
		if err != nil {
			return nil, fmt.Errorf("list orders: %w", err)
		}
		return all, nil
	}

	owner, err := primitive.ObjectIDFromHex(caller.ID)
	if err != nil {
		return nil, ErrUserNotFound
	}

	own, err := s.orders.FindByOwner(ctx, owner)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	return own, nil
}

// OwnerOf returns the public record of the user owning the order.
func (s *OrderService) OwnerOf(ctx context.Context, id string) (*models.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrOrderNotFound
	}

	o, err := s.orders.FindByID(ctx, oid)
	if err != nil {
		return nil, fmt.Errorf("order owner: lookup: %w", err)
	}
	if o == nil {
		return nil, ErrOrderNotFound
	}

	user, err := s.users.FindByID(ctx, o.UserID)
	if err != nil {
		return nil, fmt.Errorf("order owner: load user: %w", err)
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	return user, nil
}

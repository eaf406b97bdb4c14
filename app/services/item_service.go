package services

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/shashiranjanraj/skirmish/app/models"
	"github.com/shashiranjanraj/skirmish/pkg/cache"
)

const (
	itemListKey   = "skirmish:items:all"
	itemKeyPrefix = "skirmish:items:"
)

// ItemService manages the item catalog; admin-gated writes, no deletion
// guard (orders keep their item snapshots).
type ItemService struct {
	items ItemStore
}

func NewItemService(items ItemStore) *ItemService {
	return &ItemService{items: items}
}

func (s *ItemService) Create(ctx context.Context, title string, price float64) (*models.Item, error) {
	i := &models.Item{Title: title, Price: price}
	if err := s.items.Insert(ctx, i); err != nil {
		return nil, fmt.Errorf("create item: %w", err)
	}

	cache.Del(itemListKey) //nolint:errcheck
	return i, nil
}

func (s *ItemService) Update(ctx context.Context, id, title string, price float64) (*models.Item, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrItemNotFound
	}

	i, err := s.items.FindByID(ctx, oid)
	if err != nil {
		return nil, fmt.Errorf("update item: lookup: %w", err)
	}
	if i == nil {
		return nil, ErrItemNotFound
	}

	i.Title = title
	i.Price = price
	if err := s.items.Update(ctx, i); err != nil {
		return nil, fmt.Errorf("update item: %w", err)
	}

	cache.Del(itemListKey, itemKeyPrefix+id) //nolint:errcheck
	return i, nil
}

func (s *ItemService) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrItemNotFound
	}

	i, err := s.items.FindByID(ctx, oid)
	if err != nil {
		return fmt.Errorf("delete item: lookup: %w", err)
	}
	if i == nil {
		return ErrItemNotFound
	}

	if err := s.items.Delete(ctx, oid); err != nil {
		return fmt.Errorf("delete item: %w", err)
	}

	cache.Del(itemListKey, itemKeyPrefix+id) //nolint:errcheck
	return nil
}

func (s *ItemService) Get(ctx context.Context, id string) (*models.Item, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrItemNotFound
	}

	var cached models.Item
	if cache.Get(itemKeyPrefix+id, &cached) {
		return &cached, nil
	}

	i, err := s.items.FindByID(ctx, oid)
	if err != nil {
		return nil, fmt.Errorf("get item: %w", err)
	}
	if i == nil {
		return nil, ErrItemNotFound
	}

	cache.Set(itemKeyPrefix+id, i, catalogCacheTTL) //nolint:errcheck
	return i, nil
}

func (s *ItemService) List(ctx context.Context) ([]models.Item, error) {
	var cached []models.Item
	if cache.Get(itemListKey, &cached) {
		return cached, nil
	}

	all, err := s.items.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}

	cache.Set(itemListKey, all, catalogCacheTTL) //nolint:errcheck
	return all, nil
}

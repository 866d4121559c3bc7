package repository

//go:generate go run go.uber.org/mock/mockgen -source=./pending.go -destination=../mocks/pending_mock.go -package=mocks

import (
	"bistro/config"
	"bistro/internal/domains/order/model"
	"bistro/shared"
	"bistro/shared/cache"
	"context"
	"errors"
	"fmt"
)

const pendingKeyPrefix = "pending"

// PendingStore keeps each user's order under construction in redis until it is saved,
// discarded or expires.
type PendingStore interface {
	Get(ctx context.Context, userID string) (model.Pending, error)
	Save(ctx context.Context, userID string, pending model.Pending) error
	Delete(ctx context.Context, userID string) error
}

type pendingStoreImpl struct {
	cache cache.RedisCache
	ttl   int
}

func NewPendingStore(cfg *config.Config, cache cache.RedisCache) PendingStore {
	return &pendingStoreImpl{
		cache: cache,
		ttl:   cfg.Order.PendingTTLSeconds,
	}
}

// Get returns an empty pending order when the user has none.
func (store *pendingStoreImpl) Get(ctx context.Context, userID string) (model.Pending, error) {
	var pending model.Pending

	if err := store.cache.Get(ctx, shared.BuildCacheKey(pendingKeyPrefix, userID), &pending); err != nil {
		if errors.Is(err, cache.Nil) {
			return model.Pending{}, nil
		}

		return model.Pending{}, fmt.Errorf("failed to load pending order: %w", err)
	}

	return pending, nil
}

func (store *pendingStoreImpl) Save(ctx context.Context, userID string, pending model.Pending) error {
	if err := store.cache.Save(ctx, shared.BuildCacheKey(pendingKeyPrefix, userID), pending, store.ttl); err != nil {
		return fmt.Errorf("failed to store pending order: %w", err)
	}

	return nil
}

func (store *pendingStoreImpl) Delete(ctx context.Context, userID string) error {
	if err := store.cache.Delete(ctx, shared.BuildCacheKey(pendingKeyPrefix, userID)); err != nil {
		return fmt.Errorf("failed to discard pending order: %w", err)
	}

	return nil
}

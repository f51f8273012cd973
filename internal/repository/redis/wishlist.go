package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/nuvoshop/wishlist-service/internal/domain"
)

const keyPrefix = "wishlist:guest:"

// GuestWishlistRepository implements repository.GuestWishlistRepository
// using Redis. Each guest session holds one JSON-serialized item array under
// a fixed key, expiring after the configured TTL.
type GuestWishlistRepository struct {
	client *redis.Client
	ttl    time.Duration
	logger *slog.Logger
}

// NewGuestWishlistRepository creates a new Redis-backed guest wishlist
// repository.
func NewGuestWishlistRepository(client *redis.Client, ttl time.Duration, logger *slog.Logger) *GuestWishlistRepository {
	return &GuestWishlistRepository{
		client: client,
		ttl:    ttl,
		logger: logger,
	}
}

// Load retrieves the guest's wishlist. A missing key or an unparseable
// payload returns an empty slice; corrupt entries are logged and dropped so
// the next save starts clean.
func (r *GuestWishlistRepository) Load(ctx context.Context, guestID string) ([]domain.WishlistItem, error) {
	key := keyPrefix + guestID

	data, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return []domain.WishlistItem{}, nil
		}
		return nil, fmt.Errorf("redis get guest wishlist: %w", err)
	}

	var items []domain.WishlistItem
	if err := json.Unmarshal(data, &items); err != nil {
		r.logger.WarnContext(ctx, "discarding corrupt guest wishlist entry",
			slog.String("guest_id", guestID),
			slog.String("error", err.Error()),
		)
		_ = r.client.Del(ctx, key).Err()
		return []domain.WishlistItem{}, nil
	}

	if items == nil {
		items = []domain.WishlistItem{}
	}

	return items, nil
}

// Save overwrites the guest's wishlist with the configured TTL.
func (r *GuestWishlistRepository) Save(ctx context.Context, guestID string, items []domain.WishlistItem) error {
	key := keyPrefix + guestID

	data, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("marshal guest wishlist: %w", err)
	}

	if err := r.client.Set(ctx, key, data, r.ttl).Err(); err != nil {
		return fmt.Errorf("redis set guest wishlist: %w", err)
	}

	return nil
}

// Clear removes the guest's wishlist entry.
func (r *GuestWishlistRepository) Clear(ctx context.Context, guestID string) error {
	key := keyPrefix + guestID

	if err := r.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("redis del guest wishlist: %w", err)
	}

	return nil
}

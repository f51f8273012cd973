package repository

import (
	"context"

	"github.com/nuvoshop/wishlist-service/internal/domain"
)

// GuestWishlistRepository persists a guest's wishlist between visits. It is
// the durable mirror for sessions with no authenticated identity; once a
// session authenticates, only the reconciliation flow touches it.
type GuestWishlistRepository interface {
	// Load returns the stored items for the guest session. A missing or
	// corrupt entry yields an empty slice, not an error.
	Load(ctx context.Context, guestID string) ([]domain.WishlistItem, error)

	// Save overwrites the stored items for the guest session.
	Save(ctx context.Context, guestID string, items []domain.WishlistItem) error

	// Clear removes the stored entry for the guest session.
	Clear(ctx context.Context, guestID string) error
}

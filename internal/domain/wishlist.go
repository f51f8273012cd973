package domain

import "time"

// ProductSnapshot is the denormalized product data captured when an item is
// added, so a guest wishlist renders without re-fetching the product.
type ProductSnapshot struct {
	Name     string   `json:"name"`
	Price    int64    `json:"price"` // cents
	Currency string   `json:"currency"`
	Images   []string `json:"images,omitempty"`
}

// WishlistItem represents a product saved in a wishlist. ProductID is unique
// within one wishlist; AddedAt is set at creation and never mutated.
type WishlistItem struct {
	ProductID string          `json:"product_id"`
	Product   ProductSnapshot `json:"product"`
	AddedAt   time.Time       `json:"added_at"`
}

// SyncReport summarizes the outcome of merging a guest wishlist into an account.
type SyncReport struct {
	Attempted int `json:"attempted"`
	Synced    int `json:"synced"`
	Conflicts int `json:"conflicts"`
	Failed    int `json:"failed"`
}

// FindItem returns the index of the item with the given product ID, or -1.
func FindItem(items []WishlistItem, productID string) int {
	for i := range items {
		if items[i].ProductID == productID {
			return i
		}
	}
	return -1
}

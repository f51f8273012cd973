package event

import (
	"context"
	"fmt"
	"log/slog"

	pkgkafka "github.com/nuvoshop/wishlist-service/pkg/kafka"

	"github.com/nuvoshop/wishlist-service/internal/domain"
)

// Kafka topic constants for wishlist domain events.
const (
	TopicWishlistUpdated = "ecommerce.wishlist.updated"
	TopicWishlistSynced  = "ecommerce.wishlist.synced"
)

// Aggregate type constant.
const AggregateTypeWishlist = "wishlist"

// Source identifier for events originating from the wishlist service.
const SourceWishlistService = "wishlist-service"

// WishlistUpdatedData is the payload for a wishlist.updated event. OwnerID is
// the user ID for authenticated sessions or the guest session ID otherwise.
type WishlistUpdatedData struct {
	OwnerID   string             `json:"owner_id"`
	StoreID   string             `json:"store_id"`
	Guest     bool               `json:"guest"`
	Action    string             `json:"action"`
	ProductID string             `json:"product_id,omitempty"`
	Items     []WishlistItemData `json:"items"`
	ItemCount int                `json:"item_count"`
}

// WishlistItemData is the item payload within wishlist events.
type WishlistItemData struct {
	ProductID string `json:"product_id"`
	Name      string `json:"name"`
	Price     int64  `json:"price"`
	Currency  string `json:"currency"`
}

// WishlistSyncedData is the payload for a wishlist.synced event.
type WishlistSyncedData struct {
	UserID    string `json:"user_id"`
	GuestID   string `json:"guest_id"`
	StoreID   string `json:"store_id"`
	Attempted int    `json:"attempted"`
	Synced    int    `json:"synced"`
	Conflicts int    `json:"conflicts"`
	Failed    int    `json:"failed"`
}

// Producer publishes wishlist domain events to Kafka.
type Producer struct {
	kafka  *pkgkafka.Producer
	logger *slog.Logger
}

// NewProducer creates a new event producer for the wishlist service.
func NewProducer(kafka *pkgkafka.Producer, logger *slog.Logger) *Producer {
	return &Producer{
		kafka:  kafka,
		logger: logger,
	}
}

// PublishWishlistUpdated publishes a wishlist.updated event.
func (p *Producer) PublishWishlistUpdated(ctx context.Context, session domain.Session, action, productID string, items []domain.WishlistItem) error {
	eventItems := make([]WishlistItemData, len(items))
	for i, item := range items {
		eventItems[i] = WishlistItemData{
			ProductID: item.ProductID,
			Name:      item.Product.Name,
			Price:     item.Product.Price,
			Currency:  item.Product.Currency,
		}
	}

	ownerID := session.UserID
	if !session.Authenticated() {
		ownerID = session.GuestID
	}

	data := WishlistUpdatedData{
		OwnerID:   ownerID,
		StoreID:   session.StoreID,
		Guest:     !session.Authenticated(),
		Action:    action,
		ProductID: productID,
		Items:     eventItems,
		ItemCount: len(eventItems),
	}

	event, err := pkgkafka.NewEvent(TopicWishlistUpdated, ownerID, AggregateTypeWishlist, SourceWishlistService, data)
	if err != nil {
		return fmt.Errorf("create wishlist.updated event: %w", err)
	}

	if err := p.kafka.Publish(ctx, TopicWishlistUpdated, event); err != nil {
		return fmt.Errorf("publish wishlist.updated event: %w", err)
	}

	p.logger.DebugContext(ctx, "published wishlist.updated event",
		slog.String("owner_id", ownerID),
		slog.String("action", action),
		slog.Int("item_count", len(eventItems)),
	)

	return nil
}

// PublishWishlistSynced publishes a wishlist.synced event.
func (p *Producer) PublishWishlistSynced(ctx context.Context, session domain.Session, report domain.SyncReport) error {
	data := WishlistSyncedData{
		UserID:    session.UserID,
		GuestID:   session.GuestID,
		StoreID:   session.StoreID,
		Attempted: report.Attempted,
		Synced:    report.Synced,
		Conflicts: report.Conflicts,
		Failed:    report.Failed,
	}

	event, err := pkgkafka.NewEvent(TopicWishlistSynced, session.UserID, AggregateTypeWishlist, SourceWishlistService, data)
	if err != nil {
		return fmt.Errorf("create wishlist.synced event: %w", err)
	}

	if err := p.kafka.Publish(ctx, TopicWishlistSynced, event); err != nil {
		return fmt.Errorf("publish wishlist.synced event: %w", err)
	}

	p.logger.DebugContext(ctx, "published wishlist.synced event",
		slog.String("user_id", session.UserID),
		slog.String("guest_id", session.GuestID),
		slog.Int("synced", report.Synced),
	)

	return nil
}

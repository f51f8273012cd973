package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	apperrors "github.com/nuvoshop/wishlist-service/pkg/errors"

	"github.com/nuvoshop/wishlist-service/internal/domain"
	"github.com/nuvoshop/wishlist-service/internal/event"
	"github.com/nuvoshop/wishlist-service/internal/repository"
)

// MaxItemsPerWishlist is the maximum number of products a guest wishlist may hold.
const MaxItemsPerWishlist = 200

// RemoteWishlist is the authenticated wishlist backend surface the service
// reconciles against.
type RemoteWishlist interface {
	FetchAll(ctx context.Context, session domain.Session) ([]domain.WishlistItem, error)
	Add(ctx context.Context, session domain.Session, productID string) (*domain.WishlistItem, error)
	Remove(ctx context.Context, session domain.Session, productID string) error
	ClearAll(ctx context.Context, session domain.Session) error
}

// AddItemInput holds the parameters for adding a product to the wishlist.
// The product snapshot is only used for guest sessions; the backend keeps its
// own product data for authenticated ones.
type AddItemInput struct {
	ProductID string   `json:"product_id" validate:"required"`
	Name      string   `json:"name"`
	Price     int64    `json:"price" validate:"gte=0"`
	Currency  string   `json:"currency"`
	Images    []string `json:"images"`
}

// WishlistService reconciles a session's wishlist across the guest store and
// the remote backend. Guest sessions read and write Redis only; authenticated
// sessions go to the backend, falling back to the last known items on reads
// when the backend is unreachable.
type WishlistService struct {
	guests   repository.GuestWishlistRepository
	remote   RemoteWishlist
	producer *event.Producer
	states   *stateStore
	logger   *slog.Logger
}

// NewWishlistService creates a new wishlist service.
func NewWishlistService(guests repository.GuestWishlistRepository, remote RemoteWishlist, producer *event.Producer, logger *slog.Logger) *WishlistService {
	return &WishlistService{
		guests:   guests,
		remote:   remote,
		producer: producer,
		states:   newStateStore(),
		logger:   logger,
	}
}

// Fetch loads the wishlist for the session and returns the reduced state.
// A backend failure on an authenticated read does not return an error: the
// state carries the failure message alongside the last known items so callers
// can keep rendering.
func (s *WishlistService) Fetch(ctx context.Context, session domain.Session) (domain.State, error) {
	if err := validateSession(session); err != nil {
		return domain.State{}, err
	}

	key := session.StateKey()
	s.states.Apply(key, domain.LoadStart{})

	if !session.Authenticated() {
		items := s.loadGuestItems(ctx, session.GuestID)
		return s.states.Apply(key, domain.LoadSuccess{Items: items}), nil
	}

	items, err := s.remote.FetchAll(ctx, session)
	if err != nil {
		s.logger.WarnContext(ctx, "wishlist fetch failed, serving last known items",
			slog.String("user_id", session.UserID),
			slog.String("error", err.Error()),
		)

		intents := []domain.Intent{domain.LoadError{Message: err.Error()}}
		if session.GuestID != "" {
			// First read after login: the guest store is the freshest
			// snapshot we have.
			local := s.loadGuestItems(ctx, session.GuestID)
			intents = []domain.Intent{
				domain.LoadSuccess{Items: local},
				domain.LoadError{Message: err.Error()},
			}
		}
		return s.states.Apply(key, intents...), nil
	}

	return s.states.Apply(key, domain.LoadSuccess{Items: items}), nil
}

// Add puts a product on the session's wishlist. Adding a product that is
// already present returns a conflict.
func (s *WishlistService) Add(ctx context.Context, session domain.Session, input AddItemInput) (*domain.WishlistItem, error) {
	if err := validateSession(session); err != nil {
		return nil, err
	}
	if input.ProductID == "" {
		return nil, apperrors.InvalidInput("product id is required")
	}

	var item *domain.WishlistItem

	if session.Authenticated() {
		added, err := s.remote.Add(ctx, session, input.ProductID)
		if err != nil {
			if errors.Is(err, apperrors.ErrConflict) {
				return nil, apperrors.Conflict("product is already in the wishlist")
			}
			return nil, fmt.Errorf("add wishlist item: %w", err)
		}
		item = added
	} else {
		items := s.loadGuestItems(ctx, session.GuestID)
		if domain.FindItem(items, input.ProductID) >= 0 {
			return nil, apperrors.Conflict("product is already in the wishlist")
		}
		if len(items) >= MaxItemsPerWishlist {
			return nil, apperrors.InvalidInput(fmt.Sprintf("wishlist must not contain more than %d items", MaxItemsPerWishlist))
		}

		item = &domain.WishlistItem{
			ProductID: input.ProductID,
			Product: domain.ProductSnapshot{
				Name:     input.Name,
				Price:    input.Price,
				Currency: input.Currency,
				Images:   input.Images,
			},
			AddedAt: time.Now().UTC(),
		}

		if err := s.guests.Save(ctx, session.GuestID, append(items, *item)); err != nil {
			s.logger.ErrorContext(ctx, "failed to persist guest wishlist",
				slog.String("guest_id", session.GuestID),
				slog.String("error", err.Error()),
			)
		}
	}

	state := s.states.Apply(session.StateKey(), domain.ItemAdded{Item: *item})
	s.publishUpdated(ctx, session, "added", input.ProductID, state.Items)

	s.logger.InfoContext(ctx, "item added to wishlist",
		slog.String("owner", session.StateKey()),
		slog.String("product_id", input.ProductID),
	)

	return item, nil
}

// Remove takes a product off the session's wishlist. Removing a product that
// is not present succeeds.
func (s *WishlistService) Remove(ctx context.Context, session domain.Session, productID string) error {
	if err := validateSession(session); err != nil {
		return err
	}
	if productID == "" {
		return apperrors.InvalidInput("product id is required")
	}

	if session.Authenticated() {
		if err := s.remote.Remove(ctx, session, productID); err != nil && !errors.Is(err, apperrors.ErrNotFound) {
			return fmt.Errorf("remove wishlist item: %w", err)
		}
	} else {
		items := s.loadGuestItems(ctx, session.GuestID)
		if idx := domain.FindItem(items, productID); idx >= 0 {
			items = append(items[:idx], items[idx+1:]...)
			if err := s.guests.Save(ctx, session.GuestID, items); err != nil {
				s.logger.ErrorContext(ctx, "failed to persist guest wishlist",
					slog.String("guest_id", session.GuestID),
					slog.String("error", err.Error()),
				)
			}
		}
	}

	state := s.states.Apply(session.StateKey(), domain.ItemRemoved{ProductID: productID})
	s.publishUpdated(ctx, session, "removed", productID, state.Items)

	s.logger.InfoContext(ctx, "item removed from wishlist",
		slog.String("owner", session.StateKey()),
		slog.String("product_id", productID),
	)

	return nil
}

// Clear empties the session's wishlist.
func (s *WishlistService) Clear(ctx context.Context, session domain.Session) error {
	if err := validateSession(session); err != nil {
		return err
	}

	if session.Authenticated() {
		if err := s.remote.ClearAll(ctx, session); err != nil {
			return fmt.Errorf("clear wishlist: %w", err)
		}
	} else {
		if err := s.guests.Clear(ctx, session.GuestID); err != nil {
			s.logger.ErrorContext(ctx, "failed to clear guest wishlist",
				slog.String("guest_id", session.GuestID),
				slog.String("error", err.Error()),
			)
		}
	}

	state := s.states.Apply(session.StateKey(), domain.Cleared{})
	s.publishUpdated(ctx, session, "cleared", "", state.Items)

	s.logger.InfoContext(ctx, "wishlist cleared",
		slog.String("owner", session.StateKey()),
	)

	return nil
}

// Contains reports whether the product is on the session's wishlist.
func (s *WishlistService) Contains(ctx context.Context, session domain.Session, productID string) (bool, error) {
	if productID == "" {
		return false, apperrors.InvalidInput("product id is required")
	}

	state := s.states.Get(session.StateKey())
	if state.Status != domain.StatusReady {
		var err error
		state, err = s.Fetch(ctx, session)
		if err != nil {
			return false, err
		}
	}

	return state.Contains(productID), nil
}

// SyncLocalToRemote merges the guest wishlist into the authenticated account.
// Every guest item is pushed individually; items the account already has count
// as conflicts, other failures are logged and skipped. The guest store is
// cleared once the sweep finishes regardless of per-item outcomes, then the
// account wishlist is re-fetched so the returned state is the backend's view.
func (s *WishlistService) SyncLocalToRemote(ctx context.Context, session domain.Session) (domain.SyncReport, domain.State, error) {
	if !session.Authenticated() {
		return domain.SyncReport{}, domain.State{}, apperrors.Unauthorized("sync requires an authenticated session")
	}
	if session.GuestID == "" {
		return domain.SyncReport{}, domain.State{}, apperrors.InvalidInput("guest session id is required")
	}

	items, err := s.guests.Load(ctx, session.GuestID)
	if err != nil {
		return domain.SyncReport{}, domain.State{}, apperrors.Storage(fmt.Errorf("load guest wishlist: %w", err))
	}

	report := domain.SyncReport{Attempted: len(items)}
	for _, item := range items {
		if _, err := s.remote.Add(ctx, session, item.ProductID); err != nil {
			if errors.Is(err, apperrors.ErrConflict) {
				report.Conflicts++
				continue
			}
			report.Failed++
			s.logger.WarnContext(ctx, "failed to sync wishlist item",
				slog.String("user_id", session.UserID),
				slog.String("product_id", item.ProductID),
				slog.String("error", err.Error()),
			)
			continue
		}
		report.Synced++
	}

	if err := s.guests.Clear(ctx, session.GuestID); err != nil {
		s.logger.ErrorContext(ctx, "failed to clear guest wishlist after sync",
			slog.String("guest_id", session.GuestID),
			slog.String("error", err.Error()),
		)
	}
	s.states.Drop("guest:" + session.GuestID)

	state, err := s.Fetch(ctx, session)
	if err != nil {
		return report, state, err
	}

	if err := s.producer.PublishWishlistSynced(ctx, session, report); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish wishlist.synced event",
			slog.String("user_id", session.UserID),
			slog.String("error", err.Error()),
		)
	}

	s.logger.InfoContext(ctx, "guest wishlist synced",
		slog.String("user_id", session.UserID),
		slog.String("guest_id", session.GuestID),
		slog.Int("attempted", report.Attempted),
		slog.Int("synced", report.Synced),
		slog.Int("conflicts", report.Conflicts),
		slog.Int("failed", report.Failed),
	)

	return report, state, nil
}

// loadGuestItems reads the guest store, returning an empty list on failure so
// reads never block on storage trouble.
func (s *WishlistService) loadGuestItems(ctx context.Context, guestID string) []domain.WishlistItem {
	if guestID == "" {
		return []domain.WishlistItem{}
	}
	items, err := s.guests.Load(ctx, guestID)
	if err != nil {
		s.logger.WarnContext(ctx, "failed to load guest wishlist",
			slog.String("guest_id", guestID),
			slog.String("error", err.Error()),
		)
		return []domain.WishlistItem{}
	}
	return items
}

func (s *WishlistService) publishUpdated(ctx context.Context, session domain.Session, action, productID string, items []domain.WishlistItem) {
	if err := s.producer.PublishWishlistUpdated(ctx, session, action, productID, items); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish wishlist.updated event",
			slog.String("owner", session.StateKey()),
			slog.String("error", err.Error()),
		)
	}
}

func validateSession(session domain.Session) error {
	if session.StoreID == "" {
		return apperrors.InvalidInput("store id is required")
	}
	if !session.Authenticated() && session.GuestID == "" {
		return apperrors.Unauthorized("a guest session or an authenticated user is required")
	}
	return nil
}

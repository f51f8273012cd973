package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"

	apperrors "github.com/nuvoshop/wishlist-service/pkg/errors"
	"github.com/nuvoshop/wishlist-service/pkg/httpclient"

	"github.com/nuvoshop/wishlist-service/internal/domain"
)

// HTTPDoer executes HTTP requests. Both httpclient.Client and
// httpclient.CircuitBreakerClient satisfy this.
type HTTPDoer interface {
	Do(ctx context.Context, req *http.Request) (*http.Response, error)
}

// WishlistBackend is the authenticated client against the platform backend's
// wishlist resource. The backend is the source of truth for the
// authenticated wishlist, including duplicate detection. Calls are never
// retried here; failures propagate to the reconciliation controller, which
// decides whether to degrade, skip, or surface them.
type WishlistBackend struct {
	baseURL string
	http    HTTPDoer
	logger  *slog.Logger
}

// NewWishlistBackend creates a client for the wishlist backend at baseURL.
func NewWishlistBackend(baseURL string, doer HTTPDoer, logger *slog.Logger) *WishlistBackend {
	return &WishlistBackend{
		baseURL: baseURL,
		http:    doer,
		logger:  logger,
	}
}

// FetchAll returns the authenticated user's wishlist.
func (c *WishlistBackend) FetchAll(ctx context.Context, session domain.Session) ([]domain.WishlistItem, error) {
	req, err := c.newRequest(ctx, session, http.MethodGet, "/wishlist", nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.http.Do(ctx, req)
	if err != nil {
		return nil, unreachable(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, httpclient.ParseResponseError(resp, "wishlist backend")
	}

	var envelope struct {
		Data []domain.WishlistItem `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return nil, fmt.Errorf("decode wishlist response: %w", err)
	}

	if envelope.Data == nil {
		envelope.Data = []domain.WishlistItem{}
	}

	return envelope.Data, nil
}

// Add inserts a product into the authenticated user's wishlist and returns
// the created item. A duplicate yields an error matching
// apperrors.ErrConflict; the caller decides whether that is benign.
func (c *WishlistBackend) Add(ctx context.Context, session domain.Session, productID string) (*domain.WishlistItem, error) {
	body, err := json.Marshal(map[string]string{"product_id": productID})
	if err != nil {
		return nil, fmt.Errorf("marshal add request: %w", err)
	}

	req, err := c.newRequest(ctx, session, http.MethodPost, "/wishlist", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(ctx, req)
	if err != nil {
		return nil, unreachable(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return nil, httpclient.ParseResponseError(resp, "wishlist backend")
	}

	var envelope struct {
		Data domain.WishlistItem `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return nil, fmt.Errorf("decode add response: %w", err)
	}

	return &envelope.Data, nil
}

// Remove deletes a product from the authenticated user's wishlist. An absent
// product yields an error matching apperrors.ErrNotFound, which the caller
// treats as success (idempotent delete).
func (c *WishlistBackend) Remove(ctx context.Context, session domain.Session, productID string) error {
	req, err := c.newRequest(ctx, session, http.MethodDelete, "/wishlist/"+url.PathEscape(productID), nil)
	if err != nil {
		return err
	}

	resp, err := c.http.Do(ctx, req)
	if err != nil {
		return unreachable(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusNoContent {
		return httpclient.ParseResponseError(resp, "wishlist backend")
	}

	return nil
}

// ClearAll removes every item from the authenticated user's wishlist.
func (c *WishlistBackend) ClearAll(ctx context.Context, session domain.Session) error {
	req, err := c.newRequest(ctx, session, http.MethodDelete, "/wishlist", nil)
	if err != nil {
		return err
	}

	resp, err := c.http.Do(ctx, req)
	if err != nil {
		return unreachable(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusNoContent {
		return httpclient.ParseResponseError(resp, "wishlist backend")
	}

	return nil
}

// newRequest builds a backend request carrying the session's bearer
// credential and tenant scope. Both come from the explicit session value;
// the client holds no ambient credentials.
func (c *WishlistBackend) newRequest(ctx context.Context, session domain.Session, method, path string, body *bytes.Reader) (*http.Request, error) {
	if session.Token == "" {
		return nil, apperrors.Unauthorized("wishlist backend call without a credential")
	}

	var req *http.Request
	var err error
	if body != nil {
		req, err = http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	} else {
		req, err = http.NewRequestWithContext(ctx, method, c.baseURL+path, nil)
	}
	if err != nil {
		return nil, fmt.Errorf("create %s %s request: %w", method, path, err)
	}

	req.Header.Set("Authorization", "Bearer "+session.Token)
	req.Header.Set("X-Store-ID", session.StoreID)

	return req, nil
}

// unreachable wraps a transport error so callers can branch on
// apperrors.ErrUnavailable while keeping the cause in the chain.
func unreachable(err error) error {
	return &apperrors.AppError{
		Code:    "UPSTREAM_UNAVAILABLE",
		Message: "wishlist backend unreachable",
		Status:  http.StatusServiceUnavailable,
		Err:     fmt.Errorf("%w: %w", apperrors.ErrUnavailable, err),
	}
}

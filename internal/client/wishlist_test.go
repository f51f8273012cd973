package client

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/nuvoshop/wishlist-service/pkg/errors"
	"github.com/nuvoshop/wishlist-service/pkg/httpclient"

	"github.com/nuvoshop/wishlist-service/internal/domain"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

func testSession() domain.Session {
	return domain.Session{
		UserID:  "user-1",
		Token:   "token-abc",
		StoreID: "store-9",
	}
}

func newBackend(t *testing.T, handler http.HandlerFunc) *WishlistBackend {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewWishlistBackend(srv.URL, httpclient.New(httpclient.DefaultConfig()), testLogger())
}

func writeData(t *testing.T, w http.ResponseWriter, status int, data any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	require.NoError(t, json.NewEncoder(w).Encode(map[string]any{"data": data}))
}

func writeErrorBody(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"error": map[string]string{"code": code, "message": message},
	})
}

// --- FetchAll ---

func TestFetchAll_Success(t *testing.T) {
	backend := newBackend(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/wishlist", r.URL.Path)
		assert.Equal(t, "Bearer token-abc", r.Header.Get("Authorization"))
		assert.Equal(t, "store-9", r.Header.Get("X-Store-ID"))

		writeData(t, w, http.StatusOK, []domain.WishlistItem{
			{ProductID: "p1", AddedAt: time.Now().UTC()},
		})
	})

	items, err := backend.FetchAll(context.Background(), testSession())

	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "p1", items[0].ProductID)
}

func TestFetchAll_EmptyDataYieldsEmptySlice(t *testing.T) {
	backend := newBackend(t, func(w http.ResponseWriter, r *http.Request) {
		writeData(t, w, http.StatusOK, nil)
	})

	items, err := backend.FetchAll(context.Background(), testSession())

	require.NoError(t, err)
	assert.NotNil(t, items)
	assert.Empty(t, items)
}

func TestFetchAll_UnauthorizedMapsToAuthError(t *testing.T) {
	backend := newBackend(t, func(w http.ResponseWriter, r *http.Request) {
		writeErrorBody(w, http.StatusUnauthorized, "UNAUTHORIZED", "token expired")
	})

	_, err := backend.FetchAll(context.Background(), testSession())

	assert.True(t, errors.Is(err, apperrors.ErrUnauthorized))
}

func TestFetchAll_UnreachableBackendMapsToUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // connection refused from here on

	backend := NewWishlistBackend(srv.URL, httpclient.New(httpclient.DefaultConfig()), testLogger())

	_, err := backend.FetchAll(context.Background(), testSession())

	assert.True(t, errors.Is(err, apperrors.ErrUnavailable))
}

func TestFetchAll_MissingCredentialRejectedLocally(t *testing.T) {
	called := false
	backend := newBackend(t, func(w http.ResponseWriter, r *http.Request) {
		called = true
	})

	_, err := backend.FetchAll(context.Background(), domain.Session{StoreID: "store-9"})

	assert.True(t, errors.Is(err, apperrors.ErrUnauthorized))
	assert.False(t, called, "no request should reach the backend without a credential")
}

// --- Add ---

func TestAdd_Success(t *testing.T) {
	backend := newBackend(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/wishlist", r.URL.Path)

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "p1", body["product_id"])

		writeData(t, w, http.StatusCreated, domain.WishlistItem{
			ProductID: "p1",
			AddedAt:   time.Now().UTC(),
		})
	})

	item, err := backend.Add(context.Background(), testSession(), "p1")

	require.NoError(t, err)
	assert.Equal(t, "p1", item.ProductID)
}

func TestAdd_ConflictMapsToConflictError(t *testing.T) {
	backend := newBackend(t, func(w http.ResponseWriter, r *http.Request) {
		writeErrorBody(w, http.StatusConflict, "CONFLICT", "product already in wishlist")
	})

	_, err := backend.Add(context.Background(), testSession(), "p1")

	assert.True(t, errors.Is(err, apperrors.ErrConflict))
}

// --- Remove ---

func TestRemove_Success(t *testing.T) {
	backend := newBackend(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/wishlist/p1", r.URL.Path)
		w.WriteHeader(http.StatusNoContent)
	})

	assert.NoError(t, backend.Remove(context.Background(), testSession(), "p1"))
}

func TestRemove_NotFoundMapsToNotFoundError(t *testing.T) {
	backend := newBackend(t, func(w http.ResponseWriter, r *http.Request) {
		writeErrorBody(w, http.StatusNotFound, "NOT_FOUND", "wishlist item not found")
	})

	err := backend.Remove(context.Background(), testSession(), "p1")

	assert.True(t, errors.Is(err, apperrors.ErrNotFound))
}

// --- ClearAll ---

func TestClearAll_Success(t *testing.T) {
	backend := newBackend(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/wishlist", r.URL.Path)
		w.WriteHeader(http.StatusNoContent)
	})

	assert.NoError(t, backend.ClearAll(context.Background(), testSession()))
}

func TestClearAll_ServerErrorMapsToUnavailable(t *testing.T) {
	backend := newBackend(t, func(w http.ResponseWriter, r *http.Request) {
		writeErrorBody(w, http.StatusInternalServerError, "INTERNAL_ERROR", "boom")
	})

	err := backend.ClearAll(context.Background(), testSession())

	assert.True(t, errors.Is(err, apperrors.ErrUnavailable))
}

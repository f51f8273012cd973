package redis

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nuvoshop/wishlist-service/internal/domain"
)

func setupTestRedis(t *testing.T) (*GuestWishlistRepository, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
	repo := NewGuestWishlistRepository(client, 30*24*time.Hour, logger)
	return repo, mr
}

func sampleItems() []domain.WishlistItem {
	now := time.Now().UTC().Truncate(time.Millisecond)
	return []domain.WishlistItem{
		{
			ProductID: "prod-1",
			Product: domain.ProductSnapshot{
				Name:     "Canvas Tote",
				Price:    2490,
				Currency: "USD",
				Images:   []string{"https://img.example.com/tote.jpg"},
			},
			AddedAt: now,
		},
		{
			ProductID: "prod-2",
			Product: domain.ProductSnapshot{
				Name:     "Enamel Mug",
				Price:    1290,
				Currency: "USD",
			},
			AddedAt: now.Add(time.Minute),
		},
	}
}

// ---------------------------------------------------------------------------
// Load
// ---------------------------------------------------------------------------

func TestLoad_MissingKeyReturnsEmpty(t *testing.T) {
	repo, _ := setupTestRedis(t)

	items, err := repo.Load(context.Background(), "guest-1")

	require.NoError(t, err)
	assert.Empty(t, items)
	assert.NotNil(t, items)
}

func TestLoad_RoundTrip(t *testing.T) {
	repo, _ := setupTestRedis(t)
	ctx := context.Background()

	want := sampleItems()
	require.NoError(t, repo.Save(ctx, "guest-1", want))

	got, err := repo.Load(ctx, "guest-1")

	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "prod-1", got[0].ProductID)
	assert.Equal(t, "Canvas Tote", got[0].Product.Name)
	assert.Equal(t, int64(2490), got[0].Product.Price)
	assert.True(t, want[0].AddedAt.Equal(got[0].AddedAt))
}

func TestLoad_CorruptPayloadFailsOpen(t *testing.T) {
	repo, mr := setupTestRedis(t)

	mr.Set(keyPrefix+"guest-1", "{not json at all")

	items, err := repo.Load(context.Background(), "guest-1")

	require.NoError(t, err)
	assert.Empty(t, items)

	// The corrupt entry is dropped so the next save starts clean.
	assert.False(t, mr.Exists(keyPrefix+"guest-1"))
}

func TestLoad_IsolatedPerGuest(t *testing.T) {
	repo, _ := setupTestRedis(t)
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, "guest-1", sampleItems()))

	items, err := repo.Load(ctx, "guest-2")
	require.NoError(t, err)
	assert.Empty(t, items)
}

// ---------------------------------------------------------------------------
// Save
// ---------------------------------------------------------------------------

func TestSave_OverwritesPreviousValue(t *testing.T) {
	repo, _ := setupTestRedis(t)
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, "guest-1", sampleItems()))
	require.NoError(t, repo.Save(ctx, "guest-1", sampleItems()[:1]))

	items, err := repo.Load(ctx, "guest-1")
	require.NoError(t, err)
	assert.Len(t, items, 1)
}

func TestSave_SetsTTL(t *testing.T) {
	repo, mr := setupTestRedis(t)

	require.NoError(t, repo.Save(context.Background(), "guest-1", sampleItems()))

	ttl := mr.TTL(keyPrefix + "guest-1")
	assert.Equal(t, 30*24*time.Hour, ttl)
}

func TestSave_EmptySliceStoresJSONArray(t *testing.T) {
	repo, mr := setupTestRedis(t)

	require.NoError(t, repo.Save(context.Background(), "guest-1", []domain.WishlistItem{}))

	raw, err := mr.Get(keyPrefix + "guest-1")
	require.NoError(t, err)

	var decoded []domain.WishlistItem
	require.NoError(t, json.Unmarshal([]byte(raw), &decoded))
	assert.Empty(t, decoded)
}

// ---------------------------------------------------------------------------
// Clear
// ---------------------------------------------------------------------------

func TestClear_RemovesKey(t *testing.T) {
	repo, mr := setupTestRedis(t)
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, "guest-1", sampleItems()))
	require.NoError(t, repo.Clear(ctx, "guest-1"))

	assert.False(t, mr.Exists(keyPrefix+"guest-1"))
}

func TestClear_MissingKeyIsNoOp(t *testing.T) {
	repo, _ := setupTestRedis(t)

	assert.NoError(t, repo.Clear(context.Background(), "guest-nope"))
}

package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func item(productID string) WishlistItem {
	return WishlistItem{
		ProductID: productID,
		Product: ProductSnapshot{
			Name:     "Product " + productID,
			Price:    1999,
			Currency: "USD",
		},
		AddedAt: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestNewState_Empty(t *testing.T) {
	s := NewState()
	assert.Equal(t, StatusIdle, s.Status)
	assert.Empty(t, s.Items)
	assert.Empty(t, s.LastError)
}

func TestReduce_LoadStart(t *testing.T) {
	s := Reduce(NewState(), LoadStart{})
	assert.Equal(t, StatusLoading, s.Status)
}

func TestReduce_LoadStart_ClearsPreviousError(t *testing.T) {
	s := State{Status: StatusError, LastError: "backend down", Items: []WishlistItem{item("p1")}}
	s = Reduce(s, LoadStart{})
	assert.Equal(t, StatusLoading, s.Status)
	assert.Empty(t, s.LastError)
	// Re-entrant refresh keeps last-known items visible while loading.
	assert.Len(t, s.Items, 1)
}

func TestReduce_LoadSuccess_ReplacesItems(t *testing.T) {
	s := State{Status: StatusLoading, Items: []WishlistItem{item("old")}}
	s = Reduce(s, LoadSuccess{Items: []WishlistItem{item("p1"), item("p2")}})

	assert.Equal(t, StatusReady, s.Status)
	require.Len(t, s.Items, 2)
	assert.Equal(t, "p1", s.Items[0].ProductID)
	assert.Equal(t, "p2", s.Items[1].ProductID)
}

func TestReduce_LoadSuccess_CopiesInput(t *testing.T) {
	in := []WishlistItem{item("p1")}
	s := Reduce(NewState(), LoadSuccess{Items: in})

	in[0].ProductID = "mutated"
	assert.Equal(t, "p1", s.Items[0].ProductID)
}

func TestReduce_LoadError_KeepsLastKnownItems(t *testing.T) {
	s := Reduce(NewState(), LoadSuccess{Items: []WishlistItem{item("p1")}})
	s = Reduce(s, LoadError{Message: "network unreachable"})

	assert.Equal(t, StatusError, s.Status)
	assert.Equal(t, "network unreachable", s.LastError)
	require.Len(t, s.Items, 1)
	assert.Equal(t, "p1", s.Items[0].ProductID)
}

func TestReduce_ItemAdded_Appends(t *testing.T) {
	s := Reduce(NewState(), LoadSuccess{Items: []WishlistItem{item("p1")}})
	s = Reduce(s, ItemAdded{Item: item("p2")})

	assert.Equal(t, StatusReady, s.Status)
	require.Len(t, s.Items, 2)
	assert.Equal(t, "p2", s.Items[1].ProductID)
}

func TestReduce_ItemAdded_DoesNotDeduplicate(t *testing.T) {
	// De-duplication is the caller's job, enforced before dispatch.
	s := Reduce(NewState(), ItemAdded{Item: item("p1")})
	s = Reduce(s, ItemAdded{Item: item("p1")})
	assert.Len(t, s.Items, 2)
}

func TestReduce_ItemRemoved_FiltersByProductID(t *testing.T) {
	s := Reduce(NewState(), LoadSuccess{Items: []WishlistItem{item("p1"), item("p2")}})
	s = Reduce(s, ItemRemoved{ProductID: "p1"})

	require.Len(t, s.Items, 1)
	assert.Equal(t, "p2", s.Items[0].ProductID)
}

func TestReduce_ItemRemoved_AbsentIDIsNoOp(t *testing.T) {
	before := Reduce(NewState(), LoadSuccess{Items: []WishlistItem{item("p1")}})
	after := Reduce(before, ItemRemoved{ProductID: "missing"})

	assert.Equal(t, before.Items, after.Items)
	assert.Equal(t, StatusReady, after.Status)
}

func TestReduce_Cleared(t *testing.T) {
	s := Reduce(NewState(), LoadSuccess{Items: []WishlistItem{item("p1"), item("p2")}})
	s = Reduce(s, Cleared{})

	assert.Empty(t, s.Items)
	assert.Equal(t, StatusReady, s.Status)
}

func TestReduce_DoesNotMutateInputState(t *testing.T) {
	original := Reduce(NewState(), LoadSuccess{Items: []WishlistItem{item("p1"), item("p2")}})

	_ = Reduce(original, ItemRemoved{ProductID: "p1"})
	_ = Reduce(original, ItemAdded{Item: item("p3")})
	_ = Reduce(original, Cleared{})

	require.Len(t, original.Items, 2)
	assert.Equal(t, "p1", original.Items[0].ProductID)
	assert.Equal(t, "p2", original.Items[1].ProductID)
}

func TestReduce_UnrelatedIntentsCommute(t *testing.T) {
	// Interleaved completions for distinct products may apply in either
	// order; the end state must match.
	base := Reduce(NewState(), LoadSuccess{Items: []WishlistItem{item("p1"), item("p2")}})

	ab := Reduce(Reduce(base, ItemAdded{Item: item("p3")}), ItemRemoved{ProductID: "p1"})
	ba := Reduce(Reduce(base, ItemRemoved{ProductID: "p1"}), ItemAdded{Item: item("p3")})

	assert.ElementsMatch(t, ab.Items, ba.Items)
}

func TestState_Contains(t *testing.T) {
	s := Reduce(NewState(), LoadSuccess{Items: []WishlistItem{item("p1")}})
	assert.True(t, s.Contains("p1"))
	assert.False(t, s.Contains("p2"))
}

func TestFindItem(t *testing.T) {
	items := []WishlistItem{item("p1"), item("p2")}
	assert.Equal(t, 0, FindItem(items, "p1"))
	assert.Equal(t, 1, FindItem(items, "p2"))
	assert.Equal(t, -1, FindItem(items, "p3"))
}

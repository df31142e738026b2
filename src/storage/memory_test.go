package storage

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type record struct {
	Topic string `json:"topic"`
	Quiz  string `json:"quiz"`
}

func TestMemoryStorageRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStorage()

	require.NoError(t, store.Set(ctx, "checkpoint:ui-1", record{Topic: "HTTP", Quiz: "Q: a A: b"}, time.Minute))

	var got record
	require.NoError(t, store.Get(ctx, "checkpoint:ui-1", &got))
	assert.Equal(t, record{Topic: "HTTP", Quiz: "Q: a A: b"}, got)

	require.NoError(t, store.Delete(ctx, "checkpoint:ui-1"))
	assert.ErrorIs(t, store.Get(ctx, "checkpoint:ui-1", &got), ErrNotFound)
}

func TestMemoryStorageExpiry(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStorage()
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }

	require.NoError(t, store.Set(ctx, "short", record{Topic: "a"}, time.Second))
	require.NoError(t, store.Set(ctx, "forever", record{Topic: "b"}, 0))

	now = now.Add(2 * time.Second)

	var got record
	assert.ErrorIs(t, store.Get(ctx, "short", &got), ErrNotFound)
	require.NoError(t, store.Get(ctx, "forever", &got))
	assert.Equal(t, "b", got.Topic)
}

func TestMemoryStorageValuesAreCopied(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStorage()

	value := record{Topic: "first"}
	require.NoError(t, store.Set(ctx, "k", value, 0))
	value.Topic = "mutated"

	var got record
	require.NoError(t, store.Get(ctx, "k", &got))
	assert.Equal(t, "first", got.Topic)
}

package storage

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Runs only when a Redis instance is reachable through REDIS_URL
func TestRedisStorageRoundTrip(t *testing.T) {
	redisURL := os.Getenv("REDIS_URL")
	if redisURL == "" {
		t.Skip("REDIS_URL not set")
	}

	ctx := context.Background()
	store, err := NewRedisStorage(ctx, redisURL)
	require.NoError(t, err)
	defer store.Close()

	key := "checkpoint:test-" + time.Now().Format("150405.000000")
	require.NoError(t, store.Set(ctx, key, record{Topic: "Photosynthesis"}, time.Minute))

	var got record
	require.NoError(t, store.Get(ctx, key, &got))
	assert.Equal(t, "Photosynthesis", got.Topic)

	require.NoError(t, store.Ping(ctx))

	require.NoError(t, store.Delete(ctx, key))
	assert.ErrorIs(t, store.Get(ctx, key, &got), ErrNotFound)
}

func TestNewRedisStorageRequiresURL(t *testing.T) {
	_, err := NewRedisStorage(context.Background(), "")
	assert.Error(t, err)
}

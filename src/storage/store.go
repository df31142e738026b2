package storage

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned by Get when the key is absent or expired
var ErrNotFound = errors.New("storage: key not found")

// Store is a TTL key/value store for JSON-encoded values
type Store interface {
	Set(ctx context.Context, key string, data any, ttl time.Duration) error
	Get(ctx context.Context, key string, dest any) error
	Delete(ctx context.Context, key string) error
	Close() error
}

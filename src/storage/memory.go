package storage

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/bytedance/sonic"
)

type memoryEntry struct {
	data      []byte
	expiresAt time.Time
}

// MemoryStorage implements Store in process memory. Values are kept encoded
// so callers never share mutable state with the store.
type MemoryStorage struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
	now     func() time.Time
}

// NewMemoryStorage creates an empty in-memory store
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{
		entries: make(map[string]memoryEntry),
		now:     time.Now,
	}
}

// Set stores data; ttl <= 0 means no expiry
func (m *MemoryStorage) Set(ctx context.Context, key string, data any, ttl time.Duration) error {
	encoded, err := sonic.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to marshal value: %w", err)
	}

	entry := memoryEntry{data: encoded}
	if ttl > 0 {
		entry.expiresAt = m.now().Add(ttl)
	}

	m.mu.Lock()
	m.entries[key] = entry
	m.mu.Unlock()
	return nil
}

// Get decodes the value stored under key into dest
func (m *MemoryStorage) Get(ctx context.Context, key string, dest any) error {
	m.mu.RLock()
	entry, ok := m.entries[key]
	m.mu.RUnlock()

	if !ok {
		return ErrNotFound
	}
	if !entry.expiresAt.IsZero() && !m.now().Before(entry.expiresAt) {
		_ = m.Delete(ctx, key)
		return ErrNotFound
	}

	if err := sonic.Unmarshal(entry.data, dest); err != nil {
		return fmt.Errorf("failed to unmarshal %s: %w", key, err)
	}
	return nil
}

// Delete removes key
func (m *MemoryStorage) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	delete(m.entries, key)
	m.mu.Unlock()
	return nil
}

// Close is a no-op
func (m *MemoryStorage) Close() error {
	return nil
}

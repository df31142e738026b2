package core

import (
	"context"
	"edusync/src/model"
	"edusync/src/storage"
	"errors"
	"fmt"
	"time"
)

// ErrCheckpointNotFound is returned when a thread has no checkpoint
var ErrCheckpointNotFound = errors.New("checkpoint not found")

// StoreCheckpointer keeps checkpoints in a storage.Store
type StoreCheckpointer struct {
	store storage.Store
	ttl   time.Duration
}

// NewStoreCheckpointer creates a checkpointer; ttl <= 0 keeps entries forever
func NewStoreCheckpointer(store storage.Store, ttl time.Duration) *StoreCheckpointer {
	return &StoreCheckpointer{store: store, ttl: ttl}
}

func (c *StoreCheckpointer) key(threadID string) string {
	return model.CheckpointKeyPrefix + threadID
}

// Save overwrites the thread's checkpoint
func (c *StoreCheckpointer) Save(ctx context.Context, checkpoint Checkpoint) error {
	if checkpoint.ThreadID == "" {
		return fmt.Errorf("checkpoint has no thread id")
	}
	if err := c.store.Set(ctx, c.key(checkpoint.ThreadID), checkpoint, c.ttl); err != nil {
		return fmt.Errorf("save checkpoint %s: %w", checkpoint.ThreadID, err)
	}
	return nil
}

// Load returns the latest checkpoint of threadID
func (c *StoreCheckpointer) Load(ctx context.Context, threadID string) (*Checkpoint, error) {
	var checkpoint Checkpoint
	if err := c.store.Get(ctx, c.key(threadID), &checkpoint); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrCheckpointNotFound
		}
		return nil, fmt.Errorf("load checkpoint %s: %w", threadID, err)
	}
	return &checkpoint, nil
}

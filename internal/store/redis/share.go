package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/MrSnakeDoc/linkboard/internal/share"
	"github.com/redis/go-redis/v9"
)

// SaveSnapshot stores a shared category under its identifier.
func (s *Store) SaveSnapshot(ctx context.Context, id string, snap share.Snapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot: %w", err)
	}

	if err := s.client.Set(ctx, SharedKey(id), data, s.shareTTL).Err(); err != nil {
		return fmt.Errorf("failed to save snapshot: %w", err)
	}
	return nil
}

// GetSnapshot loads a shared category.
func (s *Store) GetSnapshot(ctx context.Context, id string) (*share.Snapshot, error) {
	data, err := s.client.Get(ctx, SharedKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, share.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get snapshot: %w", err)
	}

	var snap share.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("%w: %v", share.ErrCorrupt, err)
	}
	if snap.Emoji != nil && !snap.Emoji.Valid() {
		return nil, fmt.Errorf("%w: bad emoji", share.ErrCorrupt)
	}
	return &snap, nil
}

package redis

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/redis/go-redis/v9"
)

// IncrementViews bumps the viewer counter of a shared category. The
// counter expires together with the snapshot.
func (s *Store) IncrementViews(ctx context.Context, id string) (int64, error) {
	key := SharedViewsKey(id)

	pipe := s.client.TxPipeline()
	incr := pipe.Incr(ctx, key)
	if s.shareTTL > 0 {
		pipe.Expire(ctx, key, s.shareTTL)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return 0, fmt.Errorf("failed to count view: %w", err)
	}
	return incr.Val(), nil
}

// GetViews returns the counter without touching it.
func (s *Store) GetViews(ctx context.Context, id string) (int64, error) {
	raw, err := s.client.Get(ctx, SharedViewsKey(id)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, nil
		}
		return 0, fmt.Errorf("failed to get views: %w", err)
	}

	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("bad view counter for %s: %w", id, err)
	}
	return n, nil
}

// GetUsageStats returns the view counters of every shared category.
func (s *Store) GetUsageStats(ctx context.Context) (map[string]int64, error) {
	stats := make(map[string]int64)

	iter := s.client.Scan(ctx, 0, KeyPrefixSharedViews+"*", 0).Iterator()
	for iter.Next(ctx) {
		key := iter.Val()
		id := key[len(KeyPrefixSharedViews):]
		n, err := s.GetViews(ctx, id)
		if err != nil {
			return nil, err
		}
		stats[id] = n
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("failed to scan view counters: %w", err)
	}
	return stats, nil
}

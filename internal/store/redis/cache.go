package redis

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// CacheResolution remembers which URL an open query led to on a board.
func (s *Store) CacheResolution(ctx context.Context, boardID, query, url string) error {
	if err := s.client.Set(ctx, CacheKey(boardID, query), url, s.cacheTTL).Err(); err != nil {
		return fmt.Errorf("failed to cache resolution: %w", err)
	}
	return nil
}

// GetCachedResolution returns the cached URL, or "" on a miss.
func (s *Store) GetCachedResolution(ctx context.Context, boardID, query string) (string, error) {
	url, err := s.client.Get(ctx, CacheKey(boardID, query)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", nil // Cache miss
		}
		return "", fmt.Errorf("failed to get cached resolution: %w", err)
	}
	return url, nil
}

// InvalidateBoardCache drops every cached resolution of a board.
func (s *Store) InvalidateBoardCache(ctx context.Context, boardID string) error {
	return s.deleteMatching(ctx, boardCachePattern(boardID))
}

// FlushCache removes all cached resolutions
func (s *Store) FlushCache(ctx context.Context) error {
	return s.deleteMatching(ctx, KeyPrefixCache+"*")
}

func (s *Store) deleteMatching(ctx context.Context, pattern string) error {
	iter := s.client.Scan(ctx, 0, pattern, 0).Iterator()
	for iter.Next(ctx) {
		if err := s.client.Del(ctx, iter.Val()).Err(); err != nil {
			return fmt.Errorf("failed to delete cache key: %w", err)
		}
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("failed to flush cache: %w", err)
	}
	return nil
}

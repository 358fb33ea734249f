package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/MrSnakeDoc/linkboard/internal/domain"
	"github.com/redis/go-redis/v9"
)

const (
	// DefaultBoardTTL is how long an untouched board survives (30 days)
	DefaultBoardTTL = 30 * 24 * time.Hour
	// DefaultCacheTTL is the default TTL for cached resolutions (24 hours)
	DefaultCacheTTL = 24 * time.Hour
)

// Store handles Redis operations for boards, shared snapshots and caches
type Store struct {
	client   *redis.Client
	boardTTL time.Duration
	shareTTL time.Duration
	cacheTTL time.Duration
	now      func() time.Time
}

// Option tunes a Store.
type Option func(*Store)

// WithBoardTTL sets the sliding expiry of boards; 0 keeps them forever.
func WithBoardTTL(d time.Duration) Option { return func(s *Store) { s.boardTTL = d } }

// WithShareTTL sets the expiry of snapshots; 0 keeps them forever.
func WithShareTTL(d time.Duration) Option { return func(s *Store) { s.shareTTL = d } }

// WithCacheTTL sets the expiry of cached resolutions.
func WithCacheTTL(d time.Duration) Option { return func(s *Store) { s.cacheTTL = d } }

// NewStore creates a new Redis store
func NewStore(client *redis.Client, opts ...Option) *Store {
	s := &Store{
		client:   client,
		boardTTL: DefaultBoardTTL,
		cacheTTL: DefaultCacheTTL,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Ping reports whether redis answers.
func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// boardRecord is the stored form of a board.
type boardRecord struct {
	ID        string       `json:"id"`
	Version   uint64       `json:"version"`
	UpdatedAt time.Time    `json:"updatedAt"`
	State     domain.State `json:"state"`
}

func (s *Store) encodeBoard(id string, state domain.State, version uint64) ([]byte, error) {
	data, err := json.Marshal(boardRecord{
		ID:        id,
		Version:   version,
		UpdatedAt: s.now().UTC(),
		State:     state,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal board %s: %w", id, err)
	}
	return data, nil
}

// SaveBoard stores a board and refreshes its expiry.
func (s *Store) SaveBoard(ctx context.Context, id string, state domain.State, version uint64) error {
	data, err := s.encodeBoard(id, state, version)
	if err != nil {
		return err
	}

	pipe := s.client.TxPipeline()
	pipe.Set(ctx, BoardKey(id), data, s.boardTTL)
	pipe.SAdd(ctx, AllBoardsKey(), id)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to save board %s: %w", id, err)
	}
	return nil
}

// SaveBoardsMany stores several boards in one round trip.
func (s *Store) SaveBoardsMany(ctx context.Context, boards []domain.Board) error {
	if len(boards) == 0 {
		return nil
	}

	pipe := s.client.Pipeline()
	for _, b := range boards {
		data, err := s.encodeBoard(b.ID, b.State, b.Version)
		if err != nil {
			return err
		}
		pipe.Set(ctx, BoardKey(b.ID), data, s.boardTTL)
		pipe.SAdd(ctx, AllBoardsKey(), b.ID)
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to save boards: %w", err)
	}
	return nil
}

// GetBoard loads a board. Unknown or expired IDs yield
// domain.ErrBoardNotFound; stored data breaking the board invariants is
// rejected.
func (s *Store) GetBoard(ctx context.Context, id string) (domain.State, uint64, error) {
	data, err := s.client.Get(ctx, BoardKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return domain.State{}, 0, fmt.Errorf("%s: %w", id, domain.ErrBoardNotFound)
		}
		return domain.State{}, 0, fmt.Errorf("failed to get board: %w", err)
	}

	var rec boardRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return domain.State{}, 0, fmt.Errorf("failed to unmarshal board %s: %w", id, err)
	}

	state := rec.State.Normalized()
	if err := state.CheckInvariants(); err != nil {
		return domain.State{}, 0, fmt.Errorf("board %s is corrupt: %w", id, err)
	}
	return state, rec.Version, nil
}

// BoardIDs lists every board ID known to the store.
func (s *Store) BoardIDs(ctx context.Context) ([]string, error) {
	ids, err := s.client.SMembers(ctx, AllBoardsKey()).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get board IDs: %w", err)
	}
	return ids, nil
}

// DeleteBoard removes a board and its cached resolutions.
func (s *Store) DeleteBoard(ctx context.Context, id string) error {
	if err := s.client.Del(ctx, BoardKey(id)).Err(); err != nil {
		return fmt.Errorf("failed to delete board: %w", err)
	}
	if err := s.client.SRem(ctx, AllBoardsKey(), id).Err(); err != nil {
		return fmt.Errorf("failed to remove board from set: %w", err)
	}
	return s.InvalidateBoardCache(ctx, id)
}

// PruneBoardIDs drops set members whose board key has expired and returns
// how many were removed.
func (s *Store) PruneBoardIDs(ctx context.Context) (int, error) {
	ids, err := s.BoardIDs(ctx)
	if err != nil {
		return 0, err
	}

	var stale []interface{}
	for _, id := range ids {
		n, err := s.client.Exists(ctx, BoardKey(id)).Result()
		if err != nil {
			return 0, fmt.Errorf("failed to check board %s: %w", id, err)
		}
		if n == 0 {
			stale = append(stale, id)
		}
	}
	if len(stale) == 0 {
		return 0, nil
	}

	if err := s.client.SRem(ctx, AllBoardsKey(), stale...).Err(); err != nil {
		return 0, fmt.Errorf("failed to prune board set: %w", err)
	}
	return len(stale), nil
}

package scheduler

import (
	"context"
	"errors"

	"github.com/MrSnakeDoc/linkboard/internal/board"
	"github.com/MrSnakeDoc/linkboard/internal/domain"
	"github.com/MrSnakeDoc/linkboard/internal/logger"
	redisstore "github.com/MrSnakeDoc/linkboard/internal/store/redis"
)

// DefaultWarmLimit caps how many boards are loaded into memory at startup
const DefaultWarmLimit = 256

// RedisSyncer moves boards between redis and the session index
type RedisSyncer struct {
	store  *redisstore.Store
	boards *board.Service
	logger logger.Logger
	limit  int
}

// NewRedisSyncer creates a new Redis syncer; limit <= 0 selects
// DefaultWarmLimit.
func NewRedisSyncer(
	store *redisstore.Store,
	boards *board.Service,
	log logger.Logger,
	limit int,
) *RedisSyncer {
	if limit <= 0 {
		limit = DefaultWarmLimit
	}
	return &RedisSyncer{
		store:  store,
		boards: boards,
		logger: log,
		limit:  limit,
	}
}

// Sync warms the session index with boards stored in redis
func (rs *RedisSyncer) Sync(ctx context.Context) error {
	rs.logger.Info("syncing boards from redis to memory")

	// Resolutions cached by a previous run may follow an older ranking.
	if err := rs.store.FlushCache(ctx); err != nil {
		rs.logger.Warn("failed to flush resolution cache", logger.Error(err))
	}

	ids, err := rs.store.BoardIDs(ctx)
	if err != nil {
		return err
	}

	if len(ids) == 0 {
		rs.logger.Info("no boards found in redis")
		return nil
	}

	loaded, missing := 0, 0
	for _, id := range ids {
		if loaded >= rs.limit {
			break
		}
		if _, err := rs.boards.Open(ctx, id); err != nil {
			if errors.Is(err, domain.ErrBoardNotFound) {
				missing++
				continue
			}
			rs.logger.Warn("skipping unreadable board",
				logger.String("board", id),
				logger.Error(err))
			continue
		}
		loaded++
	}

	rs.logger.Info("synced boards from redis",
		logger.Int("loaded", loaded),
		logger.Int("expired", missing),
		logger.Int("stored", len(ids)))

	return nil
}

// Flush writes every unsaved session back to redis, for shutdown
func (rs *RedisSyncer) Flush(ctx context.Context) error {
	saved, err := rs.boards.PersistAll(ctx)
	rs.logger.Info("flushed boards to redis", logger.Int("saved", saved))
	return err
}

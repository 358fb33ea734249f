package scheduler

import (
	"context"
	"time"

	"github.com/MrSnakeDoc/linkboard/internal/board"
	"github.com/MrSnakeDoc/linkboard/internal/logger"
	redisstore "github.com/MrSnakeDoc/linkboard/internal/store/redis"
)

const (
	// DefaultIdleThreshold is how long a session stays in memory unused
	DefaultIdleThreshold = 24 * time.Hour
)

// GarbageCollector unloads idle sessions and prunes expired board IDs
type GarbageCollector struct {
	boards    *board.Service
	store     *redisstore.Store // optional
	logger    logger.Logger
	interval  time.Duration
	threshold time.Duration
	stopCh    chan struct{}
	now       func() time.Time
}

// NewGarbageCollector creates a new garbage collector
func NewGarbageCollector(
	boards *board.Service,
	store *redisstore.Store,
	log logger.Logger,
	interval time.Duration,
	threshold time.Duration,
) *GarbageCollector {
	if threshold == 0 {
		threshold = DefaultIdleThreshold
	}

	return &GarbageCollector{
		boards:    boards,
		store:     store,
		logger:    log,
		interval:  interval,
		threshold: threshold,
		stopCh:    make(chan struct{}),
		now:       time.Now,
	}
}

// Start begins the periodic garbage collection process
func (gc *GarbageCollector) Start(ctx context.Context) error {
	if err := gc.Collect(ctx); err != nil {
		gc.logger.Warn("initial garbage collection failed",
			logger.Error(err))
	}

	ticker := time.NewTicker(gc.interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if err := gc.Collect(ctx); err != nil {
					gc.logger.Error("garbage collection failed",
						logger.Error(err))
				}
			case <-gc.stopCh:
				return
			case <-ctx.Done():
				return
			}
		}
	}()

	return nil
}

// Stop stops the garbage collector
func (gc *GarbageCollector) Stop() {
	close(gc.stopCh)
}

// Collect saves and unloads sessions idle beyond the threshold, then drops
// board IDs whose data expired in redis.
func (gc *GarbageCollector) Collect(ctx context.Context) error {
	gc.logger.Debug("running garbage collection for idle boards")

	cutoff := gc.now().Add(-gc.threshold)
	evicted, err := gc.boards.EvictIdle(ctx, cutoff)
	if err != nil {
		return err
	}

	pruned := 0
	if gc.store != nil {
		if pruned, err = gc.store.PruneBoardIDs(ctx); err != nil {
			gc.logger.Warn("failed to prune board IDs", logger.Error(err))
		}
	}

	if evicted > 0 || pruned > 0 {
		gc.logger.Info("garbage collection completed",
			logger.Int("sessions_evicted", evicted),
			logger.Int("ids_pruned", pruned),
			logger.Int("sessions_live", gc.boards.Index().Count()))
	} else {
		gc.logger.Debug("no items to garbage collect")
	}

	return nil
}

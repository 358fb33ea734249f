package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/MrSnakeDoc/linkboard/internal/logger"
	"github.com/MrSnakeDoc/linkboard/internal/sources/seed"
)

// SeedReloader keeps the starter template in sync with the seed file
type SeedReloader struct {
	loader        *seed.Loader // nil when no seed file is configured
	template      *seed.Template
	logger        logger.Logger
	interval      time.Duration
	stopCh        chan struct{}
	manualTrigger chan struct{}
}

// NewSeedReloader creates a new seed reloader. An empty seedFile keeps
// new boards empty.
func NewSeedReloader(
	seedFile string,
	template *seed.Template,
	log logger.Logger,
	interval time.Duration,
	manualTrigger chan struct{},
) *SeedReloader {
	var loader *seed.Loader
	if seedFile != "" {
		loader = seed.NewLoader(seedFile)
	}
	return &SeedReloader{
		loader:        loader,
		template:      template,
		logger:        log,
		interval:      interval,
		stopCh:        make(chan struct{}),
		manualTrigger: manualTrigger,
	}
}

// Start loads the seed once, then again on every tick or manual trigger
func (sr *SeedReloader) Start(ctx context.Context) error {
	if err := sr.Reload(ctx); err != nil {
		return fmt.Errorf("initial seed reload failed: %w", err)
	}
	if sr.loader == nil {
		return nil
	}

	ticker := time.NewTicker(sr.interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				sr.reloadLogged(ctx)
			case <-sr.manualTrigger:
				sr.logger.Info("manual seed reload triggered")
				sr.reloadLogged(ctx)
			case <-sr.stopCh:
				return
			case <-ctx.Done():
				return
			}
		}
	}()

	return nil
}

// Stop stops the reloader
func (sr *SeedReloader) Stop() {
	close(sr.stopCh)
}

func (sr *SeedReloader) reloadLogged(ctx context.Context) {
	if err := sr.Reload(ctx); err != nil {
		sr.logger.Error("failed to reload seed", logger.Error(err))
	}
}

// Reload reads the seed file and swaps the template. On error the
// previous template stays in place.
func (sr *SeedReloader) Reload(ctx context.Context) error {
	if sr.loader == nil {
		sr.logger.Debug("no seed file configured, new boards start empty")
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	sr.logger.Info("reloading seed", logger.String("file", sr.loader.Path()))

	file, err := sr.loader.Load()
	if err != nil {
		return fmt.Errorf("failed to load seed: %w", err)
	}

	state, skipped := seed.Build(file)
	for _, err := range skipped {
		sr.logger.Warn("seed entry skipped", logger.Error(err))
	}

	sr.template.Set(state)

	sr.logger.Info("seed loaded",
		logger.Int("categories", state.CategoryCount()),
		logger.Int("bookmarks", state.BookmarkCount()),
		logger.Int("skipped", len(skipped)))

	return nil
}

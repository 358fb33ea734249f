package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/MrSnakeDoc/linkboard/internal/board"
	"github.com/MrSnakeDoc/linkboard/internal/config"
	"github.com/MrSnakeDoc/linkboard/internal/httpserver"
	"github.com/MrSnakeDoc/linkboard/internal/httpserver/deps"
	"github.com/MrSnakeDoc/linkboard/internal/index"
	"github.com/MrSnakeDoc/linkboard/internal/logger"
	"github.com/MrSnakeDoc/linkboard/internal/redis"
	"github.com/MrSnakeDoc/linkboard/internal/scheduler"
	"github.com/MrSnakeDoc/linkboard/internal/session"
	"github.com/MrSnakeDoc/linkboard/internal/share"
	"github.com/MrSnakeDoc/linkboard/internal/sources/seed"
	redisstore "github.com/MrSnakeDoc/linkboard/internal/store/redis"
	"github.com/MrSnakeDoc/linkboard/internal/version"
)

type App struct {
	cfg         *config.Config
	logger      logger.Logger
	server      *httpserver.Server
	redisClient *goredis.Client
	boards      *board.Service
	syncer      *scheduler.RedisSyncer
	reloader    *scheduler.SeedReloader
	gc          *scheduler.GarbageCollector
}

func New() *App {
	cfg := config.Load()

	loggerClient := logger.New(cfg.LogLevel, cfg.PrettyLog)

	// Initialize Redis early - fail fast if unavailable
	loggerClient.Infof("Connecting to Redis at %s", cfg.RedisAddr)
	redisClient, err := redis.New(redis.ConnectOptions{
		Addr:           cfg.RedisAddr,
		User:           cfg.RedisUser,
		Password:       cfg.RedisPassword,
		DB:             cfg.RedisDB,
		DialTimeout:    cfg.RedisDT,
		ReadTimeout:    cfg.RedisRT,
		WriteTimeout:   cfg.RedisWT,
		PoolSize:       cfg.RedisPoolSize,
		ConnectTimeout: cfg.RedisConnectTimeout,
		RetryInterval:  cfg.RedisRetryInterval,
		MaxWait:        cfg.RedisMaxWait,
		PingTimeout:    cfg.RedisPingTimeout,
		WarnThreshold:  cfg.RedisWarnThreshold,
	}, loggerClient)
	if err != nil {
		loggerClient.Errorf("Failed to connect to Redis: %v", err)
		os.Exit(1)
	}
	loggerClient.Info("Redis initialized successfully")

	store := redisstore.NewStore(redisClient,
		redisstore.WithBoardTTL(cfg.BoardTTL),
		redisstore.WithShareTTL(cfg.ShareTTL),
		redisstore.WithCacheTTL(cfg.CacheTTL),
	)
	exporter := share.NewExporter(store, cfg.SharePath)

	// Starter content of new boards, filled by the seed reloader
	template := seed.NewTemplate()

	boards := board.NewService(board.Options{
		Repo:  store,
		Cache: store,
		Index: index.NewSessionIndex(),
		Seed:  template.Get,
		Session: session.Options{
			ToastDuration: cfg.ToastDuration,
			Exporter:      exporter,
		},
		Logger: loggerClient,
	})

	// Create manual reload trigger channel (only useful with a seed file)
	var reloadTrigger chan struct{}
	if cfg.SeedFile != "" {
		reloadTrigger = make(chan struct{}, 1)
	} else {
		loggerClient.Info("no seed file configured, new boards start empty")
	}

	reloader := scheduler.NewSeedReloader(
		cfg.SeedFile,
		template,
		loggerClient,
		cfg.ReloadInterval,
		reloadTrigger,
	)

	gc := scheduler.NewGarbageCollector(
		boards,
		store,
		loggerClient,
		cfg.GCInterval,
		cfg.SessionIdleTTL,
	)

	syncer := scheduler.NewRedisSyncer(store, boards, loggerClient, cfg.WarmLimit)

	// Dependencies passed to routes (extend as needed).
	d := deps.Deps{
		Logger:        loggerClient,
		StartTime:     time.Now(),
		Version:       version.Version,
		Commit:        version.Commit,
		BuildDate:     version.BuildDate,
		GoVersion:     version.GoVersion,
		TimeNow:       time.Now,
		AllowedHosts:  cfg.AllowedHosts,
		AllowedCIDRS:  cfg.AllowedCIDRS,
		CORSOrigins:   cfg.CORSOrigins,
		TrustProxy:    cfg.TrustProxy,
		SeedFile:      cfg.SeedFile,
		RedisClient:   redisClient,
		Store:         store,
		Boards:        boards,
		Exporter:      exporter,
		Template:      template,
		ReloadTrigger: reloadTrigger,
		SharePath:     cfg.SharePath,
		ShareRate: deps.RateLimit{
			Burst:     cfg.ShareRateBurst,
			PerMinute: cfg.ShareRatePerMin,
		},
	}

	server := httpserver.New(cfg, loggerClient, d)

	return &App{
		cfg:         cfg,
		logger:      loggerClient,
		server:      server,
		redisClient: redisClient,
		boards:      boards,
		syncer:      syncer,
		reloader:    reloader,
		gc:          gc,
	}
}

func (a *App) Run() error {
	a.logger.Infof("🚀 Starting linkboard v%s on %s", version.Version, a.cfg.ListenPort)
	a.logger.Infof("linkboard %s", version.String())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Load the seed template before any board is created
	if err := a.reloader.Start(ctx); err != nil {
		return fmt.Errorf("failed to start seed reloader: %w", err)
	}
	a.logger.Info("seed reloader started",
		logger.String("file", a.cfg.SeedFile),
		logger.Duration("interval", a.cfg.ReloadInterval))

	// Warm the session index with stored boards
	if err := a.syncer.Sync(ctx); err != nil {
		a.logger.Warn("failed to sync boards from redis on startup, boards load on demand",
			logger.Error(err))
	}

	// Start garbage collector
	if err := a.gc.Start(ctx); err != nil {
		return fmt.Errorf("failed to start garbage collector: %w", err)
	}
	a.logger.Info("garbage collector started",
		logger.Duration("interval", a.cfg.GCInterval),
		logger.Duration("idle_ttl", a.cfg.SessionIdleTTL))

	errCh := make(chan error, 1)
	go func() {
		if err := a.server.Start(); err != nil {
			errCh <- fmt.Errorf("http server error: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		a.logger.Info("⏳ Shutting down gracefully...")
	case err := <-errCh:
		return err
	}

	a.reloader.Stop()
	a.gc.Stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
	defer cancel()
	if err := a.server.Stop(shutdownCtx); err != nil {
		return fmt.Errorf("failed to stop server: %w", err)
	}

	// Save what the last requests changed before closing redis
	if err := a.syncer.Flush(shutdownCtx); err != nil {
		a.logger.Error("failed to flush boards to redis", logger.Error(err))
	}
	for _, id := range a.boards.Index().IDs() {
		a.boards.Index().Remove(id)
	}

	if a.redisClient != nil {
		if err := a.redisClient.Close(); err != nil {
			a.logger.Warnf("failed to close redis: %v", err)
		} else {
			a.logger.Info("✅ Redis closed cleanly")
		}
	}

	a.logger.Info("✅ linkboard stopped cleanly")
	_ = a.logger.Sync()
	return nil
}

package deps

import (
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/MrSnakeDoc/linkboard/internal/board"
	"github.com/MrSnakeDoc/linkboard/internal/logger"
	"github.com/MrSnakeDoc/linkboard/internal/share"
	"github.com/MrSnakeDoc/linkboard/internal/sources/seed"
	redisstore "github.com/MrSnakeDoc/linkboard/internal/store/redis"
)

type Deps struct {
	Logger         logger.Logger
	StartTime      time.Time
	Version        string
	Commit         string
	BuildDate      string
	GoVersion      string
	TimeNow        func() time.Time  // for testing, defaults to time.Now
	AllowedHosts   []string          // Host headers allowed to access the server
	AllowedCIDRS   []string          // IPs allowed to access infra endpoints
	CORSOrigins    []string          // allowed CORS origins, empty = "*"
	TrustProxy     bool              // true if running behind a trusted reverse proxy (e.g., cloudflared)
	SeedFile       string            // path of the starter board file, empty if none
	RedisClient    *redis.Client     // Redis client connection
	Store          *redisstore.Store // boards, snapshots, counters
	Boards         *board.Service    // live boards
	Exporter       *share.Exporter   // shared category snapshots
	Template       *seed.Template    // starter content of new boards
	ReloadTrigger  chan struct{}     // Channel to trigger a manual seed reload (nil if no seed file)
	SharePath      string            // viewer path prefix, ex: "/shared/"
	ShareRate      RateLimit         // limits on share creation and the viewer
	RequestTimeout time.Duration     // per-request timeout, 0 = 5s
}

// RateLimit mirrors mw.RateLimitConfig without importing mw.
type RateLimit struct {
	Burst     int
	PerMinute int
}

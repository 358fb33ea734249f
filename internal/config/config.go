package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	ListenPort      string        // ex: ":8080"
	ShutdownTimeout time.Duration // ex: 5s

	LogLevel  string // "debug" | "info" | "warn" | "error"
	PrettyLog bool   // true => zap dev (color), false => zap prod (JSON)

	SeedFile       string        // starter board YAML (optional, empty = new boards start empty)
	ReloadInterval time.Duration // interval to reload the seed file (default: 24h)
	GCInterval     time.Duration // interval to run garbage collection (default: 1h)
	SessionIdleTTL time.Duration // idle time before a session leaves memory (default: 24h)
	WarmLimit      int           // boards loaded from redis at startup (default: 256)

	BoardTTL      time.Duration // redis TTL of a board (0 = keep forever)
	ShareTTL      time.Duration // redis TTL of a shared snapshot (0 = keep forever)
	CacheTTL      time.Duration // TTL of cached open?q= resolutions
	SharePath     string        // path prefix of share links (ex: "/shared/")
	ToastDuration time.Duration // how long a toast stays visible

	ShareRateBurst  int // token bucket size for share endpoints
	ShareRatePerMin int // refill rate for share endpoints

	// Redis
	RedisAddr             string        // ex: "localhost:6379"
	RedisUser             string        // optional
	RedisPassword         string        // optional
	RedisPasswordRequired bool          // true => require password, false => allow empty password
	RedisDB               int           // Redis DB number
	RedisDT               time.Duration // Redis dial timeout (ex: 5s)
	RedisRT               time.Duration // Redis read timeout (ex: 3s)
	RedisWT               time.Duration // Redis write timeout (ex: 3s)
	RedisMaxWait          time.Duration // max wait between retries (ex: 10s)
	RedisPingTimeout      time.Duration // timeout for each ping attempt (ex: 5s)
	RedisPoolSize         int           // Redis connection pool size
	RedisConnectTimeout   time.Duration // Total time to retry connecting (ex: 30s)
	RedisRetryInterval    time.Duration // Initial wait between retries (ex: 2s, grows exponentially)
	RedisWarnThreshold    int           // warn after this many attempts

	AllowedHosts []string // optional, restrict access to specific Host headers
	AllowedCIDRS []string // optional, restrict infra endpoints to specific IPs (e.g. "1.2.3.4, 10.0.0.0/8")
	CORSOrigins  []string // optional, defaults to "*"
	TrustProxy   bool     // true => trust X-Forwarded-For headers (e.g. cloudflared)
}

func Load() *Config {
	cfg := &Config{
		// Server settings
		ListenPort:      getenv("LINKBOARD_LISTEN_PORT", ":8080"),
		ShutdownTimeout: mustDuration("LINKBOARD_SHUTDOWN_TIMEOUT", 5*time.Second),

		// Logging
		LogLevel:  getenv("LINKBOARD_LOG_LEVEL", "info"),
		PrettyLog: mustBool("LINKBOARD_PRETTY_LOG", true),

		// Boards
		SeedFile:       getenv("LINKBOARD_SEED_FILE", ""),
		ReloadInterval: mustDuration("LINKBOARD_RELOAD_SEED_INTERVAL", 24*time.Hour),
		GCInterval:     mustDuration("LINKBOARD_GC_INTERVAL", time.Hour),
		SessionIdleTTL: mustDuration("LINKBOARD_SESSION_IDLE_TTL", 24*time.Hour),
		WarmLimit:      getenvInt("LINKBOARD_WARM_LIMIT", 256),
		BoardTTL:       mustDuration("LINKBOARD_BOARD_TTL", 720*time.Hour),
		ShareTTL:       mustDuration("LINKBOARD_SHARE_TTL", 0),
		CacheTTL:       mustDuration("LINKBOARD_CACHE_TTL", 24*time.Hour),
		SharePath:      getenv("LINKBOARD_SHARE_PATH", "/shared/"),
		ToastDuration:  mustDuration("LINKBOARD_TOAST_DURATION", 3*time.Second),

		ShareRateBurst:  getenvInt("LINKBOARD_SHARE_RATE_BURST", 10),
		ShareRatePerMin: getenvInt("LINKBOARD_SHARE_RATE_PER_MIN", 30),

		// Redis settings
		RedisAddr:             requireEnv("LINKBOARD_REDIS_ADDR"),
		RedisUser:             getenv("LINKBOARD_REDIS_USERNAME", "default"),
		RedisPasswordRequired: mustBool("LINKBOARD_REDIS_PASSWORD_REQUIRED", true),
		RedisPassword:         getenv("LINKBOARD_REDIS_PASSWORD", ""),
		RedisDB:               requireEnvInt("LINKBOARD_REDIS_DB"),
		RedisDT:               mustDuration("REDIS_DIAL_TIMEOUT", 5*time.Second),
		RedisRT:               mustDuration("REDIS_READ_TIMEOUT", 3*time.Second),
		RedisWT:               mustDuration("REDIS_WRITE_TIMEOUT", 3*time.Second),
		RedisMaxWait:          mustDuration("REDIS_MAX_WAIT", 10*time.Second),
		RedisPingTimeout:      mustDuration("REDIS_PING_TIMEOUT", 5*time.Second),
		RedisPoolSize:         getenvInt("REDIS_POOL_SIZE", 10),
		RedisConnectTimeout:   mustDuration("REDIS_CONNECT_TIMEOUT", 30*time.Second),
		RedisRetryInterval:    mustDuration("REDIS_RETRY_INTERVAL", 2*time.Second),
		RedisWarnThreshold:    getenvInt("REDIS_WARN_THRESHOLD", 3),

		// Access restrictions
		AllowedHosts: splitAndTrim(getenv("LINKBOARD_ALLOWED_HOSTS", "")),
		AllowedCIDRS: splitAndTrim(getenv("LINKBOARD_ALLOWED_CIDRS", "")),
		CORSOrigins:  splitAndTrim(getenv("LINKBOARD_CORS_ORIGINS", "")),
		TrustProxy:   mustBool("LINKBOARD_TRUST_PROXY", true),
	}

	if !strings.HasPrefix(cfg.SharePath, "/") {
		cfg.SharePath = "/" + cfg.SharePath
	}
	if !strings.HasSuffix(cfg.SharePath, "/") {
		cfg.SharePath += "/"
	}

	// Validate Redis password configuration
	if cfg.RedisPasswordRequired && cfg.RedisPassword == "" {
		panic("❌ FATAL: LINKBOARD_REDIS_PASSWORD is required when LINKBOARD_REDIS_PASSWORD_REQUIRED=true")
	}

	// Log config only in debug mode with redacted sensitive fields
	if cfg.LogLevel == "debug" {
		cfgCopy := *cfg
		cfgCopy.RedisPassword = "***REDACTED***"
		if cfg.RedisUser != "" {
			cfgCopy.RedisUser = "***REDACTED***"
		}
		log.Printf("[DEBUG] cfg: %+v\n", cfgCopy)
	}

	return cfg
}

// helpers
func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func requireEnv(key string) string {
	v := os.Getenv(key)
	if v == "" {
		panic(fmt.Sprintf("❌ FATAL: Required environment variable %s is not set", key))
	}
	return v
}

func requireEnvInt(key string) int {
	v := os.Getenv(key)
	if v == "" {
		panic(fmt.Sprintf("❌ FATAL: Required environment variable %s is not set", key))
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		panic(fmt.Sprintf("❌ FATAL: Invalid integer value for %s: %s", key, v))
	}
	return i
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}

func mustBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return def
}

// mustDuration accepts "0" as an explicit zero, used by the TTL settings.
func mustDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

func splitAndTrim(s string) []string {
	if s == "" {
		return nil
	}
	raw := strings.Split(s, ",")
	parts := make([]string, 0, len(raw))
	for _, part := range raw {
		trimmed := strings.TrimSpace(part)
		// Remove surrounding quotes if present
		trimmed = strings.Trim(trimmed, `"'`)
		if trimmed != "" {
			parts = append(parts, trimmed)
		}
	}
	return parts
}

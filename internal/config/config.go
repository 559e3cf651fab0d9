package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"
)

type Config struct {
	ListenPort      string        // ex: ":8080"
	ShutdownTimeout time.Duration // ex: 5s

	LogLevel  string // "debug" | "info" | "warn" | "error"
	PrettyLog bool   // true => zap dev (color), false => zap prod (JSON)

	HolidayAPIBaseURL    string        // holiday data provider base URL
	HolidayAPIServiceKey string        // provider service key
	HolidayAPITimeout    time.Duration // per-request timeout (default: 10s)
	RefreshInterval      time.Duration // interval for the holiday refresh pass (default: 24h)
	ReconcileCronSpec    string        // cron spec for the nightly reconcile (empty = midnight)
	SoundCatalogFile     string        // path to sounds.yaml (optional, empty = built-ins only)

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
}

func Load() *Config {
	cfg := &Config{
		// Server settings
		ListenPort:      getenv("HALARM_LISTEN_PORT", ":8080"),
		ShutdownTimeout: mustDuration("HALARM_SHUTDOWN_TIMEOUT", 5*time.Second),

		// Logging
		LogLevel:  getenv("HALARM_LOG_LEVEL", "info"),
		PrettyLog: mustBool("HALARM_PRETTY_LOG", true),

		// Holiday data source
		HolidayAPIBaseURL:    requireEnv("HALARM_HOLIDAY_API_BASE_URL"),
		HolidayAPIServiceKey: requireEnv("HALARM_HOLIDAY_API_SERVICE_KEY"),
		HolidayAPITimeout:    mustDuration("HALARM_HOLIDAY_API_TIMEOUT", 10*time.Second),
		RefreshInterval:      mustDuration("HALARM_REFRESH_INTERVAL", 24*time.Hour),
		ReconcileCronSpec:    getenv("HALARM_RECONCILE_CRON", ""),
		SoundCatalogFile:     getenv("HALARM_SOUND_CATALOG_FILE", ""), // Optional, empty = built-in sounds only

		// Redis settings
		RedisAddr:             requireEnv("HALARM_REDIS_ADDR"),
		RedisUser:             getenv("HALARM_REDIS_USERNAME", "default"),
		RedisPasswordRequired: mustBool("HALARM_REDIS_PASSWORD_REQUIRED", true),
		RedisPassword:         getenv("HALARM_REDIS_PASSWORD", ""),
		RedisDB:               requireEnvInt("HALARM_REDIS_DB"),
		RedisDT:               mustDuration("REDIS_DIAL_TIMEOUT", 5*time.Second),
		RedisRT:               mustDuration("REDIS_READ_TIMEOUT", 3*time.Second),
		RedisWT:               mustDuration("REDIS_WRITE_TIMEOUT", 3*time.Second),
		RedisMaxWait:          mustDuration("REDIS_MAX_WAIT", 10*time.Second),
		RedisPingTimeout:      mustDuration("REDIS_PING_TIMEOUT", 5*time.Second),
		RedisPoolSize:         getenvInt("REDIS_POOL_SIZE", 10),
		RedisConnectTimeout:   mustDuration("REDIS_CONNECT_TIMEOUT", 30*time.Second),
		RedisRetryInterval:    mustDuration("REDIS_RETRY_INTERVAL", 2*time.Second),
		RedisWarnThreshold:    getenvInt("REDIS_WARN_THRESHOLD", 3),
	}

	// Validate Redis password configuration
	if cfg.RedisPasswordRequired && cfg.RedisPassword == "" {
		panic("❌ FATAL: HALARM_REDIS_PASSWORD is required when HALARM_REDIS_PASSWORD_REQUIRED=true")
	}

	// Log config only in debug mode with redacted sensitive fields
	if cfg.LogLevel == "debug" {
		cfgCopy := *cfg
		cfgCopy.RedisPassword = "***REDACTED***"
		cfgCopy.HolidayAPIServiceKey = "***REDACTED***"
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

func mustDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

package app

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	Issuer      string // Required: issuer claim for platform admin tokens
	TokenSecret string // Optional: shared HS256 secret; ephemeral when unset

	DBDriver      string // Optional: control-plane driver (sqlite, postgres) (default: sqlite)
	DatabaseFile  string // Optional: path to SQLite control-plane file (default: ./chambers.db)
	DataDir       string // Optional: directory for per-tenant SQLite files (default: ./data/tenants)
	DatabaseURL   string // Required for postgres: control-plane DSN
	MasterKeyPath string // Optional: path to master encryption key file

	NamespacePrefix    string        // Optional: tenant namespace prefix (default: tenant_)
	RegistryTTL        time.Duration // Optional: host cache TTL (default: 30s)
	PoolMaxEntries     int           // Optional: pooled tenant connections cap (default: 256)
	PoolIdleTTL        time.Duration // Optional: idle cutoff for the sweeper (default: 30m)
	PoolConnectTimeout time.Duration // Optional: provision + first ping bound (default: 10s)
	SweepInterval      time.Duration // Optional: idle sweep cadence (default: 5m)

	RedisAddr     string // Optional: enables the cross-node invalidation bus
	RedisPassword string // Optional

	DBMaxConns     int // Optional: control-plane pool size, postgres only (default: 10)
	DBMaxIdle      int // Optional (default: 5)
	TenantMaxConns int // Optional: per-tenant handle pool size (default: 4)
	TenantMaxIdle  int // Optional (default: 2)

	Env                 string        // Environment (dev, staging, prod) (default: dev)
	LogLevel            string        // Log level (debug, info, warn, error) (default: info)
	LogFormat           string        // Log format (json, text) (default: json)
	Port                int           // HTTP server port (default: 8080)
	ShutdownGracePeriod time.Duration // Graceful shutdown timeout (default: 10s)
}

func LoadConfig() Config {
	cfg := Config{
		Issuer:      os.Getenv("CHAMBERS_ISSUER"),
		TokenSecret: os.Getenv("CHAMBERS_TOKEN_SECRET"), // Optional: ephemeral when unset
		DBDriver:    getEnvOrDefault("CHAMBERS_DB_DRIVER", "sqlite"),
		DatabaseFile: getEnvOrDefault(
			"CHAMBERS_DATABASE_FILE",
			"chambers.db",
		),
		DataDir:       getEnvOrDefault("CHAMBERS_DATA_DIR", "data/tenants"),
		DatabaseURL:   os.Getenv("CHAMBERS_DATABASE_URL"),    // Required for postgres
		MasterKeyPath: os.Getenv("CHAMBERS_MASTER_KEY_PATH"), // Optional

		NamespacePrefix:    os.Getenv("CHAMBERS_NAMESPACE_PREFIX"), // Optional: tenancy default applies
		RegistryTTL:        getEnvDurationOrDefault("CHAMBERS_REGISTRY_TTL", 0),
		PoolMaxEntries:     getEnvIntOrDefault("CHAMBERS_POOL_MAX_ENTRIES", 0),
		PoolIdleTTL:        getEnvDurationOrDefault("CHAMBERS_POOL_IDLE_TTL", 0),
		PoolConnectTimeout: getEnvDurationOrDefault("CHAMBERS_POOL_CONNECT_TIMEOUT", 0),
		SweepInterval:      getEnvDurationOrDefault("CHAMBERS_SWEEP_INTERVAL", 0),

		RedisAddr:     os.Getenv("CHAMBERS_REDIS_ADDR"), // Optional: bus disabled when unset
		RedisPassword: os.Getenv("CHAMBERS_REDIS_PASSWORD"),

		DBMaxConns:     getEnvIntOrDefault("CHAMBERS_DB_MAX_CONNS", 10),
		DBMaxIdle:      getEnvIntOrDefault("CHAMBERS_DB_MAX_IDLE", 5),
		TenantMaxConns: getEnvIntOrDefault("CHAMBERS_TENANT_MAX_CONNS", 4),
		TenantMaxIdle:  getEnvIntOrDefault("CHAMBERS_TENANT_MAX_IDLE", 2),

		Env:                 getEnvOrDefault("ENV", "dev"),
		LogLevel:            getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:           getEnvOrDefault("LOG_FORMAT", "json"),
		Port:                getEnvIntOrDefault("PORT", 8080),
		ShutdownGracePeriod: getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),
	}

	if cfg.Issuer == "" {
		cfg.Issuer = "chambers-platform" // Default issuer
	}

	return cfg
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if intValue, err := strconv.Atoi(value); err == nil {
		return intValue
	}

	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	// Try parsing as duration (e.g. "1h", "30m", "90s")
	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}

	// Try parsing as integer seconds
	if seconds, err := strconv.Atoi(value); err == nil {
		return time.Duration(seconds) * time.Second
	}

	return defaultValue
}

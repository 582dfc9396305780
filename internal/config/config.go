package config

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"
)

// Config holds application level configuration loaded from environment and flags.
type Config struct {
	RunAddress        string
	DatabaseURI       string
	RedisAddress      string
	GatewayAddress    string
	GatewaySecret     string
	JWTSecret         string
	TokenTTL          time.Duration
	CacheTTL          time.Duration
	ReconcileInterval time.Duration
	ReconcileAge      time.Duration
	ReconcileBatch    int
	WorkerPoolSize    int
	ShutdownTimeout   time.Duration
}

const (
	defaultRunAddress        = ":8080"
	defaultJWTSecret         = "change-me-in-production"
	defaultTokenTTL          = 7 * 24 * time.Hour
	defaultCacheTTL          = 5 * time.Minute
	defaultReconcileInterval = 30 * time.Second
	defaultReconcileAge      = 2 * time.Minute
	defaultReconcileBatch    = 32
	defaultWorkerPoolSize    = 4
	defaultShutdownTimeout   = 10 * time.Second
)

// Load parses configuration from flags and environment variables.
func Load() (*Config, error) {
	return load(os.Args[1:], os.LookupEnv)
}

type envLookup func(string) (string, bool)

func load(args []string, lookup envLookup) (*Config, error) {
	cfg := &Config{
		RunAddress:        getString(lookup, "RUN_ADDRESS", defaultRunAddress),
		DatabaseURI:       getString(lookup, "DATABASE_URI", ""),
		RedisAddress:      getString(lookup, "REDIS_ADDRESS", ""),
		GatewayAddress:    getString(lookup, "GATEWAY_ADDRESS", ""),
		GatewaySecret:     getString(lookup, "GATEWAY_SECRET", ""),
		JWTSecret:         getString(lookup, "JWT_SECRET", defaultJWTSecret),
		TokenTTL:          getDuration(lookup, "TOKEN_TTL", defaultTokenTTL),
		CacheTTL:          getDuration(lookup, "CACHE_TTL", defaultCacheTTL),
		ReconcileInterval: getDuration(lookup, "RECONCILE_INTERVAL", defaultReconcileInterval),
		ReconcileAge:      getDuration(lookup, "RECONCILE_AGE", defaultReconcileAge),
		ReconcileBatch:    getInt(lookup, "RECONCILE_BATCH", defaultReconcileBatch),
		WorkerPoolSize:    getInt(lookup, "WORKER_POOL_SIZE", defaultWorkerPoolSize),
		ShutdownTimeout:   getDuration(lookup, "SHUTDOWN_TIMEOUT", defaultShutdownTimeout),
	}

	fs := flag.NewFlagSet("storefront", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var (
		tokenTTLStr          = cfg.TokenTTL.String()
		cacheTTLStr          = cfg.CacheTTL.String()
		reconcileIntervalStr = cfg.ReconcileInterval.String()
		reconcileAgeStr      = cfg.ReconcileAge.String()
		shutdownTimeoutStr   = cfg.ShutdownTimeout.String()
	)

	fs.StringVar(&cfg.RunAddress, "a", cfg.RunAddress, "HTTP server listen address")
	fs.StringVar(&cfg.DatabaseURI, "d", cfg.DatabaseURI, "PostgreSQL DSN")
	fs.StringVar(&cfg.RedisAddress, "redis", cfg.RedisAddress, "Redis address for catalog cache (empty disables caching)")
	fs.StringVar(&cfg.GatewayAddress, "gateway", cfg.GatewayAddress, "Payment gateway base URL")
	fs.StringVar(&cfg.GatewaySecret, "gateway-secret", cfg.GatewaySecret, "Payment gateway webhook signing secret")
	fs.StringVar(&cfg.JWTSecret, "jwt-secret", cfg.JWTSecret, "Secret for signing auth tokens")
	fs.StringVar(&tokenTTLStr, "token-ttl", tokenTTLStr, "Auth token lifetime")
	fs.StringVar(&cacheTTLStr, "cache-ttl", cacheTTLStr, "Catalog cache entry lifetime")
	fs.StringVar(&reconcileIntervalStr, "reconcile-interval", reconcileIntervalStr, "Interval between gateway reconciliation polls")
	fs.StringVar(&reconcileAgeStr, "reconcile-age", reconcileAgeStr, "Minimum age of a pending gateway order before reconciliation")
	fs.IntVar(&cfg.ReconcileBatch, "reconcile-batch", cfg.ReconcileBatch, "Maximum orders per reconciliation batch")
	fs.IntVar(&cfg.WorkerPoolSize, "worker-pool", cfg.WorkerPoolSize, "Number of concurrent reconciliation workers")
	fs.StringVar(&shutdownTimeoutStr, "shutdown-timeout", shutdownTimeoutStr, "Graceful shutdown timeout")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("parse flags: %w", err)
	}

	var err error

	if cfg.TokenTTL, err = time.ParseDuration(tokenTTLStr); err != nil {
		return nil, fmt.Errorf("invalid token ttl: %w", err)
	}

	if cfg.CacheTTL, err = time.ParseDuration(cacheTTLStr); err != nil {
		return nil, fmt.Errorf("invalid cache ttl: %w", err)
	}

	if cfg.ReconcileInterval, err = time.ParseDuration(reconcileIntervalStr); err != nil {
		return nil, fmt.Errorf("invalid reconcile interval: %w", err)
	}

	if cfg.ReconcileAge, err = time.ParseDuration(reconcileAgeStr); err != nil {
		return nil, fmt.Errorf("invalid reconcile age: %w", err)
	}

	if cfg.ShutdownTimeout, err = time.ParseDuration(shutdownTimeoutStr); err != nil {
		return nil, fmt.Errorf("invalid shutdown timeout: %w", err)
	}

	if secretFile, ok := lookup("JWT_SECRET_FILE"); ok && secretFile != "" {
		content, err := os.ReadFile(secretFile)
		if err != nil {
			return nil, fmt.Errorf("read jwt secret file: %w", err)
		}
		cfg.JWTSecret = string(content)
	}

	if cfg.TokenTTL <= 0 {
		cfg.TokenTTL = defaultTokenTTL
	}

	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = defaultCacheTTL
	}

	if cfg.ReconcileInterval <= 0 {
		cfg.ReconcileInterval = defaultReconcileInterval
	}

	if cfg.ReconcileAge <= 0 {
		cfg.ReconcileAge = defaultReconcileAge
	}

	if cfg.ReconcileBatch <= 0 {
		cfg.ReconcileBatch = defaultReconcileBatch
	}

	if cfg.WorkerPoolSize <= 0 {
		cfg.WorkerPoolSize = defaultWorkerPoolSize
	}

	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = defaultShutdownTimeout
	}

	if cfg.DatabaseURI == "" {
		return nil, fmt.Errorf("database URI must be provided")
	}

	if cfg.GatewayAddress == "" {
		return nil, fmt.Errorf("payment gateway address must be provided")
	}

	return cfg, nil
}

func getString(lookup envLookup, key, def string) string {
	if v, ok := lookup(key); ok && v != "" {
		return v
	}
	return def
}

func getInt(lookup envLookup, key string, def int) int {
	if v, ok := lookup(key); ok && v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func getDuration(lookup envLookup, key string, def time.Duration) time.Duration {
	if v, ok := lookup(key); ok && v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

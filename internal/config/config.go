package config

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application level configuration loaded from environment and flags.
type Config struct {
	RunAddress              string
	DatabaseURI             string
	RedisURL                string
	CloudinaryURL           string
	UploadFolder            string
	JWTSecret               string
	TokenTTL                time.Duration
	CacheTTL                time.Duration
	RegistryRefreshInterval time.Duration
	WorkerPoolSize          int
	ShutdownTimeout         time.Duration
	DefaultCurrency         string
	MaxUploadSize           int64
}

const (
	defaultRunAddress              = ":8080"
	defaultJWTSecret               = "change-me-in-production"
	defaultTokenTTL                = 24 * time.Hour
	defaultCacheTTL                = 30 * time.Second
	defaultRegistryRefreshInterval = time.Minute
	defaultWorkerPoolSize          = 4
	defaultShutdownTimeout         = 10 * time.Second
	defaultCurrency                = "AED"
	defaultMaxUploadSize           = 20 << 20
	defaultUploadFolder            = "order-attachments"
)

// Load parses configuration from an optional .env file, environment variables and flags.
func Load() (*Config, error) {
	// A missing .env file is normal outside local development.
	_ = godotenv.Load()
	return load(os.Args[1:], os.LookupEnv)
}

type envLookup func(string) (string, bool)

func load(args []string, lookup envLookup) (*Config, error) {
	cfg := &Config{
		RunAddress:              getString(lookup, "RUN_ADDRESS", defaultRunAddress),
		DatabaseURI:             getString(lookup, "DATABASE_URI", ""),
		RedisURL:                getString(lookup, "REDIS_URL", ""),
		CloudinaryURL:           getString(lookup, "CLOUDINARY_URL", ""),
		UploadFolder:            getString(lookup, "UPLOAD_FOLDER", defaultUploadFolder),
		JWTSecret:               getString(lookup, "JWT_SECRET", defaultJWTSecret),
		TokenTTL:                getDuration(lookup, "TOKEN_TTL", defaultTokenTTL),
		CacheTTL:                getDuration(lookup, "CACHE_TTL", defaultCacheTTL),
		RegistryRefreshInterval: getDuration(lookup, "REGISTRY_REFRESH_INTERVAL", defaultRegistryRefreshInterval),
		WorkerPoolSize:          getInt(lookup, "WORKER_POOL_SIZE", defaultWorkerPoolSize),
		ShutdownTimeout:         getDuration(lookup, "SHUTDOWN_TIMEOUT", defaultShutdownTimeout),
		DefaultCurrency:         getString(lookup, "DEFAULT_CURRENCY", defaultCurrency),
		MaxUploadSize:           int64(getInt(lookup, "MAX_UPLOAD_SIZE", defaultMaxUploadSize)),
	}

	fs := flag.NewFlagSet("printshop", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var (
		tokenTTLStr        = cfg.TokenTTL.String()
		cacheTTLStr        = cfg.CacheTTL.String()
		refreshStr         = cfg.RegistryRefreshInterval.String()
		shutdownTimeoutStr = cfg.ShutdownTimeout.String()
	)

	fs.StringVar(&cfg.RunAddress, "a", cfg.RunAddress, "HTTP server listen address")
	fs.StringVar(&cfg.DatabaseURI, "d", cfg.DatabaseURI, "PostgreSQL DSN")
	fs.StringVar(&cfg.RedisURL, "r", cfg.RedisURL, "Redis URL for the read cache")
	fs.StringVar(&cfg.CloudinaryURL, "cloudinary-url", cfg.CloudinaryURL, "Cloudinary URL for attachment storage")
	fs.StringVar(&cfg.UploadFolder, "upload-folder", cfg.UploadFolder, "Root folder for uploaded attachments")
	fs.StringVar(&cfg.JWTSecret, "jwt-secret", cfg.JWTSecret, "Secret for signing auth tokens")
	fs.StringVar(&tokenTTLStr, "token-ttl", tokenTTLStr, "Lifetime of issued auth tokens")
	fs.StringVar(&cacheTTLStr, "cache-ttl", cacheTTLStr, "Lifetime of cached read paths")
	fs.StringVar(&refreshStr, "registry-refresh", refreshStr, "Interval between status registry reloads")
	fs.IntVar(&cfg.WorkerPoolSize, "worker-pool", cfg.WorkerPoolSize, "Number of concurrent registry refresh workers")
	fs.StringVar(&shutdownTimeoutStr, "shutdown-timeout", shutdownTimeoutStr, "Graceful shutdown timeout")
	fs.StringVar(&cfg.DefaultCurrency, "default-currency", cfg.DefaultCurrency, "Currency used when a company has none")
	fs.Int64Var(&cfg.MaxUploadSize, "max-upload-size", cfg.MaxUploadSize, "Maximum attachment size in bytes")

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

	if cfg.RegistryRefreshInterval, err = time.ParseDuration(refreshStr); err != nil {
		return nil, fmt.Errorf("invalid registry refresh interval: %w", err)
	}

	if cfg.ShutdownTimeout, err = time.ParseDuration(shutdownTimeoutStr); err != nil {
		return nil, fmt.Errorf("invalid shutdown timeout: %w", err)
	}

	if secretFile, ok := lookup("JWT_SECRET_FILE"); ok && secretFile != "" {
		content, err := os.ReadFile(secretFile)
		if err != nil {
			return nil, fmt.Errorf("read jwt secret file: %w", err)
		}
		cfg.JWTSecret = strings.TrimSpace(string(content))
	}

	if cfg.WorkerPoolSize <= 0 {
		cfg.WorkerPoolSize = defaultWorkerPoolSize
	}

	if cfg.TokenTTL <= 0 {
		cfg.TokenTTL = defaultTokenTTL
	}

	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = defaultCacheTTL
	}

	if cfg.RegistryRefreshInterval <= 0 {
		cfg.RegistryRefreshInterval = defaultRegistryRefreshInterval
	}

	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = defaultShutdownTimeout
	}

	if cfg.MaxUploadSize <= 0 {
		cfg.MaxUploadSize = defaultMaxUploadSize
	}

	cfg.DefaultCurrency = strings.ToUpper(strings.TrimSpace(cfg.DefaultCurrency))
	if cfg.DefaultCurrency == "" {
		cfg.DefaultCurrency = defaultCurrency
	}

	if cfg.DatabaseURI == "" {
		return nil, fmt.Errorf("database URI must be provided")
	}

	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("jwt secret must not be empty")
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

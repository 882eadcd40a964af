package config

import "time"

// SetDefaults sets default values for all configuration fields
func SetDefaults(cfg *Config) {
	// Database defaults
	if cfg.Database.Type == "" {
		cfg.Database.Type = "sqlite"
	}
	if cfg.Database.Path == "" {
		cfg.Database.Path = "gunsmith-cache.db"
	}
	if cfg.Database.SSLMode == "" {
		cfg.Database.SSLMode = "disable"
	}
	if cfg.Database.Pool.MaxOpen == 0 {
		cfg.Database.Pool.MaxOpen = 25
	}
	if cfg.Database.Pool.MaxIdle == 0 {
		cfg.Database.Pool.MaxIdle = 5
	}
	if cfg.Database.Pool.MaxLifetime == 0 {
		cfg.Database.Pool.MaxLifetime = 5 * time.Minute
	}

	// Catalog defaults
	if cfg.Catalog.BaseURL == "" {
		cfg.Catalog.BaseURL = "https://api.tarkov.dev/graphql"
	}
	if cfg.Catalog.Timeout == 0 {
		cfg.Catalog.Timeout = 90 * time.Second
	}
	if cfg.Catalog.RateLimit.Requests == 0 {
		cfg.Catalog.RateLimit.Requests = 2
	}
	if cfg.Catalog.RateLimit.Burst == 0 {
		cfg.Catalog.RateLimit.Burst = 2
	}
	if cfg.Catalog.Retry.MaxAttempts == 0 {
		cfg.Catalog.Retry.MaxAttempts = 3
	}
	if cfg.Catalog.Retry.BackoffBase == 0 {
		cfg.Catalog.Retry.BackoffBase = 1 * time.Second
	}
	if cfg.Catalog.CacheTTL == 0 {
		cfg.Catalog.CacheTTL = time.Hour
	}
	if cfg.Catalog.CacheVersion == 0 {
		cfg.Catalog.CacheVersion = 7
	}
	if cfg.Catalog.CacheDir == "" {
		cfg.Catalog.CacheDir = ".gunsmith-cache"
	}

	// Server defaults
	if cfg.Server.Address == "" {
		cfg.Server.Address = "0.0.0.0:8080"
	}
	if cfg.Server.PIDFile == "" {
		cfg.Server.PIDFile = "/tmp/gunsmith-server.pid"
	}
	if cfg.Server.ReadTimeout == 0 {
		cfg.Server.ReadTimeout = 15 * time.Second
	}
	if cfg.Server.WriteTimeout == 0 {
		cfg.Server.WriteTimeout = 150 * time.Second
	}
	if cfg.Server.SolverTimeout == 0 {
		cfg.Server.SolverTimeout = 120 * time.Second
	}
	if cfg.Server.ShutdownTimeout == 0 {
		cfg.Server.ShutdownTimeout = 15 * time.Second
	}

	// Logging defaults
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "json"
	}
	if cfg.Logging.Output == "" {
		cfg.Logging.Output = "stdout"
	}
	if cfg.Logging.Rotation.MaxSize == 0 {
		cfg.Logging.Rotation.MaxSize = 100 // MB
	}
	if cfg.Logging.Rotation.MaxBackups == 0 {
		cfg.Logging.Rotation.MaxBackups = 3
	}
	if cfg.Logging.Rotation.MaxAge == 0 {
		cfg.Logging.Rotation.MaxAge = 28 // days
	}

	// Metrics defaults
	if cfg.Metrics.Port == 0 {
		cfg.Metrics.Port = 9090
	}
	if cfg.Metrics.Host == "" {
		cfg.Metrics.Host = "localhost"
	}
	if cfg.Metrics.Path == "" {
		cfg.Metrics.Path = "/metrics"
	}
}

package config

import "time"

// CatalogConfig holds tarkov.dev GraphQL catalog client configuration.
type CatalogConfig struct {
	// Base URL for the catalog GraphQL API
	BaseURL string `mapstructure:"base_url" validate:"required,url"`

	// Rate limiting settings
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`

	// Request timeout
	Timeout time.Duration `mapstructure:"timeout" validate:"required"`

	// Retry configuration
	Retry RetryConfig `mapstructure:"retry"`

	// On-disk cache TTL for raw queries and processed item lookups
	CacheTTL time.Duration `mapstructure:"cache_ttl" validate:"required"`

	// CacheVersion invalidates every cache entry when bumped
	CacheVersion int `mapstructure:"cache_version" validate:"min=1"`

	// CacheDir is the directory raw GraphQL responses are cached under
	CacheDir string `mapstructure:"cache_dir" validate:"required"`
}

// RateLimitConfig holds rate limiting configuration
type RateLimitConfig struct {
	// Maximum requests per second
	Requests int `mapstructure:"requests" validate:"min=1"`

	// Burst size for token bucket
	Burst int `mapstructure:"burst" validate:"min=1"`
}

// RetryConfig holds retry configuration for failed requests
type RetryConfig struct {
	// Maximum number of retry attempts
	MaxAttempts int `mapstructure:"max_attempts" validate:"min=0"`

	// Base duration for exponential backoff
	BackoffBase time.Duration `mapstructure:"backoff_base"`
}

package domain

import "time"

// Config is the resolved client configuration.
type Config struct {
	API   APIConfig
	Cache CacheConfig
	Retry RetryConfig
}

// APIConfig addresses the REST backend.
type APIConfig struct {
	BaseURL string
	Prefix  string
	Token   string
	Timeout time.Duration
	Headers map[string]string
}

// CacheConfig controls freshness and eviction of cache entries.
type CacheConfig struct {
	StaleTime time.Duration
	GCTime    time.Duration
}

// RetryConfig is the opt-in retry policy for queries.
// MaxAttempts of zero or one disables retries.
type RetryConfig struct {
	MaxAttempts int
	BaseDelay   time.Duration
	MaxDelay    time.Duration
}

// Defaults.
const (
	DefaultBaseURL   = "http://localhost:8080"
	DefaultTimeout   = 10 * time.Second
	DefaultGCTime    = 5 * time.Minute
	DefaultBaseDelay = 200 * time.Millisecond
	DefaultMaxDelay  = 2 * time.Second
)

// DefaultConfig returns the configuration used when no file is present.
func DefaultConfig() Config {
	return Config{
		API: APIConfig{
			BaseURL: DefaultBaseURL,
			Timeout: DefaultTimeout,
		},
		Cache: CacheConfig{
			GCTime: DefaultGCTime,
		},
		Retry: RetryConfig{
			BaseDelay: DefaultBaseDelay,
			MaxDelay:  DefaultMaxDelay,
		},
	}
}

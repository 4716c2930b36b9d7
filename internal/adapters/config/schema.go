package config

import "time"

// File is the on-disk shape of smartmate.yaml. Pointer fields distinguish
// "absent" from the zero value so defaults survive partial files.
type File struct {
	API   APISection   `yaml:"api"`
	Cache CacheSection `yaml:"cache"`
	Retry RetrySection `yaml:"retry"`
}

// APISection configures the REST backend.
type APISection struct {
	BaseURL string            `yaml:"base_url"`
	Prefix  string            `yaml:"prefix"`
	Token   string            `yaml:"token"`
	Timeout *time.Duration    `yaml:"timeout"`
	Headers map[string]string `yaml:"headers"`
}

// CacheSection configures freshness and eviction.
type CacheSection struct {
	StaleTime *time.Duration `yaml:"stale_time"`
	GCTime    *time.Duration `yaml:"gc_time"`
}

// RetrySection configures query retries.
type RetrySection struct {
	MaxAttempts *int           `yaml:"max_attempts"`
	BaseDelay   *time.Duration `yaml:"base_delay"`
	MaxDelay    *time.Duration `yaml:"max_delay"`
}

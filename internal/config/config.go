// Package config defines service configuration structures and loading hooks.
package config

import "time"

// Config contains process configuration for the API server and the seeder.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// APIBaseURL is the root the entity clients talk to.
	APIBaseURL string `koanf:"api_base_url"`

	// RequestTimeoutMS bounds each entity client request.
	RequestTimeoutMS int `koanf:"request_timeout_ms"`

	// DefaultPageSize and MaxPageSize govern GET /api/companies paging.
	DefaultPageSize int `koanf:"default_page_size"`
	MaxPageSize     int `koanf:"max_page_size"`

	// SeedCount is how many companies the seeder creates.
	SeedCount int `koanf:"seed_count"`

	// SeedWorkers is the number of concurrent seeding workers.
	SeedWorkers int `koanf:"seed_workers"`

	// SeedRate caps seeding requests per second; 0 disables the limit.
	SeedRate float64 `koanf:"seed_rate"`

	// SeedOutput, when set, is a file the seeder writes created companies to.
	SeedOutput string `koanf:"seed_output"`
}

// New returns a Config with defaults.
func New() *Config {
	return &Config{
		LogLevel:         "info",
		Addr:             ":9080",
		APIBaseURL:       "http://localhost:9080",
		RequestTimeoutMS: 5_000,
		DefaultPageSize:  20,
		MaxPageSize:      100,
		SeedCount:        100,
		SeedWorkers:      4,
		SeedRate:         50,
	}
}

// RequestTimeout returns RequestTimeoutMS as a duration.
func (c *Config) RequestTimeout() time.Duration {
	return time.Duration(c.RequestTimeoutMS) * time.Millisecond
}

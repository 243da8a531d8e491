// Package config defines process configuration and loading.
//
// Conventions:
// - Provide New() to build a Config with defaults.
// - Load() layers an optional YAML file and env vars on top of the defaults.
package config

import "time"

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Zipcode selects the location the feed publishes zmanim for.
	Zipcode string `koanf:"zipcode"`

	// Timezone is the IANA zone the schedule's dates live in.
	Timezone string `koanf:"timezone"`

	// Year selects the schedule year. Zero means the upcoming year: the
	// current one through June, the next one after.
	Year int `koanf:"year"`

	// StartDate and EndDate (YYYY-MM-DD) override the year-derived range.
	StartDate string `koanf:"start_date"`
	EndDate   string `koanf:"end_date"`

	// Output is the report path. Empty derives a name from the zipcode
	// and range.
	Output string `koanf:"output"`

	// CachePath locates the sqlite raw-day cache.
	CachePath string `koanf:"cache_path"`

	// FeedURL overrides the zmanim feed endpoint.
	FeedURL string `koanf:"feed_url"`

	// FetchMaxAttempts bounds retries on an empty or failed fetch.
	FetchMaxAttempts int `koanf:"fetch_max_attempts"`

	// FetchBackoffMS is the pause between fetch retries.
	FetchBackoffMS int `koanf:"fetch_backoff_ms"`

	// Addr configures the HTTP listen address when serving, e.g. ":9080".
	Addr string `koanf:"addr"`
}

// New creates a Config with defaults.
func New() *Config {
	return &Config{
		LogLevel:         "info",
		Zipcode:          "94303",
		Timezone:         "America/Los_Angeles",
		CachePath:        "zmanim_cache.db",
		FetchMaxAttempts: 5,
		FetchBackoffMS:   2000,
		Addr:             ":9080",
	}
}

// FetchBackoff returns the retry pause as a duration.
func (c *Config) FetchBackoff() time.Duration {
	return time.Duration(c.FetchBackoffMS) * time.Millisecond
}

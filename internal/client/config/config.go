package config

import "time"

// Config holds runtime settings for the story client.
type Config struct {
	// APIBaseURL is the base URL of the remote story service, including the
	// version prefix.
	APIBaseURL string

	// DatabaseDSN is the path of the local SQLite database file.
	DatabaseDSN string

	// OnlineCheckInterval is how often the client probes API reachability.
	OnlineCheckInterval time.Duration

	// SyncInterval is how often queued stories are re-tried while online.
	SyncInterval time.Duration

	// FetchFreshness is how long a successful remote fetch is reused before
	// the list view re-fetches.
	FetchFreshness time.Duration
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.APIBaseURL = "https://story-api.dicoding.dev/v1"
	c.DatabaseDSN = "storysync.db"
	c.OnlineCheckInterval = 10 * time.Second
	c.SyncInterval = 30 * time.Second
	c.FetchFreshness = 5 * time.Minute
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present). Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}

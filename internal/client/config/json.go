package config

import (
	"encoding/json"
	"os"

	"github.com/aditwb/storysync/internal/flagx"
	"github.com/aditwb/storysync/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. It relies on
// timex.Duration so intervals can be given either as strings like "30s" or as
// integer nanoseconds; parsed values are copied into the runtime Config.
type JsonConfig struct {
	APIBaseURL          string         `json:"api_base_url"`
	DatabaseDSN         string         `json:"database_dsn"`
	OnlineCheckInterval timex.Duration `json:"online_check_interval"`
	SyncInterval        timex.Duration `json:"sync_interval"`
	FetchFreshness      timex.Duration `json:"fetch_freshness"`
}

// parseJson overlays cfg with values from the JSON file named by the -c or
// -config flag. No flag, no overlay. Fields absent from the file keep their
// current values. Panics on read or unmarshal errors; the config is loaded
// once at startup and a broken file should stop the program.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.APIBaseURL != "" {
		cfg.APIBaseURL = jc.APIBaseURL
	}
	if jc.DatabaseDSN != "" {
		cfg.DatabaseDSN = jc.DatabaseDSN
	}
	if jc.OnlineCheckInterval.Duration > 0 {
		cfg.OnlineCheckInterval = jc.OnlineCheckInterval.Duration
	}
	if jc.SyncInterval.Duration > 0 {
		cfg.SyncInterval = jc.SyncInterval.Duration
	}
	if jc.FetchFreshness.Duration > 0 {
		cfg.FetchFreshness = jc.FetchFreshness.Duration
	}
}

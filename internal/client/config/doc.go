// Package config loads runtime configuration for the story client.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected via the -c or -config flags.
//  3. Command-line flags, which override earlier values.
//
// Supported flags
//
//	-a string   base URL of the remote story API
//	-d string   path of the local SQLite database file
//	-i int      connectivity check interval (seconds)
//	-s int      pending-queue sync interval (seconds)
//
// # JSON schema
//
// Interval fields use timex.Duration, so values can be either strings like
// "30s" or integer nanoseconds:
//
//	{
//	  "api_base_url": "https://story-api.dicoding.dev/v1",
//	  "database_dsn": "storysync.db",
//	  "online_check_interval": "10s",
//	  "sync_interval": "30s",
//	  "fetch_freshness": "5m"
//	}
//
// Environment variables are not read; use the JSON file or flags.
package config

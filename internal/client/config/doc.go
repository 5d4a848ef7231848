// Package config loads runtime configuration for the vault CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected with -c or -config.
//  3. Command-line flags, which override earlier values.
//
// Supported flags
//
//	-a string   address:port of the identity gRPC endpoint
//	-d string   local vault database (SQLite file or ":memory:")
//	-s string   settings store DSN (postgres://... or a SQLite file)
//	-w int      concurrent import jobs
//	-t int      identity request timeout (seconds)
//	-l string   log format: text or json
//
// # JSON schema
//
// Durations use timex.Duration, so "10s" and integer nanoseconds both work:
//
//	{
//	  "server_endpoint_addr": "127.0.0.1:50051",
//	  "database_dsn": "vault.db",
//	  "settings_dsn": "postgres://vault@localhost/settings",
//	  "import_workers": 8,
//	  "request_timeout": "10s",
//	  "log_format": "json",
//	  "s3": {"region": "eu-central-1", "endpoint": "http://127.0.0.1:9000"}
//	}
//
// S3 credentials may also come from the default AWS chain; they have no
// flags so they never show up in shell history.
package config

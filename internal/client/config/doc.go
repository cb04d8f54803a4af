// Package config loads runtime configuration for the Aztec Temple CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional config file selected with -c or -config. Files ending in
//     .yaml or .yml are read as YAML, anything else as JSON.
//  3. Command-line flags, which override earlier values.
//
// Supported flags
//
//	-a string   base URL of the game API (e.g. http://127.0.0.1:3001/api)
//	-i int      liveness probe interval (seconds)
//	-t int      request timeout (seconds)
//	-d string   path of the local SQLite store
//	-l string   log level: debug, info, warn, error
//
// # File schema
//
// Durations accept strings like "30s" or integer nanoseconds:
//
//	server_base_url: http://127.0.0.1:3001/api
//	online_check_interval: 30s
//	request_timeout: 10s
//	store_path: aztec.db
//	log_level: info
//	log_format: text
//
// Only keys present in the file override the defaults.
package config

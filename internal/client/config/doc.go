// Package config loads runtime configuration for the storefront shell.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. A .env file in the working directory, if present.
//  3. Environment variables (STOREFRONT_API_URL and friends, see env.go).
//  4. Optional JSON file selected via -c or -config.
//  5. Command-line flags, which override earlier values.
//
// Supported flags
//
//	-a string          backend base URL
//	-p string          backend API prefix (default /api/v1)
//	-d string          local state database path
//	-t duration        request timeout
//	-i duration        online status check interval
//	-log-backend string
//	-log-level string
//
// # JSON schema
//
// Durations use timex.Duration, so "3s" and integer nanoseconds both work:
//
//	{
//	  "api_url": "http://127.0.0.1:5000",
//	  "state_db": "storefront.db",
//	  "request_timeout": "30s",
//	  "online_check_interval": "5s"
//	}
package config

// Package config handles configuration for the page server and the fake
// backend: defaults, .env, environment, a JSON overlay and command-line
// flags, applied in that order.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/dmitrijs2005/storefront/internal/common"
	"github.com/dmitrijs2005/storefront/internal/envx"
)

// Config holds runtime settings for the storefront server processes.
//
// Fields:
//   - ListenAddr: bind address of the page server.
//   - APIURL / APIPrefix: backend base URL and versioned path prefix.
//   - CookieName / CookieSecure: the cookie that mirrors the bearer token.
//   - RequestTimeout: per-request timeout for backend calls.
//   - ShutdownTimeout: grace period for in-flight requests on shutdown.
//   - FakeAPIAddr: bind address of the in-memory backend.
//   - SecretKey: HMAC secret the in-memory backend signs tokens with.
//   - AccessTokenValidityDuration: lifetime of tokens it issues.
type Config struct {
	ListenAddr                  string
	APIURL                      string
	APIPrefix                   string
	CookieName                  string
	CookieSecure                bool
	RequestTimeout              time.Duration
	ShutdownTimeout             time.Duration
	FakeAPIAddr                 string
	SecretKey                   string
	AccessTokenValidityDuration time.Duration
	LogBackend                  string
	LogLevel                    string
}

// LoadDefaults populates Config with development defaults.
// NOTE: SecretKey must be overridden outside development.
func (c *Config) LoadDefaults() {
	c.ListenAddr = ":3000"
	c.APIURL = "http://127.0.0.1:5000"
	c.APIPrefix = common.APIPrefix
	c.CookieName = common.TokenCookieName
	c.CookieSecure = false
	c.RequestTimeout = 30 * time.Second
	c.ShutdownTimeout = 10 * time.Second
	c.FakeAPIAddr = ":5000"
	c.SecretKey = "storefront-dev-secret"
	c.AccessTokenValidityDuration = 24 * time.Hour
	c.LogBackend = "slog"
	c.LogLevel = "info"
}

// Load builds a Config from defaults, then .env and the environment, then
// the JSON file named by -c, then the flags in args.
func Load(args []string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	if err := envx.LoadDotEnv(); err != nil {
		return nil, err
	}
	if err := parseEnv(cfg); err != nil {
		return nil, fmt.Errorf("env: %w", err)
	}
	if err := parseJson(cfg, args); err != nil {
		return nil, fmt.Errorf("json config: %w", err)
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, fmt.Errorf("flags: %w", err)
	}
	return cfg, nil
}

// LoadConfig is Load over os.Args.
func LoadConfig() (*Config, error) {
	return Load(os.Args[1:])
}

package config

import (
	"fmt"
	"os"
	"time"

	"github.com/dmitrijs2005/storefront/internal/common"
	"github.com/dmitrijs2005/storefront/internal/envx"
)

type Config struct {
	APIURL              string
	APIPrefix           string
	StatePath           string
	RequestTimeout      time.Duration
	OnlineCheckInterval time.Duration
	LogBackend          string
	LogLevel            string
}

func (c *Config) LoadDefaults() {
	c.APIURL = "http://127.0.0.1:5000"
	c.APIPrefix = common.APIPrefix
	c.StatePath = "storefront.db"
	c.RequestTimeout = 30 * time.Second
	c.OnlineCheckInterval = 5 * time.Second
	c.LogBackend = "slog"
	c.LogLevel = "warn"
}

// Load applies defaults, .env, environment, the JSON file named by -c and
// finally the flags in args.
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
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("request timeout must be positive, got %s: %w", c.RequestTimeout, common.ErrorValidation)
	}
	if c.OnlineCheckInterval <= 0 {
		return fmt.Errorf("online check interval must be positive, got %s: %w", c.OnlineCheckInterval, common.ErrorValidation)
	}
	return nil
}

func LoadConfig() (*Config, error) {
	return Load(os.Args[1:])
}

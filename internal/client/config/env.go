package config

import (
	"errors"

	"github.com/dmitrijs2005/storefront/internal/envx"
)

const (
	EnvAPIURL              = "STOREFRONT_API_URL"
	EnvAPIPrefix           = "STOREFRONT_API_PREFIX"
	EnvStatePath           = "STOREFRONT_STATE_DB"
	EnvRequestTimeout      = "STOREFRONT_REQUEST_TIMEOUT"
	EnvOnlineCheckInterval = "STOREFRONT_ONLINE_CHECK_INTERVAL"
	EnvLogBackend          = "STOREFRONT_LOG_BACKEND"
	EnvLogLevel            = "STOREFRONT_LOG_LEVEL"
)

func parseEnv(cfg *Config) error {
	envx.String(EnvAPIURL, &cfg.APIURL)
	envx.String(EnvAPIPrefix, &cfg.APIPrefix)
	envx.String(EnvStatePath, &cfg.StatePath)
	envx.String(EnvLogBackend, &cfg.LogBackend)
	envx.String(EnvLogLevel, &cfg.LogLevel)
	return errors.Join(
		envx.Duration(EnvRequestTimeout, &cfg.RequestTimeout),
		envx.Duration(EnvOnlineCheckInterval, &cfg.OnlineCheckInterval),
	)
}

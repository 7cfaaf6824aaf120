package config

import (
	"errors"

	"github.com/dmitrijs2005/storefront/internal/envx"
)

const (
	EnvListenAddr      = "STOREFRONT_WEB_ADDR"
	EnvAPIURL          = "STOREFRONT_API_URL"
	EnvAPIPrefix       = "STOREFRONT_API_PREFIX"
	EnvCookieName      = "STOREFRONT_COOKIE_NAME"
	EnvCookieSecure    = "STOREFRONT_COOKIE_SECURE"
	EnvRequestTimeout  = "STOREFRONT_REQUEST_TIMEOUT"
	EnvShutdownTimeout = "STOREFRONT_SHUTDOWN_TIMEOUT"
	EnvFakeAPIAddr     = "STOREFRONT_FAKEAPI_ADDR"
	EnvSecretKey       = "STOREFRONT_SECRET_KEY"
	EnvTokenTTL        = "STOREFRONT_TOKEN_TTL"
	EnvLogBackend      = "STOREFRONT_LOG_BACKEND"
	EnvLogLevel        = "STOREFRONT_LOG_LEVEL"
)

var envKeys = []string{
	EnvListenAddr, EnvAPIURL, EnvAPIPrefix, EnvCookieName, EnvCookieSecure,
	EnvRequestTimeout, EnvShutdownTimeout, EnvFakeAPIAddr, EnvSecretKey,
	EnvTokenTTL, EnvLogBackend, EnvLogLevel,
}

func parseEnv(cfg *Config) error {
	envx.String(EnvListenAddr, &cfg.ListenAddr)
	envx.String(EnvAPIURL, &cfg.APIURL)
	envx.String(EnvAPIPrefix, &cfg.APIPrefix)
	envx.String(EnvCookieName, &cfg.CookieName)
	envx.String(EnvFakeAPIAddr, &cfg.FakeAPIAddr)
	envx.String(EnvSecretKey, &cfg.SecretKey)
	envx.String(EnvLogBackend, &cfg.LogBackend)
	envx.String(EnvLogLevel, &cfg.LogLevel)
	return errors.Join(
		envx.Bool(EnvCookieSecure, &cfg.CookieSecure),
		envx.Duration(EnvRequestTimeout, &cfg.RequestTimeout),
		envx.Duration(EnvShutdownTimeout, &cfg.ShutdownTimeout),
		envx.Duration(EnvTokenTTL, &cfg.AccessTokenValidityDuration),
	)
}

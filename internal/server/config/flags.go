package config

import (
	"flag"
	"io"

	"github.com/dmitrijs2005/storefront/internal/flagx"
)

// parseFlags overlays the flags found in args.
//
// Supported flags:
//
//	-a string          page server bind address (e.g. ":3000")
//	-u string          backend base URL
//	-p string          backend API prefix
//	-t duration        backend request timeout
//	-f string          fake backend bind address
//	-s string          fake backend JWT secret
//	-k duration        fake backend token lifetime
//	-cookie-name       token cookie name
//	-cookie-secure     mark the token cookie Secure
//	-log-backend       slog or zap
//	-log-level         debug, info, warn or error
func parseFlags(cfg *Config, args []string) error {
	args = flagx.FilterArgs(args, []string{
		"-a", "-u", "-p", "-t", "-f", "-s", "-k",
		"-cookie-name", "-cookie-secure", "-log-backend", "-log-level",
	})

	fs := flag.NewFlagSet("server", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.ListenAddr, "a", cfg.ListenAddr, "address and port to run the page server")
	fs.StringVar(&cfg.APIURL, "u", cfg.APIURL, "backend base URL")
	fs.StringVar(&cfg.APIPrefix, "p", cfg.APIPrefix, "backend API prefix")
	fs.DurationVar(&cfg.RequestTimeout, "t", cfg.RequestTimeout, "backend request timeout")
	fs.StringVar(&cfg.FakeAPIAddr, "f", cfg.FakeAPIAddr, "address and port to run the fake backend")
	fs.StringVar(&cfg.SecretKey, "s", cfg.SecretKey, "secret key")
	fs.DurationVar(&cfg.AccessTokenValidityDuration, "k", cfg.AccessTokenValidityDuration, "access token validity")
	fs.StringVar(&cfg.CookieName, "cookie-name", cfg.CookieName, "token cookie name")
	fs.BoolVar(&cfg.CookieSecure, "cookie-secure", cfg.CookieSecure, "mark the token cookie Secure")
	fs.StringVar(&cfg.LogBackend, "log-backend", cfg.LogBackend, "log backend: slog or zap")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level")

	return fs.Parse(args)
}

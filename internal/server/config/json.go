package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/dmitrijs2005/storefront/internal/flagx"
	"github.com/dmitrijs2005/storefront/internal/timex"
)

// JsonConfig is the on-disk shape of the JSON overlay. Durations accept
// strings such as "30s" or integer nanoseconds; zero and empty values leave
// the current setting alone.
type JsonConfig struct {
	ListenAddr                  string         `json:"listen_addr"`
	APIURL                      string         `json:"api_url"`
	APIPrefix                   string         `json:"api_prefix"`
	CookieName                  string         `json:"cookie_name"`
	CookieSecure                *bool          `json:"cookie_secure"`
	RequestTimeout              timex.Duration `json:"request_timeout"`
	ShutdownTimeout             timex.Duration `json:"shutdown_timeout"`
	FakeAPIAddr                 string         `json:"fakeapi_addr"`
	SecretKey                   string         `json:"secret_key"`
	AccessTokenValidityDuration timex.Duration `json:"access_token_validity_duration"`
	LogBackend                  string         `json:"log_backend"`
	LogLevel                    string         `json:"log_level"`
}

func parseJson(cfg *Config, args []string) error {
	path := flagx.JsonConfigFromArgs(args)
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		return err
	}

	for dst, v := range map[*string]string{
		&cfg.ListenAddr:  jc.ListenAddr,
		&cfg.APIURL:      jc.APIURL,
		&cfg.APIPrefix:   jc.APIPrefix,
		&cfg.CookieName:  jc.CookieName,
		&cfg.FakeAPIAddr: jc.FakeAPIAddr,
		&cfg.SecretKey:   jc.SecretKey,
		&cfg.LogBackend:  jc.LogBackend,
		&cfg.LogLevel:    jc.LogLevel,
	} {
		if v != "" {
			*dst = v
		}
	}
	if jc.CookieSecure != nil {
		cfg.CookieSecure = *jc.CookieSecure
	}
	for dst, v := range map[*time.Duration]timex.Duration{
		&cfg.RequestTimeout:              jc.RequestTimeout,
		&cfg.ShutdownTimeout:             jc.ShutdownTimeout,
		&cfg.AccessTokenValidityDuration: jc.AccessTokenValidityDuration,
	} {
		if v.Duration > 0 {
			*dst = v.Duration
		}
	}
	return nil
}

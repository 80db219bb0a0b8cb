package main

import (
	"fmt"
	"os"
	"owprofile-backend/internal/client"
	"owprofile-backend/internal/components/fetch"
	"owprofile-backend/internal/components/telemetry"
	"owprofile-backend/lib/configutil"
	"strconv"
	"time"

	"dario.cat/mergo"
)

type CacheConfig struct {
	Profile  configutil.Duration `json:"profile"`
	Overbuff configutil.Duration `json:"overbuff"`
	Search   configutil.Duration `json:"search"`
	// Max keeps every cached response forever, the windows above are ignored.
	Max bool `json:"max"`
}

type HttpConfig struct {
	Timeout           configutil.Duration `json:"timeout"`
	RequestsPerSecond float64             `json:"requests_per_second" validate:"gte=0"`
	Burst             int                 `json:"burst" validate:"gte=0"`
	UserAgent         string              `json:"user_agent"`
	CloudflareBypass  bool                `json:"cloudflare_bypass"`
}

type Config struct {
	Port           int      `json:"port" validate:"min=1,max=65535"`
	AllowedOrigins []string `json:"allowed_origins"`
	Verbose        bool     `json:"verbose"`
	// RefreshCron reloads the hero and asset catalogs, empty disables reloading.
	RefreshCron string           `json:"refresh_cron"`
	Cache       CacheConfig      `json:"cache"`
	Http        HttpConfig       `json:"http"`
	Otlp        telemetry.Config `json:"otlp"`
}

func DefaultConfig() Config {
	opts := client.DefaultOptions()
	fetchOpts := fetch.DefaultOptions()
	return Config{
		Port:        8000,
		RefreshCron: "0 4 * * *",
		Cache: CacheConfig{
			Profile:  configutil.Duration(opts.ProfileWindow),
			Overbuff: configutil.Duration(opts.OverbuffWindow),
			Search:   configutil.Duration(opts.SearchWindow),
		},
		Http: HttpConfig{
			Timeout:           configutil.Duration(fetchOpts.Timeout),
			RequestsPerSecond: fetchOpts.RequestsPerSecond,
			Burst:             fetchOpts.Burst,
			UserAgent:         fetchOpts.UserAgent,
		},
	}
}

// LoadConfig fills whatever the config file leaves unset with the defaults,
// then applies the PORT environment variable. A missing config file is not
// an error.
func LoadConfig(path string) (Config, error) {
	cfg, err := configutil.ReadConfig[Config](path)
	if err != nil && !os.IsNotExist(err) {
		return Config{}, err
	}
	err = mergo.Merge(&cfg, DefaultConfig())
	if err != nil {
		return Config{}, err
	}

	if port := os.Getenv("PORT"); port != "" {
		cfg.Port, err = strconv.Atoi(port)
		if err != nil {
			return Config{}, fmt.Errorf("PORT: %w", err)
		}
	}

	err = configutil.Validate(cfg)
	if err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) ClientOptions() client.Options {
	if c.Cache.Max {
		return client.MaxOptions()
	}
	return client.Options{
		ProfileWindow:  c.Cache.Profile.Std(),
		OverbuffWindow: c.Cache.Overbuff.Std(),
		SearchWindow:   c.Cache.Search.Std(),
	}
}

func (c Config) FetchOptions() fetch.Options {
	timeout := c.Http.Timeout.Std()
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return fetch.Options{
		UserAgent:         c.Http.UserAgent,
		Timeout:           timeout,
		RequestsPerSecond: c.Http.RequestsPerSecond,
		Burst:             c.Http.Burst,
		CloudflareBypass:  c.Http.CloudflareBypass,
	}
}

package main

import (
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/spf13/viper"

	"github.com/pdiddy/playcanvas2obj/internal/cache"
	"github.com/pdiddy/playcanvas2obj/internal/fetch"
	"github.com/pdiddy/playcanvas2obj/internal/secrets"
	"github.com/pdiddy/playcanvas2obj/pkg/types"
)

const (
	defaultTimeout   = 60 * time.Second
	defaultUserAgent = "playcanvas2obj/0.1"
)

// loadConfig assembles the run configuration from flags, environment,
// config file, and secrets.
func loadConfig() (types.Config, error) {
	cfg := types.Config{
		Fetch: types.FetchConfig{
			Timeout:          viper.GetDuration("fetch.timeout"),
			UserAgent:        viper.GetString("fetch.user_agent"),
			RateLimitRetries: viper.GetInt("fetch.rate_limit_retries"),
			Token:            secretDefault(secrets.KeyFetchToken, viper.GetString("fetch.token")),
		},
		Cache: types.CacheConfig{
			Path: viper.GetString("cache.path"),
		},
		Output: types.OutputConfig{
			NormalIndex: types.NormalIndexScheme(viper.GetString("output.normal_index")),
		},
	}

	if cfg.Fetch.Timeout <= 0 {
		cfg.Fetch.Timeout = defaultTimeout
	}
	if cfg.Fetch.UserAgent == "" {
		cfg.Fetch.UserAgent = defaultUserAgent
	}
	if cfg.Fetch.RateLimitRetries < 0 {
		return cfg, fmt.Errorf("fetch.rate_limit_retries must not be negative, got %d", cfg.Fetch.RateLimitRetries)
	}
	if cfg.Output.NormalIndex == "" {
		cfg.Output.NormalIndex = types.NormalIndexPosition
	}
	if !cfg.Output.NormalIndex.Valid() {
		return cfg, fmt.Errorf("unknown normal index scheme %q (want position, vertex, or face)", cfg.Output.NormalIndex)
	}
	return cfg, nil
}

// newLoader builds the document loader for cfg. The returned function
// releases the cache database, if one was opened.
func newLoader(cfg types.Config, refresh bool, log io.Writer) (*fetch.Loader, func(), error) {
	l := &fetch.Loader{
		Client:  &http.Client{Timeout: cfg.Fetch.Timeout},
		Config:  cfg.Fetch,
		Refresh: refresh,
		Log:     log,
	}
	if cfg.Cache.Path == "" {
		return l, func() {}, nil
	}

	store, err := cache.Open(cfg.Cache.Path)
	if err != nil {
		return nil, nil, err
	}
	l.Cache = store
	return l, func() { store.Close() }, nil
}

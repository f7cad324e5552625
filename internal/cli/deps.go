package cli

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/rshade/pokedex/internal/cache"
	"github.com/rshade/pokedex/internal/config"
	"github.com/rshade/pokedex/internal/pokeapi"
)

// deps are the collaborators shared by every command that talks to PokeAPI.
type deps struct {
	cfg    *config.Config
	store  cache.Store
	client *pokeapi.HTTPClient
	logger zerolog.Logger
}

// cacheOptions maps the cache section and the --cache-ttl/--no-cache flags.
func cacheOptions(cmd *cobra.Command, cfg *config.Config) cache.Options {
	opts := cache.Options{
		Enabled:     cfg.Cache.Enabled,
		Backend:     cfg.Cache.Backend,
		Directory:   cfg.Cache.Directory,
		TTLSeconds:  cfg.Cache.TTLSeconds,
		MaxSizeMB:   cfg.Cache.MaxSizeMB,
		RedisAddr:   cfg.Cache.Redis.Addr,
		RedisDB:     cfg.Cache.Redis.DB,
		RedisPrefix: cfg.Cache.Redis.Prefix,
	}
	if ttl, _ := cmd.Flags().GetInt("cache-ttl"); ttl > 0 {
		opts.TTLSeconds = ttl
	}
	if noCache, _ := cmd.Flags().GetBool("no-cache"); noCache {
		opts.Enabled = false
	}
	return opts
}

// openCache opens the configured store. The caller closes it.
func openCache(cmd *cobra.Command, cfg *config.Config) (cache.Store, error) {
	store, err := cache.Open(cacheOptions(cmd, cfg))
	if err != nil {
		return nil, fmt.Errorf("opening cache: %w", err)
	}
	return store, nil
}

// buildDeps wires config, cache and API client for cmd.
func buildDeps(cmd *cobra.Command, ver string) (*deps, error) {
	cfg := config.GetGlobalConfig()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	store, err := openCache(cmd, cfg)
	if err != nil {
		return nil, err
	}

	client, err := pokeapi.New(&pokeapi.Config{
		BaseURL:            cfg.API.BaseURL,
		HTTPTimeout:        time.Duration(cfg.API.TimeoutSeconds) * time.Second,
		RateLimit:          cfg.API.RateLimit,
		Burst:              cfg.API.Burst,
		BreakerMaxFailures: cfg.API.Breaker.MaxFailures,
		BreakerOpenTimeout: time.Duration(cfg.API.Breaker.OpenTimeoutSeconds) * time.Second,
		UserAgent:          "pokedex-cli/" + ver,
		Cache:              store,
		Logger:             logger,
	})
	if err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("creating API client: %w", err)
	}

	return &deps{cfg: cfg, store: store, client: client, logger: logger}, nil
}

func (d *deps) Close() {
	if err := d.store.Close(); err != nil {
		d.logger.Warn().Err(err).Msg("closing cache")
	}
}

// Package pokeapi is the HTTP client for the PokeAPI index and detail endpoints.
package pokeapi

//go:generate mockgen -destination=mock/mock_client.go -package=pokeapimock github.com/rshade/pokedex/internal/pokeapi Client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/sony/gobreaker"
	"golang.org/x/time/rate"

	"github.com/rshade/pokedex/internal/cache"
	"github.com/rshade/pokedex/internal/entities"
	"github.com/rshade/pokedex/internal/logging"
)

const (
	// maxBodyBytes bounds a single response body.
	maxBodyBytes = 8 << 20

	defaultBaseURL     = "https://pokeapi.co/api/v2/"
	defaultHTTPTimeout = 10 * time.Second
	defaultMaxFailures = 5
	defaultOpenTimeout = 30 * time.Second
	defaultUserAgent   = "pokedex-cli"
)

// Client fetches data from PokeAPI.
type Client interface {
	// ListNames returns the names of the first limit entries of the index.
	ListNames(ctx context.Context, limit int) ([]string, error)

	// GetPokemon fetches one entry by name or numeric id. nameOrID is sent as-is
	// (path-escaped); callers normalize it.
	GetPokemon(ctx context.Context, nameOrID string) (*entities.Pokemon, error)
}

// Config contains configuration options for the client.
type Config struct {
	// BaseURL of the API (optional, defaults to https://pokeapi.co/api/v2/)
	BaseURL string
	// HTTPTimeout per request (optional, defaults to 10 seconds)
	HTTPTimeout time.Duration
	// RateLimit in requests per second; 0 disables limiting.
	RateLimit float64
	Burst     int
	// BreakerMaxFailures consecutive failures open the circuit (default 5).
	BreakerMaxFailures uint32
	// BreakerOpenTimeout is how long the circuit stays open (default 30s).
	BreakerOpenTimeout time.Duration
	UserAgent          string

	// Cache stores successful response bodies keyed by URL. Optional.
	Cache cache.Store
	// HTTPClient overrides the default client. Optional.
	HTTPClient *http.Client
	Logger     zerolog.Logger
}

// Validate sets defaults for unset fields.
func (cfg *Config) Validate() error {
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	u, err := url.Parse(cfg.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("invalid base URL %q", cfg.BaseURL)
	}
	if cfg.HTTPTimeout == 0 {
		cfg.HTTPTimeout = defaultHTTPTimeout
	}
	if cfg.RateLimit < 0 {
		return errors.New("rate limit must be >= 0")
	}
	if cfg.Burst <= 0 {
		cfg.Burst = 1
	}
	if cfg.BreakerMaxFailures == 0 {
		cfg.BreakerMaxFailures = defaultMaxFailures
	}
	if cfg.BreakerOpenTimeout == 0 {
		cfg.BreakerOpenTimeout = defaultOpenTimeout
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = defaultUserAgent
	}
	return nil
}

// HTTPClient implements Client over net/http.
type HTTPClient struct {
	baseURL   string
	userAgent string
	http      *http.Client
	limiter   *rate.Limiter
	breaker   *gobreaker.CircuitBreaker
	cache     cache.Store
	logger    zerolog.Logger
}

var _ Client = (*HTTPClient)(nil)

// New creates a client with the given configuration.
func New(cfg *Config) (*HTTPClient, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.HTTPTimeout}
	}

	limit := rate.Inf
	if cfg.RateLimit > 0 {
		limit = rate.Limit(cfg.RateLimit)
	}

	logger := logging.ComponentLogger(cfg.Logger, "pokeapi")

	maxFailures := cfg.BreakerMaxFailures
	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "pokeapi",
		MaxRequests: 1,
		Timeout:     cfg.BreakerOpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= maxFailures
		},
		// A 404 is an answer, not an outage.
		IsSuccessful: func(err error) bool {
			var se *StatusError
			if errors.As(err, &se) {
				return !se.serverSide()
			}
			return err == nil
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn().Str("breaker", name).Str("from", from.String()).Str("to", to.String()).
				Msg("circuit breaker state changed")
		},
	})

	return &HTTPClient{
		baseURL:   strings.TrimRight(cfg.BaseURL, "/") + "/",
		userAgent: cfg.UserAgent,
		http:      httpClient,
		limiter:   rate.NewLimiter(limit, cfg.Burst),
		breaker:   breaker,
		cache:     cfg.Cache,
		logger:    logger,
	}, nil
}

// ListNames implements Client.
func (c *HTTPClient) ListNames(ctx context.Context, limit int) ([]string, error) {
	if limit <= 0 {
		return nil, fmt.Errorf("limit must be > 0, got %d", limit)
	}

	body, err := c.fetch(ctx, c.baseURL+"pokemon?limit="+strconv.Itoa(limit))
	if err != nil {
		return nil, err
	}

	var payload listPayload
	if err = json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("%w: decoding index: %v", ErrUnavailable, err)
	}

	names := make([]string, 0, len(payload.Results))
	for _, r := range payload.Results {
		if r.Name != "" {
			names = append(names, r.Name)
		}
	}
	return names, nil
}

// GetPokemon implements Client.
func (c *HTTPClient) GetPokemon(ctx context.Context, nameOrID string) (*entities.Pokemon, error) {
	if nameOrID == "" {
		return nil, fmt.Errorf("%w: empty query", ErrNotFound)
	}

	body, err := c.fetch(ctx, c.baseURL+"pokemon/"+url.PathEscape(nameOrID))
	if err != nil {
		return nil, err
	}

	var payload pokemonPayload
	if err = json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("%w: decoding %q: %v", ErrNotFound, nameOrID, err)
	}
	return payload.toEntity()
}

// BreakerState returns "closed", "half-open" or "open".
func (c *HTTPClient) BreakerState() string {
	return c.breaker.State().String()
}

// fetch returns the body for rawURL from the cache or the network.
func (c *HTTPClient) fetch(ctx context.Context, rawURL string) ([]byte, error) {
	log := c.logger.With().Str("url", rawURL).Logger()

	if c.cache != nil {
		body, err := c.cache.Get(ctx, rawURL)
		if err == nil {
			log.Debug().Ctx(ctx).Bool("cache_hit", true).Msg("served from cache")
			return body, nil
		}
		if !cache.IsMiss(err) {
			log.Warn().Ctx(ctx).Err(err).Msg("cache read failed")
		}
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("%w: rate limiter: %v", ErrUnavailable, err)
	}

	start := time.Now()
	result, err := c.breaker.Execute(func() (interface{}, error) {
		return c.do(ctx, rawURL)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			err = fmt.Errorf("%w: %v", ErrUnavailable, err)
		}
		log.Debug().Ctx(ctx).Err(err).Dur("duration", time.Since(start)).Msg("request failed")
		return nil, err
	}
	body, _ := result.([]byte)
	log.Debug().Ctx(ctx).Dur("duration", time.Since(start)).Int("bytes", len(body)).Msg("request succeeded")

	if c.cache != nil {
		if setErr := c.cache.Set(ctx, rawURL, body); setErr != nil && !errors.Is(setErr, cache.ErrCacheDisabled) {
			log.Warn().Ctx(ctx).Err(setErr).Msg("cache write failed")
		}
	}
	return body, nil
}

func (c *HTTPClient) do(ctx context.Context, rawURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxBodyBytes))
		return nil, &StatusError{URL: rawURL, StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: reading body: %v", ErrUnavailable, err)
	}
	return body, nil
}

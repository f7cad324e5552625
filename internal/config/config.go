package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Environment variables that override the config file.
const (
	EnvHome         = "POKEDEX_HOME"
	EnvAPIURL       = "POKEDEX_API_URL"
	EnvLogLevel     = "POKEDEX_LOG_LEVEL"
	EnvLogFormat    = "POKEDEX_LOG_FORMAT"
	EnvCacheEnabled = "POKEDEX_CACHE_ENABLED"
	EnvCacheTTL     = "POKEDEX_CACHE_TTL_SECONDS"
	EnvCacheBackend = "POKEDEX_CACHE_BACKEND"
	EnvRedisAddr    = "POKEDEX_REDIS_ADDR"
)

// Defaults.
const (
	DefaultBaseURL            = "https://pokeapi.co/api/v2/"
	DefaultTimeoutSeconds     = 10
	DefaultCatalogLimit       = 2000
	DefaultRateLimit          = 10.0
	DefaultBurst              = 5
	DefaultBreakerMaxFailures = 5
	DefaultBreakerOpenSeconds = 30
	DefaultSuggestionCount    = 8
	DefaultCacheTTLSeconds    = 86400
	DefaultCacheMaxSizeMB     = 50
	DefaultRedisPrefix        = "pokedex:"

	BackendFile  = "file"
	BackendRedis = "redis"

	configFileName = "config.yaml"
)

// ErrInvalidConfig wraps every validation failure.
var ErrInvalidConfig = errors.New("invalid configuration")

// Config is the pokedex configuration file, ~/.pokedex/config.yaml.
type Config struct {
	API         APIConfig         `yaml:"api"`
	Cache       CacheConfig       `yaml:"cache"`
	Suggestions SuggestionsConfig `yaml:"suggestions"`
	Logging     LoggingConfig     `yaml:"logging"`

	configPath string
}

// APIConfig controls how PokeAPI is called.
type APIConfig struct {
	BaseURL        string `yaml:"base_url"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
	// CatalogLimit is the page size used for the single name-index request.
	CatalogLimit int `yaml:"catalog_limit"`
	// RateLimit is requests per second; 0 disables limiting.
	RateLimit float64       `yaml:"rate_limit"`
	Burst     int           `yaml:"burst"`
	Breaker   BreakerConfig `yaml:"breaker"`
}

// BreakerConfig configures the circuit breaker in front of PokeAPI.
type BreakerConfig struct {
	MaxFailures        uint32 `yaml:"max_failures"`
	OpenTimeoutSeconds int    `yaml:"open_timeout_seconds"`
}

// CacheConfig configures the response cache.
type CacheConfig struct {
	Enabled    bool        `yaml:"enabled"`
	Backend    string      `yaml:"backend"`
	Directory  string      `yaml:"directory"`
	TTLSeconds int         `yaml:"ttl_seconds"`
	MaxSizeMB  int         `yaml:"max_size_mb"`
	Redis      RedisConfig `yaml:"redis"`
}

// RedisConfig is used when Backend is "redis".
type RedisConfig struct {
	Addr   string `yaml:"addr"`
	DB     int    `yaml:"db"`
	Prefix string `yaml:"prefix"`
}

// SuggestionsConfig sizes the random suggestion panel.
type SuggestionsConfig struct {
	Count int `yaml:"count"`
}

// LoggingConfig is the logging section.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	File   string `yaml:"file"`
}

// Default returns the built-in configuration without reading any file.
func Default() *Config {
	dir, err := GetConfigDir()
	if err != nil {
		dir = filepath.Join(os.TempDir(), ".pokedex")
	}

	return &Config{
		API: APIConfig{
			BaseURL:        DefaultBaseURL,
			TimeoutSeconds: DefaultTimeoutSeconds,
			CatalogLimit:   DefaultCatalogLimit,
			RateLimit:      DefaultRateLimit,
			Burst:          DefaultBurst,
			Breaker: BreakerConfig{
				MaxFailures:        DefaultBreakerMaxFailures,
				OpenTimeoutSeconds: DefaultBreakerOpenSeconds,
			},
		},
		Cache: CacheConfig{
			Enabled:    true,
			Backend:    BackendFile,
			Directory:  filepath.Join(dir, "cache"),
			TTLSeconds: DefaultCacheTTLSeconds,
			MaxSizeMB:  DefaultCacheMaxSizeMB,
			Redis: RedisConfig{
				Addr:   "localhost:6379",
				Prefix: DefaultRedisPrefix,
			},
		},
		Suggestions: SuggestionsConfig{Count: DefaultSuggestionCount},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			File:   filepath.Join(dir, "logs", "pokedex.log"),
		},
		configPath: filepath.Join(dir, configFileName),
	}
}

// New returns the defaults overlaid with ~/.pokedex/config.yaml (if present)
// and then with environment overrides. A malformed file is ignored.
func New() *Config {
	cfg := Default()
	if err := cfg.Load(); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Warning: ignoring config file: %v\n", err)
	}
	cfg.applyEnvOverrides()
	return cfg
}

// Load reads the config file at ConfigPath onto cfg. A missing file is not an error.
func (c *Config) Load() error {
	data, err := os.ReadFile(c.configPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("reading %s: %w", c.configPath, err)
	}
	if err = yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parsing %s: %w", c.configPath, err)
	}
	return nil
}

// Save writes cfg to ConfigPath, creating the directory if needed.
func (c *Config) Save() error {
	if err := os.MkdirAll(filepath.Dir(c.configPath), 0o700); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	if err = os.WriteFile(c.configPath, data, 0o600); err != nil {
		return fmt.Errorf("writing %s: %w", c.configPath, err)
	}
	return nil
}

// ConfigPath returns the file this config is loaded from and saved to.
func (c *Config) ConfigPath() string {
	return c.configPath
}

// SetConfigPath changes the file used by Load and Save.
func (c *Config) SetConfigPath(path string) {
	c.configPath = path
}

// Validate checks values that would make the client misbehave.
func (c *Config) Validate() error {
	u, err := url.Parse(c.API.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("%w: api.base_url %q is not an absolute URL", ErrInvalidConfig, c.API.BaseURL)
	}
	if c.API.TimeoutSeconds <= 0 {
		return fmt.Errorf("%w: api.timeout_seconds must be > 0", ErrInvalidConfig)
	}
	if c.API.CatalogLimit <= 0 {
		return fmt.Errorf("%w: api.catalog_limit must be > 0", ErrInvalidConfig)
	}
	if c.API.RateLimit < 0 {
		return fmt.Errorf("%w: api.rate_limit must be >= 0", ErrInvalidConfig)
	}
	if c.Suggestions.Count < 0 {
		return fmt.Errorf("%w: suggestions.count must be >= 0", ErrInvalidConfig)
	}
	switch c.Cache.Backend {
	case BackendFile, BackendRedis:
	default:
		return fmt.Errorf("%w: cache.backend must be %q or %q, got %q",
			ErrInvalidConfig, BackendFile, BackendRedis, c.Cache.Backend)
	}
	if c.Cache.Enabled && c.Cache.Backend == BackendRedis && c.Cache.Redis.Addr == "" {
		return fmt.Errorf("%w: cache.redis.addr is required for the redis backend", ErrInvalidConfig)
	}
	return nil
}

func (c *Config) applyEnvOverrides() {
	if v, ok := os.LookupEnv(EnvAPIURL); ok && v != "" {
		c.API.BaseURL = v
	}
	if v, ok := os.LookupEnv(EnvLogLevel); ok && v != "" {
		c.Logging.Level = strings.ToLower(v)
	}
	if v, ok := os.LookupEnv(EnvLogFormat); ok && v != "" {
		c.Logging.Format = strings.ToLower(v)
	}
	if v, ok := os.LookupEnv(EnvCacheEnabled); ok {
		if b, err := strconv.ParseBool(v); err == nil {
			c.Cache.Enabled = b
		}
	}
	if v, ok := os.LookupEnv(EnvCacheTTL); ok {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			c.Cache.TTLSeconds = n
		}
	}
	if v, ok := os.LookupEnv(EnvCacheBackend); ok && v != "" {
		c.Cache.Backend = strings.ToLower(v)
	}
	if v, ok := os.LookupEnv(EnvRedisAddr); ok && v != "" {
		c.Cache.Redis.Addr = v
	}
}

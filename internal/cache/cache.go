package cache

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// Backend names.
const (
	BackendFile  = "file"
	BackendRedis = "redis"
)

// Common cache errors.
var (
	ErrCacheNotFound   = errors.New("cache entry not found")
	ErrCacheExpired    = errors.New("cache entry expired")
	ErrInvalidCacheKey = errors.New("cache key cannot be empty")
	ErrCacheDisabled   = errors.New("cache is disabled")
)

// Store is a TTL key/value store for response bodies.
type Store interface {
	// Get returns the body for key, ErrCacheNotFound or ErrCacheExpired.
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, data []byte) error
	Delete(ctx context.Context, key string) error
	Clear(ctx context.Context) error
	Stats(ctx context.Context) (Stats, error)
	Close() error
}

// Stats describes the current contents of a Store.
type Stats struct {
	Backend   string        `json:"backend"   yaml:"backend"`
	Location  string        `json:"location"  yaml:"location"`
	Entries   int           `json:"entries"   yaml:"entries"`
	SizeBytes int64         `json:"size_bytes" yaml:"size_bytes"`
	TTL       time.Duration `json:"ttl"       yaml:"ttl"`
}

// Options selects and configures a backend.
type Options struct {
	Enabled    bool
	Backend    string
	Directory  string
	TTLSeconds int
	MaxSizeMB  int

	RedisAddr   string
	RedisDB     int
	RedisPrefix string
}

// Open builds the Store described by opts. A disabled cache yields a FileStore
// that answers every call with ErrCacheDisabled.
func Open(opts Options) (Store, error) {
	if !opts.Enabled {
		return NewFileStore("", false, 0, 0)
	}

	ttl := opts.TTLSeconds
	if ttl == 0 {
		ttl = DefaultTTLSeconds
	}
	if err := ValidateTTL(ttl); err != nil {
		return nil, err
	}

	switch opts.Backend {
	case "", BackendFile:
		return NewFileStore(opts.Directory, true, ttl, opts.MaxSizeMB)
	case BackendRedis:
		client, err := NewRedisClient(opts.RedisAddr, opts.RedisDB)
		if err != nil {
			return nil, err
		}
		return NewRedisStore(client, opts.RedisPrefix, time.Duration(ttl)*time.Second), nil
	default:
		return nil, fmt.Errorf("unknown cache backend %q", opts.Backend)
	}
}

// IsMiss reports whether err means "not cached" rather than a failure.
func IsMiss(err error) bool {
	return errors.Is(err, ErrCacheNotFound) ||
		errors.Is(err, ErrCacheExpired) ||
		errors.Is(err, ErrCacheDisabled)
}

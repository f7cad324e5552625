package pokedex

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"slices"
	"sync"

	"github.com/rs/zerolog"

	"github.com/rshade/pokedex/internal/logging"
)

// Defaults for the catalog.
const (
	DefaultCatalogLimit    = 2000
	DefaultSuggestionCount = 8
)

// ErrCatalogUnavailable is returned by Load when the index could not be fetched.
// The catalog stays empty; callers are expected to carry on without suggestions.
var ErrCatalogUnavailable = errors.New("catalog unavailable")

// NameLister is the part of the API client the catalog needs.
type NameLister interface {
	ListNames(ctx context.Context, limit int) ([]string, error)
}

// CatalogOptions configures a Catalog. Zero values pick the defaults.
type CatalogOptions struct {
	Limit           int
	SuggestionCount int
	// Rand drives sampling. Nil uses the global source.
	Rand   *rand.Rand
	Logger zerolog.Logger
}

// Catalog is the session's name index plus the current suggestion set.
type Catalog struct {
	lister NameLister
	limit  int
	count  int
	logger zerolog.Logger

	once    sync.Once
	loadErr error

	mu          sync.RWMutex
	rng         *rand.Rand
	names       []string
	suggestions []string
	loaded      bool
}

// NewCatalog creates an empty catalog. Nothing is fetched until Load.
func NewCatalog(lister NameLister, opts CatalogOptions) *Catalog {
	limit := opts.Limit
	if limit <= 0 {
		limit = DefaultCatalogLimit
	}
	count := opts.SuggestionCount
	if count <= 0 {
		count = DefaultSuggestionCount
	}
	return &Catalog{
		lister: lister,
		limit:  limit,
		count:  count,
		rng:    opts.Rand,
		logger: logging.ComponentLogger(opts.Logger, "catalog"),
	}
}

// Load fetches the name index exactly once. Later calls return the first
// outcome without another request.
func (c *Catalog) Load(ctx context.Context) error {
	c.once.Do(func() {
		names, err := c.lister.ListNames(ctx, c.limit)
		if err != nil {
			c.logger.Warn().Ctx(ctx).Err(err).Msg("name index unavailable, continuing without suggestions")
			c.loadErr = fmt.Errorf("%w: %w", ErrCatalogUnavailable, err)
			return
		}

		c.mu.Lock()
		defer c.mu.Unlock()
		c.names = names
		c.loaded = true
		c.suggestions = Sample(c.rng, c.names, c.count)
		c.logger.Debug().Ctx(ctx).Int("names", len(names)).Strs("suggestions", c.suggestions).
			Msg("name index loaded")
	})
	return c.loadErr
}

// Loaded reports whether Load succeeded.
func (c *Catalog) Loaded() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.loaded
}

// Names returns a copy of the name index in API order.
func (c *Catalog) Names() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return slices.Clone(c.names)
}

// Suggestions returns a copy of the current suggestion set.
func (c *Catalog) Suggestions() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return slices.Clone(c.suggestions)
}

// Reroll draws a fresh suggestion set and returns it. With an empty index it
// changes nothing.
func (c *Catalog) Reroll() []string {
	c.mu.Lock()
	defer c.mu.Unlock()

	if len(c.names) == 0 {
		return slices.Clone(c.suggestions)
	}
	c.suggestions = Sample(c.rng, c.names, c.count)
	return slices.Clone(c.suggestions)
}

// SuggestN draws n names without touching the stored suggestion set.
func (c *Catalog) SuggestN(n int) []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Sample(c.rng, c.names, n)
}

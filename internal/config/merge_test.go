package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/pokedex/internal/config"
)

// newDefaultTarget returns a Config with known non-zero values so tests can
// verify that absent overlay keys leave the original values intact.
func newDefaultTarget() *config.Config {
	return &config.Config{
		API: config.APIConfig{
			BaseURL:        "https://pokeapi.co/api/v2/",
			TimeoutSeconds: 10,
			CatalogLimit:   2000,
			RateLimit:      10,
			Burst:          5,
		},
		Cache: config.CacheConfig{
			Enabled:    true,
			Backend:    config.BackendFile,
			Directory:  "/tmp/pokedex-cache",
			TTLSeconds: 3600,
			MaxSizeMB:  100,
		},
		Suggestions: config.SuggestionsConfig{Count: 8},
		Logging: config.LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// writeOverlay writes YAML content to a temp file and returns its path.
func writeOverlay(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "overlay.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestShallowMergeYAML_SingleKeyOverride(t *testing.T) {
	target := newDefaultTarget()
	overlay := writeOverlay(t, `
suggestions:
  count: 12
`)

	require.NoError(t, config.ShallowMergeYAML(target, overlay))

	assert.Equal(t, 12, target.Suggestions.Count)
	assert.Equal(t, "info", target.Logging.Level)
	assert.Equal(t, 2000, target.API.CatalogLimit)
	assert.True(t, target.Cache.Enabled)
}

func TestShallowMergeYAML_MultipleKeyOverride(t *testing.T) {
	target := newDefaultTarget()
	overlay := writeOverlay(t, `
api:
  base_url: http://localhost:8080/api/v2/
  timeout_seconds: 3
  catalog_limit: 151
cache:
  enabled: true
  backend: redis
  ttl_seconds: 600
  redis:
    addr: cache:6379
    prefix: "dex:"
`)

	require.NoError(t, config.ShallowMergeYAML(target, overlay))

	assert.Equal(t, "http://localhost:8080/api/v2/", target.API.BaseURL)
	assert.Equal(t, 151, target.API.CatalogLimit)
	assert.Equal(t, config.BackendRedis, target.Cache.Backend)
	assert.Equal(t, "cache:6379", target.Cache.Redis.Addr)
	assert.Equal(t, "dex:", target.Cache.Redis.Prefix)
}

func TestShallowMergeYAML_SectionsReplacedWhole(t *testing.T) {
	target := newDefaultTarget()
	overlay := writeOverlay(t, `
api:
  catalog_limit: 151
`)

	require.NoError(t, config.ShallowMergeYAML(target, overlay))

	// Shallow merge: sibling fields inside a replaced section go to zero.
	assert.Equal(t, 151, target.API.CatalogLimit)
	assert.Empty(t, target.API.BaseURL)
	assert.Zero(t, target.API.TimeoutSeconds)
}

func TestShallowMergeYAML_EmptyAndCommentOnly(t *testing.T) {
	for name, content := range map[string]string{
		"empty":   "",
		"comment": "# nothing here\n# really\n",
	} {
		t.Run(name, func(t *testing.T) {
			target := newDefaultTarget()
			original := *target

			require.NoError(t, config.ShallowMergeYAML(target, writeOverlay(t, content)))
			assert.Equal(t, original.API, target.API)
			assert.Equal(t, original.Cache, target.Cache)
			assert.Equal(t, original.Logging, target.Logging)
		})
	}
}

func TestShallowMergeYAML_CorruptedYAMLReturnsError(t *testing.T) {
	err := config.ShallowMergeYAML(newDefaultTarget(), writeOverlay(t, "{{{{not valid yaml at all"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing overlay YAML")
}

func TestShallowMergeYAML_MissingFileReturnsError(t *testing.T) {
	err := config.ShallowMergeYAML(newDefaultTarget(), "/nonexistent/path/overlay.yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading overlay file")
}

func TestShallowMergeYAML_NilTarget(t *testing.T) {
	require.Error(t, config.ShallowMergeYAML(nil, writeOverlay(t, "logging:\n  level: debug\n")))
}

func TestShallowMergeYAML_UnknownKeysIgnored(t *testing.T) {
	target := newDefaultTarget()
	overlay := writeOverlay(t, `
logging:
  level: debug
  format: json
plugins:
  foo: bar
extra_key: 42
`)

	require.NoError(t, config.ShallowMergeYAML(target, overlay))

	assert.Equal(t, "debug", target.Logging.Level)
	assert.Equal(t, "json", target.Logging.Format)
	assert.Equal(t, 8, target.Suggestions.Count)
}

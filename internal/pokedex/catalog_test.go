package pokedex

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	pokeapimock "github.com/rshade/pokedex/internal/pokeapi/mock"
)

func TestCatalog_Load(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := pokeapimock.NewMockClient(ctrl)

	names := population(1302)
	client.EXPECT().ListNames(gomock.Any(), 2000).Return(names, nil).Times(1)

	c := NewCatalog(client, CatalogOptions{Rand: NewRand(1), Logger: zerolog.Nop()})
	assert.False(t, c.Loaded())
	assert.Empty(t, c.Suggestions())

	require.NoError(t, c.Load(context.Background()))
	require.NoError(t, c.Load(context.Background()), "second load is a no-op")

	assert.True(t, c.Loaded())
	assert.Len(t, c.Names(), 1302)
	assert.Len(t, c.Suggestions(), DefaultSuggestionCount)
}

func TestCatalog_LoadFailureIsEmpty(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := pokeapimock.NewMockClient(ctrl)
	client.EXPECT().ListNames(gomock.Any(), 151).Return(nil, errors.New("connection refused")).Times(1)

	c := NewCatalog(client, CatalogOptions{Limit: 151, Logger: zerolog.Nop()})

	err := c.Load(context.Background())
	require.ErrorIs(t, err, ErrCatalogUnavailable)
	assert.ErrorIs(t, c.Load(context.Background()), ErrCatalogUnavailable, "failure is remembered, not retried")

	assert.False(t, c.Loaded())
	assert.Empty(t, c.Names())
	assert.Empty(t, c.Suggestions())
	assert.Empty(t, c.Reroll(), "reroll on an empty index does nothing")
}

func TestCatalog_Reroll(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := pokeapimock.NewMockClient(ctrl)
	client.EXPECT().ListNames(gomock.Any(), gomock.Any()).Return(population(500), nil)

	c := NewCatalog(client, CatalogOptions{SuggestionCount: 5, Rand: NewRand(3), Logger: zerolog.Nop()})
	require.NoError(t, c.Load(context.Background()))

	first := c.Suggestions()
	require.Len(t, first, 5)

	changed := false
	for range 10 {
		next := c.Reroll()
		require.Len(t, next, 5)
		assertDistinct(t, next)
		assert.Equal(t, next, c.Suggestions())
		if !assert.ObjectsAreEqual(first, next) {
			changed = true
		}
	}
	assert.True(t, changed, "rerolling 500 names should change the set")
}

func TestCatalog_SmallIndex(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := pokeapimock.NewMockClient(ctrl)
	client.EXPECT().ListNames(gomock.Any(), gomock.Any()).Return([]string{"a", "b", "c"}, nil)

	c := NewCatalog(client, CatalogOptions{Logger: zerolog.Nop()})
	require.NoError(t, c.Load(context.Background()))

	assert.ElementsMatch(t, []string{"a", "b", "c"}, c.Suggestions())
	assert.Len(t, c.SuggestN(2), 2)
}

func TestCatalog_NamesAreCopies(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := pokeapimock.NewMockClient(ctrl)
	client.EXPECT().ListNames(gomock.Any(), gomock.Any()).Return([]string{"a", "b"}, nil)

	c := NewCatalog(client, CatalogOptions{Logger: zerolog.Nop()})
	require.NoError(t, c.Load(context.Background()))

	names := c.Names()
	names[0] = "zzz"
	assert.Equal(t, "a", c.Names()[0])
}

func assertDistinct(t *testing.T, xs []string) {
	t.Helper()
	seen := map[string]bool{}
	for _, x := range xs {
		assert.False(t, seen[x], "duplicate %q", x)
		seen[x] = true
	}
}

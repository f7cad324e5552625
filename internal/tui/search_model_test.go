package tui

import (
	"context"
	"errors"
	"fmt"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/rshade/pokedex/internal/entities"
	"github.com/rshade/pokedex/internal/pokeapi"
	pokeapimock "github.com/rshade/pokedex/internal/pokeapi/mock"
	"github.com/rshade/pokedex/internal/pokedex"
)

func catalogNames(n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = fmt.Sprintf("mon-%d", i)
	}
	return out
}

func newTestModel(t *testing.T) (SearchModel, *pokeapimock.MockClient) {
	t.Helper()
	ctrl := gomock.NewController(t)
	client := pokeapimock.NewMockClient(ctrl)
	session := pokedex.NewSession(client, zerolog.Nop())
	catalog := pokedex.NewCatalog(client, pokedex.CatalogOptions{Rand: pokedex.NewRand(7), Logger: zerolog.Nop()})
	m := NewSearchModel(context.Background(), session, catalog, SearchOptions{})
	m.width, m.height = 120, 40
	return m, client
}

// drain runs cmd and any batched children, returning the messages this
// package defines. Other messages are dropped.
func drain(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	var out []tea.Msg
	switch msg := cmd().(type) {
	case tea.BatchMsg:
		for _, c := range msg {
			out = append(out, drain(c)...)
		}
	case lookupResultMsg, catalogLoadedMsg:
		out = append(out, msg)
	}
	return out
}

func send(t *testing.T, m SearchModel, msg tea.Msg) (SearchModel, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	sm, ok := next.(SearchModel)
	require.True(t, ok)
	return sm, cmd
}

func feed(t *testing.T, m SearchModel, msgs []tea.Msg) SearchModel {
	t.Helper()
	for _, msg := range msgs {
		m, _ = send(t, m, msg)
	}
	return m
}

func typeText(t *testing.T, m SearchModel, s string) SearchModel {
	t.Helper()
	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)})
	return m
}

func loaded(t *testing.T, m SearchModel) SearchModel {
	t.Helper()
	return feed(t, m, drain(m.loadCatalog()))
}

func TestSearchModel_CatalogLoadFillsSuggestions(t *testing.T) {
	m, client := newTestModel(t)
	client.EXPECT().ListNames(gomock.Any(), pokedex.DefaultCatalogLimit).Return(catalogNames(40), nil)

	m = loaded(t, m)

	require.Len(t, m.Suggestions(), pokedex.DefaultSuggestionCount)
	seen := map[string]bool{}
	for _, s := range m.Suggestions() {
		assert.False(t, seen[s], "duplicate suggestion %s", s)
		seen[s] = true
	}
}

func TestSearchModel_CatalogFailureIsSilent(t *testing.T) {
	m, client := newTestModel(t)
	client.EXPECT().ListNames(gomock.Any(), gomock.Any()).Return(nil, pokeapi.ErrUnavailable)

	m = loaded(t, m)

	assert.Empty(t, m.Suggestions())
	assert.Equal(t, pokedex.PhaseIdle, m.State().Phase)
	assert.Contains(t, m.View(), "No suggestions")
}

func TestSearchModel_SubmitAndSucceed(t *testing.T) {
	m, client := newTestModel(t)
	client.EXPECT().GetPokemon(gomock.Any(), "pikachu").
		Return(&entities.Pokemon{ID: 25, Name: "pikachu", Types: []string{"electric"}}, nil)

	m = typeText(t, m, "  Pikachu ")
	m, cmd := send(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	assert.Equal(t, pokedex.PhaseLoading, m.State().Phase)
	assert.Contains(t, m.View(), "Looking up pikachu")

	m = feed(t, m, drain(cmd))

	st := m.State()
	require.Equal(t, pokedex.PhaseSucceeded, st.Phase)
	assert.Equal(t, 25, st.Pokemon.ID)
	assert.Contains(t, m.View(), "#025")
}

func TestSearchModel_BlankSubmitDoesNothing(t *testing.T) {
	m, _ := newTestModel(t)

	m = typeText(t, m, "   ")
	m, cmd := send(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	assert.Nil(t, cmd)
	assert.Equal(t, pokedex.PhaseIdle, m.State().Phase)
}

func TestSearchModel_EnterIgnoredWhileLoading(t *testing.T) {
	m, client := newTestModel(t)
	client.EXPECT().GetPokemon(gomock.Any(), "eevee").Return(&entities.Pokemon{ID: 133, Name: "eevee"}, nil).Times(1)

	m = typeText(t, m, "eevee")
	m, first := send(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m, second := send(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	assert.Nil(t, second)
	m = feed(t, m, drain(first))
	assert.Equal(t, pokedex.PhaseSucceeded, m.State().Phase)
}

func TestSearchModel_NotFoundShowsMessage(t *testing.T) {
	m, client := newTestModel(t)
	client.EXPECT().GetPokemon(gomock.Any(), "missingno").
		Return(nil, fmt.Errorf("lookup: %w", &pokeapi.StatusError{StatusCode: 404}))

	m = typeText(t, m, "missingno")
	m, cmd := send(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m = feed(t, m, drain(cmd))

	st := m.State()
	require.Equal(t, pokedex.PhaseFailed, st.Phase)
	assert.Nil(t, st.Pokemon)
	assert.NotEmpty(t, st.Message)
	assert.Contains(t, m.View(), st.Message)
}

func TestSearchModel_LatestLookupWins(t *testing.T) {
	m, client := newTestModel(t)
	client.EXPECT().ListNames(gomock.Any(), gomock.Any()).Return([]string{"charmander"}, nil)
	client.EXPECT().GetPokemon(gomock.Any(), "bulbasaur").Return(&entities.Pokemon{ID: 1, Name: "bulbasaur"}, nil)
	client.EXPECT().GetPokemon(gomock.Any(), "charmander").Return(&entities.Pokemon{ID: 4, Name: "charmander"}, nil)
	m = loaded(t, m)

	m = typeText(t, m, "bulbasaur")
	m, slow := send(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	// A suggestion pick is allowed while the first lookup is still running.
	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyTab})
	m, fast := send(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, fast)

	m = feed(t, m, drain(fast))
	m = feed(t, m, drain(slow))

	st := m.State()
	require.Equal(t, pokedex.PhaseSucceeded, st.Phase)
	assert.Equal(t, "charmander", st.Pokemon.Name)
	assert.Equal(t, "bulbasaur", m.InputValue(), "picking a suggestion leaves the search box alone")
}

func TestSearchModel_ResetClearsEverything(t *testing.T) {
	m, client := newTestModel(t)
	client.EXPECT().GetPokemon(gomock.Any(), "ditto").Return(&entities.Pokemon{ID: 132, Name: "ditto"}, nil)

	m = typeText(t, m, "ditto")
	m, cmd := send(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m = feed(t, m, drain(cmd))
	require.Equal(t, pokedex.PhaseSucceeded, m.State().Phase)

	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyEsc})

	assert.Equal(t, pokedex.PhaseIdle, m.State().Phase)
	assert.Nil(t, m.State().Pokemon)
	assert.Empty(t, m.InputValue())
	assert.Equal(t, FocusInput, m.Focused())
}

func TestSearchModel_ResetDropsInFlightLookup(t *testing.T) {
	m, client := newTestModel(t)
	client.EXPECT().GetPokemon(gomock.Any(), "mew").Return(&entities.Pokemon{ID: 151, Name: "mew"}, nil)

	m = typeText(t, m, "mew")
	m, cmd := send(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	m = feed(t, m, drain(cmd))

	assert.Equal(t, pokedex.PhaseIdle, m.State().Phase)
}

func TestSearchModel_SuggestionNavigationAndReroll(t *testing.T) {
	m, client := newTestModel(t)
	client.EXPECT().ListNames(gomock.Any(), gomock.Any()).Return(catalogNames(100), nil)
	m = loaded(t, m)

	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, FocusSuggestions, m.Focused())

	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyRight})
	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyRight})
	assert.Equal(t, 2, m.Cursor())
	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyLeft})
	assert.Equal(t, 1, m.Cursor())

	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyCtrlR})
	assert.Equal(t, 0, m.Cursor())
	assert.Len(t, m.Suggestions(), pokedex.DefaultSuggestionCount)

	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, FocusInput, m.Focused())
}

func TestSearchModel_TabWithoutSuggestionsKeepsInputFocus(t *testing.T) {
	m, _ := newTestModel(t)

	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyTab})

	assert.Equal(t, FocusInput, m.Focused())
}

func TestSearchModel_BrowserSelectsName(t *testing.T) {
	m, client := newTestModel(t)
	client.EXPECT().ListNames(gomock.Any(), gomock.Any()).
		Return([]string{"bulbasaur", "ivysaur", "venusaur", "charmander"}, nil)
	client.EXPECT().GetPokemon(gomock.Any(), "venusaur").Return(&entities.Pokemon{ID: 3, Name: "venusaur"}, nil)
	m = loaded(t, m)

	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyCtrlB})
	require.True(t, m.Browsing())
	assert.Contains(t, m.View(), "ALL POKÉMON (4/4)")

	m = typeText(t, m, "venu")
	assert.Contains(t, m.View(), "ALL POKÉMON (1/4)")

	m, cmd := send(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.False(t, m.Browsing())
	m = feed(t, m, drain(cmd))

	assert.Equal(t, "venusaur", m.State().Pokemon.Name)
}

func TestSearchModel_BrowserNeedsCatalog(t *testing.T) {
	m, _ := newTestModel(t)

	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyCtrlB})

	assert.False(t, m.Browsing())
}

func TestSearchModel_EscClosesBrowser(t *testing.T) {
	m, client := newTestModel(t)
	client.EXPECT().ListNames(gomock.Any(), gomock.Any()).Return([]string{"pidgey"}, nil)
	m = loaded(t, m)

	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyCtrlB})
	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyEsc})

	assert.False(t, m.Browsing())
}

func TestSearchModel_Quit(t *testing.T) {
	m, _ := newTestModel(t)

	_, cmd := send(t, m, tea.KeyMsg{Type: tea.KeyCtrlC})

	require.NotNil(t, cmd)
	_, ok := cmd().(tea.QuitMsg)
	assert.True(t, ok)
}

func TestSearchModel_NarrowLayout(t *testing.T) {
	m, _ := newTestModel(t)
	m, _ = send(t, m, tea.WindowSizeMsg{Width: 60, Height: 30})

	out := m.View()
	assert.Contains(t, out, "POKÉDEX")
	assert.Contains(t, out, "Search by name or number")
}

func TestFailureMessagesNeverLeakTransportErrors(t *testing.T) {
	m, client := newTestModel(t)
	client.EXPECT().GetPokemon(gomock.Any(), "abra").
		Return(nil, fmt.Errorf("%w: %w", pokeapi.ErrUnavailable, errors.New("dial tcp 10.0.0.1:443: connection refused")))

	m = typeText(t, m, "abra")
	m, cmd := send(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m = feed(t, m, drain(cmd))

	assert.Equal(t, pokedex.PhaseFailed, m.State().Phase)
	assert.NotContains(t, m.State().Message, "dial tcp")
}

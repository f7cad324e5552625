package listview_test

import (
	"fmt"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	listview "github.com/rshade/pokedex/internal/tui/list"
)

func renderName(item string, selected bool) string {
	if selected {
		return "> " + item
	}
	return "  " + item
}

func names(n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = fmt.Sprintf("mon-%04d", i)
	}
	return out
}

func newList(items []string, height int) *listview.VirtualListModel[string] {
	return listview.NewVirtualListModel(items, height, 40, renderName, listview.ContainsMatch)
}

func key(t tea.KeyType) tea.KeyMsg { return tea.KeyMsg{Type: t} }

func runes(s string) tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)} }

func TestVirtualList_InitialRange(t *testing.T) {
	m := newList(names(100), 10)

	assert.Equal(t, 100, m.ItemCount())
	assert.Equal(t, 100, m.VisibleCount())
	assert.Equal(t, 0, m.Selected())
	assert.Equal(t, 0, m.VisibleFrom())
	assert.Equal(t, 10, m.VisibleTo())
	assert.Nil(t, m.Init())
}

func TestVirtualList_Navigation(t *testing.T) {
	m := newList(names(100), 10)

	m.Update(key(tea.KeyDown))
	m.Update(key(tea.KeyDown))
	assert.Equal(t, 2, m.Selected())

	m.Update(key(tea.KeyUp))
	assert.Equal(t, 1, m.Selected())

	m.Update(key(tea.KeyPgDown))
	assert.Equal(t, 11, m.Selected())

	m.Update(key(tea.KeyEnd))
	assert.Equal(t, 99, m.Selected())
	assert.Equal(t, 100, m.VisibleTo())
	assert.Equal(t, 90, m.VisibleFrom())

	m.Update(key(tea.KeyDown))
	assert.Equal(t, 99, m.Selected(), "cursor stays on the last row")

	m.Update(key(tea.KeyHome))
	assert.Equal(t, 0, m.Selected())

	m.Update(key(tea.KeyPgUp))
	assert.Equal(t, 0, m.Selected())
}

func TestVirtualList_SelectedAlwaysVisible(t *testing.T) {
	m := newList(names(500), 12)
	for i := range 300 {
		m.Update(key(tea.KeyDown))
		require.GreaterOrEqual(t, m.Selected(), m.VisibleFrom(), "step %d", i)
		require.Less(t, m.Selected(), m.VisibleTo(), "step %d", i)
	}
}

func TestVirtualList_ViewRendersWindowOnly(t *testing.T) {
	m := newList(names(1000), 10)
	m.SetSelected(500)

	lines := strings.Split(m.View(), "\n")
	assert.LessOrEqual(t, len(lines), 10+2*5)
	assert.Contains(t, m.View(), "> mon-0500")
}

func TestVirtualList_Filter(t *testing.T) {
	m := newList([]string{"bulbasaur", "ivysaur", "venusaur", "charmander", "pikachu"}, 10)

	m.Update(runes("saur"))
	assert.Equal(t, "saur", m.Filter())
	assert.Equal(t, 3, m.VisibleCount())
	require.NotNil(t, m.GetSelectedItem())
	assert.Equal(t, "bulbasaur", *m.GetSelectedItem())

	m.Update(key(tea.KeyDown))
	assert.Equal(t, "ivysaur", *m.GetSelectedItem())

	m.Update(runes("x"))
	assert.Equal(t, 0, m.VisibleCount())
	assert.Nil(t, m.GetSelectedItem())
	assert.Empty(t, m.View())

	m.Update(key(tea.KeyBackspace))
	assert.Equal(t, 3, m.VisibleCount())
	assert.Equal(t, 0, m.Selected(), "filter change resets the cursor")
}

func TestVirtualList_FilterIsCaseInsensitive(t *testing.T) {
	m := newList([]string{"Pikachu", "Raichu"}, 5)
	m.SetFilter("PIKA")
	assert.Equal(t, 1, m.VisibleCount())
}

func TestVirtualList_NoMatchFuncIgnoresTyping(t *testing.T) {
	m := listview.NewVirtualListModel(names(3), 5, 40, renderName, nil)
	m.Update(runes("zzz"))
	assert.Equal(t, 3, m.VisibleCount())
}

func TestVirtualList_Empty(t *testing.T) {
	m := newList(nil, 10)

	m.Update(key(tea.KeyDown))
	assert.Equal(t, 0, m.Selected())
	assert.Empty(t, m.View())
	assert.Nil(t, m.GetSelectedItem())
}

func TestVirtualList_Resize(t *testing.T) {
	m := newList(names(50), 10)
	m.Update(tea.WindowSizeMsg{Width: 100, Height: 20})

	assert.Equal(t, 100, m.Width())
	assert.Equal(t, 20, m.Height())
	assert.Equal(t, 20, m.VisibleTo())
}

func TestVirtualList_SetSelectedClamps(t *testing.T) {
	m := newList(names(5), 10)
	m.SetSelected(-3)
	assert.Equal(t, 0, m.Selected())
	m.SetSelected(42)
	assert.Equal(t, 4, m.Selected())
}

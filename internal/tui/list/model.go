package listview

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// defaultBufferSize is the number of extra rows rendered above and below the viewport.
const defaultBufferSize = 5

const halfViewportDivisor = 2

// RenderFunc renders one item. selected is true for the row under the cursor.
type RenderFunc[T any] func(item T, selected bool) string

// MatchFunc reports whether item matches the lower-cased filter text.
type MatchFunc[T any] func(item T, filter string) bool

// KeyMap holds the list's navigation bindings.
type KeyMap struct {
	Up       key.Binding
	Down     key.Binding
	PageUp   key.Binding
	PageDown key.Binding
	Home     key.Binding
	End      key.Binding
}

// DefaultKeyMap returns arrow-key navigation. Letters are left to the filter.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up:       key.NewBinding(key.WithKeys("up", "ctrl+p"), key.WithHelp("↑", "up")),
		Down:     key.NewBinding(key.WithKeys("down", "ctrl+n"), key.WithHelp("↓", "down")),
		PageUp:   key.NewBinding(key.WithKeys("pgup"), key.WithHelp("pgup", "page up")),
		PageDown: key.NewBinding(key.WithKeys("pgdown"), key.WithHelp("pgdn", "page down")),
		Home:     key.NewBinding(key.WithKeys("home"), key.WithHelp("home", "first")),
		End:      key.NewBinding(key.WithKeys("end"), key.WithHelp("end", "last")),
	}
}

// VirtualListModel scrolls over items, rendering only what is visible.
// The filtered view is a slice of indexes into items.
type VirtualListModel[T any] struct {
	items      []T
	view       []int
	renderFunc RenderFunc[T]
	matchFunc  MatchFunc[T]
	keys       KeyMap

	filter      string
	selected    int // index into view
	visibleFrom int
	visibleTo   int
	height      int
	width       int
	bufferSize  int
}

// NewVirtualListModel builds a list over items. match may be nil, in which
// case filtering is disabled.
func NewVirtualListModel[T any](
	items []T,
	height, width int,
	render RenderFunc[T],
	match MatchFunc[T],
) *VirtualListModel[T] {
	m := &VirtualListModel[T]{
		items:      items,
		renderFunc: render,
		matchFunc:  match,
		keys:       DefaultKeyMap(),
		height:     height,
		width:      width,
		bufferSize: defaultBufferSize,
	}
	m.rebuildView()
	return m
}

// Init implements tea.Model.
func (m *VirtualListModel[T]) Init() tea.Cmd {
	return nil
}

// Update handles navigation, filter typing and resizes.
func (m *VirtualListModel[T]) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
	}
	return m, nil
}

//nolint:exhaustive // Only navigation and filter keys are handled.
func (m *VirtualListModel[T]) handleKey(msg tea.KeyMsg) {
	switch {
	case key.Matches(msg, m.keys.Up):
		m.move(-1)
	case key.Matches(msg, m.keys.Down):
		m.move(1)
	case key.Matches(msg, m.keys.PageUp):
		m.move(-m.height)
	case key.Matches(msg, m.keys.PageDown):
		m.move(m.height)
	case key.Matches(msg, m.keys.Home):
		m.SetSelected(0)
	case key.Matches(msg, m.keys.End):
		m.SetSelected(len(m.view) - 1)
	default:
		switch msg.Type {
		case tea.KeyRunes:
			if m.matchFunc != nil {
				m.SetFilter(m.filter + string(msg.Runes))
			}
		case tea.KeyBackspace:
			if m.filter != "" {
				r := []rune(m.filter)
				m.SetFilter(string(r[:len(r)-1]))
			}
		}
	}
}

func (m *VirtualListModel[T]) move(delta int) {
	if len(m.view) == 0 {
		return
	}
	m.SetSelected(m.selected + delta)
}

// SetFilter narrows the list to matching items and moves the cursor to the top.
func (m *VirtualListModel[T]) SetFilter(filter string) {
	m.filter = filter
	m.rebuildView()
}

// Filter returns the current filter text.
func (m *VirtualListModel[T]) Filter() string {
	return m.filter
}

func (m *VirtualListModel[T]) rebuildView() {
	needle := strings.ToLower(strings.TrimSpace(m.filter))
	m.view = m.view[:0]
	for i, item := range m.items {
		if needle == "" || m.matchFunc == nil || m.matchFunc(item, needle) {
			m.view = append(m.view, i)
		}
	}
	m.selected = 0
	m.updateVisibleRange()
}

// SetSize changes the viewport dimensions.
func (m *VirtualListModel[T]) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.updateVisibleRange()
}

// updateVisibleRange keeps the cursor inside [visibleFrom, visibleTo),
// centred where possible.
func (m *VirtualListModel[T]) updateVisibleRange() {
	n := len(m.view)
	if n == 0 {
		m.visibleFrom, m.visibleTo = 0, 0
		return
	}

	half := m.height / halfViewportDivisor
	from := m.selected - half
	to := m.selected + half

	if from < 0 {
		from = 0
		to = m.height
	}
	if to > n {
		to = n
		from = max(to-m.height, 0)
	}

	m.visibleFrom, m.visibleTo = from, to
}

// View renders the visible rows plus the buffer.
func (m *VirtualListModel[T]) View() string {
	if len(m.view) == 0 {
		return ""
	}

	from := max(m.visibleFrom-m.bufferSize, 0)
	to := min(m.visibleTo+m.bufferSize, len(m.view))

	lines := make([]string, 0, to-from)
	for i := from; i < to; i++ {
		lines = append(lines, m.renderFunc(m.items[m.view[i]], i == m.selected))
	}
	return strings.Join(lines, "\n")
}

// ItemCount returns the total number of items, ignoring the filter.
func (m *VirtualListModel[T]) ItemCount() int {
	return len(m.items)
}

// VisibleCount returns the number of items passing the filter.
func (m *VirtualListModel[T]) VisibleCount() int {
	return len(m.view)
}

// Selected returns the cursor position within the filtered view.
func (m *VirtualListModel[T]) Selected() int {
	return m.selected
}

// SetSelected moves the cursor, clamped to the filtered view.
func (m *VirtualListModel[T]) SetSelected(index int) {
	switch {
	case len(m.view) == 0, index < 0:
		m.selected = 0
	case index >= len(m.view):
		m.selected = len(m.view) - 1
	default:
		m.selected = index
	}
	m.updateVisibleRange()
}

// VisibleFrom returns the first visible row (inclusive).
func (m *VirtualListModel[T]) VisibleFrom() int {
	return m.visibleFrom
}

// VisibleTo returns the last visible row (exclusive).
func (m *VirtualListModel[T]) VisibleTo() int {
	return m.visibleTo
}

// Height returns the viewport height.
func (m *VirtualListModel[T]) Height() int {
	return m.height
}

// Width returns the viewport width.
func (m *VirtualListModel[T]) Width() int {
	return m.width
}

// KeyMap returns the navigation bindings, for help rendering.
func (m *VirtualListModel[T]) KeyMap() KeyMap {
	return m.keys
}

// GetSelectedItem returns the item under the cursor, or nil when the filtered
// view is empty.
func (m *VirtualListModel[T]) GetSelectedItem() *T {
	if m.selected < 0 || m.selected >= len(m.view) {
		return nil
	}
	return &m.items[m.view[m.selected]]
}

// ContainsMatch is a MatchFunc for string items.
func ContainsMatch(item, filter string) bool {
	return strings.Contains(strings.ToLower(item), filter)
}

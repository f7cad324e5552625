package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/rshade/pokedex/internal/logging"
	"github.com/rshade/pokedex/internal/pokedex"
	listview "github.com/rshade/pokedex/internal/tui/list"
)

// DefaultLookupTimeout bounds a single detail request issued from the TUI.
const DefaultLookupTimeout = 10 * time.Second

const (
	inputCharLimit = 64
	inputWidth     = 32
	browserChrome  = 6
)

// Focus is the part of the screen receiving keys.
type Focus int

const (
	// FocusInput sends keys to the search box.
	FocusInput Focus = iota
	// FocusSuggestions moves a cursor over the suggestion panel.
	FocusSuggestions
)

// catalogLoadedMsg is sent once the catalog load finishes, successfully or not.
type catalogLoadedMsg struct {
	err error
}

// lookupResultMsg carries a finished detail fetch back to Update.
type lookupResultMsg struct {
	outcome pokedex.Outcome
}

// SearchOptions configures NewSearchModel.
type SearchOptions struct {
	LookupTimeout time.Duration
}

// SearchModel is the interactive search screen: a search box, the suggestion
// panel, the result card and an optional full catalog browser.
//
//nolint:recvcheck // Bubble Tea requires value receivers for Init/Update/View interface methods.
type SearchModel struct {
	ctx     context.Context
	session *pokedex.Session
	catalog *pokedex.Catalog
	timeout time.Duration

	input   textinput.Model
	loading *LoadingState
	help    help.Model
	keys    KeyMap

	focus       Focus
	suggestions []string
	cursor      int

	browser  *listview.VirtualListModel[string]
	browsing bool

	width  int
	height int
}

// NewSearchModel creates the search screen over an idle session and an
// unloaded catalog. Init starts the catalog load.
func NewSearchModel(
	ctx context.Context,
	session *pokedex.Session,
	catalog *pokedex.Catalog,
	opts SearchOptions,
) SearchModel {
	timeout := opts.LookupTimeout
	if timeout <= 0 {
		timeout = DefaultLookupTimeout
	}
	return SearchModel{
		ctx:     ctx,
		session: session,
		catalog: catalog,
		timeout: timeout,
		input:   newTextInput(),
		loading: NewLoadingState(),
		help:    help.New(),
		keys:    DefaultKeyMap(),
		width:   TerminalWidth(),
	}
}

func newTextInput() textinput.Model {
	ti := textinput.New()
	ti.Placeholder = "Name or number, e.g. pikachu or 25"
	ti.Prompt = "🔍 "
	ti.CharLimit = inputCharLimit
	ti.Width = inputWidth
	ti.Focus()
	return ti
}

// Init starts the cursor blink and the catalog load.
func (m SearchModel) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.loadCatalog())
}

func (m SearchModel) loadCatalog() tea.Cmd {
	catalog := m.catalog
	ctx := m.ctx
	return func() tea.Msg {
		return catalogLoadedMsg{err: catalog.Load(ctx)}
	}
}

func (m SearchModel) fetch(l pokedex.Lookup) tea.Cmd {
	session := m.session
	parent := m.ctx
	timeout := m.timeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(parent, timeout)
		defer cancel()
		return lookupResultMsg{outcome: session.Fetch(ctx, l)}
	}
}

// Update implements tea.Model.
func (m SearchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		if m.browser != nil {
			m.browser.SetSize(msg.Width, m.browserHeight())
		}
		return m, nil

	case catalogLoadedMsg:
		if msg.err != nil {
			m.logger().Debug().Err(msg.err).Msg("starting without suggestions")
		}
		m.suggestions = m.catalog.Suggestions()
		m.cursor = 0
		return m, nil

	case lookupResultMsg:
		m.session.Apply(msg.outcome)
		return m, nil

	case spinner.TickMsg:
		if m.session.State().Phase != pokedex.PhaseLoading {
			return m, nil
		}
		return m, m.loading.Update(msg)

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

//nolint:gocognit // One branch per binding.
func (m SearchModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Quit) {
		return m, tea.Quit
	}
	if m.browsing {
		return m.handleBrowserKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Reset):
		m.session.Reset()
		m.input.SetValue("")
		m.setFocus(FocusInput)
		return m, nil

	case key.Matches(msg, m.keys.Reroll):
		m.suggestions = m.catalog.Reroll()
		m.cursor = 0
		return m, nil

	case key.Matches(msg, m.keys.Browse):
		return m.openBrowser(), nil

	case key.Matches(msg, m.keys.Focus):
		if m.focus == FocusInput && len(m.suggestions) > 0 {
			m.setFocus(FocusSuggestions)
		} else {
			m.setFocus(FocusInput)
		}
		return m, nil

	case key.Matches(msg, m.keys.Submit):
		if m.focus == FocusSuggestions {
			if m.cursor < len(m.suggestions) {
				return m.submit(m.suggestions[m.cursor])
			}
			return m, nil
		}
		if m.session.State().Phase == pokedex.PhaseLoading {
			return m, nil
		}
		return m.submit(m.input.Value())
	}

	if m.focus == FocusSuggestions {
		switch {
		case key.Matches(msg, m.keys.Left):
			if m.cursor > 0 {
				m.cursor--
			}
		case key.Matches(msg, m.keys.Right):
			if m.cursor < len(m.suggestions)-1 {
				m.cursor++
			}
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.session.SetInput(m.input.Value())
	return m, cmd
}

func (m SearchModel) handleBrowserKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Reset):
		m.browsing = false
		return m, nil
	case key.Matches(msg, m.keys.Submit):
		item := m.browser.GetSelectedItem()
		if item == nil {
			return m, nil
		}
		m.browsing = false
		return m.submit(*item)
	}
	m.browser.Update(msg)
	return m, nil
}

func (m SearchModel) openBrowser() SearchModel {
	names := m.catalog.Names()
	if len(names) == 0 {
		return m
	}
	if m.browser == nil {
		m.browser = listview.NewVirtualListModel(names, m.browserHeight(), m.width, renderBrowserRow, listview.ContainsMatch)
	}
	m.browsing = true
	return m
}

func (m SearchModel) browserHeight() int {
	h := m.height - browserChrome
	if h < 1 {
		return 1
	}
	return h
}

// submit starts a lookup for raw. Blank input does nothing.
func (m SearchModel) submit(raw string) (tea.Model, tea.Cmd) {
	l, ok := m.session.Begin(raw)
	if !ok {
		return m, nil
	}
	m.loading.SetMessage("Looking up " + l.Query + "...")
	return m, tea.Batch(m.loading.Init(), m.fetch(l))
}

func (m *SearchModel) setFocus(f Focus) {
	m.focus = f
	if f == FocusInput {
		m.input.Focus()
	} else {
		m.input.Blur()
	}
}

func (m SearchModel) logger() *zerolog.Logger {
	return logging.FromContext(m.ctx)
}

// State exposes the session state for tests and callers embedding the model.
func (m SearchModel) State() pokedex.RequestState {
	return m.session.State()
}

// Focused returns the part of the screen receiving keys.
func (m SearchModel) Focused() Focus {
	return m.focus
}

// Suggestions returns the suggestions currently shown.
func (m SearchModel) Suggestions() []string {
	return m.suggestions
}

// Cursor returns the highlighted suggestion index.
func (m SearchModel) Cursor() int {
	return m.cursor
}

// Browsing reports whether the catalog browser is open.
func (m SearchModel) Browsing() bool {
	return m.browsing
}

// InputValue returns the search box text.
func (m SearchModel) InputValue() string {
	return m.input.Value()
}

// Run starts the search screen on the alternate screen and blocks until the
// user quits or ctx is cancelled.
func Run(ctx context.Context, session *pokedex.Session, catalog *pokedex.Catalog, opts SearchOptions) error {
	p := tea.NewProgram(
		NewSearchModel(ctx, session, catalog, opts),
		tea.WithAltScreen(),
		tea.WithContext(ctx),
	)
	_, err := p.Run()
	return err
}

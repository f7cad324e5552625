package tui

import (
	"os"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

// Palette shared by the search screen and the detail card.
const (
	ColorHeader  = lipgloss.Color("#FFCB05")
	ColorLabel   = lipgloss.Color("245")
	ColorValue   = lipgloss.Color("255")
	ColorMuted   = lipgloss.Color("241")
	ColorError   = lipgloss.Color("196")
	ColorSpinner = lipgloss.Color("205")
	ColorBorder  = lipgloss.Color("62")
	ColorFocus   = lipgloss.Color("#3B4CCA")
)

//nolint:gochecknoglobals // Shared styles, read-only after init.
var (
	HeaderStyle = lipgloss.NewStyle().Bold(true).Foreground(ColorHeader)
	LabelStyle  = lipgloss.NewStyle().Foreground(ColorLabel)
	ValueStyle  = lipgloss.NewStyle().Foreground(ColorValue).Bold(true)
	InfoStyle   = lipgloss.NewStyle().Foreground(ColorMuted).Italic(true)
	ErrorStyle  = lipgloss.NewStyle().Foreground(ColorError).Bold(true)
	HelpStyle   = lipgloss.NewStyle().Foreground(ColorMuted)

	BoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder).
			Padding(0, 1)

	SuggestionStyle         = lipgloss.NewStyle().Padding(0, 1).Foreground(ColorValue)
	SelectedSuggestionStyle = lipgloss.NewStyle().
				Padding(0, 1).
				Foreground(lipgloss.Color("230")).
				Background(ColorFocus).
				Bold(true)
)

// OutputMode describes what the terminal can do.
type OutputMode int

const (
	// OutputModePlain is for pipes and files: no colour, no TUI.
	OutputModePlain OutputMode = iota
	// OutputModeStyled is a terminal with colour disabled through NO_COLOR.
	OutputModeStyled
	// OutputModeInteractive is a colour terminal able to run the TUI.
	OutputModeInteractive
)

const defaultTerminalWidth = 80

// DetectOutputMode inspects stdout and NO_COLOR.
func DetectOutputMode() OutputMode {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return OutputModePlain
	}
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return OutputModeStyled
	}
	return OutputModeInteractive
}

// TerminalWidth returns the stdout width, or 80 when it cannot be read.
func TerminalWidth() int {
	w, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || w <= 0 {
		return defaultTerminalWidth
	}
	return w
}

// LoadingState couples a spinner with the message shown next to it.
type LoadingState struct {
	spinner spinner.Model
	message string
}

// NewLoadingState creates a dot spinner with a default message.
func NewLoadingState() *LoadingState {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(ColorSpinner)
	return &LoadingState{spinner: s, message: "Searching the Pokédex..."}
}

// Init starts the spinner ticking.
func (l *LoadingState) Init() tea.Cmd {
	return l.spinner.Tick
}

// Update advances the spinner on tick messages.
func (l *LoadingState) Update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	l.spinner, cmd = l.spinner.Update(msg)
	return cmd
}

// SetMessage replaces the text shown beside the spinner.
func (l *LoadingState) SetMessage(msg string) {
	l.message = msg
}

// View renders the spinner and its message on one line.
func (l *LoadingState) View() string {
	return l.spinner.View() + " " + l.message
}

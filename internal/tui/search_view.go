package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/rshade/pokedex/internal/pokedex"
	"github.com/rshade/pokedex/internal/tui/detail"
)

// sideBySideWidth is the narrowest terminal that fits the card and the
// suggestion panel next to each other.
const sideBySideWidth = 100

const suggestionPanelWidth = 28

// View implements tea.Model.
func (m SearchModel) View() string {
	if m.browsing && m.browser != nil {
		return m.renderBrowser()
	}

	header := HeaderStyle.Render("POKÉDEX")
	search := BoxStyle.Render(m.input.View())

	var body string
	if m.width >= sideBySideWidth {
		cardWidth := m.width - suggestionPanelWidth - 2
		body = lipgloss.JoinHorizontal(lipgloss.Top, m.renderResult(cardWidth), " ", m.renderSuggestions())
	} else {
		body = lipgloss.JoinVertical(lipgloss.Left, m.renderSuggestions(), m.renderResult(m.width))
	}

	return lipgloss.JoinVertical(lipgloss.Left, header, search, body, m.help.View(m.keys))
}

func (m SearchModel) renderResult(width int) string {
	state := m.session.State()
	switch state.Phase {
	case pokedex.PhaseLoading:
		return RenderLoading(m.loading)
	case pokedex.PhaseSucceeded:
		return detail.Render(state.Pokemon, width)
	case pokedex.PhaseFailed:
		return "\n " + ErrorStyle.Render(state.Message) + "\n " + InfoStyle.Render("Press esc to search another.") + "\n"
	default:
		return "\n " + InfoStyle.Render("Search by name or number, or pick a suggestion.") + "\n"
	}
}

func (m SearchModel) renderSuggestions() string {
	title := LabelStyle.Render("Try one of these")
	if len(m.suggestions) == 0 {
		return BoxStyle.Width(suggestionPanelWidth).Render(title + "\n" + InfoStyle.Render("No suggestions"))
	}

	rows := make([]string, 0, len(m.suggestions)+1)
	rows = append(rows, title)
	for i, name := range m.suggestions {
		style := SuggestionStyle
		if m.focus == FocusSuggestions && i == m.cursor {
			style = SelectedSuggestionStyle
		}
		rows = append(rows, style.Render(detail.DisplayName(name)))
	}
	return BoxStyle.Width(suggestionPanelWidth).Render(strings.Join(rows, "\n"))
}

func (m SearchModel) renderBrowser() string {
	title := HeaderStyle.Render(fmt.Sprintf("ALL POKÉMON (%d/%d)", m.browser.VisibleCount(), m.browser.ItemCount()))
	filter := LabelStyle.Render("Filter: ") + ValueStyle.Render(m.browser.Filter())
	list := m.browser.View()
	if list == "" {
		list = InfoStyle.Render("No names match the filter.")
	}
	footer := HelpStyle.Render("type to filter | ↑/↓ move | enter search | esc close")
	return lipgloss.JoinVertical(lipgloss.Left, title, filter, "", list, "", footer)
}

func renderBrowserRow(name string, selected bool) string {
	if selected {
		return SelectedSuggestionStyle.Render("› " + detail.DisplayName(name))
	}
	return SuggestionStyle.Render("  " + detail.DisplayName(name))
}

// RenderLoading renders the spinner and its message.
func RenderLoading(loading *LoadingState) string {
	if loading == nil {
		return ""
	}
	return fmt.Sprintf("\n %s\n\n", loading.View())
}

package detail

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/rshade/pokedex/internal/entities"
)

// MaxStat is the full-bar value for a base stat.
const MaxStat = 255

// NoImage is shown in place of the image reference when there is none.
const NoImage = "No image"

const (
	minCardWidth   = 32
	defaultWidth   = 60
	statLabelWidth = 16
	statValueWidth = 4
	cardChrome     = 4 // border plus padding
)

// Stat thresholds, checked from the top.
const (
	statHigh   = 120
	statGood   = 80
	statMedium = 50
)

const (
	statColorHigh   = "#EF5350"
	statColorGood   = "#FFCA28"
	statColorMedium = "#42A5F5"
	statColorLow    = "#66BB6A"
	badgeFallback   = "#A8A77A"
)

//nolint:gochecknoglobals // Lookup table.
var typeColors = map[string]string{
	"normal":   "#A8A77A",
	"fire":     "#EE8130",
	"water":    "#6390F0",
	"electric": "#F7D02C",
	"grass":    "#7AC74C",
	"ice":      "#96D9D6",
	"fighting": "#C22E28",
	"poison":   "#A33EA1",
	"ground":   "#E2BF65",
	"flying":   "#A98FF3",
	"psychic":  "#F95587",
	"bug":      "#A6B91A",
	"rock":     "#B6A136",
	"ghost":    "#735797",
	"dragon":   "#6F35FC",
	"dark":     "#705746",
	"steel":    "#B7B7CE",
	"fairy":    "#D685AD",
}

//nolint:gochecknoglobals // Shared styles.
var (
	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62")).
			Padding(0, 1)
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FFCB05"))
	idStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	labelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	valueStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Bold(true)
	mutedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true)
	badgeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFFFFF")).Bold(true).Padding(0, 1)
)

// DisplayName title-cases an API slug and shows hyphens as spaces:
// "mr-mime" becomes "Mr Mime".
func DisplayName(slug string) string {
	return cases.Title(language.English).String(strings.ReplaceAll(slug, "-", " "))
}

// FormatID zero-pads to three digits: 25 becomes "#025".
func FormatID(id int) string {
	return fmt.Sprintf("#%03d", id)
}

// TypeColor returns the badge colour for a type name.
func TypeColor(typeName string) lipgloss.Color {
	if c, ok := typeColors[typeName]; ok {
		return lipgloss.Color(c)
	}
	return lipgloss.Color(badgeFallback)
}

// StatColor picks the bar colour for a base stat value.
func StatColor(value int) string {
	switch {
	case value >= statHigh:
		return statColorHigh
	case value >= statGood:
		return statColorGood
	case value >= statMedium:
		return statColorMedium
	default:
		return statColorLow
	}
}

// StatRatio scales a value into [0,1] against MaxStat.
func StatRatio(value int) float64 {
	switch {
	case value <= 0:
		return 0
	case value >= MaxStat:
		return 1
	default:
		return float64(value) / MaxStat
	}
}

// Render draws the card for p within width columns. A nil Pokémon renders
// as an empty string.
func Render(p *entities.Pokemon, width int) string {
	if p == nil {
		return ""
	}
	if width <= 0 {
		width = defaultWidth
	}
	if width < minCardWidth {
		width = minCardWidth
	}
	inner := width - cardChrome

	sections := []string{
		titleStyle.Render(DisplayName(p.Name)) + " " + idStyle.Render(FormatID(p.ID)),
		renderImage(p),
		"",
		labelStyle.Render("Height  ") + valueStyle.Render(fmt.Sprintf("%.1f m", p.HeightMeters())) +
			labelStyle.Render("   Weight  ") + valueStyle.Render(fmt.Sprintf("%.1f kg", p.WeightKilograms())),
		labelStyle.Render("Types   ") + renderBadges(p.Types),
		labelStyle.Render("Abilities ") + valueStyle.Render(joinDisplay(p.Abilities)),
		"",
		renderStats(p.Stats, inner),
	}

	return cardStyle.Width(width - 2).Render(lipgloss.JoinVertical(lipgloss.Left, sections...))
}

func renderImage(p *entities.Pokemon) string {
	if !p.HasImage() {
		return mutedStyle.Render(NoImage)
	}
	return labelStyle.Render("Image   ") + *p.Image
}

func renderBadges(types []string) string {
	if len(types) == 0 {
		return mutedStyle.Render("none")
	}
	badges := make([]string, 0, len(types))
	for _, t := range types {
		badges = append(badges, badgeStyle.Background(TypeColor(t)).Render(DisplayName(t)))
	}
	return strings.Join(badges, " ")
}

func joinDisplay(slugs []string) string {
	if len(slugs) == 0 {
		return "none"
	}
	names := make([]string, 0, len(slugs))
	for _, s := range slugs {
		names = append(names, DisplayName(s))
	}
	return strings.Join(names, ", ")
}

func renderStats(stats []entities.Stat, inner int) string {
	if len(stats) == 0 {
		return mutedStyle.Render("No stats")
	}
	barWidth := inner - statLabelWidth - statValueWidth - 2
	if barWidth < 1 {
		barWidth = 1
	}

	var sb strings.Builder
	for i, s := range stats {
		if i > 0 {
			sb.WriteString("\n")
		}
		bar := progress.New(
			progress.WithSolidFill(StatColor(s.Value)),
			progress.WithWidth(barWidth),
			progress.WithoutPercentage(),
		)
		sb.WriteString(labelStyle.Width(statLabelWidth).Render(DisplayName(s.Name)))
		sb.WriteString(valueStyle.Width(statValueWidth).Align(lipgloss.Right).Render(strconv.Itoa(s.Value)))
		sb.WriteString("  ")
		sb.WriteString(bar.ViewAs(StatRatio(s.Value)))
	}
	return sb.String()
}

// Plain renders p without colour or borders, for pipes and logs.
func Plain(p *entities.Pokemon) string {
	if p == nil {
		return ""
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s %s\n", DisplayName(p.Name), FormatID(p.ID))
	if p.HasImage() {
		fmt.Fprintf(&sb, "Image:     %s\n", *p.Image)
	} else {
		fmt.Fprintf(&sb, "Image:     %s\n", NoImage)
	}
	fmt.Fprintf(&sb, "Height:    %.1f m\n", p.HeightMeters())
	fmt.Fprintf(&sb, "Weight:    %.1f kg\n", p.WeightKilograms())
	fmt.Fprintf(&sb, "Types:     %s\n", joinDisplay(p.Types))
	fmt.Fprintf(&sb, "Abilities: %s\n", joinDisplay(p.Abilities))
	for _, s := range p.Stats {
		fmt.Fprintf(&sb, "  %-16s %3d\n", DisplayName(s.Name), s.Value)
	}
	fmt.Fprintf(&sb, "  %-16s %3d\n", "Total", p.StatTotal())
	return sb.String()
}

// Package render writes lookup, suggestion and catalog results in the
// formats the CLI offers: aligned tables, JSON, NDJSON, YAML and cards.
package render

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"gopkg.in/yaml.v3"

	"github.com/rshade/pokedex/internal/cli/pagination"
	"github.com/rshade/pokedex/internal/entities"
	"github.com/rshade/pokedex/internal/tui/detail"
)

// Format is an output format name.
type Format string

// Supported formats. Card is only meaningful for Pokémon details.
const (
	FormatTable  Format = "table"
	FormatJSON   Format = "json"
	FormatNDJSON Format = "ndjson"
	FormatYAML   Format = "yaml"
	FormatCard   Format = "card"
)

// ErrUnsupportedFormat is returned for unknown or inapplicable formats.
var ErrUnsupportedFormat = errors.New("unsupported output format")

const tabwriterPadding = 2

// ParseFormat validates s against allowed.
func ParseFormat(s string, allowed ...Format) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	for _, a := range allowed {
		if f == a {
			return f, nil
		}
	}
	names := make([]string, len(allowed))
	for i, a := range allowed {
		names[i] = string(a)
	}
	return "", fmt.Errorf("%w: %q (use one of %s)", ErrUnsupportedFormat, s, strings.Join(names, ", "))
}

// Pokemon writes detail records in format f. Styled selects the bordered,
// coloured card for FormatCard; otherwise a plain card is written.
func Pokemon(w io.Writer, f Format, list []*entities.Pokemon, styled bool, width int) error {
	if list == nil {
		list = []*entities.Pokemon{}
	}
	switch f {
	case FormatTable:
		return pokemonTable(w, list)
	case FormatJSON:
		return writeJSON(w, list)
	case FormatNDJSON:
		return writeNDJSON(w, list)
	case FormatYAML:
		return writeYAML(w, list)
	case FormatCard:
		for i, p := range list {
			if i > 0 {
				if _, err := fmt.Fprintln(w); err != nil {
					return err
				}
			}
			out := detail.Plain(p)
			if styled {
				out = detail.Render(p, width) + "\n"
			}
			if _, err := io.WriteString(w, out); err != nil {
				return fmt.Errorf("writing card: %w", err)
			}
		}
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, f)
	}
}

func pokemonTable(w io.Writer, list []*entities.Pokemon) error {
	tw := tabwriter.NewWriter(w, 0, 0, tabwriterPadding, ' ', 0)
	if _, err := fmt.Fprintf(tw, "ID\tNAME\tTYPES\tHEIGHT\tWEIGHT\tTOTAL\tIMAGE\n"); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for _, p := range list {
		image := detail.NoImage
		if p.HasImage() {
			image = *p.Image
		}
		if _, err := fmt.Fprintf(tw, "%s\t%s\t%s\t%.1f m\t%.1f kg\t%d\t%s\n",
			detail.FormatID(p.ID), p.Name, strings.Join(p.Types, "/"),
			p.HeightMeters(), p.WeightKilograms(), p.StatTotal(), image,
		); err != nil {
			return fmt.Errorf("writing row: %w", err)
		}
	}
	return tw.Flush()
}

// Names writes a flat list of names, one per line for tables.
func Names(w io.Writer, f Format, names []string) error {
	if names == nil {
		names = []string{}
	}
	switch f {
	case FormatTable:
		for _, n := range names {
			if _, err := fmt.Fprintln(w, n); err != nil {
				return err
			}
		}
		return nil
	case FormatJSON:
		return writeJSON(w, names)
	case FormatNDJSON:
		return writeNDJSON(w, names)
	case FormatYAML:
		return writeYAML(w, names)
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, f)
	}
}

// Page is one page of the catalog with its metadata.
type Page struct {
	Items      []pagination.Entry `json:"items"      yaml:"items"`
	Pagination pagination.Meta    `json:"pagination" yaml:"pagination"`
}

// CatalogPage writes a page of catalog entries.
func CatalogPage(w io.Writer, f Format, page Page) error {
	if page.Items == nil {
		page.Items = []pagination.Entry{}
	}
	switch f {
	case FormatTable:
		return catalogTable(w, page)
	case FormatJSON:
		return writeJSON(w, page)
	case FormatNDJSON:
		return writeNDJSON(w, page.Items)
	case FormatYAML:
		return writeYAML(w, page)
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, f)
	}
}

func catalogTable(w io.Writer, page Page) error {
	tw := tabwriter.NewWriter(w, 0, 0, tabwriterPadding, ' ', 0)
	if _, err := fmt.Fprintf(tw, "#\tNAME\n"); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for _, e := range page.Items {
		if _, err := fmt.Fprintf(tw, "%d\t%s\n", e.Index, e.Name); err != nil {
			return fmt.Errorf("writing row: %w", err)
		}
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	m := page.Pagination
	p := message.NewPrinter(language.English)
	_, err := p.Fprintf(w, "\nPage %d of %d (%d names)\n", m.CurrentPage, m.TotalPages, m.TotalItems)
	return err
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encoding JSON: %w", err)
	}
	return nil
}

func writeNDJSON[T any](w io.Writer, items []T) error {
	for _, item := range items {
		data, err := json.Marshal(item)
		if err != nil {
			return fmt.Errorf("marshaling line: %w", err)
		}
		if _, err = fmt.Fprintf(w, "%s\n", data); err != nil {
			return fmt.Errorf("writing NDJSON line: %w", err)
		}
	}
	return nil
}

func writeYAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encoding YAML: %w", err)
	}
	return enc.Close()
}

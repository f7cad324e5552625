package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/rshade/pokedex/internal/entities"
	"github.com/rshade/pokedex/internal/pokedex"
	"github.com/rshade/pokedex/internal/render"
	"github.com/rshade/pokedex/internal/tui"
)

// maxConcurrentLookups bounds parallel detail requests.
const maxConcurrentLookups = 4

// ErrLookupFailed is returned when at least one query did not resolve.
var ErrLookupFailed = errors.New("lookup failed")

func newLookupCmd(ver string) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "lookup <name-or-id>...",
		Short: "Print details for one or more Pokémon",
		Long: `Fetches each name or numeric id and prints the result in argument order.
Queries are trimmed and lower-cased. Queries that fail are reported on stderr
and the command exits non-zero once the others have been printed.`,
		Example: `  pokedex lookup pikachu
  pokedex lookup 1 4 7 --output table
  pokedex lookup eevee --output yaml`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := render.ParseFormat(output,
				render.FormatCard, render.FormatTable, render.FormatJSON, render.FormatNDJSON, render.FormatYAML)
			if err != nil {
				return err
			}
			return runLookup(cmd, ver, args, format)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", string(render.FormatCard),
		"output format: card, table, json, ndjson, yaml")
	return cmd
}

func runLookup(cmd *cobra.Command, ver string, queries []string, format render.Format) error {
	d, err := buildDeps(cmd, ver)
	if err != nil {
		return err
	}
	defer d.Close()

	ctx := cmd.Context()
	states := make([]pokedex.RequestState, len(queries))

	var g errgroup.Group
	g.SetLimit(maxConcurrentLookups)
	for i, raw := range queries {
		g.Go(func() error {
			// One session per query: a shared session would drop all but the latest.
			session := pokedex.NewSession(d.client, d.logger)
			st, ok := session.Search(ctx, raw)
			if !ok {
				st = pokedex.RequestState{Phase: pokedex.PhaseFailed, Message: "Enter a name or number."}
			}
			states[i] = st
			return nil
		})
	}
	_ = g.Wait()

	found := make([]*entities.Pokemon, 0, len(states))
	failed := 0
	for _, st := range states {
		if st.Phase == pokedex.PhaseSucceeded {
			found = append(found, st.Pokemon)
			continue
		}
		failed++
		cmd.PrintErrln(st.Message)
	}

	styled := format == render.FormatCard && tui.DetectOutputMode() == tui.OutputModeInteractive
	if err = render.Pokemon(cmd.OutOrStdout(), format, found, styled, tui.TerminalWidth()); err != nil {
		return err
	}

	if failed > 0 {
		return fmt.Errorf("%w: %d of %d queries", ErrLookupFailed, failed, len(queries))
	}
	return nil
}

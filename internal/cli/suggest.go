package cli

import (
	"math/rand/v2"

	"github.com/spf13/cobra"

	"github.com/rshade/pokedex/internal/pokedex"
	"github.com/rshade/pokedex/internal/render"
)

func newSuggestCmd(ver string) *cobra.Command {
	var (
		count  int
		seed   uint64
		output string
	)

	cmd := &cobra.Command{
		Use:   "suggest",
		Short: "Print random names from the index",
		Example: `  pokedex suggest
  pokedex suggest -n 3 --seed 7 --output json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			format, err := render.ParseFormat(output,
				render.FormatTable, render.FormatJSON, render.FormatNDJSON, render.FormatYAML)
			if err != nil {
				return err
			}

			d, err := buildDeps(cmd, ver)
			if err != nil {
				return err
			}
			defer d.Close()

			if !cmd.Flags().Changed("count") {
				count = d.cfg.Suggestions.Count
			}
			var rng *rand.Rand
			if seed != 0 {
				rng = pokedex.NewRand(seed)
			}

			catalog := pokedex.NewCatalog(d.client, pokedex.CatalogOptions{
				Limit:           d.cfg.API.CatalogLimit,
				SuggestionCount: count,
				Rand:            rng,
				Logger:          d.logger,
			})
			if err = catalog.Load(cmd.Context()); err != nil {
				return err
			}
			return render.Names(cmd.OutOrStdout(), format, catalog.Suggestions())
		},
	}

	cmd.Flags().IntVarP(&count, "count", "n", pokedex.DefaultSuggestionCount, "number of names")
	cmd.Flags().Uint64Var(&seed, "seed", 0, "random seed for reproducible output (0 = random)")
	cmd.Flags().StringVarP(&output, "output", "o", string(render.FormatTable), "output format: table, json, ndjson, yaml")
	return cmd
}

package cli

import (
	"github.com/spf13/cobra"

	"github.com/rshade/pokedex/internal/cli/pagination"
	"github.com/rshade/pokedex/internal/pokedex"
	"github.com/rshade/pokedex/internal/render"
)

func newListCmd(ver string) *cobra.Command {
	var (
		params = pagination.NewParams()
		sortBy string
		output string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Page through the name index",
		Long: `Lists names from the index with their position in API order.
Use --limit/--offset or --page/--page-size, not both.`,
		Example: `  pokedex list --limit 20
  pokedex list --page 3 --page-size 25 --sort name:desc
  pokedex list --limit 0 --output json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := params.Validate(); err != nil {
				return err
			}
			field, order, err := pagination.ParseSort(sortBy, pagination.SortByIndex)
			if err != nil {
				return err
			}
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

			catalog := pokedex.NewCatalog(d.client, pokedex.CatalogOptions{
				Limit:  d.cfg.API.CatalogLimit,
				Logger: d.logger,
			})
			if err = catalog.Load(cmd.Context()); err != nil {
				return err
			}

			entries, err := pagination.SortEntries(pagination.Entries(catalog.Names()), field, order)
			if err != nil {
				return err
			}
			return render.CatalogPage(cmd.OutOrStdout(), format, render.Page{
				Items:      pagination.ApplyToSlice(params, entries),
				Pagination: pagination.NewMeta(params, len(entries)),
			})
		},
	}

	cmd.Flags().IntVar(&params.Limit, "limit", pagination.DefaultLimit, "maximum names to print (0 = all)")
	cmd.Flags().IntVar(&params.Offset, "offset", 0, "names to skip")
	cmd.Flags().IntVar(&params.Page, "page", 0, "1-based page number")
	cmd.Flags().IntVar(&params.PageSize, "page-size", 0, "names per page")
	cmd.Flags().StringVar(&sortBy, "sort", "", "sort as field[:asc|desc], field is index or name")
	cmd.Flags().StringVarP(&output, "output", "o", string(render.FormatTable), "output format: table, json, ndjson, yaml")
	return cmd
}

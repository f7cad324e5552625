package cli

import (
	"errors"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/rshade/pokedex/internal/cache"
	"github.com/rshade/pokedex/internal/config"
)

func newCacheStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show response cache usage",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, err := openCache(cmd, config.GetGlobalConfig())
			if err != nil {
				return err
			}
			defer store.Close()

			st, err := store.Stats(cmd.Context())
			if errors.Is(err, cache.ErrCacheDisabled) {
				cmd.Println("Cache is disabled")
				return nil
			}
			if err != nil {
				return fmt.Errorf("reading cache stats: %w", err)
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintf(tw, "Backend:\t%s\n", st.Backend)
			fmt.Fprintf(tw, "Location:\t%s\n", st.Location)
			fmt.Fprintf(tw, "Entries:\t%d\n", st.Entries)
			fmt.Fprintf(tw, "Size:\t%d bytes\n", st.SizeBytes)
			fmt.Fprintf(tw, "TTL:\t%s\n", cache.FormatDuration(st.TTL))
			return tw.Flush()
		},
	}
}

func newCacheClearCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove every cached response",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, err := openCache(cmd, config.GetGlobalConfig())
			if err != nil {
				return err
			}
			defer store.Close()

			err = store.Clear(cmd.Context())
			if errors.Is(err, cache.ErrCacheDisabled) {
				cmd.Println("Cache is disabled")
				return nil
			}
			if err != nil {
				return fmt.Errorf("clearing cache: %w", err)
			}
			cmd.Println("Cache cleared")
			return nil
		},
	}
}

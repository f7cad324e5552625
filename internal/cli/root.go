// Package cli builds the pokedex command tree.
package cli

import (
	"fmt"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/rshade/pokedex/internal/config"
	"github.com/rshade/pokedex/internal/logging"
)

// logger is the package-level logger for CLI operations.
var logger = zerolog.Nop() //nolint:gochecknoglobals // Set once per command by setupLogging.

// NewRootCmd creates the root command. Run without a subcommand it opens the
// interactive search screen.
func NewRootCmd(ver string) *cobra.Command {
	var logResult *logging.LogPathResult

	cmd := &cobra.Command{
		Use:     "pokedex",
		Short:   "Search PokeAPI from the terminal",
		Long:    "pokedex: look up Pokémon by name or number, with random suggestions from the full index.",
		Version: ver,
		Example: rootCmdExample,
		// Usage on a failed lookup is noise; errors are still printed.
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cacheTTL, _ := cmd.Flags().GetInt("cache-ttl")
			if cacheTTL < 0 {
				return fmt.Errorf("cache-ttl must be >= 0, got %d", cacheTTL)
			}

			if err := applyConfigOverlay(cmd); err != nil {
				return err
			}

			result := setupLogging(cmd)
			logResult = &result
			return nil
		},
		PersistentPostRunE: func(_ *cobra.Command, _ []string) error {
			return cleanupLogging(logResult)
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runSearch(cmd, ver, logResult)
		},
	}

	cmd.PersistentFlags().Bool("debug", false, "enable debug logging to stderr")
	cmd.PersistentFlags().String("config", "", "YAML file whose sections override the config file")
	cmd.PersistentFlags().
		Int("cache-ttl", 0, "cache TTL in seconds (0 = use config default, overrides config file and env var)")
	cmd.PersistentFlags().Bool("no-cache", false, "bypass the response cache")

	cmd.AddCommand(
		newLookupCmd(ver),
		newSuggestCmd(ver),
		newListCmd(ver),
		newConfigCmd(),
		newCacheCmd(),
	)

	return cmd
}

const rootCmdExample = `  # Open the interactive search screen
  pokedex

  # Look up a few Pokémon and print cards
  pokedex lookup pikachu 25 mr-mime

  # Same, as JSON
  pokedex lookup bulbasaur --output json

  # Eight random names from the index, reproducibly
  pokedex suggest --seed 42

  # Page through the index sorted by name
  pokedex list --page 2 --page-size 50 --sort name

  # Write the default configuration
  pokedex config init`

// applyConfigOverlay merges --config onto a copy of the global config.
func applyConfigOverlay(cmd *cobra.Command) error {
	path, _ := cmd.Flags().GetString("config")
	if path == "" {
		return nil
	}

	merged := *config.GetGlobalConfig()
	if err := config.ShallowMergeYAML(&merged, path); err != nil {
		return fmt.Errorf("loading --config: %w", err)
	}
	if err := merged.Validate(); err != nil {
		return fmt.Errorf("loading --config: %w", err)
	}
	config.SetGlobalConfig(&merged)
	return nil
}

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "config", Short: "Configuration management commands"}
	cmd.AddCommand(newConfigInitCmd(), newConfigShowCmd(), newConfigPathCmd(), newConfigValidateCmd())
	return cmd
}

func newCacheCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "cache", Short: "Response cache commands"}
	cmd.AddCommand(newCacheStatsCmd(), newCacheClearCmd())
	return cmd
}

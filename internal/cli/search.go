package cli

import (
	"errors"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/rshade/pokedex/internal/logging"
	"github.com/rshade/pokedex/internal/pokedex"
	"github.com/rshade/pokedex/internal/tui"
)

// ErrNoTerminal is returned when the search screen is started without a TTY.
var ErrNoTerminal = errors.New("the search screen needs a terminal; use `pokedex lookup` in scripts")

// runSearch opens the interactive search screen.
func runSearch(cmd *cobra.Command, ver string, logResult *logging.LogPathResult) error {
	if tui.DetectOutputMode() == tui.OutputModePlain {
		return ErrNoTerminal
	}

	d, err := buildDeps(cmd, ver)
	if err != nil {
		return err
	}
	defer d.Close()

	// Anything but a file would draw over the screen.
	uiLogger := d.logger
	if logResult == nil || !logResult.UsingFile {
		uiLogger = zerolog.Nop()
	}
	ctx := uiLogger.WithContext(cmd.Context())

	session := pokedex.NewSession(d.client, uiLogger)
	catalog := pokedex.NewCatalog(d.client, pokedex.CatalogOptions{
		Limit:           d.cfg.API.CatalogLimit,
		SuggestionCount: d.cfg.Suggestions.Count,
		Logger:          uiLogger,
	})

	uiLogger.Info().Ctx(ctx).Str(logging.FieldSessionID, session.ID()).Msg("search session started")
	return tui.Run(ctx, session, catalog, tui.SearchOptions{
		LookupTimeout: time.Duration(d.cfg.API.TimeoutSeconds) * time.Second,
	})
}

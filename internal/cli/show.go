package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/rshade/pokedeck/internal/config"
	"github.com/rshade/pokedeck/internal/engine"
	"github.com/rshade/pokedeck/internal/tui"
)

// newShowCmd creates the show command, which loads one batch and prints it.
func newShowCmd() *cobra.Command {
	var (
		category string
		output   string
	)

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print one batch of Pokémon and exit",
		Long: `Loads one batch the same way the interactive deck does and prints it.

Without --type the batch is a set of distinct random Pokémon. With --type it
is the first members of that type, in PokéAPI order.`,
		Example: `  # Print a random batch
  pokedeck show

  # Print the first water types as JSON
  pokedeck show --type water --output json

  # One JSON object per line
  pokedeck show --output ndjson`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			format := engine.OutputFormat(config.GetOutputFormat(output))
			if !engine.IsValidOutputFormat(format) {
				return fmt.Errorf("unsupported output format: %s", format)
			}

			eng, err := newEngine()
			if err != nil {
				return err
			}

			mode := tui.DetectOutputMode(false, false, false)
			return renderShow(cmd.Context(), cmd.OutOrStdout(), eng, category, format, mode)
		},
	}

	cmd.Flags().StringVarP(&category, "type", "t", "", "only show Pokémon of this type")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output format: table, json or ndjson (default from config)")

	return cmd
}

// renderShow loads the batch for category and writes it. Table output on a
// terminal is drawn as cards.
func renderShow(
	ctx context.Context,
	w io.Writer,
	eng *engine.Engine,
	category string,
	format engine.OutputFormat,
	mode tui.OutputMode,
) error {
	fetchMode := engine.ModeFor(category)
	logger.Debug().Ctx(ctx).Str("mode", fetchMode.String()).Str("format", string(format)).Msg("loading batch")

	creatures, err := eng.Load(ctx, fetchMode)
	if err != nil {
		logger.Error().Ctx(ctx).Err(err).Str("mode", fetchMode.String()).Msg("batch failed")
		return err
	}

	report := engine.NewBatchReport(fetchMode, creatures)
	if format == engine.OutputTable && mode != tui.OutputModePlain {
		_, err = fmt.Fprintln(w, tui.RenderBatch(report, tui.TerminalWidth(w)))
		return err
	}
	return engine.RenderBatch(w, format, report)
}

package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rshade/pokedeck/internal/config"
	"github.com/rshade/pokedeck/internal/engine"
)

func newTypesCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "types",
		Short: "List the types you can filter by",
		Example: `  # List types
  pokedeck types

  # As JSON
  pokedeck types --output json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			format := engine.OutputFormat(config.GetOutputFormat(output))
			if !engine.IsValidOutputFormat(format) {
				return fmt.Errorf("unsupported output format: %s", format)
			}

			eng, err := newEngine()
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			categories, err := eng.LoadCategories(ctx)
			if err != nil {
				return fmt.Errorf("loading types: %w", err)
			}
			logger.Debug().Ctx(ctx).Int("count", len(categories)).Msg("types loaded")

			return engine.RenderCategories(cmd.OutOrStdout(), format, categories)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output format: table, json or ndjson (default from config)")

	return cmd
}

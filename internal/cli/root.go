package cli

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/rshade/pokedeck/internal/config"
	"github.com/rshade/pokedeck/internal/engine"
	"github.com/rshade/pokedeck/internal/logging"
	"github.com/rshade/pokedeck/internal/pokeapi"
	"github.com/rshade/pokedeck/internal/tui"
)

// logger is the package-level logger for CLI operations.
var logger zerolog.Logger //nolint:gochecknoglobals // Required for zerolog context integration

// NewRootCmd creates the root Cobra command for the pokedeck CLI.
// It wires up config loading, logging and tracing, and the subcommands
// (show, types, config). Run without a subcommand it opens the interactive
// deck, or prints one batch when stdout is not a terminal.
func NewRootCmd(ver string) *cobra.Command {
	var (
		logResult  *logging.LogPathResult
		configPath string
		plain      bool
	)

	cmd := &cobra.Command{
		Use:          "pokedeck",
		Short:        "Browse random Pokémon in the terminal",
		Long:         "pokedeck: fetch a handful of Pokémon from PokéAPI and browse them, optionally filtered by type",
		Version:      ver,
		Example:      rootCmdExample,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.NewWithOverlay(configPath)
			if err != nil {
				return fmt.Errorf("loading configuration: %w", err)
			}
			config.SetGlobalConfig(cfg)

			result := setupLogging(cmd)
			logResult = &result
			return nil
		},
		PersistentPostRunE: func(_ *cobra.Command, _ []string) error {
			return cleanupLogging(logResult)
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runDeck(cmd, plain)
		},
	}

	cmd.PersistentFlags().Bool("debug", false, "enable debug logging")
	cmd.PersistentFlags().StringVar(&configPath, "config", "", "extra config file merged over ~/.pokedeck/config.yaml")
	cmd.Flags().BoolVar(&plain, "plain", false, "print one batch instead of opening the interactive view")
	cmd.AddCommand(newShowCmd(), newTypesCmd(), newConfigCmd())

	return cmd
}

const rootCmdExample = `  # Browse random Pokémon interactively (press t to filter by type)
  pokedeck

  # Print one random batch as a table
  pokedeck show

  # Print the first fire types as JSON
  pokedeck show --type fire --output json

  # List the types you can filter by
  pokedeck types

  # Use smaller batches
  pokedeck config set deck.batch_size 3`

// runDeck opens the interactive deck, or prints a random batch when the
// output cannot host it.
func runDeck(cmd *cobra.Command, plain bool) error {
	ctx := cmd.Context()

	eng, err := newEngine()
	if err != nil {
		return err
	}

	mode := tui.DetectOutputMode(false, false, plain)
	if mode != tui.OutputModeInteractive {
		logger.Debug().Ctx(ctx).Msg("stdout is not interactive, printing one batch")
		format := engine.OutputFormat(config.GetOutputFormat(""))
		return renderShow(ctx, cmd.OutOrStdout(), eng, "", format, mode)
	}

	p := tea.NewProgram(tui.NewDeckModel(ctx, eng), tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err = p.Run(); err != nil {
		return fmt.Errorf("failed to run interactive TUI: %w", err)
	}
	return nil
}

// newEngine builds an engine from the global configuration.
func newEngine() (*engine.Engine, error) {
	cfg := config.GetGlobalConfig()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	client := pokeapi.NewClient(cfg.API.BaseURL, cfg.ClientOptions()...)
	eng, err := engine.New(client, cfg.EngineOptions())
	if err != nil {
		return nil, fmt.Errorf("creating engine: %w", err)
	}
	return eng, nil
}

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "config", Short: "Configuration management commands"}
	cmd.AddCommand(
		NewConfigInitCmd(), NewConfigSetCmd(), NewConfigGetCmd(),
		NewConfigListCmd(), NewConfigValidateCmd(),
	)
	return cmd
}

package cmd

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/arcanaland/korkdex/internal/config"
	"github.com/arcanaland/korkdex/internal/logging"
)

var (
	configPath string
	dataDir    string
	logLevel   string
	logFormat  string
	verbose    bool

	// cfg is loaded before any subcommand runs.
	cfg *config.Config
)

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "korkdex",
	Short: "Plan the tray layout of a trading card collection",
	Long: `Korkdex reconciles a card collection export against a species catalog and a
card catalog. It works out which tray and slot every species occupies when
the collection is filed in national number order, and how complete each
generation is.

The pipeline has three stages, each with its own command:

  korkdex species fetch   collect species and regional variants
  korkdex cards resolve   resolve owned cards, a batch at a time
  korkdex layout build    pack species and cards into trays

'korkdex run' executes all three.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
}

func init() {
	RootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default $XDG_CONFIG_HOME/korkdex/config.toml)")
	RootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", "", "directory holding the cached datasets")
	RootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level: trace, debug, info, warn, error")
	RootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "auto", "log format: auto, console, json")
	RootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "shorthand for --log-level debug")

	RootCmd.AddCommand(speciesCmd)
	RootCmd.AddCommand(cardsCmd)
	RootCmd.AddCommand(layoutCmd)
	RootCmd.AddCommand(runCmd)
	RootCmd.AddCommand(statsCmd)
	RootCmd.AddCommand(validateCmd)
	RootCmd.AddCommand(trayCmd)
	RootCmd.AddCommand(showCmd)
	RootCmd.AddCommand(configCmd)
}

func setup(cmd *cobra.Command, args []string) error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("error loading .env: %w", err)
	}

	level := logLevel
	if verbose {
		level = "debug"
	}
	logger := logging.New(logging.Config{Level: level, Format: logFormat})
	logging.SetDefault(logger)
	cmd.SetContext(logging.WithLogger(cmd.Context(), &logger))

	var err error
	if configPath != "" {
		cfg, err = config.LoadConfigFrom(configPath)
	} else {
		cfg, err = config.LoadConfig()
	}
	if err != nil {
		return err
	}
	if dataDir != "" {
		cfg.DataDir = dataDir
	}
	logger.Debug().Str("data_dir", cfg.ResolvedDataDir()).Str("backend", cfg.Backend).Msg("configuration loaded")
	return nil
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return RootCmd.Execute()
}

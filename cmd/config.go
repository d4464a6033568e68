package cmd

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"

	"github.com/arcanaland/korkdex/internal/config"
)

// configCmd represents the config command group
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect and initialise the configuration",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the default configuration",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		force, _ := cmd.Flags().GetBool("force")
		path := currentConfigPath()

		if _, err := os.Stat(path); err == nil && !force {
			// Loading the config on startup already wrote it when missing.
			fmt.Printf("Config file exists at %s (use --force to overwrite).\n", path)
			return nil
		}
		if err := config.Default().Save(path); err != nil {
			return err
		}
		fmt.Printf("Wrote default config to %s\n", path)
		return nil
	},
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the config, data and cache locations",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("config:     %s\n", currentConfigPath())
		fmt.Printf("data:       %s\n", cfg.ResolvedDataDir())
		fmt.Printf("cache:      %s\n", config.GetCacheDir())
		fmt.Printf("collection: %s\n", cfg.CollectionPath)
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		shown := *cfg
		if shown.CardAPI.APIKey != "" {
			shown.CardAPI.APIKey = "********"
		}
		return toml.NewEncoder(os.Stdout).Encode(shown)
	},
}

func init() {
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configPathCmd)
	configCmd.AddCommand(configShowCmd)

	configInitCmd.Flags().Bool("force", false, "overwrite an existing config file")
}

func currentConfigPath() string {
	if configPath != "" {
		return configPath
	}
	return config.GetConfigFilePath()
}

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/socratesone/knowledge-navigator/internal/config"
)

var (
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "knav",
	Short: "Browse curated markdown knowledge bases in the browser",
	Long: `knav turns a directory of markdown study notes plus a navigation
manifest into a browsable site: articles are cleaned of authoring
artifacts, organized into a category tree, and served with search,
per-reader preferences and live reload.`,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", config.DefaultConfigFile, "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

// loadConfig loads and validates the config, providing a user-friendly error.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w\nRun `knav init` to create a config file", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

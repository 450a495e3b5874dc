// Package cli implements the catalog command line.
package cli

import (
	"os"

	"catalog/internal/config"
	"catalog/internal/logger"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:           "catalog",
	Short:         "Product catalog service",
	Long:          "Catalog serves products, categories and group categories over HTTP and keeps them consistent on delete.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to a config file (yaml, json or toml)")
}

// Execute runs the CLI
func Execute() error {
	return rootCmd.Execute()
}

// setup loads the configuration and builds the root logger.
func setup() (*config.Config, zerolog.Logger, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, zerolog.Nop(), err
	}
	return cfg, logger.New(cfg.LogLevel, cfg.LogFormat, os.Stdout), nil
}

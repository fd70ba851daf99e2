// Package app implements the main application commands.
package app

import (
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/khalil0525/sample-app-aoai-chatGPT/internal/config"
	"github.com/khalil0525/sample-app-aoai-chatGPT/internal/logger"
)

var (
	configPath string // directory holding main.toml
	cfg        config.Config

	rootCmd = &cobra.Command{
		Use:   "aoai-settings",
		Short: "aoai-settings serves the advanced settings of the chat client",
		Long: `aoai-settings keeps the advanced model and search settings of the
chat client (model, temperature, top P, search strictness, top K and the
in-domain restriction), merges them with the server defaults and persists
every change.`,
		Args:          cobra.OnlyValidArgs,
		SilenceUsage:  true,
		SilenceErrors: false,
	}
)

func init() { //nolint: gochecknoinits
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "./etc/", "directory holding main.toml")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute() //nolint:wrapcheck
}

// loadConfig reads the configuration and initializes the logger.
// quiet limits logging to warnings so command output stays readable.
func loadConfig(quiet bool) error {
	var err error

	if cfg, err = config.ReadConfig(configPath); err != nil {
		return errors.Wrap(err, "failed to read config")
	}

	if quiet {
		cfg.Log.LogLevel = "warn"
		cfg.Log.EnableAccessLogToConsole = false
	}

	if err = logger.Init(cfg.Log); err != nil {
		return errors.Wrap(err, "failed to init logger")
	}

	return nil
}

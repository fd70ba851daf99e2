package app

import (
	"github.com/spf13/cobra"

	"github.com/khalil0525/sample-app-aoai-chatGPT/internal/defaults"
)

func init() { //nolint: gochecknoinits
	defaultsCmd.Flags().StringVarP(&outputFormat, "format", "f", formatJSON, "output format, json or toml")

	rootCmd.AddCommand(defaultsCmd)
}

var defaultsCmd = &cobra.Command{
	Use:   "defaults",
	Short: "Print the server defaults, bounds and model list",
	PreRunE: func(_ *cobra.Command, _ []string) error {
		return loadConfig(true)
	},
	RunE: func(cmd *cobra.Command, _ []string) error {
		return write(cmd.OutOrStdout(), outputFormat, defaults.Load(defaults.Environ(cfg.EnvFile)))
	},
}

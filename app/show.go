package app

import (
	"github.com/spf13/cobra"

	"github.com/khalil0525/sample-app-aoai-chatGPT/internal/daemon"
)

func init() { //nolint: gochecknoinits
	showCmd.Flags().StringVarP(&outputFormat, "format", "f", formatJSON, "output format, json or toml")

	rootCmd.AddCommand(showCmd)
}

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the current advanced settings",
	PreRunE: func(_ *cobra.Command, _ []string) error {
		return loadConfig(true)
	},
	RunE: func(cmd *cobra.Command, _ []string) error {
		gw, err := daemon.Boot(cmd.Context(), &cfg)
		if err != nil {
			return err //nolint:wrapcheck
		}
		defer gw.Close() //nolint:errcheck

		snap, _ := gw.Snapshot()

		return write(cmd.OutOrStdout(), outputFormat, snap.View())
	},
}

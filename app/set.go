package app

import (
	"github.com/spf13/cobra"

	"github.com/khalil0525/sample-app-aoai-chatGPT/internal/daemon"
	"github.com/khalil0525/sample-app-aoai-chatGPT/internal/settings"
)

func init() { //nolint: gochecknoinits
	setCmd.Flags().StringVarP(&outputFormat, "format", "f", formatJSON, "output format, json or toml")

	rootCmd.AddCommand(setCmd)
}

var setCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Change one advanced setting and persist it",
	Long: `Change one advanced setting and persist it. Keys: model, temperature,
topP, searchStrictness, topK, enableInDomain. The value is converted to the
type of the key; it is not limited to the configured bounds.`,
	Args: cobra.ExactArgs(2), //nolint:mnd
	PreRunE: func(_ *cobra.Command, _ []string) error {
		return loadConfig(true)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		key, err := settings.ParseKey(args[0])
		if err != nil {
			return err //nolint:wrapcheck
		}

		gw, err := daemon.Boot(cmd.Context(), &cfg)
		if err != nil {
			return err //nolint:wrapcheck
		}
		defer gw.Close() //nolint:errcheck

		snap, err := gw.Set(cmd.Context(), key, args[1])
		if err != nil {
			return err //nolint:wrapcheck
		}

		return write(cmd.OutOrStdout(), outputFormat, snap.View())
	},
}

package commands

import (
	"github.com/spf13/cobra"

	"github.com/thoreinstein/mcpsync/internal/app"
	"github.com/thoreinstein/mcpsync/internal/errors"
)

var showFormat string

func init() {
	showCmd.Flags().StringVarP(&showFormat, "format", "f", string(app.FormatJSON),
		"output format: json, yaml, toml")
	rootCmd.AddCommand(showCmd)
}

var showCmd = &cobra.Command{
	Use:   "show <name>",
	Short: "Print a registry server definition",
	Long: `Print the registry definition of one server.

Env and header values that look like secrets are masked unless
--show-secrets is given.`,
	Example: `  mcpsync show github
  mcpsync show github --format toml --show-secrets`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		format, err := app.ParseFormat(showFormat)
		if err != nil {
			return errors.NewUserError(err, "")
		}
		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		return a.Show(cmd.Context(), args[0], format)
	},
}

package commands

import (
	"github.com/spf13/cobra"
)

var listJSON bool

func init() {
	listCmd.Flags().BoolVar(&listJSON, "json", false, "Output in JSON format")
	rootCmd.AddCommand(listCmd)
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Show all MCP servers and their current status",
	Long: `List every server in the registry and whether Claude Code and Claude
Desktop currently have it enabled.

The registry and client configurations are only read; servers that exist
only in a client are not imported. Run 'mcpsync sync' for that.`,
	Example: `  # Status table
  mcpsync list

  # Machine-readable output
  mcpsync list --json`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		return a.List(cmd.Context(), listJSON)
	},
}

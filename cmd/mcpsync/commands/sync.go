package commands

import (
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(syncCmd)
	rootCmd.AddCommand(initCmd)
}

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Sync and import servers from client configurations",
	Long: `Import servers that exist only in Claude Code or Claude Desktop into the
registry, and resolve servers whose client definition differs from the
registry's.

For each conflict you can keep the registry version, take the client's
version, or skip it. When any client version is taken, mcpsync offers to
write the updated registry back to every client that has the server enabled.`,
	Example: `  mcpsync sync

  # Show conflicting env values unmasked
  mcpsync sync --show-secrets`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		return a.Sync(cmd.Context())
	},
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize or update the MCP registry",
	Long: `Create the registry from the servers configured in Claude Code and
Claude Desktop, or update an existing registry with servers it lacks.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		return a.Init(cmd.Context())
	},
}

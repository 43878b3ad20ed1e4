// Package backup provides CLI commands for managing configuration backups.
package backup

import (
	"github.com/spf13/cobra"

	"github.com/thoreinstein/mcpsync/cmd/mcpsync/commands/flags"
	"github.com/thoreinstein/mcpsync/internal/backup"
	"github.com/thoreinstein/mcpsync/internal/errors"
)

// Cmd is the root backup command.
var Cmd = &cobra.Command{
	Use:   "backup",
	Short: "Manage configuration backups",
	Long: `Manage backups of the registry and client configurations.

Before mcpsync rewrites the registry or a client configuration for the first
time in a run, it copies the current file into the backup directory
(default $XDG_DATA_HOME/mcpsync/backups/<target>/). Targets are registry, code
and desktop.`,
	Example: `  # List all backups
  mcpsync backup list

  # Restore the most recent Claude Desktop backup
  mcpsync backup restore --target desktop

  # Remove old backups, keeping the 3 most recent per target
  mcpsync backup prune --keep 3

  See Also:
    mcpsync backup list    - List available backups
    mcpsync backup restore - Restore from a backup
    mcpsync backup prune   - Remove old backups`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return cmd.Help()
	},
}

// newManager returns a Manager for the configured backup directory.
func newManager() (*backup.Manager, error) {
	cfg, err := flags.Config()
	if err != nil {
		return nil, errors.NewConfigError(err)
	}
	if cfg == nil {
		return backup.NewManager(), nil
	}

	var opts []backup.Option
	if cfg.Backup.Dir != "" {
		opts = append(opts, backup.WithBackupDir(cfg.Backup.Dir))
	}
	if cfg.Backup.Retention > 0 {
		opts = append(opts, backup.WithRetentionCount(cfg.Backup.Retention))
	}
	return backup.NewManager(opts...), nil
}

// resolveTargets validates a --target value. Empty means every target.
func resolveTargets(target string) ([]string, error) {
	if target == "" {
		return backup.Targets(), nil
	}
	for _, t := range backup.Targets() {
		if t == target {
			return []string{t}, nil
		}
	}
	return nil, errors.NewUserError(errors.Newf("unknown target %q", target),
		"Valid targets: registry, code, desktop")
}

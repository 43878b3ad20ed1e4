package backup

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/thoreinstein/mcpsync/internal/backup"
	"github.com/thoreinstein/mcpsync/internal/errors"
)

var restoreTarget string

func init() {
	restoreCmd.Flags().StringVar(&restoreTarget, "target", "", "Target to restore: registry, code, desktop (required)")
	_ = restoreCmd.MarkFlagRequired("target")
	Cmd.AddCommand(restoreCmd)
}

var restoreCmd = &cobra.Command{
	Use:   "restore [backup-id]",
	Short: "Restore from a backup",
	Long: `Restore a configuration file from a backup.

If no backup ID is provided, the most recent backup of the target is used.
Every file is verified against its recorded checksum before anything is
written, and the current file is overwritten.`,
	Example: `  # Restore the most recent Claude Code backup
  mcpsync backup restore --target code

  # Restore a specific registry backup
  mcpsync backup restore 20260123T100712.000000 --target registry`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		mgr, err := newManager()
		if err != nil {
			return err
		}
		return runRestore(cmd.OutOrStdout(), mgr, args)
	},
}

func runRestore(w io.Writer, mgr *backup.Manager, args []string) error {
	if restoreTarget == "" {
		return errors.NewUserError(errors.New("--target is required for restore"),
			"Valid targets: registry, code, desktop")
	}
	targets, err := resolveTargets(restoreTarget)
	if err != nil {
		return err
	}
	target := targets[0]

	var backupID string
	if len(args) > 0 {
		backupID = args[0]
	} else {
		manifests, err := mgr.List(target)
		if err != nil {
			if errors.Is(err, backup.ErrNoBackupsFound) {
				return errors.NewUserError(errors.Newf("no backups found for %s", target),
					"Run 'mcpsync backup list' to see available backups")
			}
			return errors.Wrap(err, "listing backups")
		}
		backupID = manifests[0].ID
	}

	manifest, err := mgr.Restore(target, backupID)
	if err != nil {
		return errors.Wrapf(err, "restoring %s backup %s", target, backupID)
	}

	fmt.Fprintln(w, color.GreenString("✓ Restored %s from backup %s", target, manifest.ID))
	for _, f := range manifest.Files {
		fmt.Fprintf(w, "  %s\n", f.OriginalPath)
	}
	return nil
}

package backup

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/thoreinstein/mcpsync/internal/backup"
	"github.com/thoreinstein/mcpsync/internal/errors"
)

var (
	pruneKeep   int
	pruneTarget string
)

func init() {
	pruneCmd.Flags().IntVar(&pruneKeep, "keep", backup.DefaultRetentionCount,
		"Number of backups to retain per target")
	pruneCmd.Flags().StringVar(&pruneTarget, "target", "", "Only prune one target: registry, code, desktop")
	Cmd.AddCommand(pruneCmd)
}

var pruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Remove old backups",
	Long: `Remove old backups beyond the retention count.

By default, keeps the 5 most recent backups per target and removes older ones.`,
	Example: `  # Keep only the 3 most recent backups of every target
  mcpsync backup prune --keep 3

  # Remove all desktop backups
  mcpsync backup prune --target desktop --keep 0`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		mgr, err := newManager()
		if err != nil {
			return err
		}
		return runPrune(cmd.OutOrStdout(), mgr)
	},
}

func runPrune(w io.Writer, mgr *backup.Manager) error {
	if pruneKeep < 0 {
		return errors.NewUserError(errors.New("--keep must be non-negative"), "")
	}

	targets, err := resolveTargets(pruneTarget)
	if err != nil {
		return err
	}

	pruned := 0
	for _, target := range targets {
		removed, err := mgr.Prune(target, pruneKeep)
		if err != nil {
			return errors.Wrapf(err, "pruning backups for %s", target)
		}
		if removed == 0 {
			continue
		}
		fmt.Fprintln(w, color.GreenString("✓ %s: removed %d old backup(s)", target, removed))
		pruned += removed
	}

	if pruned == 0 {
		fmt.Fprintln(w, "No backups to prune")
	} else {
		fmt.Fprintf(w, "\nTotal: removed %d backup(s)\n", pruned)
	}
	return nil
}

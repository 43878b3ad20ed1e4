package backup

import (
	"fmt"
	"io"
	"time"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/thoreinstein/mcpsync/internal/backup"
	"github.com/thoreinstein/mcpsync/internal/errors"
	"github.com/thoreinstein/mcpsync/pkg/fileutil"
)

var (
	listJSON   bool
	listTarget string
)

func init() {
	listCmd.Flags().BoolVar(&listJSON, "json", false, "Output in JSON format")
	listCmd.Flags().StringVar(&listTarget, "target", "", "Only list backups of one target: registry, code, desktop")
	Cmd.AddCommand(listCmd)
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List available backups",
	Long: `List the available backups per target, most recent first.`,
	Example: `  mcpsync backup list
  mcpsync backup list --target code --json`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		mgr, err := newManager()
		if err != nil {
			return err
		}
		return runList(cmd.OutOrStdout(), mgr)
	},
}

// listOutput represents the JSON output for backup list.
type listOutput struct {
	Target  string       `json:"target"`
	Backups []infoOutput `json:"backups"`
}

// infoOutput represents a single backup in JSON output.
type infoOutput struct {
	ID          string    `json:"id"`
	CreatedAt   time.Time `json:"created_at"`
	FileCount   int       `json:"file_count"`
	ToolVersion string    `json:"mcpsync_version"`
}

func runList(w io.Writer, mgr *backup.Manager) error {
	targets, err := resolveTargets(listTarget)
	if err != nil {
		return err
	}

	output := make([]listOutput, 0, len(targets))
	for _, target := range targets {
		manifests, err := mgr.List(target)
		if err != nil && !errors.Is(err, backup.ErrNoBackupsFound) {
			return errors.Wrapf(err, "listing backups for %s", target)
		}
		infos := make([]infoOutput, len(manifests))
		for i, m := range manifests {
			infos[i] = infoOutput{
				ID:          m.ID,
				CreatedAt:   m.CreatedAt,
				FileCount:   len(m.Files),
				ToolVersion: m.ToolVersion,
			}
		}
		output = append(output, listOutput{Target: target, Backups: infos})
	}

	if listJSON {
		data, err := fileutil.MarshalJSON(output)
		if err != nil {
			return errors.Wrap(err, "encoding backup list")
		}
		_, err = w.Write(data)
		return err
	}
	return printList(w, output)
}

func printList(w io.Writer, output []listOutput) error {
	hasBackups := false

	for i, o := range output {
		if i > 0 {
			fmt.Fprintln(w)
		}
		fmt.Fprintln(w, color.New(color.FgCyan, color.Bold).Sprintf("Target: %s", o.Target))

		if len(o.Backups) == 0 {
			fmt.Fprintln(w, color.HiBlackString("  (no backups available)"))
			continue
		}
		hasBackups = true

		table := tablewriter.NewTable(w)
		table.Header("ID", "Created", "Files", "Version")
		for _, b := range o.Backups {
			if err := table.Append(b.ID, b.CreatedAt.Local().Format("2006-01-02 15:04:05"),
				fmt.Sprint(b.FileCount), b.ToolVersion); err != nil {
				return errors.Wrap(err, "rendering backup list")
			}
		}
		if err := table.Render(); err != nil {
			return errors.Wrap(err, "rendering backup list")
		}
	}

	if !hasBackups {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "No backups available")
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Backups are created automatically before mcpsync rewrites a configuration.")
	}
	return nil
}

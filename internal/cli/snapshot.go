package cli

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/mos1128/scoop-easy/internal/snapshot"
	"github.com/mos1128/scoop-easy/internal/ui"
)

var (
	snapshotMessage string
	snapshotDryRun  bool
)

var snapshotCmd = &cobra.Command{
	Use:   "snapshot",
	Short: "Capture and restore installed-app snapshots",
	Long: `Capture the installed apps as a snapshot, inspect how the system
drifted since, and restore a snapshot by reinstalling what is missing
and removing what was added.

Examples:
  scoop-easy snapshot create -m "before the big update"
  scoop-easy snapshot list
  scoop-easy snapshot diff 20240301-100000
  scoop-easy snapshot restore 20240301-100000 --dry-run`,
}

var snapshotCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Capture the current installed apps",
	RunE: func(cmd *cobra.Command, args []string) error {
		var snap *snapshot.Snapshot
		err := ui.WithSpinner("Capturing snapshot", func() error {
			var err error
			snap, err = svc.CreateSnapshot(context.Background(), snapshotMessage)
			return err
		})
		if err != nil {
			return err
		}
		ui.SuccessMsg("Saved snapshot %s", snap.Summary())
		return nil
	},
}

var snapshotListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored snapshots",
	RunE: func(cmd *cobra.Command, args []string) error {
		snapshots, err := svc.Snapshots(0)
		if err != nil {
			return err
		}
		if len(snapshots) == 0 {
			ui.InfoMsg("No snapshots stored")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tCREATED\tTRIGGER\tAPPS\tDESCRIPTION")
		for _, s := range snapshots {
			fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\n",
				s.ID, s.FormatTime(), s.Trigger, len(s.Apps), s.Description)
		}
		return w.Flush()
	},
}

var snapshotShowCmd = &cobra.Command{
	Use:   "show [id]",
	Short: "Show the apps captured in a snapshot",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		snap, err := svc.Snapshot(args[0])
		if err != nil {
			return err
		}

		ui.Header.Printf("%s\n", snap.Summary())
		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "NAME\tVERSION\tBUCKET")
		for _, app := range snap.Apps {
			marker := ""
			if app.Held {
				marker = " (held)"
			}
			fmt.Fprintf(w, "%s\t%s\t%s%s\n", app.Name, app.Version, app.Bucket, marker)
		}
		return w.Flush()
	},
}

var snapshotDiffCmd = &cobra.Command{
	Use:   "diff [id]",
	Short: "Show how the system drifted since a snapshot",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		diff, err := svc.DiffSnapshot(context.Background(), args[0])
		if err != nil {
			return err
		}

		if diff.IsEmpty() {
			ui.InfoMsg("No changes since %s", args[0])
			return nil
		}
		ui.Header.Printf("%s\n", diff.Summary())
		for _, change := range diff.Changes {
			ui.Println("  %s", change.String())
		}
		return nil
	},
}

var snapshotRmCmd = &cobra.Command{
	Use:   "rm [id]",
	Short: "Delete a snapshot",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := svc.DeleteSnapshot(args[0]); err != nil {
			return err
		}
		ui.SuccessMsg("Deleted snapshot %s", args[0])
		return nil
	},
}

var snapshotRestoreCmd = &cobra.Command{
	Use:   "restore [id]",
	Short: "Restore the installed apps to a snapshot",
	Long: `Restore the installed apps to a snapshot. Missing or drifted apps
are reinstalled pinned to the captured version; apps installed since the
snapshot are removed. The pre-restore state is saved as a new snapshot
first.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		plan, err := svc.PlanRestore(context.Background(), args[0])
		if err != nil {
			return err
		}
		if plan.IsEmpty() {
			ui.InfoMsg("Already matches snapshot %s", args[0])
			return nil
		}

		ui.Header.Printf("Restore plan: %s\n", plan.Summary())
		for _, t := range plan.ToInstall {
			ui.Println("  install %s@%s", t.Name, t.Version)
		}
		for _, name := range plan.ToUninstall {
			ui.Println("  uninstall %s", name)
		}
		if snapshotDryRun {
			return nil
		}

		if !confirm("Apply this plan?", false) {
			return ErrAborted
		}
		err = ui.WithSpinner("Restoring snapshot "+args[0], func() error {
			_, err := svc.RestoreSnapshot(context.Background(), args[0])
			return err
		})
		if err != nil {
			return err
		}
		ui.SuccessMsg("Restored snapshot %s", args[0])
		return nil
	},
}

func init() {
	snapshotCreateCmd.Flags().StringVarP(&snapshotMessage, "message", "m", "", "snapshot description")
	snapshotRestoreCmd.Flags().BoolVar(&snapshotDryRun, "dry-run", false, "show the plan without applying it")

	snapshotCmd.AddCommand(snapshotCreateCmd)
	snapshotCmd.AddCommand(snapshotListCmd)
	snapshotCmd.AddCommand(snapshotShowCmd)
	snapshotCmd.AddCommand(snapshotDiffCmd)
	snapshotCmd.AddCommand(snapshotRmCmd)
	snapshotCmd.AddCommand(snapshotRestoreCmd)
}

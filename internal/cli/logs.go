package cli

import (
	"github.com/spf13/cobra"

	"github.com/mos1128/scoop-easy/internal/ui"
)

var (
	logsLimit int
	logsClear bool
)

var logsCmd = &cobra.Command{
	Use:   "logs",
	Short: "Show the operation log",
	Long: `Show the most recent operations, newest first. Every scoop
invocation is logged, failed ones included.

Examples:
  scoop-easy logs
  scoop-easy logs --limit 20
  scoop-easy logs --clear`,
	RunE: runLogs,
}

func init() {
	logsCmd.Flags().IntVarP(&logsLimit, "limit", "l", 0, "limit number of entries")
	logsCmd.Flags().BoolVar(&logsClear, "clear", false, "clear the operation log")
}

func runLogs(cmd *cobra.Command, args []string) error {
	if logsClear {
		if !confirm("Clear the entire operation log? This cannot be undone", false) {
			return ErrAborted
		}
		if err := svc.ClearLogs(); err != nil {
			return err
		}
		ui.SuccessMsg("Operation log cleared")
		return nil
	}

	entries, err := svc.Logs(logsLimit)
	if err != nil {
		return err
	}
	ui.PrintLogs(entries)
	return nil
}

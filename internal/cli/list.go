package cli

import (
	"context"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mos1128/scoop-easy/internal/ui"
	"github.com/mos1128/scoop-easy/pkg/scoop"
)

var (
	listPattern string
	listUpdates bool
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List installed apps",
	Long: `List installed apps with their bucket, hold status and any
available update.

Examples:
  scoop-easy list               # All installed apps
  scoop-easy list -p git        # Apps matching 'git'
  scoop-easy list --updates     # Only apps with updates available`,
	RunE: runList,
}

func init() {
	listCmd.Flags().StringVarP(&listPattern, "pattern", "p", "", "filter by name pattern")
	listCmd.Flags().BoolVar(&listUpdates, "updates", false, "only show apps with available updates")
}

func runList(cmd *cobra.Command, args []string) error {
	apps, err := svc.RefreshApps(context.Background())
	if err != nil {
		return err
	}

	filtered := make([]scoop.InstalledApp, 0, len(apps))
	patternLower := strings.ToLower(listPattern)
	for _, app := range apps {
		if listPattern != "" && !strings.Contains(strings.ToLower(app.Name), patternLower) {
			continue
		}
		if listUpdates && !app.HasUpdate {
			continue
		}
		filtered = append(filtered, app)
	}

	ui.PrintApps(filtered)
	ui.MutedMsg("\nTotal: %d apps", len(filtered))
	return nil
}

package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mos1128/scoop-easy/internal/ui"
)

var updateAll bool

var updateCmd = &cobra.Command{
	Use:   "update [apps...]",
	Short: "Update installed apps",
	Long: `Update the named apps, or everything with --all. Held apps are
skipped by scoop itself.

Examples:
  scoop-easy update git
  scoop-easy update --all`,
	RunE: runUpdate,
}

func init() {
	updateCmd.Flags().BoolVarP(&updateAll, "all", "a", false, "update every app with an available update")
}

func runUpdate(cmd *cobra.Command, args []string) error {
	apps := args
	if updateAll {
		installed, err := svc.RefreshApps(context.Background())
		if err != nil {
			return err
		}
		for _, app := range installed {
			if app.HasUpdate && !app.Held {
				apps = append(apps, app.Name)
			}
		}
		if len(apps) == 0 {
			ui.InfoMsg("Everything is up to date")
			return nil
		}
	}
	if len(apps) == 0 {
		return ErrNoApps
	}

	var out string
	err := ui.WithSpinner(fmt.Sprintf("Updating %s", strings.Join(apps, ", ")), func() error {
		var err error
		out, err = svc.UpdateApps(context.Background(), apps)
		return err
	})
	if err != nil {
		return err
	}
	if verbose && out != "" {
		ui.MutedMsg("%s", out)
	}
	return nil
}

package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mos1128/scoop-easy/internal/ui"
)

var uninstallCmd = &cobra.Command{
	Use:   "uninstall [apps...]",
	Short: "Uninstall one or more apps",
	Long: `Uninstall apps through scoop.

Examples:
  scoop-easy uninstall 7zip
  scoop-easy uninstall git vim -y`,
	Args: cobra.MinimumNArgs(1),
	RunE: runUninstall,
}

func runUninstall(cmd *cobra.Command, args []string) error {
	if !confirm(fmt.Sprintf("Uninstall %s?", strings.Join(args, ", ")), false) {
		return ErrAborted
	}

	var out string
	err := ui.WithSpinner(fmt.Sprintf("Uninstalling %s", strings.Join(args, ", ")), func() error {
		var err error
		out, err = svc.UninstallApps(context.Background(), args)
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

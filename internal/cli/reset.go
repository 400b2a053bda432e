package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/mos1128/scoop-easy/internal/ui"
)

var (
	resetVersion string
	resetTarget  string
)

var resetCmd = &cobra.Command{
	Use:   "reset [app]",
	Short: "Switch an app to another version or related app",
	Long: `Reset an app to an explicit installed version, or re-point its
shims at a related app that provides the same executables. Without flags
the discoverable versions are listed for interactive selection.

Examples:
  scoop-easy reset python --version 3.11.4
  scoop-easy reset nodejs --target nodejs-lts
  scoop-easy reset python                     # Pick from a list`,
	Args: cobra.ExactArgs(1),
	RunE: runReset,
}

func init() {
	resetCmd.Flags().StringVar(&resetVersion, "version", "", "reset to this version")
	resetCmd.Flags().StringVar(&resetTarget, "target", "", "switch shims to this related app")
}

func runReset(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	name := args[0]
	version := resetVersion

	if version == "" && resetTarget == "" {
		candidates, err := svc.Versions(ctx, name)
		if err != nil {
			return err
		}
		choice, err := ui.SelectVersion(candidates, "Select version")
		if err != nil {
			return err
		}
		version = choice.Version
	}

	out, err := svc.ResetApp(ctx, name, version, resetTarget)
	if err != nil {
		return err
	}
	ui.SuccessMsg("Reset %s", name)
	if verbose && out != "" {
		ui.MutedMsg("%s", out)
	}
	return nil
}

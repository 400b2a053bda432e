package cli

import (
	"context"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mos1128/scoop-easy/internal/ui"
)

var holdCmd = &cobra.Command{
	Use:   "hold [apps...]",
	Short: "Hold apps to exclude them from updates",
	Long: `Hold apps so updates skip them. With no arguments, lists the
apps currently held.

Examples:
  scoop-easy hold git nodejs
  scoop-easy hold              # Show held apps`,
	RunE: runHold,
}

var unholdCmd = &cobra.Command{
	Use:   "unhold [apps...]",
	Short: "Release the hold on apps",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runUnhold,
}

func runHold(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	if len(args) == 0 {
		held, err := svc.HeldApps(ctx)
		if err != nil {
			return err
		}
		if len(held) == 0 {
			ui.MutedMsg("No apps held")
			return nil
		}
		names := make([]string, 0, len(held))
		for name := range held {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			ui.Println("%s", name)
		}
		return nil
	}

	out, err := svc.HoldApps(ctx, args)
	if err != nil {
		return err
	}
	ui.SuccessMsg("Held %s", strings.Join(args, ", "))
	if verbose && out != "" {
		ui.MutedMsg("%s", out)
	}
	return nil
}

func runUnhold(cmd *cobra.Command, args []string) error {
	out, err := svc.UnholdApps(context.Background(), args)
	if err != nil {
		return err
	}
	ui.SuccessMsg("Released hold on %s", strings.Join(args, ", "))
	if verbose && out != "" {
		ui.MutedMsg("%s", out)
	}
	return nil
}

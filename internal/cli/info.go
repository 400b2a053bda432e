package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/mos1128/scoop-easy/internal/ui"
)

var infoCmd = &cobra.Command{
	Use:   "info [app]",
	Short: "Show an app's manifest",
	Long: `Show the manifest for an app: installed apps are read from
disk, everything else through scoop cat.`,
	Args: cobra.ExactArgs(1),
	RunE: runInfo,
}

var relatedCmd = &cobra.Command{
	Use:   "related [app]",
	Short: "Show installed apps sharing executables with an app",
	Long: `Show installed apps that provide one or more of the same
executables as the given app. Such apps can stand in for each other via
scoop reset.`,
	Args: cobra.ExactArgs(1),
	RunE: runRelated,
}

var versionsCmd = &cobra.Command{
	Use:   "versions [app]",
	Short: "List discoverable versions of an app across buckets",
	Args:  cobra.ExactArgs(1),
	RunE:  runVersions,
}

func runInfo(cmd *cobra.Command, args []string) error {
	manifest, err := svc.AppInfo(context.Background(), args[0])
	if err != nil {
		return err
	}

	// Show scalar fields in a stable order, structured fields as JSON.
	keys := make([]string, 0, len(manifest))
	for k := range manifest {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		switch v := manifest[k].(type) {
		case string, float64, bool:
			ui.Println("%s: %v", ui.Bold(k), v)
		default:
			raw, err := json.Marshal(v)
			if err != nil {
				continue
			}
			ui.Println("%s: %s", ui.Bold(k), string(raw))
		}
	}
	return nil
}

func runRelated(cmd *cobra.Command, args []string) error {
	related, err := svc.RelatedApps(args[0])
	if err != nil {
		return err
	}
	ui.PrintRelated(related)
	return nil
}

func runVersions(cmd *cobra.Command, args []string) error {
	candidates, err := svc.Versions(context.Background(), args[0])
	if err != nil {
		return err
	}
	ui.PrintVersions(candidates)
	if len(candidates) > 0 {
		ui.MutedMsg("\n%s", fmt.Sprintf("Use 'scoop-easy reset %s --version <v>' to switch", args[0]))
	}
	return nil
}

package cli

import (
	"context"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mos1128/scoop-easy/internal/ui"
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search for apps across buckets",
	Long: `Search for apps using the configured search backend (the
builtin scoop search or the scoop-search helper).

Examples:
  scoop-easy search firefox
  scoop-easy search "visual studio"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSearch,
}

func runSearch(cmd *cobra.Command, args []string) error {
	query := strings.Join(args, " ")

	results, err := svc.SearchApps(context.Background(), query)
	if err != nil {
		return err
	}

	ui.PrintSearchResults(results)
	ui.MutedMsg("\nTotal: %d results", len(results))
	return nil
}

package cli

import (
	"github.com/spf13/cobra"

	"github.com/mos1128/scoop-easy/internal/tui"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the interactive terminal interface",
	Long: `Launch an interactive terminal interface for browsing installed apps,
buckets, search results, and the operation log.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return tui.Run(svc)
	},
}

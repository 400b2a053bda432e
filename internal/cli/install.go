package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mos1128/scoop-easy/internal/ui"
)

var (
	installBucket  string
	installVersion string
)

var installCmd = &cobra.Command{
	Use:   "install [app]",
	Short: "Install an app",
	Long: `Install an app, optionally pinned to a bucket or a version.

Examples:
  scoop-easy install 7zip
  scoop-easy install extras/vscode
  scoop-easy install git --version 2.44.0`,
	Args: cobra.ExactArgs(1),
	RunE: runInstall,
}

func init() {
	installCmd.Flags().StringVarP(&installBucket, "bucket", "b", "", "install from a specific bucket")
	installCmd.Flags().StringVar(&installVersion, "version", "", "install a specific version")
}

func runInstall(cmd *cobra.Command, args []string) error {
	name := args[0]
	bucket := installBucket
	// Accept the bucket/name shorthand scoop users expect.
	if bucket == "" {
		if idx := strings.Index(name, "/"); idx > 0 {
			bucket, name = name[:idx], name[idx+1:]
		}
	}

	var out string
	err := ui.WithSpinner(fmt.Sprintf("Installing %s", name), func() error {
		var err error
		out, err = svc.InstallApp(context.Background(), name, bucket, installVersion)
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

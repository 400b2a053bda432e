package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/mos1128/scoop-easy/internal/ui"
)

var bucketCmd = &cobra.Command{
	Use:   "bucket",
	Short: "Manage buckets",
	Long: `List, add and remove the buckets scoop pulls manifests from.

Examples:
  scoop-easy bucket list
  scoop-easy bucket add extras
  scoop-easy bucket add mybucket https://github.com/me/my-bucket
  scoop-easy bucket rm extras`,
}

var bucketListCmd = &cobra.Command{
	Use:   "list",
	Short: "List configured buckets",
	RunE: func(cmd *cobra.Command, args []string) error {
		buckets, err := svc.Buckets(context.Background())
		if err != nil {
			return err
		}
		ui.PrintBuckets(buckets)
		return nil
	},
}

var bucketAddCmd = &cobra.Command{
	Use:   "add [name] [url]",
	Short: "Add a bucket",
	Long: `Add a bucket. The url may be omitted for buckets in scoop's
well-known registry (main, extras, versions, ...).`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		url := ""
		if len(args) == 2 {
			url = args[1]
		}

		var out string
		err := ui.WithSpinner("Adding bucket "+args[0], func() error {
			var err error
			out, err = svc.AddBucket(context.Background(), args[0], url)
			return err
		})
		if err != nil {
			return err
		}
		if verbose && out != "" {
			ui.MutedMsg("%s", out)
		}
		return nil
	},
}

var bucketRmCmd = &cobra.Command{
	Use:   "rm [name]",
	Short: "Remove a bucket",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if !confirm("Remove bucket "+args[0]+"?", false) {
			return ErrAborted
		}

		out, err := svc.RemoveBucket(context.Background(), args[0])
		if err != nil {
			return err
		}
		ui.SuccessMsg("Removed bucket %s", args[0])
		if verbose && out != "" {
			ui.MutedMsg("%s", out)
		}
		return nil
	},
}

func init() {
	bucketCmd.AddCommand(bucketListCmd)
	bucketCmd.AddCommand(bucketAddCmd)
	bucketCmd.AddCommand(bucketRmCmd)
}

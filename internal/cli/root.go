// Package cli implements the command-line interface for scoop-easy.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/mos1128/scoop-easy/internal/config"
	"github.com/mos1128/scoop-easy/internal/executor"
	"github.com/mos1128/scoop-easy/internal/oplog"
	"github.com/mos1128/scoop-easy/internal/service"
	"github.com/mos1128/scoop-easy/internal/snapshot"
	"github.com/mos1128/scoop-easy/internal/ui"
	"github.com/mos1128/scoop-easy/pkg/scoop"
)

var (
	// Global flags
	cfgFile string
	dryRun  bool
	yes     bool
	verbose bool
	noColor bool

	// Global state
	settings  *config.Settings
	logs      *oplog.Store
	snapshots *snapshot.Store
	svc       *service.Service
)

// Build metadata - set at build time via ldflags
var (
	Version   = "0.1.0-dev"
	Commit    = "unknown"
	BuildTime = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "scoop-easy",
	Short: "Manage Scoop packages from a friendly frontend",
	Long: `scoop-easy wraps the Scoop package manager with a web API,
a terminal UI and batch-friendly commands. Every operation is proxied
to the scoop CLI and recorded in a persistent operation log.

Examples:
  scoop-easy list                  # Installed apps with update status
  scoop-easy install 7zip          # Install an app
  scoop-easy hold git              # Exclude git from updates
  scoop-easy serve                 # Start the web API
  scoop-easy tui                   # Interactive terminal UI`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initializeApp()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "settings file path")
	rootCmd.PersistentFlags().BoolVarP(&dryRun, "dry-run", "n", false, "show what would happen without executing")
	rootCmd.PersistentFlags().BoolVarP(&yes, "yes", "y", false, "assume yes to all prompts")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(installCmd)
	rootCmd.AddCommand(uninstallCmd)
	rootCmd.AddCommand(updateCmd)
	rootCmd.AddCommand(holdCmd)
	rootCmd.AddCommand(unholdCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(bucketCmd)
	rootCmd.AddCommand(infoCmd)
	rootCmd.AddCommand(relatedCmd)
	rootCmd.AddCommand(versionsCmd)
	rootCmd.AddCommand(logsCmd)
	rootCmd.AddCommand(snapshotCmd)
	rootCmd.AddCommand(settingsCmd)
	rootCmd.AddCommand(tuiCmd)
}

// Execute runs the root command.
func Execute() error {
	defer closeApp()
	return rootCmd.Execute()
}

// initializeApp sets up the application state shared by all commands.
func initializeApp() error {
	var err error
	if cfgFile != "" {
		settings, err = config.LoadFrom(cfgFile)
	} else {
		settings, err = config.Load()
	}
	if err != nil {
		return err
	}

	ui.Init(!noColor, true)

	logs, err = oplog.Open()
	if err != nil {
		return err
	}
	snapshots, err = snapshot.Open()
	if err != nil {
		return err
	}

	exec := executor.New(dryRun, verbose)
	runner := scoop.NewShellRunner("scoop", exec)
	searchRunner := scoop.NewShellRunner("scoop-search", exec)
	client := scoop.NewClient(runner, searchRunner, logs)
	svc = service.New(client, logs, settings)
	svc.AttachSnapshots(snapshots)

	return nil
}

func closeApp() {
	if logs != nil {
		logs.Close() //nolint:errcheck
	}
	if snapshots != nil {
		snapshots.Close() //nolint:errcheck
	}
}

// confirm asks unless --yes was given.
func confirm(prompt string, defaultYes bool) bool {
	if yes {
		return true
	}
	ok, err := ui.Confirm(prompt, defaultYes)
	if err != nil {
		return false
	}
	return ok
}

// Version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print scoop-easy version",
	Run: func(cmd *cobra.Command, args []string) {
		ui.InfoMsg("scoop-easy version %s", Version)
		if Commit != "unknown" {
			ui.MutedMsg("  Commit: %s", Commit)
		}
		if BuildTime != "unknown" {
			ui.MutedMsg("  Built:  %s", BuildTime)
		}
	},
}

package cli

import (
	"github.com/spf13/cobra"

	"github.com/mos1128/scoop-easy/internal/config"
	"github.com/mos1128/scoop-easy/internal/ui"
)

var (
	settingsSearch string
	settingsTurbo  string
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Show or change settings",
	Long: `Show the current settings, or change individual fields.
Unchanged fields keep their values.

Examples:
  scoop-easy settings
  scoop-easy settings --search-command scoop-search
  scoop-easy settings --turbo on`,
	RunE: runSettings,
}

func init() {
	settingsCmd.Flags().StringVar(&settingsSearch, "search-command", "", "search backend: scoop or scoop-search")
	settingsCmd.Flags().StringVar(&settingsTurbo, "turbo", "", "turbo mode (no auto-refresh): on or off")
}

func runSettings(cmd *cobra.Command, args []string) error {
	var update config.Update
	if settingsSearch != "" {
		update.SearchCommand = &settingsSearch
	}
	switch settingsTurbo {
	case "":
	case "on", "true":
		v := true
		update.TurboMode = &v
	case "off", "false":
		v := false
		update.TurboMode = &v
	default:
		return ErrInvalidTurbo
	}

	if update.SearchCommand != nil || update.TurboMode != nil {
		current, err := svc.UpdateSettings(update)
		if err != nil {
			return err
		}
		ui.SuccessMsg("Settings saved")
		printSettings(current)
		return nil
	}

	printSettings(svc.Settings())
	return nil
}

func printSettings(s config.Settings) {
	ui.Println("%s: %s", ui.Bold("search_command"), s.SearchCommand)
	turbo := "off"
	if s.TurboMode {
		turbo = "on"
	}
	ui.Println("%s: %s", ui.Bold("turbo_mode"), turbo)
}

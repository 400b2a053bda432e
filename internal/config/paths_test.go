package config

import (
	"runtime"
	"strings"
	"testing"
)

func TestSettingsPath(t *testing.T) {
	path := SettingsPath()
	if !strings.HasSuffix(path, settingsFile) {
		t.Errorf("expected path ending in %s, got %s", settingsFile, path)
	}
	if !strings.Contains(path, appName) {
		t.Errorf("expected path containing %s, got %s", appName, path)
	}
}

func TestLogPath(t *testing.T) {
	path := LogPath()
	if !strings.HasSuffix(path, logFile) {
		t.Errorf("expected path ending in %s, got %s", logFile, path)
	}
}

func TestConfigDirXDGOverride(t *testing.T) {
	if runtime.GOOS == "windows" || runtime.GOOS == "darwin" {
		t.Skip("XDG paths only apply on Linux")
	}

	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg-config")
	if got := ConfigDir(); got != "/tmp/xdg-config/"+appName {
		t.Errorf("unexpected config dir %q", got)
	}

	t.Setenv("XDG_DATA_HOME", "/tmp/xdg-data")
	if got := DataDir(); got != "/tmp/xdg-data/"+appName {
		t.Errorf("unexpected data dir %q", got)
	}
}

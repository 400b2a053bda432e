package scoop

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// RootDir resolves the Scoop installation directory: the root_path from
// Scoop's own config file wins, then the SCOOP environment variable, then
// the conventional ~/scoop.
func RootDir() string {
	home, _ := os.UserHomeDir() //nolint:errcheck

	cfgPath := filepath.Join(home, ".config", "scoop", "config.json")
	if raw, err := os.ReadFile(cfgPath); err == nil {
		var cfg struct {
			RootPath string `json:"root_path"`
		}
		if err := json.Unmarshal(raw, &cfg); err == nil && cfg.RootPath != "" {
			return cfg.RootPath
		}
	}

	if env := os.Getenv("SCOOP"); env != "" {
		return env
	}
	return filepath.Join(home, "scoop")
}

// AppsDir returns the directory containing installed app folders under root.
func AppsDir(root string) string {
	return filepath.Join(root, "apps")
}

// ReadManifest reads manifest.json for an installed app directly from the
// apps directory. Returns nil on any read or decode failure; the caller
// falls back to `scoop cat`.
func ReadManifest(appsDir, app string) *Manifest {
	raw, err := os.ReadFile(filepath.Join(appsDir, app, "current", "manifest.json"))
	if err != nil {
		return nil
	}
	var m Manifest
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil
	}
	return &m
}

// readManifestRaw reads manifest.json without imposing the typed shape,
// preserving every field the manifest carries. Returns nil on failure.
func readManifestRaw(appsDir, app string) map[string]any {
	raw, err := os.ReadFile(filepath.Join(appsDir, app, "current", "manifest.json"))
	if err != nil {
		return nil
	}
	var m map[string]any
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil
	}
	return m
}

// installInfo is the slice of install.json the listing cares about.
type installInfo struct {
	Bucket string `json:"bucket"`
}

// readInstallBucket reads the source bucket recorded at install time.
func readInstallBucket(appsDir, app string) string {
	raw, err := os.ReadFile(filepath.Join(appsDir, app, "current", "install.json"))
	if err != nil {
		return "unknown"
	}
	var info installInfo
	if err := json.Unmarshal(raw, &info); err != nil || info.Bucket == "" {
		return "unknown"
	}
	return info.Bucket
}

// installedManifest pairs an app with its on-disk manifest.
type installedManifest struct {
	Name     string
	Version  string
	Bucket   string
	Manifest *Manifest
}

// scanInstalled walks the apps directory and loads the manifest of every
// app that has a current link. Apps without a readable manifest are
// skipped; an unreadable apps directory yields an empty slice.
func scanInstalled(appsDir string) []installedManifest {
	entries, err := os.ReadDir(appsDir)
	if err != nil {
		return nil
	}

	var apps []installedManifest
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		name := e.Name()
		if _, err := os.Stat(filepath.Join(appsDir, name, "current")); err != nil {
			continue
		}
		m := ReadManifest(appsDir, name)
		if m == nil {
			continue
		}
		version := m.Version
		if version == "" {
			version = "unknown"
		}
		apps = append(apps, installedManifest{
			Name:     name,
			Version:  version,
			Bucket:   readInstallBucket(appsDir, name),
			Manifest: m,
		})
	}
	return apps
}

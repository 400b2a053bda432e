package scoop

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// BinNames extracts executable names from a manifest bin field. Scoop
// allows a bare string, a list of strings, or nested [target, alias]
// pairs; the alias is the name the shim gets, so it wins for pairs.
// Names are basenames without extension, lowercased.
func BinNames(bin any) map[string]bool {
	bins := make(map[string]bool)
	addBin(bins, bin)
	return bins
}

func addBin(bins map[string]bool, bin any) {
	switch v := bin.(type) {
	case string:
		if name := binStem(v); name != "" {
			bins[name] = true
		}
	case []any:
		for _, item := range v {
			switch iv := item.(type) {
			case string:
				if name := binStem(iv); name != "" {
					bins[name] = true
				}
			case []any:
				if len(iv) >= 2 {
					if alias, ok := iv[1].(string); ok {
						if name := binStem(alias); name != "" {
							bins[name] = true
						}
					}
				}
			}
		}
	}
}

// binStem returns the lowercased basename of a bin path without its
// extension. Scoop manifests use backslashes, so normalize first.
func binStem(path string) string {
	path = strings.ReplaceAll(path, `\`, "/")
	base := filepath.Base(path)
	if base == "." || base == "/" {
		return ""
	}
	return strings.ToLower(strings.TrimSuffix(base, filepath.Ext(base)))
}

// Executables returns every executable name an installed app provides:
// the manifest bin field when present, otherwise .exe files found in the
// directories the manifest adds to PATH.
func Executables(appsDir, app string, m *Manifest) map[string]bool {
	bins := BinNames(m.Bin)
	if len(bins) > 0 {
		return bins
	}

	appDir := filepath.Join(appsDir, app, "current")
	switch v := m.EnvAddPath.(type) {
	case string:
		scanExes(bins, filepath.Join(appDir, v))
	case []any:
		for _, p := range v {
			if dir, ok := p.(string); ok {
				scanExes(bins, filepath.Join(appDir, dir))
			}
		}
	}
	return bins
}

func scanExes(bins map[string]bool, dir string) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return
	}
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if strings.EqualFold(filepath.Ext(e.Name()), ".exe") {
			bins[binStem(e.Name())] = true
		}
	}
}

// RelatedApps returns every installed app (excluding the target) whose
// executable set intersects the target's, annotated with the sorted
// intersection. Iteration over the installed set is sorted by name, so
// results are stable; the intersection relation is symmetric by
// construction. A missing target manifest or an empty executable set
// yields no results.
func RelatedApps(appsDir, target string) []RelatedApp {
	targetManifest := ReadManifest(appsDir, target)
	if targetManifest == nil {
		return nil
	}

	targetBins := Executables(appsDir, target, targetManifest)
	if len(targetBins) == 0 {
		return nil
	}

	installed := scanInstalled(appsDir)
	sort.Slice(installed, func(i, j int) bool { return installed[i].Name < installed[j].Name })

	var related []RelatedApp
	for _, app := range installed {
		if strings.EqualFold(app.Name, target) {
			continue
		}

		var shared []string
		for bin := range Executables(appsDir, app.Name, app.Manifest) {
			if targetBins[bin] {
				shared = append(shared, bin)
			}
		}
		if len(shared) == 0 {
			continue
		}
		sort.Strings(shared)

		related = append(related, RelatedApp{
			Name:       app.Name,
			Version:    app.Version,
			Bucket:     app.Bucket,
			SharedBins: shared,
		})
	}

	return related
}

// Package scoop adapts the Scoop command-line package manager: it builds
// command lines, parses Scoop's text output into structured records, reads
// app manifests, and resolves related apps through shared executables.
package scoop

// InstalledApp is one row of the installed-app snapshot. Snapshots are
// rebuilt wholesale on refresh; entries are never mutated in place.
type InstalledApp struct {
	Name          string `json:"name"`
	Version       string `json:"version"`
	Bucket        string `json:"bucket"`
	Updated       string `json:"updated,omitempty"`
	Held          bool   `json:"held"`
	HasUpdate     bool   `json:"has_update"`
	LatestVersion string `json:"latest_version,omitempty"`
}

// Bucket is a named source repository of package manifests.
type Bucket struct {
	Name      string `json:"name"`
	Source    string `json:"source"`
	Updated   string `json:"updated,omitempty"`
	Manifests int    `json:"manifests,omitempty"`
}

// SearchResult is one hit from a search query. Ephemeral, never cached.
type SearchResult struct {
	Name        string `json:"name"`
	Version     string `json:"version"`
	Bucket      string `json:"bucket"`
	Description string `json:"description,omitempty"`
}

// VersionCandidate enumerates one discoverable version of an app across
// the configured buckets.
type VersionCandidate struct {
	Name    string `json:"name"`
	Version string `json:"version"`
	Bucket  string `json:"bucket"`
}

// RelatedApp is an installed app sharing one or more provided executable
// names with a reference app. SharedBins is the sorted intersection.
type RelatedApp struct {
	Name       string   `json:"name"`
	Version    string   `json:"version"`
	Bucket     string   `json:"bucket"`
	SharedBins []string `json:"shared_bins"`
}

// Manifest is the descriptive metadata Scoop keeps per app. Only the
// fields the frontend displays are typed; Bin and Shortcuts keep their
// raw JSON shape because Scoop allows several encodings.
type Manifest struct {
	Name        string `json:"name,omitempty"`
	Version     string `json:"version"`
	Description string `json:"description,omitempty"`
	Homepage    string `json:"homepage,omitempty"`
	License     any    `json:"license,omitempty"`
	Bin         any    `json:"bin,omitempty"`
	Shortcuts   any    `json:"shortcuts,omitempty"`
	EnvAddPath  any    `json:"env_add_path,omitempty"`
}

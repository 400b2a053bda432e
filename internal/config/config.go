// Package config persists scoop-easy settings as a single TOML record.
package config

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/gofrs/flock"
)

// Search backend identifiers. SearchScoop shells out to the builtin
// `scoop search`; SearchScoopSearch uses the faster scoop-search helper.
const (
	SearchScoop       = "scoop"
	SearchScoopSearch = "scoop-search"
)

// Settings is the persisted configuration. One record, read at startup,
// overwritten wholesale on save.
type Settings struct {
	// SearchCommand selects the search backend: "scoop" or "scoop-search".
	SearchCommand string `toml:"search_command" json:"search_command"`

	// TurboMode suppresses the automatic snapshot refresh after mutating
	// operations, trading staleness for responsiveness.
	TurboMode bool `toml:"turbo_mode" json:"turbo_mode"`

	// path is where the settings were loaded from; Save writes back to
	// it so a custom --config file does not go stale.
	path string
}

// Update carries a partial settings change; nil fields keep their prior
// values.
type Update struct {
	SearchCommand *string `json:"search_command,omitempty"`
	TurboMode     *bool   `json:"turbo_mode,omitempty"`
}

// Default returns the default settings: builtin search, auto-refresh on.
func Default() *Settings {
	return &Settings{
		SearchCommand: SearchScoop,
		TurboMode:     false,
	}
}

// Load loads the settings from the default path.
func Load() (*Settings, error) {
	return LoadFrom(SettingsPath())
}

// LoadFrom loads the settings from a specific path. A missing file yields
// the defaults.
func LoadFrom(path string) (*Settings, error) {
	s := Default()
	s.path = path

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return s, nil
	}

	if _, err := toml.DecodeFile(path, s); err != nil {
		return nil, err
	}
	if s.SearchCommand == "" {
		s.SearchCommand = SearchScoop
	}
	return s, nil
}

// Save writes the settings back to the path they were loaded from, or
// to the default path for settings that never touched a file.
func (s *Settings) Save() error {
	if s.path != "" {
		return s.SaveTo(s.path)
	}
	if err := EnsureConfigDir(); err != nil {
		return err
	}
	return s.SaveTo(SettingsPath())
}

// SaveTo writes the settings to a specific path. A file lock keeps
// concurrent processes from interleaving writes.
func (s *Settings) SaveTo(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	lock := flock.New(path + ".lock")
	if err := lock.Lock(); err != nil {
		return err
	}
	defer lock.Unlock() //nolint:errcheck

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return toml.NewEncoder(f).Encode(s)
}

// Apply merges a partial update into the settings. Unset fields retain
// their prior values.
func (s *Settings) Apply(u Update) {
	if u.SearchCommand != nil {
		s.SearchCommand = *u.SearchCommand
	}
	if u.TurboMode != nil {
		s.TurboMode = *u.TurboMode
	}
}

// Package snapshot captures point-in-time records of the installed app
// set, so a known-good configuration can be inspected, diffed against the
// current state and restored after an unwanted change.
package snapshot

import (
	"fmt"
	"sort"
	"time"

	"github.com/mos1128/scoop-easy/internal/config"
	"github.com/mos1128/scoop-easy/pkg/scoop"
)

// Trigger records what caused a snapshot to be taken.
type Trigger string

const (
	TriggerManual  Trigger = "manual"
	TriggerRestore Trigger = "restore"
)

// MaxSnapshots bounds how many snapshots the store keeps; the oldest are
// pruned on save.
const MaxSnapshots = 50

// AppState is one installed app as captured in a snapshot.
type AppState struct {
	Name    string `json:"name"`
	Version string `json:"version"`
	Bucket  string `json:"bucket,omitempty"`
	Held    bool   `json:"held,omitempty"`
}

// Snapshot is the installed-app set at a point in time.
type Snapshot struct {
	ID          string     `json:"id"`
	Timestamp   time.Time  `json:"timestamp"`
	Description string     `json:"description,omitempty"`
	Trigger     Trigger    `json:"trigger"`
	Apps        []AppState `json:"apps"`
}

// Capture builds a snapshot from the current installed-app listing. Apps
// are sorted by name so equal states produce equal snapshots.
func Capture(apps []scoop.InstalledApp, trigger Trigger, description string) *Snapshot {
	snap := &Snapshot{
		ID:          time.Now().Format("20060102-150405"),
		Timestamp:   time.Now(),
		Description: description,
		Trigger:     trigger,
		Apps:        make([]AppState, 0, len(apps)),
	}

	for _, app := range apps {
		snap.Apps = append(snap.Apps, AppState{
			Name:    app.Name,
			Version: app.Version,
			Bucket:  app.Bucket,
			Held:    app.Held,
		})
	}
	sort.Slice(snap.Apps, func(i, j int) bool { return snap.Apps[i].Name < snap.Apps[j].Name })

	return snap
}

// FormatTime returns a human-readable timestamp.
func (s *Snapshot) FormatTime() string {
	return s.Timestamp.Format("2006-01-02 15:04:05")
}

// Lookup returns the captured state of one app, or nil.
func (s *Snapshot) Lookup(name string) *AppState {
	for i := range s.Apps {
		if s.Apps[i].Name == name {
			return &s.Apps[i]
		}
	}
	return nil
}

// Summary returns a one-line description of the snapshot.
func (s *Snapshot) Summary() string {
	desc := s.Description
	if desc == "" {
		desc = string(s.Trigger)
	}
	return fmt.Sprintf("%s - %s (%d apps)", s.ID, desc, len(s.Apps))
}

// Open opens the snapshot store at the default path.
func Open() (*Store, error) {
	if err := config.EnsureDataDir(); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}
	return OpenPath(config.SnapshotPath())
}

package snapshot

import (
	"fmt"
	"sort"
	"strings"
)

// ChangeType classifies one app change between two snapshots.
type ChangeType string

const (
	ChangeAdded      ChangeType = "added"
	ChangeRemoved    ChangeType = "removed"
	ChangeUpgraded   ChangeType = "upgraded"
	ChangeDowngraded ChangeType = "downgraded"
)

// Change is a single app difference between two snapshots.
type Change struct {
	Type       ChangeType `json:"type"`
	App        string     `json:"app"`
	Bucket     string     `json:"bucket,omitempty"`
	OldVersion string     `json:"old_version,omitempty"`
	NewVersion string     `json:"new_version,omitempty"`
}

// String returns a human-readable description of the change.
func (c Change) String() string {
	switch c.Type {
	case ChangeAdded:
		return fmt.Sprintf("+ %s (%s)", c.App, c.NewVersion)
	case ChangeRemoved:
		return fmt.Sprintf("- %s (%s)", c.App, c.OldVersion)
	case ChangeUpgraded:
		return fmt.Sprintf("^ %s: %s -> %s", c.App, c.OldVersion, c.NewVersion)
	case ChangeDowngraded:
		return fmt.Sprintf("v %s: %s -> %s", c.App, c.OldVersion, c.NewVersion)
	default:
		return fmt.Sprintf("? %s", c.App)
	}
}

// Diff is the set of changes from one snapshot to another.
type Diff struct {
	From    string   `json:"from"`
	To      string   `json:"to"`
	Changes []Change `json:"changes"`
}

// IsEmpty reports whether the snapshots are identical.
func (d *Diff) IsEmpty() bool {
	return len(d.Changes) == 0
}

// ByType returns the changes of one type, in change order.
func (d *Diff) ByType(t ChangeType) []Change {
	var result []Change
	for _, c := range d.Changes {
		if c.Type == t {
			result = append(result, c)
		}
	}
	return result
}

// Summary returns a one-line overview of the diff.
func (d *Diff) Summary() string {
	if d.IsEmpty() {
		return "No changes"
	}

	var parts []string
	if n := len(d.ByType(ChangeAdded)); n > 0 {
		parts = append(parts, fmt.Sprintf("+%d added", n))
	}
	if n := len(d.ByType(ChangeRemoved)); n > 0 {
		parts = append(parts, fmt.Sprintf("-%d removed", n))
	}
	if n := len(d.ByType(ChangeUpgraded)); n > 0 {
		parts = append(parts, fmt.Sprintf("^%d upgraded", n))
	}
	if n := len(d.ByType(ChangeDowngraded)); n > 0 {
		parts = append(parts, fmt.Sprintf("v%d downgraded", n))
	}
	return strings.Join(parts, ", ")
}

// Compare computes the changes from the older snapshot to the newer one.
// Version ordering is judged lexically by numeric segment, which matches
// how Scoop sorts version directories.
func Compare(from, to *Snapshot) *Diff {
	diff := &Diff{
		From:    from.ID,
		To:      to.ID,
		Changes: []Change{},
	}

	fromApps := make(map[string]AppState, len(from.Apps))
	for _, app := range from.Apps {
		fromApps[app.Name] = app
	}
	toApps := make(map[string]AppState, len(to.Apps))
	for _, app := range to.Apps {
		toApps[app.Name] = app
	}

	names := make([]string, 0, len(fromApps)+len(toApps))
	seen := make(map[string]bool)
	for name := range fromApps {
		names = append(names, name)
		seen[name] = true
	}
	for name := range toApps {
		if !seen[name] {
			names = append(names, name)
		}
	}
	sort.Strings(names)

	for _, name := range names {
		old, inFrom := fromApps[name]
		cur, inTo := toApps[name]

		switch {
		case !inFrom:
			diff.Changes = append(diff.Changes, Change{
				Type:       ChangeAdded,
				App:        name,
				Bucket:     cur.Bucket,
				NewVersion: cur.Version,
			})
		case !inTo:
			diff.Changes = append(diff.Changes, Change{
				Type:       ChangeRemoved,
				App:        name,
				Bucket:     old.Bucket,
				OldVersion: old.Version,
			})
		case old.Version != cur.Version:
			changeType := ChangeUpgraded
			if compareVersions(cur.Version, old.Version) < 0 {
				changeType = ChangeDowngraded
			}
			diff.Changes = append(diff.Changes, Change{
				Type:       changeType,
				App:        name,
				Bucket:     cur.Bucket,
				OldVersion: old.Version,
				NewVersion: cur.Version,
			})
		}
	}

	return diff
}

// compareVersions orders two dotted version strings segment by segment,
// numerically where both segments are numeric, lexically otherwise.
func compareVersions(a, b string) int {
	as := strings.Split(a, ".")
	bs := strings.Split(b, ".")

	for i := 0; i < len(as) || i < len(bs); i++ {
		var sa, sb string
		if i < len(as) {
			sa = as[i]
		}
		if i < len(bs) {
			sb = bs[i]
		}
		if sa == sb {
			continue
		}

		na, aNum := atoi(sa)
		nb, bNum := atoi(sb)
		if aNum && bNum {
			if na != nb {
				if na < nb {
					return -1
				}
				return 1
			}
			continue
		}
		if sa < sb {
			return -1
		}
		return 1
	}
	return 0
}

func atoi(s string) (int, bool) {
	n := 0
	if s == "" {
		return 0, false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0, false
		}
		n = n*10 + int(r-'0')
	}
	return n, true
}

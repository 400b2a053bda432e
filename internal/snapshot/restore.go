package snapshot

import (
	"fmt"
	"strings"
)

// InstallTarget is one app the restore needs installed, pinned to the
// captured version.
type InstallTarget struct {
	Name    string `json:"name"`
	Version string `json:"version"`
	Bucket  string `json:"bucket,omitempty"`
}

// RestorePlan lists the operations that bring the current state back to a
// snapshot. Apps whose version drifted are reinstalled pinned;
// held state is left alone.
type RestorePlan struct {
	Target      *Snapshot       `json:"-"`
	Diff        *Diff           `json:"diff"`
	ToInstall   []InstallTarget `json:"to_install"`
	ToUninstall []string        `json:"to_uninstall"`
}

// IsEmpty reports whether the current state already matches the target.
func (p *RestorePlan) IsEmpty() bool {
	return len(p.ToInstall) == 0 && len(p.ToUninstall) == 0
}

// Summary returns a one-line overview of the plan.
func (p *RestorePlan) Summary() string {
	if p.IsEmpty() {
		return "No changes needed"
	}

	var parts []string
	if n := len(p.ToInstall); n > 0 {
		parts = append(parts, fmt.Sprintf("%d to install", n))
	}
	if n := len(p.ToUninstall); n > 0 {
		parts = append(parts, fmt.Sprintf("%d to remove", n))
	}
	return strings.Join(parts, ", ")
}

// PlanRestore computes the plan that turns the current state into the
// target snapshot. current is a capture of the present installed set.
func PlanRestore(target, current *Snapshot) *RestorePlan {
	// Diffing current against target makes "added" mean "missing from
	// the current state", which is exactly what needs installing.
	diff := Compare(current, target)

	plan := &RestorePlan{
		Target: target,
		Diff:   diff,
	}

	for _, change := range diff.Changes {
		switch change.Type {
		case ChangeAdded, ChangeUpgraded, ChangeDowngraded:
			bucket := change.Bucket
			if bucket == "unknown" {
				bucket = ""
			}
			plan.ToInstall = append(plan.ToInstall, InstallTarget{
				Name:    change.App,
				Version: change.NewVersion,
				Bucket:  bucket,
			})
		case ChangeRemoved:
			plan.ToUninstall = append(plan.ToUninstall, change.App)
		}
	}

	return plan
}

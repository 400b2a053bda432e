package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/mos1128/scoop-easy/internal/snapshot"
)

// AttachSnapshots enables the snapshot operations. Without a store every
// snapshot operation fails with ErrSnapshotsDisabled.
func (s *Service) AttachSnapshots(store *snapshot.Store) {
	s.snapshots = store
}

// ErrSnapshotsDisabled is returned when no snapshot store is attached.
var ErrSnapshotsDisabled = fmt.Errorf("snapshot store is not available")

func (s *Service) snapshotStore() (*snapshot.Store, error) {
	if s.snapshots == nil {
		return nil, ErrSnapshotsDisabled
	}
	return s.snapshots, nil
}

// CreateSnapshot captures the current installed-app set and persists it.
func (s *Service) CreateSnapshot(ctx context.Context, description string) (*snapshot.Snapshot, error) {
	store, err := s.snapshotStore()
	if err != nil {
		return nil, err
	}

	apps, err := s.refreshApps(ctx)
	if err != nil {
		return nil, err
	}

	snap := snapshot.Capture(apps, snapshot.TriggerManual, description)
	if err := store.Save(snap); err != nil {
		return nil, err
	}
	return snap, nil
}

// Snapshots returns stored snapshots, newest first.
func (s *Service) Snapshots(limit int) ([]snapshot.Snapshot, error) {
	store, err := s.snapshotStore()
	if err != nil {
		return nil, err
	}
	return store.List(limit)
}

// Snapshot returns one stored snapshot by ID.
func (s *Service) Snapshot(id string) (*snapshot.Snapshot, error) {
	store, err := s.snapshotStore()
	if err != nil {
		return nil, err
	}
	return store.Get(id)
}

// DeleteSnapshot removes one stored snapshot.
func (s *Service) DeleteSnapshot(id string) error {
	store, err := s.snapshotStore()
	if err != nil {
		return err
	}
	return store.Delete(id)
}

// DiffSnapshot reports what changed between a stored snapshot and the
// current installed-app set.
func (s *Service) DiffSnapshot(ctx context.Context, id string) (*snapshot.Diff, error) {
	store, err := s.snapshotStore()
	if err != nil {
		return nil, err
	}

	target, err := store.Get(id)
	if err != nil {
		return nil, err
	}
	apps, err := s.refreshApps(ctx)
	if err != nil {
		return nil, err
	}

	current := snapshot.Capture(apps, snapshot.TriggerManual, "")
	return snapshot.Compare(target, current), nil
}

// PlanRestore computes the operations needed to bring the current state
// back to a stored snapshot, without applying them.
func (s *Service) PlanRestore(ctx context.Context, id string) (*snapshot.RestorePlan, error) {
	store, err := s.snapshotStore()
	if err != nil {
		return nil, err
	}

	target, err := store.Get(id)
	if err != nil {
		return nil, err
	}
	apps, err := s.refreshApps(ctx)
	if err != nil {
		return nil, err
	}

	current := snapshot.Capture(apps, snapshot.TriggerRestore, "pre-restore state")
	return snapshot.PlanRestore(target, current), nil
}

// RestoreSnapshot applies a restore plan: missing or drifted apps are
// reinstalled pinned to the captured version, apps absent from the
// snapshot are uninstalled. The pre-restore state is saved first so the
// restore itself can be undone. Partial failure stops at the first error;
// everything already applied stays applied.
func (s *Service) RestoreSnapshot(ctx context.Context, id string) (*snapshot.RestorePlan, error) {
	store, err := s.snapshotStore()
	if err != nil {
		return nil, err
	}

	target, err := store.Get(id)
	if err != nil {
		return nil, err
	}
	apps, err := s.refreshApps(ctx)
	if err != nil {
		return nil, err
	}

	current := snapshot.Capture(apps, snapshot.TriggerRestore, "before restore of "+id)
	plan := snapshot.PlanRestore(target, current)
	if plan.IsEmpty() {
		return plan, nil
	}

	if err := store.Save(current); err != nil {
		return nil, err
	}

	names := make([]string, 0, len(plan.ToInstall)+len(plan.ToUninstall))
	for _, t := range plan.ToInstall {
		names = append(names, t.Name)
	}
	names = append(names, plan.ToUninstall...)
	release := s.locks.acquire(names...)
	defer release()

	for _, t := range plan.ToInstall {
		// The version pin wins over the bucket hint; install targets
		// cannot carry both.
		if _, err := s.client.Install(ctx, t.Name, "", t.Version); err != nil {
			return plan, fmt.Errorf("restore %s@%s: %w", t.Name, t.Version, err)
		}
	}
	if len(plan.ToUninstall) > 0 {
		if _, err := s.client.Uninstall(ctx, plan.ToUninstall); err != nil {
			return plan, fmt.Errorf("restore uninstall %s: %w", strings.Join(plan.ToUninstall, ", "), err)
		}
	}

	s.afterMutation(ctx)
	return plan, nil
}

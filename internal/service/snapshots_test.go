package service

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/mos1128/scoop-easy/internal/snapshot"
)

func attachTestSnapshots(t *testing.T, svc *Service) {
	t.Helper()

	store, err := snapshot.OpenPath(filepath.Join(t.TempDir(), "snapshots.db"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { store.Close() })
	svc.AttachSnapshots(store)
}

func TestSnapshotsRequireStore(t *testing.T) {
	svc := newTestService(t, newScriptedRunner(nil), nil)

	if _, err := svc.Snapshots(0); !errors.Is(err, ErrSnapshotsDisabled) {
		t.Errorf("expected ErrSnapshotsDisabled, got %v", err)
	}
	if _, err := svc.CreateSnapshot(context.Background(), ""); !errors.Is(err, ErrSnapshotsDisabled) {
		t.Errorf("expected ErrSnapshotsDisabled, got %v", err)
	}
}

func TestCreateAndDiffSnapshot(t *testing.T) {
	runner := newScriptedRunner(map[string]string{"list": listFixture, "status": ""})
	svc := newTestService(t, runner, nil)
	attachTestSnapshots(t, svc)

	snap, err := svc.CreateSnapshot(context.Background(), "baseline")
	if err != nil {
		t.Fatalf("CreateSnapshot() error: %v", err)
	}
	if len(snap.Apps) != 1 || snap.Apps[0].Name != "git" {
		t.Fatalf("unexpected capture: %+v", snap.Apps)
	}
	if snap.Description != "baseline" {
		t.Errorf("unexpected description %q", snap.Description)
	}

	// Nothing changed, so the diff is empty.
	diff, err := svc.DiffSnapshot(context.Background(), snap.ID)
	if err != nil {
		t.Fatalf("DiffSnapshot() error: %v", err)
	}
	if !diff.IsEmpty() {
		t.Errorf("expected empty diff, got %v", diff.Changes)
	}

	listed, err := svc.Snapshots(0)
	if err != nil {
		t.Fatal(err)
	}
	if len(listed) != 1 || listed[0].ID != snap.ID {
		t.Errorf("unexpected listing: %v", listed)
	}
}

func TestRestoreSnapshotAppliesPlan(t *testing.T) {
	runner := newScriptedRunner(map[string]string{"list": listFixture, "status": ""})
	svc := newTestService(t, runner, nil)
	attachTestSnapshots(t, svc)

	// The stored snapshot wants git at an older version plus an app that
	// is no longer installed; the current state also has an extra app.
	target := &snapshot.Snapshot{
		ID:      "20240101-000000",
		Trigger: snapshot.TriggerManual,
		Apps: []snapshot.AppState{
			{Name: "git", Version: "2.43.0", Bucket: "main"},
			{Name: "ripgrep", Version: "14.1.0", Bucket: "main"},
		},
	}
	if err := svc.snapshots.Save(target); err != nil {
		t.Fatal(err)
	}

	runner.outputs["install"] = "ok"
	runner.outputs["uninstall"] = "ok"

	plan, err := svc.RestoreSnapshot(context.Background(), target.ID)
	if err != nil {
		t.Fatalf("RestoreSnapshot() error: %v", err)
	}
	if len(plan.ToInstall) != 2 {
		t.Errorf("expected git pinned and ripgrep reinstalled, got %v", plan.ToInstall)
	}
	// listFixture has only git, so nothing needs uninstalling.
	if len(plan.ToUninstall) != 0 {
		t.Errorf("unexpected uninstalls: %v", plan.ToUninstall)
	}
	if got := runner.count("install"); got != 2 {
		t.Errorf("expected 2 install invocations, got %d", got)
	}

	// The pre-restore state was saved as its own snapshot.
	listed, err := svc.Snapshots(0)
	if err != nil {
		t.Fatal(err)
	}
	if len(listed) != 2 {
		t.Errorf("expected the pre-restore capture to be stored, got %d snapshots", len(listed))
	}
}

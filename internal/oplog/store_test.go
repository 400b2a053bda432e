package oplog

import (
	"path/filepath"
	"testing"
	"time"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()

	store, err := OpenPath(filepath.Join(t.TempDir(), "oplog.db"))
	if err != nil {
		t.Fatalf("OpenPath() error: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	return store
}

func TestAppendAndCount(t *testing.T) {
	store := openTestStore(t)

	if err := store.Append(NewEntry("install", "scoop install git", true, "ok")); err != nil {
		t.Fatalf("Append() error: %v", err)
	}

	count, err := store.Count()
	if err != nil {
		t.Fatalf("Count() error: %v", err)
	}
	if count != 1 {
		t.Errorf("expected count 1, got %d", count)
	}
}

func TestListNewestFirst(t *testing.T) {
	store := openTestStore(t)

	base := time.Now()
	for i, op := range []string{"install", "update", "uninstall"} {
		entry := NewEntry(op, "scoop "+op, true, "")
		entry.Time = base.Add(time.Duration(i) * time.Second)
		if err := store.Append(entry); err != nil {
			t.Fatal(err)
		}
	}

	entries, err := store.List(0)
	if err != nil {
		t.Fatalf("List() error: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(entries))
	}
	if entries[0].Operation != "uninstall" || entries[2].Operation != "install" {
		t.Errorf("entries not newest first: %v", entries)
	}
}

func TestAppendSameTimestampKeepsBoth(t *testing.T) {
	store := openTestStore(t)

	at := time.Now()
	for _, op := range []string{"install", "update"} {
		entry := NewEntry(op, "scoop "+op, true, "")
		entry.Time = at
		if err := store.Append(entry); err != nil {
			t.Fatal(err)
		}
	}

	count, err := store.Count()
	if err != nil {
		t.Fatalf("Count() error: %v", err)
	}
	if count != 2 {
		t.Errorf("entries sharing a timestamp must not collide, got count %d", count)
	}
}

func TestListOrdersWholeSecondsBeforeFractions(t *testing.T) {
	store := openTestStore(t)

	whole := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	for _, e := range []struct {
		op string
		at time.Time
	}{
		{"install", whole},
		{"update", whole.Add(500 * time.Millisecond)},
	} {
		entry := NewEntry(e.op, "scoop "+e.op, true, "")
		entry.Time = e.at
		if err := store.Append(entry); err != nil {
			t.Fatal(err)
		}
	}

	entries, err := store.List(0)
	if err != nil {
		t.Fatalf("List() error: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].Operation != "update" || entries[1].Operation != "install" {
		t.Errorf("sub-second entry must sort after the whole second: %v", entries)
	}
}

func TestListLimit(t *testing.T) {
	store := openTestStore(t)

	base := time.Now()
	for i := 0; i < 10; i++ {
		entry := NewEntry("search", "scoop search", true, "")
		entry.Time = base.Add(time.Duration(i) * time.Millisecond)
		if err := store.Append(entry); err != nil {
			t.Fatal(err)
		}
	}

	entries, err := store.List(4)
	if err != nil {
		t.Fatalf("List() error: %v", err)
	}
	if len(entries) != 4 {
		t.Errorf("expected 4 entries, got %d", len(entries))
	}
}

func TestRecordFailedOperation(t *testing.T) {
	store := openTestStore(t)

	store.Record("install", "scoop install nonexistent", false, "Couldn't find manifest")

	entries, err := store.List(0)
	if err != nil {
		t.Fatalf("List() error: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	if entries[0].Success {
		t.Error("expected failure recorded")
	}
	if entries[0].Message != "Couldn't find manifest" {
		t.Errorf("unexpected message %q", entries[0].Message)
	}
}

func TestClear(t *testing.T) {
	store := openTestStore(t)

	for i := 0; i < 3; i++ {
		entry := NewEntry("hold", "scoop hold git", true, "")
		entry.Time = time.Now().Add(time.Duration(i) * time.Millisecond)
		if err := store.Append(entry); err != nil {
			t.Fatal(err)
		}
	}

	if err := store.Clear(); err != nil {
		t.Fatalf("Clear() error: %v", err)
	}

	count, err := store.Count()
	if err != nil {
		t.Fatal(err)
	}
	if count != 0 {
		t.Errorf("expected empty log, got %d entries", count)
	}

	// The log stays usable after clearing.
	if err := store.Append(NewEntry("install", "scoop install git", true, "")); err != nil {
		t.Fatalf("Append() after Clear() error: %v", err)
	}
}

func TestReopenPersists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "oplog.db")

	store, err := OpenPath(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := store.Append(NewEntry("install", "scoop install git", true, "done")); err != nil {
		t.Fatal(err)
	}
	store.Close()

	reopened, err := OpenPath(path)
	if err != nil {
		t.Fatal(err)
	}
	defer reopened.Close()

	entries, err := reopened.List(0)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 || entries[0].Message != "done" {
		t.Errorf("unexpected entries after reopen: %v", entries)
	}
}

package scoop

import (
	"context"
	"strings"
	"sync"
	"testing"
)

// fakeRunner returns canned output per leading argument.
type fakeRunner struct {
	mu       sync.Mutex
	outputs  map[string]string
	exitCode int
	calls    [][]string
}

func newFakeRunner(outputs map[string]string) *fakeRunner {
	return &fakeRunner{outputs: outputs}
}

func (r *fakeRunner) Run(_ context.Context, args ...string) (string, int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, args)
	return r.outputs[args[0]], r.exitCode, nil
}

func (r *fakeRunner) CommandLine(args ...string) string {
	return "scoop " + strings.Join(args, " ")
}

func (r *fakeRunner) callCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.calls)
}

func (r *fakeRunner) lastCall() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.calls) == 0 {
		return nil
	}
	return r.calls[len(r.calls)-1]
}

// captureRecorder collects log records.
type captureRecorder struct {
	mu      sync.Mutex
	records []recordedOp
}

type recordedOp struct {
	operation string
	command   string
	success   bool
	message   string
}

func (c *captureRecorder) Record(operation, command string, success bool, message string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.records = append(c.records, recordedOp{operation, command, success, message})
}

func (c *captureRecorder) all() []recordedOp {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]recordedOp(nil), c.records...)
}

func TestListInstalledMergesUpdates(t *testing.T) {
	runner := newFakeRunner(map[string]string{
		"list": `Installed apps:

Name  Version  Source  Updated
----  -------  ------  -------
git   2.43.0   main    2024-03-01 10:00:00
7zip  24.08    main    2024-03-01 10:00:00
`,
		"status": `Name  Installed Version  Latest Version
----  -----------------  --------------
git   2.43.0             2.44.0
`,
	})
	rec := &captureRecorder{}
	client := NewClient(runner, nil, rec)

	apps, err := client.ListInstalled(context.Background())
	if err != nil {
		t.Fatalf("ListInstalled() error: %v", err)
	}
	if len(apps) != 2 {
		t.Fatalf("expected 2 apps, got %d", len(apps))
	}

	if !apps[0].HasUpdate || apps[0].LatestVersion != "2.44.0" {
		t.Errorf("expected git update to 2.44.0, got %+v", apps[0])
	}
	if apps[1].HasUpdate {
		t.Errorf("7zip should have no update: %+v", apps[1])
	}

	// list and status each produce one log record.
	records := rec.all()
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}
	ops := map[string]bool{}
	for _, r := range records {
		if !r.success {
			t.Errorf("expected success record, got %+v", r)
		}
		ops[r.operation] = true
	}
	if !ops[OpListApps] || !ops[OpCheckUpdates] {
		t.Errorf("unexpected operations recorded: %v", ops)
	}
}

func TestInstallTarget(t *testing.T) {
	tests := []struct {
		name    string
		bucket  string
		version string
		want    string
	}{
		{"git", "", "", "git"},
		{"git", "main", "", "main/git"},
		{"python", "", "3.11.8", "python@3.11.8"},
		// Bucket wins when both are set.
		{"git", "extras", "2.40.0", "extras/git"},
	}

	for _, tt := range tests {
		runner := newFakeRunner(map[string]string{"install": "ok"})
		client := NewClient(runner, nil, nil)

		if _, err := client.Install(context.Background(), tt.name, tt.bucket, tt.version); err != nil {
			t.Fatalf("Install() error: %v", err)
		}

		call := runner.lastCall()
		if len(call) != 2 || call[0] != "install" || call[1] != tt.want {
			t.Errorf("Install(%q, %q, %q) invoked %v, want [install %s]",
				tt.name, tt.bucket, tt.version, call, tt.want)
		}
	}
}

func TestInvokeRecordsFailure(t *testing.T) {
	runner := newFakeRunner(map[string]string{"uninstall": "ERROR 'git' isn't installed."})
	runner.exitCode = 1
	rec := &captureRecorder{}
	client := NewClient(runner, nil, rec)

	_, err := client.Uninstall(context.Background(), []string{"git"})
	if err == nil {
		t.Fatal("expected error for nonzero exit")
	}
	if !strings.Contains(err.Error(), "exit status 1") {
		t.Errorf("error should carry exit code: %v", err)
	}

	records := rec.all()
	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}
	if records[0].success {
		t.Error("failure should produce an unsuccessful record")
	}
	if !strings.Contains(records[0].message, "isn't installed") {
		t.Errorf("record should carry output excerpt: %q", records[0].message)
	}
	if records[0].operation != OpUninstall {
		t.Errorf("expected operation %q, got %q", OpUninstall, records[0].operation)
	}
}

func TestSearchBackends(t *testing.T) {
	scoopRunner := newFakeRunner(map[string]string{
		"search": `Name  Version  Source
----  -------  ------
git   2.44.0   main
`,
	})
	helperRunner := newFakeRunner(map[string]string{
		"git": `'main' bucket:
    git (2.44.0)
`,
	})
	client := NewClient(scoopRunner, helperRunner, nil)

	// Builtin backend goes through the scoop runner.
	results, err := client.Search(context.Background(), "git", "scoop")
	if err != nil {
		t.Fatalf("Search() error: %v", err)
	}
	if len(results) != 1 || results[0].Name != "git" {
		t.Errorf("unexpected results: %v", results)
	}
	if got := scoopRunner.lastCall(); len(got) != 2 || got[0] != "search" {
		t.Errorf("expected scoop search invocation, got %v", got)
	}
	if helperRunner.callCount() != 0 {
		t.Error("helper runner should not be used for builtin search")
	}

	// scoop-search backend goes through the helper with the bare query.
	results, err = client.Search(context.Background(), "git", SearchBackendScoopSearch)
	if err != nil {
		t.Fatalf("Search() error: %v", err)
	}
	if len(results) != 1 || results[0].Bucket != "main" {
		t.Errorf("unexpected results: %v", results)
	}
	if got := helperRunner.lastCall(); len(got) != 1 || got[0] != "git" {
		t.Errorf("expected bare query invocation, got %v", got)
	}
}

func TestVersionsFiltersCandidates(t *testing.T) {
	runner := newFakeRunner(map[string]string{
		"search": `Name       Version  Source
----       -------  ------
python     3.12.2   main
python310  3.10.11  versions
ipython    8.22.0   extras
`,
	})
	client := NewClient(runner, nil, nil)

	candidates, err := client.Versions(context.Background(), "python", "scoop")
	if err != nil {
		t.Fatalf("Versions() error: %v", err)
	}
	if len(candidates) != 1 || candidates[0].Name != "python" {
		t.Errorf("unexpected candidates: %v", candidates)
	}
}

func TestAppInfoFallsBackToCat(t *testing.T) {
	runner := newFakeRunner(map[string]string{
		"cat": `{"version": "2.44.0", "homepage": "https://git-scm.com"}`,
	})
	client := NewClient(runner, nil, nil)
	client.SetAppsDir(t.TempDir())

	info, err := client.AppInfo(context.Background(), "git")
	if err != nil {
		t.Fatalf("AppInfo() error: %v", err)
	}
	if info["version"] != "2.44.0" {
		t.Errorf("unexpected manifest: %v", info)
	}
}

func TestAppInfoNonJSONOutput(t *testing.T) {
	runner := newFakeRunner(map[string]string{"cat": "not json at all"})
	client := NewClient(runner, nil, nil)
	client.SetAppsDir(t.TempDir())

	info, err := client.AppInfo(context.Background(), "git")
	if err != nil {
		t.Fatalf("AppInfo() error: %v", err)
	}
	if info["raw"] != "not json at all" {
		t.Errorf("expected raw fallback, got %v", info)
	}
}

func TestExcerptTruncatesLongOutput(t *testing.T) {
	long := strings.Repeat("x", maxMessageLen+500)
	got := excerpt(long)
	if len(got) != maxMessageLen {
		t.Errorf("expected %d chars, got %d", maxMessageLen, len(got))
	}
	if excerpt("  short  ") != "short" {
		t.Error("excerpt should trim whitespace")
	}
}

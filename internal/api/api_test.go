package api

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mos1128/scoop-easy/internal/config"
	"github.com/mos1128/scoop-easy/internal/oplog"
	"github.com/mos1128/scoop-easy/internal/service"
	"github.com/mos1128/scoop-easy/internal/snapshot"
	"github.com/mos1128/scoop-easy/pkg/scoop"
)

// stubRunner answers each leading argument with canned output.
type stubRunner struct {
	mu      sync.Mutex
	outputs map[string]string
	exit    int
	counts  map[string]int
}

func newStubRunner(outputs map[string]string) *stubRunner {
	return &stubRunner{outputs: outputs, counts: make(map[string]int)}
}

func (r *stubRunner) Run(_ context.Context, args ...string) (string, int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.counts[args[0]]++
	return r.outputs[args[0]], r.exit, nil
}

func (r *stubRunner) CommandLine(args ...string) string {
	return "scoop " + strings.Join(args, " ")
}

func (r *stubRunner) count(command string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.counts[command]
}

func setupTestServer(t *testing.T, runner *stubRunner) *Server {
	t.Helper()

	logs, err := oplog.OpenPath(filepath.Join(t.TempDir(), "oplog.db"))
	require.NoError(t, err)
	t.Cleanup(func() { logs.Close() })

	client := scoop.NewClient(runner, nil, logs)
	client.SetAppsDir(t.TempDir())
	svc := service.New(client, logs, nil)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewServer(svc, Config{}, logger)
}

func doJSON(t *testing.T, server *Server, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	server.ServeHTTP(w, req)
	return w
}

func TestHealth(t *testing.T) {
	server := setupTestServer(t, newStubRunner(nil))

	w := doJSON(t, server, "GET", "/api/health", "")
	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]string
	require.NoError(t, json.NewDecoder(w.Body).Decode(&response))
	assert.Equal(t, "ok", response["status"])
}

func TestListApps(t *testing.T) {
	runner := newStubRunner(map[string]string{
		"list": `Installed apps:

Name  Version  Source  Updated
----  -------  ------  -------
git   2.43.0   main    2024-03-01 10:00:00
`,
		"status": `git   2.43.0   2.44.0
`,
	})
	server := setupTestServer(t, runner)

	w := doJSON(t, server, "GET", "/api/apps", "")
	assert.Equal(t, http.StatusOK, w.Code)

	var apps []scoop.InstalledApp
	require.NoError(t, json.NewDecoder(w.Body).Decode(&apps))
	require.Len(t, apps, 1)
	assert.Equal(t, "git", apps[0].Name)
	assert.True(t, apps[0].HasUpdate)
	assert.Equal(t, "2.44.0", apps[0].LatestVersion)
}

func TestInstall(t *testing.T) {
	runner := newStubRunner(map[string]string{
		"install": "'git' (2.44.0) was installed successfully!",
		"list":    "",
		"status":  "",
	})
	server := setupTestServer(t, runner)

	w := doJSON(t, server, "POST", "/api/apps/install", `{"name": "git"}`)
	assert.Equal(t, http.StatusOK, w.Code)

	var result opResult
	require.NoError(t, json.NewDecoder(w.Body).Decode(&result))
	assert.True(t, result.Success)
	assert.Contains(t, result.Message, "installed successfully")
}

func TestInstallRejectsInvalidNameBeforeSubprocess(t *testing.T) {
	runner := newStubRunner(nil)
	server := setupTestServer(t, runner)

	w := doJSON(t, server, "POST", "/api/apps/install", `{"name": "git; rm -rf /"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var result opResult
	require.NoError(t, json.NewDecoder(w.Body).Decode(&result))
	assert.False(t, result.Success)
	assert.Contains(t, result.Message, "invalid app name")

	assert.Zero(t, runner.count("install"), "no subprocess may run for a rejected request")
}

func TestInstallMalformedBody(t *testing.T) {
	server := setupTestServer(t, newStubRunner(nil))

	w := doJSON(t, server, "POST", "/api/apps/install", `{not json`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestBatchUpdate(t *testing.T) {
	runner := newStubRunner(map[string]string{
		"update": "Updating 2 apps",
		"list":   "",
		"status": "",
	})
	server := setupTestServer(t, runner)

	w := doJSON(t, server, "POST", "/api/apps/update", `{"apps": ["git", "7zip"]}`)
	assert.Equal(t, http.StatusOK, w.Code)

	var result opResult
	require.NoError(t, json.NewDecoder(w.Body).Decode(&result))
	assert.True(t, result.Success)
}

func TestBatchRequiresApps(t *testing.T) {
	server := setupTestServer(t, newStubRunner(nil))

	w := doJSON(t, server, "POST", "/api/apps/update", `{"apps": []}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHoldSingleApp(t *testing.T) {
	runner := newStubRunner(map[string]string{
		"hold":   "git is now held",
		"unhold": "git is no longer held",
		"list":   "",
		"status": "",
	})
	server := setupTestServer(t, runner)

	w := doJSON(t, server, "POST", "/api/apps/git/hold", "")
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, server, "DELETE", "/api/apps/git/hold", "")
	assert.Equal(t, http.StatusOK, w.Code)

	assert.Equal(t, 1, runner.count("hold"))
	assert.Equal(t, 1, runner.count("unhold"))
}

func TestResetRequiresMode(t *testing.T) {
	server := setupTestServer(t, newStubRunner(nil))

	w := doJSON(t, server, "POST", "/api/apps/git/reset", `{}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var result opResult
	require.NoError(t, json.NewDecoder(w.Body).Decode(&result))
	assert.Contains(t, result.Message, "version or target_app")
}

func TestFailedCommandReportsOutput(t *testing.T) {
	runner := newStubRunner(map[string]string{
		"uninstall": "ERROR 'notinstalled' isn't installed.",
	})
	runner.exit = 1
	server := setupTestServer(t, runner)

	w := doJSON(t, server, "POST", "/api/apps/uninstall", `{"apps": ["notinstalled"]}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var result opResult
	require.NoError(t, json.NewDecoder(w.Body).Decode(&result))
	assert.False(t, result.Success)
	assert.Contains(t, result.Message, "isn't installed")
}

func TestSearch(t *testing.T) {
	runner := newStubRunner(map[string]string{
		"search": `Name  Version  Source
----  -------  ------
git   2.44.0   main
`,
	})
	server := setupTestServer(t, runner)

	w := doJSON(t, server, "GET", "/api/search?q=git", "")
	assert.Equal(t, http.StatusOK, w.Code)

	var results []scoop.SearchResult
	require.NoError(t, json.NewDecoder(w.Body).Decode(&results))
	require.Len(t, results, 1)
	assert.Equal(t, "git", results[0].Name)
}

func TestSearchRequiresQuery(t *testing.T) {
	server := setupTestServer(t, newStubRunner(nil))

	w := doJSON(t, server, "GET", "/api/search", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSearchEmptyResultsIsArray(t *testing.T) {
	runner := newStubRunner(map[string]string{"search": ""})
	server := setupTestServer(t, runner)

	w := doJSON(t, server, "GET", "/api/search?q=nomatch", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "[]", strings.TrimSpace(w.Body.String()))
}

func TestBuckets(t *testing.T) {
	runner := newStubRunner(map[string]string{
		"bucket": `Name  Source                                  Updated             Manifests
----  ------                                  -------             ---------
main  https://github.com/ScoopInstaller/Main  2024-03-01 10:00:00 1295
`,
	})
	server := setupTestServer(t, runner)

	w := doJSON(t, server, "GET", "/api/buckets", "")
	assert.Equal(t, http.StatusOK, w.Code)

	var buckets []scoop.Bucket
	require.NoError(t, json.NewDecoder(w.Body).Decode(&buckets))
	require.Len(t, buckets, 1)
	assert.Equal(t, "main", buckets[0].Name)
	assert.Equal(t, 1295, buckets[0].Manifests)
}

func TestAddBucketValidatesURL(t *testing.T) {
	server := setupTestServer(t, newStubRunner(nil))

	w := doJSON(t, server, "POST", "/api/buckets", `{"name": "extras", "url": "ftp://bad"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSettingsRoundtrip(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	server := setupTestServer(t, newStubRunner(nil))

	w := doJSON(t, server, "GET", "/api/settings", "")
	assert.Equal(t, http.StatusOK, w.Code)

	var settings config.Settings
	require.NoError(t, json.NewDecoder(w.Body).Decode(&settings))
	assert.Equal(t, config.SearchScoop, settings.SearchCommand)
	assert.False(t, settings.TurboMode)

	// Partial update touches only the named field.
	w = doJSON(t, server, "POST", "/api/settings", `{"turbo_mode": true}`)
	assert.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.NewDecoder(w.Body).Decode(&settings))
	assert.True(t, settings.TurboMode)
	assert.Equal(t, config.SearchScoop, settings.SearchCommand)

	// Unknown backends are rejected.
	w = doJSON(t, server, "POST", "/api/settings", `{"search_command": "apt"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSnapshotLifecycle(t *testing.T) {
	runner := newStubRunner(map[string]string{
		"list": `Installed apps:

Name  Version  Source  Updated
----  -------  ------  -------
git   2.43.0   main    2024-03-01 10:00:00
`,
		"status": "",
	})

	logs, err := oplog.OpenPath(filepath.Join(t.TempDir(), "oplog.db"))
	require.NoError(t, err)
	t.Cleanup(func() { logs.Close() })

	client := scoop.NewClient(runner, nil, logs)
	client.SetAppsDir(t.TempDir())
	svc := service.New(client, logs, nil)

	snapStore, err := snapshot.OpenPath(filepath.Join(t.TempDir(), "snapshots.db"))
	require.NoError(t, err)
	t.Cleanup(func() { snapStore.Close() })
	svc.AttachSnapshots(snapStore)

	server := NewServer(svc, Config{}, slog.New(slog.NewTextHandler(io.Discard, nil)))

	w := doJSON(t, server, "POST", "/api/snapshots", `{"description": "baseline"}`)
	require.Equal(t, http.StatusCreated, w.Code)

	var snap snapshot.Snapshot
	require.NoError(t, json.NewDecoder(w.Body).Decode(&snap))
	assert.Equal(t, "baseline", snap.Description)
	require.Len(t, snap.Apps, 1)

	w = doJSON(t, server, "GET", "/api/snapshots", "")
	assert.Equal(t, http.StatusOK, w.Code)
	var listed []snapshot.Snapshot
	require.NoError(t, json.NewDecoder(w.Body).Decode(&listed))
	assert.Len(t, listed, 1)

	// Unchanged state diffs empty.
	w = doJSON(t, server, "GET", "/api/snapshots/"+snap.ID+"/diff", "")
	assert.Equal(t, http.StatusOK, w.Code)
	var diff snapshot.Diff
	require.NoError(t, json.NewDecoder(w.Body).Decode(&diff))
	assert.Empty(t, diff.Changes)

	// Dry-run restore returns the plan without touching the CLI.
	w = doJSON(t, server, "POST", "/api/snapshots/"+snap.ID+"/restore", `{"dry_run": true}`)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Zero(t, runner.count("install"))

	w = doJSON(t, server, "DELETE", "/api/snapshots/"+snap.ID, "")
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, server, "GET", "/api/snapshots/"+snap.ID, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestLogsLimitAndClear(t *testing.T) {
	runner := newStubRunner(map[string]string{
		"hold":   "held",
		"list":   "",
		"status": "",
	})
	server := setupTestServer(t, runner)

	// Each hold records one entry plus the refresh pair.
	for _, app := range []string{"git", "7zip"} {
		w := doJSON(t, server, "POST", "/api/apps/"+app+"/hold", "")
		require.Equal(t, http.StatusOK, w.Code)
	}

	w := doJSON(t, server, "GET", "/api/logs?limit=2", "")
	assert.Equal(t, http.StatusOK, w.Code)

	var entries []oplog.Entry
	require.NoError(t, json.NewDecoder(w.Body).Decode(&entries))
	assert.Len(t, entries, 2)

	w = doJSON(t, server, "GET", "/api/logs?limit=bogus", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, server, "DELETE", "/api/logs", "")
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, server, "GET", "/api/logs", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "[]", strings.TrimSpace(w.Body.String()))
}

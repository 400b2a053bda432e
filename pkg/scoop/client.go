package scoop

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"
)

// Per-command-family timeouts. A timeout is a failure, never retried.
const (
	queryTimeout   = 120 * time.Second // list, status, hold, bucket list
	searchTimeout  = 60 * time.Second  // search, versions
	installTimeout = 300 * time.Second // install, reset, bucket add
	updateTimeout  = 600 * time.Second // update, uninstall
)

// maxMessageLen bounds the output excerpt kept in log entries.
const maxMessageLen = 4000

// Operation kinds recorded in the log, one per CLI invocation.
const (
	OpListApps     = "list apps"
	OpCheckUpdates = "check updates"
	OpListHeld     = "list held"
	OpInstall      = "install"
	OpUpdate       = "update"
	OpUninstall    = "uninstall"
	OpHold         = "hold"
	OpUnhold       = "unhold"
	OpReset        = "reset"
	OpListBuckets  = "list buckets"
	OpAddBucket    = "add bucket"
	OpRemoveBucket = "remove bucket"
	OpSearch       = "search"
	OpVersions     = "query versions"
	OpManifest     = "read manifest"
)

// SearchBackendScoopSearch selects the scoop-search helper binary instead
// of the slower builtin `scoop search`.
const SearchBackendScoopSearch = "scoop-search"

// Recorder receives exactly one record per CLI invocation, regardless of
// outcome. The operation log store implements this.
type Recorder interface {
	Record(operation, command string, success bool, message string)
}

// nopRecorder discards records.
type nopRecorder struct{}

func (nopRecorder) Record(string, string, bool, string) {}

// Client is the proxy to the Scoop CLI. Every logical operation maps to
// exactly one external command; success is classified strictly by exit
// code and failures are surfaced verbatim, never retried.
type Client struct {
	runner       Runner
	searchRunner Runner
	recorder     Recorder
	appsDir      string
}

// NewClient creates a Client using the given runners. searchRunner is
// used when the scoop-search backend is selected; pass nil to always use
// the builtin search. recorder may be nil.
func NewClient(runner, searchRunner Runner, recorder Recorder) *Client {
	if recorder == nil {
		recorder = nopRecorder{}
	}
	if searchRunner == nil {
		searchRunner = runner
	}
	return &Client{
		runner:       runner,
		searchRunner: searchRunner,
		recorder:     recorder,
		appsDir:      AppsDir(RootDir()),
	}
}

// SetAppsDir overrides the installed-apps directory (tests).
func (c *Client) SetAppsDir(dir string) {
	c.appsDir = dir
}

// AppsPath returns the directory holding installed app folders.
func (c *Client) AppsPath() string {
	return c.appsDir
}

// invoke runs one command through the runner, appends one log record and
// classifies the result by exit code. The returned output is the combined
// stdout and stderr.
func (c *Client) invoke(ctx context.Context, op string, timeout time.Duration, runner Runner, args ...string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	command := runner.CommandLine(args...)
	output, code, err := runner.Run(ctx, args...)

	switch {
	case err != nil:
		c.recorder.Record(op, command, false, excerpt(err.Error()+"\n"+output))
		if ctx.Err() == context.DeadlineExceeded {
			return output, fmt.Errorf("%s: command timed out after %s: %w", command, timeout, context.DeadlineExceeded)
		}
		return output, fmt.Errorf("%s: %w", command, err)
	case code != 0:
		c.recorder.Record(op, command, false, excerpt(output))
		return output, fmt.Errorf("%s: exit status %d: %s", command, code, excerpt(output))
	default:
		c.recorder.Record(op, command, true, excerpt(output))
		return output, nil
	}
}

// excerpt keeps the tail of command output for log messages.
func excerpt(s string) string {
	s = strings.TrimSpace(s)
	if len(s) > maxMessageLen {
		return s[len(s)-maxMessageLen:]
	}
	return s
}

// ListInstalled returns the installed apps with update availability
// merged in. `scoop list` and `scoop status` run concurrently; either
// producing unparseable output degrades to missing data, not an error.
func (c *Client) ListInstalled(ctx context.Context) ([]InstalledApp, error) {
	var (
		wg        sync.WaitGroup
		listOut   string
		statusOut string
		listErr   error
		statusErr error
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		listOut, listErr = c.invoke(ctx, OpListApps, queryTimeout, c.runner, "list")
	}()
	go func() {
		defer wg.Done()
		statusOut, statusErr = c.invoke(ctx, OpCheckUpdates, queryTimeout, c.runner, "status")
	}()
	wg.Wait()

	if listErr != nil {
		return nil, listErr
	}
	// A failed status check only costs the update flags.
	updates := map[string]string{}
	if statusErr == nil {
		updates = ParseStatus(statusOut)
	}

	apps := ParseList(listOut)
	for i := range apps {
		if latest, ok := updates[apps[i].Name]; ok {
			apps[i].LatestVersion = latest
			apps[i].HasUpdate = latest != apps[i].Version
		}
	}
	return apps, nil
}

// Held returns the set of held app names.
func (c *Client) Held(ctx context.Context) (map[string]bool, error) {
	out, err := c.invoke(ctx, OpListHeld, queryTimeout, c.runner, "hold")
	if err != nil {
		return nil, err
	}
	return ParseHeldList(out), nil
}

// Install installs one app, optionally pinned to a bucket or version.
func (c *Client) Install(ctx context.Context, name, bucket, version string) (string, error) {
	target := name
	switch {
	case bucket != "":
		target = bucket + "/" + name
	case version != "":
		target = name + "@" + version
	}
	return c.invoke(ctx, OpInstall, installTimeout, c.runner, "install", target)
}

// Update updates the named apps.
func (c *Client) Update(ctx context.Context, apps []string) (string, error) {
	return c.invoke(ctx, OpUpdate, updateTimeout, c.runner, append([]string{"update"}, apps...)...)
}

// Uninstall removes the named apps.
func (c *Client) Uninstall(ctx context.Context, apps []string) (string, error) {
	return c.invoke(ctx, OpUninstall, updateTimeout, c.runner, append([]string{"uninstall"}, apps...)...)
}

// Hold marks the named apps as held, excluding them from updates.
func (c *Client) Hold(ctx context.Context, apps []string) (string, error) {
	return c.invoke(ctx, OpHold, queryTimeout, c.runner, append([]string{"hold"}, apps...)...)
}

// Unhold releases the hold on the named apps.
func (c *Client) Unhold(ctx context.Context, apps []string) (string, error) {
	return c.invoke(ctx, OpUnhold, queryTimeout, c.runner, append([]string{"unhold"}, apps...)...)
}

// ResetVersion switches an app to an explicit installed version.
func (c *Client) ResetVersion(ctx context.Context, name, version string) (string, error) {
	return c.invoke(ctx, OpReset, installTimeout, c.runner, "reset", name+"@"+version)
}

// ResetTarget re-points shared shims at another installed app.
func (c *Client) ResetTarget(ctx context.Context, target string) (string, error) {
	return c.invoke(ctx, OpReset, installTimeout, c.runner, "reset", target)
}

// Buckets returns the configured buckets.
func (c *Client) Buckets(ctx context.Context) ([]Bucket, error) {
	out, err := c.invoke(ctx, OpListBuckets, queryTimeout, c.runner, "bucket", "list")
	if err != nil {
		return nil, err
	}
	return ParseBucketList(out), nil
}

// AddBucket adds a bucket. An empty url relies on Scoop's well-known
// bucket registry for the source.
func (c *Client) AddBucket(ctx context.Context, name, url string) (string, error) {
	args := []string{"bucket", "add", name}
	if url != "" {
		args = append(args, url)
	}
	return c.invoke(ctx, OpAddBucket, installTimeout, c.runner, args...)
}

// RemoveBucket removes a bucket.
func (c *Client) RemoveBucket(ctx context.Context, name string) (string, error) {
	return c.invoke(ctx, OpRemoveBucket, queryTimeout, c.runner, "bucket", "rm", name)
}

// Search queries for apps using the selected backend.
func (c *Client) Search(ctx context.Context, query, backend string) ([]SearchResult, error) {
	if backend == SearchBackendScoopSearch {
		out, err := c.invoke(ctx, OpSearch, searchTimeout, c.searchRunner, query)
		if err != nil {
			return nil, err
		}
		return ParseScoopSearch(out), nil
	}

	out, err := c.invoke(ctx, OpSearch, searchTimeout, c.runner, "search", query)
	if err != nil {
		return nil, err
	}
	return ParseSearch(out), nil
}

// Versions enumerates discoverable versions of one app across buckets.
func (c *Client) Versions(ctx context.Context, name, backend string) ([]VersionCandidate, error) {
	var results []SearchResult
	if backend == SearchBackendScoopSearch {
		out, err := c.invoke(ctx, OpVersions, searchTimeout, c.searchRunner, name)
		if err != nil {
			return nil, err
		}
		results = ParseScoopSearch(out)
	} else {
		out, err := c.invoke(ctx, OpVersions, searchTimeout, c.runner, "search", name)
		if err != nil {
			return nil, err
		}
		results = ParseSearch(out)
	}
	return FilterVersionCandidates(results, name), nil
}

// AppInfo returns the manifest for one app: the on-disk manifest.json
// when the app is installed, `scoop cat` otherwise. If cat output is not
// JSON the raw text is returned under "raw".
func (c *Client) AppInfo(ctx context.Context, name string) (map[string]any, error) {
	if raw := readManifestRaw(c.appsDir, name); raw != nil {
		return raw, nil
	}

	out, err := c.invoke(ctx, OpManifest, queryTimeout, c.runner, "cat", name)
	if err != nil {
		return nil, err
	}

	var manifest map[string]any
	if err := json.Unmarshal([]byte(out), &manifest); err != nil {
		return map[string]any{"raw": out}, nil
	}
	return manifest, nil
}

// Related returns installed apps sharing executables with name.
func (c *Client) Related(name string) []RelatedApp {
	return RelatedApps(c.appsDir, name)
}

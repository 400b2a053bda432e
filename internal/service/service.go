// Package service orchestrates the Scoop proxy: it validates requests,
// serializes mutating operations per app, maintains the in-memory
// snapshot cache and applies the persisted settings.
package service

import (
	"context"
	"fmt"
	"sync"

	"github.com/mos1128/scoop-easy/internal/config"
	"github.com/mos1128/scoop-easy/internal/oplog"
	"github.com/mos1128/scoop-easy/internal/snapshot"
	"github.com/mos1128/scoop-easy/pkg/scoop"
)

// ValidationError marks a request rejected before any subprocess ran.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

func validationErr(err error) error {
	if err == nil {
		return nil
	}
	return &ValidationError{Reason: err.Error()}
}

// Service is the orchestration layer shared by the HTTP API, the CLI and
// the terminal UI.
type Service struct {
	client    *scoop.Client
	logs      *oplog.Store
	locks     *keyedLocks
	snapshots *snapshot.Store

	mu       sync.RWMutex
	settings *config.Settings
	cache    cache
}

// New creates a Service around the given client and log store. settings
// may be nil, in which case defaults apply.
func New(client *scoop.Client, logs *oplog.Store, settings *config.Settings) *Service {
	if settings == nil {
		settings = config.Default()
	}
	return &Service{
		client:   client,
		logs:     logs,
		locks:    newKeyedLocks(),
		settings: settings,
	}
}

// searchBackend returns the configured search backend.
func (s *Service) searchBackend() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.settings.SearchCommand
}

// turbo reports whether post-mutation refresh is suppressed.
func (s *Service) turbo() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.settings.TurboMode
}

// Apps returns the installed-app snapshot. In turbo mode a previously
// cached snapshot is served as-is; otherwise the snapshot is rebuilt from
// the CLI.
func (s *Service) Apps(ctx context.Context) ([]scoop.InstalledApp, error) {
	if s.turbo() {
		if apps, ok := s.cachedApps(); ok {
			return apps, nil
		}
	}
	return s.refreshApps(ctx)
}

// RefreshApps rebuilds the installed-app snapshot unconditionally.
func (s *Service) RefreshApps(ctx context.Context) ([]scoop.InstalledApp, error) {
	return s.refreshApps(ctx)
}

// Buckets returns the bucket snapshot, cached under the same policy as
// Apps.
func (s *Service) Buckets(ctx context.Context) ([]scoop.Bucket, error) {
	if s.turbo() {
		if buckets, ok := s.cachedBuckets(); ok {
			return buckets, nil
		}
	}
	return s.refreshBuckets(ctx)
}

// InstallApp installs one app, optionally pinned to a bucket or version.
func (s *Service) InstallApp(ctx context.Context, name, bucket, version string) (string, error) {
	if err := validationErr(scoop.ValidateAppName(name)); err != nil {
		return "", err
	}
	if bucket != "" {
		if err := validationErr(scoop.ValidateBucketName(bucket)); err != nil {
			return "", err
		}
	}
	if version != "" {
		if err := validationErr(scoop.ValidateVersion(version)); err != nil {
			return "", err
		}
	}

	release := s.locks.acquire(name)
	defer release()

	out, err := s.client.Install(ctx, name, bucket, version)
	if err != nil {
		return "", err
	}
	s.afterMutation(ctx)
	return out, nil
}

// UpdateApps updates the named apps.
func (s *Service) UpdateApps(ctx context.Context, apps []string) (string, error) {
	return s.batchMutation(ctx, apps, s.client.Update)
}

// UninstallApps removes the named apps.
func (s *Service) UninstallApps(ctx context.Context, apps []string) (string, error) {
	return s.batchMutation(ctx, apps, s.client.Uninstall)
}

// HoldApps holds the named apps, excluding them from updates.
func (s *Service) HoldApps(ctx context.Context, apps []string) (string, error) {
	return s.batchMutation(ctx, apps, s.client.Hold)
}

// UnholdApps releases the hold on the named apps.
func (s *Service) UnholdApps(ctx context.Context, apps []string) (string, error) {
	return s.batchMutation(ctx, apps, s.client.Unhold)
}

func (s *Service) batchMutation(ctx context.Context, apps []string, op func(context.Context, []string) (string, error)) (string, error) {
	if err := validationErr(scoop.ValidateAppNames(apps)); err != nil {
		return "", err
	}

	release := s.locks.acquire(apps...)
	defer release()

	out, err := op(ctx, apps)
	if err != nil {
		return "", err
	}
	s.afterMutation(ctx)
	return out, nil
}

// ResetApp switches an app to an explicit version, or re-points its
// shims at another installed app. Exactly one of version and targetApp
// must be given.
func (s *Service) ResetApp(ctx context.Context, name, version, targetApp string) (string, error) {
	if err := validationErr(scoop.ValidateAppName(name)); err != nil {
		return "", err
	}
	if version == "" && targetApp == "" {
		return "", &ValidationError{Reason: "either version or target_app is required"}
	}

	if targetApp != "" {
		if err := validationErr(scoop.ValidateAppName(targetApp)); err != nil {
			return "", err
		}
		release := s.locks.acquire(name, targetApp)
		defer release()

		out, err := s.client.ResetTarget(ctx, targetApp)
		if err != nil {
			return "", err
		}
		s.afterMutation(ctx)
		return out, nil
	}

	if err := validationErr(scoop.ValidateVersion(version)); err != nil {
		return "", err
	}
	release := s.locks.acquire(name)
	defer release()

	out, err := s.client.ResetVersion(ctx, name, version)
	if err != nil {
		return "", err
	}
	s.afterMutation(ctx)
	return out, nil
}

// AddBucket adds a bucket; an empty url falls back to Scoop's well-known
// bucket registry.
func (s *Service) AddBucket(ctx context.Context, name, url string) (string, error) {
	if err := validationErr(scoop.ValidateBucketName(name)); err != nil {
		return "", err
	}
	if url != "" {
		if err := validationErr(scoop.ValidateBucketURL(url)); err != nil {
			return "", err
		}
	}

	out, err := s.client.AddBucket(ctx, name, url)
	if err != nil {
		return "", err
	}
	s.afterBucketMutation(ctx)
	return out, nil
}

// RemoveBucket removes a bucket.
func (s *Service) RemoveBucket(ctx context.Context, name string) (string, error) {
	if err := validationErr(scoop.ValidateBucketName(name)); err != nil {
		return "", err
	}

	out, err := s.client.RemoveBucket(ctx, name)
	if err != nil {
		return "", err
	}
	s.afterBucketMutation(ctx)
	return out, nil
}

// SearchApps searches for apps with the configured backend.
func (s *Service) SearchApps(ctx context.Context, query string) ([]scoop.SearchResult, error) {
	if err := validationErr(scoop.ValidateSearchQuery(query)); err != nil {
		return nil, err
	}
	return s.client.Search(ctx, query, s.searchBackend())
}

// Versions enumerates discoverable versions of one app across buckets.
func (s *Service) Versions(ctx context.Context, name string) ([]scoop.VersionCandidate, error) {
	if err := validationErr(scoop.ValidateAppName(name)); err != nil {
		return nil, err
	}
	return s.client.Versions(ctx, name, s.searchBackend())
}

// AppInfo returns the manifest for one app.
func (s *Service) AppInfo(ctx context.Context, name string) (map[string]any, error) {
	if err := validationErr(scoop.ValidateAppName(name)); err != nil {
		return nil, err
	}
	return s.client.AppInfo(ctx, name)
}

// RelatedApps returns installed apps sharing executables with name.
func (s *Service) RelatedApps(name string) ([]scoop.RelatedApp, error) {
	if err := validationErr(scoop.ValidateAppName(name)); err != nil {
		return nil, err
	}
	return s.client.Related(name), nil
}

// HeldApps returns the set of held app names.
func (s *Service) HeldApps(ctx context.Context) (map[string]bool, error) {
	return s.client.Held(ctx)
}

// Settings returns a copy of the current settings.
func (s *Service) Settings() config.Settings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return *s.settings
}

// UpdateSettings merges a partial update into the settings and persists
// the whole record.
func (s *Service) UpdateSettings(u config.Update) (config.Settings, error) {
	if u.SearchCommand != nil {
		switch *u.SearchCommand {
		case config.SearchScoop, config.SearchScoopSearch:
		default:
			return config.Settings{}, &ValidationError{
				Reason: fmt.Sprintf("unknown search command: %q", *u.SearchCommand),
			}
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.settings.Apply(u)
	if err := s.settings.Save(); err != nil {
		return config.Settings{}, err
	}
	return *s.settings, nil
}

// Logs returns the most recent log entries, newest first.
func (s *Service) Logs(limit int) ([]oplog.Entry, error) {
	return s.logs.List(limit)
}

// ClearLogs destroys the operation log. Confirmation is the caller's
// responsibility.
func (s *Service) ClearLogs() error {
	return s.logs.Clear()
}

// afterMutation refreshes the installed-app snapshot unless turbo mode
// disables auto-refresh. Refresh failures are swallowed: the mutation
// already succeeded and the stale snapshot is still serviceable.
func (s *Service) afterMutation(ctx context.Context) {
	if s.turbo() {
		s.invalidateApps()
		return
	}
	_, _ = s.refreshApps(ctx) //nolint:errcheck
}

func (s *Service) afterBucketMutation(ctx context.Context) {
	if s.turbo() {
		s.invalidateBuckets()
		return
	}
	_, _ = s.refreshBuckets(ctx) //nolint:errcheck
}

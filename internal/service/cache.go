package service

import (
	"context"

	"github.com/mos1128/scoop-easy/pkg/scoop"
)

// cache holds the current display snapshots. Snapshots are replaced
// wholesale on refresh and handed out as slices that callers must not
// mutate.
type cache struct {
	apps       []scoop.InstalledApp
	appsSet    bool
	buckets    []scoop.Bucket
	bucketsSet bool
}

func (s *Service) cachedApps() ([]scoop.InstalledApp, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cache.apps, s.cache.appsSet
}

func (s *Service) cachedBuckets() ([]scoop.Bucket, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cache.buckets, s.cache.bucketsSet
}

func (s *Service) refreshApps(ctx context.Context) ([]scoop.InstalledApp, error) {
	apps, err := s.client.ListInstalled(ctx)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.cache.apps = apps
	s.cache.appsSet = true
	s.mu.Unlock()
	return apps, nil
}

func (s *Service) refreshBuckets(ctx context.Context) ([]scoop.Bucket, error) {
	buckets, err := s.client.Buckets(ctx)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.cache.buckets = buckets
	s.cache.bucketsSet = true
	s.mu.Unlock()
	return buckets, nil
}

func (s *Service) invalidateApps() {
	s.mu.Lock()
	s.cache.appsSet = false
	s.mu.Unlock()
}

func (s *Service) invalidateBuckets() {
	s.mu.Lock()
	s.cache.bucketsSet = false
	s.mu.Unlock()
}

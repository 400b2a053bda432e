package api

import (
	"net/http"
	"os"
	"path/filepath"
)

func (s *Server) setupRoutes() {
	s.router.Get("/api/health", s.handleHealth)

	s.router.Get("/api/apps", s.handleListApps)
	s.router.Post("/api/apps/install", s.handleInstall)
	s.router.Post("/api/apps/update", s.handleUpdate)
	s.router.Post("/api/apps/uninstall", s.handleUninstall)
	s.router.Post("/api/apps/hold", s.handleHoldBatch)
	s.router.Delete("/api/apps/hold", s.handleUnholdBatch)
	s.router.Post("/api/apps/{name}/hold", s.handleHold)
	s.router.Delete("/api/apps/{name}/hold", s.handleUnhold)
	s.router.Get("/api/apps/{name}/versions", s.handleVersions)
	s.router.Post("/api/apps/{name}/reset", s.handleReset)
	s.router.Get("/api/apps/{name}/info", s.handleAppInfo)
	s.router.Get("/api/apps/{name}/related", s.handleRelated)

	s.router.Get("/api/buckets", s.handleListBuckets)
	s.router.Post("/api/buckets", s.handleAddBucket)
	s.router.Delete("/api/buckets/{name}", s.handleRemoveBucket)

	s.router.Get("/api/search", s.handleSearch)

	s.router.Get("/api/snapshots", s.handleListSnapshots)
	s.router.Post("/api/snapshots", s.handleCreateSnapshot)
	s.router.Get("/api/snapshots/{id}", s.handleGetSnapshot)
	s.router.Delete("/api/snapshots/{id}", s.handleDeleteSnapshot)
	s.router.Get("/api/snapshots/{id}/diff", s.handleDiffSnapshot)
	s.router.Post("/api/snapshots/{id}/restore", s.handleRestoreSnapshot)

	s.router.Get("/api/settings", s.handleGetSettings)
	s.router.Post("/api/settings", s.handleUpdateSettings)

	s.router.Get("/api/logs", s.handleGetLogs)
	s.router.Delete("/api/logs", s.handleClearLogs)

	s.setupFrontend()
}

// setupFrontend serves the SPA build when one is present, falling back to
// index.html for client-side routes.
func (s *Server) setupFrontend() {
	if s.staticDir == "" {
		return
	}
	buildDir := s.staticDir
	if _, err := os.Stat(filepath.Join(buildDir, "index.html")); err != nil {
		return
	}

	s.router.Get("/*", func(w http.ResponseWriter, r *http.Request) {
		urlPath := r.URL.Path
		if urlPath == "/" {
			urlPath = "/index.html"
		}
		filePath := filepath.Join(buildDir, filepath.Clean(urlPath))

		if info, err := os.Stat(filePath); err != nil || info.IsDir() {
			http.ServeFile(w, r, filepath.Join(buildDir, "index.html"))
			return
		}
		http.ServeFile(w, r, filePath)
	})
}

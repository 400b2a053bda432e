package api

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/mos1128/scoop-easy/internal/config"
	"github.com/mos1128/scoop-easy/internal/oplog"
	"github.com/mos1128/scoop-easy/pkg/scoop"
)

type appsRequest struct {
	Apps []string `json:"apps"`
}

type installRequest struct {
	Name    string `json:"name"`
	Bucket  string `json:"bucket,omitempty"`
	Version string `json:"version,omitempty"`
}

type resetRequest struct {
	Version   string `json:"version,omitempty"`
	TargetApp string `json:"target_app,omitempty"`
}

type addBucketRequest struct {
	Name string `json:"name"`
	URL  string `json:"url,omitempty"`
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return false
	}
	return true
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleListApps(w http.ResponseWriter, r *http.Request) {
	apps, err := s.svc.Apps(r.Context())
	if err != nil {
		respondOpError(w, err)
		return
	}
	if apps == nil {
		apps = []scoop.InstalledApp{}
	}
	respondJSON(w, http.StatusOK, apps)
}

func (s *Server) handleInstall(w http.ResponseWriter, r *http.Request) {
	var req installRequest
	if !decodeBody(w, r, &req) {
		return
	}

	out, err := s.svc.InstallApp(r.Context(), req.Name, req.Bucket, req.Version)
	if err != nil {
		respondOpError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, opResult{Success: true, Message: out})
}

func (s *Server) handleUpdate(w http.ResponseWriter, r *http.Request) {
	s.batchOp(w, r, s.svc.UpdateApps)
}

func (s *Server) handleUninstall(w http.ResponseWriter, r *http.Request) {
	s.batchOp(w, r, s.svc.UninstallApps)
}

func (s *Server) handleHoldBatch(w http.ResponseWriter, r *http.Request) {
	s.batchOp(w, r, s.svc.HoldApps)
}

func (s *Server) handleUnholdBatch(w http.ResponseWriter, r *http.Request) {
	s.batchOp(w, r, s.svc.UnholdApps)
}

func (s *Server) batchOp(w http.ResponseWriter, r *http.Request, op func(ctx context.Context, apps []string) (string, error)) {
	var req appsRequest
	if !decodeBody(w, r, &req) {
		return
	}

	out, err := op(r.Context(), req.Apps)
	if err != nil {
		respondOpError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, opResult{Success: true, Message: out})
}

func (s *Server) handleHold(w http.ResponseWriter, r *http.Request) {
	out, err := s.svc.HoldApps(r.Context(), []string{chi.URLParam(r, "name")})
	if err != nil {
		respondOpError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, opResult{Success: true, Message: out})
}

func (s *Server) handleUnhold(w http.ResponseWriter, r *http.Request) {
	out, err := s.svc.UnholdApps(r.Context(), []string{chi.URLParam(r, "name")})
	if err != nil {
		respondOpError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, opResult{Success: true, Message: out})
}

func (s *Server) handleVersions(w http.ResponseWriter, r *http.Request) {
	versions, err := s.svc.Versions(r.Context(), chi.URLParam(r, "name"))
	if err != nil {
		respondOpError(w, err)
		return
	}
	if versions == nil {
		versions = []scoop.VersionCandidate{}
	}
	respondJSON(w, http.StatusOK, versions)
}

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	var req resetRequest
	if !decodeBody(w, r, &req) {
		return
	}

	out, err := s.svc.ResetApp(r.Context(), chi.URLParam(r, "name"), req.Version, req.TargetApp)
	if err != nil {
		respondOpError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, opResult{Success: true, Message: out})
}

func (s *Server) handleAppInfo(w http.ResponseWriter, r *http.Request) {
	manifest, err := s.svc.AppInfo(r.Context(), chi.URLParam(r, "name"))
	if err != nil {
		respondOpError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, manifest)
}

func (s *Server) handleRelated(w http.ResponseWriter, r *http.Request) {
	related, err := s.svc.RelatedApps(chi.URLParam(r, "name"))
	if err != nil {
		respondOpError(w, err)
		return
	}
	if related == nil {
		related = []scoop.RelatedApp{}
	}
	respondJSON(w, http.StatusOK, related)
}

func (s *Server) handleListBuckets(w http.ResponseWriter, r *http.Request) {
	buckets, err := s.svc.Buckets(r.Context())
	if err != nil {
		respondOpError(w, err)
		return
	}
	if buckets == nil {
		buckets = []scoop.Bucket{}
	}
	respondJSON(w, http.StatusOK, buckets)
}

func (s *Server) handleAddBucket(w http.ResponseWriter, r *http.Request) {
	var req addBucketRequest
	if !decodeBody(w, r, &req) {
		return
	}

	out, err := s.svc.AddBucket(r.Context(), req.Name, req.URL)
	if err != nil {
		respondOpError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, opResult{Success: true, Message: out})
}

func (s *Server) handleRemoveBucket(w http.ResponseWriter, r *http.Request) {
	out, err := s.svc.RemoveBucket(r.Context(), chi.URLParam(r, "name"))
	if err != nil {
		respondOpError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, opResult{Success: true, Message: out})
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	results, err := s.svc.SearchApps(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		respondOpError(w, err)
		return
	}
	if results == nil {
		results = []scoop.SearchResult{}
	}
	respondJSON(w, http.StatusOK, results)
}

func (s *Server) handleGetSettings(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, s.svc.Settings())
}

func (s *Server) handleUpdateSettings(w http.ResponseWriter, r *http.Request) {
	var req config.Update
	if !decodeBody(w, r, &req) {
		return
	}

	settings, err := s.svc.UpdateSettings(req)
	if err != nil {
		respondOpError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, settings)
}

func (s *Server) handleGetLogs(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			respondError(w, http.StatusBadRequest, "invalid limit: "+raw)
			return
		}
		limit = n
	}

	entries, err := s.svc.Logs(limit)
	if err != nil {
		respondOpError(w, err)
		return
	}
	if entries == nil {
		entries = []oplog.Entry{}
	}
	respondJSON(w, http.StatusOK, entries)
}

func (s *Server) handleClearLogs(w http.ResponseWriter, r *http.Request) {
	if err := s.svc.ClearLogs(); err != nil {
		respondOpError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, opResult{Success: true, Message: "logs cleared"})
}

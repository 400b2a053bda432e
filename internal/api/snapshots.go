package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mos1128/scoop-easy/internal/snapshot"
)

type createSnapshotRequest struct {
	Description string `json:"description,omitempty"`
}

type restoreRequest struct {
	DryRun bool `json:"dry_run,omitempty"`
}

func (s *Server) handleListSnapshots(w http.ResponseWriter, r *http.Request) {
	snapshots, err := s.svc.Snapshots(0)
	if err != nil {
		respondOpError(w, err)
		return
	}
	if snapshots == nil {
		snapshots = []snapshot.Snapshot{}
	}
	respondJSON(w, http.StatusOK, snapshots)
}

func (s *Server) handleCreateSnapshot(w http.ResponseWriter, r *http.Request) {
	var req createSnapshotRequest
	if r.ContentLength > 0 && !decodeBody(w, r, &req) {
		return
	}

	snap, err := s.svc.CreateSnapshot(r.Context(), req.Description)
	if err != nil {
		respondOpError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, snap)
}

func (s *Server) handleGetSnapshot(w http.ResponseWriter, r *http.Request) {
	snap, err := s.svc.Snapshot(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusNotFound, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, snap)
}

func (s *Server) handleDeleteSnapshot(w http.ResponseWriter, r *http.Request) {
	if err := s.svc.DeleteSnapshot(chi.URLParam(r, "id")); err != nil {
		respondError(w, http.StatusNotFound, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, opResult{Success: true, Message: "snapshot deleted"})
}

func (s *Server) handleDiffSnapshot(w http.ResponseWriter, r *http.Request) {
	diff, err := s.svc.DiffSnapshot(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondOpError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, diff)
}

func (s *Server) handleRestoreSnapshot(w http.ResponseWriter, r *http.Request) {
	var req restoreRequest
	if r.ContentLength > 0 && !decodeBody(w, r, &req) {
		return
	}

	id := chi.URLParam(r, "id")
	var (
		plan *snapshot.RestorePlan
		err  error
	)
	if req.DryRun {
		plan, err = s.svc.PlanRestore(r.Context(), id)
	} else {
		plan, err = s.svc.RestoreSnapshot(r.Context(), id)
	}
	if err != nil {
		respondOpError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, plan)
}

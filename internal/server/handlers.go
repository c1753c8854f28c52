package server

import (
	"encoding/json"
	"net/http"

	"github.com/pagesmith/pagesmith/internal/build"
	"github.com/pagesmith/pagesmith/internal/errors"
)

// batchResponse wraps a batch report.
type batchResponse struct {
	Results []build.ItemResult `json:"results"`
}

func (s *Server) handleBuild(w http.ResponseWriter, r *http.Request) {
	var req build.Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, r, errors.NewParseError(errors.ErrCodeDataMalformed, "malformed build request", err))
		return
	}

	result, err := s.orch.Build(r.Context(), req)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	s.respondJSON(w, http.StatusOK, result)
	s.hub.Broadcast(r.Context(), ReloadMessage{Type: "build", Path: result.Path})
}

func (s *Server) handleBatchBuild(w http.ResponseWriter, r *http.Request) {
	var req build.BatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, r, errors.NewParseError(errors.ErrCodeDataMalformed, "malformed batch request", err))
		return
	}

	results, err := s.orch.BuildAll(r.Context(), req)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	s.respondJSON(w, http.StatusOK, batchResponse{Results: results})
	s.hub.Broadcast(r.Context(), ReloadMessage{Type: "batch"})
}

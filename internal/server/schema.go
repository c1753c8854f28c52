package server

import (
	"net/http"
	"os"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/pagesmith/pagesmith/internal/errors"
	"github.com/pagesmith/pagesmith/internal/validation"
)

const schemaSuffix = ".schema.json"

// handleSchema serves the JSON-schema sidecar of a data file: for
// "pages/home.json" it looks for "pages/home.schema.json" beside it.
func (s *Server) handleSchema(w http.ResponseWriter, r *http.Request) {
	rel := chi.URLParam(r, "*")

	sidecar := strings.TrimSuffix(rel, ".json") + schemaSuffix
	abs, err := s.sandbox.Resolve(validation.RootData, sidecar)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	content, err := os.ReadFile(abs)
	if err != nil {
		if os.IsNotExist(err) {
			s.respondError(w, r, errors.NewNotFoundError(errors.ErrCodeDataNotFound, "no schema sidecar").WithPath(rel))
			return
		}
		s.respondError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(content)
}

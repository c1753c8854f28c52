package server

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/go-chi/chi/v5"

	"github.com/pagesmith/pagesmith/internal/errors"
	"github.com/pagesmith/pagesmith/internal/validation"
)

// rootFromParam maps the {type} URL parameter to a writable sandbox root.
// The output root is intentionally absent: artifacts are only written by
// builds and only read through /output.
func rootFromParam(r *http.Request) (validation.RootKind, error) {
	switch kind := chi.URLParam(r, "type"); kind {
	case "templates":
		return validation.RootTemplates, nil
	case "data":
		return validation.RootData, nil
	default:
		return "", errors.NewNotFoundError(errors.ErrCodeInvalidPath, fmt.Sprintf("unknown file tree %q", kind))
	}
}

func (s *Server) handleReadFile(w http.ResponseWriter, r *http.Request) {
	kind, err := rootFromParam(r)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	abs, err := s.sandbox.Resolve(kind, chi.URLParam(r, "*"))
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	content, err := os.ReadFile(abs)
	if err != nil {
		if os.IsNotExist(err) {
			s.respondError(w, r, errors.NewNotFoundError(errors.ErrCodeDataNotFound, "file not found").WithPath(chi.URLParam(r, "*")))
			return
		}
		s.respondError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "application/octet-stream")
	_, _ = w.Write(content)
}

func (s *Server) handleWriteFile(w http.ResponseWriter, r *http.Request) {
	kind, err := rootFromParam(r)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	rel := chi.URLParam(r, "*")
	abs, err := s.sandbox.Resolve(kind, rel)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	content, err := io.ReadAll(r.Body)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	if err := os.MkdirAll(filepath.Dir(abs), 0o755); err != nil {
		s.respondError(w, r, errors.NewWriteError(errors.ErrCodeWriteFailed, "creating parent directory", err).WithPath(rel))
		return
	}
	if err := os.WriteFile(abs, content, 0o644); err != nil {
		s.respondError(w, r, errors.NewWriteError(errors.ErrCodeWriteFailed, "writing file", err).WithPath(rel))
		return
	}

	s.respondJSON(w, http.StatusOK, map[string]string{"path": rel})
}

func (s *Server) handleDeleteFile(w http.ResponseWriter, r *http.Request) {
	kind, err := rootFromParam(r)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	rel := chi.URLParam(r, "*")
	abs, err := s.sandbox.Resolve(kind, rel)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	if err := os.Remove(abs); err != nil {
		if os.IsNotExist(err) {
			s.respondError(w, r, errors.NewNotFoundError(errors.ErrCodeDataNotFound, "file not found").WithPath(rel))
			return
		}
		s.respondError(w, r, errors.NewWriteError(errors.ErrCodeWriteFailed, "deleting file", err).WithPath(rel))
		return
	}

	s.respondJSON(w, http.StatusOK, map[string]string{"deleted": rel})
}

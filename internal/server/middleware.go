package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/pagesmith/pagesmith/internal/errors"
)

const requestIDHeader = "X-Request-Id"

// requestID tags every request with a UUID for log correlation.
func (s *Server) requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set(requestIDHeader, id)

		next.ServeHTTP(w, r)
	})
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)

		s.logger.Debug(r.Context(), "request handled",
			"method", r.Method,
			"path", r.URL.Path,
			"request_id", w.Header().Get(requestIDHeader),
			"duration_ms", time.Since(start).Milliseconds(),
		)
	})
}

// errorPayload is the JSON shape of every error response.
type errorPayload struct {
	Error string      `json:"error"`
	Type  errors.Type `json:"type"`
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func (s *Server) respondError(w http.ResponseWriter, r *http.Request, err error) {
	errType := errors.TypeOf(err)

	status := http.StatusInternalServerError
	switch errType {
	case errors.TypeSecurity:
		status = http.StatusForbidden
	case errors.TypeNotFound:
		status = http.StatusNotFound
	case errors.TypeParse, errors.TypeTemplate, errors.TypeRender:
		status = http.StatusUnprocessableEntity
	}

	if status == http.StatusInternalServerError {
		s.logger.Error(r.Context(), err, "request failed", "path", r.URL.Path)
	} else {
		s.logger.Warn(r.Context(), err, "request rejected", "path", r.URL.Path, "status", status)
	}

	s.respondJSON(w, status, errorPayload{Error: err.Error(), Type: errType})
}

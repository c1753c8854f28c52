// Package server exposes the build engine over HTTP: build endpoints,
// file management for the template and data trees, directory listings,
// JSON-schema sidecar lookup, static serving of built artifacts, and a
// websocket channel for live-reload notifications.
//
// The transport adds no build logic of its own; every filesystem touch
// goes through the engine's path sandbox, and build requests funnel into
// the orchestrator, whose global build lock keeps concurrent HTTP callers
// safe.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/pagesmith/pagesmith/internal/build"
	"github.com/pagesmith/pagesmith/internal/config"
	"github.com/pagesmith/pagesmith/internal/logging"
	"github.com/pagesmith/pagesmith/internal/validation"
)

// Server serves the engine's HTTP API.
type Server struct {
	cfg     *config.Config
	orch    *build.Orchestrator
	sandbox *validation.Sandbox
	logger  logging.Logger
	hub     *Hub
}

// New creates a server around an orchestrator and its sandbox.
func New(cfg *config.Config, orch *build.Orchestrator, sandbox *validation.Sandbox, logger logging.Logger) *Server {
	return &Server{
		cfg:     cfg,
		orch:    orch,
		sandbox: sandbox,
		logger:  logger.WithComponent("server"),
		hub:     NewHub(logger),
	}
}

// Hub returns the live-reload hub so serve mode can broadcast watcher
// events.
func (s *Server) Hub() *Hub {
	return s.hub
}

// Router assembles the HTTP routes.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(s.requestID)
	r.Use(s.logRequests)

	r.Route("/api", func(r chi.Router) {
		r.Post("/build", s.handleBuild)
		r.Post("/build/batch", s.handleBatchBuild)

		r.Route("/files/{type}", func(r chi.Router) {
			r.Get("/*", s.handleReadFile)
			r.Put("/*", s.handleWriteFile)
			r.Delete("/*", s.handleDeleteFile)
		})

		r.Get("/tree/{type}", s.handleTree)
		r.Get("/schema/*", s.handleSchema)
		r.Get("/health", s.handleHealth)
	})

	r.Get("/ws", s.handleWebSocket)

	outputRoot := s.sandbox.Root(validation.RootOutput)
	r.Handle("/output/*", http.StripPrefix("/output/", http.FileServer(http.Dir(outputRoot))))

	return r
}

// Start runs the HTTP server until ctx is cancelled.
func (s *Server) Start(ctx context.Context) error {
	addr := fmt.Sprintf("%s:%d", s.cfg.Server.Host, s.cfg.Server.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	s.logger.Info(ctx, "server listening", "addr", addr)

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

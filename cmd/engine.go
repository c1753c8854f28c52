package cmd

import (
	"github.com/pagesmith/pagesmith/internal/build"
	"github.com/pagesmith/pagesmith/internal/config"
	"github.com/pagesmith/pagesmith/internal/datasource"
	"github.com/pagesmith/pagesmith/internal/logging"
	"github.com/pagesmith/pagesmith/internal/output"
	"github.com/pagesmith/pagesmith/internal/registry"
	"github.com/pagesmith/pagesmith/internal/renderer"
	"github.com/pagesmith/pagesmith/internal/validation"
)

// engine bundles a fully wired orchestrator with its collaborators.
type engine struct {
	cfg     *config.Config
	logger  logging.Logger
	sandbox *validation.Sandbox
	orch    *build.Orchestrator
}

// newEngine loads configuration and wires the build engine.
func newEngine() (*engine, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	logger := logging.NewLogger(&logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
	})

	sandbox, err := validation.NewSandbox(cfg.Roots)
	if err != nil {
		return nil, err
	}

	orch := build.NewOrchestrator(
		sandbox,
		datasource.NewResolver(sandbox, logger),
		registry.NewTemplateRegistry(),
		renderer.New(renderer.Options{Minify: cfg.Build.Minify}, logger),
		output.NewWriter(sandbox, logger),
		logger,
	)

	return &engine{cfg: cfg, logger: logger, sandbox: sandbox, orch: orch}, nil
}

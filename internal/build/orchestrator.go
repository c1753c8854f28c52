// Package build sequences the engine components into single builds and
// batch builds.
//
// A build is a fixed pipeline: invalidate the template registry under the
// template root, resolve and merge data sources, load the template, render
// and minify, write the artifact. Any step's failure aborts the remaining
// steps and surfaces as the one error for that build; nothing is retried,
// and because writing is the last step no partial output is left behind.
//
// Builds are serialized by a global build lock. Registry invalidation at
// the start of every build is only safe when builds never interleave; the
// lock closes that hazard instead of leaving it to the transport layer.
package build

import (
	"context"
	"os"
	"path"
	"strings"
	"sync"

	"github.com/pagesmith/pagesmith/internal/datasource"
	"github.com/pagesmith/pagesmith/internal/errors"
	"github.com/pagesmith/pagesmith/internal/logging"
	"github.com/pagesmith/pagesmith/internal/output"
	"github.com/pagesmith/pagesmith/internal/registry"
	"github.com/pagesmith/pagesmith/internal/renderer"
	"github.com/pagesmith/pagesmith/internal/validation"
)

// Orchestrator runs builds against a fixed set of sandboxed roots.
type Orchestrator struct {
	buildMu sync.Mutex

	sandbox  *validation.Sandbox
	data     *datasource.Resolver
	registry *registry.TemplateRegistry
	renderer *renderer.Renderer
	writer   *output.Writer
	logger   logging.Logger
}

// NewOrchestrator wires the engine components into an orchestrator.
func NewOrchestrator(
	sandbox *validation.Sandbox,
	data *datasource.Resolver,
	reg *registry.TemplateRegistry,
	rend *renderer.Renderer,
	writer *output.Writer,
	logger logging.Logger,
) *Orchestrator {
	return &Orchestrator{
		sandbox:  sandbox,
		data:     data,
		registry: reg,
		renderer: rend,
		writer:   writer,
		logger:   logger.WithComponent("build"),
	}
}

// Registry exposes the template registry for watcher-driven invalidation.
func (o *Orchestrator) Registry() *registry.TemplateRegistry {
	return o.registry
}

// Build runs one build to completion and returns the artifact path.
func (o *Orchestrator) Build(ctx context.Context, req Request) (Result, error) {
	o.buildMu.Lock()
	defer o.buildMu.Unlock()

	return o.buildLocked(ctx, req)
}

func (o *Orchestrator) buildLocked(ctx context.Context, req Request) (Result, error) {
	// Hot reload: drop every cached template under the root so the load
	// below re-parses current on-disk content.
	o.registry.Invalidate(o.sandbox.Root(validation.RootTemplates))

	props, err := o.data.Resolve(ctx, req.DataSources)
	if err != nil {
		return Result{}, err
	}

	abs, err := o.sandbox.Resolve(validation.RootTemplates, req.TemplatePath)
	if err != nil {
		return Result{}, err
	}

	component, err := o.registry.Load(abs)
	if err != nil {
		return Result{}, err
	}

	markup, err := o.renderer.Render(ctx, component, props)
	if err != nil {
		return Result{}, err
	}

	rel, err := o.writer.Write(ctx, req.OutputName, []byte(markup))
	if err != nil {
		return Result{}, err
	}

	o.logger.Info(ctx, "build completed",
		"template", req.TemplatePath,
		"sources", len(req.DataSources),
		"output", rel,
	)

	return Result{Path: rel}, nil
}

// BuildAll applies one template to every JSON file in a data folder,
// producing one artifact per file with isolated per-item failure
// reporting. Only a failure to resolve or list the folder itself fails the
// whole call; item failures are recorded and never abort siblings.
func (o *Orchestrator) BuildAll(ctx context.Context, req BatchRequest) ([]ItemResult, error) {
	o.buildMu.Lock()
	defer o.buildMu.Unlock()

	folder, err := o.sandbox.Resolve(validation.RootData, req.DataFolder)
	if err != nil {
		return nil, err
	}

	entries, err := os.ReadDir(folder)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NewNotFoundError(errors.ErrCodeBatchSource, "data folder not found").WithPath(req.DataFolder)
		}
		return nil, errors.NewInternalError(errors.ErrCodeBatchSource, "listing data folder", err).WithPath(req.DataFolder)
	}

	// os.ReadDir returns entries in filename order; results keep it.
	files := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		files = append(files, entry.Name())
	}

	results := make([]ItemResult, 0, len(files))
	for _, file := range files {
		item := Request{
			TemplatePath: req.TemplatePath,
			DataSources:  []datasource.Spec{{Filename: path.Join(req.DataFolder, file)}},
			OutputName:   path.Join(req.OutputBase, strings.TrimSuffix(file, ".json")),
		}

		result, err := o.buildLocked(ctx, item)
		if err != nil {
			o.logger.Warn(ctx, err, "batch item failed", "file", file)
			results = append(results, ItemResult{File: file, Status: StatusError, Error: err.Error()})
			continue
		}

		results = append(results, ItemResult{File: file, Status: StatusSuccess, Path: result.Path})
	}

	o.logger.Info(ctx, "batch build completed",
		"folder", req.DataFolder,
		"items", len(results),
	)

	return results, nil
}

// Package scaffold creates the initial layout for a new pagesmith project:
// the three sandboxed roots, a sample template and data source that build
// out of the box, and a default configuration file.
package scaffold

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/pagesmith/pagesmith/internal/config"
	"github.com/pagesmith/pagesmith/internal/logging"
)

// Options controls what gets generated.
type Options struct {
	// Dir is the project directory. Created if missing.
	Dir string
	// Name is the project name used in sample content. Defaults to the
	// base name of Dir.
	Name string
	// WithConfig also writes a .pagesmith.yml into Dir.
	WithConfig bool
}

// Scaffolder generates new project layouts.
type Scaffolder struct {
	logger logging.Logger
}

// New creates a scaffolder.
func New(logger logging.Logger) *Scaffolder {
	return &Scaffolder{logger: logger.WithComponent("scaffold")}
}

const sampleTemplate = `{{define "default"}}<!DOCTYPE html>
<html lang="en">
  <head>
    <meta charset="utf-8">
    <title>{{.title}}</title>
    <style>
      body {
        font-family: sans-serif;
        margin: 2rem auto;
        max-width: 40rem;
      }
    </style>
  </head>
  <body>
    <h1>{{.title}}</h1>
    <p>{{.message}}</p>
  </body>
</html>{{end}}
`

const sampleSchema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "object",
  "properties": {
    "title": { "type": "string" },
    "message": { "type": "string" }
  },
  "required": ["title"]
}
`

// Generate lays out a new project under opts.Dir. Existing files are left
// untouched; only missing pieces are created.
func (s *Scaffolder) Generate(ctx context.Context, opts Options) error {
	if opts.Dir == "" {
		opts.Dir = "."
	}
	if opts.Name == "" {
		abs, err := filepath.Abs(opts.Dir)
		if err != nil {
			return fmt.Errorf("resolving project directory: %w", err)
		}
		opts.Name = filepath.Base(abs)
	}

	title := cases.Title(language.English).String(strings.ReplaceAll(opts.Name, "-", " "))

	for _, dir := range []string{
		filepath.Join(opts.Dir, "templates", "pages"),
		filepath.Join(opts.Dir, "data", "pages"),
		filepath.Join(opts.Dir, "output"),
	} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating %s: %w", dir, err)
		}
	}

	sampleData := fmt.Sprintf(`{
  "title": %q,
  "message": "Edit templates/pages/hello.html.tmpl and data/pages/hello.json, then run a build."
}
`, title)

	files := []struct {
		path    string
		content string
	}{
		{filepath.Join(opts.Dir, "templates", "pages", "hello.html.tmpl"), sampleTemplate},
		{filepath.Join(opts.Dir, "data", "pages", "hello.json"), sampleData},
		{filepath.Join(opts.Dir, "data", "pages", "hello.schema.json"), sampleSchema},
	}

	for _, file := range files {
		created, err := writeIfMissing(file.path, file.content)
		if err != nil {
			return err
		}
		if created {
			s.logger.Info(ctx, "created", "path", file.path)
		} else {
			s.logger.Debug(ctx, "exists, skipping", "path", file.path)
		}
	}

	if opts.WithConfig {
		cfgPath := filepath.Join(opts.Dir, ".pagesmith.yml")
		if _, err := os.Stat(cfgPath); os.IsNotExist(err) {
			if err := config.WriteDefault(cfgPath); err != nil {
				return err
			}
			s.logger.Info(ctx, "created", "path", cfgPath)
		}
	}

	return nil
}

func writeIfMissing(path, content string) (bool, error) {
	if _, err := os.Stat(path); err == nil {
		return false, nil
	}

	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return false, fmt.Errorf("writing %s: %w", path, err)
	}

	return true, nil
}

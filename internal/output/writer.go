// Package output places built artifacts under the sandboxed output root.
package output

import (
	"context"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/pagesmith/pagesmith/internal/errors"
	"github.com/pagesmith/pagesmith/internal/logging"
	"github.com/pagesmith/pagesmith/internal/validation"
)

// IndexFilename is appended to destinations that name a directory.
const IndexFilename = "index.html"

// Writer persists rendered markup under the output root.
type Writer struct {
	sandbox *validation.Sandbox
	logger  logging.Logger
}

// NewWriter creates an output writer gated by the given sandbox.
func NewWriter(sandbox *validation.Sandbox, logger logging.Logger) *Writer {
	return &Writer{
		sandbox: sandbox,
		logger:  logger.WithComponent("output"),
	}
}

// Normalize applies the destination rule: a path that does not end in
// ".html" is a directory target and gets IndexFilename appended. Paths use
// forward slashes for reporting regardless of platform.
func Normalize(rel string) string {
	rel = path.Clean(filepath.ToSlash(rel))
	if rel == "." {
		rel = ""
	}

	if !strings.HasSuffix(rel, ".html") {
		rel = path.Join(rel, IndexFilename)
	}

	return rel
}

// Write persists content at the normalized destination, creating parent
// directories as needed and overwriting any existing file unconditionally.
// It returns the normalized relative path for reporting.
func (w *Writer) Write(ctx context.Context, rel string, content []byte) (string, error) {
	normalized := Normalize(rel)

	abs, err := w.sandbox.Resolve(validation.RootOutput, normalized)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(filepath.Dir(abs), 0o755); err != nil {
		return "", errors.NewWriteError(errors.ErrCodeWriteFailed, "creating output directory", err).WithPath(normalized)
	}

	if err := os.WriteFile(abs, content, 0o644); err != nil {
		return "", errors.NewWriteError(errors.ErrCodeWriteFailed, "writing output file", err).WithPath(normalized)
	}

	w.logger.Debug(ctx, "wrote artifact", "path", normalized, "bytes", len(content))

	return normalized, nil
}

// Package validation provides the path sandbox that gates every filesystem
// touch-point of the build engine. Caller-supplied paths are always relative;
// resolution against one of the three fixed roots is the only way the engine
// produces an absolute path.
package validation

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pagesmith/pagesmith/internal/config"
	"github.com/pagesmith/pagesmith/internal/errors"
)

// RootKind selects which sandbox root a path resolves against. The caller
// names the root explicitly; it is never inferred.
type RootKind string

const (
	RootTemplates RootKind = "templates"
	RootData      RootKind = "data"
	RootOutput    RootKind = "output"
)

// Sandbox resolves relative paths against fixed roots and rejects escapes.
type Sandbox struct {
	roots map[RootKind]string
}

// NewSandbox canonicalizes the configured roots and returns a sandbox over
// them. Roots are created if absent so canonicalization has something to
// resolve.
func NewSandbox(roots config.RootsConfig) (*Sandbox, error) {
	resolved := make(map[RootKind]string, 3)

	for kind, dir := range map[RootKind]string{
		RootTemplates: roots.Templates,
		RootData:      roots.Data,
		RootOutput:    roots.Output,
	} {
		if dir == "" {
			return nil, fmt.Errorf("sandbox root %q is empty", kind)
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating sandbox root %q: %w", kind, err)
		}

		canonical, err := canonicalize(dir)
		if err != nil {
			return nil, fmt.Errorf("canonicalizing sandbox root %q: %w", kind, err)
		}
		resolved[kind] = canonical
	}

	return &Sandbox{roots: resolved}, nil
}

// Root returns the canonical absolute path of a sandbox root.
func (s *Sandbox) Root(kind RootKind) string {
	return s.roots[kind]
}

// Resolve joins rel against the named root and returns the absolute path,
// or a security error when the result leaves the root. Containment is
// lexical: the roots themselves are canonicalized at construction, but
// symlinks placed inside a root are trusted and followed.
func (s *Sandbox) Resolve(kind RootKind, rel string) (string, error) {
	root, ok := s.roots[kind]
	if !ok {
		return "", errors.NewInternalError(errors.ErrCodeInternal, fmt.Sprintf("unknown sandbox root %q", kind), nil)
	}

	if strings.ContainsRune(rel, '\x00') {
		return "", errors.NewSecurityError(errors.ErrCodeInvalidPath, "path contains NUL byte").WithPath(rel)
	}
	if filepath.IsAbs(rel) {
		return "", errors.NewSecurityError(errors.ErrCodeInvalidPath, "absolute paths are not allowed").WithPath(rel)
	}

	abs := filepath.Clean(filepath.Join(root, filepath.FromSlash(rel)))
	if !Contains(root, abs) {
		return "", errors.NewSecurityError(errors.ErrCodePathEscape, "path escapes sandbox root").WithPath(rel)
	}

	return abs, nil
}

// Contains reports whether abs is root itself or a descendant of root. The
// check is separator-boundary aware: a sibling directory sharing root as a
// string prefix (e.g. /data vs /data-other) is not contained.
func Contains(root, abs string) bool {
	if abs == root {
		return true
	}

	return strings.HasPrefix(abs, root+string(os.PathSeparator))
}

// canonicalize returns the symlink-resolved absolute form of dir.
func canonicalize(dir string) (string, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", err
	}

	resolved, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return "", err
	}

	return resolved, nil
}

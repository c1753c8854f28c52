package registry

import (
	"html/template"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/pagesmith/pagesmith/internal/errors"
)

// ExportKind identifies which renderable a template file resolved to. A
// loaded file can take exactly one of three shapes, tried in fixed priority
// order: a defined block named "default", a defined block named "App", or
// the file's own root template.
type ExportKind int

const (
	ExportDefault ExportKind = iota
	ExportApp
	ExportRoot
)

// String returns the string representation of the ExportKind.
func (k ExportKind) String() string {
	switch k {
	case ExportDefault:
		return "default"
	case ExportApp:
		return "App"
	case ExportRoot:
		return "root"
	default:
		return "unknown"
	}
}

// Component is one loaded template file with its renderable export selected.
type Component struct {
	// Path is the absolute path of the template file.
	Path string
	// Export records which shape the renderable was resolved from.
	Export ExportKind
	// LoadedAt is when the file was parsed.
	LoadedAt time.Time

	renderable *template.Template
}

// Render executes the resolved renderable with the given properties.
func (c *Component) Render(w io.Writer, props map[string]interface{}) error {
	return c.renderable.Execute(w, props)
}

// loadComponent parses the file at abs and resolves its renderable export.
func loadComponent(abs string) (*Component, error) {
	raw, err := os.ReadFile(abs)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NewNotFoundError(errors.ErrCodeTemplateNotFound, "template not found").WithPath(abs)
		}
		return nil, errors.NewTemplateError(errors.ErrCodeTemplateParse, "reading template", err).WithPath(abs)
	}

	root, err := template.New(filepath.Base(abs)).Parse(string(raw))
	if err != nil {
		return nil, errors.NewTemplateError(errors.ErrCodeTemplateParse, "parsing template", err).WithPath(abs)
	}

	component := &Component{
		Path:     abs,
		LoadedAt: time.Now(),
	}

	switch {
	case lookupDefined(root, "default") != nil:
		component.Export = ExportDefault
		component.renderable = root.Lookup("default")
	case lookupDefined(root, "App") != nil:
		component.Export = ExportApp
		component.renderable = root.Lookup("App")
	default:
		component.Export = ExportRoot
		component.renderable = root
	}

	return component, nil
}

// lookupDefined returns the named defined template, ignoring a match on the
// root template's own name.
func lookupDefined(root *template.Template, name string) *template.Template {
	t := root.Lookup(name)
	if t == nil || t == root {
		return nil
	}

	return t
}

// Package renderer turns a resolved template component and merged
// properties into the final static markup.
//
// Rendering is one-shot and synchronous: the component executes once with
// the full property mapping, producing markup with no hydration metadata
// and no streaming. Successful markup is then minified (whitespace
// collapsed, inline script and style content minified).
package renderer

import (
	"bytes"
	"context"
	"fmt"
	"regexp"

	"github.com/tdewolff/minify/v2"
	"github.com/tdewolff/minify/v2/css"
	"github.com/tdewolff/minify/v2/html"
	"github.com/tdewolff/minify/v2/js"

	"github.com/pagesmith/pagesmith/internal/errors"
	"github.com/pagesmith/pagesmith/internal/logging"
	"github.com/pagesmith/pagesmith/internal/registry"
)

// Options configures the renderer.
type Options struct {
	// Minify controls post-render minification. Disabling it is a
	// debugging aid; production builds keep it on.
	Minify bool
}

// Renderer renders template components to minified static markup.
type Renderer struct {
	minifier *minify.M
	options  Options
	logger   logging.Logger
}

// New creates a renderer with html, css, and js minifiers registered so
// inline <style> and <script> content is minified along with the markup.
func New(options Options, logger logging.Logger) *Renderer {
	m := minify.New()
	m.AddFunc("text/html", html.Minify)
	m.AddFunc("text/css", css.Minify)
	m.AddFuncRegexp(regexp.MustCompile("^(application|text)/(x-)?(java|ecma)script$"), js.Minify)

	return &Renderer{
		minifier: m,
		options:  options,
		logger:   logger.WithComponent("renderer"),
	}
}

// Render executes the component with the given properties and returns the
// minified markup. Execution failure surfaces as a render error carrying
// the underlying message; a minifier failure on well-formed markup is not
// expected and propagates as the general build failure.
func (r *Renderer) Render(ctx context.Context, component *registry.Component, props map[string]interface{}) (string, error) {
	var buf bytes.Buffer
	if err := component.Render(&buf, props); err != nil {
		return "", errors.NewRenderError(errors.ErrCodeRenderFailed, "rendering template", err).WithPath(component.Path)
	}

	markup := buf.String()
	r.logger.Debug(ctx, "rendered component", "template", component.Path, "export", component.Export.String(), "bytes", len(markup))

	if !r.options.Minify {
		return markup, nil
	}

	minified, err := r.minifier.String("text/html", markup)
	if err != nil {
		return "", fmt.Errorf("minifying markup for %s: %w", component.Path, err)
	}

	return minified, nil
}

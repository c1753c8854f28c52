// Package datasource loads JSON data sources and folds them into the single
// properties mapping a build renders with.
package datasource

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/PaesslerAG/jsonpath"

	"github.com/pagesmith/pagesmith/internal/errors"
	"github.com/pagesmith/pagesmith/internal/logging"
	"github.com/pagesmith/pagesmith/internal/validation"
)

// Spec names one input file and an optional sub-key to extract before
// merging. Key may be a plain key or a dotted path ("meta.page").
type Spec struct {
	Filename string `json:"filename"`
	Key      string `json:"key,omitempty"`
}

// Resolver loads and merges data sources from the data root.
type Resolver struct {
	sandbox *validation.Sandbox
	logger  logging.Logger
}

// NewResolver creates a data source resolver gated by the given sandbox.
func NewResolver(sandbox *validation.Sandbox, logger logging.Logger) *Resolver {
	return &Resolver{
		sandbox: sandbox,
		logger:  logger.WithComponent("datasource"),
	}
}

// Resolve folds the specs, in listed order, into one properties mapping.
// Later sources override earlier ones per Merge semantics. Specs with an
// empty filename are skipped.
func (r *Resolver) Resolve(ctx context.Context, specs []Spec) (map[string]interface{}, error) {
	props := make(map[string]interface{})

	for _, spec := range specs {
		if spec.Filename == "" {
			continue
		}

		content, err := r.load(spec)
		if err != nil {
			return nil, err
		}

		props = Merge(props, content)
		r.logger.Debug(ctx, "merged data source", "file", spec.Filename, "key", spec.Key)
	}

	return props, nil
}

func (r *Resolver) load(spec Spec) (map[string]interface{}, error) {
	abs, err := r.sandbox.Resolve(validation.RootData, spec.Filename)
	if err != nil {
		return nil, err
	}

	raw, err := os.ReadFile(abs)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NewNotFoundError(errors.ErrCodeDataNotFound, "data source not found").WithPath(spec.Filename)
		}
		return nil, errors.NewInternalError(errors.ErrCodeInternal, "reading data source", err).WithPath(spec.Filename)
	}

	var doc interface{}
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, errors.NewParseError(errors.ErrCodeDataMalformed, "malformed JSON in data source", err).WithPath(spec.Filename)
	}

	if spec.Key != "" {
		return extractKey(doc, spec)
	}

	content, ok := doc.(map[string]interface{})
	if !ok {
		return nil, errors.NewParseError(errors.ErrCodeDataShape,
			fmt.Sprintf("data source must be a JSON object, got %T", doc), nil).WithPath(spec.Filename)
	}

	return content, nil
}

// extractKey pulls spec.Key out of the parsed document. An absent key yields
// an empty mapping, not an error; a present key holding a non-mapping is a
// shape error.
func extractKey(doc interface{}, spec Spec) (map[string]interface{}, error) {
	value, err := jsonpath.Get("$."+spec.Key, doc)
	if err != nil || value == nil {
		return map[string]interface{}{}, nil
	}

	content, ok := value.(map[string]interface{})
	if !ok {
		return nil, errors.NewParseError(errors.ErrCodeDataShape,
			fmt.Sprintf("key %q must hold a JSON object, got %T", spec.Key, value), nil).WithPath(spec.Filename)
	}

	return content, nil
}

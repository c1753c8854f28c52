// Package registry keeps the process-wide registry of loaded template
// components, keyed by absolute file path.
//
// The registry exists to make hot reload explicit: a build invalidates every
// entry under the template root before loading, so the next Load always
// re-parses the file's current on-disk content. Lookup and invalidation are
// mutex-guarded; serialization of whole builds is the orchestrator's job
// (it holds a global build lock), the registry alone does not make
// interleaved builds safe.
package registry

import (
	"os"
	"strings"
	"sync"
)

// TemplateRegistry manages loaded template components.
type TemplateRegistry struct {
	mutex   sync.RWMutex
	entries map[string]*Component
}

// NewTemplateRegistry creates an empty template registry.
func NewTemplateRegistry() *TemplateRegistry {
	return &TemplateRegistry{
		entries: make(map[string]*Component),
	}
}

// Load parses the template file at abs fresh and stores it, replacing any
// previous entry for the same path.
func (r *TemplateRegistry) Load(abs string) (*Component, error) {
	component, err := loadComponent(abs)
	if err != nil {
		return nil, err
	}

	r.mutex.Lock()
	r.entries[abs] = component
	r.mutex.Unlock()

	return component, nil
}

// Get retrieves a loaded component by absolute path.
func (r *TemplateRegistry) Get(abs string) (*Component, bool) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	component, exists := r.entries[abs]
	return component, exists
}

// Invalidate removes every entry whose path equals pathPrefix or lies under
// it, and returns how many were removed. Containment is separator-boundary
// aware: "/r/ab" does not invalidate "/r/abc".
func (r *TemplateRegistry) Invalidate(pathPrefix string) int {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	removed := 0
	for path := range r.entries {
		if path == pathPrefix || strings.HasPrefix(path, pathPrefix+string(os.PathSeparator)) {
			delete(r.entries, path)
			removed++
		}
	}

	return removed
}

// Count returns the number of loaded components.
func (r *TemplateRegistry) Count() int {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	return len(r.entries)
}

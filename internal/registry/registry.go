package registry

import (
	"sort"
	"sync"

	"github.com/json-to-c4/c4gen/internal/model"
)

// ElementRenderer renders one element as a C4 diagram line.
type ElementRenderer interface {
	ElementType() model.Type
	Render(e *model.Element) string
}

// Default is the global renderer registry.
var Default = New()

// Registry holds element renderers keyed by element type.
type Registry struct {
	mu        sync.RWMutex
	renderers map[model.Type]ElementRenderer
}

// New returns a new empty registry.
func New() *Registry {
	return &Registry{renderers: make(map[model.Type]ElementRenderer)}
}

// Register adds a renderer for its element type, replacing any previous one.
func (r *Registry) Register(h ElementRenderer) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.renderers[h.ElementType()] = h
}

// Get returns the renderer for the element type, or nil and false.
func (r *Registry) Get(t model.Type) (ElementRenderer, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	h, ok := r.renderers[t]
	return h, ok
}

// ListSupportedTypes returns all registered element types in declaration order.
func (r *Registry) ListSupportedTypes() []model.Type {
	r.mu.RLock()
	defer r.mu.RUnlock()
	types := make([]model.Type, 0, len(r.renderers))
	for t := range r.renderers {
		types = append(types, t)
	}
	sort.Slice(types, func(i, j int) bool { return types[i] < types[j] })
	return types
}

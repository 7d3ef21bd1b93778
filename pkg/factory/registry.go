// Package factory maps file extensions to template factories so directory
// scans can turn files into concrete template objects.
package factory

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/goliatone/go-templatereg/pkg/registry"
)

// Factory aliases the canonical factory interface for convenience.
type Factory = registry.Factory

// Func adapts a plain function to the Factory interface.
type Func func(filename, dir string) (registry.Template, error)

// New calls the wrapped function.
func (f Func) New(filename, dir string) (registry.Template, error) {
	return f(filename, dir)
}

// Registry stores template factories by file extension. It satisfies
// registry.FactoryResolver.
type Registry struct {
	mu        sync.RWMutex
	factories map[string]Factory
}

// NewRegistry creates an empty factory registry.
func NewRegistry() *Registry {
	return &Registry{
		factories: make(map[string]Factory),
	}
}

// Register adds a factory for an extension. Duplicate extensions return an
// error.
func (r *Registry) Register(extension string, factory Factory) error {
	if factory == nil {
		return fmt.Errorf("factory: factory is required")
	}
	ext := normalizeExtension(extension)
	if ext == "" {
		return fmt.Errorf("factory: extension is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.factories[ext]; exists {
		return fmt.Errorf("factory: extension %q already registered", ext)
	}

	r.factories[ext] = factory
	return nil
}

// MustRegister panics on registration failure. Useful for init-time wiring.
func (r *Registry) MustRegister(extension string, factory Factory) {
	if err := r.Register(extension, factory); err != nil {
		panic(err)
	}
}

// FactoryFor retrieves the factory for an extension, reporting whether one is
// registered.
func (r *Registry) FactoryFor(extension string) (registry.Factory, bool) {
	ext := normalizeExtension(extension)
	if ext == "" {
		return nil, false
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	factory, ok := r.factories[ext]
	return factory, ok
}

// Has reports whether an extension is registered.
func (r *Registry) Has(extension string) bool {
	_, ok := r.FactoryFor(extension)
	return ok
}

// Extensions returns the sorted list of registered extensions.
func (r *Registry) Extensions() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	extensions := make([]string, 0, len(r.factories))
	for ext := range r.factories {
		extensions = append(extensions, ext)
	}
	sort.Strings(extensions)
	return extensions
}

func normalizeExtension(extension string) string {
	return strings.ToLower(strings.TrimPrefix(strings.TrimSpace(extension), "."))
}

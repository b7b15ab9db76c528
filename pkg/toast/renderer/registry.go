package renderer

import (
	"fmt"
	"slices"
	"strings"
	"sync"
)

// Registry maps library names to variants. Names are case-insensitive.
type Registry struct {
	mu   sync.RWMutex
	libs map[string]Library
}

// NewRegistry creates a registry holding libs.
// It panics on duplicate names.
func NewRegistry(libs ...Library) *Registry {
	r := &Registry{libs: make(map[string]Library, len(libs))}
	for _, lib := range libs {
		if err := r.Register(lib); err != nil {
			panic(err)
		}
	}
	return r
}

// DefaultRegistry returns a registry with the bundled Toastr and Noty variants.
func DefaultRegistry() *Registry {
	return NewRegistry(Toastr(), Noty())
}

// Register adds lib under its name.
func (r *Registry) Register(lib Library) error {
	if lib == nil || lib.Name() == "" {
		return fmt.Errorf("%w: library must have a name", ErrUnknownLibrary)
	}

	key := strings.ToLower(lib.Name())

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.libs[key]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateLibrary, lib.Name())
	}
	r.libs[key] = lib
	return nil
}

// Lookup returns the library registered under name.
func (r *Registry) Lookup(name string) (Library, error) {
	r.mu.RLock()
	lib, ok := r.libs[strings.ToLower(name)]
	r.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownLibrary, name)
	}
	return lib, nil
}

// Names returns the registered names, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.libs))
	for name := range r.libs {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

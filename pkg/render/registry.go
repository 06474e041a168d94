package render

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/goliatone/go-gentpl/pkg/runner"
)

// Registry stores Go-implemented emitters by name so manifests can refer to
// generators that are not template files.
type Registry struct {
	mu       sync.RWMutex
	emitters map[string]runner.Emitter
}

// NewRegistry creates an empty registry instance.
func NewRegistry() *Registry {
	return &Registry{
		emitters: make(map[string]runner.Emitter),
	}
}

// Register adds an emitter under name. Duplicate names return an error.
func (r *Registry) Register(name string, emitter runner.Emitter) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("render: emitter name is required")
	}
	if emitter == nil {
		return fmt.Errorf("render: emitter %q is nil", name)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.emitters[name]; exists {
		return fmt.Errorf("render: emitter %q already registered", name)
	}

	r.emitters[name] = emitter
	return nil
}

// MustRegister panics on registration failure. Useful for init-time wiring.
func (r *Registry) MustRegister(name string, emitter runner.Emitter) {
	if err := r.Register(name, emitter); err != nil {
		panic(err)
	}
}

// Get retrieves an emitter by name.
func (r *Registry) Get(name string) (runner.Emitter, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	emitter, ok := r.emitters[name]
	if !ok {
		return nil, fmt.Errorf("render: emitter %q not found", name)
	}
	return emitter, nil
}

// List returns the registered names in sorted order.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.emitters))
	for name := range r.emitters {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Has reports whether an emitter is registered.
func (r *Registry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.emitters[name]
	return ok
}

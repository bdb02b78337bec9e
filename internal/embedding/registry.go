package embedding

import (
	"fmt"
	"strings"
	"sync"

	apperrors "embedpipe/pkg/errors"
)

// Registry maps user-facing backend names to registered specs.
// Friendly aliases resolve case-insensitively; canonical identifiers
// resolve exactly.
type Registry struct {
	mu       sync.RWMutex
	aliases  map[string]string // alias -> identifier, keyed as registered
	backends map[string]Spec   // identifier -> spec
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		aliases:  make(map[string]string),
		backends: make(map[string]Spec),
	}
}

// Register adds a backend spec under its canonical identifier plus a
// friendly alias stored in both its natural case and lower case.
// Registering the same identifier or alias twice is an error.
func (r *Registry) Register(spec Spec, friendly string) error {
	if spec.Identifier == "" || spec.New == nil {
		return fmt.Errorf("invalid backend spec for alias %q", friendly)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.backends[spec.Identifier]; exists {
		return fmt.Errorf("backend %s already registered", spec.Identifier)
	}
	r.backends[spec.Identifier] = spec

	for _, alias := range []string{friendly, strings.ToLower(friendly)} {
		if alias == "" {
			continue
		}
		if existing, exists := r.aliases[alias]; exists && existing != spec.Identifier {
			return fmt.Errorf("alias %s already registered for backend %s", alias, existing)
		}
		r.aliases[alias] = spec.Identifier
	}
	return nil
}

// Resolve maps a user-facing name to its backend spec. Alias lookup is
// case-insensitive; a name that is not an alias may still be a literal
// canonical identifier, matched exactly.
func (r *Registry) Resolve(name string) (Spec, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	identifier := name
	if id, ok := r.aliases[name]; ok {
		identifier = id
	} else if id, ok := r.aliases[strings.ToLower(name)]; ok {
		identifier = id
	}

	spec, ok := r.backends[identifier]
	if !ok {
		return Spec{}, fmt.Errorf("%w: %s", apperrors.ErrUnknownBackend, name)
	}
	return spec, nil
}

// Identifiers lists the canonical identifiers of all registered
// backends, for introspection and error messages.
func (r *Registry) Identifiers() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := make([]string, 0, len(r.backends))
	for id := range r.backends {
		ids = append(ids, id)
	}
	return ids
}

// Len returns the number of registered backends.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.backends)
}

package units

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
)

// Registry is the unit lookup table backing weak references. Decoys hold a
// unit ID rather than a pointer and resolve it here, so a unit leaving the
// simulation never leaves a dangling reference behind.
type Registry struct {
	mu    sync.RWMutex
	units map[uuid.UUID]Unit
}

// NewRegistry creates an empty unit registry.
func NewRegistry() *Registry {
	return &Registry{
		units: make(map[uuid.UUID]Unit),
	}
}

// Add registers a unit. Registering the same ID twice is an error.
func (r *Registry) Add(u Unit) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.units[u.ID()]; exists {
		return fmt.Errorf("unit %s already registered", u.ID())
	}
	r.units[u.ID()] = u
	return nil
}

// Remove deregisters a unit by ID. Removing an unknown ID is a no-op.
func (r *Registry) Remove(id uuid.UUID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.units, id)
}

// Lookup resolves a unit ID. The second return is false if the unit is
// unknown or has been removed.
func (r *Registry) Lookup(id uuid.UUID) (Unit, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	u, ok := r.units[id]
	return u, ok
}

// Resolve is Lookup plus a liveness check: it returns nil unless the unit is
// registered and still alive.
func (r *Registry) Resolve(id uuid.UUID) Unit {
	u, ok := r.Lookup(id)
	if !ok || !u.Alive() {
		return nil
	}
	return u
}

// Len returns the number of registered units.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.units)
}

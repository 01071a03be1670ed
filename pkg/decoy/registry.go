package decoy

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/picogrid/decoy-sim/pkg/geom"
	"github.com/picogrid/decoy-sim/pkg/units"
)

// Registry is the owned collection of live decoys any seeker may query.
// Membership tracks the active flag exactly: a decoy is in the registry iff
// it is active. Iteration order is insertion order, which makes tie-breaks
// in the comparison engine deterministic (first registered wins).
type Registry struct {
	clock Clock
	units *units.Registry

	mu     sync.RWMutex
	order  []*Decoy
	member map[uuid.UUID]struct{}
}

// NewRegistry creates an empty decoy registry bound to the simulation clock
// and the unit registry used to resolve source-aircraft references.
func NewRegistry(clock Clock, unitReg *units.Registry) *Registry {
	return &Registry{
		clock:  clock,
		units:  unitReg,
		member: make(map[uuid.UUID]struct{}),
	}
}

// Create initializes a decoy, stamps its spawn time from the simulation
// clock, and registers it. The RCS floor invariant (> 0) is applied here.
func (r *Registry) Create(source units.Unit, position, velocity geom.Vec3, rcs, lifetime, drag float64) (*Decoy, error) {
	if source == nil {
		return nil, fmt.Errorf("decoy source unit is required")
	}
	if lifetime <= 0 {
		return nil, fmt.Errorf("decoy lifetime must be positive, got %f", lifetime)
	}
	if drag < 0 || drag > 1 {
		return nil, fmt.Errorf("decoy drag coefficient must be in [0,1], got %f", drag)
	}
	if rcs < minRCS {
		rcs = minRCS
	}

	d := &Decoy{
		id:       uuid.New(),
		source:   source.ID(),
		units:    r.units,
		clock:    r.clock,
		registry: r,
		rcs:      rcs,
		lifetime: lifetime,
		spawned:  r.clock.Now(),
		drag:     drag,
		position: position,
		velocity: velocity,
		active:   true,
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.order = append(r.order, d)
	r.member[d.id] = struct{}{}
	return d, nil
}

// remove deregisters a decoy, preserving insertion order of the remainder.
// Idempotent; called from Deactivate and from lazy eviction during queries.
func (r *Registry) remove(d *Decoy) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.member[d.id]; !ok {
		return
	}
	delete(r.member, d.id)
	for i, candidate := range r.order {
		if candidate == d {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
}

// Evict removes a decoy found stale during iteration. Snapshot-based
// traversal makes this safe mid-query.
func (r *Registry) Evict(d *Decoy) {
	r.remove(d)
}

// Contains reports whether the decoy is currently registered.
func (r *Registry) Contains(d *Decoy) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.member[d.id]
	return ok
}

// Len returns the number of registered decoys.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.order)
}

// Snapshot returns the registered decoys in insertion order. Callers iterate
// the copy, so removing entries (including self-deactivation inside Tick)
// never corrupts a traversal in progress.
func (r *Registry) Snapshot() []*Decoy {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*Decoy, len(r.order))
	copy(out, r.order)
	return out
}

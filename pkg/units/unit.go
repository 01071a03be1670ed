package units

import (
	"sync"

	"github.com/google/uuid"
	"github.com/picogrid/decoy-sim/pkg/geom"
)

// Unit is the handle the countermeasure core uses to observe an aircraft or
// other host-simulation entity. Implementations are owned by the host
// integration layer; the core never reaches past this interface.
type Unit interface {
	ID() uuid.UUID
	Name() string
	Position() geom.Vec3
	Velocity() geom.Vec3
	// Forward is the unit's heading as a unit vector.
	Forward() geom.Vec3
	// RadarEmitting reports whether the unit's own radar is transmitting.
	RadarEmitting() bool
	// RadarCrossSection is the unit's current (possibly stealth-reduced) RCS.
	RadarCrossSection() float64
	// Alive reports whether the unit still exists and is not destroyed.
	Alive() bool
}

// Aircraft is a concrete Unit implementation used by the scenario
// simulations and tests.
type Aircraft struct {
	id   uuid.UUID
	name string

	mu            sync.RWMutex
	position      geom.Vec3
	velocity      geom.Vec3
	forward       geom.Vec3
	radarEmitting bool
	rcs           float64
	destroyed     bool
}

// NewAircraft creates an aircraft with the given name and base radar cross
// section in square meters.
func NewAircraft(name string, rcs float64) *Aircraft {
	return &Aircraft{
		id:      uuid.New(),
		name:    name,
		forward: geom.Vec3{X: 1},
		rcs:     rcs,
	}
}

func (a *Aircraft) ID() uuid.UUID { return a.id }
func (a *Aircraft) Name() string  { return a.name }

func (a *Aircraft) Position() geom.Vec3 {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.position
}

func (a *Aircraft) Velocity() geom.Vec3 {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.velocity
}

func (a *Aircraft) Forward() geom.Vec3 {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.forward
}

func (a *Aircraft) RadarEmitting() bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.radarEmitting
}

func (a *Aircraft) RadarCrossSection() float64 {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.rcs
}

func (a *Aircraft) Alive() bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return !a.destroyed
}

// SetKinematics updates position, velocity and heading in one call. A zero
// velocity leaves the previous heading in place.
func (a *Aircraft) SetKinematics(position, velocity geom.Vec3) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.position = position
	a.velocity = velocity
	if v := velocity.Normalized(); v != (geom.Vec3{}) {
		a.forward = v
	}
}

// SetForward overrides the heading independently of velocity.
func (a *Aircraft) SetForward(forward geom.Vec3) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.forward = forward.Normalized()
}

// SetRadarEmitting toggles the aircraft's radar emitter.
func (a *Aircraft) SetRadarEmitting(on bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.radarEmitting = on
}

// SetRadarCrossSection updates the aircraft's current RCS.
func (a *Aircraft) SetRadarCrossSection(rcs float64) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.rcs = rcs
}

// Destroy marks the aircraft destroyed. Decoys referencing it fall back to
// worst-case effectiveness and stop attracting missiles.
func (a *Aircraft) Destroy() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.destroyed = true
}

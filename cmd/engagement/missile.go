package engagement

import (
	"github.com/google/uuid"
	"github.com/picogrid/decoy-sim/pkg/decoy"
	"github.com/picogrid/decoy-sim/pkg/geom"
	"github.com/picogrid/decoy-sim/pkg/units"
)

// Missile statuses
const (
	MissileStatusInbound  = "INBOUND"
	MissileStatusHit      = "HIT"
	MissileStatusDefeated = "DEFEATED"
)

// proximityFuseRadius is the detonation distance in meters.
const proximityFuseRadius = 25.0

// Missile is a radar-guided missile with a simple pursuit seeker. It
// implements seeker.Seeker, so the comparison engine can retarget it onto a
// decoy without reaching into its internals.
type Missile struct {
	id       uuid.UUID
	unitReg  *units.Registry
	position geom.Vec3
	speed    float64
	radar    decoy.RadarParams
	status   string

	targetID  uuid.UUID
	hasTarget bool
	locked    bool

	knownPosition geom.Vec3
	knownVelocity geom.Vec3
}

// NewMissile creates an inbound missile tracking the given unit.
func NewMissile(position geom.Vec3, speed float64, radar decoy.RadarParams, target units.Unit, unitReg *units.Registry) *Missile {
	return &Missile{
		id:            uuid.New(),
		unitReg:       unitReg,
		position:      position,
		speed:         speed,
		radar:         radar,
		status:        MissileStatusInbound,
		targetID:      target.ID(),
		hasTarget:     true,
		locked:        true,
		knownPosition: target.Position(),
		knownVelocity: target.Velocity(),
	}
}

func (m *Missile) ID() uuid.UUID  { return m.id }
func (m *Missile) Status() string { return m.status }
func (m *Missile) Inbound() bool  { return m.status == MissileStatusInbound }

// seeker.Seeker implementation

func (m *Missile) Position() geom.Vec3            { return m.position }
func (m *Missile) RadarParams() decoy.RadarParams { return m.radar }

func (m *Missile) TargetUnit() (uuid.UUID, bool) {
	return m.targetID, m.hasTarget
}

func (m *Missile) SetKnownTargetState(position, velocity geom.Vec3) {
	m.knownPosition = position
	m.knownVelocity = velocity
}

func (m *Missile) DropLock() {
	m.locked = false
}

func (m *Missile) ClearTargetUnit() {
	m.hasTarget = false
}

// Tick advances guidance one step: refresh the known target state while a
// tracked unit is alive, then pursue the predicted intercept point.
func (m *Missile) Tick(dt float64) {
	if !m.Inbound() {
		return
	}

	if m.hasTarget {
		if target := m.unitReg.Resolve(m.targetID); target != nil {
			m.knownPosition = target.Position()
			m.knownVelocity = target.Velocity()
			m.locked = true
		}
	}

	// Short linear lead on the last-known state.
	aim := m.knownPosition.Add(m.knownVelocity.Scale(dt))
	direction := aim.Sub(m.position).Normalized()
	m.position = m.position.Add(direction.Scale(m.speed * dt))

	if m.position.Y < 0 {
		m.status = MissileStatusDefeated
	}
}

// DistanceToAim is the current miss distance against the aim point.
func (m *Missile) DistanceToAim() float64 {
	return geom.Distance(m.position, m.knownPosition)
}

// Fused reports whether the missile is within proximity-fuse range of the
// given point.
func (m *Missile) Fused(point geom.Vec3) bool {
	return geom.Distance(m.position, point) <= proximityFuseRadius
}

// MarkHit finalizes the missile after detonation on a real target.
func (m *Missile) MarkHit() {
	m.status = MissileStatusHit
}

// MarkDefeated finalizes the missile after it wasted itself on a decoy or
// the ground.
func (m *Missile) MarkDefeated() {
	m.status = MissileStatusDefeated
}

// Package decoy models expendable active radar decoys: their flight, their
// false radar return, and the decision of whether a missile seeker locked on
// the launching aircraft should be pulled onto the decoy instead.
package decoy

import (
	"math"

	"github.com/google/uuid"
	"github.com/picogrid/decoy-sim/pkg/geom"
	"github.com/picogrid/decoy-sim/pkg/units"
)

const (
	// gravityY is vertical acceleration in m/s^2, y-up.
	gravityY = -9.81

	// groundEpsilon keeps a grounded decoy fractionally above the terrain
	// plane so range math never sees a negative altitude.
	groundEpsilon = 0.1

	// minRadarDistance clamps seeker-to-emitter distance so the range
	// falloff never divides by zero.
	minRadarDistance = 1.0

	// minRCS is the absolute floor applied at creation. Launch configs
	// apply their own, higher floor on top of this.
	minRCS = 0.01

	// FallbackEffectiveness is used when the source aircraft can no longer
	// be evaluated: worst case, not best case.
	FallbackEffectiveness = 0.25

	// minEffectiveness bounds the threshold divisor in the attraction
	// contest.
	minEffectiveness = 0.01

	// headingPenaltyDot is the forward-vs-threat dot product above which
	// the aircraft counts as heading toward the seeker. Notching
	// (perpendicular, dot near zero) and retreating incur no penalty.
	headingPenaltyDot = 0.1

	// DefaultCombinedPenalty is the effectiveness when both behavioral
	// penalties apply.
	DefaultCombinedPenalty = 0.25

	// DestructionGraceSeconds is how long a deactivated decoy lingers
	// before the owner may free it, so external audio/visual cleanup can
	// finish.
	DestructionGraceSeconds = 0.5
)

// RadarParams are the seeker radar characteristics the comparison runs
// against. Supplied by the seeker collaborator, read-only here.
type RadarParams struct {
	MaxRange  float64 // meters
	MaxSignal float64 // clipping ceiling for any computed return
}

// LineOfSight answers terrain occlusion queries between two points. Provided
// by the host; nil means unobstructed everywhere.
type LineOfSight interface {
	Occluded(from, to geom.Vec3) bool
}

// Environment bundles the collaborators and tuning the attraction decision
// needs beyond the decoy's own state.
type Environment struct {
	Terrain         LineOfSight
	CombinedPenalty float64 // effectiveness when both penalties apply
}

// Decoy is one in-flight expendable decoy. It holds a weak reference to its
// launching aircraft (ID resolved through the unit registry), so the source
// becoming invalid degrades behavior instead of dangling.
type Decoy struct {
	id     uuid.UUID
	source uuid.UUID

	units    *units.Registry
	clock    Clock
	registry *Registry

	rcs      float64
	lifetime float64
	spawned  float64
	drag     float64

	position geom.Vec3
	velocity geom.Vec3

	active        bool
	deactivatedAt float64
	destroyed     bool
}

func (d *Decoy) ID() uuid.UUID       { return d.id }
func (d *Decoy) SourceID() uuid.UUID { return d.source }
func (d *Decoy) Position() geom.Vec3 { return d.position }
func (d *Decoy) Velocity() geom.Vec3 { return d.velocity }
func (d *Decoy) RCS() float64        { return d.rcs }
func (d *Decoy) Active() bool        { return d.active }

// Tick integrates one simulation step: explicit Euler position update,
// gravity, linear drag, ground impact-and-stop, then lifetime expiry.
// No-op once the decoy is inactive.
func (d *Decoy) Tick(dt float64) {
	if !d.active || dt <= 0 {
		return
	}

	d.position = d.position.Add(d.velocity.Scale(dt))
	d.velocity = d.velocity.Add(geom.Vec3{Y: gravityY}.Scale(dt))
	d.velocity = d.velocity.Sub(d.velocity.Scale(d.drag * dt))

	if d.position.Y < 0 {
		// Impact-and-stop, not a bounce.
		d.velocity = geom.Vec3{}
		d.position.Y = groundEpsilon
	}

	if d.clock.Now()-d.spawned > d.lifetime {
		d.Deactivate()
	}
}

// Deactivate removes the decoy from targeting: it leaves the registry
// immediately and becomes eligible for destruction after the grace window.
// Idempotent.
func (d *Decoy) Deactivate() {
	if !d.active {
		return
	}
	d.active = false
	d.deactivatedAt = d.clock.Now()
	d.registry.remove(d)
}

// Destroy deactivates the decoy and skips the grace window, for external
// destruction (e.g. the host removed the object outright).
func (d *Decoy) Destroy() {
	d.Deactivate()
	d.destroyed = true
}

// ReadyToDestroy reports whether the owner may free this decoy: it is
// inactive and the cleanup grace window has elapsed.
func (d *Decoy) ReadyToDestroy() bool {
	if d.active {
		return false
	}
	if d.destroyed {
		return true
	}
	return d.clock.Now()-d.deactivatedAt >= DestructionGraceSeconds
}

// RadarReturn is the decoy's apparent signal strength at the seeker,
// scaled by the given effectiveness (pass 1 for the raw return). Zero once
// inactive. The quarter-power RCS term models diminishing sensitivity: a
// 16x stronger emitter only doubles the return.
func (d *Decoy) RadarReturn(seekerPos geom.Vec3, radar RadarParams, effectiveness float64) float64 {
	if !d.active {
		return 0
	}
	return signalStrength(seekerPos, d.position, d.rcs, radar) * effectiveness
}

// Effectiveness models how convincing the decoy is, judged entirely by the
// source aircraft's current behavior. Each of the two penalties (radar
// emitting; heading toward the threat) multiplies in sqrt(combinedPenalty),
// so both together reproduce the configured combined value exactly. An
// invalid source returns the fixed worst-case fallback.
func (d *Decoy) Effectiveness(seekerPos geom.Vec3, combinedPenalty float64) float64 {
	source := d.units.Resolve(d.source)
	if source == nil {
		return FallbackEffectiveness
	}

	if combinedPenalty < 0 {
		combinedPenalty = 0
	} else if combinedPenalty > 1 {
		combinedPenalty = 1
	}
	penaltyFactor := math.Sqrt(combinedPenalty)

	effectiveness := 1.0
	if source.RadarEmitting() {
		effectiveness *= penaltyFactor
	}

	toSeeker := seekerPos.Sub(source.Position()).Normalized()
	if source.Forward().Dot(toSeeker) > headingPenaltyDot {
		effectiveness *= penaltyFactor
	}

	return effectiveness
}

// ShouldAttractMissile decides whether this decoy pulls a seeker off the
// given tracked target. A decoy only competes for missiles locked on its own
// launching aircraft; out-of-range and terrain-masked decoys never win. The
// behavioral penalty divides the target-return threshold rather than
// multiplying the decoy return, preserving a winnable contest under the
// compressed quarter-power scale.
func (d *Decoy) ShouldAttractMissile(seekerPos geom.Vec3, target units.Unit, radar RadarParams, env Environment) bool {
	if !d.active {
		return false
	}
	if d.units.Resolve(d.source) == nil {
		return false
	}
	if target == nil || !target.Alive() {
		return false
	}
	if target.ID() != d.source {
		return false
	}
	if geom.Distance(seekerPos, d.position) > radar.MaxRange {
		return false
	}
	if env.Terrain != nil && env.Terrain.Occluded(seekerPos, d.position) {
		return false
	}

	decoyReturn := d.RadarReturn(seekerPos, radar, 1)
	targetReturn := signalStrength(seekerPos, target.Position(), target.RadarCrossSection(), radar)
	effectiveness := d.Effectiveness(seekerPos, env.CombinedPenalty)

	adjustedThreshold := targetReturn / math.Max(effectiveness, minEffectiveness)
	return decoyReturn > adjustedThreshold
}

// signalStrength is the shared radar return model: range falloff against a
// quarter-power RCS term, clipped at the receiver ceiling.
func signalStrength(seekerPos, emitterPos geom.Vec3, rcs float64, radar RadarParams) float64 {
	distance := math.Max(geom.Distance(seekerPos, emitterPos), minRadarDistance)
	if rcs < 0 {
		rcs = 0
	}
	signal := radar.MaxRange / distance * math.Pow(rcs, 0.25)
	return math.Min(signal, radar.MaxSignal)
}

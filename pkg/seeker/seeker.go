// Package seeker holds the radar comparison engine: given a missile seeker's
// view of the world, it decides whether any live decoy should pull the lock
// off the tracked aircraft, and applies the retarget to the seeker handle.
package seeker

import (
	"github.com/google/uuid"
	"github.com/picogrid/decoy-sim/pkg/decoy"
	"github.com/picogrid/decoy-sim/pkg/geom"
)

// Seeker is the missile-seeker handle the engine operates on. The host
// integration implements this contract; the engine never reaches into host
// internals.
type Seeker interface {
	Position() geom.Vec3
	RadarParams() decoy.RadarParams

	// TargetUnit returns the tracked unit's ID; false when nothing is
	// tracked.
	TargetUnit() (uuid.UUID, bool)

	// SetKnownTargetState overwrites the seeker's last-known target
	// position and velocity.
	SetKnownTargetState(position, velocity geom.Vec3)

	// DropLock invalidates any established lock, forcing reacquisition.
	DropLock()

	// ClearTargetUnit clears the tracked unit reference so the real
	// aircraft is no longer followed.
	ClearTargetUnit()
}

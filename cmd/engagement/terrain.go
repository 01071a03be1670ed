package engagement

import "github.com/picogrid/decoy-sim/pkg/geom"

// Terrain is a flat plain with an optional infinite ridge running along the
// z axis at a fixed x. A sight line is occluded when it crosses the ridge
// plane below the crest.
type Terrain struct {
	RidgeEnabled bool
	RidgeX       float64
	RidgeCrestY  float64
}

// Occluded reports whether the segment from a to b is masked by terrain.
func (t *Terrain) Occluded(a, b geom.Vec3) bool {
	// Below-ground endpoints are always masked.
	if a.Y < 0 || b.Y < 0 {
		return true
	}

	if !t.RidgeEnabled {
		return false
	}

	// The segment must cross the ridge plane to be affected.
	if (a.X-t.RidgeX)*(b.X-t.RidgeX) >= 0 {
		return false
	}

	frac := (t.RidgeX - a.X) / (b.X - a.X)
	crossingY := a.Y + (b.Y-a.Y)*frac
	return crossingY < t.RidgeCrestY
}

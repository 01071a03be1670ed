// Package stealth adjusts launch-time decoy signatures for stealth-reduced
// aircraft. A replay-based decoy retransmits the signal it recorded, so it
// mimics the aircraft's unreduced signature; when a stealth provider is
// present, the reduction is reversed before the decoy's RCS is derived.
package stealth

import "github.com/picogrid/decoy-sim/pkg/units"

// Provider reports the RCS reduction applied to a unit by a stealth system.
// It is an optional collaborator supplied at construction time; a nil
// Provider means no stealth modeling is installed.
type Provider interface {
	// ReductionDivisor returns the divisor a stealth system applied to the
	// unit's RCS, and whether the unit is affected at all.
	ReductionDivisor(u units.Unit) (float64, bool)
}

// TrueRCS returns the unit's pre-reduction radar cross section. With no
// provider, or for unaffected units, the current RCS passes through
// unchanged. Non-positive divisors are ignored.
func TrueRCS(p Provider, u units.Unit) float64 {
	rcs := u.RadarCrossSection()
	if p == nil {
		return rcs
	}
	divisor, affected := p.ReductionDivisor(u)
	if !affected || divisor <= 0 {
		return rcs
	}
	return rcs * divisor
}

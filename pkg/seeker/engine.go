package seeker

import (
	"fmt"

	"github.com/picogrid/decoy-sim/pkg/decoy"
	"github.com/picogrid/decoy-sim/pkg/geom"
	"github.com/picogrid/decoy-sim/pkg/logger"
	"github.com/picogrid/decoy-sim/pkg/units"
)

// Config is the persisted countermeasure configuration.
type Config struct {
	// Enabled is the master kill-switch; when false all registry queries
	// and retargeting are skipped.
	Enabled bool

	// CombinedPenalty is the decoy effectiveness when both behavioral
	// penalties (radar emitting, heading toward the threat) apply.
	CombinedPenalty float64
}

// DefaultConfig returns the standard engine configuration.
func DefaultConfig() Config {
	return Config{
		Enabled:         true,
		CombinedPenalty: decoy.DefaultCombinedPenalty,
	}
}

// Validate checks the configuration.
func (c Config) Validate() error {
	if c.CombinedPenalty < 0 || c.CombinedPenalty > 1 {
		return fmt.Errorf("combined penalty must be between 0.0 and 1.0")
	}
	return nil
}

// Engine evaluates decoys against a seeker's tracked target and issues
// retargets. It owns no entities: the decoy and unit registries are passed
// in and shared with the rest of the simulation.
type Engine struct {
	cfg     Config
	decoys  *decoy.Registry
	units   *units.Registry
	terrain decoy.LineOfSight
	log     logger.Logger
}

// NewEngine creates a comparison engine. terrain may be nil for an
// unobstructed world.
func NewEngine(cfg Config, decoys *decoy.Registry, unitReg *units.Registry, terrain decoy.LineOfSight) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid engine config: %w", err)
	}
	return &Engine{
		cfg:     cfg,
		decoys:  decoys,
		units:   unitReg,
		terrain: terrain,
		log:     logger.WithPrefix("seeker"),
	}, nil
}

// SelectBestDecoy scores every registered decoy against the tracked target
// and returns the qualifying one with the strictly greatest radar return, or
// nil if none qualifies. Inactive entries discovered along the way are
// evicted. Ties resolve to the first-registered decoy.
func (e *Engine) SelectBestDecoy(seekerPos geom.Vec3, target units.Unit, radar decoy.RadarParams) *decoy.Decoy {
	env := decoy.Environment{
		Terrain:         e.terrain,
		CombinedPenalty: e.cfg.CombinedPenalty,
	}

	var best *decoy.Decoy
	var bestReturn float64

	for _, d := range e.decoys.Snapshot() {
		if !d.Active() {
			e.decoys.Evict(d)
			continue
		}
		if !d.ShouldAttractMissile(seekerPos, target, radar, env) {
			continue
		}
		signal := d.RadarReturn(seekerPos, radar, 1)
		if best == nil || signal > bestReturn {
			best = d
			bestReturn = signal
		}
	}

	return best
}

// RetargetIfNeeded is the per-seeker entry point, invoked once per
// evaluation cycle. If a decoy wins the comparison, the seeker's last-known
// target state is overwritten with the decoy's kinematics, the established
// lock is dropped, and the tracked unit reference is cleared. Returns the
// winning decoy, or nil when no retarget was issued.
func (e *Engine) RetargetIfNeeded(s Seeker) *decoy.Decoy {
	if !e.cfg.Enabled || e.decoys.Len() == 0 {
		return nil
	}

	targetID, tracking := s.TargetUnit()
	if !tracking {
		return nil
	}
	target := e.units.Resolve(targetID)
	if target == nil {
		return nil
	}

	best := e.SelectBestDecoy(s.Position(), target, s.RadarParams())
	if best == nil {
		return nil
	}

	s.SetKnownTargetState(best.Position(), best.Velocity())
	s.DropLock()
	s.ClearTargetUnit()

	e.log.Debugf("seeker retargeted from %s to decoy %s", target.Name(), best.ID())
	return best
}

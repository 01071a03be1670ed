package decoy

import (
	"fmt"
	"math"

	"github.com/picogrid/decoy-sim/pkg/geom"
	"github.com/picogrid/decoy-sim/pkg/stealth"
	"github.com/picogrid/decoy-sim/pkg/units"
)

// LaunchConfig tunes decoy creation. The RCS multiplier and floor shape the
// false signature; the ejection impulses model an aft-down ejector rack.
type LaunchConfig struct {
	RCSMultiplier   float64 // decoy RCS = max(trueRCS * multiplier, floor)
	RCSFloor        float64
	LifetimeSeconds float64
	DragCoefficient float64 // 0..1, linear drag
	EjectAftSpeed   float64 // m/s opposite the source's heading
	EjectDownSpeed  float64 // m/s downward
}

// DefaultLaunchConfig returns the standard expendable-decoy tuning.
func DefaultLaunchConfig() LaunchConfig {
	return LaunchConfig{
		RCSMultiplier:   3.0,
		RCSFloor:        0.5,
		LifetimeSeconds: 15,
		DragCoefficient: 0.25,
		EjectAftSpeed:   30,
		EjectDownSpeed:  10,
	}
}

// Validate checks the launch tuning.
func (c LaunchConfig) Validate() error {
	if c.RCSMultiplier <= 0 {
		return fmt.Errorf("rcs multiplier must be positive")
	}
	if c.RCSFloor <= 0 {
		return fmt.Errorf("rcs floor must be positive")
	}
	if c.LifetimeSeconds <= 0 {
		return fmt.Errorf("lifetime must be positive")
	}
	if c.DragCoefficient < 0 || c.DragCoefficient > 1 {
		return fmt.Errorf("drag coefficient must be between 0.0 and 1.0")
	}
	return nil
}

// Launcher creates decoys on behalf of launching aircraft. Ammo and cooldown
// bookkeeping stay with the caller; the launcher only derives the signature
// and initial kinematics and registers the entity.
type Launcher struct {
	cfg      LaunchConfig
	registry *Registry
	stealth  stealth.Provider // optional; nil degrades to identity RCS
}

// NewLauncher creates a launcher. stealthProvider may be nil.
func NewLauncher(cfg LaunchConfig, registry *Registry, stealthProvider stealth.Provider) (*Launcher, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid launch config: %w", err)
	}
	return &Launcher{
		cfg:      cfg,
		registry: registry,
		stealth:  stealthProvider,
	}, nil
}

// Launch ejects a decoy from the source aircraft. The decoy mimics the
// aircraft's true (pre-stealth-reduction) signature, scaled and floored per
// config, and inherits the aircraft's velocity plus the ejection impulse.
func (l *Launcher) Launch(source units.Unit) (*Decoy, error) {
	if source == nil || !source.Alive() {
		return nil, fmt.Errorf("launch source is not valid")
	}

	trueRCS := stealth.TrueRCS(l.stealth, source)
	rcs := math.Max(trueRCS*l.cfg.RCSMultiplier, l.cfg.RCSFloor)

	velocity := source.Velocity().
		Sub(source.Forward().Scale(l.cfg.EjectAftSpeed)).
		Sub(geom.Vec3{Y: l.cfg.EjectDownSpeed})

	return l.registry.Create(source, source.Position(), velocity,
		rcs, l.cfg.LifetimeSeconds, l.cfg.DragCoefficient)
}

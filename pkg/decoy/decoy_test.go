package decoy

import (
	"math"
	"testing"

	"github.com/picogrid/decoy-sim/pkg/geom"
	"github.com/picogrid/decoy-sim/pkg/units"
)

const floatTolerance = 1e-9

// testRig wires a clock, unit registry, decoy registry and a source
// aircraft the way the launcher does in production.
type testRig struct {
	clock    *SimClock
	units    *units.Registry
	registry *Registry
	aircraft *units.Aircraft
}

func newTestRig(t *testing.T) *testRig {
	t.Helper()

	clock := NewSimClock()
	unitReg := units.NewRegistry()
	aircraft := units.NewAircraft("Viper-11", 1.5)
	if err := unitReg.Add(aircraft); err != nil {
		t.Fatalf("failed to register aircraft: %v", err)
	}

	return &testRig{
		clock:    clock,
		units:    unitReg,
		registry: NewRegistry(clock, unitReg),
		aircraft: aircraft,
	}
}

func (r *testRig) mustCreate(t *testing.T, position, velocity geom.Vec3, rcs, lifetime, drag float64) *Decoy {
	t.Helper()
	d, err := r.registry.Create(r.aircraft, position, velocity, rcs, lifetime, drag)
	if err != nil {
		t.Fatalf("failed to create decoy: %v", err)
	}
	return d
}

func TestRadarReturnMonotonicInDistance(t *testing.T) {
	rig := newTestRig(t)
	d := rig.mustCreate(t, geom.Vec3{}, geom.Vec3{}, 4.5, 15, 0.25)
	radar := RadarParams{MaxRange: 5000, MaxSignal: 100}

	prev := math.Inf(1)
	for _, dist := range []float64{1, 10, 100, 1000, 2500, 5000, 20000} {
		signal := d.RadarReturn(geom.Vec3{X: dist}, radar, 1)
		if signal < 0 {
			t.Errorf("RadarReturn negative at distance %f: %f", dist, signal)
		}
		if signal > prev {
			t.Errorf("RadarReturn increased with distance at %f: %f > %f", dist, signal, prev)
		}
		prev = signal
	}
}

func TestRadarReturnMonotonicInRCS(t *testing.T) {
	rig := newTestRig(t)
	radar := RadarParams{MaxRange: 5000, MaxSignal: 100}
	seeker := geom.Vec3{X: 2000}

	prev := 0.0
	for _, rcs := range []float64{0.1, 0.5, 1.5, 4.5, 20, 100} {
		d := rig.mustCreate(t, geom.Vec3{}, geom.Vec3{}, rcs, 15, 0.25)
		signal := d.RadarReturn(seeker, radar, 1)
		if signal < prev {
			t.Errorf("RadarReturn decreased with RCS at %f: %f < %f", rcs, signal, prev)
		}
		prev = signal
	}
}

func TestRadarReturnClipping(t *testing.T) {
	rig := newTestRig(t)
	d := rig.mustCreate(t, geom.Vec3{}, geom.Vec3{}, 10000, 15, 0.25)
	radar := RadarParams{MaxRange: 5000, MaxSignal: 100}

	// Point blank: distance clamps to 1, raw signal would be enormous.
	signal := d.RadarReturn(geom.Vec3{X: 0.01}, radar, 1)
	if signal != radar.MaxSignal {
		t.Errorf("Expected clipped signal %f, got %f", radar.MaxSignal, signal)
	}

	// Effectiveness scales the clipped value.
	signal = d.RadarReturn(geom.Vec3{X: 0.01}, radar, 0.5)
	if signal != radar.MaxSignal*0.5 {
		t.Errorf("Expected %f, got %f", radar.MaxSignal*0.5, signal)
	}
}

func TestRadarReturnQuarterPower(t *testing.T) {
	rig := newTestRig(t)
	radar := RadarParams{MaxRange: 5000, MaxSignal: 100}
	seeker := geom.Vec3{X: 2000}

	weak := rig.mustCreate(t, geom.Vec3{}, geom.Vec3{}, 1, 15, 0.25)
	strong := rig.mustCreate(t, geom.Vec3{}, geom.Vec3{}, 16, 15, 0.25)

	// A 16x RCS advantage only doubles the return.
	ratio := strong.RadarReturn(seeker, radar, 1) / weak.RadarReturn(seeker, radar, 1)
	if math.Abs(ratio-2) > floatTolerance {
		t.Errorf("Expected 16x RCS to double the return, got ratio %f", ratio)
	}
}

func TestRadarReturnInactive(t *testing.T) {
	rig := newTestRig(t)
	d := rig.mustCreate(t, geom.Vec3{}, geom.Vec3{}, 4.5, 15, 0.25)
	d.Deactivate()

	radar := RadarParams{MaxRange: 5000, MaxSignal: 100}
	if signal := d.RadarReturn(geom.Vec3{X: 100}, radar, 1); signal != 0 {
		t.Errorf("Expected zero return from inactive decoy, got %f", signal)
	}
}

func TestEffectiveness(t *testing.T) {
	// Seeker due east of the aircraft; heading north is a perfect notch.
	seeker := geom.Vec3{X: 2500, Y: 1000}
	north := geom.Vec3{Z: 1}
	east := geom.Vec3{X: 1}

	tests := []struct {
		name     string
		radarOn  bool
		forward  geom.Vec3
		expected float64
	}{
		{
			name:     "notching and silent",
			radarOn:  false,
			forward:  north,
			expected: 1.0,
		},
		{
			name:     "radar active only",
			radarOn:  true,
			forward:  north,
			expected: 0.5,
		},
		{
			name:     "heading toward threat only",
			radarOn:  false,
			forward:  east,
			expected: 0.5,
		},
		{
			name:     "both penalties",
			radarOn:  true,
			forward:  east,
			expected: 0.25,
		},
		{
			name:     "retreating and silent",
			radarOn:  false,
			forward:  geom.Vec3{X: -1},
			expected: 1.0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rig := newTestRig(t)
			rig.aircraft.SetKinematics(geom.Vec3{Y: 1000}, geom.Vec3{})
			rig.aircraft.SetForward(tt.forward)
			rig.aircraft.SetRadarEmitting(tt.radarOn)

			d := rig.mustCreate(t, geom.Vec3{Y: 1000}, geom.Vec3{}, 4.5, 15, 0.25)
			if got := d.Effectiveness(seeker, DefaultCombinedPenalty); got != tt.expected {
				t.Errorf("Effectiveness: expected %f, got %f", tt.expected, got)
			}
		})
	}
}

func TestEffectivenessFallbackForInvalidSource(t *testing.T) {
	rig := newTestRig(t)
	d := rig.mustCreate(t, geom.Vec3{}, geom.Vec3{}, 4.5, 15, 0.25)

	rig.aircraft.Destroy()
	if got := d.Effectiveness(geom.Vec3{X: 2000}, DefaultCombinedPenalty); got != FallbackEffectiveness {
		t.Errorf("Expected fallback %f for destroyed source, got %f", FallbackEffectiveness, got)
	}

	// Same for a source removed from the registry outright.
	rig.units.Remove(rig.aircraft.ID())
	if got := d.Effectiveness(geom.Vec3{X: 2000}, DefaultCombinedPenalty); got != FallbackEffectiveness {
		t.Errorf("Expected fallback %f for unregistered source, got %f", FallbackEffectiveness, got)
	}
}

// scenarioRig reproduces the reference engagement: decoy RCS 4.5 at 2000m
// from the seeker, target RCS 1.5 at 2500m, maxRange 5000, maxSignal 100.
func scenarioRig(t *testing.T) (*testRig, *Decoy, geom.Vec3, RadarParams) {
	t.Helper()

	rig := newTestRig(t)
	seeker := geom.Vec3{X: 2000, Y: 1000}

	// Aircraft 2500m beyond the seeker, notching (heading north, seeker
	// due west), radar silent.
	rig.aircraft.SetKinematics(geom.Vec3{X: 4500, Y: 1000}, geom.Vec3{})
	rig.aircraft.SetForward(geom.Vec3{Z: 1})
	rig.aircraft.SetRadarEmitting(false)

	d := rig.mustCreate(t, geom.Vec3{Y: 1000}, geom.Vec3{}, 4.5, 15, 0.25)
	radar := RadarParams{MaxRange: 5000, MaxSignal: 100}
	return rig, d, seeker, radar
}

func TestShouldAttractReferenceScenario(t *testing.T) {
	rig, d, seeker, radar := scenarioRig(t)
	env := Environment{CombinedPenalty: DefaultCombinedPenalty}

	// decoyReturn ~= 3.64 vs threshold 2.21/1.0.
	if !d.ShouldAttractMissile(seeker, rig.aircraft, radar, env) {
		t.Errorf("Expected decoy to attract in the reference scenario")
	}

	decoyReturn := d.RadarReturn(seeker, radar, 1)
	expected := 5000.0 / 2000.0 * math.Pow(4.5, 0.25)
	if math.Abs(decoyReturn-expected) > floatTolerance {
		t.Errorf("Decoy return: expected %f, got %f", expected, decoyReturn)
	}
}

func TestShouldAttractLoudAndNoseOn(t *testing.T) {
	rig, d, seeker, radar := scenarioRig(t)
	env := Environment{CombinedPenalty: DefaultCombinedPenalty}

	// Radar on and heading at the threat: effectiveness 0.25 quadruples
	// the threshold and the decoy loses.
	rig.aircraft.SetRadarEmitting(true)
	rig.aircraft.SetForward(geom.Vec3{X: -1})

	if d.ShouldAttractMissile(seeker, rig.aircraft, radar, env) {
		t.Errorf("Expected decoy to lose when the aircraft is loud and nose-on")
	}
}

func TestShouldAttractOnlyCompetesForOwnAircraft(t *testing.T) {
	rig, d, seeker, radar := scenarioRig(t)
	env := Environment{CombinedPenalty: DefaultCombinedPenalty}

	other := units.NewAircraft("Hornet-22", 1.5)
	other.SetKinematics(geom.Vec3{X: 4500, Y: 1000}, geom.Vec3{})
	if err := rig.units.Add(other); err != nil {
		t.Fatalf("failed to register second aircraft: %v", err)
	}

	// Identical geometry, but the missile is tracking a different unit.
	if d.ShouldAttractMissile(seeker, other, radar, env) {
		t.Errorf("Decoy attracted a missile tracking a different aircraft")
	}
}

func TestShouldAttractGates(t *testing.T) {
	env := Environment{CombinedPenalty: DefaultCombinedPenalty}

	t.Run("inactive decoy", func(t *testing.T) {
		rig, d, seeker, radar := scenarioRig(t)
		d.Deactivate()
		if d.ShouldAttractMissile(seeker, rig.aircraft, radar, env) {
			t.Errorf("Inactive decoy attracted a missile")
		}
	})

	t.Run("destroyed source", func(t *testing.T) {
		rig, d, seeker, radar := scenarioRig(t)
		rig.aircraft.Destroy()
		if d.ShouldAttractMissile(seeker, rig.aircraft, radar, env) {
			t.Errorf("Decoy with destroyed source attracted a missile")
		}
	})

	t.Run("nil target", func(t *testing.T) {
		_, d, seeker, radar := scenarioRig(t)
		if d.ShouldAttractMissile(seeker, nil, radar, env) {
			t.Errorf("Decoy attracted a missile with no target")
		}
	})

	t.Run("out of radar range", func(t *testing.T) {
		rig, d, _, radar := scenarioRig(t)
		farSeeker := geom.Vec3{X: 6000, Y: 1000}
		if d.ShouldAttractMissile(farSeeker, rig.aircraft, radar, env) {
			t.Errorf("Out-of-range decoy attracted a missile")
		}
	})

	t.Run("terrain occluded", func(t *testing.T) {
		rig, d, seeker, radar := scenarioRig(t)
		blocked := Environment{
			Terrain:         occludeAll{},
			CombinedPenalty: DefaultCombinedPenalty,
		}
		if d.ShouldAttractMissile(seeker, rig.aircraft, radar, blocked) {
			t.Errorf("Terrain-masked decoy attracted a missile")
		}
	})
}

type occludeAll struct{}

func (occludeAll) Occluded(_, _ geom.Vec3) bool { return true }

func TestTickIntegration(t *testing.T) {
	rig := newTestRig(t)
	d := rig.mustCreate(t, geom.Vec3{Y: 1000}, geom.Vec3{X: 100}, 4.5, 15, 0.25)

	d.Tick(0.1)

	// Position integrates the pre-step velocity.
	if got := d.Position(); math.Abs(got.X-10) > floatTolerance || math.Abs(got.Y-1000) > floatTolerance {
		t.Errorf("Position after tick: expected x=10 y=1000, got %v", got)
	}

	// Velocity picks up gravity, then linear drag on the result.
	wantX := 100 * (1 - 0.25*0.1)
	wantY := (-9.81 * 0.1) * (1 - 0.25*0.1)
	got := d.Velocity()
	if math.Abs(got.X-wantX) > floatTolerance {
		t.Errorf("Velocity x: expected %f, got %f", wantX, got.X)
	}
	if math.Abs(got.Y-wantY) > floatTolerance {
		t.Errorf("Velocity y: expected %f, got %f", wantY, got.Y)
	}
}

func TestTickGroundImpact(t *testing.T) {
	rig := newTestRig(t)
	d := rig.mustCreate(t, geom.Vec3{Y: 1}, geom.Vec3{Y: -100}, 4.5, 15, 0.25)

	d.Tick(0.1)

	if got := d.Position().Y; got != 0.1 {
		t.Errorf("Expected ground clamp to y=0.1, got %f", got)
	}
	if got := d.Velocity(); got != (geom.Vec3{}) {
		t.Errorf("Expected zero velocity after impact, got %v", got)
	}
	if !d.Active() {
		t.Errorf("Ground impact should not deactivate the decoy")
	}
}

func TestTickInactiveIsNoop(t *testing.T) {
	rig := newTestRig(t)
	d := rig.mustCreate(t, geom.Vec3{Y: 1000}, geom.Vec3{X: 100}, 4.5, 15, 0.25)
	d.Deactivate()

	before := d.Position()
	d.Tick(0.1)
	if d.Position() != before {
		t.Errorf("Inactive decoy moved")
	}
}

func TestLifetimeExpiry(t *testing.T) {
	rig := newTestRig(t)
	d := rig.mustCreate(t, geom.Vec3{Y: 1000}, geom.Vec3{}, 4.5, 15, 0.25)

	rig.clock.Advance(14.9)
	d.Tick(0.05)
	if !d.Active() {
		t.Fatalf("Decoy expired before its lifetime")
	}

	rig.clock.Advance(0.2)
	d.Tick(0.05)
	if d.Active() {
		t.Errorf("Decoy still active past its lifetime")
	}
	if rig.registry.Contains(d) {
		t.Errorf("Expired decoy still registered")
	}

	// Destruction waits out the grace window for external cleanup.
	if d.ReadyToDestroy() {
		t.Errorf("Decoy destroyable before the grace window elapsed")
	}
	rig.clock.Advance(DestructionGraceSeconds)
	if !d.ReadyToDestroy() {
		t.Errorf("Decoy not destroyable after the grace window")
	}
}

func TestDestroySkipsGrace(t *testing.T) {
	rig := newTestRig(t)
	d := rig.mustCreate(t, geom.Vec3{Y: 1000}, geom.Vec3{}, 4.5, 15, 0.25)

	d.Destroy()
	if d.Active() {
		t.Errorf("Destroyed decoy still active")
	}
	if rig.registry.Contains(d) {
		t.Errorf("Destroyed decoy still registered")
	}
	if !d.ReadyToDestroy() {
		t.Errorf("External destruction should be immediate")
	}
}

package engagement

import (
	"fmt"
	"math"

	"github.com/google/uuid"
	"github.com/picogrid/decoy-sim/cmd/engagement/reporting"
	"github.com/picogrid/decoy-sim/pkg/decoy"
	"github.com/picogrid/decoy-sim/pkg/geom"
	"github.com/picogrid/decoy-sim/pkg/logger"
	"github.com/picogrid/decoy-sim/pkg/seeker"
	"github.com/picogrid/decoy-sim/pkg/units"
)

// Scenario tuning
const (
	aircraftSpeed    = 250.0 // m/s
	aircraftAltitude = 3000.0
	missileSpeed     = 600.0 // m/s
	missileSpawnDist = 9000.0

	// Inside notchRange the pilot turns to put the threat on the beam and
	// goes radar-silent; inside decoyDropRange the station starts pumping
	// out decoys.
	notchRange     = 5000.0
	decoyDropRange = 4000.0
)

// World owns the engagement scenario state and drives one fixed simulation
// step at a time. All entity collections are explicit and passed into the
// countermeasure engine; nothing is ambient.
type World struct {
	cfg *Config

	clock    *decoy.SimClock
	unitReg  *units.Registry
	decoyReg *decoy.Registry
	launcher *decoy.Launcher
	engine   *seeker.Engine
	terrain  *Terrain
	report   *reporting.EngagementLogger
	log      logger.Logger

	aircraft *units.Aircraft
	station  *Station
	missiles []*Missile

	// decoys launched so far; entries are released once their destruction
	// grace window elapses.
	decoys       []*decoy.Decoy
	expiryLogged map[uuid.UUID]bool
	aircraftHit  bool
}

// NewWorld builds the scenario from config: one fighter on a straight run,
// the configured number of missiles inbound from spread bearings.
func NewWorld(cfg *Config) (*World, error) {
	clock := decoy.NewSimClock()
	unitReg := units.NewRegistry()
	decoyReg := decoy.NewRegistry(clock, unitReg)

	launcher, err := decoy.NewLauncher(decoy.DefaultLaunchConfig(), decoyReg, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create launcher: %w", err)
	}

	terrain := &Terrain{
		RidgeEnabled: cfg.RidgeOcclusion,
		RidgeX:       -1500,
		RidgeCrestY:  2000,
	}

	engineCfg := seeker.Config{
		Enabled:         cfg.EnableCountermeasures,
		CombinedPenalty: cfg.CombinedPenalty,
	}
	engine, err := seeker.NewEngine(engineCfg, decoyReg, unitReg, terrain)
	if err != nil {
		return nil, fmt.Errorf("failed to create comparison engine: %w", err)
	}

	aircraft := units.NewAircraft("Viper-11", cfg.AircraftRCS)
	aircraft.SetKinematics(
		geom.Vec3{Y: aircraftAltitude},
		geom.Vec3{Z: aircraftSpeed},
	)
	aircraft.SetRadarEmitting(true)
	if err := unitReg.Add(aircraft); err != nil {
		return nil, fmt.Errorf("failed to register aircraft: %w", err)
	}

	radar := decoy.RadarParams{
		MaxRange:  cfg.RadarMaxRange,
		MaxSignal: cfg.RadarMaxSignal,
	}

	missiles := make([]*Missile, 0, cfg.NumMissiles)
	for i := 0; i < cfg.NumMissiles; i++ {
		// Spread launch bearings across the aircraft's right side.
		bearing := -math.Pi/3 + float64(i)*(2*math.Pi/3)/float64(cfg.NumMissiles)
		spawn := geom.Vec3{
			X: missileSpawnDist * math.Cos(bearing),
			Y: aircraftAltitude,
			Z: missileSpawnDist * math.Sin(bearing),
		}
		missiles = append(missiles, NewMissile(spawn, missileSpeed, radar, aircraft, unitReg))
	}

	return &World{
		cfg:          cfg,
		clock:        clock,
		unitReg:      unitReg,
		decoyReg:     decoyReg,
		launcher:     launcher,
		engine:       engine,
		terrain:      terrain,
		report:       reporting.NewEngagementLogger(),
		log:          logger.WithPrefix("world"),
		aircraft:     aircraft,
		station:      NewStation(AirframeFalcon),
		missiles:     missiles,
		expiryLogged: make(map[uuid.UUID]bool),
	}, nil
}

// Report exposes the engagement event log.
func (w *World) Report() *reporting.EngagementLogger {
	return w.report
}

// Elapsed returns the simulation time in seconds.
func (w *World) Elapsed() float64 {
	return w.clock.Now()
}

// AircraftAlive reports whether the defended aircraft survived so far.
func (w *World) AircraftAlive() bool {
	return !w.aircraftHit
}

// MissilesDefeated counts missiles that ended without hitting the aircraft.
func (w *World) MissilesDefeated() int {
	n := 0
	for _, m := range w.missiles {
		if m.Status() == MissileStatusDefeated {
			n++
		}
	}
	return n
}

// Done reports whether the engagement has resolved.
func (w *World) Done() bool {
	if w.aircraftHit {
		return true
	}
	for _, m := range w.missiles {
		if m.Inbound() {
			return false
		}
	}
	return true
}

// Step advances the whole scenario by dt seconds: clock, aircraft behavior,
// decoy dispensing, decoy motion, then one seeker evaluation per missile.
func (w *World) Step(dt float64) {
	w.clock.Advance(dt)
	now := w.clock.Now()

	w.stepAircraft(dt)
	w.stepStation(now)
	w.stepDecoys(dt, now)
	w.stepMissiles(dt, now)
}

// stepAircraft flies the defensive profile: straight and radar-on while
// clear, beam turn and radar-silent once a missile closes inside notchRange.
func (w *World) stepAircraft(dt float64) {
	if w.aircraftHit {
		return
	}

	threat := w.nearestTrackingMissile()
	velocity := w.aircraft.Velocity()

	if threat != nil {
		toThreat := threat.Position().Sub(w.aircraft.Position())
		if toThreat.Length() <= notchRange {
			// Beam the threat: velocity perpendicular to the bearing,
			// holding altitude.
			flat := geom.Vec3{X: toThreat.X, Z: toThreat.Z}.Normalized()
			beam := geom.Vec3{X: -flat.Z, Z: flat.X}
			velocity = beam.Scale(aircraftSpeed)
			w.aircraft.SetRadarEmitting(false)
		}
	}

	position := w.aircraft.Position().Add(velocity.Scale(dt))
	w.aircraft.SetKinematics(position, velocity)
}

// stepStation dispenses a decoy when a tracking missile is close enough and
// the station is off cooldown with ammo remaining.
func (w *World) stepStation(now float64) {
	if w.aircraftHit || !w.cfg.EnableCountermeasures {
		return
	}

	threat := w.nearestTrackingMissile()
	if threat == nil {
		return
	}
	if geom.Distance(threat.Position(), w.aircraft.Position()) > decoyDropRange {
		return
	}
	if !w.station.Expend(now) {
		return
	}

	d, err := w.launcher.Launch(w.aircraft)
	if err != nil {
		w.log.Errorf("decoy launch failed: %v", err)
		return
	}
	w.decoys = append(w.decoys, d)
	w.report.LogDecoyLaunch(now, d.ID(), w.aircraft.Name(), w.station.Remaining())
}

// stepDecoys integrates decoy motion and releases entities whose
// destruction grace window has elapsed.
func (w *World) stepDecoys(dt, now float64) {
	for _, d := range w.decoyReg.Snapshot() {
		d.Tick(dt)
	}

	kept := w.decoys[:0]
	for _, d := range w.decoys {
		if !d.Active() && !w.expiryLogged[d.ID()] {
			w.expiryLogged[d.ID()] = true
			w.report.LogDecoyExpired(now, d.ID())
		}
		if d.ReadyToDestroy() {
			delete(w.expiryLogged, d.ID())
			continue
		}
		kept = append(kept, d)
	}
	w.decoys = kept
}

// stepMissiles runs one seeker evaluation per missile, advances guidance,
// and resolves detonations.
func (w *World) stepMissiles(dt, now float64) {
	for _, m := range w.missiles {
		if !m.Inbound() {
			continue
		}

		if chosen := w.engine.RetargetIfNeeded(m); chosen != nil {
			w.report.LogRetarget(now, m.ID(), chosen.ID())
		}

		m.Tick(dt)

		if !m.Inbound() {
			// Guidance flew it into the ground.
			w.report.LogImpact(now, m.ID(), "terrain", false)
			continue
		}

		w.resolveDetonation(m, now)
	}
}

// resolveDetonation applies the proximity fuse against the aircraft when
// still tracked, or against whichever decoy the seeker is chasing.
func (w *World) resolveDetonation(m *Missile, now float64) {
	if _, tracking := m.TargetUnit(); tracking {
		if !w.aircraftHit && m.Fused(w.aircraft.Position()) {
			w.aircraftHit = true
			w.aircraft.Destroy()
			m.MarkHit()
			w.report.LogImpact(now, m.ID(), w.aircraft.Name(), true)
		}
		return
	}

	for _, d := range w.decoyReg.Snapshot() {
		if m.Fused(d.Position()) {
			d.Destroy()
			m.MarkDefeated()
			w.report.LogImpact(now, m.ID(), "decoy "+d.ID().String()[:8], false)
			return
		}
	}

	// Chasing a stale point with nothing there; detonate when it arrives.
	if m.DistanceToAim() <= proximityFuseRadius {
		m.MarkDefeated()
		w.report.LogImpact(now, m.ID(), "empty airspace", false)
	}
}

// nearestTrackingMissile returns the closest inbound missile still tracking
// the aircraft, or nil.
func (w *World) nearestTrackingMissile() *Missile {
	var nearest *Missile
	var nearestDist float64

	for _, m := range w.missiles {
		if !m.Inbound() {
			continue
		}
		targetID, tracking := m.TargetUnit()
		if !tracking || targetID != w.aircraft.ID() {
			continue
		}
		dist := geom.Distance(m.Position(), w.aircraft.Position())
		if nearest == nil || dist < nearestDist {
			nearest = m
			nearestDist = dist
		}
	}
	return nearest
}

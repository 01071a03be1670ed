package engagement

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/picogrid/decoy-sim/pkg/logger"
	"github.com/picogrid/decoy-sim/pkg/simulation"
)

// simulationName must match the name in simulation.yaml.
const simulationName = "decoy-engagement"

// EngagementSimulation runs a missile-vs-decoy engagement: a fighter with an
// expendable decoy loadout against inbound radar-guided missiles.
type EngagementSimulation struct {
	config *Config
	mu     sync.Mutex
	world  *World

	stopOnce sync.Once
	stopChan chan struct{}
}

// NewEngagementSimulation creates a new instance of the engagement simulation
func NewEngagementSimulation() simulation.Simulation {
	return &EngagementSimulation{
		stopChan: make(chan struct{}),
	}
}

// Name returns the simulation name
func (s *EngagementSimulation) Name() string {
	return simulationName
}

// Description returns the simulation description
func (s *EngagementSimulation) Description() string {
	return "Radar missile engagement against an aircraft dispensing active decoys"
}

// Configure sets up the simulation with provided parameters
func (s *EngagementSimulation) Configure(params map[string]interface{}) error {
	config, err := ValidateAndParse(params)
	if err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}
	s.config = config
	return nil
}

// Run executes the engagement with a fixed simulation step per wall-clock
// tick until it resolves, the duration elapses, or the context is canceled.
func (s *EngagementSimulation) Run(ctx context.Context) error {
	if s.config == nil {
		return fmt.Errorf("simulation not configured")
	}

	world, err := NewWorld(s.config)
	if err != nil {
		return fmt.Errorf("failed to build scenario: %w", err)
	}
	s.mu.Lock()
	s.world = world
	s.mu.Unlock()

	logger.Infof("Starting %s: %d missiles, countermeasures %v, combined penalty %.2f",
		s.Name(), s.config.NumMissiles, s.config.EnableCountermeasures, s.config.CombinedPenalty)

	dt := s.config.UpdateInterval.Seconds()
	maxSimSeconds := s.config.Duration.Seconds()

	ticker := time.NewTicker(s.config.UpdateInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-s.stopChan:
			logger.Info("Simulation stopped by user")
			s.printSummary(world)
			return nil
		case <-ticker.C:
			world.Step(dt)

			if world.Done() {
				s.printSummary(world)
				return nil
			}
			if world.Elapsed() >= maxSimSeconds {
				logger.Infof("Engagement timed out after %.0fs of simulation time", world.Elapsed())
				s.printSummary(world)
				return nil
			}
		}
	}
}

// Stop gracefully shuts down the simulation
func (s *EngagementSimulation) Stop() error {
	s.stopOnce.Do(func() {
		close(s.stopChan)
	})
	return nil
}

func (s *EngagementSimulation) printSummary(world *World) {
	world.Report().PrintSummary(
		world.Elapsed(),
		world.AircraftAlive(),
		world.MissilesDefeated(),
		s.config.NumMissiles,
	)
}

// init registers the simulation
func init() {
	if err := simulation.DefaultRegistry.Register(simulationName, NewEngagementSimulation); err != nil {
		logger.Errorf("Failed to register simulation: %v", err)
	}
}

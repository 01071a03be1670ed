package simulation

import "context"

// Simulation defines the interface that all simulations must implement
type Simulation interface {
	// Name returns the name of the simulation
	Name() string

	// Description returns a brief description of what the simulation does
	Description() string

	// Configure sets up the simulation with the provided parameters
	Configure(params map[string]interface{}) error

	// Run executes the simulation until it terminates or ctx is canceled
	Run(ctx context.Context) error

	// Stop gracefully shuts down the simulation
	Stop() error
}

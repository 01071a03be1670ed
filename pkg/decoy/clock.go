package decoy

import "sync"

// Clock is the simulation time source: monotonic elapsed seconds. Core math
// never reads wall-clock time; the owning tick loop advances a SimClock and
// injects it, which keeps lifetimes deterministic under test.
type Clock interface {
	Now() float64
}

// SimClock is a step-driven Clock advanced by the simulation loop.
type SimClock struct {
	mu      sync.RWMutex
	elapsed float64
}

// NewSimClock creates a clock at t=0.
func NewSimClock() *SimClock {
	return &SimClock{}
}

// Now returns elapsed simulation seconds.
func (c *SimClock) Now() float64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.elapsed
}

// Advance moves the clock forward by dt seconds. Negative steps are ignored.
func (c *SimClock) Advance(dt float64) {
	if dt < 0 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.elapsed += dt
}

// Package reporting collects and prints engagement events: decoy launches,
// seeker retargets, impacts, and the end-of-run summary.
package reporting

import (
	"fmt"
	"sync"
	"time"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/picogrid/decoy-sim/pkg/logger"
)

// EventType constants
const (
	EventTypeLaunch   = "decoy_launch"
	EventTypeRetarget = "retarget"
	EventTypeImpact   = "impact"
	EventTypeExpiry   = "decoy_expiry"
)

// Event is one logged engagement event, stamped with both wall-clock and
// simulation time.
type Event struct {
	Timestamp time.Time
	SimTime   float64
	Type      string
	EntityID  *uuid.UUID
	Message   string
}

// Color definitions
var (
	colorLaunch   = color.New(color.FgCyan)
	colorRetarget = color.New(color.FgYellow, color.Bold)
	colorImpact   = color.New(color.FgRed, color.Bold)
	colorSafe     = color.New(color.FgGreen)
)

// EngagementLogger records engagement events and tallies per-type counts.
type EngagementLogger struct {
	mu        sync.RWMutex
	startTime time.Time
	events    []Event
	counts    map[string]int
}

// NewEngagementLogger creates an engagement logger.
func NewEngagementLogger() *EngagementLogger {
	return &EngagementLogger{
		startTime: time.Now(),
		events:    make([]Event, 0),
		counts:    make(map[string]int),
	}
}

func (el *EngagementLogger) logEvent(event Event) {
	el.mu.Lock()
	defer el.mu.Unlock()
	event.Timestamp = time.Now()
	el.events = append(el.events, event)
	el.counts[event.Type]++
}

// LogDecoyLaunch records a decoy ejection.
func (el *EngagementLogger) LogDecoyLaunch(simTime float64, decoyID uuid.UUID, source string, remaining int) {
	el.logEvent(Event{
		SimTime:  simTime,
		Type:     EventTypeLaunch,
		EntityID: &decoyID,
		Message:  fmt.Sprintf("%s ejected decoy %s", source, decoyID),
	})
	logger.Infof("%s [t=%5.1fs] %s ejected decoy (%d remaining)",
		colorLaunch.Sprint(logger.IconLaunch), simTime, source, remaining)
}

// LogRetarget records a seeker pulled off its target onto a decoy.
func (el *EngagementLogger) LogRetarget(simTime float64, missileID, decoyID uuid.UUID) {
	el.logEvent(Event{
		SimTime:  simTime,
		Type:     EventTypeRetarget,
		EntityID: &missileID,
		Message:  fmt.Sprintf("missile %s retargeted to decoy %s", missileID, decoyID),
	})
	logger.Infof("%s [t=%5.1fs] missile %s seduced by decoy %s",
		colorRetarget.Sprint("⤳"), simTime, missileID.String()[:8], decoyID.String()[:8])
}

// LogImpact records a missile detonation against the named target.
func (el *EngagementLogger) LogImpact(simTime float64, missileID uuid.UUID, target string, aircraftHit bool) {
	el.logEvent(Event{
		SimTime:  simTime,
		Type:     EventTypeImpact,
		EntityID: &missileID,
		Message:  fmt.Sprintf("missile %s detonated on %s", missileID, target),
	})

	if aircraftHit {
		logger.Warnf("%s [t=%5.1fs] missile %s hit %s",
			colorImpact.Sprint(logger.IconImpact), simTime, missileID.String()[:8], target)
	} else {
		logger.Infof("%s [t=%5.1fs] missile %s wasted on %s",
			colorSafe.Sprint(logger.IconImpact), simTime, missileID.String()[:8], target)
	}
}

// LogDecoyExpired records a decoy reaching end of life.
func (el *EngagementLogger) LogDecoyExpired(simTime float64, decoyID uuid.UUID) {
	el.logEvent(Event{
		SimTime:  simTime,
		Type:     EventTypeExpiry,
		EntityID: &decoyID,
		Message:  fmt.Sprintf("decoy %s expired", decoyID),
	})
	logger.Debugf("[t=%5.1fs] decoy %s expired", simTime, decoyID.String()[:8])
}

// Events returns a copy of all recorded events.
func (el *EngagementLogger) Events() []Event {
	el.mu.RLock()
	defer el.mu.RUnlock()
	events := make([]Event, len(el.events))
	copy(events, el.events)
	return events
}

// Count returns the number of events of the given type.
func (el *EngagementLogger) Count(eventType string) int {
	el.mu.RLock()
	defer el.mu.RUnlock()
	return el.counts[eventType]
}

// PrintSummary prints the after-action summary.
func (el *EngagementLogger) PrintSummary(simTime float64, aircraftAlive bool, missilesDefeated, missilesTotal int) {
	el.mu.RLock()
	defer el.mu.RUnlock()

	logger.LogSection("Engagement Summary")
	logger.LogKeyValue("Elapsed sim time", fmt.Sprintf("%.1fs", simTime))
	logger.LogKeyValue("Decoys launched", el.counts[EventTypeLaunch])
	logger.LogKeyValue("Seekers seduced", el.counts[EventTypeRetarget])
	logger.LogKeyValue("Missiles defeated", fmt.Sprintf("%d/%d", missilesDefeated, missilesTotal))

	if aircraftAlive {
		logger.LogKeyValue("Aircraft", colorSafe.Sprint("SURVIVED"))
	} else {
		logger.LogKeyValue("Aircraft", colorImpact.Sprint("LOST"))
	}
}

package engagement

// Airframe identifies an aircraft type for loadout lookup. Loadouts key on
// this enum, never on display-name matching.
type Airframe int

const (
	AirframeFalcon Airframe = iota
	AirframeRaptor
	AirframeStratofort
)

func (a Airframe) String() string {
	switch a {
	case AirframeFalcon:
		return "Falcon"
	case AirframeRaptor:
		return "Raptor"
	case AirframeStratofort:
		return "Stratofort"
	default:
		return "Unknown"
	}
}

// Loadout describes an airframe's expendable decoy complement.
type Loadout struct {
	DecoyCount      int
	CooldownSeconds float64
}

// defaultLoadouts is the static per-airframe loadout table.
var defaultLoadouts = map[Airframe]Loadout{
	AirframeFalcon:     {DecoyCount: 4, CooldownSeconds: 5},
	AirframeRaptor:     {DecoyCount: 6, CooldownSeconds: 4},
	AirframeStratofort: {DecoyCount: 12, CooldownSeconds: 3},
}

// LoadoutFor returns the loadout for an airframe, falling back to the
// Falcon loadout for unknown types.
func LoadoutFor(a Airframe) Loadout {
	if l, ok := defaultLoadouts[a]; ok {
		return l
	}
	return defaultLoadouts[AirframeFalcon]
}

// Station tracks decoy ammo and cooldown for one aircraft. This is the
// caller-side bookkeeping the launcher deliberately does not own.
type Station struct {
	airframe      Airframe
	remaining     int
	cooldown      float64
	cooldownUntil float64
}

// NewStation creates a station with the airframe's default loadout.
func NewStation(a Airframe) *Station {
	loadout := LoadoutFor(a)
	return &Station{
		airframe:  a,
		remaining: loadout.DecoyCount,
		cooldown:  loadout.CooldownSeconds,
	}
}

// Remaining returns the decoys left in the dispenser.
func (s *Station) Remaining() int {
	return s.remaining
}

// Ready reports whether a launch is possible at the given simulation time.
func (s *Station) Ready(now float64) bool {
	return s.remaining > 0 && now >= s.cooldownUntil
}

// Expend consumes one decoy and starts the cooldown. Returns false if the
// station was not ready.
func (s *Station) Expend(now float64) bool {
	if !s.Ready(now) {
		return false
	}
	s.remaining--
	s.cooldownUntil = now + s.cooldown
	return true
}

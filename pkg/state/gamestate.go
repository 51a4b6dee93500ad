package state

import (
	"time"

	"github.com/google/uuid"
)

// Location is one of the structural game locations. The display label
// (sub-location granularity, e.g. "di Bar Billiard") is tracked separately.
type Location string

const (
	LocationRumah    Location = "Rumah"
	LocationGunung   Location = "Gunung"
	LocationPantai   Location = "Pantai"
	LocationDanau    Location = "Danau"
	LocationBilliard Location = "Billiard"
)

// Locations lists every structural location in a stable order.
var Locations = []Location{
	LocationRumah,
	LocationGunung,
	LocationPantai,
	LocationDanau,
	LocationBilliard,
}

// ValidLocation reports whether l names a known location.
func ValidLocation(l Location) bool {
	for _, known := range Locations {
		if l == known {
			return true
		}
	}
	return false
}

// Stat is one of the four bounded player needs.
type Stat string

const (
	StatHunger    Stat = "hunger"
	StatEnergy    Stat = "energy"
	StatHappiness Stat = "happiness"
	StatHygiene   Stat = "hygiene"
)

const (
	StatMin = 0
	StatMax = 100
)

// DecayOrder is the fixed order passive decay is applied in, so that
// clamping ties resolve deterministically.
var DecayOrder = []Stat{StatEnergy, StatHygiene, StatHunger, StatHappiness}

// ValidStat reports whether s names a known stat.
func ValidStat(s Stat) bool {
	switch s {
	case StatHunger, StatEnergy, StatHappiness, StatHygiene:
		return true
	}
	return false
}

// Stats holds the four bounded meters. Values are always in [StatMin, StatMax].
type Stats struct {
	Hunger    int `json:"hunger"`
	Energy    int `json:"energy"`
	Happiness int `json:"happiness"`
	Hygiene   int `json:"hygiene"`
}

// Get returns the value of the named stat. Unknown stats return zero;
// callers are expected to validate names at the boundary.
func (s Stats) Get(stat Stat) int {
	switch stat {
	case StatHunger:
		return s.Hunger
	case StatEnergy:
		return s.Energy
	case StatHappiness:
		return s.Happiness
	case StatHygiene:
		return s.Hygiene
	}
	return 0
}

func (s *Stats) set(stat Stat, value int) {
	value = clampStat(value)
	switch stat {
	case StatHunger:
		s.Hunger = value
	case StatEnergy:
		s.Energy = value
	case StatHappiness:
		s.Happiness = value
	case StatHygiene:
		s.Hygiene = value
	}
}

func clampStat(v int) int {
	if v < StatMin {
		return StatMin
	}
	if v > StatMax {
		return StatMax
	}
	return v
}

// Clock tracks in-game time. Minute and hour overflow always carries into
// the next larger unit.
type Clock struct {
	Day    int `json:"day"`
	Hour   int `json:"hour"`
	Minute int `json:"minute"`
}

// Advance adds minutes then hours, carrying minute overflow into hours and
// hour overflow into days.
func (c *Clock) Advance(minutes, hours int) {
	c.Minute += minutes
	c.Hour += hours
	for c.Minute >= 60 {
		c.Minute -= 60
		c.Hour++
	}
	for c.Hour >= 24 {
		c.Hour -= 24
		c.Day++
	}
}

// IsNight reports whether the hour falls in [18,24) or [0,6). Zones flagged
// daytime-only are closed during this window.
func (c Clock) IsNight() bool {
	return c.Hour >= 18 || c.Hour < 6
}

// ArrowKeys mirrors the on-screen movement control overlay. It is transient
// UI state and is not persisted.
type ArrowKeys struct {
	Up    bool `json:"up"`
	Down  bool `json:"down"`
	Left  bool `json:"left"`
	Right bool `json:"right"`
}

// Default session values, applied on a new session and as per-field
// fallbacks when a persisted value is missing or corrupt.
const (
	DefaultStatValue = 100
	DefaultMoney     = 30000
	DefaultDay       = 1
	DefaultHour      = 8
	DefaultMinute    = 0

	MaxItems = 15

	// InventoryFullFlagDuration is how long the transient inventory-full
	// notification stays raised before auto-clearing.
	InventoryFullFlagDuration = 3000 * time.Millisecond
)

// GameState is the single authoritative state of a life-sim session.
// It is owned exclusively by a Store and mutated only through Dispatch.
type GameState struct {
	ID       uuid.UUID `json:"id"`
	Name     string    `json:"name"`
	Sprite   string    `json:"sprite"`
	Stats    Stats     `json:"stats"`
	Money    int       `json:"money"`
	Clock    Clock     `json:"clock"`
	Location Location  `json:"location"`

	// LocationLabel is the display-only sub-location text, e.g.
	// "di Kafe Gunung". It follows zone enter/leave transitions.
	LocationLabel string `json:"location_label"`

	Inventory []Item `json:"inventory"`

	// InventoryFull is raised when an add is rejected at capacity and
	// auto-clears after InventoryFullFlagDuration.
	InventoryFull bool `json:"inventory_full"`

	ArrowKeys ArrowKeys `json:"arrow_keys"`

	// Counters holds named per-session purchase counts driving
	// count-dependent effect tables (souvenirs, photo spot).
	Counters map[string]int `json:"counters,omitempty"`
}

// NewGameState returns a fresh session state with default values.
func NewGameState(name, sprite string) *GameState {
	gs := &GameState{
		ID:     uuid.New(),
		Name:   name,
		Sprite: sprite,
	}
	gs.reset()
	return gs
}

// reset applies the new-session defaults to everything except identity.
func (gs *GameState) reset() {
	gs.Stats = Stats{
		Hunger:    DefaultStatValue,
		Energy:    DefaultStatValue,
		Happiness: DefaultStatValue,
		Hygiene:   DefaultStatValue,
	}
	gs.Money = DefaultMoney
	gs.Clock = Clock{Day: DefaultDay, Hour: DefaultHour, Minute: DefaultMinute}
	gs.Location = LocationRumah
	gs.LocationLabel = string(LocationRumah)
	gs.Inventory = nil
	gs.InventoryFull = false
	gs.ArrowKeys = ArrowKeys{}
	gs.Counters = make(map[string]int)
}

// Clone returns a deep copy safe to hand to readers.
func (gs *GameState) Clone() *GameState {
	cp := *gs
	cp.Inventory = make([]Item, len(gs.Inventory))
	copy(cp.Inventory, gs.Inventory)
	cp.Counters = make(map[string]int, len(gs.Counters))
	for k, v := range gs.Counters {
		cp.Counters[k] = v
	}
	return &cp
}

package world

import (
	"encoding/json"
	"fmt"

	"github.com/jwebster45206/life-engine/pkg/state"
)

// LocationDef is the static definition of one game location: its display
// label and its zone registry. Zone order matters: the first matching zone
// in registration order becomes the active zone when overlaps occur.
type LocationDef struct {
	Location state.Location `json:"location"`
	Label    string         `json:"label"`
	Zones    []Zone         `json:"zones"`
}

// Route is a travel edge to a destination: its money cost and the in-game
// time the trip consumes.
type Route struct {
	Destination state.Location `json:"destination"`
	Cost        int            `json:"cost"`
	Hours       int            `json:"hours"`
}

// World bundles every static registry the engine consumes: locations with
// their zones, travel routes, and the item catalog. A World is read-only
// after load.
type World struct {
	Locations map[state.Location]*LocationDef `json:"locations"`
	Routes    map[state.Location]Route        `json:"routes"`
	Items     map[string]state.Item           `json:"items"`
}

// Zones returns the zone registry for a location, or nil if unknown.
func (w *World) Zones(loc state.Location) []Zone {
	def, ok := w.Locations[loc]
	if !ok {
		return nil
	}
	return def.Zones
}

// Zone finds a zone by ID within a location.
func (w *World) Zone(loc state.Location, id string) (Zone, bool) {
	for _, z := range w.Zones(loc) {
		if z.ID == id {
			return z, true
		}
	}
	return Zone{}, false
}

// Route returns the travel route to a destination.
func (w *World) Route(dest state.Location) (Route, bool) {
	r, ok := w.Routes[dest]
	return r, ok
}

// Item looks up a catalog item by name.
func (w *World) Item(name string) (state.Item, bool) {
	it, ok := w.Items[name]
	return it, ok
}

// Validate checks every registry in the world definition. It is called on
// the built-in data at startup and by the validate CLI on custom files.
func (w *World) Validate() error {
	if len(w.Locations) == 0 {
		return fmt.Errorf("world has no locations")
	}
	for loc, def := range w.Locations {
		if !state.ValidLocation(loc) {
			return fmt.Errorf("unknown location %q", loc)
		}
		if def.Label == "" {
			return fmt.Errorf("location %s: missing label", loc)
		}
		seen := make(map[string]bool)
		for _, z := range def.Zones {
			if err := z.Validate(); err != nil {
				return fmt.Errorf("location %s: %w", loc, err)
			}
			if seen[z.ID] {
				return fmt.Errorf("location %s: duplicate zone id %q", loc, z.ID)
			}
			seen[z.ID] = true
		}
	}
	for dest, route := range w.Routes {
		if !state.ValidLocation(dest) {
			return fmt.Errorf("route to unknown location %q", dest)
		}
		if route.Destination != dest {
			return fmt.Errorf("route key %s does not match destination %s", dest, route.Destination)
		}
		if route.Cost < 0 {
			return fmt.Errorf("route to %s: negative travel cost", dest)
		}
		if route.Hours < 0 {
			return fmt.Errorf("route to %s: negative travel time", dest)
		}
	}
	for name, item := range w.Items {
		if item.Name != name {
			return fmt.Errorf("item key %q does not match item name %q", name, item.Name)
		}
		if err := item.Validate(); err != nil {
			return fmt.Errorf("item %q: %w", name, err)
		}
	}
	// Grant effects must resolve against the catalog.
	for loc, def := range w.Locations {
		for _, z := range def.Zones {
			for _, a := range z.Actions {
				if err := w.checkGrants(a.Effects); err != nil {
					return fmt.Errorf("location %s zone %s: %w", loc, z.ID, err)
				}
				if a.Activity != nil {
					if err := w.checkGrants(a.Activity.Effects); err != nil {
						return fmt.Errorf("location %s zone %s: %w", loc, z.ID, err)
					}
				}
			}
		}
	}
	return nil
}

func (w *World) checkGrants(effects []state.Effect) error {
	for _, e := range effects {
		if e.Kind != state.EffectGrantItem || e.Item == nil {
			continue
		}
		if _, ok := w.Items[e.Item.Name]; !ok {
			return fmt.Errorf("grants unknown item %q", e.Item.Name)
		}
	}
	return nil
}

// Load parses a world definition from JSON and validates it.
func Load(data []byte) (*World, error) {
	var w World
	if err := json.Unmarshal(data, &w); err != nil {
		return nil, fmt.Errorf("failed to parse world definition: %w", err)
	}
	if err := w.Validate(); err != nil {
		return nil, fmt.Errorf("invalid world definition: %w", err)
	}
	return &w, nil
}

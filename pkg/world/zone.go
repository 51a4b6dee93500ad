package world

import (
	"fmt"

	"github.com/jwebster45206/life-engine/pkg/state"
)

// Rect is an axis-aligned bounding box in screen coordinates.
type Rect struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Overlaps reports whether two rects intersect (standard AABB test,
// exclusive edges: touching rects do not overlap).
func (r Rect) Overlaps(o Rect) bool {
	return r.X < o.X+o.Width &&
		r.X+r.Width > o.X &&
		r.Y < o.Y+o.Height &&
		r.Y+r.Height > o.Y
}

// ActivityConfig describes a timed action. Effects are deferred until the
// activity completes (or is fast-forwarded), then applied exactly once.
type ActivityConfig struct {
	DurationMs int            `json:"duration_ms"`
	Message    string         `json:"message"`
	Effects    []state.Effect `json:"effects"`
}

// Action is one entry in a zone's contextual menu. A negative cost is an
// earning. When Activity is set, the action is timed: cost and effects
// apply on completion, not on selection.
type Action struct {
	Label    string          `json:"label"`
	Cost     int             `json:"cost,omitempty"`
	Hours    int             `json:"hours,omitempty"` // in-game hours the action consumes
	Effects  []state.Effect  `json:"effects,omitempty"`
	Activity *ActivityConfig `json:"activity,omitempty"`
}

// Validate checks the action and its effects.
func (a Action) Validate() error {
	if a.Label == "" {
		return fmt.Errorf("action missing label")
	}
	for i, e := range a.Effects {
		if err := e.Validate(); err != nil {
			return fmt.Errorf("action %q effect %d: %w", a.Label, i, err)
		}
	}
	if a.Activity != nil {
		if a.Activity.DurationMs <= 0 {
			return fmt.Errorf("action %q: activity duration must be positive", a.Label)
		}
		for i, e := range a.Activity.Effects {
			if err := e.Validate(); err != nil {
				return fmt.Errorf("action %q activity effect %d: %w", a.Label, i, err)
			}
		}
	}
	return nil
}

// Zone is a static rectangular trigger region with an associated action
// menu. Zones are defined per location at load time and never mutated.
type Zone struct {
	ID            string   `json:"id"`
	Rect          Rect     `json:"rect"`
	LocationLabel string   `json:"location_label"`
	DaytimeOnly   bool     `json:"daytime_only,omitempty"`
	Actions       []Action `json:"actions"`
}

// Validate checks the zone definition.
func (z Zone) Validate() error {
	if z.ID == "" {
		return fmt.Errorf("zone missing id")
	}
	if z.Rect.Width <= 0 || z.Rect.Height <= 0 {
		return fmt.Errorf("zone %q: rect must have positive dimensions", z.ID)
	}
	if len(z.Actions) == 0 {
		return fmt.Errorf("zone %q: no actions", z.ID)
	}
	for _, a := range z.Actions {
		if err := a.Validate(); err != nil {
			return fmt.Errorf("zone %q: %w", z.ID, err)
		}
	}
	return nil
}

package engine

import (
	"log/slog"
	"sync"
	"time"

	"github.com/jwebster45206/life-engine/pkg/state"
	"github.com/jwebster45206/life-engine/pkg/world"
)

// Engine is the interaction engine for one live session. It resolves the
// active zone from player positions, exposes contextual action menus, and
// executes chosen actions against the Store, deferring timed actions
// through an Activity. All entry points are safe for concurrent use; the
// Store's dispatch guarantees run-to-completion per mutation.
type Engine struct {
	mu     sync.Mutex
	store  *state.Store
	world  *world.World
	logger *slog.Logger

	activeZoneID string
	menuOpen     bool
	activity     *Activity
}

// ZoneStatus is the engine's answer to a position update: the active zone
// (nil outside every zone), whether its menu is currently offered, and the
// in-progress activity if any.
type ZoneStatus struct {
	Zone     *world.Zone     `json:"zone,omitempty"`
	MenuOpen bool            `json:"menu_open"`
	Activity *ActivityStatus `json:"activity,omitempty"`
}

// ActionResult reports what an executed instant action surfaced: images to
// display and, for timed actions, the started activity.
type ActionResult struct {
	ShownImages []string        `json:"shown_images,omitempty"`
	Activity    *ActivityStatus `json:"activity,omitempty"`
}

// New creates an engine bound to a session store and a world definition.
func New(store *state.Store, w *world.World, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{
		store:  store,
		world:  w,
		logger: logger,
	}
}

// UpdatePosition recomputes the active zone for a player bounding box.
// Zones are tested in registration order; the first overlap wins. Zones
// flagged daytime-only are excluded at night. Transitions are idempotent:
// staying inside the same zone does not re-trigger the enter transition.
func (e *Engine) UpdatePosition(player world.Rect) *ZoneStatus {
	gs := e.store.Snapshot()
	night := gs.Clock.IsNight()
	zones := e.world.Zones(gs.Location)

	var match *world.Zone
	for i := range zones {
		z := &zones[i]
		if z.DaytimeOnly && night {
			continue
		}
		if player.Overlaps(z.Rect) {
			match = z
			break
		}
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	switch {
	case match == nil && e.activeZoneID != "":
		// Left the zone: reset the label to the location's base name.
		e.activeZoneID = ""
		e.menuOpen = false
		e.store.Dispatch(state.SetLocationLabel(e.baseLabel(gs.Location)))

	case match != nil && match.ID != e.activeZoneID:
		e.activeZoneID = match.ID
		e.menuOpen = e.activity == nil
		e.store.Dispatch(state.SetLocationLabel(match.LocationLabel))
	}

	return e.statusLocked(match)
}

// Status returns the current zone status without moving the player.
func (e *Engine) Status() *ZoneStatus {
	gs := e.store.Snapshot()
	e.mu.Lock()
	defer e.mu.Unlock()
	var zone *world.Zone
	if e.activeZoneID != "" {
		if z, ok := e.world.Zone(gs.Location, e.activeZoneID); ok {
			zone = &z
		}
	}
	return e.statusLocked(zone)
}

// ExecuteAction runs one action from a zone's menu. Paid actions are
// rejected with an InsufficientFundsError before any mutation. Timed
// actions start an Activity and defer cost and effects to its completion.
func (e *Engine) ExecuteAction(zoneID string, actionIndex int) (*ActionResult, error) {
	gs := e.store.Snapshot()
	zone, ok := e.world.Zone(gs.Location, zoneID)
	if !ok {
		return nil, ErrUnknownZone
	}
	if actionIndex < 0 || actionIndex >= len(zone.Actions) {
		return nil, ErrUnknownAction
	}
	action := zone.Actions[actionIndex]

	e.mu.Lock()
	if e.activity != nil {
		e.mu.Unlock()
		return nil, ErrActivityInProgress
	}

	if action.Cost > 0 && gs.Money < action.Cost {
		e.mu.Unlock()
		return nil, &InsufficientFundsError{Cost: action.Cost, Money: gs.Money}
	}

	if action.Activity != nil {
		activity := e.startActivityLocked(zone, action)
		e.menuOpen = false
		status := activity.status()
		e.mu.Unlock()
		return &ActionResult{Activity: status}, nil
	}

	e.menuOpen = false
	e.mu.Unlock()

	// Instant action: cost first, then effects in list order, then the
	// in-game time the action consumed and the label update.
	if action.Cost != 0 {
		e.store.Dispatch(state.AdjustMoney(-action.Cost))
	}
	shown := e.store.ApplyEffects(action.Effects)
	if action.Hours > 0 {
		e.store.Dispatch(state.AdvanceTime(0, action.Hours))
	}
	e.store.Dispatch(state.SetLocationLabel(zone.LocationLabel))

	return &ActionResult{ShownImages: shown}, nil
}

// FastForward completes the in-progress activity immediately, applying its
// full effect set. It reports whether there was an activity to finish.
func (e *Engine) FastForward() bool {
	e.mu.Lock()
	activity := e.activity
	e.mu.Unlock()
	if activity == nil {
		return false
	}
	activity.finish()
	return true
}

// InActivity reports whether a timed activity is running.
func (e *Engine) InActivity() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.activity != nil
}

// Close cancels the activity timer, if any. An unfinished activity's
// effects are not applied; the activity represents session-level state and
// survives location changes, not session teardown.
func (e *Engine) Close() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.activity != nil {
		e.activity.cancel()
		e.activity = nil
	}
}

// statusLocked builds a ZoneStatus; callers hold the mutex.
func (e *Engine) statusLocked(zone *world.Zone) *ZoneStatus {
	st := &ZoneStatus{Zone: zone, MenuOpen: e.menuOpen && e.activity == nil}
	if e.activity != nil {
		st.Activity = e.activity.status()
	}
	return st
}

func (e *Engine) baseLabel(loc state.Location) string {
	if def, ok := e.world.Locations[loc]; ok {
		return def.Label
	}
	return string(loc)
}

// startActivityLocked instantiates the activity and arms its timer;
// callers hold the mutex.
func (e *Engine) startActivityLocked(zone world.Zone, action world.Action) *Activity {
	a := &Activity{
		engine:    e,
		zone:      zone,
		action:    action,
		startedAt: time.Now(),
		duration:  time.Duration(action.Activity.DurationMs) * time.Millisecond,
	}
	a.timer = time.AfterFunc(a.duration, a.finish)
	e.activity = a
	e.logger.Debug("Activity started",
		"zone", zone.ID,
		"action", action.Label,
		"duration_ms", action.Activity.DurationMs)
	return a
}

// completeActivity applies a finished activity exactly once: effects in
// list order, then the deferred cost and time, then the activity and the
// zone menu are cleared.
func (e *Engine) completeActivity(a *Activity) {
	e.mu.Lock()
	if e.activity != a {
		e.mu.Unlock()
		return
	}
	e.activity = nil
	e.menuOpen = false
	e.mu.Unlock()

	e.store.ApplyEffects(a.action.Activity.Effects)
	if a.action.Cost != 0 {
		e.store.Dispatch(state.AdjustMoney(-a.action.Cost))
	}
	if a.action.Hours > 0 {
		e.store.Dispatch(state.AdvanceTime(0, a.action.Hours))
	}
	e.store.Dispatch(state.SetLocationLabel(a.zone.LocationLabel))

	e.logger.Debug("Activity finished", "zone", a.zone.ID, "action", a.action.Label)
}

package engine

import (
	"errors"

	"github.com/jwebster45206/life-engine/pkg/state"
)

// ErrUnknownDestination is returned for a travel target with no route.
var ErrUnknownDestination = errors.New("unknown destination")

// Travel moves the player to another location: the route fare is charged,
// travel time passes, and the active zone resets. Traveling to the current
// location re-charges the fare, matching the in-game travel map. Travel is
// blocked while an activity is running.
func (e *Engine) Travel(dest state.Location) error {
	route, ok := e.world.Route(dest)
	if !ok {
		return ErrUnknownDestination
	}

	gs := e.store.Snapshot()

	e.mu.Lock()
	if e.activity != nil {
		e.mu.Unlock()
		return ErrActivityInProgress
	}
	if route.Cost > 0 && gs.Money < route.Cost {
		e.mu.Unlock()
		return &InsufficientFundsError{Cost: route.Cost, Money: gs.Money}
	}
	e.activeZoneID = ""
	e.menuOpen = false
	e.mu.Unlock()

	if route.Cost != 0 {
		e.store.Dispatch(state.AdjustMoney(-route.Cost))
	}
	if route.Hours > 0 {
		e.store.Dispatch(state.AdvanceTime(0, route.Hours))
	}
	e.store.Dispatch(state.SetLocation(dest))
	e.store.Dispatch(state.SetLocationLabel(e.baseLabel(dest)))

	e.logger.Debug("Traveled", "destination", dest, "cost", route.Cost, "hours", route.Hours)
	return nil
}

package engine

import (
	"sync"
	"time"

	"github.com/jwebster45206/life-engine/pkg/world"
)

// Activity is one in-progress timed action. It completes when its real-time
// duration elapses or the player fast-forwards; either way the full effect
// set applies exactly once, never pro-rated.
type Activity struct {
	engine *Engine
	zone   world.Zone
	action world.Action

	startedAt time.Time
	duration  time.Duration
	timer     *time.Timer

	once sync.Once
}

// ActivityStatus is the presentation-layer view of an activity: what is
// happening and how long until it resolves on its own.
type ActivityStatus struct {
	ZoneID      string `json:"zone_id"`
	Label       string `json:"label"`
	Message     string `json:"message"`
	DurationMs  int    `json:"duration_ms"`
	RemainingMs int    `json:"remaining_ms"`
}

func (a *Activity) status() *ActivityStatus {
	remaining := a.duration - time.Since(a.startedAt)
	if remaining < 0 {
		remaining = 0
	}
	return &ActivityStatus{
		ZoneID:      a.zone.ID,
		Label:       a.action.Label,
		Message:     a.action.Activity.Message,
		DurationMs:  a.action.Activity.DurationMs,
		RemainingMs: int(remaining / time.Millisecond),
	}
}

// finish resolves the activity. It is called by the timer or by an
// explicit fast-forward; the once guard keeps the effects single-shot
// when both race.
func (a *Activity) finish() {
	a.once.Do(func() {
		a.timer.Stop()
		a.engine.completeActivity(a)
	})
}

// cancel stops the timer without applying effects.
func (a *Activity) cancel() {
	a.once.Do(func() {
		a.timer.Stop()
	})
}

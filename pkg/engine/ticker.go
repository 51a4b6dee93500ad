package engine

import (
	"context"
	"log/slog"
	"time"

	"github.com/jwebster45206/life-engine/pkg/state"
)

// DefaultTickInterval is one real second per in-game minute.
const DefaultTickInterval = time.Second

// DecayTicker drives the session clock: each tick advances in-game time by
// one minute and decays the four stats by one, in the fixed decay order.
// Missed ticks (host suspended) are not replayed; decay only accrues for
// ticks that actually fire.
type DecayTicker struct {
	store    *state.Store
	interval time.Duration
	logger   *slog.Logger
}

// NewDecayTicker creates a ticker for a session store. A non-positive
// interval falls back to the default.
func NewDecayTicker(store *state.Store, interval time.Duration, logger *slog.Logger) *DecayTicker {
	if interval <= 0 {
		interval = DefaultTickInterval
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &DecayTicker{
		store:    store,
		interval: interval,
		logger:   logger,
	}
}

// Run ticks until the context is cancelled. It is the session-level loop:
// screen changes must not cancel it, only session teardown does.
func (t *DecayTicker) Run(ctx context.Context) {
	ticker := time.NewTicker(t.interval)
	defer ticker.Stop()

	t.logger.Debug("Decay ticker started", "interval", t.interval)
	for {
		select {
		case <-ctx.Done():
			t.logger.Debug("Decay ticker stopped")
			return
		case <-ticker.C:
			t.store.Tick()
		}
	}
}

package state

import (
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Store owns a GameState for the lifetime of a session. All mutation goes
// through Dispatch (or the batch helpers, which are single commands in
// effect); the mutex guarantees run-to-completion per command, so no two
// mutations ever interleave. After every successful mutation the full state
// is mirrored to the onChange hook (write-through persistence).
type Store struct {
	mu sync.Mutex
	gs *GameState

	// onChange receives a deep copy after each mutation. It is expected to
	// be fast or to hand off; persistence errors are its concern, not the
	// Store's.
	onChange func(*GameState)

	// seq stamps each mutation under mu. delivered, under deliverMu, is
	// the newest stamp handed to onChange; older snapshots are dropped so
	// concurrent mutations cannot overwrite a newer save with a stale one.
	seq       uint64
	deliverMu sync.Mutex
	delivered uint64

	flagTimer *time.Timer
	logger    *slog.Logger
}

// NewStore wraps an initial state. onChange may be nil.
func NewStore(gs *GameState, onChange func(*GameState), logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{
		gs:       gs,
		onChange: onChange,
		logger:   logger,
	}
}

// Snapshot returns a read-only deep copy of the current state.
func (s *Store) Snapshot() *GameState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.gs.Clone()
}

// Dispatch applies a single command. Commands are total: they never fail,
// over- and under-shoot is absorbed by clamping and flooring.
func (s *Store) Dispatch(cmd Command) {
	s.mu.Lock()
	s.apply(cmd)
	seq, snap := s.snapshotLocked()
	s.mu.Unlock()
	s.deliver(seq, snap)
}

// Tick advances the clock by one in-game minute and applies passive decay
// to the four stats in the fixed decay order, as one atomic mutation.
func (s *Store) Tick() {
	s.mu.Lock()
	s.gs.Clock.Advance(1, 0)
	for _, stat := range DecayOrder {
		s.gs.Stats.set(stat, s.gs.Stats.Get(stat)-1)
	}
	seq, snap := s.snapshotLocked()
	s.mu.Unlock()
	s.deliver(seq, snap)
}

// ApplyEffects applies a batch of effects in list order as one atomic
// mutation. It returns the image refs surfaced by show_image effects, which
// carry no state change of their own.
func (s *Store) ApplyEffects(effects []Effect) []string {
	s.mu.Lock()
	shown := s.applyEffects(effects)
	seq, snap := s.snapshotLocked()
	s.mu.Unlock()
	s.deliver(seq, snap)
	return shown
}

// UseItem applies an item's use action. Consumable items apply their
// effects and are removed; viewable items surface their image and stay in
// the bag; inert items are a no-op. The whole use is one atomic mutation.
func (s *Store) UseItem(item Item) (shown []string, used bool) {
	s.mu.Lock()
	idx := s.findItem(item)
	if idx < 0 || !s.gs.Inventory[idx].Usable() {
		s.mu.Unlock()
		return nil, false
	}
	target := s.gs.Inventory[idx]
	if target.Viewable() {
		s.mu.Unlock()
		return []string{target.UseAction.ImageRef}, true
	}
	shown = s.applyEffects(target.UseAction.Effects)
	// Effects may have reordered the bag (grant_item); remove by structural
	// identity, not the captured index.
	if idx := s.findItem(target); idx >= 0 {
		s.gs.Inventory = append(s.gs.Inventory[:idx], s.gs.Inventory[idx+1:]...)
	}
	seq, snap := s.snapshotLocked()
	s.mu.Unlock()
	s.deliver(seq, snap)
	return shown, true
}

// DiscardItem removes the first structurally equal item without applying
// effects. It reports whether anything was removed.
func (s *Store) DiscardItem(item Item) bool {
	s.mu.Lock()
	idx := s.findItem(item)
	if idx < 0 {
		s.mu.Unlock()
		return false
	}
	s.gs.Inventory = append(s.gs.Inventory[:idx], s.gs.Inventory[idx+1:]...)
	seq, snap := s.snapshotLocked()
	s.mu.Unlock()
	s.deliver(seq, snap)
	return true
}

// Money returns the current money without copying the whole state.
func (s *Store) Money() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.gs.Money
}

// Hour returns the current in-game hour.
func (s *Store) Hour() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.gs.Clock.Hour
}

// Close stops the pending inventory-full flag timer, if any. The Store
// itself holds no other resources.
func (s *Store) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.flagTimer != nil {
		s.flagTimer.Stop()
		s.flagTimer = nil
	}
}

// snapshotLocked stamps and clones the state for write-through delivery.
// Runs under the lock; returns zero values when no hook is installed.
func (s *Store) snapshotLocked() (uint64, *GameState) {
	if s.onChange == nil {
		return 0, nil
	}
	s.seq++
	return s.seq, s.gs.Clone()
}

// deliver hands a snapshot to onChange. Deliveries are serialized; a
// snapshot with a stamp at or below the newest delivered one is dropped.
func (s *Store) deliver(seq uint64, snap *GameState) {
	if snap == nil {
		return
	}
	s.deliverMu.Lock()
	defer s.deliverMu.Unlock()
	if seq <= s.delivered {
		return
	}
	s.delivered = seq
	s.onChange(snap)
}

// apply runs under the lock.
func (s *Store) apply(cmd Command) {
	switch cmd.Type {
	case CmdResetForNewSession:
		s.gs.Name = cmd.Name
		s.gs.Sprite = cmd.Sprite
		s.gs.reset()

	case CmdLoadState:
		if cmd.Load == nil {
			return
		}
		id := s.gs.ID
		*s.gs = *cmd.Load.Clone()
		if s.gs.ID == uuid.Nil {
			s.gs.ID = id
		}
		if s.gs.Counters == nil {
			s.gs.Counters = make(map[string]int)
		}

	case CmdSetStat:
		s.gs.Stats.set(cmd.Stat, cmd.Value)

	case CmdAdjustStat:
		s.gs.Stats.set(cmd.Stat, s.gs.Stats.Get(cmd.Stat)+cmd.Delta)

	case CmdAdjustMoney:
		s.gs.Money += cmd.Delta
		if s.gs.Money < 0 {
			s.gs.Money = 0
		}

	case CmdAdvanceTime:
		s.gs.Clock.Advance(cmd.Minutes, cmd.Hours)

	case CmdSetLocation:
		s.gs.Location = cmd.Location
		s.gs.LocationLabel = string(cmd.Location)

	case CmdSetLocationLabel:
		s.gs.LocationLabel = cmd.Label

	case CmdAddItem:
		if cmd.Item != nil {
			s.addItem(*cmd.Item)
		}

	case CmdRemoveItem:
		if cmd.Item == nil {
			return
		}
		if idx := s.findItem(*cmd.Item); idx >= 0 {
			s.gs.Inventory = append(s.gs.Inventory[:idx], s.gs.Inventory[idx+1:]...)
		}

	case CmdSetArrowKeyState:
		switch cmd.Direction {
		case ArrowUp:
			s.gs.ArrowKeys.Up = cmd.Pressed
		case ArrowDown:
			s.gs.ArrowKeys.Down = cmd.Pressed
		case ArrowLeft:
			s.gs.ArrowKeys.Left = cmd.Pressed
		case ArrowRight:
			s.gs.ArrowKeys.Right = cmd.Pressed
		}

	default:
		s.logger.Warn("Unknown command dropped", "type", cmd.Type)
	}
}

// addItem runs under the lock. At capacity the item is dropped, not queued,
// and the transient inventory-full flag is raised for a fixed duration.
func (s *Store) addItem(item Item) {
	if len(s.gs.Inventory) >= MaxItems {
		s.gs.InventoryFull = true
		if s.flagTimer != nil {
			s.flagTimer.Stop()
		}
		s.flagTimer = time.AfterFunc(InventoryFullFlagDuration, s.clearInventoryFullFlag)
		return
	}
	s.gs.Inventory = append(s.gs.Inventory, item)
}

func (s *Store) clearInventoryFullFlag() {
	s.mu.Lock()
	s.gs.InventoryFull = false
	s.flagTimer = nil
	seq, snap := s.snapshotLocked()
	s.mu.Unlock()
	s.deliver(seq, snap)
}

// applyEffects runs under the lock and returns shown image refs.
func (s *Store) applyEffects(effects []Effect) []string {
	var shown []string
	for _, e := range effects {
		switch e.Kind {
		case EffectStatDelta:
			s.gs.Stats.set(e.Stat, s.gs.Stats.Get(e.Stat)+e.Delta)
		case EffectStatSet:
			s.gs.Stats.set(e.Stat, e.Value)
		case EffectMoneyDelta:
			s.gs.Money += e.Delta
			if s.gs.Money < 0 {
				s.gs.Money = 0
			}
		case EffectGrantItem:
			if e.Item != nil {
				s.addItem(*e.Item)
			}
		case EffectShowImage:
			shown = append(shown, e.ImageRef)
		case EffectCountedStatDelta:
			// Empty tables only come from corrupt or tampered persisted
			// items; world data rejects them at load.
			if len(e.Table) == 0 {
				s.logger.Warn("Counted effect with empty table dropped", "counter", e.Counter)
				continue
			}
			count := s.gs.Counters[e.Counter]
			idx := count
			if idx >= len(e.Table) {
				idx = len(e.Table) - 1
			}
			s.gs.Stats.set(e.Stat, s.gs.Stats.Get(e.Stat)+e.Table[idx])
			s.gs.Counters[e.Counter] = count + 1
		default:
			s.logger.Warn("Unknown effect dropped", "kind", e.Kind)
		}
	}
	return shown
}

func (s *Store) findItem(item Item) int {
	for i, it := range s.gs.Inventory {
		if it.Equal(item) {
			return i
		}
	}
	return -1
}

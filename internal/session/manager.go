package session

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jwebster45206/life-engine/internal/services/events"
	"github.com/jwebster45206/life-engine/internal/storage"
	"github.com/jwebster45206/life-engine/pkg/engine"
	"github.com/jwebster45206/life-engine/pkg/state"
	"github.com/jwebster45206/life-engine/pkg/world"
)

// ErrNotFound is returned when no session exists under the given ID,
// neither live nor in storage.
var ErrNotFound = errors.New("session not found")

// saveTimeout bounds a single write-through save.
const saveTimeout = 5 * time.Second

// Session is a live game session: the authoritative store, the
// interaction engine on top of it, and the decay ticker driving time.
type Session struct {
	ID     uuid.UUID
	Store  *state.Store
	Engine *engine.Engine

	cancelTicker context.CancelFunc

	mu         sync.Mutex
	lastActive time.Time
}

// Touch records client activity, deferring idle eviction.
func (s *Session) Touch() {
	s.mu.Lock()
	s.lastActive = time.Now()
	s.mu.Unlock()
}

func (s *Session) idleSince() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastActive
}

// Manager owns all live sessions. It hydrates sessions from storage on
// demand, wires write-through persistence, and evicts idle sessions.
type Manager struct {
	mu       sync.Mutex
	sessions map[uuid.UUID]*Session

	store       storage.Storage
	world       *world.World
	broadcaster *events.Broadcaster
	logger      *slog.Logger

	tickInterval time.Duration
	idleTimeout  time.Duration
}

// NewManager creates a session manager. The broadcaster may be nil when
// event distribution is not wired (tests, the validate tool).
func NewManager(store storage.Storage, w *world.World, broadcaster *events.Broadcaster, tickInterval, idleTimeout time.Duration, logger *slog.Logger) *Manager {
	return &Manager{
		sessions:     make(map[uuid.UUID]*Session),
		store:        store,
		world:        w,
		broadcaster:  broadcaster,
		logger:       logger,
		tickInterval: tickInterval,
		idleTimeout:  idleTimeout,
	}
}

// Create starts a brand new session for the named player and persists
// its initial state before returning.
func (m *Manager) Create(ctx context.Context, name, sprite string) (*Session, error) {
	gs := state.NewGameState(name, sprite)
	if err := m.store.SaveGameState(ctx, gs.ID, gs); err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	sess := m.startLocked(gs)
	m.logger.Info("Session created", "session_id", sess.ID, "player", name)
	return sess, nil
}

// Get returns the live session, hydrating it from storage if needed.
func (m *Manager) Get(ctx context.Context, id uuid.UUID) (*Session, error) {
	m.mu.Lock()
	if sess, ok := m.sessions[id]; ok {
		m.mu.Unlock()
		sess.Touch()
		return sess, nil
	}
	m.mu.Unlock()

	// Load outside the lock; hydration may race, loser defers to winner.
	gs, err := m.store.LoadGameState(ctx, id)
	if err != nil {
		return nil, err
	}
	if gs == nil {
		return nil, ErrNotFound
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if sess, ok := m.sessions[id]; ok {
		sess.Touch()
		return sess, nil
	}
	sess := m.startLocked(gs)
	m.logger.Info("Session hydrated", "session_id", sess.ID)
	return sess, nil
}

// startLocked wires a store, engine and ticker for gs. Caller holds m.mu.
func (m *Manager) startLocked(gs *state.GameState) *Session {
	id := gs.ID
	st := state.NewStore(gs, m.writeThrough(id), m.logger)
	eng := engine.New(st, m.world, m.logger)

	tickCtx, cancel := context.WithCancel(context.Background())
	ticker := engine.NewDecayTicker(st, m.tickInterval, m.logger)
	go ticker.Run(tickCtx)

	sess := &Session{
		ID:           id,
		Store:        st,
		Engine:       eng,
		cancelTicker: cancel,
		lastActive:   time.Now(),
	}
	m.sessions[id] = sess
	return sess
}

// writeThrough returns the store change hook: every committed mutation
// is saved to storage and broadcast to subscribers.
func (m *Manager) writeThrough(id uuid.UUID) func(*state.GameState) {
	return func(gs *state.GameState) {
		ctx, cancel := context.WithTimeout(context.Background(), saveTimeout)
		defer cancel()

		if err := m.store.SaveGameState(ctx, id, gs); err != nil {
			// The live state stays authoritative; the next mutation
			// retries the save.
			m.logger.Error("Write-through save failed", "session_id", id, "error", err)
		}

		if m.broadcaster != nil {
			if err := m.broadcaster.PublishStateUpdated(ctx, id, gs); err != nil {
				m.logger.Warn("State broadcast failed", "session_id", id, "error", err)
			}
		}
	}
}

// Delete tears down a live session and removes its persisted state.
func (m *Manager) Delete(ctx context.Context, id uuid.UUID) error {
	m.mu.Lock()
	sess, ok := m.sessions[id]
	if ok {
		delete(m.sessions, id)
	}
	m.mu.Unlock()

	if ok {
		m.teardown(sess)
	}

	if err := m.store.DeleteGameState(ctx, id); err != nil {
		return err
	}

	if m.broadcaster != nil {
		if err := m.broadcaster.PublishSessionEnded(ctx, id); err != nil {
			m.logger.Warn("Session-ended broadcast failed", "session_id", id, "error", err)
		}
	}
	m.logger.Info("Session deleted", "session_id", id)
	return nil
}

// ReapIdle evicts sessions idle longer than the timeout. Their state
// stays in storage; a later Get hydrates them again.
func (m *Manager) ReapIdle() {
	cutoff := time.Now().Add(-m.idleTimeout)

	m.mu.Lock()
	var idle []*Session
	for id, sess := range m.sessions {
		if sess.idleSince().Before(cutoff) {
			idle = append(idle, sess)
			delete(m.sessions, id)
		}
	}
	m.mu.Unlock()

	for _, sess := range idle {
		m.teardown(sess)
		m.logger.Info("Idle session evicted", "session_id", sess.ID)
	}
}

// RunReaper evicts idle sessions periodically until ctx is cancelled.
func (m *Manager) RunReaper(ctx context.Context) {
	interval := m.idleTimeout / 4
	if interval < time.Minute {
		interval = time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.ReapIdle()
		}
	}
}

// Close tears down every live session.
func (m *Manager) Close() {
	m.mu.Lock()
	sessions := make([]*Session, 0, len(m.sessions))
	for id, sess := range m.sessions {
		sessions = append(sessions, sess)
		delete(m.sessions, id)
	}
	m.mu.Unlock()

	for _, sess := range sessions {
		m.teardown(sess)
	}
}

func (m *Manager) teardown(sess *Session) {
	sess.cancelTicker()
	sess.Engine.Close()
	sess.Store.Close()
}

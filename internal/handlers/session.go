package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/jwebster45206/life-engine/internal/services/events"
	"github.com/jwebster45206/life-engine/internal/services/notices"
	"github.com/jwebster45206/life-engine/internal/session"
	"github.com/jwebster45206/life-engine/pkg/engine"
	"github.com/jwebster45206/life-engine/pkg/state"
)

// SessionHandler serves the session lifecycle and gameplay endpoints.
// Routes:
// POST   /v1/sessions                        - Create new session
// GET    /v1/sessions/{id}                   - Read session state
// DELETE /v1/sessions/{id}                   - Delete session
// POST   /v1/sessions/{id}/actions           - Execute a zone action
// POST   /v1/sessions/{id}/activity/finish   - Fast-forward the running activity
// POST   /v1/sessions/{id}/travel            - Travel to another location
// POST   /v1/sessions/{id}/items/use         - Use an inventory item
// POST   /v1/sessions/{id}/items/discard     - Discard an inventory item
// GET    /v1/sessions/{id}/notices           - Drain pending notices
type SessionHandler struct {
	manager     *session.Manager
	notices     *notices.Queue
	broadcaster *events.Broadcaster
	logger      *slog.Logger
}

// NewSessionHandler creates the handler. The notice queue and broadcaster
// may be nil when Redis-backed notices or events are not wired. Play-socket
// clients see activity transitions in their reply frames; the broadcaster
// covers SSE subscribers.
func NewSessionHandler(manager *session.Manager, noticeQueue *notices.Queue, broadcaster *events.Broadcaster, logger *slog.Logger) *SessionHandler {
	return &SessionHandler{
		manager:     manager,
		notices:     noticeQueue,
		broadcaster: broadcaster,
		logger:      logger,
	}
}

// CreateSessionRequest defines the request body for creating a session.
// Both fields are required; together they identify the player.
type CreateSessionRequest struct {
	Name   string `json:"name"`
	Sprite string `json:"sprite"`
}

// SessionResponse is the common gameplay response: the state snapshot plus
// the engine's current zone status.
type SessionResponse struct {
	State *state.GameState   `json:"state"`
	Zone  *engine.ZoneStatus `json:"zone,omitempty"`
}

// ActionRequest selects one action from a zone's menu.
type ActionRequest struct {
	ZoneID      string `json:"zone_id"`
	ActionIndex int    `json:"action_index"`
}

// ActionResponse carries the action result and the post-action snapshot.
type ActionResponse struct {
	Result *engine.ActionResult `json:"result"`
	State  *state.GameState     `json:"state"`
}

// TravelRequest names the travel destination.
type TravelRequest struct {
	Destination state.Location `json:"destination"`
}

// ItemRequest indexes into the inventory as currently snapshotted.
type ItemRequest struct {
	Index int `json:"index"`
}

// ItemResponse reports the outcome of a use or discard.
type ItemResponse struct {
	Done        bool             `json:"done"`
	ShownImages []string         `json:"shown_images,omitempty"`
	State       *state.GameState `json:"state"`
}

// NoticesResponse holds drained player-facing notices.
type NoticesResponse struct {
	Notices []string `json:"notices"`
}

func (h *SessionHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	path := strings.Trim(strings.TrimPrefix(r.URL.Path, "/v1/sessions"), "/")
	if path == "" {
		if r.Method != http.MethodPost {
			writeError(w, h.logger, http.StatusMethodNotAllowed, "Method not allowed. Use POST to create a session.")
			return
		}
		h.handleCreate(w, r)
		return
	}

	parts := strings.Split(path, "/")
	id, err := uuid.Parse(parts[0])
	if err != nil {
		h.logger.Warn("Invalid session ID", "id", parts[0], "error", err)
		writeError(w, h.logger, http.StatusBadRequest, "Invalid session ID format")
		return
	}

	sub := strings.Join(parts[1:], "/")
	switch {
	case sub == "":
		switch r.Method {
		case http.MethodGet:
			h.handleRead(w, r, id)
		case http.MethodDelete:
			h.handleDelete(w, r, id)
		default:
			writeError(w, h.logger, http.StatusMethodNotAllowed, "Method not allowed. Supported methods: GET, DELETE")
		}
	case sub == "actions" && r.Method == http.MethodPost:
		h.handleAction(w, r, id)
	case sub == "activity/finish" && r.Method == http.MethodPost:
		h.handleActivityFinish(w, r, id)
	case sub == "travel" && r.Method == http.MethodPost:
		h.handleTravel(w, r, id)
	case sub == "items/use" && r.Method == http.MethodPost:
		h.handleItem(w, r, id, true)
	case sub == "items/discard" && r.Method == http.MethodPost:
		h.handleItem(w, r, id, false)
	case sub == "notices" && r.Method == http.MethodGet:
		h.handleNotices(w, r, id)
	default:
		writeError(w, h.logger, http.StatusNotFound, "Unknown session endpoint")
	}
}

func (h *SessionHandler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var req CreateSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("Invalid JSON in request body", "error", err)
		writeError(w, h.logger, http.StatusBadRequest, "Invalid JSON in request body")
		return
	}
	if req.Name == "" || req.Sprite == "" {
		writeError(w, h.logger, http.StatusBadRequest, "name and sprite fields are required")
		return
	}

	sess, err := h.manager.Create(r.Context(), req.Name, req.Sprite)
	if err != nil {
		h.logger.Error("Failed to create session", "error", err)
		writeError(w, h.logger, http.StatusInternalServerError, "Failed to create session")
		return
	}

	h.pushNotice(r, sess.ID, fmt.Sprintf("Selamat datang, %s!", req.Name))
	writeJSON(w, h.logger, http.StatusCreated, sess.Store.Snapshot())
}

// lookup fetches the live session, writing the error response on failure.
func (h *SessionHandler) lookup(w http.ResponseWriter, r *http.Request, id uuid.UUID) *session.Session {
	sess, err := h.manager.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, session.ErrNotFound) {
			writeError(w, h.logger, http.StatusNotFound, "Session not found")
			return nil
		}
		h.logger.Error("Failed to load session", "error", err, "id", id.String())
		writeError(w, h.logger, http.StatusInternalServerError, "Failed to load session")
		return nil
	}
	return sess
}

func (h *SessionHandler) handleRead(w http.ResponseWriter, r *http.Request, id uuid.UUID) {
	sess := h.lookup(w, r, id)
	if sess == nil {
		return
	}
	writeJSON(w, h.logger, http.StatusOK, SessionResponse{
		State: sess.Store.Snapshot(),
		Zone:  sess.Engine.Status(),
	})
}

func (h *SessionHandler) handleDelete(w http.ResponseWriter, r *http.Request, id uuid.UUID) {
	if err := h.manager.Delete(r.Context(), id); err != nil {
		h.logger.Error("Failed to delete session", "error", err, "id", id.String())
		writeError(w, h.logger, http.StatusInternalServerError, "Failed to delete session")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *SessionHandler) handleAction(w http.ResponseWriter, r *http.Request, id uuid.UUID) {
	sess := h.lookup(w, r, id)
	if sess == nil {
		return
	}

	var req ActionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, h.logger, http.StatusBadRequest, "Invalid JSON in request body")
		return
	}

	result, err := sess.Engine.ExecuteAction(req.ZoneID, req.ActionIndex)
	if err != nil {
		h.writeEngineError(w, err)
		return
	}

	if result.Activity != nil {
		h.pushNotice(r, id, result.Activity.Message)
		if h.broadcaster != nil {
			act := result.Activity
			if err := h.broadcaster.PublishActivityStarted(r.Context(), id, act.Label, act.Message, act.DurationMs); err != nil {
				h.logger.Warn("Failed to publish activity start", "error", err, "id", id.String())
			}
		}
	}
	writeJSON(w, h.logger, http.StatusOK, ActionResponse{
		Result: result,
		State:  sess.Store.Snapshot(),
	})
}

func (h *SessionHandler) handleActivityFinish(w http.ResponseWriter, r *http.Request, id uuid.UUID) {
	sess := h.lookup(w, r, id)
	if sess == nil {
		return
	}

	var label string
	if st := sess.Engine.Status(); st != nil && st.Activity != nil {
		label = st.Activity.Label
	}
	if sess.Engine.FastForward() {
		h.pushNotice(r, id, "Aktivitas selesai")
		if h.broadcaster != nil {
			if err := h.broadcaster.PublishActivityCompleted(r.Context(), id, label); err != nil {
				h.logger.Warn("Failed to publish activity completion", "error", err, "id", id.String())
			}
		}
	}
	writeJSON(w, h.logger, http.StatusOK, SessionResponse{
		State: sess.Store.Snapshot(),
		Zone:  sess.Engine.Status(),
	})
}

func (h *SessionHandler) handleTravel(w http.ResponseWriter, r *http.Request, id uuid.UUID) {
	sess := h.lookup(w, r, id)
	if sess == nil {
		return
	}

	var req TravelRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, h.logger, http.StatusBadRequest, "Invalid JSON in request body")
		return
	}

	if err := sess.Engine.Travel(req.Destination); err != nil {
		h.writeEngineError(w, err)
		return
	}

	h.pushNotice(r, id, fmt.Sprintf("Tiba di %s", req.Destination))
	writeJSON(w, h.logger, http.StatusOK, SessionResponse{
		State: sess.Store.Snapshot(),
		Zone:  sess.Engine.Status(),
	})
}

func (h *SessionHandler) handleItem(w http.ResponseWriter, r *http.Request, id uuid.UUID, use bool) {
	sess := h.lookup(w, r, id)
	if sess == nil {
		return
	}

	var req ItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, h.logger, http.StatusBadRequest, "Invalid JSON in request body")
		return
	}

	gs := sess.Store.Snapshot()
	if req.Index < 0 || req.Index >= len(gs.Inventory) {
		writeError(w, h.logger, http.StatusBadRequest, "Item index out of range")
		return
	}
	item := gs.Inventory[req.Index]

	resp := ItemResponse{}
	if use {
		resp.ShownImages, resp.Done = sess.Store.UseItem(item)
	} else {
		resp.Done = sess.Store.DiscardItem(item)
	}
	resp.State = sess.Store.Snapshot()
	writeJSON(w, h.logger, http.StatusOK, resp)
}

func (h *SessionHandler) handleNotices(w http.ResponseWriter, r *http.Request, id uuid.UUID) {
	if h.notices == nil {
		writeJSON(w, h.logger, http.StatusOK, NoticesResponse{Notices: []string{}})
		return
	}
	drained, err := h.notices.Drain(r.Context(), id)
	if err != nil {
		h.logger.Error("Failed to drain notices", "error", err, "id", id.String())
		writeError(w, h.logger, http.StatusInternalServerError, "Failed to load notices")
		return
	}
	if drained == nil {
		drained = []string{}
	}
	writeJSON(w, h.logger, http.StatusOK, NoticesResponse{Notices: drained})
}

// writeEngineError maps engine failures to HTTP statuses.
func (h *SessionHandler) writeEngineError(w http.ResponseWriter, err error) {
	var fundsErr *engine.InsufficientFundsError
	switch {
	case errors.As(err, &fundsErr):
		writeError(w, h.logger, http.StatusBadRequest, fundsErr.Error())
	case errors.Is(err, engine.ErrActivityInProgress):
		writeError(w, h.logger, http.StatusConflict, err.Error())
	case errors.Is(err, engine.ErrUnknownZone),
		errors.Is(err, engine.ErrUnknownAction),
		errors.Is(err, engine.ErrUnknownDestination):
		writeError(w, h.logger, http.StatusBadRequest, err.Error())
	default:
		h.logger.Error("Unexpected engine error", "error", err)
		writeError(w, h.logger, http.StatusInternalServerError, "Internal error")
	}
}

// pushNotice appends to the session's notice feed when one is wired.
func (h *SessionHandler) pushNotice(r *http.Request, id uuid.UUID, text string) {
	if h.notices == nil {
		return
	}
	if err := h.notices.Push(r.Context(), id, text); err != nil {
		h.logger.Warn("Failed to push notice", "error", err, "id", id.String())
	}
}

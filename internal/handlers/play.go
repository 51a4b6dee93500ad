package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/jwebster45206/life-engine/internal/session"
	"github.com/jwebster45206/life-engine/pkg/engine"
	"github.com/jwebster45206/life-engine/pkg/state"
	"github.com/jwebster45206/life-engine/pkg/world"
)

// playMessage is a client frame on the play socket.
type playMessage struct {
	Type string `json:"type"`

	// position
	X      float64 `json:"x,omitempty"`
	Y      float64 `json:"y,omitempty"`
	Width  float64 `json:"width,omitempty"`
	Height float64 `json:"height,omitempty"`

	// arrows
	Direction state.ArrowDirection `json:"direction,omitempty"`
	Pressed   bool                 `json:"pressed,omitempty"`

	// action
	ZoneID      string `json:"zone_id,omitempty"`
	ActionIndex int    `json:"action_index,omitempty"`

	// travel
	Destination state.Location `json:"destination,omitempty"`
}

// playReply is a server frame on the play socket.
type playReply struct {
	Type   string               `json:"type"`
	Zone   *engine.ZoneStatus   `json:"zone,omitempty"`
	Result *engine.ActionResult `json:"result,omitempty"`
	State  *state.GameState     `json:"state,omitempty"`
	Error  string               `json:"error,omitempty"`
}

// PlayHandler upgrades /v1/sessions/{id}/play to a websocket carrying the
// real-time play loop: positions and arrow state flow in, zone status and
// state snapshots flow out. One connection per reader; replies are written
// from the read loop so the single-writer rule holds.
type PlayHandler struct {
	manager  *session.Manager
	logger   *slog.Logger
	upgrader websocket.Upgrader
}

func NewPlayHandler(manager *session.Manager, logger *slog.Logger) *PlayHandler {
	return &PlayHandler{
		manager: manager,
		logger:  logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
	}
}

func (h *PlayHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	// Expected: /v1/sessions/{id}/play
	pathParts := strings.Split(strings.Trim(r.URL.Path, "/"), "/")
	if len(pathParts) != 4 || pathParts[3] != "play" {
		http.Error(w, "invalid path", http.StatusBadRequest)
		return
	}
	id, err := uuid.Parse(pathParts[2])
	if err != nil {
		http.Error(w, "invalid session ID", http.StatusBadRequest)
		return
	}

	sess, err := h.manager.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, session.ErrNotFound) {
			http.Error(w, "session not found", http.StatusNotFound)
			return
		}
		h.logger.Error("Failed to load session for play socket", "error", err, "id", id.String())
		http.Error(w, "failed to load session", http.StatusInternalServerError)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("Websocket upgrade failed", "error", err, "id", id.String())
		return
	}
	defer func() {
		if err := conn.Close(); err != nil {
			h.logger.Debug("Play socket close", "error", err)
		}
	}()

	h.logger.Info("Play socket connected", "session_id", id.String(), "remote_addr", r.RemoteAddr)

	// Initial snapshot so the client can render before the first input.
	h.send(conn, id, playReply{
		Type:  "state",
		State: sess.Store.Snapshot(),
		Zone:  sess.Engine.Status(),
	})

	for {
		_, payload, err := conn.ReadMessage()
		if err != nil {
			h.logger.Info("Play socket disconnected", "session_id", id.String())
			return
		}
		sess.Touch()

		var msg playMessage
		if err := json.Unmarshal(payload, &msg); err != nil {
			h.logger.Warn("Discarding malformed play message", "error", err, "session_id", id.String())
			h.send(conn, id, playReply{Type: "error", Error: "malformed message"})
			continue
		}

		switch msg.Type {
		case "position":
			status := sess.Engine.UpdatePosition(world.Rect{
				X: msg.X, Y: msg.Y, Width: msg.Width, Height: msg.Height,
			})
			h.send(conn, id, playReply{Type: "zone", Zone: status})

		case "arrows":
			sess.Store.Dispatch(state.SetArrowKeyState(msg.Direction, msg.Pressed))

		case "action":
			result, err := sess.Engine.ExecuteAction(msg.ZoneID, msg.ActionIndex)
			if err != nil {
				h.send(conn, id, playReply{Type: "error", Error: err.Error()})
				continue
			}
			h.send(conn, id, playReply{
				Type:   "state",
				Result: result,
				State:  sess.Store.Snapshot(),
				Zone:   sess.Engine.Status(),
			})

		case "finish_activity":
			sess.Engine.FastForward()
			h.send(conn, id, playReply{
				Type:  "state",
				State: sess.Store.Snapshot(),
				Zone:  sess.Engine.Status(),
			})

		case "travel":
			if err := sess.Engine.Travel(msg.Destination); err != nil {
				h.send(conn, id, playReply{Type: "error", Error: err.Error()})
				continue
			}
			h.send(conn, id, playReply{
				Type:  "state",
				State: sess.Store.Snapshot(),
				Zone:  sess.Engine.Status(),
			})

		default:
			h.send(conn, id, playReply{Type: "error", Error: "unknown message type"})
		}
	}
}

func (h *PlayHandler) send(conn *websocket.Conn, id uuid.UUID, reply playReply) {
	data, err := json.Marshal(reply)
	if err != nil {
		h.logger.Error("Failed to marshal play reply", "error", err, "session_id", id.String())
		return
	}
	if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
		h.logger.Debug("Failed to write play reply", "error", err, "session_id", id.String())
	}
}

package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/jwebster45206/life-engine/pkg/state"
)

// EventType represents the type of event being broadcast
type EventType string

const (
	EventTypeStateUpdated      EventType = "state.updated"
	EventTypeActivityStarted   EventType = "activity.started"
	EventTypeActivityCompleted EventType = "activity.completed"
	EventTypeNotice            EventType = "notice"
	EventTypeSessionEnded      EventType = "session.ended"
)

// Event is the wire shape pushed to SSE and websocket subscribers.
type Event struct {
	Type      EventType              `json:"type"`
	SessionID string                 `json:"session_id"`
	Data      map[string]interface{} `json:"data,omitempty"`
}

// Broadcaster publishes session events to Redis Pub/Sub for SSE and
// websocket distribution.
type Broadcaster struct {
	redisClient *redis.Client
	logger      *slog.Logger
}

// NewBroadcaster creates a new event broadcaster
func NewBroadcaster(redisClient *redis.Client, logger *slog.Logger) *Broadcaster {
	return &Broadcaster{
		redisClient: redisClient,
		logger:      logger,
	}
}

func sessionChannel(id uuid.UUID) string {
	return fmt.Sprintf("session-events:%s", id.String())
}

// PublishStateUpdated publishes a state.updated event carrying a snapshot.
func (b *Broadcaster) PublishStateUpdated(ctx context.Context, id uuid.UUID, gs *state.GameState) error {
	event := Event{
		Type:      EventTypeStateUpdated,
		SessionID: id.String(),
		Data: map[string]interface{}{
			"state": gs,
		},
	}
	return b.publish(ctx, id, event)
}

// PublishActivityStarted publishes an activity.started event
func (b *Broadcaster) PublishActivityStarted(ctx context.Context, id uuid.UUID, label, message string, durationMs int) error {
	event := Event{
		Type:      EventTypeActivityStarted,
		SessionID: id.String(),
		Data: map[string]interface{}{
			"label":       label,
			"message":     message,
			"duration_ms": durationMs,
		},
	}
	return b.publish(ctx, id, event)
}

// PublishActivityCompleted publishes an activity.completed event
func (b *Broadcaster) PublishActivityCompleted(ctx context.Context, id uuid.UUID, label string) error {
	event := Event{
		Type:      EventTypeActivityCompleted,
		SessionID: id.String(),
		Data: map[string]interface{}{
			"label": label,
		},
	}
	return b.publish(ctx, id, event)
}

// PublishNotice publishes a notice event with free-form text
func (b *Broadcaster) PublishNotice(ctx context.Context, id uuid.UUID, text string) error {
	event := Event{
		Type:      EventTypeNotice,
		SessionID: id.String(),
		Data: map[string]interface{}{
			"text": text,
		},
	}
	return b.publish(ctx, id, event)
}

// PublishSessionEnded publishes a session.ended event
func (b *Broadcaster) PublishSessionEnded(ctx context.Context, id uuid.UUID) error {
	event := Event{
		Type:      EventTypeSessionEnded,
		SessionID: id.String(),
	}
	return b.publish(ctx, id, event)
}

// Subscribe returns a Redis subscription for a session's event channel.
// The caller owns the subscription and must Close it.
func (b *Broadcaster) Subscribe(ctx context.Context, id uuid.UUID) *redis.PubSub {
	return b.redisClient.Subscribe(ctx, sessionChannel(id))
}

func (b *Broadcaster) publish(ctx context.Context, id uuid.UUID, event Event) error {
	channel := sessionChannel(id)

	data, err := json.Marshal(event)
	if err != nil {
		b.logger.Error("Failed to marshal event", "error", err, "event_type", event.Type)
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	if err := b.redisClient.Publish(ctx, channel, data).Err(); err != nil {
		b.logger.Error("Failed to publish event", "error", err, "channel", channel)
		return fmt.Errorf("failed to publish event: %w", err)
	}

	b.logger.Debug("Event published",
		"channel", channel,
		"event_type", event.Type,
	)

	return nil
}

package events

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/jwebster45206/life-engine/pkg/state"
)

func setupBroadcaster(t *testing.T) (*Broadcaster, *redis.Client, *miniredis.Miniredis) {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("Failed to start miniredis: %v", err)
	}
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelError,
	}))
	return NewBroadcaster(client, logger), client, mr
}

func receiveEvent(t *testing.T, pubsub *redis.PubSub) Event {
	t.Helper()
	select {
	case msg := <-pubsub.Channel():
		var event Event
		if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
			t.Fatalf("Failed to unmarshal event: %v", err)
		}
		return event
	case <-time.After(2 * time.Second):
		t.Fatal("Timed out waiting for event")
		return Event{}
	}
}

func TestBroadcaster_StateUpdated(t *testing.T) {
	b, _, _ := setupBroadcaster(t)
	ctx := context.Background()

	gs := state.NewGameState("Budi", "karakter1")
	pubsub := b.Subscribe(ctx, gs.ID)
	defer func() { _ = pubsub.Close() }()

	// Wait for the subscription before publishing.
	if _, err := pubsub.Receive(ctx); err != nil {
		t.Fatalf("Failed to subscribe: %v", err)
	}

	if err := b.PublishStateUpdated(ctx, gs.ID, gs); err != nil {
		t.Fatalf("Failed to publish: %v", err)
	}

	event := receiveEvent(t, pubsub)
	if event.Type != EventTypeStateUpdated {
		t.Errorf("Expected %s, got %s", EventTypeStateUpdated, event.Type)
	}
	if event.SessionID != gs.ID.String() {
		t.Errorf("Expected session %s, got %s", gs.ID, event.SessionID)
	}
	if event.Data["state"] == nil {
		t.Error("Expected state payload")
	}
}

func TestBroadcaster_ChannelIsolation(t *testing.T) {
	b, _, _ := setupBroadcaster(t)
	ctx := context.Background()

	idA := uuid.New()
	idB := uuid.New()

	pubsub := b.Subscribe(ctx, idA)
	defer func() { _ = pubsub.Close() }()
	if _, err := pubsub.Receive(ctx); err != nil {
		t.Fatalf("Failed to subscribe: %v", err)
	}

	if err := b.PublishSessionEnded(ctx, idB); err != nil {
		t.Fatalf("Failed to publish: %v", err)
	}
	if err := b.PublishNotice(ctx, idA, "halo"); err != nil {
		t.Fatalf("Failed to publish: %v", err)
	}

	// Only the notice for session A arrives on A's channel.
	event := receiveEvent(t, pubsub)
	if event.Type != EventTypeNotice {
		t.Errorf("Expected %s, got %s", EventTypeNotice, event.Type)
	}
	if event.Data["text"] != "halo" {
		t.Errorf("Expected notice text, got %+v", event.Data)
	}
}

package notices

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

func setupTestQueue(t *testing.T) (*Queue, *miniredis.Miniredis) {
	t.Helper()

	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("Failed to start miniredis: %v", err)
	}

	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))

	return NewQueue(rdb, logger), mr
}

func TestNoticeQueue_PushAndDrain(t *testing.T) {
	q, mr := setupTestQueue(t)
	defer mr.Close()

	ctx := context.Background()
	sessionID := uuid.New()

	messages := []string{
		"Inventory penuh!",
		"Kamu mendapatkan Ikan Danau",
		"Selamat datang di Pantai",
	}
	for _, msg := range messages {
		if err := q.Push(ctx, sessionID, msg); err != nil {
			t.Fatalf("Failed to push notice: %v", err)
		}
	}

	depth, err := q.Depth(ctx, sessionID)
	if err != nil {
		t.Fatalf("Failed to get depth: %v", err)
	}
	if depth != len(messages) {
		t.Errorf("Expected depth %d, got %d", len(messages), depth)
	}

	drained, err := q.Drain(ctx, sessionID)
	if err != nil {
		t.Fatalf("Failed to drain notices: %v", err)
	}
	if len(drained) != len(messages) {
		t.Fatalf("Expected %d notices, got %d", len(messages), len(drained))
	}
	for i, msg := range messages {
		if drained[i] != msg {
			t.Errorf("Notice %d mismatch: expected %q, got %q", i, msg, drained[i])
		}
	}

	depth, err = q.Depth(ctx, sessionID)
	if err != nil {
		t.Fatalf("Failed to get depth after drain: %v", err)
	}
	if depth != 0 {
		t.Errorf("Expected empty feed after drain, got depth %d", depth)
	}
}

func TestNoticeQueue_DrainEmpty(t *testing.T) {
	q, mr := setupTestQueue(t)
	defer mr.Close()

	drained, err := q.Drain(context.Background(), uuid.New())
	if err != nil {
		t.Fatalf("Unexpected error draining empty feed: %v", err)
	}
	if len(drained) != 0 {
		t.Errorf("Expected no notices, got %d", len(drained))
	}
}

func TestNoticeQueue_PeekDoesNotRemove(t *testing.T) {
	q, mr := setupTestQueue(t)
	defer mr.Close()

	ctx := context.Background()
	sessionID := uuid.New()

	for i := 0; i < 5; i++ {
		if err := q.Push(ctx, sessionID, fmt.Sprintf("notice-%d", i)); err != nil {
			t.Fatalf("Failed to push notice: %v", err)
		}
	}

	peeked, err := q.Peek(ctx, sessionID, 2)
	if err != nil {
		t.Fatalf("Failed to peek: %v", err)
	}
	if len(peeked) != 2 {
		t.Errorf("Expected 2 notices from limited peek, got %d", len(peeked))
	}

	depth, err := q.Depth(ctx, sessionID)
	if err != nil {
		t.Fatalf("Failed to get depth: %v", err)
	}
	if depth != 5 {
		t.Errorf("Peek must not remove notices, depth is %d", depth)
	}
}

func TestNoticeQueue_TrimsOldest(t *testing.T) {
	q, mr := setupTestQueue(t)
	defer mr.Close()

	ctx := context.Background()
	sessionID := uuid.New()

	for i := 0; i < MaxPerSession+10; i++ {
		if err := q.Push(ctx, sessionID, fmt.Sprintf("notice-%d", i)); err != nil {
			t.Fatalf("Failed to push notice: %v", err)
		}
	}

	notices, err := q.Drain(ctx, sessionID)
	if err != nil {
		t.Fatalf("Failed to drain: %v", err)
	}
	if len(notices) != MaxPerSession {
		t.Fatalf("Expected feed capped at %d, got %d", MaxPerSession, len(notices))
	}
	if notices[0] != "notice-10" {
		t.Errorf("Expected oldest notices trimmed, first is %q", notices[0])
	}
	if notices[len(notices)-1] != fmt.Sprintf("notice-%d", MaxPerSession+9) {
		t.Errorf("Expected newest notice kept, last is %q", notices[len(notices)-1])
	}
}

func TestNoticeQueue_Clear(t *testing.T) {
	q, mr := setupTestQueue(t)
	defer mr.Close()

	ctx := context.Background()
	sessionID := uuid.New()

	if err := q.Push(ctx, sessionID, "notice"); err != nil {
		t.Fatalf("Failed to push notice: %v", err)
	}
	if err := q.Clear(ctx, sessionID); err != nil {
		t.Fatalf("Failed to clear: %v", err)
	}

	depth, err := q.Depth(ctx, sessionID)
	if err != nil {
		t.Fatalf("Failed to get depth: %v", err)
	}
	if depth != 0 {
		t.Errorf("Expected empty feed after clear, got %d", depth)
	}
}

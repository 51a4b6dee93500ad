package notices

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// MaxPerSession caps how many undelivered notices a session keeps.
// Older notices are trimmed first.
const MaxPerSession = 50

// Queue manages per-session notice feeds: short player-facing messages
// (inventory full, activity results, travel arrivals) buffered until the
// client next polls.
type Queue struct {
	rdb    *redis.Client
	logger *slog.Logger
}

func NewQueue(rdb *redis.Client, logger *slog.Logger) *Queue {
	return &Queue{
		rdb:    rdb,
		logger: logger,
	}
}

func noticeKey(sessionID uuid.UUID) string {
	return fmt.Sprintf("notices:%s", sessionID.String())
}

// Push adds a notice to the end of a session's feed.
func (q *Queue) Push(ctx context.Context, sessionID uuid.UUID, text string) error {
	key := noticeKey(sessionID)
	pipe := q.rdb.TxPipeline()
	pipe.RPush(ctx, key, text)
	pipe.LTrim(ctx, key, -MaxPerSession, -1)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to push notice: %w", err)
	}
	return nil
}

// Drain removes and returns all pending notices for a session.
func (q *Queue) Drain(ctx context.Context, sessionID uuid.UUID) ([]string, error) {
	key := noticeKey(sessionID)

	notices, err := q.rdb.LRange(ctx, key, 0, -1).Result()
	if err != nil && err != redis.Nil {
		return nil, fmt.Errorf("failed to drain notices: %w", err)
	}
	if len(notices) > 0 {
		if err := q.rdb.Del(ctx, key).Err(); err != nil {
			return nil, fmt.Errorf("failed to clear notices after drain: %w", err)
		}
	}
	return notices, nil
}

// Peek returns up to limit pending notices without removing them.
// A limit of zero or less returns all of them.
func (q *Queue) Peek(ctx context.Context, sessionID uuid.UUID, limit int) ([]string, error) {
	key := noticeKey(sessionID)

	end := int64(limit - 1)
	if limit <= 0 {
		end = -1
	}
	notices, err := q.rdb.LRange(ctx, key, 0, end).Result()
	if err != nil && err != redis.Nil {
		return nil, fmt.Errorf("failed to peek notices: %w", err)
	}
	return notices, nil
}

// Clear removes all pending notices for a session.
func (q *Queue) Clear(ctx context.Context, sessionID uuid.UUID) error {
	if err := q.rdb.Del(ctx, noticeKey(sessionID)).Err(); err != nil {
		return fmt.Errorf("failed to clear notices: %w", err)
	}
	return nil
}

// Depth returns the number of pending notices for a session.
func (q *Queue) Depth(ctx context.Context, sessionID uuid.UUID) (int, error) {
	count, err := q.rdb.LLen(ctx, noticeKey(sessionID)).Result()
	if err != nil {
		return 0, fmt.Errorf("failed to get notice depth: %w", err)
	}
	return int(count), nil
}

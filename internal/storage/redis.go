package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/jwebster45206/life-engine/pkg/state"
)

// Hash field names for persisted sessions. Every value lives in its
// own field so a corrupt field costs only that value, not the session.
const (
	fieldName      = "name"
	fieldSprite    = "sprite"
	fieldEnergy    = "energy"
	fieldHunger    = "hunger"
	fieldHappiness = "happiness"
	fieldHygiene   = "hygiene"
	fieldMoney     = "money"
	fieldDay       = "day"
	fieldHour      = "hour"
	fieldMinute    = "minute"
	fieldLocation  = "location"
	fieldInventory = "inventory"
	fieldCounters  = "counters"
)

// RedisStorage implements the Storage interface using Redis. Sessions
// are stored as hashes under session: keys.
type RedisStorage struct {
	client *redis.Client
	logger *slog.Logger
	ttl    time.Duration
}

// Ensure RedisStorage implements Storage interface
var _ Storage = (*RedisStorage)(nil)

// NewRedisStorage creates a new Redis storage instance. Sessions expire
// after ttl of inactivity; every save refreshes the expiry.
func NewRedisStorage(redisURL string, ttl time.Duration, logger *slog.Logger) *RedisStorage {
	rdb := redis.NewClient(&redis.Options{
		Addr: redisURL,
	})

	return &RedisStorage{
		client: rdb,
		logger: logger,
		ttl:    ttl,
	}
}

func sessionKey(id uuid.UUID) string {
	return "session:" + id.String()
}

func (r *RedisStorage) Ping(ctx context.Context) error {
	if err := r.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping failed: %w", err)
	}
	return nil
}

func (r *RedisStorage) Close() error {
	if err := r.client.Close(); err != nil {
		r.logger.Error("Failed to close Redis connection", "error", err)
		return err
	}
	r.logger.Info("Redis connection closed")
	return nil
}

// WaitForConnection waits for Redis to become available (used during startup)
func (r *RedisStorage) WaitForConnection(ctx context.Context) error {
	maxRetries := 30
	retryDelay := 2 * time.Second

	for i := 0; i < maxRetries; i++ {
		if err := r.Ping(ctx); err != nil {
			r.logger.Debug("Redis not ready yet", "error", err, "attempt", i+1)

			select {
			case <-ctx.Done():
				return fmt.Errorf("context cancelled while waiting for redis: %w", ctx.Err())
			case <-time.After(retryDelay):
				continue
			}
		}

		r.logger.Info("Redis connection established")
		return nil
	}

	return fmt.Errorf("redis did not become available after %d attempts", maxRetries)
}

func (r *RedisStorage) SaveGameState(ctx context.Context, id uuid.UUID, gs *state.GameState) error {
	inventory, err := json.Marshal(gs.Inventory)
	if err != nil {
		r.logger.Error("Failed to marshal inventory", "uuid", id, "error", err)
		return fmt.Errorf("failed to marshal inventory: %w", err)
	}
	counters, err := json.Marshal(gs.Counters)
	if err != nil {
		r.logger.Error("Failed to marshal counters", "uuid", id, "error", err)
		return fmt.Errorf("failed to marshal counters: %w", err)
	}

	key := sessionKey(id)
	fields := map[string]interface{}{
		fieldName:      gs.Name,
		fieldSprite:    gs.Sprite,
		fieldEnergy:    gs.Stats.Energy,
		fieldHunger:    gs.Stats.Hunger,
		fieldHappiness: gs.Stats.Happiness,
		fieldHygiene:   gs.Stats.Hygiene,
		fieldMoney:     gs.Money,
		fieldDay:       gs.Clock.Day,
		fieldHour:      gs.Clock.Hour,
		fieldMinute:    gs.Clock.Minute,
		fieldLocation:  string(gs.Location),
		fieldInventory: string(inventory),
		fieldCounters:  string(counters),
	}

	pipe := r.client.TxPipeline()
	pipe.HSet(ctx, key, fields)
	pipe.Expire(ctx, key, r.ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		r.logger.Error("Failed to save session", "uuid", id, "error", err)
		return fmt.Errorf("failed to save session: %w", err)
	}

	return nil
}

func (r *RedisStorage) LoadGameState(ctx context.Context, id uuid.UUID) (*state.GameState, error) {
	key := sessionKey(id)
	fields, err := r.client.HGetAll(ctx, key).Result()
	if err != nil {
		r.logger.Error("Failed to load session", "uuid", id, "error", err)
		return nil, fmt.Errorf("failed to load session: %w", err)
	}
	if len(fields) == 0 {
		r.logger.Warn("Session not found", "uuid", id)
		return nil, nil
	}

	// Name and sprite identify the player. Without both, the record
	// is a remnant and the session does not exist.
	name, sprite := fields[fieldName], fields[fieldSprite]
	if name == "" || sprite == "" {
		r.logger.Warn("Session missing identity fields", "uuid", id)
		return nil, nil
	}

	// Every other field recovers independently: a missing or corrupt
	// value falls back to its default without discarding the rest.
	gs := state.NewGameState(name, sprite)
	gs.ID = id
	gs.Stats.Energy = r.intField(id, fields, fieldEnergy, state.DefaultStatValue)
	gs.Stats.Hunger = r.intField(id, fields, fieldHunger, state.DefaultStatValue)
	gs.Stats.Happiness = r.intField(id, fields, fieldHappiness, state.DefaultStatValue)
	gs.Stats.Hygiene = r.intField(id, fields, fieldHygiene, state.DefaultStatValue)
	gs.Money = r.intField(id, fields, fieldMoney, state.DefaultMoney)
	gs.Clock.Day = r.intField(id, fields, fieldDay, state.DefaultDay)
	gs.Clock.Hour = r.intField(id, fields, fieldHour, state.DefaultHour)
	gs.Clock.Minute = r.intField(id, fields, fieldMinute, 0)

	if loc := state.Location(fields[fieldLocation]); state.ValidLocation(loc) {
		gs.Location = loc
		gs.LocationLabel = string(loc)
	}

	if raw := fields[fieldInventory]; raw != "" {
		var items []state.Item
		if err := json.Unmarshal([]byte(raw), &items); err != nil {
			r.logger.Warn("Corrupt inventory field, using empty inventory", "uuid", id, "error", err)
		} else {
			kept := items[:0]
			for _, it := range items {
				if err := it.Validate(); err != nil {
					r.logger.Warn("Dropping invalid inventory item", "uuid", id, "item", it.Name, "error", err)
					continue
				}
				kept = append(kept, it)
			}
			gs.Inventory = kept
		}
	}

	if raw := fields[fieldCounters]; raw != "" {
		var counters map[string]int
		if err := json.Unmarshal([]byte(raw), &counters); err != nil {
			r.logger.Warn("Corrupt counters field, using empty counters", "uuid", id, "error", err)
		} else if counters != nil {
			gs.Counters = counters
		}
	}

	return gs, nil
}

func (r *RedisStorage) intField(id uuid.UUID, fields map[string]string, name string, defaultValue int) int {
	raw, ok := fields[name]
	if !ok {
		return defaultValue
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		r.logger.Warn("Corrupt session field, using default", "uuid", id, "field", name, "value", raw)
		return defaultValue
	}
	return v
}

func (r *RedisStorage) DeleteGameState(ctx context.Context, id uuid.UUID) error {
	if err := r.client.Del(ctx, sessionKey(id)).Err(); err != nil {
		r.logger.Error("Failed to delete session", "uuid", id, "error", err)
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

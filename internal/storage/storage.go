package storage

import (
	"context"

	"github.com/google/uuid"

	"github.com/jwebster45206/life-engine/pkg/state"
)

// Storage persists game sessions. A load returns (nil, nil) when no
// session exists under the given ID.
type Storage interface {
	Ping(ctx context.Context) error
	Close() error

	SaveGameState(ctx context.Context, id uuid.UUID, gs *state.GameState) error
	LoadGameState(ctx context.Context, id uuid.UUID) (*state.GameState, error)
	DeleteGameState(ctx context.Context, id uuid.UUID) error
}

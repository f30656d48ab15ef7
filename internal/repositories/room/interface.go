package room

//go:generate mockgen -package=mocks -destination=mocks/mock_repository.go github.com/KirkDiggler/scribble/internal/repositories/room Repository

import (
	"context"

	"github.com/KirkDiggler/scribble/internal/models"
)

// Repository defines the interface for room document persistence
type Repository interface {
	// Create stores a new room and indexes its code
	Create(ctx context.Context, input *CreateInput) error

	// Get retrieves a room by ID
	Get(ctx context.Context, input *GetInput) (*models.Room, error)

	// GetByCode retrieves a room by its share code
	GetByCode(ctx context.Context, input *GetByCodeInput) (*models.Room, error)

	// ListPublic returns public rooms, most recently active first
	ListPublic(ctx context.Context, input *ListPublicInput) (*ListPublicOutput, error)

	// ListByHost returns the rooms a user created, most recently active first
	ListByHost(ctx context.Context, input *ListByHostInput) (*ListByHostOutput, error)

	// Delete removes a room, its code and its index entries
	Delete(ctx context.Context, input *DeleteInput) error

	// SaveCanvas stores the latest canvas snapshot and bumps lastActive
	SaveCanvas(ctx context.Context, input *SaveCanvasInput) error

	// UpdateSettings replaces the room settings
	UpdateSettings(ctx context.Context, input *UpdateSettingsInput) error

	// TouchLastActive bumps lastActive
	TouchLastActive(ctx context.Context, input *TouchLastActiveInput) error
}

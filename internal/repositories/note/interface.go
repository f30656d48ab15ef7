package note

//go:generate mockgen -package=mocks -destination=mocks/mock_repository.go github.com/KirkDiggler/scribble/internal/repositories/note Repository

import (
	"context"
)

// Repository defines the interface for a room's sticky notes
type Repository interface {
	// Upsert stores a note, replacing any note with the same ID
	Upsert(ctx context.Context, input *UpsertInput) error

	// Update replaces an existing note and fails if it is missing
	Update(ctx context.Context, input *UpdateInput) error

	// Delete removes a note
	Delete(ctx context.Context, input *DeleteInput) error

	// Clear removes every note in a room
	Clear(ctx context.Context, input *ClearInput) error

	// List returns every note in a room ordered by ID
	List(ctx context.Context, input *ListInput) (*ListOutput, error)
}

package chat

//go:generate mockgen -package=mocks -destination=mocks/mock_repository.go github.com/KirkDiggler/scribble/internal/repositories/chat Repository

import (
	"context"
)

// Repository defines the interface for room chat history
type Repository interface {
	// Append adds a message, keeping only the newest HistoryLimit
	Append(ctx context.Context, input *AppendInput) error

	// Clear drops a room's whole history
	Clear(ctx context.Context, input *ClearInput) error

	// Recent returns the newest messages, oldest first
	Recent(ctx context.Context, input *RecentInput) (*RecentOutput, error)
}

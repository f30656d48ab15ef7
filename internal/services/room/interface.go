package room

import (
	"context"

	"github.com/KirkDiggler/scribble/internal/models"
)

//go:generate mockgen -package=mocks -destination=mocks/mock_service.go github.com/KirkDiggler/scribble/internal/services/room Service

// Service coordinates everything that happens in a room outside the game
type Service interface {
	// CreateRoom stores a new room hosted by the caller
	CreateRoom(ctx context.Context, input *CreateRoomInput) (*CreateRoomOutput, error)

	// GetRoom loads a room by ID
	GetRoom(ctx context.Context, input *GetRoomInput) (*models.Room, error)

	// FindByCode loads a room by its share code
	FindByCode(ctx context.Context, input *FindByCodeInput) (*models.Room, error)

	// ListPublic returns browsable rooms, most recently active first
	ListPublic(ctx context.Context) ([]*models.Room, error)

	// ListMine returns the rooms the caller hosts, most recently active first
	ListMine(ctx context.Context, input *ListMineInput) ([]*models.Room, error)

	// VerifyPassword checks a join password. Rooms without one always pass.
	VerifyPassword(ctx context.Context, input *VerifyPasswordInput) error

	// DeleteRoom removes a room and its history, host only
	DeleteRoom(ctx context.Context, input *DeleteRoomInput) error

	// StoreCanvas saves a canvas snapshot outside a live connection
	StoreCanvas(ctx context.Context, input *StoreCanvasInput) error

	// Join puts a connection in a room and announces it
	Join(ctx context.Context, input *JoinInput) (*JoinOutput, error)

	// Leave takes a connection out of its room and announces it
	Leave(input *LeaveInput) error

	SendChat(input *SendChatInput) error
	AddNote(input *NoteInput) error
	UpdateNote(input *NoteInput) error
	DeleteNote(input *DeleteNoteInput) error

	// UpdateSettings changes room settings, host only
	UpdateSettings(input *UpdateSettingsInput) error

	SaveCanvas(input *SaveCanvasInput) error
	React(input *ReactInput) error
}

package room

import (
	"time"

	"github.com/KirkDiggler/scribble/internal/models"
)

type CreateInput struct {
	Room *models.Room
}

type GetInput struct {
	RoomID string
}

type GetByCodeInput struct {
	Code string
}

type ListPublicInput struct {
	// Limit caps the result, zero means the default of 50
	Limit int
}

type ListPublicOutput struct {
	Rooms []*models.Room
}

type SaveCanvasInput struct {
	RoomID     string
	CanvasData string
	At         time.Time
}

type UpdateSettingsInput struct {
	RoomID   string
	Settings models.RoomSettings
}

type TouchLastActiveInput struct {
	RoomID string
	At     time.Time
}

type ListByHostInput struct {
	HostID string

	// Limit caps the result, zero means the default of 20
	Limit int
}

type ListByHostOutput struct {
	Rooms []*models.Room
}

type DeleteInput struct {
	RoomID string
}

package note

import "github.com/KirkDiggler/scribble/internal/models"

type UpsertInput struct {
	RoomID string
	Note   *models.StickyNote
}

type UpdateInput struct {
	RoomID string
	Note   *models.StickyNote
}

type DeleteInput struct {
	RoomID string
	NoteID string
}

type ListInput struct {
	RoomID string
}

type ListOutput struct {
	Notes []*models.StickyNote
}

type ClearInput struct {
	RoomID string
}

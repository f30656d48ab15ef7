package chat

import "github.com/KirkDiggler/scribble/internal/models"

type AppendInput struct {
	RoomID  string
	Message *models.ChatMessage
}

type RecentInput struct {
	RoomID string

	// Limit caps the result, zero means the whole stored history
	Limit int
}

type RecentOutput struct {
	Messages []*models.ChatMessage
}

type ClearInput struct {
	RoomID string
}

package room

import (
	"github.com/KirkDiggler/scribble/internal/broadcast"
	"github.com/KirkDiggler/scribble/internal/common/async"
	"github.com/KirkDiggler/scribble/internal/common/clock"
	"github.com/KirkDiggler/scribble/internal/common/uuid"
	"github.com/KirkDiggler/scribble/internal/models"
	chatRepo "github.com/KirkDiggler/scribble/internal/repositories/chat"
	noteRepo "github.com/KirkDiggler/scribble/internal/repositories/note"
	roomRepo "github.com/KirkDiggler/scribble/internal/repositories/room"
	"github.com/KirkDiggler/scribble/internal/services/presence"
)

const (
	// MaxMessageLength caps chat text in runes
	MaxMessageLength = 500

	// JoinHistoryLimit is how much chat a joining member receives
	JoinHistoryLimit = 50

	// DefaultHostName is used when the creator has no username
	DefaultHostName = "Host"

	codeAttempts = 3
)

// Config holds configuration for the room service
type Config struct {
	Presence presence.Service
	Gateway  broadcast.Gateway
	Rooms    roomRepo.Repository
	Chat     chatRepo.Repository
	Notes    noteRepo.Repository

	// Queue runs persistence writes off the event path
	Queue async.Submitter

	Clock clock.Clock
	UUID  uuid.UUID
}

type CreateRoomInput struct {
	Name     string
	IsPublic bool

	// Password is only kept for public rooms
	Password string

	Host models.Identity
}

type CreateRoomOutput struct {
	Room *models.Room
}

type GetRoomInput struct {
	RoomID string
}

type FindByCodeInput struct {
	Code string
}

type ListMineInput struct {
	HostID string
}

type VerifyPasswordInput struct {
	RoomID   string
	Password string
}

type DeleteRoomInput struct {
	RoomID string

	// UserID is the caller, who must be the host
	UserID string
}

type StoreCanvasInput struct {
	RoomID     string
	CanvasData string
}

type JoinInput struct {
	RoomID       string
	ConnectionID string
	Identity     models.Identity

	// Color overrides the identity colour when set
	Color string
}

type JoinOutput struct {
	Room  *models.Room
	Me    models.Member
	Users []models.Member
}

type LeaveInput struct {
	ConnectionID string
}

type SendChatInput struct {
	ConnectionID string
	Text         string
}

type NoteInput struct {
	ConnectionID string
	Note         *models.StickyNote
}

type DeleteNoteInput struct {
	ConnectionID string
	NoteID       string
}

type UpdateSettingsInput struct {
	ConnectionID string
	Settings     models.RoomSettings
}

type SaveCanvasInput struct {
	ConnectionID string
	CanvasData   string
}

type ReactInput struct {
	ConnectionID string
	Emoji        string
	X            float64
	Y            float64
}

// JoinedRoom is the room as a joining member sees it
type JoinedRoom struct {
	ID          string                `json:"_id"`
	Name        string                `json:"name"`
	Code        string                `json:"code"`
	CanvasData  string                `json:"canvasData"`
	StickyNotes []*models.StickyNote  `json:"stickyNotes"`
	ChatHistory []*models.ChatMessage `json:"chatHistory"`
	Settings    models.RoomSettings   `json:"settings"`
}

type JoinedPayload struct {
	Room  JoinedRoom      `json:"room"`
	Users []models.Member `json:"users"`
	Me    models.Member   `json:"me"`
}

type UserJoinedPayload struct {
	User  models.Member   `json:"user"`
	Users []models.Member `json:"users"`
}

type UserLeftPayload struct {
	Username string          `json:"username"`
	Users    []models.Member `json:"users"`
}

type NotePayload struct {
	Note *models.StickyNote `json:"note"`
}

type NoteDeletedPayload struct {
	NoteID string `json:"noteId"`
}

type SettingsPayload struct {
	Settings models.RoomSettings `json:"settings"`
}

type ReactionPayload struct {
	Emoji    string  `json:"emoji"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Username string  `json:"username"`
}

package room

// RoomError is a custom error type for room-related errors
type RoomError string

// Error implements the error interface
func (e RoomError) Error() string {
	return string(e)
}

// Define errors
const (
	ErrRoomNotFound     RoomError = "room not found"
	ErrRoomNameRequired RoomError = "room name required"
	ErrNotInRoom        RoomError = "connection has not joined a room"
	ErrNotHost          RoomError = "only the host can do that"
	ErrEmptyMessage     RoomError = "message is empty"
	ErrMissingNote      RoomError = "note is required"
	ErrMissingNoteID    RoomError = "note id is required"
	ErrCodeExhausted    RoomError = "could not allocate a room code"
	ErrWrongPassword    RoomError = "incorrect password"

	ErrNilInput          RoomError = "input cannot be nil"
	ErrNilConfig         RoomError = "config cannot be nil"
	ErrNilPresence       RoomError = "presence service cannot be nil"
	ErrNilGateway        RoomError = "gateway cannot be nil"
	ErrNilRoomRepository RoomError = "room repository cannot be nil"
	ErrNilChatRepository RoomError = "chat repository cannot be nil"
	ErrNilNoteRepository RoomError = "note repository cannot be nil"
	ErrNilQueue          RoomError = "persistence queue cannot be nil"
	ErrNilClock          RoomError = "clock cannot be nil"
	ErrNilUUID           RoomError = "uuid generator cannot be nil"
)

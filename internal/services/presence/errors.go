package presence

// PresenceError is a custom error type for presence-related errors
type PresenceError string

// Error implements the error interface
func (e PresenceError) Error() string {
	return string(e)
}

// Define errors
const (
	ErrConnectionNotFound PresenceError = "connection is not in a room"
	ErrMissingRoomID      PresenceError = "room id is required"
	ErrMissingConnection  PresenceError = "connection id is required"
	ErrNilInput           PresenceError = "input cannot be nil"
)

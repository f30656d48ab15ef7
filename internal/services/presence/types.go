package presence

import "github.com/KirkDiggler/scribble/internal/models"

const (
	// DefaultUsername is shown for identities without a username
	DefaultUsername = "User"

	// DefaultColor is used when neither the join nor the identity names a colour
	DefaultColor = "#00FFBF"
)

// JoinInput contains parameters for joining a room
type JoinInput struct {
	// RoomID is the room being joined
	RoomID string

	// ConnectionID is the live connection joining
	ConnectionID string

	// Identity is the verified caller
	Identity models.Identity

	// Color overrides the identity colour when set
	Color string

	// IsHost marks the member as the room owner
	IsHost bool
}

// JoinOutput contains the result of joining a room
type JoinOutput struct {
	// Member is the stored entry for the joining connection
	Member models.Member

	// Roster is every member of the room after the join
	Roster []models.Member

	// PreviousRoomID is set when the connection was moved out of another room
	PreviousRoomID string
}

// LeaveInput contains parameters for leaving a room
type LeaveInput struct {
	ConnectionID string
}

// LeaveOutput contains the result of leaving a room
type LeaveOutput struct {
	// RoomID is the room that was left
	RoomID string

	// Member is the entry that was removed
	Member models.Member

	// Roster is whoever remains, empty when the room was deleted
	Roster []models.Member

	// RoomEmpty is true when the last member left and the room entry was removed
	RoomEmpty bool
}

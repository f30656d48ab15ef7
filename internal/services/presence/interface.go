package presence

import "github.com/KirkDiggler/scribble/internal/models"

// Service tracks which connections are in which room
type Service interface {
	// Join adds or replaces a connection's entry and returns the roster in join order
	Join(input *JoinInput) (*JoinOutput, error)

	// Leave removes a connection from whichever room it is in
	Leave(input *LeaveInput) (*LeaveOutput, error)

	// Find returns the room a connection is in
	Find(connectionID string) (string, bool)

	// Roster returns a snapshot of a room's members in join order
	Roster(roomID string) []models.Member
}

// Package broadcast defines how services hand outbound events to connected clients.
package broadcast

//go:generate mockgen -package=mocks -destination=mocks/mock_gateway.go github.com/KirkDiggler/scribble/internal/broadcast Gateway

// Gateway delivers events to connections. Every method is fire-and-forget:
// delivery is best-effort and never blocks the caller.
type Gateway interface {
	// ToRoom delivers an event to every connection subscribed to the room
	ToRoom(roomID string, event Event)

	// ToRoomExcept delivers an event to the room, skipping one connection
	ToRoomExcept(roomID, connectionID string, event Event)

	// ToConnection delivers an event to a single connection
	ToConnection(connectionID string, event Event)

	// Subscribe adds a connection to a room's fan-out set
	Subscribe(roomID, connectionID string)

	// Unsubscribe removes a connection from whichever room it is in
	Unsubscribe(connectionID string)
}

// Event is a single outbound message
type Event struct {
	Type    string `json:"type"`
	Payload any    `json:"payload,omitempty"`
}

// NewEvent builds an event of the given type
func NewEvent(eventType string, payload any) Event {
	return Event{Type: eventType, Payload: payload}
}

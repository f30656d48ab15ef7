package models

// Player is a participant's standing inside one game session
type Player struct {
	// ConnectionID is the connection currently bound to this player
	ConnectionID string `json:"connectionId"`

	// Username is the display name, stable across reconnects
	Username string `json:"username"`

	// Color is the player's chosen colour
	Color string `json:"color"`

	// Score never decreases within a session
	Score int `json:"score"`
}

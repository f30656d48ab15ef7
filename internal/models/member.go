package models

// Identity is the trusted caller information supplied by authentication
type Identity struct {
	// UserID is the account identifier
	UserID string

	// Username is the display name
	Username string

	// Color is the account's default colour
	Color string
}

// Member is one connection's presence in a room
type Member struct {
	// ConnectionID identifies the live connection
	ConnectionID string `json:"connectionId"`

	// UserID is the account behind the connection
	UserID string `json:"-"`

	// Username is the display name
	Username string `json:"username"`

	// Color is the colour the member joined with
	Color string `json:"color"`

	// IsHost is true when the member owns the room
	IsHost bool `json:"isHost"`
}

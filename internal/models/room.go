package models

import (
	"time"
)

// RoomSettings are the host-controlled options of a room
type RoomSettings struct {
	// AllowDraw lets non-hosts draw on the shared canvas
	AllowDraw bool `json:"allowDraw"`

	// Background is the canvas background style
	Background string `json:"background"`
}

// DefaultRoomSettings returns the settings a new room starts with
func DefaultRoomSettings() RoomSettings {
	return RoomSettings{
		AllowDraw:  true,
		Background: "blank",
	}
}

// Room is a persistent collaborative space
type Room struct {
	// ID is the unique identifier for the room
	ID string `json:"_id"`

	// Code is the short shareable code
	Code string `json:"code"`

	// Name is the room's display name
	Name string `json:"name"`

	// HostID is the account that created the room
	HostID string `json:"host"`

	// HostName is the display name of the host
	HostName string `json:"hostName"`

	// CanvasData is the last saved canvas snapshot
	CanvasData string `json:"canvasData"`

	// Settings are the host-controlled options
	Settings RoomSettings `json:"settings"`

	// IsPublic lists the room for browsing
	IsPublic bool `json:"isPublic"`

	// PasswordHash is the bcrypt hash of the join password, empty when open
	PasswordHash string `json:"passwordHash,omitempty"`

	// CreatedAt is when the room was created
	CreatedAt time.Time `json:"createdAt"`

	// LastActive is when anyone last used the room
	LastActive time.Time `json:"lastActive"`
}

// HasPassword returns true if joining requires a password
func (r *Room) HasPassword() bool {
	return r.PasswordHash != ""
}

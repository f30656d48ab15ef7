package models

import (
	"time"
)

// ChatMessageType distinguishes user chat from system notices
type ChatMessageType string

const (
	// ChatMessageTypeMessage is a regular user message
	ChatMessageTypeMessage ChatMessageType = "message"
)

// ChatMessage is one line of room chat
type ChatMessage struct {
	Username  string          `json:"username"`
	Text      string          `json:"text"`
	Color     string          `json:"color"`
	Type      ChatMessageType `json:"type"`
	Timestamp time.Time       `json:"timestamp"`
}

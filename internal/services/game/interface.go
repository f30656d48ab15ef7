package game

import "github.com/KirkDiggler/scribble/internal/models"

//go:generate mockgen -package=mocks -destination=mocks/mock_service.go github.com/KirkDiggler/scribble/internal/services/game Service

// Service runs at most one draw-and-guess session per room
type Service interface {
	// Start snapshots the room roster and begins the first turn
	Start(input *StartInput) (*StartOutput, error)

	// PickWord lets the drawer choose one of the offered words
	PickWord(input *PickWordInput) error

	// Guess evaluates a guess from a non-drawing player
	Guess(input *GuessInput) (*GuessOutput, error)

	// Rejoin rebinds a returning player to a new connection and syncs it
	Rejoin(input *RejoinInput) (*RejoinOutput, error)

	// Sync sends a single connection a snapshot of the current turn
	Sync(input *SyncInput) error

	// Stop ends the session immediately
	Stop(input *StopInput) error

	// Shutdown ends every session without notifying anyone
	Shutdown()
}

// WordBank supplies candidate words and hints
type WordBank interface {
	Pick3() []string
	RevealLetter(word, masked string) string
}

// RosterSource supplies the members currently present in a room
type RosterSource interface {
	Roster(roomID string) []models.Member
}

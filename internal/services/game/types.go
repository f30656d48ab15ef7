package game

import (
	"time"

	"github.com/KirkDiggler/scribble/internal/broadcast"
	"github.com/KirkDiggler/scribble/internal/common/clock"
	"github.com/KirkDiggler/scribble/internal/models"
)

const (
	// DefaultRounds is used when a start request leaves rounds unset
	DefaultRounds = 3

	// DefaultTurnTime is the drawing time in seconds when unset
	DefaultTurnTime = 80

	DefaultMaxRounds     = 10
	DefaultMaxTurnTime   = 240
	DefaultChooseTimeout = 15 * time.Second
	DefaultTurnEndDelay  = 4500 * time.Millisecond

	// MinPlayers is the smallest roster a game can start with
	MinPlayers = 2

	tickInterval = time.Second

	notEnoughPlayersMessage = "Need at least 2 players to start the game!"
)

// Config holds configuration for the game service
type Config struct {
	// How long the drawer has to pick before the first candidate is used
	ChooseTimeout time.Duration

	// Pause between the word reveal and the next turn
	TurnEndDelay time.Duration

	// Upper bounds for requested rounds and turn time
	MaxRounds   int
	MaxTurnTime int

	// Service dependencies
	Clock   clock.Clock
	Words   WordBank
	Roster  RosterSource
	Gateway broadcast.Gateway
}

// StartInput contains parameters for starting a game
type StartInput struct {
	// RoomID is the room the game runs in
	RoomID string

	// ConnectionID is the requester, who receives the rejection if any
	ConnectionID string

	// Rounds is how many times every player draws
	Rounds int

	// TurnTime is the drawing time in seconds
	TurnTime int
}

// StartOutput contains the result of starting a game
type StartOutput struct {
	Players  []models.Player
	Rounds   int
	TurnTime int
}

// PickWordInput contains the drawer's choice
type PickWordInput struct {
	RoomID       string
	ConnectionID string
	Word         string
}

// GuessInput contains a guess attempt
type GuessInput struct {
	RoomID       string
	ConnectionID string
	Text         string
}

// GuessOutput contains the evaluation of a guess
type GuessOutput struct {
	// Correct is true when the guess matched the word
	Correct bool

	// Close is true for a wrong guess near the word
	Close bool

	// Points awarded to the guesser
	Points int

	// TurnEnded is true when this guess completed the turn
	TurnEnded bool
}

// RejoinInput contains parameters for a returning player
type RejoinInput struct {
	RoomID       string
	ConnectionID string
	Username     string
}

// RejoinOutput contains the result of a rejoin
type RejoinOutput struct {
	// Rebound is true when the username matched a player in the session
	Rebound bool
}

// SyncInput identifies the connection to sync
type SyncInput struct {
	RoomID       string
	ConnectionID string
}

// StopInput identifies the game to stop
type StopInput struct {
	RoomID       string
	ConnectionID string
}

// StartedPayload announces a new game
type StartedPayload struct {
	Players  []models.Player `json:"players"`
	Rounds   int             `json:"rounds"`
	TurnTime int             `json:"turnTime"`
}

// ChoosingPayload announces who is picking a word
type ChoosingPayload struct {
	Drawer             string `json:"drawer"`
	DrawerConnectionID string `json:"drawerConnectionId"`
	Round              int    `json:"round"`
	MaxRounds          int    `json:"maxRounds"`
}

// PickWordPayload carries the candidates to the drawer
type PickWordPayload struct {
	Words []string `json:"words"`
}

// RoundStartPayload announces the start of drawing
type RoundStartPayload struct {
	MaskedWord         string `json:"maskedWord"`
	WordLength         int    `json:"wordLength"`
	Drawer             string `json:"drawer"`
	DrawerConnectionID string `json:"drawerConnectionId"`
}

type TickPayload struct {
	Remaining int `json:"remaining"`
}

type HintPayload struct {
	MaskedWord string `json:"maskedWord"`
}

// TurnEndPayload reveals the word with the scoreboard
type TurnEndPayload struct {
	Word    string          `json:"word"`
	Players []models.Player `json:"players"`
}

// OverPayload carries the final ranking, highest score first
type OverPayload struct {
	Players []models.Player `json:"players"`
}

type CorrectGuessPayload struct {
	Username string          `json:"username"`
	Points   int             `json:"points"`
	Players  []models.Player `json:"players"`
}

type WrongGuessPayload struct {
	Username string `json:"username"`
	Guess    string `json:"guess"`
	Close    bool   `json:"close"`
}

type YouGuessedPayload struct {
	Word   string `json:"word"`
	Points int    `json:"points"`
}

type YouDrawPayload struct {
	Word string `json:"word"`
}

// SyncPayload is a private snapshot for a reconnecting connection. The word
// is only filled in for the drawer.
type SyncPayload struct {
	Status             models.GameStatus `json:"status"`
	Players            []models.Player   `json:"players"`
	Round              int               `json:"round"`
	MaxRounds          int               `json:"maxRounds"`
	TurnTime           int               `json:"turnTime"`
	Drawer             string            `json:"drawer"`
	DrawerConnectionID string            `json:"drawerConnectionId"`
	MaskedWord         string            `json:"maskedWord,omitempty"`
	WordLength         int               `json:"wordLength,omitempty"`
	Word               string            `json:"word,omitempty"`
}

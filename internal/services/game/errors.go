package game

// GameError is a custom error type for game-related errors
type GameError string

// Error implements the error interface
func (e GameError) Error() string {
	return string(e)
}

// Define errors
const (
	ErrGameNotFound      GameError = "game not found"
	ErrGameAlreadyExists GameError = "game already exists for this room"
	ErrInvalidGameState  GameError = "invalid game state"
	ErrNotEnoughPlayers  GameError = "not enough players to start"
	ErrPlayerNotInGame   GameError = "player not in game"
	ErrNotDrawer         GameError = "only the drawer can do that"
	ErrDrawerCannotGuess GameError = "the drawer cannot guess"
	ErrAlreadyGuessed    GameError = "player already guessed this turn"
	ErrEmptyGuess        GameError = "guess cannot be empty"
	ErrEmptyWord         GameError = "word cannot be empty"
	ErrNilInput          GameError = "input cannot be nil"
	ErrNilConfig         GameError = "config cannot be nil"
	ErrNilClock          GameError = "clock cannot be nil"
	ErrNilWordBank       GameError = "word bank cannot be nil"
	ErrNilRosterSource   GameError = "roster source cannot be nil"
	ErrNilGateway        GameError = "gateway cannot be nil"
)

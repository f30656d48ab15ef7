package models

// GameStatus represents the current phase of a game session
type GameStatus string

const (
	// GameStatusStarting is the brief phase between start and the first turn
	GameStatusStarting GameStatus = "starting"

	// GameStatusChoosing indicates the drawer is picking a word
	GameStatusChoosing GameStatus = "choosing"

	// GameStatusDrawing indicates the drawer is drawing and others are guessing
	GameStatusDrawing GameStatus = "drawing"

	// GameStatusTurnEnd indicates the word has been revealed and the next turn is pending
	GameStatusTurnEnd GameStatus = "turnEnd"
)

// IsChoosing returns true if the drawer is picking a word
func (s GameStatus) IsChoosing() bool {
	return s == GameStatusChoosing
}

// IsDrawing returns true if guesses are being accepted
func (s GameStatus) IsDrawing() bool {
	return s == GameStatusDrawing
}

// IsTransient returns true for phases that have no sync snapshot
func (s GameStatus) IsTransient() bool {
	return s == GameStatusStarting || s == GameStatusTurnEnd
}

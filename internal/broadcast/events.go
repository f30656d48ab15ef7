package broadcast

// Game events
const (
	EventGameStart    = "game:start"
	EventGameStarted  = "game:started"
	EventGameChoosing = "game:choosing"

	// EventGamePickWord is sent privately with the candidates and received with the choice
	EventGamePickWord = "game:pickWord"

	EventGameRoundStart   = "game:roundStart"
	EventGameTick         = "game:tick"
	EventGameHint         = "game:hint"
	EventGameTurnEnd      = "game:turnEnd"
	EventGameOver         = "game:over"
	EventGameGuess        = "game:guess"
	EventGameCorrectGuess = "game:correctGuess"
	EventGameWrongGuess   = "game:wrongGuess"
	EventGameYouGuessed   = "game:youGuessed"
	EventGameYouDraw      = "game:youDraw"
	EventGameRejoin       = "game:rejoin"
	EventGameSync         = "game:sync"
	EventGameStop         = "game:stop"
	EventGameStopped      = "game:stopped"
)

// Room and collaboration events
const (
	EventRoomJoin       = "room:join"
	EventRoomJoined     = "room:joined"
	EventRoomLeave      = "room:leave"
	EventRoomUserJoined = "room:user_joined"
	EventRoomUserLeft   = "room:user_left"

	EventChatSend    = "chat:send"
	EventChatMessage = "chat:message"

	EventNoteAdd    = "note:add"
	EventNoteUpdate = "note:update"
	EventNoteDelete = "note:delete"

	EventSettingsUpdate  = "settings:update"
	EventSettingsUpdated = "settings:updated"

	EventCanvasSave = "canvas:save"

	EventReactionSend = "reaction:send"
	EventReactionShow = "reaction:show"
)

// Drawing relay events
const (
	EventDrawStart     = "draw:start"
	EventDrawMove      = "draw:move"
	EventDrawEnd       = "draw:end"
	EventDrawClear     = "draw:clear"
	EventDrawUndo      = "draw:undo"
	EventDrawRedo      = "draw:redo"
	EventDrawSync      = "draw:sync"
	EventDrawSyncState = "draw:sync_state"
	EventCursorMove    = "cursor:move"
)

// EventError carries a user-facing rejection
const EventError = "error"

// ErrorPayload is the body of an error event
type ErrorPayload struct {
	Message string `json:"message"`
}

package ws

import (
	"context"
	"encoding/json"

	"github.com/KirkDiggler/scribble/internal/broadcast"
	"github.com/KirkDiggler/scribble/internal/models"
	"github.com/KirkDiggler/scribble/internal/services/game"
	"github.com/KirkDiggler/scribble/internal/services/room"
)

// drawRelay maps inbound drawing events to what the rest of the room receives
var drawRelay = map[string]string{
	broadcast.EventDrawStart:  broadcast.EventDrawStart,
	broadcast.EventDrawMove:   broadcast.EventDrawMove,
	broadcast.EventDrawEnd:    broadcast.EventDrawEnd,
	broadcast.EventDrawClear:  broadcast.EventDrawClear,
	broadcast.EventDrawUndo:   broadcast.EventDrawUndo,
	broadcast.EventDrawRedo:   broadcast.EventDrawRedo,
	broadcast.EventDrawSync:   broadcast.EventDrawSyncState,
	broadcast.EventCursorMove: broadcast.EventCursorMove,
}

type startPayload struct {
	Rounds   int `json:"rounds"`
	TurnTime int `json:"turnTime"`
}

type pickWordPayload struct {
	Word string `json:"word"`
}

type guessPayload struct {
	Guess string `json:"guess"`
	Text  string `json:"text"`
}

type rejoinPayload struct {
	Username string `json:"username"`
}

type joinPayload struct {
	RoomID    string `json:"roomId"`
	Color     string `json:"color"`
	UserColor string `json:"userColor"`
}

type chatPayload struct {
	Text string `json:"text"`
}

type notePayload struct {
	Note *models.StickyNote `json:"note"`
}

type noteDeletePayload struct {
	NoteID string `json:"noteId"`
}

type settingsPayload struct {
	Settings models.RoomSettings `json:"settings"`
}

type canvasPayload struct {
	CanvasData string `json:"canvasData"`
}

type reactionPayload struct {
	Emoji string  `json:"emoji"`
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
}

// registerHandlers binds every inbound event the server understands
func (s *Server) registerHandlers() {
	d := s.dispatcher

	d.Register(broadcast.EventGameStart, s.handleGameStart)
	d.Register(broadcast.EventGamePickWord, s.handleGamePickWord)
	d.Register(broadcast.EventGameGuess, s.handleGameGuess)
	d.Register(broadcast.EventGameRejoin, s.handleGameRejoin)
	d.Register(broadcast.EventGameSync, s.handleGameSync)
	d.Register(broadcast.EventGameStop, s.handleGameStop)

	d.Register(broadcast.EventRoomJoin, s.handleRoomJoin)
	d.Register(broadcast.EventRoomLeave, s.handleRoomLeave)
	d.Register(broadcast.EventChatSend, s.handleChatSend)
	d.Register(broadcast.EventNoteAdd, s.handleNoteAdd)
	d.Register(broadcast.EventNoteUpdate, s.handleNoteUpdate)
	d.Register(broadcast.EventNoteDelete, s.handleNoteDelete)
	d.Register(broadcast.EventSettingsUpdate, s.handleSettingsUpdate)
	d.Register(broadcast.EventCanvasSave, s.handleCanvasSave)
	d.Register(broadcast.EventReactionSend, s.handleReactionSend)

	for in, out := range drawRelay {
		d.Register(in, s.relay(out))
	}
}

// roomOf resolves the room a client has joined
func (s *Server) roomOf(c *Client) (string, error) {
	roomID, ok := s.presence.Find(c.id)
	if !ok {
		return "", room.ErrNotInRoom
	}
	return roomID, nil
}

func (s *Server) handleGameStart(_ context.Context, c *Client, payload json.RawMessage) error {
	var p startPayload
	if err := decode(payload, &p); err != nil {
		return err
	}
	roomID, err := s.roomOf(c)
	if err != nil {
		return err
	}

	_, err = s.game.Start(&game.StartInput{
		RoomID:       roomID,
		ConnectionID: c.id,
		Rounds:       p.Rounds,
		TurnTime:     p.TurnTime,
	})
	return err
}

func (s *Server) handleGamePickWord(_ context.Context, c *Client, payload json.RawMessage) error {
	var p pickWordPayload
	if err := decode(payload, &p); err != nil {
		return err
	}
	roomID, err := s.roomOf(c)
	if err != nil {
		return err
	}

	return s.game.PickWord(&game.PickWordInput{RoomID: roomID, ConnectionID: c.id, Word: p.Word})
}

func (s *Server) handleGameGuess(_ context.Context, c *Client, payload json.RawMessage) error {
	var p guessPayload
	if err := decode(payload, &p); err != nil {
		return err
	}
	roomID, err := s.roomOf(c)
	if err != nil {
		return err
	}

	text := p.Guess
	if text == "" {
		text = p.Text
	}

	_, err = s.game.Guess(&game.GuessInput{RoomID: roomID, ConnectionID: c.id, Text: text})
	return err
}

func (s *Server) handleGameRejoin(_ context.Context, c *Client, payload json.RawMessage) error {
	var p rejoinPayload
	if err := decode(payload, &p); err != nil {
		return err
	}
	roomID, err := s.roomOf(c)
	if err != nil {
		return err
	}

	username := p.Username
	if username == "" {
		username = c.identity.Username
	}

	_, err = s.game.Rejoin(&game.RejoinInput{RoomID: roomID, ConnectionID: c.id, Username: username})
	return err
}

func (s *Server) handleGameSync(_ context.Context, c *Client, _ json.RawMessage) error {
	roomID, err := s.roomOf(c)
	if err != nil {
		return err
	}

	return s.game.Sync(&game.SyncInput{RoomID: roomID, ConnectionID: c.id})
}

func (s *Server) handleGameStop(_ context.Context, c *Client, _ json.RawMessage) error {
	roomID, err := s.roomOf(c)
	if err != nil {
		return err
	}

	return s.game.Stop(&game.StopInput{RoomID: roomID, ConnectionID: c.id})
}

func (s *Server) handleRoomJoin(ctx context.Context, c *Client, payload json.RawMessage) error {
	var p joinPayload
	if err := decode(payload, &p); err != nil {
		return err
	}

	color := p.Color
	if color == "" {
		color = p.UserColor
	}

	_, err := s.rooms.Join(ctx, &room.JoinInput{
		RoomID:       p.RoomID,
		ConnectionID: c.id,
		Identity:     c.identity,
		Color:        color,
	})
	return err
}

func (s *Server) handleRoomLeave(_ context.Context, c *Client, _ json.RawMessage) error {
	return s.rooms.Leave(&room.LeaveInput{ConnectionID: c.id})
}

func (s *Server) handleChatSend(_ context.Context, c *Client, payload json.RawMessage) error {
	var p chatPayload
	if err := decode(payload, &p); err != nil {
		return err
	}

	return s.rooms.SendChat(&room.SendChatInput{ConnectionID: c.id, Text: p.Text})
}

func (s *Server) handleNoteAdd(_ context.Context, c *Client, payload json.RawMessage) error {
	var p notePayload
	if err := decode(payload, &p); err != nil {
		return err
	}

	return s.rooms.AddNote(&room.NoteInput{ConnectionID: c.id, Note: p.Note})
}

func (s *Server) handleNoteUpdate(_ context.Context, c *Client, payload json.RawMessage) error {
	var p notePayload
	if err := decode(payload, &p); err != nil {
		return err
	}

	return s.rooms.UpdateNote(&room.NoteInput{ConnectionID: c.id, Note: p.Note})
}

func (s *Server) handleNoteDelete(_ context.Context, c *Client, payload json.RawMessage) error {
	var p noteDeletePayload
	if err := decode(payload, &p); err != nil {
		return err
	}

	return s.rooms.DeleteNote(&room.DeleteNoteInput{ConnectionID: c.id, NoteID: p.NoteID})
}

func (s *Server) handleSettingsUpdate(_ context.Context, c *Client, payload json.RawMessage) error {
	var p settingsPayload
	if err := decode(payload, &p); err != nil {
		return err
	}

	return s.rooms.UpdateSettings(&room.UpdateSettingsInput{ConnectionID: c.id, Settings: p.Settings})
}

func (s *Server) handleCanvasSave(_ context.Context, c *Client, payload json.RawMessage) error {
	var p canvasPayload
	if err := decode(payload, &p); err != nil {
		return err
	}

	return s.rooms.SaveCanvas(&room.SaveCanvasInput{ConnectionID: c.id, CanvasData: p.CanvasData})
}

func (s *Server) handleReactionSend(_ context.Context, c *Client, payload json.RawMessage) error {
	var p reactionPayload
	if err := decode(payload, &p); err != nil {
		return err
	}

	return s.rooms.React(&room.ReactInput{ConnectionID: c.id, Emoji: p.Emoji, X: p.X, Y: p.Y})
}

// relay fans a drawing event out to the rest of the room without looking inside it
func (s *Server) relay(outbound string) EventHandler {
	return func(_ context.Context, c *Client, payload json.RawMessage) error {
		roomID, err := s.roomOf(c)
		if err != nil {
			return err
		}

		event := broadcast.Event{Type: outbound}
		if len(payload) > 0 {
			event.Payload = payload
		}
		s.hub.ToRoomExcept(roomID, c.id, event)
		return nil
	}
}

// Package room runs the collaborative side of a room: membership, chat,
// sticky notes, settings, canvas snapshots and reactions.
package room

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
	"golang.org/x/crypto/bcrypt"

	"github.com/KirkDiggler/scribble/internal/broadcast"
	"github.com/KirkDiggler/scribble/internal/common/async"
	"github.com/KirkDiggler/scribble/internal/common/clock"
	"github.com/KirkDiggler/scribble/internal/common/uuid"
	"github.com/KirkDiggler/scribble/internal/models"
	chatRepo "github.com/KirkDiggler/scribble/internal/repositories/chat"
	noteRepo "github.com/KirkDiggler/scribble/internal/repositories/note"
	roomRepo "github.com/KirkDiggler/scribble/internal/repositories/room"
	"github.com/KirkDiggler/scribble/internal/services/presence"
)

// service implements the Service interface
type service struct {
	presence presence.Service
	gateway  broadcast.Gateway
	rooms    roomRepo.Repository
	chat     chatRepo.Repository
	notes    noteRepo.Repository
	queue    async.Submitter
	clock    clock.Clock
	uuid     uuid.UUID
	log      zerolog.Logger
}

// New creates a new room service
func New(cfg *Config) (*service, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}
	if cfg.Presence == nil {
		return nil, ErrNilPresence
	}
	if cfg.Gateway == nil {
		return nil, ErrNilGateway
	}
	if cfg.Rooms == nil {
		return nil, ErrNilRoomRepository
	}
	if cfg.Chat == nil {
		return nil, ErrNilChatRepository
	}
	if cfg.Notes == nil {
		return nil, ErrNilNoteRepository
	}
	if cfg.Queue == nil {
		return nil, ErrNilQueue
	}
	if cfg.Clock == nil {
		return nil, ErrNilClock
	}
	if cfg.UUID == nil {
		return nil, ErrNilUUID
	}

	return &service{
		presence: cfg.Presence,
		gateway:  cfg.Gateway,
		rooms:    cfg.Rooms,
		chat:     cfg.Chat,
		notes:    cfg.Notes,
		queue:    cfg.Queue,
		clock:    cfg.Clock,
		uuid:     cfg.UUID,
		log:      log.With().Str("component", "room").Logger(),
	}, nil
}

// CreateRoom stores a new room with a fresh share code
func (s *service) CreateRoom(ctx context.Context, input *CreateRoomInput) (*CreateRoomOutput, error) {
	if input == nil {
		return nil, ErrNilInput
	}

	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrRoomNameRequired
	}

	hostName := input.Host.Username
	if hostName == "" {
		hostName = DefaultHostName
	}

	var passwordHash string
	if password := strings.TrimSpace(input.Password); input.IsPublic && password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("failed to hash room password: %w", err)
		}
		passwordHash = string(hash)
	}

	now := s.clock.Now()
	for attempt := 0; attempt < codeAttempts; attempt++ {
		room := &models.Room{
			ID:           s.uuid.NewUUID(),
			Code:         s.uuid.NewCode(),
			Name:         name,
			HostID:       input.Host.UserID,
			HostName:     hostName,
			Settings:     models.DefaultRoomSettings(),
			IsPublic:     input.IsPublic,
			PasswordHash: passwordHash,
			CreatedAt:    now,
			LastActive:   now,
		}

		err := s.rooms.Create(ctx, &roomRepo.CreateInput{Room: room})
		if errors.Is(err, roomRepo.ErrCodeTaken) {
			s.log.Debug().Str("code", room.Code).Msg("room code collision, retrying")
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to create room: %w", err)
		}

		s.log.Info().Str("room", room.ID).Str("code", room.Code).Str("host", input.Host.UserID).Msg("room created")
		return &CreateRoomOutput{Room: room}, nil
	}

	return nil, ErrCodeExhausted
}

// GetRoom loads a room by ID
func (s *service) GetRoom(ctx context.Context, input *GetRoomInput) (*models.Room, error) {
	if input == nil {
		return nil, ErrNilInput
	}
	if input.RoomID == "" {
		return nil, ErrRoomNotFound
	}

	room, err := s.rooms.Get(ctx, &roomRepo.GetInput{RoomID: input.RoomID})
	if err != nil {
		if errors.Is(err, roomRepo.ErrRoomNotFound) {
			return nil, ErrRoomNotFound
		}
		return nil, fmt.Errorf("failed to get room: %w", err)
	}

	return room, nil
}

// FindByCode loads a room by share code, ignoring case
func (s *service) FindByCode(ctx context.Context, input *FindByCodeInput) (*models.Room, error) {
	if input == nil {
		return nil, ErrNilInput
	}

	code := strings.TrimSpace(input.Code)
	if code == "" {
		return nil, ErrRoomNotFound
	}

	room, err := s.rooms.GetByCode(ctx, &roomRepo.GetByCodeInput{Code: code})
	if err != nil {
		if errors.Is(err, roomRepo.ErrRoomNotFound) {
			return nil, ErrRoomNotFound
		}
		return nil, fmt.Errorf("failed to find room by code: %w", err)
	}

	return room, nil
}

// ListPublic returns browsable rooms without their canvas
func (s *service) ListPublic(ctx context.Context) ([]*models.Room, error) {
	output, err := s.rooms.ListPublic(ctx, &roomRepo.ListPublicInput{})
	if err != nil {
		return nil, fmt.Errorf("failed to list public rooms: %w", err)
	}

	return output.Rooms, nil
}

// ListMine returns the rooms the caller hosts without their canvas
func (s *service) ListMine(ctx context.Context, input *ListMineInput) ([]*models.Room, error) {
	if input == nil {
		return nil, ErrNilInput
	}
	if input.HostID == "" {
		return []*models.Room{}, nil
	}

	output, err := s.rooms.ListByHost(ctx, &roomRepo.ListByHostInput{HostID: input.HostID})
	if err != nil {
		return nil, fmt.Errorf("failed to list host rooms: %w", err)
	}

	return output.Rooms, nil
}

// VerifyPassword checks a join password against the stored hash
func (s *service) VerifyPassword(ctx context.Context, input *VerifyPasswordInput) error {
	if input == nil {
		return ErrNilInput
	}

	room, err := s.GetRoom(ctx, &GetRoomInput{RoomID: input.RoomID})
	if err != nil {
		return err
	}
	if !room.HasPassword() {
		return nil
	}

	if err := bcrypt.CompareHashAndPassword([]byte(room.PasswordHash), []byte(input.Password)); err != nil {
		return ErrWrongPassword
	}

	return nil
}

// DeleteRoom removes the room document, then drops its chat and notes in the background
func (s *service) DeleteRoom(ctx context.Context, input *DeleteRoomInput) error {
	if input == nil {
		return ErrNilInput
	}

	room, err := s.GetRoom(ctx, &GetRoomInput{RoomID: input.RoomID})
	if err != nil {
		return err
	}
	if room.HostID == "" || room.HostID != input.UserID {
		return ErrNotHost
	}

	if err := s.rooms.Delete(ctx, &roomRepo.DeleteInput{RoomID: room.ID}); err != nil {
		if errors.Is(err, roomRepo.ErrRoomNotFound) {
			return ErrRoomNotFound
		}
		return fmt.Errorf("failed to delete room: %w", err)
	}

	roomID := room.ID
	s.persist("clear_chat", func(ctx context.Context) error {
		return s.chat.Clear(ctx, &chatRepo.ClearInput{RoomID: roomID})
	})
	s.persist("clear_notes", func(ctx context.Context) error {
		return s.notes.Clear(ctx, &noteRepo.ClearInput{RoomID: roomID})
	})

	s.log.Info().Str("room", roomID).Str("host", input.UserID).Msg("room deleted")
	return nil
}

// StoreCanvas writes a canvas snapshot synchronously
func (s *service) StoreCanvas(ctx context.Context, input *StoreCanvasInput) error {
	if input == nil {
		return ErrNilInput
	}
	if input.RoomID == "" {
		return ErrRoomNotFound
	}

	err := s.rooms.SaveCanvas(ctx, &roomRepo.SaveCanvasInput{
		RoomID:     input.RoomID,
		CanvasData: input.CanvasData,
		At:         s.clock.Now(),
	})
	if err != nil {
		if errors.Is(err, roomRepo.ErrRoomNotFound) {
			return ErrRoomNotFound
		}
		return fmt.Errorf("failed to save canvas: %w", err)
	}

	return nil
}

// Join registers the connection in the room, sends it the room state and
// announces it to everyone else
func (s *service) Join(ctx context.Context, input *JoinInput) (*JoinOutput, error) {
	if input == nil {
		return nil, ErrNilInput
	}

	room, err := s.GetRoom(ctx, &GetRoomInput{RoomID: input.RoomID})
	if err != nil {
		if errors.Is(err, ErrRoomNotFound) {
			s.gateway.ToConnection(input.ConnectionID, broadcast.NewEvent(broadcast.EventError, broadcast.ErrorPayload{
				Message: "Room not found",
			}))
		}
		return nil, err
	}

	joined, err := s.presence.Join(&presence.JoinInput{
		RoomID:       room.ID,
		ConnectionID: input.ConnectionID,
		Identity:     input.Identity,
		Color:        input.Color,
		IsHost:       room.HostID != "" && room.HostID == input.Identity.UserID,
	})
	if err != nil {
		return nil, err
	}

	if joined.PreviousRoomID != "" {
		s.announceLeft(joined.PreviousRoomID, joined.Member.Username, s.presence.Roster(joined.PreviousRoomID))
	}

	s.gateway.Subscribe(room.ID, input.ConnectionID)

	s.gateway.ToConnection(input.ConnectionID, broadcast.NewEvent(broadcast.EventRoomJoined, JoinedPayload{
		Room: JoinedRoom{
			ID:          room.ID,
			Name:        room.Name,
			Code:        room.Code,
			CanvasData:  room.CanvasData,
			StickyNotes: s.loadNotes(ctx, room.ID),
			ChatHistory: s.loadHistory(ctx, room.ID),
			Settings:    room.Settings,
		},
		Users: joined.Roster,
		Me:    joined.Member,
	}))

	s.gateway.ToRoomExcept(room.ID, input.ConnectionID, broadcast.NewEvent(broadcast.EventRoomUserJoined, UserJoinedPayload{
		User:  joined.Member,
		Users: joined.Roster,
	}))

	at := s.clock.Now()
	s.persist("touch_last_active", func(ctx context.Context) error {
		return s.rooms.TouchLastActive(ctx, &roomRepo.TouchLastActiveInput{RoomID: room.ID, At: at})
	})

	s.log.Info().
		Str("room", room.ID).
		Str("connection", input.ConnectionID).
		Str("username", joined.Member.Username).
		Bool("host", joined.Member.IsHost).
		Msg("member joined")

	return &JoinOutput{Room: room, Me: joined.Member, Users: joined.Roster}, nil
}

// Leave removes the connection from its room. It is also the disconnect path.
func (s *service) Leave(input *LeaveInput) error {
	if input == nil {
		return ErrNilInput
	}

	s.gateway.Unsubscribe(input.ConnectionID)

	left, err := s.presence.Leave(&presence.LeaveInput{ConnectionID: input.ConnectionID})
	if err != nil {
		if errors.Is(err, presence.ErrConnectionNotFound) {
			return ErrNotInRoom
		}
		return err
	}

	if !left.RoomEmpty {
		s.announceLeft(left.RoomID, left.Member.Username, left.Roster)
	}

	s.log.Info().
		Str("room", left.RoomID).
		Str("connection", input.ConnectionID).
		Str("username", left.Member.Username).
		Msg("member left")

	return nil
}

// SendChat broadcasts a trimmed, length-capped message and stores it
func (s *service) SendChat(input *SendChatInput) error {
	if input == nil {
		return ErrNilInput
	}

	text := strings.TrimSpace(input.Text)
	if text == "" {
		return ErrEmptyMessage
	}
	if runes := []rune(text); len(runes) > MaxMessageLength {
		text = string(runes[:MaxMessageLength])
	}

	roomID, member, err := s.memberOf(input.ConnectionID)
	if err != nil {
		return err
	}

	msg := &models.ChatMessage{
		Username:  member.Username,
		Text:      text,
		Color:     member.Color,
		Type:      models.ChatMessageTypeMessage,
		Timestamp: s.clock.Now(),
	}
	s.gateway.ToRoom(roomID, broadcast.NewEvent(broadcast.EventChatMessage, msg))

	s.persist("append_chat", func(ctx context.Context) error {
		return s.chat.Append(ctx, &chatRepo.AppendInput{RoomID: roomID, Message: msg})
	})

	return nil
}

// AddNote relays a new note to the rest of the room and stores it
func (s *service) AddNote(input *NoteInput) error {
	if input == nil {
		return ErrNilInput
	}
	if input.Note == nil || input.Note.ID == "" {
		return ErrMissingNote
	}

	roomID, _, err := s.memberOf(input.ConnectionID)
	if err != nil {
		return err
	}

	note := *input.Note
	s.gateway.ToRoomExcept(roomID, input.ConnectionID, broadcast.NewEvent(broadcast.EventNoteAdd, NotePayload{Note: &note}))

	s.persist("upsert_note", func(ctx context.Context) error {
		return s.notes.Upsert(ctx, &noteRepo.UpsertInput{RoomID: roomID, Note: &note})
	})

	return nil
}

// UpdateNote relays an edited note and replaces the stored copy if there is one
func (s *service) UpdateNote(input *NoteInput) error {
	if input == nil {
		return ErrNilInput
	}
	if input.Note == nil || input.Note.ID == "" {
		return ErrMissingNote
	}

	roomID, _, err := s.memberOf(input.ConnectionID)
	if err != nil {
		return err
	}

	note := *input.Note
	s.gateway.ToRoomExcept(roomID, input.ConnectionID, broadcast.NewEvent(broadcast.EventNoteUpdate, NotePayload{Note: &note}))

	s.persist("update_note", func(ctx context.Context) error {
		return s.notes.Update(ctx, &noteRepo.UpdateInput{RoomID: roomID, Note: &note})
	})

	return nil
}

func (s *service) DeleteNote(input *DeleteNoteInput) error {
	if input == nil {
		return ErrNilInput
	}
	if input.NoteID == "" {
		return ErrMissingNoteID
	}

	roomID, _, err := s.memberOf(input.ConnectionID)
	if err != nil {
		return err
	}

	s.gateway.ToRoomExcept(roomID, input.ConnectionID, broadcast.NewEvent(broadcast.EventNoteDelete, NoteDeletedPayload{NoteID: input.NoteID}))

	noteID := input.NoteID
	s.persist("delete_note", func(ctx context.Context) error {
		return s.notes.Delete(ctx, &noteRepo.DeleteInput{RoomID: roomID, NoteID: noteID})
	})

	return nil
}

// UpdateSettings applies host-only settings changes
func (s *service) UpdateSettings(input *UpdateSettingsInput) error {
	if input == nil {
		return ErrNilInput
	}

	roomID, member, err := s.memberOf(input.ConnectionID)
	if err != nil {
		return err
	}
	if !member.IsHost {
		return ErrNotHost
	}

	settings := input.Settings
	s.gateway.ToRoom(roomID, broadcast.NewEvent(broadcast.EventSettingsUpdated, SettingsPayload{Settings: settings}))

	s.persist("update_settings", func(ctx context.Context) error {
		return s.rooms.UpdateSettings(ctx, &roomRepo.UpdateSettingsInput{RoomID: roomID, Settings: settings})
	})

	return nil
}

// SaveCanvas stores the latest canvas snapshot
func (s *service) SaveCanvas(input *SaveCanvasInput) error {
	if input == nil {
		return ErrNilInput
	}

	roomID, _, err := s.memberOf(input.ConnectionID)
	if err != nil {
		return err
	}

	data, at := input.CanvasData, s.clock.Now()
	s.persist("save_canvas", func(ctx context.Context) error {
		return s.rooms.SaveCanvas(ctx, &roomRepo.SaveCanvasInput{RoomID: roomID, CanvasData: data, At: at})
	})

	return nil
}

func (s *service) React(input *ReactInput) error {
	if input == nil {
		return ErrNilInput
	}

	roomID, member, err := s.memberOf(input.ConnectionID)
	if err != nil {
		return err
	}

	s.gateway.ToRoom(roomID, broadcast.NewEvent(broadcast.EventReactionShow, ReactionPayload{
		Emoji:    input.Emoji,
		X:        input.X,
		Y:        input.Y,
		Username: member.Username,
	}))

	return nil
}

// memberOf resolves a connection to its room and roster entry
func (s *service) memberOf(connectionID string) (string, models.Member, error) {
	roomID, ok := s.presence.Find(connectionID)
	if !ok {
		return "", models.Member{}, ErrNotInRoom
	}

	member, ok := lo.Find(s.presence.Roster(roomID), func(m models.Member) bool {
		return m.ConnectionID == connectionID
	})
	if !ok {
		return "", models.Member{}, ErrNotInRoom
	}

	return roomID, member, nil
}

func (s *service) announceLeft(roomID, username string, remaining []models.Member) {
	if len(remaining) == 0 {
		return
	}
	if username == "" {
		username = "Someone"
	}

	s.gateway.ToRoom(roomID, broadcast.NewEvent(broadcast.EventRoomUserLeft, UserLeftPayload{
		Username: username,
		Users:    remaining,
	}))
}

func (s *service) loadHistory(ctx context.Context, roomID string) []*models.ChatMessage {
	output, err := s.chat.Recent(ctx, &chatRepo.RecentInput{RoomID: roomID, Limit: JoinHistoryLimit})
	if err != nil {
		s.log.Warn().Err(err).Str("room", roomID).Msg("failed to load chat history")
		return []*models.ChatMessage{}
	}
	return output.Messages
}

func (s *service) loadNotes(ctx context.Context, roomID string) []*models.StickyNote {
	output, err := s.notes.List(ctx, &noteRepo.ListInput{RoomID: roomID})
	if err != nil {
		s.log.Warn().Err(err).Str("room", roomID).Msg("failed to load notes")
		return []*models.StickyNote{}
	}
	return output.Notes
}

func (s *service) persist(name string, fn func(ctx context.Context) error) {
	if !s.queue.Submit(name, fn) {
		s.log.Warn().Str("task", name).Msg("persistence dropped")
	}
}

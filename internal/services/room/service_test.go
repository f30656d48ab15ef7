package room

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
	"golang.org/x/crypto/bcrypt"

	"github.com/KirkDiggler/scribble/internal/broadcast"
	"github.com/KirkDiggler/scribble/internal/broadcast/broadcasttest"
	gatewayMocks "github.com/KirkDiggler/scribble/internal/broadcast/mocks"
	asyncMocks "github.com/KirkDiggler/scribble/internal/common/async/mocks"
	"github.com/KirkDiggler/scribble/internal/common/clock/mocks"
	uuidMocks "github.com/KirkDiggler/scribble/internal/common/uuid/mocks"
	"github.com/KirkDiggler/scribble/internal/models"
	chatRepo "github.com/KirkDiggler/scribble/internal/repositories/chat"
	chatMocks "github.com/KirkDiggler/scribble/internal/repositories/chat/mocks"
	noteRepo "github.com/KirkDiggler/scribble/internal/repositories/note"
	noteMocks "github.com/KirkDiggler/scribble/internal/repositories/note/mocks"
	roomRepo "github.com/KirkDiggler/scribble/internal/repositories/room"
	roomMocks "github.com/KirkDiggler/scribble/internal/repositories/room/mocks"
	"github.com/KirkDiggler/scribble/internal/services/presence"
)

// inlineQueue runs submitted work immediately so repository calls can be asserted
type inlineQueue struct {
	names []string
}

func (q *inlineQueue) Submit(name string, fn func(ctx context.Context) error) bool {
	q.names = append(q.names, name)
	_ = fn(context.Background())
	return true
}

type RoomServiceTestSuite struct {
	suite.Suite
	mockCtrl  *gomock.Controller
	mockClock *mocks.MockClock
	mockUUID  *uuidMocks.MockUUID
	mockRooms *roomMocks.MockRepository
	mockChat  *chatMocks.MockRepository
	mockNotes *noteMocks.MockRepository
	presence  presence.Service
	gateway   *broadcasttest.Recorder
	queue     *inlineQueue
	svc       *service

	ctx      context.Context
	now      time.Time
	testRoom *models.Room
	host     models.Identity
	guest    models.Identity
}

func (s *RoomServiceTestSuite) SetupTest() {
	s.mockCtrl = gomock.NewController(s.T())
	s.mockClock = mocks.NewMockClock(s.mockCtrl)
	s.mockUUID = uuidMocks.NewMockUUID(s.mockCtrl)
	s.mockRooms = roomMocks.NewMockRepository(s.mockCtrl)
	s.mockChat = chatMocks.NewMockRepository(s.mockCtrl)
	s.mockNotes = noteMocks.NewMockRepository(s.mockCtrl)
	s.presence = presence.New()
	s.gateway = broadcasttest.New()
	s.queue = &inlineQueue{}

	svc, err := New(&Config{
		Presence: s.presence,
		Gateway:  s.gateway,
		Rooms:    s.mockRooms,
		Chat:     s.mockChat,
		Notes:    s.mockNotes,
		Queue:    s.queue,
		Clock:    s.mockClock,
		UUID:     s.mockUUID,
	})
	s.Require().NoError(err)
	s.svc = svc

	s.ctx = context.Background()
	s.now = time.Date(2025, 5, 1, 9, 30, 0, 0, time.UTC)
	s.mockClock.EXPECT().Now().Return(s.now).AnyTimes()

	s.host = models.Identity{UserID: "user-host", Username: "alice", Color: "#FF0000"}
	s.guest = models.Identity{UserID: "user-guest", Username: "bob", Color: "#00FF00"}
	s.testRoom = &models.Room{
		ID:       "room-1",
		Code:     "ABC123",
		Name:     "Sketch club",
		HostID:   s.host.UserID,
		HostName: s.host.Username,
		Settings: models.DefaultRoomSettings(),
	}
}

func (s *RoomServiceTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

// expectJoin wires the repository reads and the lastActive write of a successful join
func (s *RoomServiceTestSuite) expectJoin() {
	s.mockRooms.EXPECT().Get(gomock.Any(), &roomRepo.GetInput{RoomID: s.testRoom.ID}).Return(s.testRoom, nil)
	s.mockChat.EXPECT().Recent(gomock.Any(), &chatRepo.RecentInput{RoomID: s.testRoom.ID, Limit: JoinHistoryLimit}).
		Return(&chatRepo.RecentOutput{Messages: []*models.ChatMessage{}}, nil)
	s.mockNotes.EXPECT().List(gomock.Any(), &noteRepo.ListInput{RoomID: s.testRoom.ID}).
		Return(&noteRepo.ListOutput{Notes: []*models.StickyNote{}}, nil)
	s.mockRooms.EXPECT().TouchLastActive(gomock.Any(), &roomRepo.TouchLastActiveInput{RoomID: s.testRoom.ID, At: s.now}).Return(nil)
}

func (s *RoomServiceTestSuite) join(connectionID string, identity models.Identity) *JoinOutput {
	s.expectJoin()
	output, err := s.svc.Join(s.ctx, &JoinInput{RoomID: s.testRoom.ID, ConnectionID: connectionID, Identity: identity})
	s.Require().NoError(err)
	return output
}

func (s *RoomServiceTestSuite) TestNewValidatesConfig() {
	_, err := New(nil)
	s.ErrorIs(err, ErrNilConfig)

	_, err = New(&Config{Presence: s.presence})
	s.ErrorIs(err, ErrNilGateway)

	_, err = New(&Config{Presence: s.presence, Gateway: s.gateway, Rooms: s.mockRooms, Chat: s.mockChat, Notes: s.mockNotes})
	s.ErrorIs(err, ErrNilQueue)
}

func (s *RoomServiceTestSuite) TestCreateRoom() {
	s.mockUUID.EXPECT().NewUUID().Return("room-new")
	s.mockUUID.EXPECT().NewCode().Return("F00D42")
	s.mockRooms.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, input *roomRepo.CreateInput) error {
			s.Equal("room-new", input.Room.ID)
			s.Equal("F00D42", input.Room.Code)
			s.Equal("Doodles", input.Room.Name)
			s.Equal(s.host.UserID, input.Room.HostID)
			s.True(input.Room.IsPublic)
			s.Equal(models.DefaultRoomSettings(), input.Room.Settings)
			s.Equal(s.now, input.Room.LastActive)
			return nil
		})

	output, err := s.svc.CreateRoom(s.ctx, &CreateRoomInput{Name: "  Doodles ", IsPublic: true, Host: s.host})
	s.Require().NoError(err)
	s.Equal("room-new", output.Room.ID)
}

func (s *RoomServiceTestSuite) TestCreateRoomRetriesCodeCollision() {
	s.mockUUID.EXPECT().NewUUID().Return("room-new").Times(2)
	gomock.InOrder(
		s.mockUUID.EXPECT().NewCode().Return("AAAAAA"),
		s.mockUUID.EXPECT().NewCode().Return("BBBBBB"),
	)
	gomock.InOrder(
		s.mockRooms.EXPECT().Create(gomock.Any(), gomock.Any()).Return(roomRepo.ErrCodeTaken),
		s.mockRooms.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil),
	)

	output, err := s.svc.CreateRoom(s.ctx, &CreateRoomInput{Name: "Doodles", Host: models.Identity{UserID: "u"}})
	s.Require().NoError(err)
	s.Equal("BBBBBB", output.Room.Code)
	s.Equal(DefaultHostName, output.Room.HostName)
}

func (s *RoomServiceTestSuite) TestCreateRoomRequiresName() {
	_, err := s.svc.CreateRoom(s.ctx, &CreateRoomInput{Name: "   ", Host: s.host})
	s.ErrorIs(err, ErrRoomNameRequired)
}

func (s *RoomServiceTestSuite) TestGetRoomMapsNotFound() {
	s.mockRooms.EXPECT().Get(gomock.Any(), &roomRepo.GetInput{RoomID: "missing"}).Return(nil, roomRepo.ErrRoomNotFound)

	_, err := s.svc.GetRoom(s.ctx, &GetRoomInput{RoomID: "missing"})
	s.ErrorIs(err, ErrRoomNotFound)
}

func (s *RoomServiceTestSuite) TestFindByCode() {
	s.mockRooms.EXPECT().GetByCode(gomock.Any(), &roomRepo.GetByCodeInput{Code: "abc123"}).Return(s.testRoom, nil)

	room, err := s.svc.FindByCode(s.ctx, &FindByCodeInput{Code: " abc123 "})
	s.Require().NoError(err)
	s.Equal(s.testRoom.ID, room.ID)
}

func (s *RoomServiceTestSuite) TestJoinSendsStateAndAnnounces() {
	s.join("conn-a", s.host)
	s.gateway.Reset()

	s.mockRooms.EXPECT().Get(gomock.Any(), gomock.Any()).Return(s.testRoom, nil)
	s.mockChat.EXPECT().Recent(gomock.Any(), gomock.Any()).Return(&chatRepo.RecentOutput{Messages: []*models.ChatMessage{
		{Username: "alice", Text: "hi"},
	}}, nil)
	s.mockNotes.EXPECT().List(gomock.Any(), gomock.Any()).Return(&noteRepo.ListOutput{Notes: []*models.StickyNote{
		{ID: "n1", Text: "todo"},
	}}, nil)
	s.mockRooms.EXPECT().TouchLastActive(gomock.Any(), gomock.Any()).Return(nil)

	output, err := s.svc.Join(s.ctx, &JoinInput{RoomID: s.testRoom.ID, ConnectionID: "conn-b", Identity: s.guest, Color: "#123456"})
	s.Require().NoError(err)
	s.False(output.Me.IsHost)
	s.Equal("#123456", output.Me.Color)
	s.Len(output.Users, 2)

	roomID, ok := s.gateway.Room("conn-b")
	s.True(ok)
	s.Equal(s.testRoom.ID, roomID)

	private := s.gateway.To("conn-b")
	s.Require().Len(private, 1)
	s.Equal(broadcast.EventRoomJoined, private[0].Event.Type)
	payload := private[0].Event.Payload.(JoinedPayload)
	s.Equal(s.testRoom.Code, payload.Room.Code)
	s.Len(payload.Room.ChatHistory, 1)
	s.Len(payload.Room.StickyNotes, 1)
	s.Equal("bob", payload.Me.Username)

	announced, ok := s.gateway.Last(broadcast.EventRoomUserJoined)
	s.Require().True(ok)
	s.Equal(broadcasttest.ScopeRoomExcept, announced.Scope)
	s.Equal("conn-b", announced.Except)
	s.Equal("bob", announced.Event.Payload.(UserJoinedPayload).User.Username)

	s.Contains(s.queue.names, "touch_last_active")
}

func (s *RoomServiceTestSuite) TestJoinDetectsHost() {
	output := s.join("conn-a", s.host)
	s.True(output.Me.IsHost)
}

// mockedService swaps the recorder and inline queue for strict gomock doubles
func (s *RoomServiceTestSuite) mockedService() (*service, *gatewayMocks.MockGateway, *asyncMocks.MockSubmitter) {
	mockGateway := gatewayMocks.NewMockGateway(s.mockCtrl)
	mockQueue := asyncMocks.NewMockSubmitter(s.mockCtrl)

	svc, err := New(&Config{
		Presence: s.presence,
		Gateway:  mockGateway,
		Rooms:    s.mockRooms,
		Chat:     s.mockChat,
		Notes:    s.mockNotes,
		Queue:    mockQueue,
		Clock:    s.mockClock,
		UUID:     s.mockUUID,
	})
	s.Require().NoError(err)
	return svc, mockGateway, mockQueue
}

func (s *RoomServiceTestSuite) TestJoinUnknownRoom() {
	svc, mockGateway, _ := s.mockedService()
	s.mockRooms.EXPECT().Get(gomock.Any(), gomock.Any()).Return(nil, roomRepo.ErrRoomNotFound)
	mockGateway.EXPECT().ToConnection("conn-a", broadcast.NewEvent(broadcast.EventError, broadcast.ErrorPayload{
		Message: "Room not found",
	}))

	_, err := svc.Join(s.ctx, &JoinInput{RoomID: "nope", ConnectionID: "conn-a", Identity: s.host})
	s.ErrorIs(err, ErrRoomNotFound)

	_, joined := s.presence.Find("conn-a")
	s.False(joined)
}

func (s *RoomServiceTestSuite) TestJoinSurvivesHistoryFailure() {
	s.mockRooms.EXPECT().Get(gomock.Any(), gomock.Any()).Return(s.testRoom, nil)
	s.mockChat.EXPECT().Recent(gomock.Any(), gomock.Any()).Return(nil, errors.New("redis down"))
	s.mockNotes.EXPECT().List(gomock.Any(), gomock.Any()).Return(nil, errors.New("redis down"))
	s.mockRooms.EXPECT().TouchLastActive(gomock.Any(), gomock.Any()).Return(errors.New("redis down"))

	_, err := s.svc.Join(s.ctx, &JoinInput{RoomID: s.testRoom.ID, ConnectionID: "conn-a", Identity: s.host})
	s.Require().NoError(err)

	payload := s.gateway.To("conn-a")[0].Event.Payload.(JoinedPayload)
	s.Empty(payload.Room.ChatHistory)
	s.NotNil(payload.Room.ChatHistory)
	s.Empty(payload.Room.StickyNotes)
}

func (s *RoomServiceTestSuite) TestLeaveAnnouncesToRemaining() {
	s.join("conn-a", s.host)
	s.join("conn-b", s.guest)
	s.gateway.Reset()

	s.Require().NoError(s.svc.Leave(&LeaveInput{ConnectionID: "conn-b"}))

	left, ok := s.gateway.Last(broadcast.EventRoomUserLeft)
	s.Require().True(ok)
	payload := left.Event.Payload.(UserLeftPayload)
	s.Equal("bob", payload.Username)
	s.Len(payload.Users, 1)
	_, subscribed := s.gateway.Room("conn-b")
	s.False(subscribed)
}

func (s *RoomServiceTestSuite) TestLastLeaveIsSilent() {
	s.join("conn-a", s.host)
	s.gateway.Reset()

	s.Require().NoError(s.svc.Leave(&LeaveInput{ConnectionID: "conn-a"}))
	s.Empty(s.gateway.Deliveries())
	s.Empty(s.presence.Roster(s.testRoom.ID))
}

func (s *RoomServiceTestSuite) TestLeaveWithoutRoom() {
	s.ErrorIs(s.svc.Leave(&LeaveInput{ConnectionID: "ghost"}), ErrNotInRoom)
}

func (s *RoomServiceTestSuite) TestSendChat() {
	s.join("conn-a", s.host)
	s.gateway.Reset()

	s.mockChat.EXPECT().Append(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, input *chatRepo.AppendInput) error {
			s.Equal(s.testRoom.ID, input.RoomID)
			s.Equal("hello there", input.Message.Text)
			return nil
		})

	s.Require().NoError(s.svc.SendChat(&SendChatInput{ConnectionID: "conn-a", Text: "  hello there  "}))

	msg, ok := s.gateway.Last(broadcast.EventChatMessage)
	s.Require().True(ok)
	s.Equal(broadcasttest.ScopeRoom, msg.Scope)
	chat := msg.Event.Payload.(*models.ChatMessage)
	s.Equal("alice", chat.Username)
	s.Equal(s.host.Color, chat.Color)
	s.Equal(models.ChatMessageTypeMessage, chat.Type)
	s.Equal(s.now, chat.Timestamp)
}

func (s *RoomServiceTestSuite) TestSendChatCapsLength() {
	s.join("conn-a", s.host)
	s.mockChat.EXPECT().Append(gomock.Any(), gomock.Any()).Return(nil)

	s.Require().NoError(s.svc.SendChat(&SendChatInput{ConnectionID: "conn-a", Text: strings.Repeat("é", 600)}))

	msg, _ := s.gateway.Last(broadcast.EventChatMessage)
	s.Equal(MaxMessageLength, len([]rune(msg.Event.Payload.(*models.ChatMessage).Text)))
}

func (s *RoomServiceTestSuite) TestSendChatRejects() {
	s.ErrorIs(s.svc.SendChat(&SendChatInput{ConnectionID: "conn-a", Text: " \t "}), ErrEmptyMessage)
	s.ErrorIs(s.svc.SendChat(&SendChatInput{ConnectionID: "conn-a", Text: "hi"}), ErrNotInRoom)
	s.Empty(s.gateway.OfType(broadcast.EventChatMessage))
}

func (s *RoomServiceTestSuite) TestNotesRelayToOthers() {
	s.join("conn-a", s.host)
	note := &models.StickyNote{ID: "n1", X: 10, Y: 20, Text: "idea", Author: "alice"}

	s.mockNotes.EXPECT().Upsert(gomock.Any(), &noteRepo.UpsertInput{RoomID: s.testRoom.ID, Note: note}).Return(nil)
	s.mockNotes.EXPECT().Update(gomock.Any(), &noteRepo.UpdateInput{RoomID: s.testRoom.ID, Note: note}).Return(noteRepo.ErrNoteNotFound)
	s.mockNotes.EXPECT().Delete(gomock.Any(), &noteRepo.DeleteInput{RoomID: s.testRoom.ID, NoteID: "n1"}).Return(nil)

	s.Require().NoError(s.svc.AddNote(&NoteInput{ConnectionID: "conn-a", Note: note}))
	s.Require().NoError(s.svc.UpdateNote(&NoteInput{ConnectionID: "conn-a", Note: note}))
	s.Require().NoError(s.svc.DeleteNote(&DeleteNoteInput{ConnectionID: "conn-a", NoteID: "n1"}))

	for _, eventType := range []string{broadcast.EventNoteAdd, broadcast.EventNoteUpdate, broadcast.EventNoteDelete} {
		d, ok := s.gateway.Last(eventType)
		s.Require().True(ok, eventType)
		s.Equal(broadcasttest.ScopeRoomExcept, d.Scope)
		s.Equal("conn-a", d.Except)
	}
	s.Equal([]string{"touch_last_active", "upsert_note", "update_note", "delete_note"}, s.queue.names)
}

func (s *RoomServiceTestSuite) TestNoteValidation() {
	s.ErrorIs(s.svc.AddNote(&NoteInput{ConnectionID: "conn-a"}), ErrMissingNote)
	s.ErrorIs(s.svc.UpdateNote(&NoteInput{ConnectionID: "conn-a", Note: &models.StickyNote{}}), ErrMissingNote)
	s.ErrorIs(s.svc.DeleteNote(&DeleteNoteInput{ConnectionID: "conn-a"}), ErrMissingNoteID)
}

func (s *RoomServiceTestSuite) TestUpdateSettingsHostOnly() {
	s.join("conn-a", s.host)
	s.join("conn-b", s.guest)
	settings := models.RoomSettings{AllowDraw: false, Background: "grid"}

	s.ErrorIs(s.svc.UpdateSettings(&UpdateSettingsInput{ConnectionID: "conn-b", Settings: settings}), ErrNotHost)
	s.Empty(s.gateway.OfType(broadcast.EventSettingsUpdated))

	s.mockRooms.EXPECT().UpdateSettings(gomock.Any(), &roomRepo.UpdateSettingsInput{RoomID: s.testRoom.ID, Settings: settings}).Return(nil)
	s.Require().NoError(s.svc.UpdateSettings(&UpdateSettingsInput{ConnectionID: "conn-a", Settings: settings}))

	updated, ok := s.gateway.Last(broadcast.EventSettingsUpdated)
	s.Require().True(ok)
	s.Equal(settings, updated.Event.Payload.(SettingsPayload).Settings)
}

func (s *RoomServiceTestSuite) TestSaveCanvas() {
	s.join("conn-a", s.host)
	s.gateway.Reset()

	s.mockRooms.EXPECT().SaveCanvas(gomock.Any(), &roomRepo.SaveCanvasInput{
		RoomID:     s.testRoom.ID,
		CanvasData: "data:image/png;base64,AAAA",
		At:         s.now,
	}).Return(nil)

	s.Require().NoError(s.svc.SaveCanvas(&SaveCanvasInput{ConnectionID: "conn-a", CanvasData: "data:image/png;base64,AAAA"}))
	s.Empty(s.gateway.Deliveries())
}

func (s *RoomServiceTestSuite) TestReactCarriesUsername() {
	s.join("conn-a", s.host)

	s.Require().NoError(s.svc.React(&ReactInput{ConnectionID: "conn-a", Emoji: "🎉", X: 0.5, Y: 0.25}))

	shown, ok := s.gateway.Last(broadcast.EventReactionShow)
	s.Require().True(ok)
	s.Equal(ReactionPayload{Emoji: "🎉", X: 0.5, Y: 0.25, Username: "alice"}, shown.Event.Payload)
}

func (s *RoomServiceTestSuite) TestDroppedPersistenceStillBroadcasts() {
	svc, mockGateway, mockQueue := s.mockedService()
	_, err := s.presence.Join(&presence.JoinInput{RoomID: s.testRoom.ID, ConnectionID: "conn-a", Identity: s.host})
	s.Require().NoError(err)

	mockGateway.EXPECT().ToRoom(s.testRoom.ID, gomock.Cond(func(x any) bool {
		event, isEvent := x.(broadcast.Event)
		if !isEvent {
			return false
		}
		msg, ok := event.Payload.(*models.ChatMessage)
		return event.Type == broadcast.EventChatMessage && ok && msg.Text == "still here"
	}))
	mockQueue.EXPECT().Submit("append_chat", gomock.Any()).Return(false)

	s.Require().NoError(svc.SendChat(&SendChatInput{ConnectionID: "conn-a", Text: "still here"}))
}

func (s *RoomServiceTestSuite) TestCreateRoomHashesPublicPassword() {
	var stored *models.Room
	s.mockUUID.EXPECT().NewUUID().Return("room-new").Times(2)
	s.mockUUID.EXPECT().NewCode().Return("F00D42").Times(2)
	s.mockRooms.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, input *roomRepo.CreateInput) error {
			stored = input.Room
			return nil
		}).Times(2)

	_, err := s.svc.CreateRoom(s.ctx, &CreateRoomInput{Name: "Locked", IsPublic: true, Password: " hunter2 ", Host: s.host})
	s.Require().NoError(err)
	s.Require().True(stored.HasPassword())
	s.NotContains(stored.PasswordHash, "hunter2")
	s.NoError(bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("hunter2")))

	// private rooms are reached by code only and never carry a password
	_, err = s.svc.CreateRoom(s.ctx, &CreateRoomInput{Name: "Private", Password: "hunter2", Host: s.host})
	s.Require().NoError(err)
	s.False(stored.HasPassword())
}

func (s *RoomServiceTestSuite) TestVerifyPassword() {
	hash, err := bcrypt.GenerateFromPassword([]byte("hunter2"), bcrypt.MinCost)
	s.Require().NoError(err)
	locked := &models.Room{ID: "locked", HostID: s.host.UserID, IsPublic: true, PasswordHash: string(hash)}

	s.mockRooms.EXPECT().Get(gomock.Any(), &roomRepo.GetInput{RoomID: "locked"}).Return(locked, nil).Times(2)
	s.mockRooms.EXPECT().Get(gomock.Any(), &roomRepo.GetInput{RoomID: s.testRoom.ID}).Return(s.testRoom, nil)
	s.mockRooms.EXPECT().Get(gomock.Any(), &roomRepo.GetInput{RoomID: "nope"}).Return(nil, roomRepo.ErrRoomNotFound)

	s.NoError(s.svc.VerifyPassword(s.ctx, &VerifyPasswordInput{RoomID: "locked", Password: "hunter2"}))
	s.ErrorIs(s.svc.VerifyPassword(s.ctx, &VerifyPasswordInput{RoomID: "locked", Password: "guess"}), ErrWrongPassword)
	s.NoError(s.svc.VerifyPassword(s.ctx, &VerifyPasswordInput{RoomID: s.testRoom.ID}))
	s.ErrorIs(s.svc.VerifyPassword(s.ctx, &VerifyPasswordInput{RoomID: "nope"}), ErrRoomNotFound)
}

func (s *RoomServiceTestSuite) TestListMine() {
	s.mockRooms.EXPECT().ListByHost(gomock.Any(), &roomRepo.ListByHostInput{HostID: s.host.UserID}).
		Return(&roomRepo.ListByHostOutput{Rooms: []*models.Room{s.testRoom}}, nil)

	rooms, err := s.svc.ListMine(s.ctx, &ListMineInput{HostID: s.host.UserID})
	s.Require().NoError(err)
	s.Equal([]*models.Room{s.testRoom}, rooms)

	rooms, err = s.svc.ListMine(s.ctx, &ListMineInput{})
	s.Require().NoError(err)
	s.Empty(rooms)
}

func (s *RoomServiceTestSuite) TestDeleteRoomHostOnly() {
	s.mockRooms.EXPECT().Get(gomock.Any(), &roomRepo.GetInput{RoomID: s.testRoom.ID}).Return(s.testRoom, nil).Times(2)

	err := s.svc.DeleteRoom(s.ctx, &DeleteRoomInput{RoomID: s.testRoom.ID, UserID: s.guest.UserID})
	s.ErrorIs(err, ErrNotHost)
	s.Empty(s.queue.names)

	s.mockRooms.EXPECT().Delete(gomock.Any(), &roomRepo.DeleteInput{RoomID: s.testRoom.ID}).Return(nil)
	s.mockChat.EXPECT().Clear(gomock.Any(), &chatRepo.ClearInput{RoomID: s.testRoom.ID}).Return(nil)
	s.mockNotes.EXPECT().Clear(gomock.Any(), &noteRepo.ClearInput{RoomID: s.testRoom.ID}).Return(nil)

	s.Require().NoError(s.svc.DeleteRoom(s.ctx, &DeleteRoomInput{RoomID: s.testRoom.ID, UserID: s.host.UserID}))
	s.Equal([]string{"clear_chat", "clear_notes"}, s.queue.names)
}

func (s *RoomServiceTestSuite) TestDeleteMissingRoom() {
	s.mockRooms.EXPECT().Get(gomock.Any(), gomock.Any()).Return(nil, roomRepo.ErrRoomNotFound)

	err := s.svc.DeleteRoom(s.ctx, &DeleteRoomInput{RoomID: "nope", UserID: s.host.UserID})
	s.ErrorIs(err, ErrRoomNotFound)
}

func (s *RoomServiceTestSuite) TestStoreCanvas() {
	s.mockRooms.EXPECT().SaveCanvas(gomock.Any(), &roomRepo.SaveCanvasInput{RoomID: s.testRoom.ID, CanvasData: "png", At: s.now}).Return(nil)
	s.mockRooms.EXPECT().SaveCanvas(gomock.Any(), gomock.Any()).Return(roomRepo.ErrRoomNotFound)

	s.Require().NoError(s.svc.StoreCanvas(s.ctx, &StoreCanvasInput{RoomID: s.testRoom.ID, CanvasData: "png"}))
	s.ErrorIs(s.svc.StoreCanvas(s.ctx, &StoreCanvasInput{RoomID: "nope", CanvasData: "png"}), ErrRoomNotFound)
	s.ErrorIs(s.svc.StoreCanvas(s.ctx, &StoreCanvasInput{}), ErrRoomNotFound)
}

func TestRoomServiceSuite(t *testing.T) {
	suite.Run(t, new(RoomServiceTestSuite))
}

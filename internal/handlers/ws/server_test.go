package ws

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"github.com/KirkDiggler/scribble/internal/broadcast"
	"github.com/KirkDiggler/scribble/internal/common/uuid"
	"github.com/KirkDiggler/scribble/internal/models"
	gameMocks "github.com/KirkDiggler/scribble/internal/services/game/mocks"
	"github.com/KirkDiggler/scribble/internal/services/presence"
	"github.com/KirkDiggler/scribble/internal/services/room"
	roomMocks "github.com/KirkDiggler/scribble/internal/services/room/mocks"
)

const testToken = "good-token"

type ServerTestSuite struct {
	suite.Suite
	mockCtrl  *gomock.Controller
	mockGame  *gameMocks.MockService
	mockRooms *roomMocks.MockService
	hub       *Hub
	server    *Server
	http      *httptest.Server
	identity  models.Identity
}

func (s *ServerTestSuite) SetupTest() {
	s.mockCtrl = gomock.NewController(s.T())
	s.mockGame = gameMocks.NewMockService(s.mockCtrl)
	s.mockRooms = roomMocks.NewMockService(s.mockCtrl)
	s.hub = NewHub()
	s.identity = models.Identity{UserID: "user-1", Username: "alice", Color: "#FF0000"}

	server, err := New(&Config{
		AllowedOrigins: []string{"http://allowed.test"},
		Hub:            s.hub,
		Verifier:       stubVerifier{testToken: s.identity},
		Presence:       presence.New(),
		Game:           s.mockGame,
		Rooms:          s.mockRooms,
		UUID:           uuid.New(),
	})
	s.Require().NoError(err)
	s.server = server
	s.http = httptest.NewServer(server.Handler())
}

func (s *ServerTestSuite) TearDownTest() {
	s.http.Close()
	s.mockCtrl.Finish()
}

func (s *ServerTestSuite) request(method, path, body string, authorized bool) *http.Response {
	req, err := http.NewRequest(method, s.http.URL+path, strings.NewReader(body))
	s.Require().NoError(err)
	if authorized {
		req.Header.Set("Authorization", "Bearer "+testToken)
	}
	resp, err := http.DefaultClient.Do(req)
	s.Require().NoError(err)
	s.T().Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

func (s *ServerTestSuite) decode(resp *http.Response) map[string]any {
	var body map[string]any
	s.Require().NoError(json.NewDecoder(resp.Body).Decode(&body))
	return body
}

func (s *ServerTestSuite) dial(header http.Header) (*websocket.Conn, *http.Response, error) {
	url := "ws" + strings.TrimPrefix(s.http.URL, "http") + "/ws?token=" + testToken
	return websocket.DefaultDialer.Dial(url, header)
}

func (s *ServerTestSuite) TestNewValidatesConfig() {
	_, err := New(nil)
	s.Error(err)

	_, err = New(&Config{Hub: NewHub()})
	s.ErrorContains(err, "verifier")
}

func (s *ServerTestSuite) TestHealth() {
	resp := s.request(http.MethodGet, "/api/health", "", false)
	s.Equal(http.StatusOK, resp.StatusCode)
	s.Equal(true, s.decode(resp)["ok"])
}

func (s *ServerTestSuite) TestRoomRoutesRequireToken() {
	resp := s.request(http.MethodGet, "/api/rooms/room-1", "", false)
	s.Equal(http.StatusUnauthorized, resp.StatusCode)
}

func (s *ServerTestSuite) TestCreateRoom() {
	s.mockRooms.EXPECT().CreateRoom(gomock.Any(), &room.CreateRoomInput{Name: "Doodles", IsPublic: true, Host: s.identity}).
		Return(&room.CreateRoomOutput{Room: &models.Room{ID: "room-1", Code: "ABC123", Name: "Doodles", IsPublic: true}}, nil)

	resp := s.request(http.MethodPost, "/api/rooms", `{"name":"Doodles","isPublic":true}`, true)
	s.Equal(http.StatusCreated, resp.StatusCode)

	created := s.decode(resp)["room"].(map[string]any)
	s.Equal("room-1", created["_id"])
	s.Equal("ABC123", created["code"])
}

func (s *ServerTestSuite) TestCreateRoomWithoutName() {
	s.mockRooms.EXPECT().CreateRoom(gomock.Any(), gomock.Any()).Return(nil, room.ErrRoomNameRequired)

	resp := s.request(http.MethodPost, "/api/rooms", `{}`, true)
	s.Equal(http.StatusBadRequest, resp.StatusCode)
	s.Equal("Room name required", s.decode(resp)["message"])
}

func (s *ServerTestSuite) TestGetRoom() {
	s.mockRooms.EXPECT().GetRoom(gomock.Any(), &room.GetRoomInput{RoomID: "room-1"}).
		Return(&models.Room{ID: "room-1", CanvasData: "png"}, nil)
	s.mockRooms.EXPECT().GetRoom(gomock.Any(), &room.GetRoomInput{RoomID: "missing"}).
		Return(nil, room.ErrRoomNotFound)

	resp := s.request(http.MethodGet, "/api/rooms/room-1", "", true)
	s.Equal(http.StatusOK, resp.StatusCode)
	s.Equal("png", s.decode(resp)["room"].(map[string]any)["canvasData"])

	resp = s.request(http.MethodGet, "/api/rooms/missing", "", true)
	s.Equal(http.StatusNotFound, resp.StatusCode)
}

func (s *ServerTestSuite) TestCreateRoomWithPassword() {
	s.mockRooms.EXPECT().CreateRoom(gomock.Any(), &room.CreateRoomInput{Name: "Locked", IsPublic: true, Password: "hunter2", Host: s.identity}).
		Return(&room.CreateRoomOutput{Room: &models.Room{ID: "room-1", IsPublic: true, PasswordHash: "$2a$hash"}}, nil)

	resp := s.request(http.MethodPost, "/api/rooms", `{"name":"Locked","isPublic":true,"password":"hunter2"}`, true)
	s.Equal(http.StatusCreated, resp.StatusCode)

	created := s.decode(resp)["room"].(map[string]any)
	s.Equal(true, created["hasPassword"])
	s.NotContains(created, "passwordHash")
}

func (s *ServerTestSuite) TestGetRoomHidesPasswordHash() {
	s.mockRooms.EXPECT().GetRoom(gomock.Any(), gomock.Any()).
		Return(&models.Room{ID: "room-1", IsPublic: true, PasswordHash: "$2a$hash"}, nil)

	resp := s.request(http.MethodGet, "/api/rooms/room-1", "", true)
	s.Equal(http.StatusOK, resp.StatusCode)

	found := s.decode(resp)["room"].(map[string]any)
	s.Equal(true, found["hasPassword"])
	s.NotContains(found, "passwordHash")
}

func (s *ServerTestSuite) TestListMyRooms() {
	s.mockRooms.EXPECT().ListMine(gomock.Any(), &room.ListMineInput{HostID: s.identity.UserID}).
		Return([]*models.Room{{ID: "room-2", HostID: s.identity.UserID}}, nil)

	resp := s.request(http.MethodGet, "/api/rooms/my", "", true)
	s.Equal(http.StatusOK, resp.StatusCode)

	rooms := s.decode(resp)["rooms"].([]any)
	s.Require().Len(rooms, 1)
	s.Equal("room-2", rooms[0].(map[string]any)["_id"])
}

func (s *ServerTestSuite) TestVerifyPassword() {
	s.mockRooms.EXPECT().VerifyPassword(gomock.Any(), &room.VerifyPasswordInput{RoomID: "room-1", Password: "hunter2"}).Return(nil)
	s.mockRooms.EXPECT().VerifyPassword(gomock.Any(), &room.VerifyPasswordInput{RoomID: "room-1", Password: "guess"}).
		Return(room.ErrWrongPassword)
	s.mockRooms.EXPECT().VerifyPassword(gomock.Any(), &room.VerifyPasswordInput{RoomID: "missing", Password: "x"}).
		Return(room.ErrRoomNotFound)

	resp := s.request(http.MethodPost, "/api/rooms/room-1/verify-password", `{"password":"hunter2"}`, true)
	s.Equal(http.StatusOK, resp.StatusCode)
	s.Equal(true, s.decode(resp)["ok"])

	resp = s.request(http.MethodPost, "/api/rooms/room-1/verify-password", `{"password":"guess"}`, true)
	s.Equal(http.StatusUnauthorized, resp.StatusCode)
	s.Equal("Incorrect password", s.decode(resp)["message"])

	resp = s.request(http.MethodPost, "/api/rooms/missing/verify-password", `{"password":"x"}`, true)
	s.Equal(http.StatusNotFound, resp.StatusCode)
}

func (s *ServerTestSuite) TestSaveCanvas() {
	s.mockRooms.EXPECT().StoreCanvas(gomock.Any(), &room.StoreCanvasInput{RoomID: "room-1", CanvasData: "png"}).Return(nil)

	resp := s.request(http.MethodPatch, "/api/rooms/room-1/canvas", `{"canvasData":"png"}`, true)
	s.Equal(http.StatusOK, resp.StatusCode)
	s.Equal(true, s.decode(resp)["ok"])

	resp = s.request(http.MethodPatch, "/api/rooms/room-1/canvas", `not json`, true)
	s.Equal(http.StatusBadRequest, resp.StatusCode)
}

func (s *ServerTestSuite) TestDeleteRoom() {
	s.mockRooms.EXPECT().DeleteRoom(gomock.Any(), &room.DeleteRoomInput{RoomID: "room-1", UserID: s.identity.UserID}).Return(nil)
	s.mockRooms.EXPECT().DeleteRoom(gomock.Any(), &room.DeleteRoomInput{RoomID: "room-2", UserID: s.identity.UserID}).
		Return(room.ErrNotHost)
	s.mockRooms.EXPECT().DeleteRoom(gomock.Any(), &room.DeleteRoomInput{RoomID: "missing", UserID: s.identity.UserID}).
		Return(room.ErrRoomNotFound)

	resp := s.request(http.MethodDelete, "/api/rooms/room-1", "", true)
	s.Equal(http.StatusOK, resp.StatusCode)

	resp = s.request(http.MethodDelete, "/api/rooms/room-2", "", true)
	s.Equal(http.StatusForbidden, resp.StatusCode)
	s.Equal("Forbidden", s.decode(resp)["message"])

	resp = s.request(http.MethodDelete, "/api/rooms/missing", "", true)
	s.Equal(http.StatusNotFound, resp.StatusCode)
}

func (s *ServerTestSuite) TestListAndFindByCode() {
	s.mockRooms.EXPECT().ListPublic(gomock.Any()).Return([]*models.Room{
		{ID: "room-1", Name: "One", CanvasData: "big"},
		{ID: "room-2", Name: "Two"},
	}, nil)
	s.mockRooms.EXPECT().FindByCode(gomock.Any(), &room.FindByCodeInput{Code: "abc123"}).
		Return(&models.Room{ID: "room-1", Code: "ABC123"}, nil)

	resp := s.request(http.MethodGet, "/api/rooms/public", "", true)
	s.Equal(http.StatusOK, resp.StatusCode)
	rooms := s.decode(resp)["rooms"].([]any)
	s.Len(rooms, 2)
	s.NotContains(rooms[0].(map[string]any), "canvasData")

	resp = s.request(http.MethodGet, "/api/rooms/join/abc123", "", true)
	s.Equal(http.StatusOK, resp.StatusCode)
}

func (s *ServerTestSuite) TestCORSPreflight() {
	req, err := http.NewRequest(http.MethodOptions, s.http.URL+"/api/rooms", nil)
	s.Require().NoError(err)
	req.Header.Set("Origin", "http://allowed.test")
	resp, err := http.DefaultClient.Do(req)
	s.Require().NoError(err)
	defer resp.Body.Close()

	s.Equal(http.StatusNoContent, resp.StatusCode)
	s.Equal("http://allowed.test", resp.Header.Get("Access-Control-Allow-Origin"))
	s.Contains(resp.Header.Get("Access-Control-Allow-Methods"), "DELETE")
}

func (s *ServerTestSuite) TestWebsocketRejectsBadToken() {
	url := "ws" + strings.TrimPrefix(s.http.URL, "http") + "/ws?token=nope"
	_, resp, err := websocket.DefaultDialer.Dial(url, nil)
	s.Require().Error(err)
	s.Require().NotNil(resp)
	s.Equal(http.StatusUnauthorized, resp.StatusCode)
}

func (s *ServerTestSuite) TestWebsocketRejectsForeignOrigin() {
	_, resp, err := s.dial(http.Header{"Origin": []string{"http://evil.test"}})
	s.Require().Error(err)
	s.Require().NotNil(resp)
	s.Equal(http.StatusForbidden, resp.StatusCode)
}

func (s *ServerTestSuite) TestWebsocketRoundTrip() {
	s.mockRooms.EXPECT().SendChat(gomock.Any()).DoAndReturn(func(input *room.SendChatInput) error {
		s.hub.ToConnection(input.ConnectionID, broadcast.NewEvent(broadcast.EventChatMessage, &models.ChatMessage{
			Username: "alice",
			Text:     input.Text,
		}))
		return nil
	})
	s.mockRooms.EXPECT().Leave(gomock.Any()).Return(room.ErrNotInRoom)

	conn, _, err := s.dial(http.Header{"Origin": []string{"http://allowed.test"}})
	s.Require().NoError(err)

	s.Require().NoError(conn.WriteJSON(map[string]any{
		"type":    broadcast.EventChatSend,
		"payload": map[string]string{"text": "hello"},
	}))

	_ = conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	var msg struct {
		Type    string             `json:"type"`
		Payload models.ChatMessage `json:"payload"`
	}
	s.Require().NoError(conn.ReadJSON(&msg))
	s.Equal(broadcast.EventChatMessage, msg.Type)
	s.Equal("hello", msg.Payload.Text)

	s.Require().NoError(conn.Close())
	s.Eventually(func() bool { return s.hub.Count() == 0 }, 5*time.Second, 10*time.Millisecond)
}

func TestServerSuite(t *testing.T) {
	suite.Run(t, new(ServerTestSuite))
}

package presence

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/scribble/internal/models"
)

type PresenceServiceTestSuite struct {
	suite.Suite
	registry *service

	alice models.Identity
	bob   models.Identity
}

func (s *PresenceServiceTestSuite) SetupTest() {
	s.registry = New()
	s.alice = models.Identity{UserID: "user-alice", Username: "alice", Color: "#FF0000"}
	s.bob = models.Identity{UserID: "user-bob", Username: "bob", Color: "#0000FF"}
}

func (s *PresenceServiceTestSuite) join(roomID, connID string, identity models.Identity) *JoinOutput {
	out, err := s.registry.Join(&JoinInput{RoomID: roomID, ConnectionID: connID, Identity: identity})
	s.Require().NoError(err)
	return out
}

func (s *PresenceServiceTestSuite) TestJoinKeepsJoinOrder() {
	s.join("room-1", "conn-a", s.alice)
	out := s.join("room-1", "conn-b", s.bob)

	s.Require().Len(out.Roster, 2)
	s.Equal("alice", out.Roster[0].Username)
	s.Equal("bob", out.Roster[1].Username)
	s.Equal("conn-b", out.Member.ConnectionID)
}

func (s *PresenceServiceTestSuite) TestJoinColorOverride() {
	out, err := s.registry.Join(&JoinInput{
		RoomID:       "room-1",
		ConnectionID: "conn-a",
		Identity:     s.alice,
		Color:        "#00FFBF",
		IsHost:       true,
	})
	s.Require().NoError(err)

	s.Equal("#00FFBF", out.Member.Color)
	s.True(out.Member.IsHost)
	s.Equal("user-alice", out.Member.UserID)
}

func (s *PresenceServiceTestSuite) TestJoinFallsBackToDefaults() {
	out := s.join("room-1", "conn-a", models.Identity{UserID: "user-anon"})

	s.Equal(DefaultUsername, out.Member.Username)
	s.Equal(DefaultColor, out.Member.Color)

	out = s.join("room-1", "conn-b", models.Identity{UserID: "user-bob", Username: "bob", Color: "#0000FF"})
	s.Equal("#0000FF", out.Member.Color)
}

func (s *PresenceServiceTestSuite) TestJoinReplacesExistingEntry() {
	s.join("room-1", "conn-a", s.alice)
	s.join("room-1", "conn-b", s.bob)

	out, err := s.registry.Join(&JoinInput{RoomID: "room-1", ConnectionID: "conn-a", Identity: s.alice, Color: "#123456"})
	s.Require().NoError(err)

	s.Require().Len(out.Roster, 2)
	s.Equal("conn-a", out.Roster[0].ConnectionID)
	s.Equal("#123456", out.Roster[0].Color)
}

func (s *PresenceServiceTestSuite) TestJoinMovesConnectionBetweenRooms() {
	s.join("room-1", "conn-a", s.alice)
	s.join("room-1", "conn-b", s.bob)

	out := s.join("room-2", "conn-a", s.alice)

	s.Equal("room-1", out.PreviousRoomID)
	s.Len(s.registry.Roster("room-1"), 1)
	roomID, ok := s.registry.Find("conn-a")
	s.True(ok)
	s.Equal("room-2", roomID)
}

func (s *PresenceServiceTestSuite) TestJoinValidation() {
	_, err := s.registry.Join(nil)
	s.ErrorIs(err, ErrNilInput)

	_, err = s.registry.Join(&JoinInput{ConnectionID: "conn-a"})
	s.ErrorIs(err, ErrMissingRoomID)

	_, err = s.registry.Join(&JoinInput{RoomID: "room-1"})
	s.ErrorIs(err, ErrMissingConnection)
}

func (s *PresenceServiceTestSuite) TestLeaveReturnsRemainingRoster() {
	s.join("room-1", "conn-a", s.alice)
	s.join("room-1", "conn-b", s.bob)

	out, err := s.registry.Leave(&LeaveInput{ConnectionID: "conn-a"})
	s.Require().NoError(err)

	s.Equal("room-1", out.RoomID)
	s.Equal("alice", out.Member.Username)
	s.False(out.RoomEmpty)
	s.Require().Len(out.Roster, 1)
	s.Equal("bob", out.Roster[0].Username)

	_, ok := s.registry.Find("conn-a")
	s.False(ok)
}

func (s *PresenceServiceTestSuite) TestLeaveLastMemberDeletesRoom() {
	s.join("room-1", "conn-a", s.alice)

	out, err := s.registry.Leave(&LeaveInput{ConnectionID: "conn-a"})
	s.Require().NoError(err)

	s.True(out.RoomEmpty)
	s.Empty(out.Roster)
	s.NotContains(s.registry.rooms, "room-1")
}

func (s *PresenceServiceTestSuite) TestLeaveUnknownConnection() {
	_, err := s.registry.Leave(&LeaveInput{ConnectionID: "nobody"})
	s.ErrorIs(err, ErrConnectionNotFound)
}

func (s *PresenceServiceTestSuite) TestRosterIsSnapshot() {
	s.join("room-1", "conn-a", s.alice)

	roster := s.registry.Roster("room-1")
	roster[0].Username = "mallory"

	s.Equal("alice", s.registry.Roster("room-1")[0].Username)
	s.Empty(s.registry.Roster("missing"))
}

func (s *PresenceServiceTestSuite) TestConcurrentJoinLeave() {
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			connID := fmt.Sprintf("conn-%d", i)
			_, _ = s.registry.Join(&JoinInput{RoomID: "room-1", ConnectionID: connID, Identity: s.alice})
			_, _ = s.registry.Leave(&LeaveInput{ConnectionID: connID})
		}(i)
	}
	wg.Wait()

	s.Empty(s.registry.Roster("room-1"))
	s.Empty(s.registry.connections)
}

func TestPresenceServiceSuite(t *testing.T) {
	suite.Run(t, new(PresenceServiceTestSuite))
}

package presence

import (
	"slices"
	"sync"

	"github.com/samber/lo"

	"github.com/KirkDiggler/scribble/internal/models"
)

// service implements the Service interface with an owned, guarded map
type service struct {
	mu sync.RWMutex

	// rooms maps room id to members in join order
	rooms map[string][]models.Member

	// connections maps connection id back to its room
	connections map[string]string
}

// New creates an empty presence registry
func New() *service {
	return &service{
		rooms:       make(map[string][]models.Member),
		connections: make(map[string]string),
	}
}

// Join adds or replaces a connection's entry in a room
func (s *service) Join(input *JoinInput) (*JoinOutput, error) {
	if input == nil {
		return nil, ErrNilInput
	}
	if input.RoomID == "" {
		return nil, ErrMissingRoomID
	}
	if input.ConnectionID == "" {
		return nil, ErrMissingConnection
	}

	username := input.Identity.Username
	if username == "" {
		username = DefaultUsername
	}
	color := lo.CoalesceOrEmpty(input.Color, input.Identity.Color, DefaultColor)

	member := models.Member{
		ConnectionID: input.ConnectionID,
		UserID:       input.Identity.UserID,
		Username:     username,
		Color:        color,
		IsHost:       input.IsHost,
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	output := &JoinOutput{Member: member}

	// A connection is in at most one room
	if prev, ok := s.connections[input.ConnectionID]; ok && prev != input.RoomID {
		s.removeLocked(prev, input.ConnectionID)
		output.PreviousRoomID = prev
	}

	members := s.rooms[input.RoomID]
	_, idx, found := lo.FindIndexOf(members, func(m models.Member) bool {
		return m.ConnectionID == input.ConnectionID
	})
	if found {
		members[idx] = member
	} else {
		members = append(members, member)
	}
	s.rooms[input.RoomID] = members
	s.connections[input.ConnectionID] = input.RoomID

	output.Roster = slices.Clone(members)
	return output, nil
}

// Leave removes a connection from its room, deleting the room entry when it empties
func (s *service) Leave(input *LeaveInput) (*LeaveOutput, error) {
	if input == nil {
		return nil, ErrNilInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	roomID, ok := s.connections[input.ConnectionID]
	if !ok {
		return nil, ErrConnectionNotFound
	}

	member, _ := s.removeLocked(roomID, input.ConnectionID)
	remaining := s.rooms[roomID]

	return &LeaveOutput{
		RoomID:    roomID,
		Member:    member,
		Roster:    slices.Clone(remaining),
		RoomEmpty: len(remaining) == 0,
	}, nil
}

// Find returns the room a connection is currently in
func (s *service) Find(connectionID string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	roomID, ok := s.connections[connectionID]
	return roomID, ok
}

// Roster returns a copy of the room's members in join order
func (s *service) Roster(roomID string) []models.Member {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return slices.Clone(s.rooms[roomID])
}

// removeLocked drops a connection from a room. Caller holds s.mu.
func (s *service) removeLocked(roomID, connectionID string) (models.Member, bool) {
	delete(s.connections, connectionID)

	members := s.rooms[roomID]
	member, idx, found := lo.FindIndexOf(members, func(m models.Member) bool {
		return m.ConnectionID == connectionID
	})
	if !found {
		return models.Member{}, false
	}

	members = slices.Delete(members, idx, idx+1)
	if len(members) == 0 {
		delete(s.rooms, roomID)
	} else {
		s.rooms[roomID] = members
	}
	return member, true
}

package ws

import (
	"encoding/json"
	"sync"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/KirkDiggler/scribble/internal/broadcast"
)

// Hub tracks live connections and fans events out to them. It implements
// broadcast.Gateway.
type Hub struct {
	mu      sync.RWMutex
	clients map[string]*Client
	rooms   map[string]map[string]struct{}
	roomOf  map[string]string
	log     zerolog.Logger
}

// NewHub creates an empty hub
func NewHub() *Hub {
	return &Hub{
		clients: make(map[string]*Client),
		rooms:   make(map[string]map[string]struct{}),
		roomOf:  make(map[string]string),
		log:     log.With().Str("component", "hub").Logger(),
	}
}

func (h *Hub) register(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[c.id] = c
}

// unregister forgets a client and closes its outbound channel. Safe to call twice.
func (h *Hub) unregister(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if current, ok := h.clients[c.id]; !ok || current != c {
		return
	}
	h.unsubscribeLocked(c.id)
	delete(h.clients, c.id)
	close(c.send)
}

// Subscribe moves a connection into a room's fan-out set
func (h *Hub) Subscribe(roomID, connectionID string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.clients[connectionID]; !ok {
		return
	}
	h.unsubscribeLocked(connectionID)

	members, ok := h.rooms[roomID]
	if !ok {
		members = make(map[string]struct{})
		h.rooms[roomID] = members
	}
	members[connectionID] = struct{}{}
	h.roomOf[connectionID] = roomID
}

// Unsubscribe removes a connection from its room's fan-out set
func (h *Hub) Unsubscribe(connectionID string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.unsubscribeLocked(connectionID)
}

func (h *Hub) unsubscribeLocked(connectionID string) {
	roomID, ok := h.roomOf[connectionID]
	if !ok {
		return
	}
	delete(h.roomOf, connectionID)

	members := h.rooms[roomID]
	delete(members, connectionID)
	if len(members) == 0 {
		delete(h.rooms, roomID)
	}
}

// ToRoom delivers an event to every subscriber of a room
func (h *Hub) ToRoom(roomID string, event broadcast.Event) {
	h.ToRoomExcept(roomID, "", event)
}

// ToRoomExcept delivers an event to a room, skipping one connection
func (h *Hub) ToRoomExcept(roomID, connectionID string, event broadcast.Event) {
	data, ok := h.encode(event)
	if !ok {
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	for id := range h.rooms[roomID] {
		if id == connectionID {
			continue
		}
		if c, ok := h.clients[id]; ok {
			c.enqueue(data)
		}
	}
}

// ToConnection delivers an event to one connection
func (h *Hub) ToConnection(connectionID string, event broadcast.Event) {
	data, ok := h.encode(event)
	if !ok {
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	if c, ok := h.clients[connectionID]; ok {
		c.enqueue(data)
	}
}

// Count returns the number of live connections
func (h *Hub) Count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Close drops every connection. Their write pumps send a close frame and exit.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()

	for id, c := range h.clients {
		close(c.send)
		delete(h.clients, id)
	}
	h.rooms = make(map[string]map[string]struct{})
	h.roomOf = make(map[string]string)
}

func (h *Hub) encode(event broadcast.Event) ([]byte, bool) {
	data, err := json.Marshal(event)
	if err != nil {
		h.log.Error().Err(err).Str("event", event.Type).Msg("failed to encode event")
		return nil, false
	}
	return data, true
}

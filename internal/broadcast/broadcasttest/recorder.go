// Package broadcasttest provides an in-memory Gateway that records deliveries.
package broadcasttest

import (
	"sync"

	"github.com/samber/lo"

	"github.com/KirkDiggler/scribble/internal/broadcast"
)

// Scope says how a delivery was addressed
type Scope string

const (
	ScopeRoom       Scope = "room"
	ScopeRoomExcept Scope = "room_except"
	ScopeConnection Scope = "connection"
)

// Delivery is one recorded send
type Delivery struct {
	Scope  Scope
	Target string
	Except string
	Event  broadcast.Event
}

// Recorder implements broadcast.Gateway by remembering every call
type Recorder struct {
	mu            sync.Mutex
	deliveries    []Delivery
	subscriptions map[string]string
}

// New returns an empty recorder
func New() *Recorder {
	return &Recorder{subscriptions: make(map[string]string)}
}

func (r *Recorder) record(d Delivery) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.deliveries = append(r.deliveries, d)
}

func (r *Recorder) ToRoom(roomID string, event broadcast.Event) {
	r.record(Delivery{Scope: ScopeRoom, Target: roomID, Event: event})
}

func (r *Recorder) ToRoomExcept(roomID, connectionID string, event broadcast.Event) {
	r.record(Delivery{Scope: ScopeRoomExcept, Target: roomID, Except: connectionID, Event: event})
}

func (r *Recorder) ToConnection(connectionID string, event broadcast.Event) {
	r.record(Delivery{Scope: ScopeConnection, Target: connectionID, Event: event})
}

func (r *Recorder) Subscribe(roomID, connectionID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.subscriptions[connectionID] = roomID
}

func (r *Recorder) Unsubscribe(connectionID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.subscriptions, connectionID)
}

// Deliveries returns a copy of everything recorded so far
func (r *Recorder) Deliveries() []Delivery {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Delivery(nil), r.deliveries...)
}

// OfType returns the deliveries of one event type in send order
func (r *Recorder) OfType(eventType string) []Delivery {
	return lo.Filter(r.Deliveries(), func(d Delivery, _ int) bool {
		return d.Event.Type == eventType
	})
}

// To returns the deliveries addressed privately to one connection
func (r *Recorder) To(connectionID string) []Delivery {
	return lo.Filter(r.Deliveries(), func(d Delivery, _ int) bool {
		return d.Scope == ScopeConnection && d.Target == connectionID
	})
}

// Last returns the most recent delivery of an event type
func (r *Recorder) Last(eventType string) (Delivery, bool) {
	matches := r.OfType(eventType)
	if len(matches) == 0 {
		return Delivery{}, false
	}
	return matches[len(matches)-1], true
}

// Types lists the event types recorded, in order
func (r *Recorder) Types() []string {
	return lo.Map(r.Deliveries(), func(d Delivery, _ int) string {
		return d.Event.Type
	})
}

// Room returns the room a connection is subscribed to
func (r *Recorder) Room(connectionID string) (string, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	roomID, ok := r.subscriptions[connectionID]
	return roomID, ok
}

// Reset forgets all recorded deliveries
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.deliveries = nil
}

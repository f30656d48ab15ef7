package ws

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/KirkDiggler/scribble/internal/services/game"
	"github.com/KirkDiggler/scribble/internal/services/presence"
	"github.com/KirkDiggler/scribble/internal/services/room"
)

// eventTimeout bounds the synchronous work of a single inbound event
const eventTimeout = 5 * time.Second

var (
	// ErrUnknownEvent is returned for event types nothing handles
	ErrUnknownEvent = errors.New("unknown event")

	// ErrRateLimited is returned when a client sends faster than allowed
	ErrRateLimited = errors.New("rate limited")

	// ErrBadPayload is returned when an event payload cannot be decoded
	ErrBadPayload = errors.New("malformed payload")

	// ErrHandlerPanic is returned when a handler panicked
	ErrHandlerPanic = errors.New("handler panicked")
)

// EventHandler processes one inbound event
type EventHandler func(ctx context.Context, c *Client, payload json.RawMessage) error

// Dispatcher routes inbound events to handlers by type
type Dispatcher struct {
	handlers map[string]EventHandler
	log      zerolog.Logger
}

// NewDispatcher creates an empty dispatcher
func NewDispatcher() *Dispatcher {
	return &Dispatcher{
		handlers: make(map[string]EventHandler),
		log:      log.With().Str("component", "dispatch").Logger(),
	}
}

// Register binds a handler to an event type, replacing any earlier one
func (d *Dispatcher) Register(eventType string, handler EventHandler) {
	d.handlers[eventType] = handler
}

// Handles reports whether an event type has a handler
func (d *Dispatcher) Handles(eventType string) bool {
	_, ok := d.handlers[eventType]
	return ok
}

// Dispatch runs the handler for msg. Panics are recovered so one bad event
// cannot take the connection or the process down. The returned error is
// already logged.
func (d *Dispatcher) Dispatch(c *Client, msg Message) (err error) {
	logger := d.log.With().Str("connection", c.id).Str("event", msg.Type).Logger()

	defer func() {
		if r := recover(); r != nil {
			logger.Error().Interface("panic", r).Msg("event handler panicked")
			err = ErrHandlerPanic
		}
	}()

	if c.limiter != nil && !c.limiter.Allow() {
		logger.Debug().Msg("event dropped by rate limit")
		return ErrRateLimited
	}

	handler, ok := d.handlers[msg.Type]
	if !ok {
		logger.Debug().Msg("no handler for event")
		return ErrUnknownEvent
	}

	parent := c.ctx
	if parent == nil {
		parent = context.Background()
	}
	ctx, cancel := context.WithTimeout(parent, eventTimeout)
	defer cancel()

	if err := handler(ctx, c, msg.Payload); err != nil {
		if isPrecondition(err) {
			logger.Debug().Err(err).Msg("event ignored")
		} else {
			logger.Warn().Err(err).Msg("event failed")
		}
		return err
	}

	return nil
}

// isPrecondition reports whether err is an expected rejection rather than a fault
func isPrecondition(err error) bool {
	var gameErr game.GameError
	var roomErr room.RoomError
	var presenceErr presence.PresenceError

	return errors.As(err, &gameErr) ||
		errors.As(err, &roomErr) ||
		errors.As(err, &presenceErr) ||
		errors.Is(err, ErrBadPayload)
}

// decode unmarshals payload into v. An empty payload leaves v untouched.
func decode(payload json.RawMessage, v any) error {
	if len(payload) == 0 {
		return nil
	}
	if err := json.Unmarshal(payload, v); err != nil {
		return fmt.Errorf("%w: %v", ErrBadPayload, err)
	}
	return nil
}

// Package ws serves the HTTP API and the websocket event stream.
package ws

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
	"golang.org/x/time/rate"

	"github.com/KirkDiggler/scribble/internal/auth"
	"github.com/KirkDiggler/scribble/internal/common/uuid"
	"github.com/KirkDiggler/scribble/internal/services/game"
	"github.com/KirkDiggler/scribble/internal/services/presence"
	"github.com/KirkDiggler/scribble/internal/services/room"
)

const (
	DefaultEventsPerSecond = 20
	DefaultEventBurst      = 40

	apiTimeout = 10 * time.Second
)

// Server owns the router, the hub and the inbound event registry
type Server struct {
	router     chi.Router
	http       *http.Server
	hub        *Hub
	dispatcher *Dispatcher
	upgrader   websocket.Upgrader

	verifier auth.TokenVerifier
	presence presence.Service
	game     game.Service
	rooms    room.Service
	uuid     uuid.UUID

	allowedOrigins  []string
	eventsPerSecond rate.Limit
	eventBurst      int
	log             zerolog.Logger
}

// Config holds the configuration for the server
type Config struct {
	// Addr is the listen address, e.g. ":5001"
	Addr string

	// AllowedOrigins restricts browser origins, empty allows any
	AllowedOrigins []string

	// EventsPerSecond and EventBurst bound inbound events per connection
	EventsPerSecond float64
	EventBurst      int

	Hub      *Hub
	Verifier auth.TokenVerifier
	Presence presence.Service
	Game     game.Service
	Rooms    room.Service
	UUID     uuid.UUID
}

// New creates a new server
func New(cfg *Config) (*Server, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}
	if cfg.Hub == nil {
		return nil, errors.New("hub cannot be nil")
	}
	if cfg.Verifier == nil {
		return nil, errors.New("verifier cannot be nil")
	}
	if cfg.Presence == nil {
		return nil, errors.New("presence service cannot be nil")
	}
	if cfg.Game == nil {
		return nil, errors.New("game service cannot be nil")
	}
	if cfg.Rooms == nil {
		return nil, errors.New("room service cannot be nil")
	}
	if cfg.UUID == nil {
		return nil, errors.New("uuid generator cannot be nil")
	}

	s := &Server{
		hub:             cfg.Hub,
		dispatcher:      NewDispatcher(),
		verifier:        cfg.Verifier,
		presence:        cfg.Presence,
		game:            cfg.Game,
		rooms:           cfg.Rooms,
		uuid:            cfg.UUID,
		allowedOrigins:  cfg.AllowedOrigins,
		eventsPerSecond: rate.Limit(cfg.EventsPerSecond),
		eventBurst:      cfg.EventBurst,
		log:             log.With().Str("component", "server").Logger(),
	}
	if s.eventsPerSecond <= 0 {
		s.eventsPerSecond = DefaultEventsPerSecond
	}
	if s.eventBurst <= 0 {
		s.eventBurst = DefaultEventBurst
	}

	s.upgrader = websocket.Upgrader{
		ReadBufferSize:  4096,
		WriteBufferSize: 4096,
		CheckOrigin:     s.checkOrigin,
	}

	s.registerHandlers()
	s.router = s.routes()
	s.http = &http.Server{
		Addr:              cfg.Addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	return s, nil
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)

	r.Route("/api", func(r chi.Router) {
		r.Use(chimw.Timeout(apiTimeout))
		r.Use(s.cors)
		r.Use(jsonContentType)

		r.Get("/health", s.handleHealth)

		r.Route("/rooms", func(r chi.Router) {
			r.Use(auth.Require(s.verifier))
			r.Post("/", s.handleCreateRoom)
			r.Get("/public", s.handleListPublicRooms)
			r.Get("/my", s.handleListMyRooms)
			r.Get("/join/{code}", s.handleFindRoomByCode)
			r.Get("/{id}", s.handleGetRoom)
			r.Delete("/{id}", s.handleDeleteRoom)
			r.Post("/{id}/verify-password", s.handleVerifyPassword)
			r.Patch("/{id}/canvas", s.handleSaveCanvas)
		})
	})

	r.Get("/ws", s.handleWebsocket)

	return r
}

// Handler exposes the router, mostly for tests
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start serves until Shutdown is called
func (s *Server) Start() error {
	s.log.Info().Str("addr", s.http.Addr).Msg("server listening")
	if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to serve: %w", err)
	}
	return nil
}

// Shutdown stops accepting requests and drops every websocket
func (s *Server) Shutdown(ctx context.Context) error {
	err := s.http.Shutdown(ctx)
	s.hub.Close()
	return err
}

// handleWebsocket verifies the token, upgrades, and runs the connection until it closes
func (s *Server) handleWebsocket(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")
	if token == "" {
		token = auth.BearerToken(r)
	}

	identity, err := s.verifier.Verify(token)
	if err != nil {
		writeError(w, http.StatusUnauthorized, err.Error())
		return
	}

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Debug().Err(err).Msg("websocket upgrade failed")
		return
	}

	client := newClient(r.Context(), s.uuid.NewUUID(), identity, conn,
		rate.NewLimiter(s.eventsPerSecond, s.eventBurst), s.log)

	s.hub.register(client)
	client.log.Info().Str("username", identity.Username).Msg("connected")

	go client.writePump()
	client.readPump(func(c *Client, msg Message) {
		_ = s.dispatcher.Dispatch(c, msg)
	})

	s.disconnect(client)
}

// disconnect leaves the client's room and releases it from the hub
func (s *Server) disconnect(c *Client) {
	if err := s.rooms.Leave(&room.LeaveInput{ConnectionID: c.id}); err != nil && !errors.Is(err, room.ErrNotInRoom) {
		c.log.Warn().Err(err).Msg("failed to leave room on disconnect")
	}
	s.hub.unregister(c)
	c.log.Info().Msg("disconnected")
}

// checkOrigin allows requests without an Origin header and, when a list is
// configured, only the listed origins
func (s *Server) checkOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" || len(s.allowedOrigins) == 0 {
		return true
	}
	return lo.Contains(s.allowedOrigins, origin)
}

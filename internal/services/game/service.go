// Package game drives draw-and-guess sessions: turn rotation, word choice,
// timed drawing with hints, guess scoring and reconnection.
package game

import (
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/samber/lo"

	"github.com/KirkDiggler/scribble/internal/broadcast"
	"github.com/KirkDiggler/scribble/internal/common/clock"
	"github.com/KirkDiggler/scribble/internal/guess"
)

// service implements the Service interface
type service struct {
	mu       sync.RWMutex
	sessions map[string]*session

	// generation stamps every session ever created
	generation atomic.Uint64

	chooseTimeout time.Duration
	turnEndDelay  time.Duration
	maxRounds     int
	maxTurnTime   int

	clock   clock.Clock
	words   WordBank
	roster  RosterSource
	gateway broadcast.Gateway
	log     zerolog.Logger
}

// New creates a new game service
func New(cfg *Config) (*service, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}
	if cfg.Clock == nil {
		return nil, ErrNilClock
	}
	if cfg.Words == nil {
		return nil, ErrNilWordBank
	}
	if cfg.Roster == nil {
		return nil, ErrNilRosterSource
	}
	if cfg.Gateway == nil {
		return nil, ErrNilGateway
	}

	s := &service{
		sessions:      make(map[string]*session),
		chooseTimeout: cfg.ChooseTimeout,
		turnEndDelay:  cfg.TurnEndDelay,
		maxRounds:     cfg.MaxRounds,
		maxTurnTime:   cfg.MaxTurnTime,
		clock:         cfg.Clock,
		words:         cfg.Words,
		roster:        cfg.Roster,
		gateway:       cfg.Gateway,
		log:           log.With().Str("component", "game").Logger(),
	}

	if s.chooseTimeout <= 0 {
		s.chooseTimeout = DefaultChooseTimeout
	}
	if s.turnEndDelay <= 0 {
		s.turnEndDelay = DefaultTurnEndDelay
	}
	if s.maxRounds <= 0 {
		s.maxRounds = DefaultMaxRounds
	}
	if s.maxTurnTime <= 0 {
		s.maxTurnTime = DefaultMaxTurnTime
	}

	return s, nil
}

// Start snapshots the room roster and begins the first turn
func (s *service) Start(input *StartInput) (*StartOutput, error) {
	if input == nil {
		return nil, ErrNilInput
	}

	if s.exists(input.RoomID) {
		return nil, ErrGameAlreadyExists
	}

	roster := s.roster.Roster(input.RoomID)
	if len(roster) < MinPlayers {
		s.gateway.ToConnection(input.ConnectionID, broadcast.NewEvent(broadcast.EventError, broadcast.ErrorPayload{
			Message: notEnoughPlayersMessage,
		}))
		return nil, ErrNotEnoughPlayers
	}

	rounds := boundedOrDefault(input.Rounds, DefaultRounds, s.maxRounds)
	turnTime := boundedOrDefault(input.TurnTime, DefaultTurnTime, s.maxTurnTime)

	sess := newSession(input.RoomID, s.generation.Add(1), roster, rounds, turnTime)
	sess.mu.Lock()
	defer sess.mu.Unlock()

	s.mu.Lock()
	if _, ok := s.sessions[input.RoomID]; ok {
		s.mu.Unlock()
		return nil, ErrGameAlreadyExists
	}
	s.sessions[input.RoomID] = sess
	s.mu.Unlock()

	players := sess.scoreboard()
	s.log.Info().
		Str("room_id", input.RoomID).
		Int("players", len(players)).
		Int("rounds", rounds).
		Int("turn_time", turnTime).
		Msg("game started")

	s.gateway.ToRoom(input.RoomID, broadcast.NewEvent(broadcast.EventGameStarted, StartedPayload{
		Players:  players,
		Rounds:   rounds,
		TurnTime: turnTime,
	}))
	s.startTurn(sess)

	return &StartOutput{
		Players:  players,
		Rounds:   rounds,
		TurnTime: turnTime,
	}, nil
}

// PickWord lets the drawer choose one of the offered words
func (s *service) PickWord(input *PickWordInput) error {
	if input == nil {
		return ErrNilInput
	}

	sess, err := s.acquire(input.RoomID)
	if err != nil {
		return err
	}
	defer sess.mu.Unlock()

	if !sess.status.IsChoosing() {
		return ErrInvalidGameState
	}
	if sess.drawer().ConnectionID != input.ConnectionID {
		return ErrNotDrawer
	}
	word := strings.TrimSpace(input.Word)
	if word == "" {
		return ErrEmptyWord
	}

	s.beginDrawing(sess, word)
	return nil
}

// Guess evaluates a guess from a non-drawing player
func (s *service) Guess(input *GuessInput) (*GuessOutput, error) {
	if input == nil {
		return nil, ErrNilInput
	}
	if strings.TrimSpace(input.Text) == "" {
		return nil, ErrEmptyGuess
	}

	sess, err := s.acquire(input.RoomID)
	if err != nil {
		return nil, err
	}
	defer sess.mu.Unlock()

	if !sess.status.IsDrawing() {
		return nil, ErrInvalidGameState
	}

	player, ok := sess.playerByConnection(input.ConnectionID)
	if !ok {
		return nil, ErrPlayerNotInGame
	}
	drawer := sess.drawer()
	if player == drawer {
		return nil, ErrDrawerCannotGuess
	}
	if _, done := sess.guessed[player]; done {
		return nil, ErrAlreadyGuessed
	}

	if !guess.IsCorrect(input.Text, sess.word) {
		isClose := guess.IsClose(input.Text, sess.word)
		s.gateway.ToRoom(sess.roomID, broadcast.NewEvent(broadcast.EventGameWrongGuess, WrongGuessPayload{
			Username: player.Username,
			Guess:    input.Text,
			Close:    isClose,
		}))
		return &GuessOutput{Close: isClose}, nil
	}

	sess.guessed[player] = struct{}{}
	points := guess.Points(sess.turnTime, s.clock.Now().Sub(sess.turnStartedAt))
	player.Score += points
	drawer.Score += guess.DrawerBonus

	s.log.Debug().
		Str("room_id", sess.roomID).
		Str("username", player.Username).
		Int("points", points).
		Msg("correct guess")

	s.gateway.ToRoom(sess.roomID, broadcast.NewEvent(broadcast.EventGameCorrectGuess, CorrectGuessPayload{
		Username: player.Username,
		Points:   points,
		Players:  sess.scoreboard(),
	}))
	s.gateway.ToConnection(input.ConnectionID, broadcast.NewEvent(broadcast.EventGameYouGuessed, YouGuessedPayload{
		Word:   sess.word,
		Points: points,
	}))

	output := &GuessOutput{Correct: true, Points: points}
	if sess.allGuessed() {
		s.endTurn(sess)
		output.TurnEnded = true
	}
	return output, nil
}

// Rejoin rebinds a returning player to a new connection and syncs it
func (s *service) Rejoin(input *RejoinInput) (*RejoinOutput, error) {
	if input == nil {
		return nil, ErrNilInput
	}

	sess, err := s.acquire(input.RoomID)
	if err != nil {
		return nil, err
	}
	defer sess.mu.Unlock()

	output := &RejoinOutput{}
	if player, ok := sess.playerByUsername(input.Username); ok {
		wasDrawer := player == sess.drawer()
		player.ConnectionID = input.ConnectionID
		output.Rebound = true

		if wasDrawer && sess.status.IsDrawing() {
			s.gateway.ToConnection(input.ConnectionID, broadcast.NewEvent(broadcast.EventGameYouDraw, YouDrawPayload{
				Word: sess.word,
			}))
		}

		s.log.Info().
			Str("room_id", sess.roomID).
			Str("username", input.Username).
			Str("connection_id", input.ConnectionID).
			Msg("player rejoined")
	}

	s.sync(sess, input.ConnectionID)
	return output, nil
}

// Sync sends a single connection a snapshot of the current turn
func (s *service) Sync(input *SyncInput) error {
	if input == nil {
		return ErrNilInput
	}

	sess, err := s.acquire(input.RoomID)
	if err != nil {
		return err
	}
	defer sess.mu.Unlock()

	s.sync(sess, input.ConnectionID)
	return nil
}

// Stop ends the session immediately
func (s *service) Stop(input *StopInput) error {
	if input == nil {
		return ErrNilInput
	}

	sess, err := s.acquire(input.RoomID)
	if err != nil {
		return err
	}
	defer sess.mu.Unlock()

	s.destroy(sess)
	s.log.Info().Str("room_id", sess.roomID).Str("connection_id", input.ConnectionID).Msg("game stopped")
	s.gateway.ToRoom(sess.roomID, broadcast.NewEvent(broadcast.EventGameStopped, nil))
	return nil
}

// Shutdown ends every session without notifying anyone
func (s *service) Shutdown() {
	s.mu.RLock()
	sessions := lo.Values(s.sessions)
	s.mu.RUnlock()

	for _, sess := range sessions {
		sess.mu.Lock()
		s.destroy(sess)
		sess.mu.Unlock()
	}
}

// exists reports whether a room has a live session
func (s *service) exists(roomID string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.sessions[roomID]
	return ok
}

// acquire returns the room's session locked. The caller must unlock it.
func (s *service) acquire(roomID string) (*session, error) {
	s.mu.RLock()
	sess, ok := s.sessions[roomID]
	s.mu.RUnlock()
	if !ok {
		return nil, ErrGameNotFound
	}

	sess.mu.Lock()
	if sess.ended.Load() {
		sess.mu.Unlock()
		return nil, ErrGameNotFound
	}
	return sess, nil
}

// current reports whether sess is still the live session of its room.
// Lock order is session then store.
func (s *service) current(sess *session, generation uint64) bool {
	if sess.ended.Load() || sess.generation != generation {
		return false
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sessions[sess.roomID] == sess
}

// destroy removes the session and cancels its timer. Caller holds sess.mu.
func (s *service) destroy(sess *session) {
	if !sess.ended.CompareAndSwap(false, true) {
		return
	}
	sess.supersede()

	s.mu.Lock()
	if s.sessions[sess.roomID] == sess {
		delete(s.sessions, sess.roomID)
	}
	s.mu.Unlock()
}

func (s *service) sync(sess *session, connectionID string) {
	payload, ok := sess.syncPayload(connectionID)
	if !ok {
		return
	}
	s.gateway.ToConnection(connectionID, broadcast.NewEvent(broadcast.EventGameSync, payload))
}

func boundedOrDefault(value, fallback, limit int) int {
	if value <= 0 {
		value = fallback
	}
	return min(value, limit)
}

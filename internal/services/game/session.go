package game

import (
	"cmp"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"github.com/samber/lo"

	"github.com/KirkDiggler/scribble/internal/common/clock"
	"github.com/KirkDiggler/scribble/internal/models"
)

// session is one room's game. All fields except ended are guarded by mu.
type session struct {
	mu sync.Mutex

	roomID     string
	generation uint64
	ended      atomic.Bool

	players     []*models.Player
	drawerIndex int
	round       int
	maxRounds   int
	turnTime    int
	status      models.GameStatus

	candidates    []string
	word          string
	masked        string
	// guessed is keyed by player so duplicate usernames score independently
	guessed       map[*models.Player]struct{}
	turnStartedAt time.Time
	remaining     int

	// turnSeq advances on every transition that supersedes the armed timer
	turnSeq uint64
	timer   clock.Timer
}

func newSession(roomID string, generation uint64, roster []models.Member, rounds, turnTime int) *session {
	return &session{
		roomID:     roomID,
		generation: generation,
		players: lo.Map(roster, func(m models.Member, _ int) *models.Player {
			return &models.Player{
				ConnectionID: m.ConnectionID,
				Username:     m.Username,
				Color:        m.Color,
			}
		}),
		round:     1,
		maxRounds: rounds,
		turnTime:  turnTime,
		status:    models.GameStatusStarting,
		guessed:   make(map[*models.Player]struct{}),
	}
}

func (sess *session) drawer() *models.Player {
	return sess.players[sess.drawerIndex]
}

func (sess *session) playerByConnection(connectionID string) (*models.Player, bool) {
	return lo.Find(sess.players, func(p *models.Player) bool {
		return p.ConnectionID == connectionID
	})
}

func (sess *session) playerByUsername(username string) (*models.Player, bool) {
	return lo.Find(sess.players, func(p *models.Player) bool {
		return p.Username == username
	})
}

// allGuessed reports whether every non-drawer has answered this turn
func (sess *session) allGuessed() bool {
	return len(sess.guessed) >= len(sess.players)-1
}

// scoreboard copies the players in roster order
func (sess *session) scoreboard() []models.Player {
	return lo.Map(sess.players, func(p *models.Player, _ int) models.Player {
		return *p
	})
}

// ranking sorts by score, highest first, keeping roster order on ties
func (sess *session) ranking() []models.Player {
	ranked := sess.scoreboard()
	slices.SortStableFunc(ranked, func(a, b models.Player) int {
		return cmp.Compare(b.Score, a.Score)
	})
	return ranked
}

// supersede cancels the armed timer and invalidates any callback already in flight
func (sess *session) supersede() {
	sess.turnSeq++
	if sess.timer != nil {
		sess.timer.Stop()
		sess.timer = nil
	}
}

func (sess *session) syncPayload(connectionID string) (SyncPayload, bool) {
	if sess.status.IsTransient() {
		return SyncPayload{}, false
	}

	drawer := sess.drawer()
	payload := SyncPayload{
		Status:             sess.status,
		Players:            sess.scoreboard(),
		Round:              sess.round,
		MaxRounds:          sess.maxRounds,
		TurnTime:           sess.turnTime,
		Drawer:             drawer.Username,
		DrawerConnectionID: drawer.ConnectionID,
	}
	if sess.status.IsDrawing() {
		payload.MaskedWord = sess.masked
		payload.WordLength = len([]rune(sess.word))
		if drawer.ConnectionID == connectionID {
			payload.Word = sess.word
		}
	}
	return payload, true
}

package game

import (
	"time"

	"github.com/KirkDiggler/scribble/internal/broadcast"
	"github.com/KirkDiggler/scribble/internal/models"
	"github.com/KirkDiggler/scribble/internal/words"
)

// Every function in this file runs with sess.mu held.

// startTurn offers the drawer three words and arms the auto-pick
func (s *service) startTurn(sess *session) {
	sess.supersede()
	sess.status = models.GameStatusChoosing
	sess.word = ""
	sess.masked = ""
	sess.candidates = s.words.Pick3()

	drawer := sess.drawer()
	s.log.Info().
		Str("room_id", sess.roomID).
		Str("drawer", drawer.Username).
		Int("round", sess.round).
		Msg("turn started")

	s.gateway.ToRoom(sess.roomID, broadcast.NewEvent(broadcast.EventGameChoosing, ChoosingPayload{
		Drawer:             drawer.Username,
		DrawerConnectionID: drawer.ConnectionID,
		Round:              sess.round,
		MaxRounds:          sess.maxRounds,
	}))
	s.gateway.ToConnection(drawer.ConnectionID, broadcast.NewEvent(broadcast.EventGamePickWord, PickWordPayload{
		Words: sess.candidates,
	}))

	s.arm(sess, s.chooseTimeout, s.autoPick)
}

// autoPick falls back to the first candidate when the drawer never chose
func (s *service) autoPick(sess *session) {
	if !sess.status.IsChoosing() || len(sess.candidates) == 0 {
		return
	}
	s.log.Debug().Str("room_id", sess.roomID).Msg("choose timeout, auto-picking")
	s.beginDrawing(sess, sess.candidates[0])
}

// beginDrawing reveals the word to the drawer and starts the countdown
func (s *service) beginDrawing(sess *session, word string) {
	sess.supersede()
	sess.word = word
	sess.masked = words.Mask(word)
	sess.status = models.GameStatusDrawing
	sess.guessed = make(map[*models.Player]struct{})
	sess.turnStartedAt = s.clock.Now()
	sess.remaining = sess.turnTime

	drawer := sess.drawer()
	s.gateway.ToConnection(drawer.ConnectionID, broadcast.NewEvent(broadcast.EventGameYouDraw, YouDrawPayload{
		Word: word,
	}))
	s.gateway.ToRoom(sess.roomID, broadcast.NewEvent(broadcast.EventGameRoundStart, RoundStartPayload{
		MaskedWord:         sess.masked,
		WordLength:         len([]rune(word)),
		Drawer:             drawer.Username,
		DrawerConnectionID: drawer.ConnectionID,
	}))
	s.gateway.ToRoom(sess.roomID, broadcast.NewEvent(broadcast.EventDrawClear, nil))
	s.gateway.ToRoom(sess.roomID, broadcast.NewEvent(broadcast.EventGameTick, TickPayload{
		Remaining: sess.remaining,
	}))

	s.arm(sess, tickInterval, s.tick)
}

// tick counts down one second, dropping hints at the half and quarter marks
func (s *service) tick(sess *session) {
	if !sess.status.IsDrawing() {
		return
	}

	sess.remaining--
	s.gateway.ToRoom(sess.roomID, broadcast.NewEvent(broadcast.EventGameTick, TickPayload{
		Remaining: sess.remaining,
	}))

	if sess.remaining == sess.turnTime/2 || sess.remaining == sess.turnTime/4 {
		sess.masked = s.words.RevealLetter(sess.word, sess.masked)
		s.gateway.ToRoom(sess.roomID, broadcast.NewEvent(broadcast.EventGameHint, HintPayload{
			MaskedWord: sess.masked,
		}))
	}

	if sess.remaining <= 0 {
		s.endTurn(sess)
		return
	}
	s.arm(sess, tickInterval, s.tick)
}

// endTurn reveals the word and schedules the next turn
func (s *service) endTurn(sess *session) {
	sess.supersede()
	sess.status = models.GameStatusTurnEnd

	s.log.Info().
		Str("room_id", sess.roomID).
		Int("round", sess.round).
		Int("guessed", len(sess.guessed)).
		Msg("turn ended")

	s.gateway.ToRoom(sess.roomID, broadcast.NewEvent(broadcast.EventGameTurnEnd, TurnEndPayload{
		Word:    sess.word,
		Players: sess.scoreboard(),
	}))

	s.arm(sess, s.turnEndDelay, s.advance)
}

// advance rotates the drawer and either starts the next turn or ends the game
func (s *service) advance(sess *session) {
	if sess.status != models.GameStatusTurnEnd {
		return
	}

	sess.drawerIndex = (sess.drawerIndex + 1) % len(sess.players)
	if sess.drawerIndex == 0 {
		sess.round++
	}

	if sess.round > sess.maxRounds {
		ranking := sess.ranking()
		s.destroy(sess)
		s.log.Info().Str("room_id", sess.roomID).Str("winner", ranking[0].Username).Msg("game over")
		s.gateway.ToRoom(sess.roomID, broadcast.NewEvent(broadcast.EventGameOver, OverPayload{
			Players: ranking,
		}))
		return
	}

	s.startTurn(sess)
}

// arm schedules next for sess. The callback is dropped if the session was
// destroyed or replaced, or if another transition happened in the meantime.
func (s *service) arm(sess *session, d time.Duration, next func(*session)) {
	generation, seq := sess.generation, sess.turnSeq

	sess.timer = s.clock.AfterFunc(d, func() {
		sess.mu.Lock()
		defer sess.mu.Unlock()

		if !s.current(sess, generation) || sess.turnSeq != seq {
			s.log.Debug().Str("room_id", sess.roomID).Msg("stale timer ignored")
			return
		}
		sess.timer = nil
		next(sess)
	})
}

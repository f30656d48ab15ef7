package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/KirkDiggler/scribble/internal/auth"
	"github.com/KirkDiggler/scribble/internal/common/async"
	"github.com/KirkDiggler/scribble/internal/common/clock"
	"github.com/KirkDiggler/scribble/internal/common/uuid"
	"github.com/KirkDiggler/scribble/internal/config"
	"github.com/KirkDiggler/scribble/internal/handlers/ws"
	"github.com/KirkDiggler/scribble/internal/repositories/chat"
	"github.com/KirkDiggler/scribble/internal/repositories/note"
	roomRepo "github.com/KirkDiggler/scribble/internal/repositories/room"
	"github.com/KirkDiggler/scribble/internal/services/game"
	"github.com/KirkDiggler/scribble/internal/services/presence"
	"github.com/KirkDiggler/scribble/internal/services/room"
	"github.com/KirkDiggler/scribble/internal/words"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	if lvl, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}

	// Initialize Redis client
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       0,
	})
	defer redisClient.Close()

	rooms, err := roomRepo.NewRedis(&roomRepo.Config{RedisClient: redisClient})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create room repository")
	}
	chats, err := chat.NewRedis(&chat.Config{RedisClient: redisClient})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create chat repository")
	}
	notes, err := note.NewRedis(&note.Config{RedisClient: redisClient})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create note repository")
	}

	verifier, err := auth.New(&auth.Config{Secret: cfg.JWTSecret})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create token verifier")
	}

	queue := async.New(&async.Config{
		Workers: cfg.PersistWorkers,
		Size:    cfg.PersistQueueSize,
	})

	systemClock := clock.New()
	ids := uuid.New()
	hub := ws.NewHub()
	presenceSvc := presence.New()

	gameSvc, err := game.New(&game.Config{
		ChooseTimeout: cfg.ChooseTimeout,
		TurnEndDelay:  cfg.TurnEndDelay,
		MaxRounds:     cfg.MaxRounds,
		MaxTurnTime:   cfg.MaxTurnTime,
		Clock:         systemClock,
		Words:         words.New(nil),
		Roster:        presenceSvc,
		Gateway:       hub,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create game service")
	}

	roomSvc, err := room.New(&room.Config{
		Presence: presenceSvc,
		Gateway:  hub,
		Rooms:    rooms,
		Chat:     chats,
		Notes:    notes,
		Queue:    queue,
		Clock:    systemClock,
		UUID:     ids,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create room service")
	}

	server, err := ws.New(&ws.Config{
		Addr:            cfg.Addr(),
		AllowedOrigins:  cfg.AllowedOrigins,
		EventsPerSecond: cfg.EventsPerSecond,
		EventBurst:      cfg.EventBurst,
		Hub:             hub,
		Verifier:        verifier,
		Presence:        presenceSvc,
		Game:            gameSvc,
		Rooms:           roomSvc,
		UUID:            ids,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create server")
	}

	go func() {
		if err := server.Start(); err != nil {
			log.Fatal().Err(err).Msg("server exited")
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	sc := make(chan os.Signal, 1)
	signal.Notify(sc, syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	<-sc

	log.Info().Msg("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("error stopping server")
	}
	gameSvc.Shutdown()
	queue.Close()

	log.Info().Msg("server has been shut down")
}

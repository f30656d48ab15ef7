// Package config loads process settings from the environment and an optional .env file.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// ErrMissingJWTSecret is returned when JWT_SECRET is unset
var ErrMissingJWTSecret = errors.New("JWT_SECRET environment variable is required")

// Config is everything the server needs to start
type Config struct {
	Port     string
	LogLevel string

	RedisAddr     string
	RedisPassword string

	JWTSecret      string
	AllowedOrigins []string

	ChooseTimeout time.Duration
	TurnEndDelay  time.Duration
	MaxRounds     int
	MaxTurnTime   int

	PersistWorkers   int
	PersistQueueSize int

	EventsPerSecond float64
	EventBurst      int
}

// Load reads the given .env files (".env" when none are named) and then the
// environment. Missing files are ignored and real environment variables win.
func Load(files ...string) (*Config, error) {
	_ = godotenv.Load(files...)

	cfg := &Config{
		Port:           getEnv("PORT", "5001"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		RedisAddr:      getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword:  getEnv("REDIS_PASSWORD", ""),
		JWTSecret:      getEnv("JWT_SECRET", ""),
		AllowedOrigins: splitList(getEnv("ALLOWED_ORIGINS", "")),
	}
	if cfg.JWTSecret == "" {
		return nil, ErrMissingJWTSecret
	}

	var err error
	if cfg.ChooseTimeout, err = getDuration("GAME_CHOOSE_TIMEOUT", 15*time.Second); err != nil {
		return nil, err
	}
	if cfg.TurnEndDelay, err = getDuration("GAME_TURN_END_DELAY", 4500*time.Millisecond); err != nil {
		return nil, err
	}
	if cfg.MaxRounds, err = getInt("GAME_MAX_ROUNDS", 10); err != nil {
		return nil, err
	}
	if cfg.MaxTurnTime, err = getInt("GAME_MAX_TURN_TIME", 240); err != nil {
		return nil, err
	}
	if cfg.PersistWorkers, err = getInt("PERSIST_WORKERS", 4); err != nil {
		return nil, err
	}
	if cfg.PersistQueueSize, err = getInt("PERSIST_QUEUE_SIZE", 256); err != nil {
		return nil, err
	}
	if cfg.EventBurst, err = getInt("WS_EVENT_BURST", 40); err != nil {
		return nil, err
	}

	perSecond, err := getInt("WS_EVENTS_PER_SECOND", 20)
	if err != nil {
		return nil, err
	}
	cfg.EventsPerSecond = float64(perSecond)

	return cfg, nil
}

// Addr is the listen address for the HTTP server
func (c *Config) Addr() string {
	return ":" + c.Port
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getInt(key string, defaultValue int) (int, error) {
	value := getEnv(key, "")
	if value == "" {
		return defaultValue, nil
	}

	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}

func getDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	value := getEnv(key, "")
	if value == "" {
		return defaultValue, nil
	}

	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

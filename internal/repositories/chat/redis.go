package chat

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/KirkDiggler/scribble/internal/models"
)

const (
	chatKeyPrefix = "room_chat:"

	// HistoryLimit is how many messages a room keeps
	HistoryLimit = 100
)

// Config holds configuration for the Redis chat repository
type Config struct {
	// Redis client
	RedisClient *redis.Client
}

// redisRepository implements the Repository interface using a capped Redis list
type redisRepository struct {
	client *redis.Client
}

// NewRedis creates a new Redis-backed chat repository
func NewRedis(cfg *Config) (*redisRepository, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if cfg.RedisClient == nil {
		return nil, errors.New("redis client cannot be nil")
	}

	if err := cfg.RedisClient.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &redisRepository{
		client: cfg.RedisClient,
	}, nil
}

// Append adds a message, keeping only the newest HistoryLimit
func (r *redisRepository) Append(ctx context.Context, input *AppendInput) error {
	if input == nil || input.Message == nil {
		return errors.New("input and message cannot be nil")
	}
	if input.RoomID == "" {
		return errors.New("room ID cannot be empty")
	}

	messageJSON, err := json.Marshal(input.Message)
	if err != nil {
		return fmt.Errorf("failed to marshal chat message: %w", err)
	}

	key := chatKey(input.RoomID)
	pipe := r.client.TxPipeline()
	pipe.RPush(ctx, key, messageJSON)
	pipe.LTrim(ctx, key, -HistoryLimit, -1)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to append chat message: %w", err)
	}

	return nil
}

// Recent returns the newest messages, oldest first
func (r *redisRepository) Recent(ctx context.Context, input *RecentInput) (*RecentOutput, error) {
	if input == nil || input.RoomID == "" {
		return nil, errors.New("input and room ID cannot be empty")
	}

	start := int64(0)
	if input.Limit > 0 {
		start = -int64(input.Limit)
	}

	raw, err := r.client.LRange(ctx, chatKey(input.RoomID), start, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get chat history: %w", err)
	}

	messages := make([]*models.ChatMessage, 0, len(raw))
	for _, item := range raw {
		var message models.ChatMessage
		if err := json.Unmarshal([]byte(item), &message); err != nil {
			return nil, fmt.Errorf("failed to unmarshal chat message: %w", err)
		}
		messages = append(messages, &message)
	}

	return &RecentOutput{Messages: messages}, nil
}

// Clear drops a room's whole history
func (r *redisRepository) Clear(ctx context.Context, input *ClearInput) error {
	if input == nil || input.RoomID == "" {
		return errors.New("input and room ID cannot be empty")
	}

	if err := r.client.Del(ctx, chatKey(input.RoomID)).Err(); err != nil {
		return fmt.Errorf("failed to clear chat history: %w", err)
	}

	return nil
}

func chatKey(roomID string) string {
	return fmt.Sprintf("%s%s", chatKeyPrefix, roomID)
}

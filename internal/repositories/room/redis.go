package room

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/redis/go-redis/v9"

	"github.com/KirkDiggler/scribble/internal/models"
)

const (
	// Key prefixes for Redis
	roomKeyPrefix  = "room:"
	codeKeyPrefix  = "room_code:"
	publicRoomsKey = "public_rooms"
	hostKeyPrefix  = "host_rooms:"

	defaultPublicLimit = 50
	defaultHostLimit   = 20

	// maxUpdateAttempts bounds optimistic-lock retries on a contended room
	maxUpdateAttempts = 5
)

var (
	// ErrRoomNotFound is returned when a room is not found
	ErrRoomNotFound = errors.New("room not found")

	// ErrCodeTaken is returned when a room code already belongs to another room
	ErrCodeTaken = errors.New("room code already in use")
)

// Config holds configuration for the Redis room repository
type Config struct {
	// Redis client
	RedisClient *redis.Client
}

// redisRepository implements the Repository interface using Redis
type redisRepository struct {
	client *redis.Client
}

// NewRedis creates a new Redis-backed room repository
func NewRedis(cfg *Config) (*redisRepository, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if cfg.RedisClient == nil {
		return nil, errors.New("redis client cannot be nil")
	}

	// Test connection
	if err := cfg.RedisClient.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &redisRepository{
		client: cfg.RedisClient,
	}, nil
}

// Create stores a new room and indexes its code
func (r *redisRepository) Create(ctx context.Context, input *CreateInput) error {
	if input == nil || input.Room == nil {
		return errors.New("input and room cannot be nil")
	}
	if input.Room.ID == "" || input.Room.Code == "" {
		return errors.New("room ID and code cannot be empty")
	}

	roomJSON, err := json.Marshal(input.Room)
	if err != nil {
		return fmt.Errorf("failed to marshal room: %w", err)
	}

	// Claim the code first so two rooms never share one
	claimed, err := r.client.SetNX(ctx, codeKey(input.Room.Code), input.Room.ID, 0).Result()
	if err != nil {
		return fmt.Errorf("failed to claim room code: %w", err)
	}
	if !claimed {
		return ErrCodeTaken
	}

	pipe := r.client.Pipeline()
	pipe.Set(ctx, roomKey(input.Room.ID), roomJSON, 0)
	indexRoom(ctx, pipe, input.Room)

	if _, err := pipe.Exec(ctx); err != nil {
		// Release the code so it does not point at a room that was never saved
		r.client.Del(ctx, codeKey(input.Room.Code))
		return fmt.Errorf("failed to save room: %w", err)
	}

	return nil
}

// Get retrieves a room by ID
func (r *redisRepository) Get(ctx context.Context, input *GetInput) (*models.Room, error) {
	if input == nil || input.RoomID == "" {
		return nil, errors.New("input and room ID cannot be empty")
	}

	roomJSON, err := r.client.Get(ctx, roomKey(input.RoomID)).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, ErrRoomNotFound
		}
		return nil, fmt.Errorf("failed to get room: %w", err)
	}

	var room models.Room
	if err := json.Unmarshal([]byte(roomJSON), &room); err != nil {
		return nil, fmt.Errorf("failed to unmarshal room: %w", err)
	}

	return &room, nil
}

// GetByCode retrieves a room by its share code, case-insensitively
func (r *redisRepository) GetByCode(ctx context.Context, input *GetByCodeInput) (*models.Room, error) {
	if input == nil || input.Code == "" {
		return nil, errors.New("input and code cannot be empty")
	}

	roomID, err := r.client.Get(ctx, codeKey(input.Code)).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, ErrRoomNotFound
		}
		return nil, fmt.Errorf("failed to get room ID for code: %w", err)
	}

	return r.Get(ctx, &GetInput{RoomID: roomID})
}

// ListPublic returns public rooms, most recently active first
func (r *redisRepository) ListPublic(ctx context.Context, input *ListPublicInput) (*ListPublicOutput, error) {
	limit := defaultPublicLimit
	if input != nil && input.Limit > 0 {
		limit = input.Limit
	}

	rooms, err := r.listIndexed(ctx, publicRoomsKey, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list public rooms: %w", err)
	}

	return &ListPublicOutput{Rooms: rooms}, nil
}

// ListByHost returns the rooms a user created, most recently active first
func (r *redisRepository) ListByHost(ctx context.Context, input *ListByHostInput) (*ListByHostOutput, error) {
	if input == nil || input.HostID == "" {
		return nil, errors.New("input and host ID cannot be empty")
	}

	limit := defaultHostLimit
	if input.Limit > 0 {
		limit = input.Limit
	}

	rooms, err := r.listIndexed(ctx, hostKey(input.HostID), limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list host rooms: %w", err)
	}

	return &ListByHostOutput{Rooms: rooms}, nil
}

// Delete removes a room together with its code and index entries
func (r *redisRepository) Delete(ctx context.Context, input *DeleteInput) error {
	if input == nil || input.RoomID == "" {
		return errors.New("input and room ID cannot be empty")
	}

	room, err := r.Get(ctx, &GetInput{RoomID: input.RoomID})
	if err != nil {
		return err
	}

	pipe := r.client.TxPipeline()
	pipe.Del(ctx, roomKey(room.ID), codeKey(room.Code))
	pipe.ZRem(ctx, publicRoomsKey, room.ID)
	if room.HostID != "" {
		pipe.ZRem(ctx, hostKey(room.HostID), room.ID)
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to delete room: %w", err)
	}

	return nil
}

// listIndexed loads up to limit rooms from a lastActive-scored index, newest first.
// List views never carry the canvas.
func (r *redisRepository) listIndexed(ctx context.Context, indexKey string, limit int) ([]*models.Room, error) {
	roomIDs, err := r.client.ZRevRange(ctx, indexKey, 0, int64(limit-1)).Result()
	if err != nil {
		return nil, err
	}
	if len(roomIDs) == 0 {
		return []*models.Room{}, nil
	}

	keys := make([]string, len(roomIDs))
	for i, id := range roomIDs {
		keys[i] = roomKey(id)
	}

	values, err := r.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, err
	}

	rooms := make([]*models.Room, 0, len(values))
	for _, value := range values {
		// Skip rooms whose document disappeared
		raw, ok := value.(string)
		if !ok {
			continue
		}

		var room models.Room
		if err := json.Unmarshal([]byte(raw), &room); err != nil {
			return nil, fmt.Errorf("failed to unmarshal room: %w", err)
		}
		room.CanvasData = ""
		rooms = append(rooms, &room)
	}

	return rooms, nil
}

// SaveCanvas stores the latest canvas snapshot and bumps lastActive
func (r *redisRepository) SaveCanvas(ctx context.Context, input *SaveCanvasInput) error {
	if input == nil || input.RoomID == "" {
		return errors.New("input and room ID cannot be empty")
	}

	return r.update(ctx, input.RoomID, func(room *models.Room) {
		room.CanvasData = input.CanvasData
		room.LastActive = input.At
	})
}

// UpdateSettings replaces the room settings
func (r *redisRepository) UpdateSettings(ctx context.Context, input *UpdateSettingsInput) error {
	if input == nil || input.RoomID == "" {
		return errors.New("input and room ID cannot be empty")
	}

	return r.update(ctx, input.RoomID, func(room *models.Room) {
		room.Settings = input.Settings
	})
}

// TouchLastActive bumps lastActive
func (r *redisRepository) TouchLastActive(ctx context.Context, input *TouchLastActiveInput) error {
	if input == nil || input.RoomID == "" {
		return errors.New("input and room ID cannot be empty")
	}

	return r.update(ctx, input.RoomID, func(room *models.Room) {
		room.LastActive = input.At
	})
}

// update applies mutate to the stored room under WATCH, retrying when
// another writer changed the document first
func (r *redisRepository) update(ctx context.Context, roomID string, mutate func(room *models.Room)) error {
	key := roomKey(roomID)

	txf := func(tx *redis.Tx) error {
		roomJSON, err := tx.Get(ctx, key).Result()
		if err != nil {
			if err == redis.Nil {
				return ErrRoomNotFound
			}
			return fmt.Errorf("failed to get room: %w", err)
		}

		var room models.Room
		if err := json.Unmarshal([]byte(roomJSON), &room); err != nil {
			return fmt.Errorf("failed to unmarshal room: %w", err)
		}

		mutate(&room)

		updated, err := json.Marshal(&room)
		if err != nil {
			return fmt.Errorf("failed to marshal room: %w", err)
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, updated, 0)
			indexRoom(ctx, pipe, &room)
			return nil
		})
		return err
	}

	for attempt := 0; attempt < maxUpdateAttempts; attempt++ {
		err := r.client.Watch(ctx, txf, key)
		if err == nil {
			return nil
		}
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		if errors.Is(err, ErrRoomNotFound) {
			return err
		}
		return fmt.Errorf("failed to update room: %w", err)
	}

	return fmt.Errorf("failed to update room after %d attempts: %w", maxUpdateAttempts, redis.TxFailedErr)
}

// indexRoom scores the room by lastActive in the public and host indexes
func indexRoom(ctx context.Context, pipe redis.Pipeliner, room *models.Room) {
	score := float64(room.LastActive.UnixMilli())
	if room.IsPublic {
		pipe.ZAdd(ctx, publicRoomsKey, redis.Z{Score: score, Member: room.ID})
	}
	if room.HostID != "" {
		pipe.ZAdd(ctx, hostKey(room.HostID), redis.Z{Score: score, Member: room.ID})
	}
}

func roomKey(roomID string) string {
	return fmt.Sprintf("%s%s", roomKeyPrefix, roomID)
}

func codeKey(code string) string {
	return fmt.Sprintf("%s%s", codeKeyPrefix, strings.ToUpper(code))
}

func hostKey(hostID string) string {
	return fmt.Sprintf("%s%s", hostKeyPrefix, hostID)
}

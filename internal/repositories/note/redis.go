package note

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"github.com/redis/go-redis/v9"

	"github.com/KirkDiggler/scribble/internal/models"
)

const noteKeyPrefix = "room_notes:"

// ErrNoteNotFound is returned when updating a note that does not exist
var ErrNoteNotFound = errors.New("note not found")

// updateIfExists replaces a hash field only when it is already present
var updateIfExists = redis.NewScript(`
if redis.call("HEXISTS", KEYS[1], ARGV[1]) == 1 then
	redis.call("HSET", KEYS[1], ARGV[1], ARGV[2])
	return 1
end
return 0
`)

// Config holds configuration for the Redis note repository
type Config struct {
	// Redis client
	RedisClient *redis.Client
}

// redisRepository keeps each room's notes in one hash keyed by note ID
type redisRepository struct {
	client *redis.Client
}

// NewRedis creates a new Redis-backed note repository
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

// Upsert stores a note, replacing any note with the same ID
func (r *redisRepository) Upsert(ctx context.Context, input *UpsertInput) error {
	if input == nil {
		return errors.New("input cannot be nil")
	}
	noteJSON, err := marshalNote(input.RoomID, input.Note)
	if err != nil {
		return err
	}

	if err := r.client.HSet(ctx, noteKey(input.RoomID), input.Note.ID, noteJSON).Err(); err != nil {
		return fmt.Errorf("failed to save note: %w", err)
	}

	return nil
}

// Update replaces an existing note and fails if it is missing
func (r *redisRepository) Update(ctx context.Context, input *UpdateInput) error {
	if input == nil {
		return errors.New("input cannot be nil")
	}
	noteJSON, err := marshalNote(input.RoomID, input.Note)
	if err != nil {
		return err
	}

	updated, err := updateIfExists.Run(ctx, r.client, []string{noteKey(input.RoomID)}, input.Note.ID, noteJSON).Int()
	if err != nil {
		return fmt.Errorf("failed to update note: %w", err)
	}
	if updated == 0 {
		return ErrNoteNotFound
	}

	return nil
}

// Delete removes a note
func (r *redisRepository) Delete(ctx context.Context, input *DeleteInput) error {
	if input == nil || input.RoomID == "" || input.NoteID == "" {
		return errors.New("input, room ID and note ID cannot be empty")
	}

	if err := r.client.HDel(ctx, noteKey(input.RoomID), input.NoteID).Err(); err != nil {
		return fmt.Errorf("failed to delete note: %w", err)
	}

	return nil
}

// Clear removes every note in a room
func (r *redisRepository) Clear(ctx context.Context, input *ClearInput) error {
	if input == nil || input.RoomID == "" {
		return errors.New("input and room ID cannot be empty")
	}

	if err := r.client.Del(ctx, noteKey(input.RoomID)).Err(); err != nil {
		return fmt.Errorf("failed to clear notes: %w", err)
	}

	return nil
}

// List returns every note in a room ordered by ID
func (r *redisRepository) List(ctx context.Context, input *ListInput) (*ListOutput, error) {
	if input == nil || input.RoomID == "" {
		return nil, errors.New("input and room ID cannot be empty")
	}

	raw, err := r.client.HGetAll(ctx, noteKey(input.RoomID)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list notes: %w", err)
	}

	notes := make([]*models.StickyNote, 0, len(raw))
	for _, item := range raw {
		var note models.StickyNote
		if err := json.Unmarshal([]byte(item), &note); err != nil {
			return nil, fmt.Errorf("failed to unmarshal note: %w", err)
		}
		notes = append(notes, &note)
	}

	// Client note IDs are creation timestamps, so ID order is creation order
	sort.Slice(notes, func(i, j int) bool {
		return notes[i].ID < notes[j].ID
	})

	return &ListOutput{Notes: notes}, nil
}

func marshalNote(roomID string, note *models.StickyNote) ([]byte, error) {
	if note == nil {
		return nil, errors.New("note cannot be nil")
	}
	if roomID == "" || note.ID == "" {
		return nil, errors.New("room ID and note ID cannot be empty")
	}

	noteJSON, err := json.Marshal(note)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal note: %w", err)
	}
	return noteJSON, nil
}

func noteKey(roomID string) string {
	return fmt.Sprintf("%s%s", noteKeyPrefix, roomID)
}

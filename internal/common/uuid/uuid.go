package uuid

import (
	"encoding/hex"
	"strings"

	"github.com/google/uuid"
)

//go:generate mockgen -package=mocks -destination=mocks/mock_uuid.go github.com/KirkDiggler/scribble/internal/common/uuid UUID

type UUID interface {
	NewUUID() string

	// NewCode returns a short shareable room code
	NewCode() string
}

// DefaultUUID implements the UUID interface using the uuid package
type DefaultUUID struct{}

func New() *DefaultUUID {
	return &DefaultUUID{}
}

// NewUUID returns a new UUID
func (d *DefaultUUID) NewUUID() string {
	return uuid.New().String()
}

// NewCode returns six upper-case hex characters taken from a random UUID
func (d *DefaultUUID) NewCode() string {
	id := uuid.New()
	return strings.ToUpper(hex.EncodeToString(id[:3]))
}

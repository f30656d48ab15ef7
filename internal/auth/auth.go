// Package auth verifies the bearer tokens that identify callers.
package auth

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/KirkDiggler/scribble/internal/models"
)

var (
	// ErrMissingToken is returned when a request carries no token
	ErrMissingToken = errors.New("no token provided")

	// ErrInvalidToken is returned for tokens that fail verification
	ErrInvalidToken = errors.New("invalid token")

	// ErrMissingSecret is returned when the signing secret is empty
	ErrMissingSecret = errors.New("jwt secret cannot be empty")
)

// Claims is the token body
type Claims struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Color    string `json:"color,omitempty"`
	jwt.RegisteredClaims
}

// Verifier checks HS256 tokens minted by the account service
type Verifier struct {
	secret []byte
	now    func() time.Time
}

// Config holds configuration for the verifier
type Config struct {
	Secret string

	// Now overrides the clock used for expiry, mostly for tests
	Now func() time.Time
}

// New creates a verifier
func New(cfg *Config) (*Verifier, error) {
	if cfg == nil || cfg.Secret == "" {
		return nil, ErrMissingSecret
	}

	now := cfg.Now
	if now == nil {
		now = time.Now
	}

	return &Verifier{secret: []byte(cfg.Secret), now: now}, nil
}

// Verify checks a token and returns the identity it carries
func (v *Verifier) Verify(tokenString string) (models.Identity, error) {
	if tokenString == "" {
		return models.Identity{}, ErrMissingToken
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return v.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(v.now))
	if err != nil || !token.Valid {
		return models.Identity{}, ErrInvalidToken
	}
	if claims.ID == "" {
		return models.Identity{}, ErrInvalidToken
	}

	return models.Identity{
		UserID:   claims.ID,
		Username: claims.Username,
		Color:    claims.Color,
	}, nil
}

// BearerToken extracts the token from an Authorization header
func BearerToken(r *http.Request) string {
	if a := r.Header.Get("Authorization"); strings.HasPrefix(strings.ToLower(a), "bearer ") {
		return strings.TrimSpace(a[7:])
	}
	return ""
}

type contextKey struct{}

// WithIdentity stores a verified identity on ctx
func WithIdentity(ctx context.Context, identity models.Identity) context.Context {
	return context.WithValue(ctx, contextKey{}, identity)
}

// FromContext returns the identity stored by Require
func FromContext(ctx context.Context) (models.Identity, bool) {
	identity, ok := ctx.Value(contextKey{}).(models.Identity)
	return identity, ok
}

// TokenVerifier turns a bearer token into an identity
type TokenVerifier interface {
	Verify(token string) (models.Identity, error)
}

// Require rejects requests without a valid bearer token and stores the
// identity on the request context
func Require(v TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity, err := v.Verify(BearerToken(r))
			if err != nil {
				w.Header().Set("Content-Type", "application/json; charset=utf-8")
				w.WriteHeader(http.StatusUnauthorized)
				_, _ = w.Write([]byte(`{"message":"` + err.Error() + `"}`))
				return
			}
			next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), identity)))
		})
	}
}

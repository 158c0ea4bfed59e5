// Package session keeps browser sessions for the web front: the backend's
// bearer token, the signed-in user, and who is listening for changes.
package session

import (
	"context"
	"errors"
	"time"

	"github.com/nethal17/Ramanayake-Travels-sub001/internal/models"
)

var (
	// ErrNotFound is returned for unknown and expired sessions alike.
	ErrNotFound = errors.New("session: not found")
	// ErrTokenExpired rejects a login whose token is already past its exp claim.
	ErrTokenExpired = errors.New("session: token expired")
)

// Session is one signed-in browser.
type Session struct {
	ID        string
	Token     string
	User      models.User
	CreatedAt time.Time
	ExpiresAt time.Time
}

// Authenticated reports whether the session carries a token.
func (s *Session) Authenticated() bool {
	return s != nil && s.Token != ""
}

// AuthHeaders returns the Authorization header for backend calls, or an
// empty map when there is no token.
func (s *Session) AuthHeaders() map[string]string {
	if !s.Authenticated() {
		return map[string]string{}
	}
	return map[string]string{"Authorization": "Bearer " + s.Token}
}

// Expired reports whether the session is past its expiry at now.
func (s *Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && !now.Before(s.ExpiresAt)
}

// Store persists sessions.
type Store interface {
	Save(ctx context.Context, s *Session) error
	Get(ctx context.Context, id string) (*Session, error)
	Delete(ctx context.Context, id string) error
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}

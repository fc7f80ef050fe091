package session

import (
	"errors"
	"time"
)

var ErrSessionNotFound = errors.New("session not found")

// Session associates an opaque client-held token with a user.
type Session struct {
	Token     string
	UserID    string
	CreatedAt time.Time
	ExpiresAt time.Time
}

func (s *Session) Expired(now time.Time) bool {
	return now.After(s.ExpiresAt)
}

// Store is the server-side session collaborator. The cookie carries only the
// token; everything else stays behind this interface.
type Store interface {
	Create(userID string, ttl time.Duration) (*Session, error)
	Get(token string) (*Session, error)
	Delete(token string) error
	DeleteByUser(userID string) error
}

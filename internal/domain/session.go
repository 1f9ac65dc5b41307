package domain

import (
	"errors"
	"time"
)

// ErrInvalidSession возвращается при попытке создать сессию без координатора
var ErrInvalidSession = errors.New("session: coordinator id must be positive")

// Session is the explicit authentication context of a request.
// It is created once per request by the auth middleware and passed down
// to handlers; nothing reads coordinator identity from global state.
type Session struct {
	CoordinatorID int64
	RequestID     string
	StartedAt     time.Time
	closed        bool
}

// NewSession initialises a session for an authenticated coordinator
func NewSession(coordinatorID int64, requestID string, now time.Time) (*Session, error) {
	if coordinatorID <= 0 {
		return nil, ErrInvalidSession
	}
	return &Session{
		CoordinatorID: coordinatorID,
		RequestID:     requestID,
		StartedAt:     now,
	}, nil
}

// Close tears the session down; a closed session no longer authorises anything
func (s *Session) Close() {
	if s != nil {
		s.closed = true
	}
}

// IsActive returns true until Close is called
func (s *Session) IsActive() bool {
	return s != nil && !s.closed
}

// Owns returns true if the session coordinator owns the given resource
func (s *Session) Owns(ownerID int64) bool {
	return s.IsActive() && s.CoordinatorID == ownerID
}

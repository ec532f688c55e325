// Package session models the scorer's signed-in session.
//
// A Session is a plain value held by the application; nothing is read
// from ambient storage. Expiry is a pure function of the current time and
// the session's expiry, evaluated whenever the session is used.
package session

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// DefaultTTL is how long a session stays valid after sign-in.
const DefaultTTL = 24 * time.Hour

// ErrExpired is returned by Check when the session has lapsed.
var ErrExpired = errors.New("session expired")

// Session is one scorer's sign-in.
type Session struct {
	ID        string    `json:"id"`
	User      string    `json:"user"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// New starts a session for user at now. A non-positive ttl uses DefaultTTL.
func New(user string, now time.Time, ttl time.Duration) (Session, error) {
	user = strings.TrimSpace(user)
	if user == "" {
		return Session{}, fmt.Errorf("session user is required")
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return Session{
		ID:        uuid.Must(uuid.NewV7()).String(),
		User:      user,
		CreatedAt: now,
		ExpiresAt: now.Add(ttl),
	}, nil
}

// Expired reports whether a session expiring at expiry has lapsed at now.
// A session is valid up to, but not including, its expiry instant.
func Expired(now, expiry time.Time) bool {
	return !now.Before(expiry)
}

// Valid reports whether s is usable at now.
func (s Session) Valid(now time.Time) bool {
	return s.ID != "" && !Expired(now, s.ExpiresAt)
}

// Check returns ErrExpired (wrapped with the user) when s is not valid at now.
func (s Session) Check(now time.Time) error {
	if !s.Valid(now) {
		return fmt.Errorf("%w for %q", ErrExpired, s.User)
	}
	return nil
}

// Remaining is the time left at now, floored at zero.
func (s Session) Remaining(now time.Time) time.Duration {
	if d := s.ExpiresAt.Sub(now); d > 0 {
		return d
	}
	return 0
}

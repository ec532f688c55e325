package session

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var t0 = time.Date(2026, 10, 18, 9, 0, 0, 0, time.UTC)

func TestNew_DefaultTTL(t *testing.T) {
	s, err := New("  umpire ", t0, 0)
	require.NoError(t, err)

	assert.Equal(t, "umpire", s.User)
	assert.Equal(t, t0, s.CreatedAt)
	assert.Equal(t, t0.Add(24*time.Hour), s.ExpiresAt)
	assert.Len(t, s.ID, 36)
}

func TestNew_RequiresUser(t *testing.T) {
	_, err := New(" ", t0, time.Hour)
	assert.Error(t, err)
}

func TestExpired(t *testing.T) {
	expiry := t0.Add(time.Hour)

	assert.False(t, Expired(t0, expiry))
	assert.False(t, Expired(expiry.Add(-time.Nanosecond), expiry))
	assert.True(t, Expired(expiry, expiry))
	assert.True(t, Expired(expiry.Add(time.Minute), expiry))
}

func TestSession_Check(t *testing.T) {
	s, err := New("scorer", t0, time.Hour)
	require.NoError(t, err)

	assert.NoError(t, s.Check(t0.Add(59*time.Minute)))

	err = s.Check(t0.Add(2 * time.Hour))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrExpired))
	assert.Contains(t, err.Error(), `"scorer"`)

	assert.False(t, Session{}.Valid(t0), "zero session is never valid")
}

func TestSession_Remaining(t *testing.T) {
	s, _ := New("scorer", t0, time.Hour)
	assert.Equal(t, 30*time.Minute, s.Remaining(t0.Add(30*time.Minute)))
	assert.Zero(t, s.Remaining(t0.Add(3*time.Hour)))
}

// Package session owns running Quick Skirmish games for network front-ends.
// Each session holds one engine behind a mutex; the Manager maps session IDs
// to sessions, expires idle ones and reports finished matches.
package session

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/vovakirdan/quick-skirmish/internal/games/skirmish"
)

// ErrNotFound is returned for unknown or expired session IDs.
var ErrNotFound = errors.New("session: not found")

// ID uniquely identifies a session.
type ID string

// NewID returns a random session ID.
func NewID() ID {
	return ID(uuid.NewString())
}

// ParseID validates a session ID received from a client.
func ParseID(s string) (ID, error) {
	u, err := uuid.Parse(s)
	if err != nil {
		return "", ErrNotFound
	}
	return ID(u.String()), nil
}

// MatchResult is reported once per finished game.
type MatchResult struct {
	SessionID  ID
	Player     string
	Difficulty string
	Result     skirmish.Result
	Duration   time.Duration
}

// MatchResultSaver persists finished matches. The storage package implements it.
type MatchResultSaver interface {
	SaveMatchResult(result MatchResult) error
}

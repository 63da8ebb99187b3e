package session

import (
	"sync"
	"time"

	"github.com/vovakirdan/quick-skirmish/internal/config"
	"github.com/vovakirdan/quick-skirmish/internal/games/skirmish"
	"github.com/vovakirdan/quick-skirmish/internal/games/skirmish/engine"
)

// Session is one player's game. All access to the engine goes through
// Manager.Do, which holds the session lock.
type Session struct {
	id         ID
	player     string
	difficulty config.DifficultyPreset

	mu        sync.Mutex
	eng       *engine.Engine
	startedAt time.Time
	lastSeen  time.Time
	reported  bool
}

// ID returns the session identifier.
func (s *Session) ID() ID {
	return s.id
}

// Player returns the name the session was created for.
func (s *Session) Player() string {
	return s.player
}

// Difficulty returns the preset the session plays with.
func (s *Session) Difficulty() config.DifficultyPreset {
	return s.difficulty
}

// LastSeen returns when the session was last used.
func (s *Session) LastSeen() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastSeen
}

// result builds the match report. Caller holds s.mu.
func (s *Session) result(now time.Time) MatchResult {
	return MatchResult{
		SessionID:  s.id,
		Player:     s.player,
		Difficulty: string(s.difficulty),
		Result:     skirmish.ResultOf(s.eng),
		Duration:   now.Sub(s.startedAt),
	}
}

package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/quick-skirmish/internal/config"
	"github.com/vovakirdan/quick-skirmish/internal/games/skirmish"
	"github.com/vovakirdan/quick-skirmish/internal/games/skirmish/engine"
)

// Default manager settings.
const (
	DefaultTTL           = 30 * time.Minute
	DefaultCleanupPeriod = time.Minute
	DefaultMaxSessions   = 1000
)

// ErrTooManySessions is returned by Create when the manager is full.
var ErrTooManySessions = errors.New("session: too many sessions")

// Options configures a Manager.
type Options struct {
	Config        config.SkirmishConfig // base game configuration
	TTL           time.Duration         // idle time before a session is dropped
	CleanupPeriod time.Duration
	MaxSessions   int
	Saver         MatchResultSaver // optional
	Logger        *log.Logger      // optional

	now  func() time.Time
	seed func() int64
}

// Manager owns all live sessions.
type Manager struct {
	opts Options
	log  *log.Logger

	mu       sync.RWMutex
	sessions map[ID]*Session

	done     chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
}

// NewManager creates a session manager. Zero option values use defaults.
func NewManager(opts Options) *Manager {
	if opts.TTL <= 0 {
		opts.TTL = DefaultTTL
	}
	if opts.CleanupPeriod <= 0 {
		opts.CleanupPeriod = DefaultCleanupPeriod
	}
	if opts.MaxSessions <= 0 {
		opts.MaxSessions = DefaultMaxSessions
	}
	if opts.Config.Board.Size == 0 {
		opts.Config = config.DefaultSkirmishConfig()
	}
	if opts.now == nil {
		opts.now = time.Now
	}
	if opts.seed == nil {
		opts.seed = func() int64 { return time.Now().UnixNano() }
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}

	return &Manager{
		opts:     opts,
		log:      logger,
		sessions: make(map[ID]*Session),
		done:     make(chan struct{}),
	}
}

// Create starts a new game for player with the given difficulty.
func (m *Manager) Create(player string, preset config.DifficultyPreset) (*Session, error) {
	if preset == "" {
		preset = config.DifficultyNormal
	}
	cfg := m.opts.Config
	config.ApplySkirmishPreset(&cfg, preset)
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("session: cannot create game: %w", err)
	}

	eng, err := skirmish.NewEngine(cfg, m.opts.seed())
	if err != nil {
		return nil, fmt.Errorf("session: cannot create game: %w", err)
	}

	now := m.opts.now()
	s := &Session{
		id:         NewID(),
		player:     player,
		difficulty: preset,
		eng:        eng,
		startedAt:  now,
		lastSeen:   now,
	}

	m.mu.Lock()
	if len(m.sessions) >= m.opts.MaxSessions {
		m.mu.Unlock()
		return nil, ErrTooManySessions
	}
	m.sessions[s.id] = s
	m.mu.Unlock()

	m.log.Info("session created", "session", s.id, "player", player, "difficulty", preset)
	return s, nil
}

// Get returns a session by ID.
func (m *Manager) Get(id ID) (*Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	s, ok := m.sessions[id]
	if !ok {
		return nil, ErrNotFound
	}
	return s, nil
}

// Delete removes a session.
func (m *Manager) Delete(id ID) error {
	m.mu.Lock()
	_, ok := m.sessions[id]
	delete(m.sessions, id)
	m.mu.Unlock()

	if !ok {
		return ErrNotFound
	}
	m.log.Info("session deleted", "session", id)
	return nil
}

// Count returns the number of live sessions.
func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// Do runs fn with exclusive access to the session's engine. When the game
// has ended after fn returns, the result is reported once.
func (m *Manager) Do(id ID, fn func(e *engine.Engine)) error {
	s, err := m.Get(id)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	fn(s.eng)
	now := m.opts.now()
	s.lastSeen = now

	if s.eng.GameOver() && !s.reported {
		s.reported = true
		m.report(s.result(now))
	}
	return nil
}

// Reset starts a fresh game in an existing session.
func (m *Manager) Reset(id ID) error {
	s, err := m.Get(id)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.eng.Reset()
	now := m.opts.now()
	s.startedAt = now
	s.lastSeen = now
	s.reported = false
	return nil
}

func (m *Manager) report(r MatchResult) {
	m.log.Info("match finished",
		"session", r.SessionID,
		"player", r.Player,
		"winner", r.Result.Winner,
		"rounds", r.Result.Rounds,
		"score", r.Result.Score,
	)
	if m.opts.Saver == nil {
		return
	}
	if err := m.opts.Saver.SaveMatchResult(r); err != nil {
		m.log.Error("cannot save match result", "session", r.SessionID, "err", err)
	}
}

// Start runs the expiry loop until ctx is cancelled or Stop is called.
func (m *Manager) Start(ctx context.Context) {
	m.wg.Add(1)
	go func() {
		defer m.wg.Done()
		ticker := time.NewTicker(m.opts.CleanupPeriod)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				m.expire()
			case <-ctx.Done():
				return
			case <-m.done:
				return
			}
		}
	}()
}

// Stop ends the expiry loop and waits for it to exit. Safe to call more than once.
func (m *Manager) Stop() {
	m.stopOnce.Do(func() {
		close(m.done)
	})
	m.wg.Wait()
}

// expire drops sessions idle for longer than the TTL.
func (m *Manager) expire() int {
	cutoff := m.opts.now().Add(-m.opts.TTL)

	m.mu.Lock()
	var expired []ID
	for id, s := range m.sessions {
		if s.LastSeen().Before(cutoff) {
			expired = append(expired, id)
			delete(m.sessions, id)
		}
	}
	m.mu.Unlock()

	for _, id := range expired {
		m.log.Debug("session expired", "session", id)
	}
	return len(expired)
}

package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/vovakirdan/quick-skirmish/internal/session"
)

// MatchRecord is one finished Quick Skirmish match.
type MatchRecord struct {
	ID            int64
	MatchID       string
	Player        string
	Difficulty    string
	Winner        string // "blue", "red" or "none"
	Rounds        int
	MaxTurns      int
	BlueSurvivors int
	RedSurvivors  int
	EndReason     string // "elimination" or "turn_limit"
	Score         int
	Duration      int // Duration in seconds
	CreatedAt     time.Time
}

// MatchStats contains aggregated match statistics.
type MatchStats struct {
	Played    int
	BlueWins  int
	RedWins   int
	Draws     int
	AvgRounds float64
	BestScore int
}

// NewMatchRecord converts a session report into a record.
func NewMatchRecord(r session.MatchResult) MatchRecord {
	return MatchRecord{
		MatchID:       string(r.SessionID),
		Player:        r.Player,
		Difficulty:    r.Difficulty,
		Winner:        r.Result.Winner.String(),
		Rounds:        r.Result.Rounds,
		MaxTurns:      r.Result.MaxTurns,
		BlueSurvivors: r.Result.BlueSurvivors,
		RedSurvivors:  r.Result.RedSurvivors,
		EndReason:     r.Result.Reason,
		Score:         r.Result.Score,
		Duration:      int(r.Duration / time.Second),
	}
}

const matchColumns = `id, match_id, player, difficulty, winner, rounds, max_turns,
	blue_survivors, red_survivors, end_reason, score, duration_secs, created_at`

// SaveMatch records a finished match.
// Returns the ID of the inserted record.
func (s *Store) SaveMatch(m MatchRecord) (int64, error) {
	if m.Difficulty == "" {
		m.Difficulty = "normal"
	}
	res, err := s.db.Exec(
		`INSERT INTO skirmish_matches
		 (match_id, player, difficulty, winner, rounds, max_turns,
		  blue_survivors, red_survivors, end_reason, score, duration_secs)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		m.MatchID,
		m.Player,
		m.Difficulty,
		m.Winner,
		m.Rounds,
		m.MaxTurns,
		m.BlueSurvivors,
		m.RedSurvivors,
		m.EndReason,
		m.Score,
		m.Duration,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save match: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

// MatchByID retrieves a match by its match ID. Returns nil if none exists.
func (s *Store) MatchByID(matchID string) (*MatchRecord, error) {
	row := s.db.QueryRow(
		`SELECT `+matchColumns+`
		 FROM skirmish_matches
		 WHERE match_id = ?`,
		matchID,
	)

	m, err := scanMatch(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query match: %w", err)
	}
	return &m, nil
}

// RecentMatches retrieves the most recent matches.
func (s *Store) RecentMatches(limit int) ([]MatchRecord, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT `+matchColumns+`
		 FROM skirmish_matches
		 ORDER BY created_at DESC, id DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query matches: %w", err)
	}
	return collectMatches(rows)
}

// PlayerMatches retrieves match history for one player.
func (s *Store) PlayerMatches(player string, limit int) ([]MatchRecord, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT `+matchColumns+`
		 FROM skirmish_matches
		 WHERE player = ?
		 ORDER BY created_at DESC, id DESC
		 LIMIT ?`,
		player, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query player matches: %w", err)
	}
	return collectMatches(rows)
}

// MatchStats aggregates all recorded matches.
func (s *Store) MatchStats() (*MatchStats, error) {
	var stats MatchStats
	err := s.db.QueryRow(
		`SELECT COUNT(*),
		        COALESCE(SUM(winner = 'blue'), 0),
		        COALESCE(SUM(winner = 'red'), 0),
		        COALESCE(SUM(winner = 'none'), 0),
		        COALESCE(AVG(rounds), 0),
		        COALESCE(MAX(score), 0)
		 FROM skirmish_matches`,
	).Scan(&stats.Played, &stats.BlueWins, &stats.RedWins, &stats.Draws, &stats.AvgRounds, &stats.BestScore)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get match stats: %w", err)
	}
	return &stats, nil
}

// SaveMatchResult implements session.MatchResultSaver.
func (s *Store) SaveMatchResult(r session.MatchResult) error {
	_, err := s.SaveMatch(NewMatchRecord(r))
	return err
}

// Ensure Store implements MatchResultSaver
var _ session.MatchResultSaver = (*Store)(nil)

type rowScanner interface {
	Scan(dest ...any) error
}

func scanMatch(row rowScanner) (MatchRecord, error) {
	var m MatchRecord
	var createdAt any
	err := row.Scan(
		&m.ID,
		&m.MatchID,
		&m.Player,
		&m.Difficulty,
		&m.Winner,
		&m.Rounds,
		&m.MaxTurns,
		&m.BlueSurvivors,
		&m.RedSurvivors,
		&m.EndReason,
		&m.Score,
		&m.Duration,
		&createdAt,
	)
	if err != nil {
		return MatchRecord{}, err
	}
	m.CreatedAt = parseTime(createdAt)
	return m, nil
}

func collectMatches(rows *sql.Rows) ([]MatchRecord, error) {
	defer rows.Close()

	var out []MatchRecord
	for rows.Next() {
		m, err := scanMatch(rows)
		if err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		out = append(out, m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return out, nil
}

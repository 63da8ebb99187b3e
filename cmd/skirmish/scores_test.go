package main

import (
	"bytes"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/vovakirdan/quick-skirmish/internal/games/skirmish"
	"github.com/vovakirdan/quick-skirmish/internal/storage"
)

func openScoresStore(t *testing.T) *storage.Store {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	if _, err := store.SaveScore(skirmish.GameID, "alice", 850); err != nil {
		t.Fatalf("SaveScore() failed: %v", err)
	}
	if _, err := store.SaveMatch(storage.MatchRecord{
		MatchID:       "match-1",
		Player:        "alice",
		Difficulty:    "hard",
		Winner:        "blue",
		Rounds:        5,
		MaxTurns:      8,
		BlueSurvivors: 2,
		RedSurvivors:  0,
		EndReason:     skirmish.ReasonElimination,
		Score:         850,
		Duration:      42,
	}); err != nil {
		t.Fatalf("SaveMatch() failed: %v", err)
	}
	return store
}

func TestPrintScores(t *testing.T) {
	store := openScoresStore(t)

	var buf bytes.Buffer
	if err := printScores(&buf, store, skirmish.GameID); err != nil {
		t.Fatalf("printScores() error = %v", err)
	}
	out := buf.String()
	for _, want := range []string{"High Scores - skirmish", "alice", "Best: 850", "Matches: 1", "match-1"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q\n%s", want, out)
		}
	}
}

func TestPrintMatch(t *testing.T) {
	store := openScoresStore(t)

	var buf bytes.Buffer
	if err := printMatch(&buf, store, "match-1"); err != nil {
		t.Fatalf("printMatch() error = %v", err)
	}
	for _, want := range []string{"Match match-1", "hard", "blue (elimination)", "5/8", "42s"} {
		if !strings.Contains(buf.String(), want) {
			t.Errorf("output missing %q\n%s", want, buf.String())
		}
	}

	err := printMatch(&buf, store, "missing")
	if !errors.Is(err, errMatchNotFound) {
		t.Errorf("printMatch(missing) error = %v, want errMatchNotFound", err)
	}
}

func TestClearScores(t *testing.T) {
	store := openScoresStore(t)

	var buf bytes.Buffer
	if err := clearScores(&buf, store, skirmish.GameID); err != nil {
		t.Fatalf("clearScores() error = %v", err)
	}
	scores, err := store.TopScores(skirmish.GameID, 10)
	if err != nil {
		t.Fatalf("TopScores() error = %v", err)
	}
	if len(scores) != 0 {
		t.Errorf("scores after clear = %d, want 0", len(scores))
	}

	// Match history is kept.
	if m, err := store.MatchByID("match-1"); err != nil || m == nil {
		t.Errorf("MatchByID after clear = %v, %v; want the match", m, err)
	}
}

package storage

import (
	"testing"
	"time"

	"github.com/vovakirdan/quick-skirmish/internal/games/skirmish"
	"github.com/vovakirdan/quick-skirmish/internal/games/skirmish/engine"
	"github.com/vovakirdan/quick-skirmish/internal/session"
)

func TestSaveMatchResult(t *testing.T) {
	store := openTestStore(t)

	id := session.NewID()
	err := store.SaveMatchResult(session.MatchResult{
		SessionID:  id,
		Player:     "alice",
		Difficulty: "hard",
		Result: skirmish.Result{
			Winner:        engine.WinnerBlue,
			Rounds:        6,
			MaxTurns:      8,
			BlueSurvivors: 2,
			RedSurvivors:  0,
			Reason:        skirmish.ReasonElimination,
			Score:         1030,
		},
		Duration: 95 * time.Second,
	})
	if err != nil {
		t.Fatalf("SaveMatchResult() failed: %v", err)
	}

	m, err := store.MatchByID(string(id))
	if err != nil {
		t.Fatalf("MatchByID() failed: %v", err)
	}
	if m == nil {
		t.Fatal("MatchByID() returned nil")
	}

	want := MatchRecord{
		ID:            m.ID,
		MatchID:       string(id),
		Player:        "alice",
		Difficulty:    "hard",
		Winner:        "blue",
		Rounds:        6,
		MaxTurns:      8,
		BlueSurvivors: 2,
		RedSurvivors:  0,
		EndReason:     "elimination",
		Score:         1030,
		Duration:      95,
		CreatedAt:     m.CreatedAt,
	}
	if *m != want {
		t.Errorf("MatchByID() = %+v, want %+v", *m, want)
	}
	if m.CreatedAt.IsZero() {
		t.Error("CreatedAt is zero")
	}
}

func TestMatchByIDMissing(t *testing.T) {
	store := openTestStore(t)

	m, err := store.MatchByID("nope")
	if err != nil {
		t.Fatalf("MatchByID() failed: %v", err)
	}
	if m != nil {
		t.Errorf("MatchByID() = %+v, want nil", m)
	}
}

func TestSaveMatchDuplicateID(t *testing.T) {
	store := openTestStore(t)

	rec := MatchRecord{MatchID: "same", Winner: "none", EndReason: "turn_limit"}
	if _, err := store.SaveMatch(rec); err != nil {
		t.Fatalf("SaveMatch() failed: %v", err)
	}
	if _, err := store.SaveMatch(rec); err == nil {
		t.Error("second SaveMatch() with the same match ID succeeded")
	}
}

func TestSaveMatchDefaultsDifficulty(t *testing.T) {
	store := openTestStore(t)

	if _, err := store.SaveMatch(MatchRecord{MatchID: "m", Winner: "red", EndReason: "elimination"}); err != nil {
		t.Fatalf("SaveMatch() failed: %v", err)
	}
	m, _ := store.MatchByID("m")
	if m == nil || m.Difficulty != "normal" {
		t.Errorf("Difficulty = %+v, want normal", m)
	}
}

func seedMatches(t *testing.T, store *Store) {
	t.Helper()
	records := []MatchRecord{
		{MatchID: "m1", Player: "alice", Winner: "blue", Rounds: 4, EndReason: "elimination", Score: 900},
		{MatchID: "m2", Player: "bob", Winner: "red", Rounds: 6, EndReason: "elimination", Score: 0},
		{MatchID: "m3", Player: "alice", Winner: "none", Rounds: 10, EndReason: "turn_limit", Score: 240},
		{MatchID: "m4", Player: "alice", Winner: "blue", Rounds: 8, EndReason: "elimination", Score: 760},
	}
	for _, r := range records {
		if _, err := store.SaveMatch(r); err != nil {
			t.Fatalf("SaveMatch(%s) failed: %v", r.MatchID, err)
		}
	}
}

func TestRecentMatches(t *testing.T) {
	store := openTestStore(t)
	seedMatches(t, store)

	matches, err := store.RecentMatches(3)
	if err != nil {
		t.Fatalf("RecentMatches() failed: %v", err)
	}

	want := []string{"m4", "m3", "m2"}
	if len(matches) != len(want) {
		t.Fatalf("len(RecentMatches()) = %d, want %d", len(matches), len(want))
	}
	for i, id := range want {
		if matches[i].MatchID != id {
			t.Errorf("matches[%d] = %s, want %s", i, matches[i].MatchID, id)
		}
	}
}

func TestPlayerMatches(t *testing.T) {
	store := openTestStore(t)
	seedMatches(t, store)

	matches, err := store.PlayerMatches("alice", 0)
	if err != nil {
		t.Fatalf("PlayerMatches() failed: %v", err)
	}

	want := []string{"m4", "m3", "m1"}
	if len(matches) != len(want) {
		t.Fatalf("len(PlayerMatches()) = %d, want %d", len(matches), len(want))
	}
	for i, id := range want {
		if matches[i].MatchID != id {
			t.Errorf("matches[%d] = %s, want %s", i, matches[i].MatchID, id)
		}
	}

	none, err := store.PlayerMatches("nobody", 10)
	if err != nil {
		t.Fatalf("PlayerMatches() failed: %v", err)
	}
	if len(none) != 0 {
		t.Errorf("len(PlayerMatches(nobody)) = %d, want 0", len(none))
	}
}

func TestMatchStats(t *testing.T) {
	store := openTestStore(t)

	empty, err := store.MatchStats()
	if err != nil {
		t.Fatalf("MatchStats() failed: %v", err)
	}
	if *empty != (MatchStats{}) {
		t.Errorf("MatchStats() on empty store = %+v, want zero", *empty)
	}

	seedMatches(t, store)
	stats, err := store.MatchStats()
	if err != nil {
		t.Fatalf("MatchStats() failed: %v", err)
	}

	want := MatchStats{
		Played:    4,
		BlueWins:  2,
		RedWins:   1,
		Draws:     1,
		AvgRounds: 7,
		BestScore: 900,
	}
	if *stats != want {
		t.Errorf("MatchStats() = %+v, want %+v", *stats, want)
	}
}

package tui

import (
	"time"

	"github.com/google/uuid"

	"github.com/vovakirdan/quick-skirmish/internal/config"
	"github.com/vovakirdan/quick-skirmish/internal/core"
	"github.com/vovakirdan/quick-skirmish/internal/games/skirmish"
	"github.com/vovakirdan/quick-skirmish/internal/registry"
	"github.com/vovakirdan/quick-skirmish/internal/storage"
)

// matchReporter is implemented by games that produce match records.
type matchReporter interface {
	Result() skirmish.Result
	Difficulty() config.DifficultyPreset
}

// resultRecorder saves the outcome of a game exactly once.
type resultRecorder struct {
	store     *storage.Store
	player    string
	startedAt time.Time
	saved     bool
}

func newResultRecorder(store *storage.Store, player string) resultRecorder {
	return resultRecorder{store: store, player: player, startedAt: time.Now()}
}

// restart prepares the recorder for a new game.
func (r *resultRecorder) restart() {
	r.startedAt = time.Now()
	r.saved = false
}

// record saves the score and, for match games, the match record once the
// game is over. Saving is best-effort.
func (r *resultRecorder) record(game registry.Game, state core.GameState) {
	if !state.GameOver || r.saved {
		return
	}
	r.saved = true
	if r.store == nil {
		return
	}

	if state.Score > 0 {
		//nolint:errcheck // Best-effort save, game continues regardless
		r.store.SaveScore(game.ID(), r.player, state.Score)
	}

	mr, ok := game.(matchReporter)
	if !ok {
		return
	}
	res := mr.Result()
	//nolint:errcheck // Best-effort save
	r.store.SaveMatch(storage.MatchRecord{
		MatchID:       uuid.NewString(),
		Player:        r.player,
		Difficulty:    string(mr.Difficulty()),
		Winner:        res.Winner.String(),
		Rounds:        res.Rounds,
		MaxTurns:      res.MaxTurns,
		BlueSurvivors: res.BlueSurvivors,
		RedSurvivors:  res.RedSurvivors,
		EndReason:     res.Reason,
		Score:         res.Score,
		Duration:      int(time.Since(r.startedAt) / time.Second),
	})
}

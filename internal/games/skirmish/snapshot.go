package skirmish

import "github.com/vovakirdan/quick-skirmish/internal/games/skirmish/engine"

// Snapshot captures the complete game state for determinism testing.
type Snapshot struct {
	Tick     uint64
	Cursor   engine.Position
	Selected engine.Position
	HasSel   bool
	Score    int
	State    engine.GameState
	Events   []engine.Event
}

// Snapshot returns the current game snapshot.
func (g *Game) Snapshot() Snapshot {
	return Snapshot{
		Tick:     g.tick,
		Cursor:   g.cursor,
		Selected: g.selected,
		HasSel:   g.hasSel,
		Score:    Score(g.eng),
		State:    g.eng.State(),
		Events:   g.eng.Events(),
	}
}

// Package skirmish adapts the Quick Skirmish engine to the platform's Game
// interface: a cursor and selection on top of the engine commands, scoring
// and terminal rendering.
package skirmish

import (
	"github.com/vovakirdan/quick-skirmish/internal/config"
	"github.com/vovakirdan/quick-skirmish/internal/core"
	"github.com/vovakirdan/quick-skirmish/internal/games/skirmish/engine"
	"github.com/vovakirdan/quick-skirmish/internal/registry"
)

// GameID is the registry ID of Quick Skirmish.
const GameID = "skirmish"

var (
	configPath       string
	difficultyPreset config.DifficultyPreset
)

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the preset used by games without their own.
// Unknown names fall back to the configured rules.
func SetDifficultyPreset(preset string) {
	p, err := config.ParseDifficulty(preset)
	if err != nil {
		p = config.DifficultyNormal
	}
	difficultyPreset = p
}

// Game implements registry.Game for Quick Skirmish.
type Game struct {
	eng        *engine.Engine
	cfg        config.SkirmishConfig
	difficulty config.DifficultyPreset // overrides the package preset when set
	runtime    core.RuntimeConfig

	cursor     engine.Position
	selected   engine.Position
	hasSel     bool
	highlights engine.Actions

	tick     uint64
	tooSmall bool
}

func init() {
	registry.Register(GameID, func() registry.Game {
		return New()
	})
}

// New creates a Quick Skirmish game. Call Reset before use.
func New() *Game {
	return &Game{}
}

// SetDifficulty sets a per-game preset, used by SSH sessions where several
// players pick different difficulties in one process.
func (g *Game) SetDifficulty(preset config.DifficultyPreset) {
	g.difficulty = preset
}

// Difficulty returns the preset the current game was started with.
func (g *Game) Difficulty() config.DifficultyPreset {
	if g.difficulty != "" {
		return g.difficulty
	}
	if difficultyPreset != "" {
		return difficultyPreset
	}
	return config.DifficultyNormal
}

func (g *Game) ID() string {
	return GameID
}

func (g *Game) Title() string {
	return "Quick Skirmish"
}

// Controls returns the key help line.
func (g *Game) Controls() string {
	return "Arrows/WASD: Cursor | Space: Select | X: Cancel | E: End turn | R: Restart | Q: Quit"
}

// Reset loads the configuration and starts a new game.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.runtime = runtime

	cfg, err := LoadConfig(configPath, g.Difficulty())
	if err != nil {
		cfg = config.DefaultSkirmishConfig()
		config.ApplySkirmishPreset(&cfg, g.Difficulty())
	}
	g.cfg = cfg

	eng, err := NewEngine(cfg, runtime.Seed)
	if err != nil {
		eng, _ = NewEngine(config.DefaultSkirmishConfig(), runtime.Seed)
	}
	g.eng = eng

	g.tick = 0
	g.clearSelection()
	g.cursor = engine.Pos(0, 0)
	for _, u := range g.eng.Units() {
		if u.Team == engine.Blue {
			g.cursor = u.Position
			break
		}
	}
	g.checkScreenSize()
}

// Resize applies a new screen size without restarting the match.
func (g *Game) Resize(runtime core.RuntimeConfig) {
	g.runtime.ScreenW = runtime.ScreenW
	g.runtime.ScreenH = runtime.ScreenH
	g.checkScreenSize()
}

// Engine exposes the underlying engine for read-only queries.
func (g *Game) Engine() *engine.Engine {
	return g.eng
}

// Step applies one tick of input.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	g.tick++
	if g.tooSmall || in.Empty() {
		return core.StepResult{State: g.State()}
	}

	// Restart is handled by the platform.
	if g.eng.GameOver() {
		return core.StepResult{State: g.State()}
	}

	changed := false
	size := g.eng.BoardSize()
	move := func(dx, dy int) {
		next := g.cursor.Add(engine.Pos(dx, dy))
		g.cursor = engine.Pos(core.Clamp(next.X, 0, size-1), core.Clamp(next.Y, 0, size-1))
		changed = true
	}

	switch {
	case in.Has(core.ActionUp):
		move(0, -1)
	case in.Has(core.ActionDown):
		move(0, 1)
	case in.Has(core.ActionLeft):
		move(-1, 0)
	case in.Has(core.ActionRight):
		move(1, 0)
	}

	switch {
	case in.Has(core.ActionSelect):
		changed = g.Select(g.cursor) != ClickIgnored || changed
	case in.Has(core.ActionCancel):
		if g.hasSel {
			g.Cancel()
			changed = true
		}
	case in.Has(core.ActionEndTurn):
		changed = g.EndTurn() || changed
	}

	return core.StepResult{State: g.State(), Changed: changed}
}

// EndTurn ends Blue's turn and lets the AI play. It reports whether the turn ended.
func (g *Game) EndTurn() bool {
	if g.eng.GameOver() || g.eng.CurrentTeam() != engine.Blue {
		return false
	}
	g.clearSelection()
	g.eng.EndTurn()
	return true
}

// State returns the platform view of the game.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    Score(g.eng),
		GameOver: g.eng.GameOver(),
		Paused:   g.tooSmall,
	}
}

// Result summarizes the current match.
func (g *Game) Result() Result {
	return ResultOf(g.eng)
}

// Cursor returns the board cell under the cursor.
func (g *Game) Cursor() engine.Position {
	return g.cursor
}

// Selected returns the selected unit's position, if any.
func (g *Game) Selected() (engine.Position, bool) {
	return g.selected, g.hasSel
}

// checkScreenSize checks if the screen fits the board, HUD and log.
func (g *Game) checkScreenSize() {
	w, h := layoutSize(g.eng.BoardSize())
	g.tooSmall = g.runtime.ScreenW < w || g.runtime.ScreenH < h
}

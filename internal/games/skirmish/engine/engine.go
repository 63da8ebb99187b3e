package engine

import (
	"fmt"
	"math/rand"
)

// DefaultMaxTurns is the round limit after which the game is decided on survivors.
const DefaultMaxTurns = 10

// AITeam is the team whose turns the engine plays itself.
const AITeam = Red

// Winner is the outcome of a finished game.
type Winner int

const (
	WinnerNone Winner = iota // draw, or game still running
	WinnerBlue
	WinnerRed
)

func (w Winner) String() string {
	switch w {
	case WinnerBlue:
		return "blue"
	case WinnerRed:
		return "red"
	default:
		return "none"
	}
}

func (w Winner) MarshalText() ([]byte, error) {
	return []byte(w.String()), nil
}

func (w *Winner) UnmarshalText(b []byte) error {
	switch string(b) {
	case "none", "":
		*w = WinnerNone
	case "blue":
		*w = WinnerBlue
	case "red":
		*w = WinnerRed
	default:
		return fmt.Errorf("engine: unknown winner %q", b)
	}
	return nil
}

// winnerFor maps a team to the matching Winner value.
func winnerFor(t Team) Winner {
	if t == Blue {
		return WinnerBlue
	}
	return WinnerRed
}

// Phase is the engine's position in the turn state machine.
type Phase int

const (
	PhaseAwaitingInput Phase = iota
	PhaseRunningAI
	PhaseGameOver
)

func (p Phase) String() string {
	switch p {
	case PhaseAwaitingInput:
		return "awaiting_input"
	case PhaseRunningAI:
		return "running_ai"
	case PhaseGameOver:
		return "game_over"
	default:
		return "unknown"
	}
}

func (p Phase) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

func (p *Phase) UnmarshalText(b []byte) error {
	for _, v := range []Phase{PhaseAwaitingInput, PhaseRunningAI, PhaseGameOver} {
		if v.String() == string(b) {
			*p = v
			return nil
		}
	}
	return fmt.Errorf("engine: unknown phase %q", b)
}

// Placement is one unit of a starting squad.
type Placement struct {
	Type     UnitType
	Position Position
	Stats    Stats
}

// Config describes a game setup.
type Config struct {
	BoardSize      int
	MaxTurns       int
	DamageVariance int
	Obstacles      []Position
	Blue           []Placement
	Red            []Placement
}

// DefaultConfig returns the standard 6x6 setup with two 3-unit squads.
func DefaultConfig() Config {
	s := DefaultStats()
	return Config{
		BoardSize:      DefaultBoardSize,
		MaxTurns:       DefaultMaxTurns,
		DamageVariance: DefaultDamageVariance,
		Blue: []Placement{
			{Type: Soldier, Position: Pos(0, 2), Stats: s},
			{Type: Tank, Position: Pos(1, 1), Stats: s},
			{Type: Soldier, Position: Pos(1, 3), Stats: s},
		},
		Red: []Placement{
			{Type: Soldier, Position: Pos(5, 2), Stats: s},
			{Type: Tank, Position: Pos(4, 1), Stats: s},
			{Type: Soldier, Position: Pos(4, 3), Stats: s},
		},
	}
}

// Engine runs one game: it owns the board, turn order, the AI and
// termination. All mutation goes through its commands, which report
// illegal input by returning false.
type Engine struct {
	cfg   Config
	rng   Rand
	board *Board

	currentTeam Team
	turnCount   int
	maxTurns    int
	gameOver    bool
	winner      Winner
	phase       Phase

	events []Event
}

// New creates an engine from cfg. Placements that do not fit the board are skipped.
// A nil rng is replaced by a source seeded with 1.
func New(cfg Config, rng Rand) *Engine {
	if rng == nil {
		rng = rand.New(rand.NewSource(1))
	}
	e := &Engine{cfg: cfg, rng: rng}
	e.Reset()
	return e
}

// NewDefault creates an engine with DefaultConfig.
func NewDefault(rng Rand) *Engine {
	return New(DefaultConfig(), rng)
}

// Reset discards the current game and sets up a fresh one from the same config.
func (e *Engine) Reset() {
	cfg := e.cfg
	e.board = NewBoard(cfg.BoardSize, e.rng)
	e.board.SetDamageVariance(cfg.DamageVariance)
	for _, p := range cfg.Obstacles {
		e.board.AddObstacle(p)
	}
	for _, p := range cfg.Blue {
		e.board.AddUnit(NewUnit(p.Type, Blue, p.Position, p.Stats))
	}
	for _, p := range cfg.Red {
		e.board.AddUnit(NewUnit(p.Type, Red, p.Position, p.Stats))
	}

	e.maxTurns = cfg.MaxTurns
	if e.maxTurns <= 0 {
		e.maxTurns = DefaultMaxTurns
	}
	e.currentTeam = Blue
	e.turnCount = 0
	e.gameOver = false
	e.winner = WinnerNone
	e.phase = PhaseAwaitingInput
	e.events = nil
}

func (e *Engine) CurrentTeam() Team { return e.currentTeam }
func (e *Engine) TurnCount() int    { return e.turnCount }
func (e *Engine) MaxTurns() int     { return e.maxTurns }
func (e *Engine) GameOver() bool    { return e.gameOver }
func (e *Engine) Winner() Winner    { return e.winner }
func (e *Engine) Phase() Phase      { return e.phase }
func (e *Engine) BoardSize() int    { return e.board.Size() }

// Count returns the number of live units of a team.
func (e *Engine) Count(team Team) int {
	return e.board.Count(team)
}

// Obstacles returns the impassable cells.
func (e *Engine) Obstacles() []Position {
	return e.board.Obstacles()
}

// IsObstacle reports whether pos is impassable terrain.
func (e *Engine) IsObstacle(pos Position) bool {
	return e.board.IsObstacle(pos)
}

// UnitAt returns a copy of the unit at pos.
func (e *Engine) UnitAt(pos Position) (Unit, bool) {
	u := e.board.UnitAt(pos)
	if u == nil {
		return Unit{}, false
	}
	return *u, true
}

// Units returns copies of all live units in board order.
func (e *Engine) Units() []Unit {
	units := e.board.Units()
	out := make([]Unit, len(units))
	for i, u := range units {
		out[i] = *u
	}
	return out
}

// actor returns the unit at pos if the current team may command it.
func (e *Engine) actor(pos Position) *Unit {
	if e.gameOver {
		return nil
	}
	u := e.board.UnitAt(pos)
	if u == nil || u.Team != e.currentTeam {
		return nil
	}
	return u
}

// MoveUnit moves the current team's unit at from to to.
func (e *Engine) MoveUnit(from, to Position) bool {
	u := e.actor(from)
	if u == nil {
		return false
	}
	return e.move(u, to)
}

// AttackUnit makes the current team's unit at from attack the enemy at target.
func (e *Engine) AttackUnit(from, target Position) bool {
	u := e.actor(from)
	if u == nil {
		return false
	}
	return e.attack(u, target)
}

func (e *Engine) move(u *Unit, to Position) bool {
	from := u.Position
	if !e.board.MoveUnit(u, to) {
		return false
	}
	e.record(Event{Kind: EventMove, Team: u.Team, Unit: u.Type, From: from, To: to})
	return true
}

func (e *Engine) attack(u *Unit, target Position) bool {
	out, ok := e.board.attack(u, target)
	if !ok {
		return false
	}
	e.record(Event{
		Kind:   EventAttack,
		Team:   u.Team,
		Unit:   u.Type,
		From:   u.Position,
		To:     target,
		Damage: out.damage,
		Health: out.healthLeft,
	})
	if out.killed {
		e.record(Event{Kind: EventKill, Team: u.Team, Unit: out.target.Type, From: u.Position, To: target})
	}
	return true
}

// EndTurn finishes the current team's turn. If the AI team is next it plays
// its whole turn before EndTurn returns, so callers always get control back
// on Blue's turn or after game over. It does nothing once the game is over.
func (e *Engine) EndTurn() {
	if e.gameOver {
		return
	}
	e.advanceTurn()
	for !e.gameOver && e.currentTeam == AITeam {
		e.phase = PhaseRunningAI
		e.runAI()
		e.advanceTurn()
	}
}

// advanceTurn resets the ending team's flags, hands control over and checks
// for the end of the game.
func (e *Engine) advanceTurn() {
	ending := e.currentTeam
	for _, u := range e.board.UnitsOf(ending) {
		u.ResetTurn()
	}
	e.record(Event{Kind: EventEndTurn, Team: ending})

	e.currentTeam = ending.Opponent()
	if e.currentTeam == Blue {
		e.turnCount++
	}
	e.checkGameOver()
	if !e.gameOver {
		e.phase = PhaseAwaitingInput
	}
}

// checkGameOver evaluates, in order: Blue eliminated, Red eliminated, round limit.
func (e *Engine) checkGameOver() {
	blue := e.board.Count(Blue)
	red := e.board.Count(Red)

	switch {
	case blue == 0:
		e.finish(WinnerRed)
	case red == 0:
		e.finish(WinnerBlue)
	case e.turnCount >= e.maxTurns:
		switch {
		case blue > red:
			e.finish(WinnerBlue)
		case red > blue:
			e.finish(WinnerRed)
		default:
			e.finish(WinnerNone)
		}
	}
}

func (e *Engine) finish(w Winner) {
	e.gameOver = true
	e.winner = w
	e.phase = PhaseGameOver
	e.record(Event{Kind: EventGameOver, Winner: w})
}

// Actions lists the legal commands for one unit.
type Actions struct {
	Moves   []Position `json:"moves"`
	Attacks []Position `json:"attacks"`
}

// ValidActions returns the legal moves and attack targets of the unit at pos.
// Both lists are empty when there is no unit, it belongs to the other team,
// or the game is over.
func (e *Engine) ValidActions(pos Position) Actions {
	u := e.actor(pos)
	if u == nil {
		return Actions{Moves: []Position{}, Attacks: []Position{}}
	}
	a := Actions{Moves: e.board.ValidMoves(u), Attacks: e.board.AttackTargets(u)}
	if a.Moves == nil {
		a.Moves = []Position{}
	}
	if a.Attacks == nil {
		a.Attacks = []Position{}
	}
	return a
}

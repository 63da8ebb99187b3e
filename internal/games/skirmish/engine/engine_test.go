package engine

import (
	"math/rand"
	"reflect"
	"testing"
)

func TestNewDefault(t *testing.T) {
	e := NewDefault(zeroRoll)

	if e.CurrentTeam() != Blue {
		t.Errorf("CurrentTeam = %v, want blue", e.CurrentTeam())
	}
	if e.TurnCount() != 0 {
		t.Errorf("TurnCount = %d, want 0", e.TurnCount())
	}
	if e.MaxTurns() != DefaultMaxTurns {
		t.Errorf("MaxTurns = %d, want %d", e.MaxTurns(), DefaultMaxTurns)
	}
	if e.GameOver() || e.Winner() != WinnerNone || e.Phase() != PhaseAwaitingInput {
		t.Errorf("initial state: over=%v winner=%v phase=%v", e.GameOver(), e.Winner(), e.Phase())
	}
	if e.BoardSize() != 6 {
		t.Errorf("BoardSize = %d, want 6", e.BoardSize())
	}

	want := map[Position]struct {
		typ  UnitType
		team Team
	}{
		Pos(0, 2): {Soldier, Blue},
		Pos(1, 1): {Tank, Blue},
		Pos(1, 3): {Soldier, Blue},
		Pos(5, 2): {Soldier, Red},
		Pos(4, 1): {Tank, Red},
		Pos(4, 3): {Soldier, Red},
	}
	units := e.Units()
	if len(units) != len(want) {
		t.Fatalf("len(Units) = %d, want %d", len(units), len(want))
	}
	for _, u := range units {
		w, ok := want[u.Position]
		if !ok {
			t.Errorf("unexpected unit at %v", u.Position)
			continue
		}
		if u.Type != w.typ || u.Team != w.team {
			t.Errorf("unit at %v = %v %v, want %v %v", u.Position, u.Team, u.Type, w.team, w.typ)
		}
		if u.Health != 100 || u.MaxHealth != 100 || u.AttackPower != 30 || u.MovementRange != 3 || u.AttackRange != 1 {
			t.Errorf("unit at %v has stats %+v", u.Position, u)
		}
	}
}

func TestNilRandPlaysAITurn(t *testing.T) {
	e := NewDefault(nil)

	if !e.MoveUnit(Pos(1, 1), Pos(3, 1)) {
		t.Fatal("tank move rejected")
	}
	e.EndTurn()

	if e.CurrentTeam() != Blue || e.TurnCount() != 1 {
		t.Errorf("after EndTurn: team = %v, turn = %d, want blue, 1", e.CurrentTeam(), e.TurnCount())
	}
}

func TestWrongTeamRejected(t *testing.T) {
	e := NewDefault(zeroRoll)
	before := e.State()

	if e.MoveUnit(Pos(5, 2), Pos(5, 1)) {
		t.Error("moving a red unit on blue's turn = true, want false")
	}
	if e.AttackUnit(Pos(4, 1), Pos(3, 1)) {
		t.Error("attacking with a red unit on blue's turn = true, want false")
	}
	if e.MoveUnit(Pos(3, 3), Pos(3, 2)) {
		t.Error("moving from an empty cell = true, want false")
	}
	if !reflect.DeepEqual(e.State(), before) {
		t.Error("rejected commands changed state")
	}
}

func TestMoveDoesNotEndTurn(t *testing.T) {
	e := NewDefault(zeroRoll)
	if !e.MoveUnit(Pos(0, 2), Pos(1, 2)) {
		t.Fatal("MoveUnit = false, want true")
	}
	if e.CurrentTeam() != Blue {
		t.Errorf("CurrentTeam = %v, want blue", e.CurrentTeam())
	}
	if u, ok := e.UnitAt(Pos(1, 2)); !ok || !u.HasMoved {
		t.Errorf("UnitAt(1,2) = %+v, %v", u, ok)
	}
	if e.MoveUnit(Pos(1, 2), Pos(2, 2)) {
		t.Error("second move for the same unit = true, want false")
	}
}

func TestUnitAtReturnsCopy(t *testing.T) {
	e := NewDefault(zeroRoll)
	u, ok := e.UnitAt(Pos(0, 2))
	if !ok {
		t.Fatal("UnitAt(0,2) not found")
	}
	u.Health = 1
	u.Position = Pos(5, 5)

	again, _ := e.UnitAt(Pos(0, 2))
	if again.Health != 100 {
		t.Errorf("engine unit health = %d after mutating copy, want 100", again.Health)
	}
	if _, ok := e.UnitAt(Pos(5, 5)); ok {
		t.Error("mutating copy moved the unit")
	}
}

func TestTurnAlternation(t *testing.T) {
	e := NewDefault(rand.New(rand.NewSource(3)))

	for round := 1; round <= 3; round++ {
		start := len(e.Events())
		e.EndTurn()
		if e.GameOver() {
			t.Fatalf("round %d: game over unexpectedly", round)
		}
		if e.CurrentTeam() != Blue {
			t.Errorf("round %d: CurrentTeam = %v, want blue", round, e.CurrentTeam())
		}
		if e.TurnCount() != round {
			t.Errorf("round %d: TurnCount = %d, want %d", round, e.TurnCount(), round)
		}
		if e.Phase() != PhaseAwaitingInput {
			t.Errorf("round %d: Phase = %v, want awaiting_input", round, e.Phase())
		}

		var ends []Team
		for _, ev := range e.Events()[start:] {
			if ev.Kind == EventEndTurn {
				ends = append(ends, ev.Team)
			}
		}
		if want := []Team{Blue, Red}; !reflect.DeepEqual(ends, want) {
			t.Errorf("round %d: end turn events = %v, want %v", round, ends, want)
		}
	}
}

func TestEndTurnResetsFlags(t *testing.T) {
	e := NewDefault(zeroRoll)
	e.MoveUnit(Pos(0, 2), Pos(0, 0))
	e.EndTurn()

	u, ok := e.UnitAt(Pos(0, 0))
	if !ok {
		t.Fatal("moved unit missing")
	}
	if u.HasMoved || u.HasAttacked {
		t.Errorf("flags after EndTurn: moved=%v attacked=%v", u.HasMoved, u.HasAttacked)
	}
}

func TestEliminationEndsGame(t *testing.T) {
	weak := Stats{Health: 20, AttackPower: 30, MovementRange: 3, AttackRange: 1}
	cfg := Config{
		BoardSize: 6,
		MaxTurns:  10,
		Blue: []Placement{
			{Type: Soldier, Position: Pos(0, 0), Stats: DefaultStats()},
			{Type: Tank, Position: Pos(2, 0), Stats: DefaultStats()},
			{Type: Soldier, Position: Pos(4, 0), Stats: DefaultStats()},
		},
		Red: []Placement{
			{Type: Soldier, Position: Pos(0, 1), Stats: weak},
			{Type: Tank, Position: Pos(2, 1), Stats: weak},
			{Type: Soldier, Position: Pos(4, 1), Stats: weak},
		},
	}
	e := New(cfg, rand.New(rand.NewSource(1)))

	for _, x := range []int{0, 2, 4} {
		if !e.AttackUnit(Pos(x, 0), Pos(x, 1)) {
			t.Fatalf("AttackUnit from (%d,0) = false, want true", x)
		}
	}
	if e.Count(Red) != 0 {
		t.Fatalf("Count(Red) = %d, want 0", e.Count(Red))
	}

	e.EndTurn()
	if !e.GameOver() {
		t.Fatal("GameOver = false, want true")
	}
	if e.Winner() != WinnerBlue {
		t.Errorf("Winner = %v, want blue", e.Winner())
	}
	if e.Phase() != PhaseGameOver {
		t.Errorf("Phase = %v, want game_over", e.Phase())
	}
}

func TestTurnLimit(t *testing.T) {
	tests := []struct {
		name       string
		removeBlue int
		removeRed  int
		want       Winner
	}{
		{"blue has more", 0, 1, WinnerBlue},
		{"red has more", 2, 0, WinnerRed},
		{"equal counts draw", 1, 1, WinnerNone},
		{"full squads draw", 0, 0, WinnerNone},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := NewDefault(zeroRoll)
			for range tt.removeBlue {
				e.board.remove(e.board.UnitsOf(Blue)[0])
			}
			for range tt.removeRed {
				e.board.remove(e.board.UnitsOf(Red)[0])
			}
			e.turnCount = e.maxTurns
			e.checkGameOver()

			if !e.GameOver() {
				t.Fatal("GameOver = false, want true")
			}
			if e.Winner() != tt.want {
				t.Errorf("Winner = %v, want %v", e.Winner(), tt.want)
			}
		})
	}
}

func TestTurnLimitThroughEndTurn(t *testing.T) {
	e := NewDefault(zeroRoll)
	e.turnCount = e.maxTurns - 1

	e.EndTurn()
	if !e.GameOver() {
		t.Fatal("GameOver = false after final round, want true")
	}
	if e.TurnCount() != e.MaxTurns() {
		t.Errorf("TurnCount = %d, want %d", e.TurnCount(), e.MaxTurns())
	}
	// Red only closes in on the first round, so both squads survive.
	if e.Winner() != WinnerNone {
		t.Errorf("Winner = %v, want none", e.Winner())
	}
}

func TestBlueEliminationCheckedFirst(t *testing.T) {
	e := New(Config{BoardSize: 6, MaxTurns: 10}, zeroRoll)
	e.checkGameOver()
	if e.Winner() != WinnerRed {
		t.Errorf("Winner with no units = %v, want red", e.Winner())
	}
}

func TestCommandsAfterGameOver(t *testing.T) {
	e := NewDefault(zeroRoll)
	e.turnCount = e.maxTurns
	e.checkGameOver()
	before := e.State()
	events := len(e.Events())

	if e.MoveUnit(Pos(0, 2), Pos(0, 3)) {
		t.Error("MoveUnit after game over = true, want false")
	}
	if e.AttackUnit(Pos(0, 2), Pos(0, 3)) {
		t.Error("AttackUnit after game over = true, want false")
	}
	e.EndTurn()
	if a := e.ValidActions(Pos(0, 2)); len(a.Moves) != 0 || len(a.Attacks) != 0 {
		t.Errorf("ValidActions after game over = %+v, want empty", a)
	}
	if !reflect.DeepEqual(e.State(), before) || len(e.Events()) != events {
		t.Error("state changed after game over")
	}
}

func TestValidActions(t *testing.T) {
	e := NewDefault(zeroRoll)

	a := e.ValidActions(Pos(1, 1))
	if len(a.Moves) == 0 {
		t.Error("blue tank has no moves")
	}
	if len(a.Attacks) != 0 {
		t.Errorf("blue tank attacks = %v, want none", a.Attacks)
	}
	if again := e.ValidActions(Pos(1, 1)); !reflect.DeepEqual(a, again) {
		t.Errorf("ValidActions not idempotent: %v vs %v", a, again)
	}

	for _, pos := range []Position{Pos(4, 1), Pos(3, 3), Pos(9, 9)} {
		got := e.ValidActions(pos)
		if got.Moves == nil || got.Attacks == nil {
			t.Errorf("ValidActions(%v) returned nil lists", pos)
		}
		if len(got.Moves) != 0 || len(got.Attacks) != 0 {
			t.Errorf("ValidActions(%v) = %+v, want empty", pos, got)
		}
	}
}

func TestObstaclesBlockMovement(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Obstacles = []Position{Pos(1, 2), Pos(2, 2)}
	e := New(cfg, zeroRoll)

	if !e.IsObstacle(Pos(1, 2)) {
		t.Fatal("IsObstacle(1,2) = false")
	}
	if e.MoveUnit(Pos(0, 2), Pos(1, 2)) {
		t.Error("moving onto an obstacle = true, want false")
	}
	for _, m := range e.ValidActions(Pos(0, 2)).Moves {
		if m == Pos(1, 2) || m == Pos(2, 2) {
			t.Errorf("ValidActions includes obstacle %v", m)
		}
	}
	if got := e.State().Obstacles; !reflect.DeepEqual(got, []Position{Pos(1, 2), Pos(2, 2)}) {
		t.Errorf("State().Obstacles = %v", got)
	}
}

func TestResetRestoresSetup(t *testing.T) {
	e := NewDefault(rand.New(rand.NewSource(9)))
	fresh := e.State()

	e.MoveUnit(Pos(0, 2), Pos(2, 2))
	e.EndTurn()
	e.Reset()

	if !reflect.DeepEqual(e.State(), fresh) {
		t.Error("Reset did not restore the initial state")
	}
	if len(e.Events()) != 0 {
		t.Errorf("len(Events) after Reset = %d, want 0", len(e.Events()))
	}
}

func TestEventLogCapped(t *testing.T) {
	e := NewDefault(zeroRoll)
	for i := range MaxEvents + 10 {
		e.record(Event{Kind: EventMove, Damage: i})
	}
	events := e.Events()
	if len(events) != MaxEvents {
		t.Fatalf("len(Events) = %d, want %d", len(events), MaxEvents)
	}
	if events[0].Damage != 10 || events[len(events)-1].Damage != MaxEvents+9 {
		t.Errorf("kept events %d..%d, want 10..%d", events[0].Damage, events[len(events)-1].Damage, MaxEvents+9)
	}
}

// playRandom drives Blue with a simple policy until the game ends,
// checking board invariants after every command.
func playRandom(t *testing.T, e *Engine, rng *rand.Rand) {
	t.Helper()
	for step := 0; step < 50 && !e.GameOver(); step++ {
		for _, u := range e.Units() {
			if u.Team != Blue {
				continue
			}
			a := e.ValidActions(u.Position)
			if len(a.Attacks) > 0 {
				e.AttackUnit(u.Position, a.Attacks[rng.Intn(len(a.Attacks))])
			} else if len(a.Moves) > 0 {
				e.MoveUnit(u.Position, a.Moves[rng.Intn(len(a.Moves))])
			}
			checkInvariants(t, e)
		}
		e.EndTurn()
		checkInvariants(t, e)
	}
	if !e.GameOver() {
		t.Fatal("game did not end")
	}
}

func checkInvariants(t *testing.T, e *Engine) {
	t.Helper()
	seen := make(map[Position]bool)
	for _, u := range e.Units() {
		if seen[u.Position] {
			t.Fatalf("two units at %v", u.Position)
		}
		seen[u.Position] = true
		if u.Health <= 0 || u.Health > u.MaxHealth {
			t.Fatalf("unit at %v has health %d/%d", u.Position, u.Health, u.MaxHealth)
		}
		if u.Position.X < 0 || u.Position.X >= e.BoardSize() || u.Position.Y < 0 || u.Position.Y >= e.BoardSize() {
			t.Fatalf("unit off board at %v", u.Position)
		}
	}
	if e.TurnCount() > e.MaxTurns() {
		t.Fatalf("TurnCount %d exceeds MaxTurns %d", e.TurnCount(), e.MaxTurns())
	}
}

func TestRandomPlayInvariants(t *testing.T) {
	for seed := int64(1); seed <= 30; seed++ {
		e := NewDefault(rand.New(rand.NewSource(seed)))
		playRandom(t, e, rand.New(rand.NewSource(seed*31)))
	}
}

func TestDeterminism(t *testing.T) {
	e1 := NewDefault(rand.New(rand.NewSource(12345)))
	e2 := NewDefault(rand.New(rand.NewSource(12345)))

	playRandom(t, e1, rand.New(rand.NewSource(99)))
	playRandom(t, e2, rand.New(rand.NewSource(99)))

	if !reflect.DeepEqual(e1.State(), e2.State()) {
		t.Error("same seeds produced different final states")
	}
	if !reflect.DeepEqual(e1.Events(), e2.Events()) {
		t.Error("same seeds produced different combat logs")
	}
}

package engine

import "testing"

func aiEngine(blue, red []Placement, rng Rand) *Engine {
	return New(Config{BoardSize: 6, MaxTurns: 10, DamageVariance: DefaultDamageVariance, Blue: blue, Red: red}, rng)
}

func place(t UnitType, x, y int) Placement {
	return Placement{Type: t, Position: Pos(x, y), Stats: DefaultStats()}
}

func TestAIAttacksInRange(t *testing.T) {
	e := aiEngine(
		[]Placement{place(Soldier, 2, 2), place(Tank, 3, 3)},
		[]Placement{place(Soldier, 3, 2)},
		zeroRoll,
	)
	e.EndTurn()

	// zeroRoll picks the last target in AttackTargets order: (3,3).
	if u, _ := e.UnitAt(Pos(3, 3)); u.Health != 70 {
		t.Errorf("tank health = %d, want 70", u.Health)
	}
	if u, _ := e.UnitAt(Pos(2, 2)); u.Health != 100 {
		t.Errorf("soldier health = %d, want 100", u.Health)
	}
	if _, ok := e.UnitAt(Pos(3, 2)); !ok {
		t.Error("attacking red unit moved")
	}
}

func TestAIRandomTargetChoice(t *testing.T) {
	e := aiEngine(
		[]Placement{place(Soldier, 2, 2), place(Tank, 3, 3)},
		[]Placement{place(Soldier, 3, 2)},
		fixedRand(0),
	)
	e.EndTurn()

	if u, _ := e.UnitAt(Pos(2, 2)); u.Health == 100 {
		t.Error("first target was not attacked")
	}
}

func TestAIClosesIn(t *testing.T) {
	e := aiEngine(
		[]Placement{place(Soldier, 0, 0), place(Soldier, 0, 5)},
		[]Placement{place(Tank, 5, 4)},
		zeroRoll,
	)
	e.EndTurn()

	// Nearest enemy is (0,5); the first move reaching distance 3 in x-major
	// order is (2,4).
	if _, ok := e.UnitAt(Pos(2, 4)); !ok {
		t.Errorf("red tank not at (2,4); units: %+v", e.Units())
	}
	for _, ev := range e.Events() {
		if ev.Kind == EventAttack {
			t.Errorf("unexpected attack %v", ev)
		}
	}
}

func TestAINearestTieTakesFirst(t *testing.T) {
	e := aiEngine(
		[]Placement{place(Soldier, 0, 0), place(Soldier, 0, 4)},
		[]Placement{place(Soldier, 4, 2)},
		zeroRoll,
	)
	if got := e.nearestEnemy(e.board.UnitAt(Pos(4, 2))); got.Position != Pos(0, 0) {
		t.Errorf("nearestEnemy = %v, want (0,0)", got.Position)
	}
}

func TestAIPassesWhenBoxedIn(t *testing.T) {
	cfg := Config{
		BoardSize: 6,
		MaxTurns:  10,
		Obstacles: []Position{Pos(4, 5), Pos(5, 4)},
		Blue:      []Placement{place(Soldier, 0, 0)},
		Red: []Placement{{
			Type:     Soldier,
			Position: Pos(5, 5),
			Stats:    Stats{Health: 100, AttackPower: 30, MovementRange: 1, AttackRange: 1},
		}},
	}
	e := New(cfg, zeroRoll)
	e.EndTurn()

	if _, ok := e.UnitAt(Pos(5, 5)); !ok {
		t.Error("boxed-in unit moved")
	}
	if e.CurrentTeam() != Blue || e.TurnCount() != 1 {
		t.Errorf("after AI turn: team=%v turn=%d", e.CurrentTeam(), e.TurnCount())
	}
}

func TestAIKillEndsGame(t *testing.T) {
	weak := Stats{Health: 10, AttackPower: 30, MovementRange: 3, AttackRange: 1}
	e := aiEngine(
		[]Placement{{Type: Soldier, Position: Pos(2, 2), Stats: weak}},
		[]Placement{place(Soldier, 2, 3), place(Tank, 5, 5)},
		zeroRoll,
	)
	e.EndTurn()

	if !e.GameOver() || e.Winner() != WinnerRed {
		t.Errorf("over=%v winner=%v, want true red", e.GameOver(), e.Winner())
	}
	if e.TurnCount() != 1 {
		t.Errorf("TurnCount = %d, want 1", e.TurnCount())
	}
}

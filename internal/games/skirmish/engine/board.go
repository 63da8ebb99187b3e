package engine

// Rand is the random source used for damage rolls and AI target choice.
// *math/rand.Rand satisfies it; tests may pass a scripted implementation.
type Rand interface {
	Intn(n int) int
}

// DefaultBoardSize is the side length of the square board.
const DefaultBoardSize = 6

// DefaultDamageVariance is the +/- spread applied to every attack.
const DefaultDamageVariance = 5

// Board owns the live units and answers movement and attack legality.
// At most one unit occupies any position; dead units are removed immediately.
type Board struct {
	size      int
	units     []*Unit
	obstacles map[Position]bool
	rng       Rand
	variance  int
}

// attackOutcome describes an executed attack.
type attackOutcome struct {
	target     *Unit
	damage     int
	healthLeft int
	killed     bool
}

// NewBoard creates an empty square board.
func NewBoard(size int, rng Rand) *Board {
	if size <= 0 {
		size = DefaultBoardSize
	}
	return &Board{
		size:      size,
		obstacles: make(map[Position]bool),
		rng:       rng,
		variance:  DefaultDamageVariance,
	}
}

// Size returns the board side length.
func (b *Board) Size() int {
	return b.size
}

// SetDamageVariance changes the damage spread. Negative values are treated as 0.
func (b *Board) SetDamageVariance(v int) {
	if v < 0 {
		v = 0
	}
	b.variance = v
}

// InBounds reports whether pos lies on the board.
func (b *Board) InBounds(pos Position) bool {
	return pos.X >= 0 && pos.X < b.size && pos.Y >= 0 && pos.Y < b.size
}

// AddObstacle marks an in-bounds, unoccupied cell as impassable.
func (b *Board) AddObstacle(pos Position) bool {
	if !b.InBounds(pos) || b.UnitAt(pos) != nil {
		return false
	}
	b.obstacles[pos] = true
	return true
}

// IsObstacle reports whether pos is impassable terrain.
func (b *Board) IsObstacle(pos Position) bool {
	return b.obstacles[pos]
}

// Obstacles returns the obstacle cells in row-major order.
func (b *Board) Obstacles() []Position {
	out := make([]Position, 0, len(b.obstacles))
	for y := range b.size {
		for x := range b.size {
			if p := Pos(x, y); b.obstacles[p] {
				out = append(out, p)
			}
		}
	}
	return out
}

// AddUnit places a unit if its cell is free. Nothing changes on failure.
func (b *Board) AddUnit(u *Unit) bool {
	if u == nil || !b.InBounds(u.Position) || b.IsObstacle(u.Position) {
		return false
	}
	if b.UnitAt(u.Position) != nil {
		return false
	}
	b.units = append(b.units, u)
	return true
}

// UnitAt returns the unit at pos, or nil.
func (b *Board) UnitAt(pos Position) *Unit {
	for _, u := range b.units {
		if u.Position == pos {
			return u
		}
	}
	return nil
}

// Units returns the live units in board order.
func (b *Board) Units() []*Unit {
	out := make([]*Unit, len(b.units))
	copy(out, b.units)
	return out
}

// UnitsOf returns the live units of one team in board order.
func (b *Board) UnitsOf(team Team) []*Unit {
	var out []*Unit
	for _, u := range b.units {
		if u.Team == team {
			out = append(out, u)
		}
	}
	return out
}

// Count returns how many live units a team has.
func (b *Board) Count(team Team) int {
	n := 0
	for _, u := range b.units {
		if u.Team == team {
			n++
		}
	}
	return n
}

// MoveUnit moves u to pos when the destination is in bounds, within range,
// free, and u has not moved this turn.
func (b *Board) MoveUnit(u *Unit, pos Position) bool {
	if !u.CanMoveTo(pos, b.size) || b.IsObstacle(pos) || b.UnitAt(pos) != nil {
		return false
	}
	u.Position = pos
	u.HasMoved = true
	return true
}

// AttackUnit attacks the enemy at target. It returns whether the attack was
// executed, not whether it killed.
func (b *Board) AttackUnit(attacker *Unit, target Position) bool {
	_, ok := b.attack(attacker, target)
	return ok
}

func (b *Board) attack(attacker *Unit, target Position) (attackOutcome, bool) {
	victim := b.UnitAt(target)
	if victim == nil || victim.Team == attacker.Team || !attacker.CanAttack(target) {
		return attackOutcome{}, false
	}

	damage := attacker.AttackPower + b.roll()
	if damage < 0 {
		damage = 0
	}
	left := victim.takeDamage(damage)
	attacker.HasAttacked = true

	out := attackOutcome{target: victim, damage: damage, healthLeft: left}
	if !victim.Alive() {
		b.remove(victim)
		out.killed = true
	}
	return out, true
}

// roll returns a uniform integer in [-variance, variance].
func (b *Board) roll() int {
	if b.variance == 0 || b.rng == nil {
		return 0
	}
	return b.rng.Intn(2*b.variance+1) - b.variance
}

func (b *Board) remove(victim *Unit) {
	for i, u := range b.units {
		if u == victim {
			b.units = append(b.units[:i], b.units[i+1:]...)
			return
		}
	}
}

// ValidMoves lists the empty cells u can reach this turn, scanning x then y.
func (b *Board) ValidMoves(u *Unit) []Position {
	var moves []Position
	r := u.MovementRange
	for x := max(0, u.Position.X-r); x < min(b.size, u.Position.X+r+1); x++ {
		for y := max(0, u.Position.Y-r); y < min(b.size, u.Position.Y+r+1); y++ {
			p := Pos(x, y)
			if u.CanMoveTo(p, b.size) && !b.IsObstacle(p) && b.UnitAt(p) == nil {
				moves = append(moves, p)
			}
		}
	}
	return moves
}

// AttackTargets lists the cells holding an enemy u can attack this turn.
func (b *Board) AttackTargets(u *Unit) []Position {
	var targets []Position
	r := u.AttackRange
	for x := max(0, u.Position.X-r); x < min(b.size, u.Position.X+r+1); x++ {
		for y := max(0, u.Position.Y-r); y < min(b.size, u.Position.Y+r+1); y++ {
			p := Pos(x, y)
			target := b.UnitAt(p)
			if target != nil && target.Team != u.Team && u.CanAttack(p) {
				targets = append(targets, p)
			}
		}
	}
	return targets
}

package engine

import "fmt"

// UnitType is the kind of a combat piece. All types share the same movement
// and attack formulas; they differ only in the stats they are configured with.
type UnitType int

const (
	Soldier UnitType = iota
	Tank
	Helicopter
)

// UnitTypes lists every unit type in declaration order.
var UnitTypes = []UnitType{Soldier, Tank, Helicopter}

// String returns the lowercase name used in snapshots and config files.
func (t UnitType) String() string {
	switch t {
	case Soldier:
		return "soldier"
	case Tank:
		return "tank"
	case Helicopter:
		return "helicopter"
	default:
		return "unknown"
	}
}

// Symbol returns the single-letter marker used by text front-ends.
func (t UnitType) Symbol() rune {
	switch t {
	case Soldier:
		return 'S'
	case Tank:
		return 'T'
	case Helicopter:
		return 'H'
	default:
		return '?'
	}
}

// ParseUnitType converts a name produced by String back into a UnitType.
func ParseUnitType(s string) (UnitType, error) {
	for _, t := range UnitTypes {
		if t.String() == s {
			return t, nil
		}
	}
	return 0, fmt.Errorf("engine: unknown unit type %q", s)
}

// MarshalText implements encoding.TextMarshaler.
func (t UnitType) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *UnitType) UnmarshalText(b []byte) error {
	v, err := ParseUnitType(string(b))
	if err != nil {
		return err
	}
	*t = v
	return nil
}

// Team identifies which side a unit fights for.
type Team int

const (
	Blue Team = iota // human player
	Red              // AI opponent
)

// String returns the lowercase team name.
func (t Team) String() string {
	switch t {
	case Blue:
		return "blue"
	case Red:
		return "red"
	default:
		return "unknown"
	}
}

// Opponent returns the other team.
func (t Team) Opponent() Team {
	if t == Blue {
		return Red
	}
	return Blue
}

// ParseTeam converts "blue" or "red" into a Team.
func ParseTeam(s string) (Team, error) {
	switch s {
	case "blue":
		return Blue, nil
	case "red":
		return Red, nil
	}
	return 0, fmt.Errorf("engine: unknown team %q", s)
}

func (t Team) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

func (t *Team) UnmarshalText(b []byte) error {
	v, err := ParseTeam(string(b))
	if err != nil {
		return err
	}
	*t = v
	return nil
}

// Stats holds the numeric attributes of a unit.
type Stats struct {
	Health        int
	AttackPower   int
	MovementRange int
	AttackRange   int
}

// DefaultStats returns the stats every unit type starts with.
func DefaultStats() Stats {
	return Stats{
		Health:        100,
		AttackPower:   30,
		MovementRange: 3,
		AttackRange:   1,
	}
}

// Unit is one combat piece on the board.
type Unit struct {
	Type          UnitType
	Team          Team
	Position      Position
	Health        int
	MaxHealth     int
	AttackPower   int
	MovementRange int
	AttackRange   int
	HasMoved      bool
	HasAttacked   bool
}

// NewUnit creates a unit at full health with the given stats.
func NewUnit(t UnitType, team Team, pos Position, stats Stats) *Unit {
	return &Unit{
		Type:          t,
		Team:          team,
		Position:      pos,
		Health:        stats.Health,
		MaxHealth:     stats.Health,
		AttackPower:   stats.AttackPower,
		MovementRange: stats.MovementRange,
		AttackRange:   stats.AttackRange,
	}
}

// Alive reports whether the unit still has health left.
func (u *Unit) Alive() bool {
	return u.Health > 0
}

// CanMoveTo checks bounds, movement range and whether the unit already moved.
// Occupancy is the board's concern.
func (u *Unit) CanMoveTo(pos Position, boardSize int) bool {
	if pos.X < 0 || pos.X >= boardSize || pos.Y < 0 || pos.Y >= boardSize {
		return false
	}
	return !u.HasMoved && u.Position.DistanceTo(pos) <= u.MovementRange
}

// CanAttack checks attack range and whether the unit already attacked.
func (u *Unit) CanAttack(target Position) bool {
	if u.HasAttacked {
		return false
	}
	return u.Position.DistanceTo(target) <= u.AttackRange
}

// ResetTurn clears the per-turn action flags.
func (u *Unit) ResetTurn() {
	u.HasMoved = false
	u.HasAttacked = false
}

// takeDamage reduces health, never below zero, and returns the health left.
func (u *Unit) takeDamage(amount int) int {
	u.Health -= amount
	if u.Health < 0 {
		u.Health = 0
	}
	return u.Health
}

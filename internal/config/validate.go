package config

import "fmt"

// Validate checks that the configuration describes a playable game.
func (c SkirmishConfig) Validate() error {
	size := c.Board.Size
	if size <= 0 || size > MaxBoardSize {
		return fmt.Errorf("%w: board.size %d not in 1..%d", ErrInvalid, size, MaxBoardSize)
	}
	if c.Rules.MaxTurns <= 0 {
		return fmt.Errorf("%w: rules.max_turns must be positive, got %d", ErrInvalid, c.Rules.MaxTurns)
	}
	if c.Rules.DamageVariance < 0 {
		return fmt.Errorf("%w: rules.damage_variance must not be negative, got %d", ErrInvalid, c.Rules.DamageVariance)
	}

	for _, name := range []string{"soldier", "tank", "helicopter"} {
		s, _ := c.Units.For(name)
		if err := s.validate(name); err != nil {
			return err
		}
	}

	inBounds := func(x, y int) bool { return x >= 0 && x < size && y >= 0 && y < size }

	blocked := make(map[Cell]bool)
	for _, o := range c.Board.Obstacles {
		if !inBounds(o.X, o.Y) {
			return fmt.Errorf("%w: obstacle (%d,%d) outside the board", ErrInvalid, o.X, o.Y)
		}
		blocked[o] = true
	}

	occupied := make(map[Cell]string)
	squads := []struct {
		team  string
		units []Placement
	}{
		{"blue", c.Squads.Blue},
		{"red", c.Squads.Red},
	}
	for _, sq := range squads {
		if len(sq.units) == 0 {
			return fmt.Errorf("%w: squads.%s is empty", ErrInvalid, sq.team)
		}
		for _, p := range sq.units {
			if _, ok := c.Units.For(p.Type); !ok {
				return fmt.Errorf("%w: squads.%s: unknown unit type %q", ErrInvalid, sq.team, p.Type)
			}
			cell := Cell{X: p.X, Y: p.Y}
			if !inBounds(p.X, p.Y) {
				return fmt.Errorf("%w: squads.%s: %s at (%d,%d) outside the board", ErrInvalid, sq.team, p.Type, p.X, p.Y)
			}
			if blocked[cell] {
				return fmt.Errorf("%w: squads.%s: %s at (%d,%d) is on an obstacle", ErrInvalid, sq.team, p.Type, p.X, p.Y)
			}
			if other, ok := occupied[cell]; ok {
				return fmt.Errorf("%w: squads.%s: (%d,%d) already holds a %s unit", ErrInvalid, sq.team, p.X, p.Y, other)
			}
			occupied[cell] = sq.team
		}
	}
	return nil
}

func (s UnitStats) validate(name string) error {
	switch {
	case s.Health <= 0:
		return fmt.Errorf("%w: units.%s.health must be positive", ErrInvalid, name)
	case s.AttackPower < 0:
		return fmt.Errorf("%w: units.%s.attack_power must not be negative", ErrInvalid, name)
	case s.MovementRange < 0:
		return fmt.Errorf("%w: units.%s.movement_range must not be negative", ErrInvalid, name)
	case s.AttackRange < 0:
		return fmt.Errorf("%w: units.%s.attack_range must not be negative", ErrInvalid, name)
	}
	return nil
}

package config

import (
	_ "embed"
)

//go:embed defaults/skirmish.yaml
var defaultSkirmishYAML []byte

// DefaultSkirmishConfig returns the built-in configuration: a 6x6 board,
// 10 rounds and two 3-unit squads with identical stats.
func DefaultSkirmishConfig() SkirmishConfig {
	stats := UnitStats{
		Health:        100,
		AttackPower:   30,
		MovementRange: 3,
		AttackRange:   1,
	}
	return SkirmishConfig{
		Board: BoardConfig{Size: 6, Obstacles: []Cell{}},
		Rules: RulesConfig{
			MaxTurns:       10,
			DamageVariance: 5,
		},
		Units: UnitsConfig{
			Soldier:    stats,
			Tank:       stats,
			Helicopter: stats,
		},
		Squads: SquadsConfig{
			Blue: []Placement{
				{Type: "soldier", X: 0, Y: 2},
				{Type: "tank", X: 1, Y: 1},
				{Type: "soldier", X: 1, Y: 3},
			},
			Red: []Placement{
				{Type: "soldier", X: 5, Y: 2},
				{Type: "tank", X: 4, Y: 1},
				{Type: "soldier", X: 4, Y: 3},
			},
		},
	}
}

// Package config loads the YAML game configuration and applies difficulty
// presets.
package config

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("config: invalid")

// MaxBoardSize is the largest board the terminal renderer can lay out.
const MaxBoardSize = 12

// SkirmishConfig contains all configuration for Quick Skirmish.
type SkirmishConfig struct {
	Board  BoardConfig  `yaml:"board"`
	Rules  RulesConfig  `yaml:"rules"`
	Units  UnitsConfig  `yaml:"units"`
	Squads SquadsConfig `yaml:"squads"`
}

// BoardConfig defines the battlefield.
type BoardConfig struct {
	Size      int    `yaml:"size"`
	Obstacles []Cell `yaml:"obstacles"`
}

// Cell is a board coordinate.
type Cell struct {
	X int `yaml:"x"`
	Y int `yaml:"y"`
}

// RulesConfig defines turn and combat rules.
type RulesConfig struct {
	MaxTurns       int `yaml:"max_turns"`
	DamageVariance int `yaml:"damage_variance"`
	RedAttackBonus int `yaml:"red_attack_bonus"` // added to every Red unit's attack power
}

// UnitStats defines the numeric attributes of one unit type.
type UnitStats struct {
	Health        int `yaml:"health"`
	AttackPower   int `yaml:"attack_power"`
	MovementRange int `yaml:"movement_range"`
	AttackRange   int `yaml:"attack_range"`
}

// UnitsConfig holds per-type stats.
type UnitsConfig struct {
	Soldier    UnitStats `yaml:"soldier"`
	Tank       UnitStats `yaml:"tank"`
	Helicopter UnitStats `yaml:"helicopter"`
}

// For returns the stats of a unit type by name.
func (u UnitsConfig) For(unitType string) (UnitStats, bool) {
	switch unitType {
	case "soldier":
		return u.Soldier, true
	case "tank":
		return u.Tank, true
	case "helicopter":
		return u.Helicopter, true
	default:
		return UnitStats{}, false
	}
}

// Placement is one unit of a starting squad.
type Placement struct {
	Type string `yaml:"type"`
	X    int    `yaml:"x"`
	Y    int    `yaml:"y"`
}

// SquadsConfig holds the starting squads.
type SquadsConfig struct {
	Blue []Placement `yaml:"blue"`
	Red  []Placement `yaml:"red"`
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
)

// Presets lists the difficulty presets in menu order.
var Presets = []DifficultyPreset{DifficultyEasy, DifficultyNormal, DifficultyHard}

// ParseDifficulty converts a flag value into a preset. Empty means normal.
func ParseDifficulty(s string) (DifficultyPreset, error) {
	if s == "" {
		return DifficultyNormal, nil
	}
	p := DifficultyPreset(strings.ToLower(s))
	for _, known := range Presets {
		if p == known {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: unknown difficulty %q (want easy, normal or hard)", ErrInvalid, s)
}

package skirmish

import (
	"fmt"
	"math/rand"

	"github.com/vovakirdan/quick-skirmish/internal/config"
	"github.com/vovakirdan/quick-skirmish/internal/games/skirmish/engine"
)

// EngineConfig converts a loaded configuration into engine setup. Red
// placements get rules.red_attack_bonus added to their attack power.
func EngineConfig(cfg config.SkirmishConfig) (engine.Config, error) {
	out := engine.Config{
		BoardSize:      cfg.Board.Size,
		MaxTurns:       cfg.Rules.MaxTurns,
		DamageVariance: cfg.Rules.DamageVariance,
	}
	for _, o := range cfg.Board.Obstacles {
		out.Obstacles = append(out.Obstacles, engine.Pos(o.X, o.Y))
	}

	blue, err := placements(cfg, cfg.Squads.Blue, 0)
	if err != nil {
		return engine.Config{}, err
	}
	red, err := placements(cfg, cfg.Squads.Red, cfg.Rules.RedAttackBonus)
	if err != nil {
		return engine.Config{}, err
	}
	out.Blue, out.Red = blue, red
	return out, nil
}

func placements(cfg config.SkirmishConfig, squad []config.Placement, attackBonus int) ([]engine.Placement, error) {
	out := make([]engine.Placement, 0, len(squad))
	for _, p := range squad {
		t, err := engine.ParseUnitType(p.Type)
		if err != nil {
			return nil, fmt.Errorf("skirmish: %w", err)
		}
		s, _ := cfg.Units.For(p.Type)
		out = append(out, engine.Placement{
			Type:     t,
			Position: engine.Pos(p.X, p.Y),
			Stats: engine.Stats{
				Health:        s.Health,
				AttackPower:   max(0, s.AttackPower+attackBonus),
				MovementRange: s.MovementRange,
				AttackRange:   s.AttackRange,
			},
		})
	}
	return out, nil
}

// NewEngine builds an engine from a configuration with a seeded random source.
func NewEngine(cfg config.SkirmishConfig, seed int64) (*engine.Engine, error) {
	ec, err := EngineConfig(cfg)
	if err != nil {
		return nil, err
	}
	return engine.New(ec, rand.New(rand.NewSource(seed))), nil
}

// LoadConfig loads the configuration from path (empty for the default
// search order) and applies a difficulty preset.
func LoadConfig(path string, preset config.DifficultyPreset) (config.SkirmishConfig, error) {
	cfg, err := config.LoadSkirmish(path)
	if err != nil {
		return config.SkirmishConfig{}, err
	}
	config.ApplySkirmishPreset(&cfg, preset)
	return cfg, nil
}

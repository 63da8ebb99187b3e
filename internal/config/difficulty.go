package config

// DifficultyProfile is the rule adjustment a preset applies.
type DifficultyProfile struct {
	Name           string
	Description    string
	MaxTurns       int // 0 keeps the configured value
	RedAttackBonus int
}

// ProfileFor returns the adjustments of a preset.
func ProfileFor(preset DifficultyPreset) DifficultyProfile {
	switch preset {
	case DifficultyEasy:
		return DifficultyProfile{
			Name:           "Easy",
			Description:    "14 rounds, weaker Red attacks",
			MaxTurns:       14,
			RedAttackBonus: -5,
		}
	case DifficultyHard:
		return DifficultyProfile{
			Name:           "Hard",
			Description:    "8 rounds, stronger Red attacks",
			MaxTurns:       8,
			RedAttackBonus: 5,
		}
	default:
		return DifficultyProfile{
			Name:        "Normal",
			Description: "Configured rules",
		}
	}
}

// ApplySkirmishPreset modifies the config based on a difficulty preset.
func ApplySkirmishPreset(cfg *SkirmishConfig, preset DifficultyPreset) {
	p := ProfileFor(preset)
	if p.MaxTurns == 0 {
		return
	}
	cfg.Rules.MaxTurns = p.MaxTurns
	cfg.Rules.RedAttackBonus = p.RedAttackBonus
}

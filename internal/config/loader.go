package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const skirmishFile = "skirmish.yaml"

// LoadSkirmish loads the Quick Skirmish configuration.
// Search order: customPath -> ~/.skirmish/configs/skirmish.yaml ->
// ./configs/skirmish.yaml -> embedded default -> hardcoded default.
// Files are decoded over the defaults, so they may set only some keys.
// A custom path that cannot be read, parsed or validated is an error; the
// other locations are skipped when unusable.
func LoadSkirmish(customPath string) (SkirmishConfig, error) {
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return SkirmishConfig{}, fmt.Errorf("config: cannot read %s: %w", customPath, err)
		}
		cfg, err := parseSkirmish(data)
		if err != nil {
			return SkirmishConfig{}, fmt.Errorf("config: %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath(skirmishFile); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if cfg, err := parseSkirmish(data); err == nil {
				return cfg, nil
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile(filepath.Join("configs", skirmishFile)); err == nil {
		if cfg, err := parseSkirmish(data); err == nil {
			return cfg, nil
		}
	}

	// Use embedded default YAML
	if cfg, err := parseSkirmish(defaultSkirmishYAML); err == nil {
		return cfg, nil
	}
	return DefaultSkirmishConfig(), nil
}

// parseSkirmish decodes YAML over the defaults and validates the result.
func parseSkirmish(data []byte) (SkirmishConfig, error) {
	cfg := DefaultSkirmishConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return SkirmishConfig{}, fmt.Errorf("cannot parse yaml: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return SkirmishConfig{}, err
	}
	return cfg, nil
}

// userConfigPath returns the path to a user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".skirmish", "configs", filename)
}

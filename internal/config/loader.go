package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LoadBattle loads the battle configuration.
// Search order: customPath -> ~/.tanks/configs/battle.yaml -> ./configs/battle.yaml -> embedded default.
// Files may be partial; missing keys keep their default values.
func LoadBattle(customPath string) (BattleConfig, error) {
	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return BattleConfig{}, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		cfg, err := decode(data)
		if err != nil {
			return BattleConfig{}, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if path := userConfigPath("battle.yaml"); path != "" {
		if data, err := os.ReadFile(path); err == nil {
			if cfg, err := decode(data); err == nil {
				return cfg, nil
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile(filepath.Join("configs", "battle.yaml")); err == nil {
		if cfg, err := decode(data); err == nil {
			return cfg, nil
		}
	}

	// Use embedded default YAML
	cfg, err := decode(defaultBattleYAML)
	if err != nil {
		return DefaultBattleConfig(), nil
	}
	return cfg, nil
}

// decode overlays YAML on the defaults and validates the result.
func decode(data []byte) (BattleConfig, error) {
	cfg := DefaultBattleConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return BattleConfig{}, err
	}
	if err := cfg.Validate(); err != nil {
		return BattleConfig{}, err
	}
	return cfg, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".tanks", "configs", filename)
}

// ApplyBattlePreset modifies the config based on a difficulty preset.
func ApplyBattlePreset(cfg *BattleConfig, preset DifficultyPreset) {
	if preset == "" {
		return
	}
	if preset == DifficultyFixed {
		cfg.Difficulty.Enabled = false
		return
	}
	cfg.Difficulty.Enabled = true
	cfg.Difficulty.InitialLevel = InitialLevelForPreset(preset)
}

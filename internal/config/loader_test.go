package config

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestEmbeddedDefaultsMatchHardcoded(t *testing.T) {
	cfg := DefaultBattleConfig()
	if err := yaml.Unmarshal(defaultBattleYAML, &cfg); err != nil {
		t.Fatalf("embedded YAML does not parse: %v", err)
	}
	if !reflect.DeepEqual(cfg, DefaultBattleConfig()) {
		t.Errorf("embedded defaults drifted from DefaultBattleConfig():\n%+v", cfg)
	}
}

func TestLoadBattleCustomPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "battle.yaml")
	data := "hero:\n  lives: 5\nenemy:\n  max_alive: 6\n"
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadBattle(path)
	if err != nil {
		t.Fatalf("LoadBattle() error = %v", err)
	}
	if cfg.Hero.Lives != 5 {
		t.Errorf("Hero.Lives = %d, want 5", cfg.Hero.Lives)
	}
	if cfg.Enemy.MaxAlive != 6 {
		t.Errorf("Enemy.MaxAlive = %d, want 6", cfg.Enemy.MaxAlive)
	}
	// Keys absent from the file keep their defaults.
	if cfg.Bullet.Splash != 8 {
		t.Errorf("Bullet.Splash = %d, want default 8", cfg.Bullet.Splash)
	}
}

func TestLoadBattleErrors(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		name string
		data string
		want string
	}{
		{"malformed", "hero: [", "failed to parse"},
		{"invalid", "bullet:\n  speed: 20\n", "would skip tiles"},
		{"zero lives", "hero:\n  lives: 0\n", "hero.lives"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			path := filepath.Join(dir, tc.name+".yaml")
			if err := os.WriteFile(path, []byte(tc.data), 0o600); err != nil {
				t.Fatal(err)
			}
			_, err := LoadBattle(path)
			if err == nil || !strings.Contains(err.Error(), tc.want) {
				t.Errorf("LoadBattle() error = %v, want it to mention %q", err, tc.want)
			}
		})
	}

	if _, err := LoadBattle(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("LoadBattle() of a missing file should fail")
	}
}

func TestApplyBattlePreset(t *testing.T) {
	tests := []struct {
		preset  DifficultyPreset
		enabled bool
		level   float64
	}{
		{DifficultyEasy, true, 0.0},
		{DifficultyNormal, true, 0.3},
		{DifficultyHard, true, 0.7},
		{DifficultyFixed, false, 0.0},
	}
	for _, tc := range tests {
		t.Run(string(tc.preset), func(t *testing.T) {
			cfg := DefaultBattleConfig()
			ApplyBattlePreset(&cfg, tc.preset)
			if cfg.Difficulty.Enabled != tc.enabled {
				t.Errorf("Enabled = %v, want %v", cfg.Difficulty.Enabled, tc.enabled)
			}
			if cfg.Difficulty.InitialLevel != tc.level {
				t.Errorf("InitialLevel = %v, want %v", cfg.Difficulty.InitialLevel, tc.level)
			}
		})
	}
}

func TestParsePreset(t *testing.T) {
	if p, err := ParsePreset("hard"); err != nil || p != DifficultyHard {
		t.Errorf("ParsePreset(hard) = %q, %v", p, err)
	}
	if p, err := ParsePreset(""); err != nil || p != "" {
		t.Errorf("ParsePreset(\"\") = %q, %v", p, err)
	}
	if _, err := ParsePreset("nightmare"); err == nil {
		t.Error("ParsePreset should reject unknown presets")
	}
}

package level

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Ikbal01/tanks-game/internal/battle/sprite"
)

func mapYAML(tiles []string) string {
	var sb strings.Builder
	sb.WriteString("name: test\nenemies: [basic, fast, armor]\nbonus: [1]\ntiles:\n")
	for _, t := range tiles {
		sb.WriteString("  - \"" + t + "\"\n")
	}
	return sb.String()
}

func emptyTiles() []string {
	tiles := make([]string, Rows)
	for i := range tiles {
		tiles[i] = strings.Repeat(".", Cols)
	}
	return tiles
}

func withFortress(tiles []string) []string {
	tiles[24] = strings.Repeat(".", 12) + "Bb" + strings.Repeat(".", 12)
	tiles[25] = strings.Repeat(".", 12) + "bb" + strings.Repeat(".", 12)
	return tiles
}

func TestParse(t *testing.T) {
	tiles := withFortress(emptyTiles())
	tiles[3] = "#@" + strings.Repeat(".", 24)

	lvl, err := Parse([]byte(mapYAML(tiles)))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if lvl.Name != "test" {
		t.Errorf("Name = %q, want test", lvl.Name)
	}
	if lvl.Fortress != (Cell{12, 24}) {
		t.Errorf("Fortress = %+v, want {12 24}", lvl.Fortress)
	}
	if len(lvl.Bricks) != 1 || lvl.Bricks[0] != (Cell{0, 3}) {
		t.Errorf("Bricks = %+v", lvl.Bricks)
	}
	if len(lvl.Steel) != 1 || lvl.Steel[0] != (Cell{1, 3}) {
		t.Errorf("Steel = %+v", lvl.Steel)
	}
	want := []sprite.EnemyKind{sprite.EnemyBasic, sprite.EnemyFast, sprite.EnemyArmor}
	for i, k := range want {
		if lvl.Enemies[i] != k {
			t.Errorf("Enemies[%d] = %v, want %v", i, lvl.Enemies[i], k)
		}
	}
	if !lvl.IsBonus(1) || lvl.IsBonus(0) {
		t.Error("IsBonus() does not match the bonus list")
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  error
	}{
		{"short map", mapYAML(withFortress(emptyTiles())[:25]), ErrBadSize},
		{"narrow row", mapYAML(append(withFortress(emptyTiles())[:25], "....")), ErrBadSize},
		{"no fortress", mapYAML(emptyTiles()), ErrNoFortress},
		{"bad tile", mapYAML(append([]string{strings.Repeat("x", Cols)}, withFortress(emptyTiles())[1:]...)), ErrBadTile},
		{"no enemies", "name: x\ntiles: []\n", ErrNoEnemies},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse([]byte(tc.input))
			if !errors.Is(err, tc.want) {
				t.Errorf("Parse() error = %v, want %v", err, tc.want)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	if err := os.WriteFile(path, []byte(mapYAML(withFortress(emptyTiles()))), 0o600); err != nil {
		t.Fatal(err)
	}

	lvl, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(lvl.Enemies) != 3 {
		t.Errorf("len(Enemies) = %d, want 3", len(lvl.Enemies))
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("Load() of a missing file should fail")
	}
}

func TestBuiltinStages(t *testing.T) {
	if StageCount() < 3 {
		t.Fatalf("StageCount() = %d, want at least 3", StageCount())
	}
	for n := 1; n <= StageCount(); n++ {
		lvl, err := Stage(n)
		if err != nil {
			t.Fatalf("Stage(%d) error = %v", n, err)
		}
		if lvl.Fortress != (Cell{12, 24}) {
			t.Errorf("stage %d fortress at %+v, want {12 24}", n, lvl.Fortress)
		}
		if len(lvl.Enemies) != 20 {
			t.Errorf("stage %d has %d enemies, want 20", n, len(lvl.Enemies))
		}
	}
	if _, err := Stage(0); err == nil {
		t.Error("Stage(0) should fail")
	}
}

// Package level loads battle maps. A map is a YAML document with a name, the
// enemy spawn queue and a 26x26 character grid of tiles.
package level

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"slices"

	"gopkg.in/yaml.v3"

	"github.com/Ikbal01/tanks-game/internal/battle/sprite"
)

// Map dimensions in tiles.
const (
	Cols = 26
	Rows = 26
)

// Tile characters.
const (
	TileEmpty    = '.'
	TileBrick    = '#'
	TileSteel    = '@'
	TileFortress = 'B' // top-left of the 2x2 fortress
	TileBase     = 'b' // the other three fortress tiles
)

var (
	ErrBadSize    = errors.New("level: map must be 26x26 tiles")
	ErrNoFortress = errors.New("level: map needs exactly one fortress")
	ErrBadTile    = errors.New("level: unknown tile")
	ErrNoEnemies  = errors.New("level: enemy queue is empty")
)

//go:embed stages/*.yaml
var stagesFS embed.FS

// Cell is a tile coordinate.
type Cell struct {
	Col, Row int
}

// Level is a parsed map.
type Level struct {
	Name     string
	Bricks   []Cell
	Steel    []Cell
	Fortress Cell
	Enemies  []sprite.EnemyKind
	Bonus    []int // indices into Enemies that carry a treasure
}

// IsBonus reports whether the i-th enemy of the queue is a bonus tank.
func (l *Level) IsBonus(i int) bool {
	return slices.Contains(l.Bonus, i)
}

// file is the YAML layout of a map.
type file struct {
	Name    string   `yaml:"name"`
	Enemies []string `yaml:"enemies"`
	Bonus   []int    `yaml:"bonus"`
	Tiles   []string `yaml:"tiles"`
}

// Parse decodes a YAML map.
func Parse(data []byte) (*Level, error) {
	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("level: parse: %w", err)
	}

	lvl := &Level{Name: f.Name, Bonus: f.Bonus}
	if len(f.Enemies) == 0 {
		return nil, ErrNoEnemies
	}
	for _, name := range f.Enemies {
		kind, err := sprite.ParseEnemyKind(name)
		if err != nil {
			return nil, fmt.Errorf("level: %w", err)
		}
		lvl.Enemies = append(lvl.Enemies, kind)
	}

	if len(f.Tiles) != Rows {
		return nil, fmt.Errorf("%w: got %d rows", ErrBadSize, len(f.Tiles))
	}
	fortresses := 0
	for row, line := range f.Tiles {
		runes := []rune(line)
		if len(runes) != Cols {
			return nil, fmt.Errorf("%w: row %d has %d tiles", ErrBadSize, row, len(runes))
		}
		for col, ch := range runes {
			switch ch {
			case TileEmpty, TileBase:
			case TileBrick:
				lvl.Bricks = append(lvl.Bricks, Cell{col, row})
			case TileSteel:
				lvl.Steel = append(lvl.Steel, Cell{col, row})
			case TileFortress:
				fortresses++
				lvl.Fortress = Cell{col, row}
			default:
				return nil, fmt.Errorf("%w %q at %d,%d", ErrBadTile, ch, col, row)
			}
		}
	}
	if fortresses != 1 {
		return nil, fmt.Errorf("%w: found %d", ErrNoFortress, fortresses)
	}
	if f := lvl.Fortress; f.Col+1 >= Cols || f.Row+1 >= Rows {
		return nil, fmt.Errorf("%w: fortress at %d,%d does not fit", ErrNoFortress, f.Col, f.Row)
	}
	return lvl, nil
}

// Load reads a map file from disk.
func Load(filename string) (*Level, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("level: read %s: %w", filename, err)
	}
	lvl, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return lvl, nil
}

// StageCount returns the number of built-in stages.
func StageCount() int {
	return len(stageFiles())
}

// Stage returns the built-in stage n, counting from 1.
func Stage(n int) (*Level, error) {
	files := stageFiles()
	if n < 1 || n > len(files) {
		return nil, fmt.Errorf("level: stage %d out of range 1..%d", n, len(files))
	}
	data, err := stagesFS.ReadFile(files[n-1])
	if err != nil {
		return nil, fmt.Errorf("level: stage %d: %w", n, err)
	}
	lvl, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("stage %d: %w", n, err)
	}
	return lvl, nil
}

// stageFiles lists the embedded stages in name order.
func stageFiles() []string {
	entries, err := fs.ReadDir(stagesFS, "stages")
	if err != nil {
		return nil
	}
	files := make([]string, 0, len(entries))
	for _, e := range entries {
		if !e.IsDir() && path.Ext(e.Name()) == ".yaml" {
			files = append(files, path.Join("stages", e.Name()))
		}
	}
	return files
}

package core

import (
	"strings"
	"testing"
)

func TestNewScreen(t *testing.T) {
	s := NewScreen(80, 24)

	if s.Width() != 80 {
		t.Errorf("Width() = %d, expected 80", s.Width())
	}
	if s.Height() != 24 {
		t.Errorf("Height() = %d, expected 24", s.Height())
	}
	for y := 0; y < s.Height(); y++ {
		for x := 0; x < s.Width(); x++ {
			if c := s.GetCell(x, y); c.Rune != ' ' || c.Color != ColorDefault {
				t.Fatalf("new screen cell (%d, %d) = %+v, expected blank", x, y, c)
			}
		}
	}
}

func TestScreenSetColored(t *testing.T) {
	s := NewScreen(10, 10)

	s.SetColored(5, 5, '▓', ColorBrick)
	if c := s.GetCell(5, 5); c.Rune != '▓' || c.Color != ColorBrick {
		t.Errorf("GetCell(5, 5) = %+v, expected brick cell", c)
	}

	// Out of bounds writes are dropped
	s.Set(-1, 0, 'A')
	s.Set(100, 0, 'A')
	s.Set(0, 100, 'A')
	if s.Get(-1, 0) != ' ' || s.Get(100, 0) != ' ' {
		t.Error("Out of bounds Get should return space")
	}
}

func TestScreenResizeKeepsContent(t *testing.T) {
	s := NewScreen(4, 4)
	s.SetColored(1, 1, 'X', ColorHero1)
	s.SetColored(3, 3, 'Y', ColorHero1)

	s.Resize(2, 2)
	if s.Get(1, 1) != 'X' {
		t.Errorf("Get(1, 1) = %q after shrink, expected 'X'", s.Get(1, 1))
	}

	s.Resize(6, 6)
	if s.Get(1, 1) != 'X' || s.Get(3, 3) != ' ' {
		t.Error("Resize should keep the overlapping region only")
	}
}

func TestScreenString(t *testing.T) {
	s := NewScreen(3, 2)
	s.DrawText(0, 0, "abc")
	s.DrawTextColored(0, 1, "d", ColorHUD)

	lines := strings.Split(s.String(), "\n")
	if len(lines) != 2 {
		t.Fatalf("String() produced %d lines, expected 2", len(lines))
	}
	if lines[0] != "abc" || lines[1] != "d  " {
		t.Errorf("String() = %q", s.String())
	}
}

func TestScreenDrawBox(t *testing.T) {
	s := NewScreen(5, 3)
	s.DrawBox(NewRect(0, 0, 5, 3), ColorBorder)

	if s.Get(0, 0) != '┌' || s.Get(4, 2) != '┘' || s.Get(2, 0) != '─' || s.Get(0, 1) != '│' {
		t.Errorf("unexpected box:\n%s", s.String())
	}
	if s.GetCell(0, 0).Color != ColorBorder {
		t.Error("box should carry the border color")
	}
}

func TestScreenCloneIsIndependent(t *testing.T) {
	s := NewScreen(4, 2)
	s.SetColored(1, 1, '▓', ColorBrick)

	c := s.Clone()
	s.Set(1, 1, 'x')

	if got := c.GetCell(1, 1); got.Rune != '▓' || got.Color != ColorBrick {
		t.Errorf("clone cell = %+v, expected the original brick", got)
	}
	if c.Width() != 4 || c.Height() != 2 {
		t.Errorf("clone size = %dx%d, expected 4x2", c.Width(), c.Height())
	}
}

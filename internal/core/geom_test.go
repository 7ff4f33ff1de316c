package core

import (
	"testing"

	"pgregory.net/rapid"
)

func TestRectOverlaps(t *testing.T) {
	tests := []struct {
		name     string
		a, b     Rect
		expected bool
	}{
		{"overlapping rects", NewRect(0, 0, 10, 10), NewRect(5, 5, 10, 10), true},
		{"non-overlapping horizontal", NewRect(0, 0, 10, 10), NewRect(15, 0, 10, 10), false},
		{"non-overlapping vertical", NewRect(0, 0, 10, 10), NewRect(0, 15, 10, 10), false},
		{"touching edges horizontal", NewRect(0, 0, 16, 16), NewRect(16, 0, 16, 16), false},
		{"touching edges vertical", NewRect(0, 0, 16, 16), NewRect(0, 16, 16, 16), false},
		{"tank over brick", NewRect(16, 16, 32, 32), NewRect(32, 32, 16, 16), true},
		{"single pixel overlap", NewRect(0, 0, 10, 10), NewRect(9, 9, 10, 10), true},
		{"zero width", NewRect(5, 5, 0, 10), NewRect(0, 0, 10, 20), false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.a.Overlaps(tc.b); got != tc.expected {
				t.Errorf("Overlaps() = %v, expected %v", got, tc.expected)
			}
			if got := tc.b.Overlaps(tc.a); got != tc.expected {
				t.Errorf("Overlaps() (reversed) = %v, expected %v", got, tc.expected)
			}
		})
	}
}

func TestRectOverlapsSymmetric(t *testing.T) {
	rect := func(label string) *rapid.Generator[Rect] {
		return rapid.Custom(func(t *rapid.T) Rect {
			return NewRect(
				rapid.IntRange(-64, 512).Draw(t, label+"x"),
				rapid.IntRange(-64, 512).Draw(t, label+"y"),
				rapid.IntRange(1, 64).Draw(t, label+"w"),
				rapid.IntRange(1, 64).Draw(t, label+"h"),
			)
		})
	}
	rapid.Check(t, func(t *rapid.T) {
		a := rect("a").Draw(t, "a")
		b := rect("b").Draw(t, "b")
		if a.Overlaps(b) != b.Overlaps(a) {
			t.Fatalf("asymmetric overlap for %+v and %+v", a, b)
		}
		if !a.Overlaps(a) {
			t.Fatalf("rect %+v does not overlap itself", a)
		}
		if a.Overlaps(b) && !a.Expand(8, 8).Overlaps(b) {
			t.Fatalf("expanded rect lost overlap")
		}
	})
}

func TestRectContains(t *testing.T) {
	r := NewRect(10, 10, 20, 15)

	tests := []struct {
		name     string
		x, y     int
		expected bool
	}{
		{"inside", 15, 15, true},
		{"top-left corner", 10, 10, true},
		{"bottom-right edge (exclusive)", 30, 25, false},
		{"left of rect", 9, 15, false},
		{"last pixel", 29, 24, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := r.Contains(tc.x, tc.y); got != tc.expected {
				t.Errorf("Contains(%d, %d) = %v, expected %v", tc.x, tc.y, got, tc.expected)
			}
		})
	}
}

func TestRectExpand(t *testing.T) {
	r := NewRect(100, 100, 8, 8).Expand(8, 0)
	want := NewRect(92, 100, 24, 8)
	if r != want {
		t.Errorf("Expand(8, 0) = %+v, expected %+v", r, want)
	}
}

func TestDirectionDelta(t *testing.T) {
	tests := []struct {
		dir    Direction
		dx, dy int
	}{
		{DirUp, 0, -1},
		{DirRight, 1, 0},
		{DirDown, 0, 1},
		{DirLeft, -1, 0},
	}
	for _, tc := range tests {
		t.Run(tc.dir.String(), func(t *testing.T) {
			dx, dy := tc.dir.Delta()
			if dx != tc.dx || dy != tc.dy {
				t.Errorf("Delta() = (%d, %d), expected (%d, %d)", dx, dy, tc.dx, tc.dy)
			}
		})
	}
}

func TestSnap(t *testing.T) {
	tests := []struct {
		v, origin, step, want int
	}{
		{19, 16, 8, 16},
		{20, 16, 8, 24},
		{24, 16, 8, 24},
		{29, 16, 8, 32},
		{10, 16, 8, 8},
		{33, 16, 0, 33},
	}
	for _, tc := range tests {
		if got := Snap(tc.v, tc.origin, tc.step); got != tc.want {
			t.Errorf("Snap(%d, %d, %d) = %d, expected %d", tc.v, tc.origin, tc.step, got, tc.want)
		}
	}
}

func TestClamp(t *testing.T) {
	if Clamp(-5, 0, 10) != 0 || Clamp(15, 0, 10) != 10 || Clamp(5, 0, 10) != 5 {
		t.Error("Clamp returned a value outside the expected range")
	}
}

package core

import (
	"strings"
	"testing"
)

func TestNewScreenIsBlank(t *testing.T) {
	s := NewScreen(12, 4)

	if s.Width() != 12 || s.Height() != 4 {
		t.Fatalf("size = %dx%d, want 12x4", s.Width(), s.Height())
	}
	want := strings.Repeat(" ", 12)
	for y := 0; y < s.Height(); y++ {
		if row := s.Row(y); row != want {
			t.Errorf("row %d = %q, want blank", y, row)
		}
	}
}

func TestScreenOutOfBounds(t *testing.T) {
	s := NewScreen(4, 2)

	// Sprites falling in from above the board are drawn at negative rows.
	for _, p := range [][2]int{{-1, 0}, {4, 0}, {0, -3}, {0, 2}} {
		s.SetColored(p[0], p[1], '●', ColorRed)
		if got := s.GetCell(p[0], p[1]); got != blank {
			t.Errorf("GetCell(%d, %d) = %+v, want blank", p[0], p[1], got)
		}
	}
	if s.String() != "    \n    " {
		t.Errorf("out-of-bounds writes leaked: %q", s.String())
	}
	if s.Row(-1) != "    " {
		t.Errorf("Row(-1) = %q", s.Row(-1))
	}
}

func TestScreenColoredCells(t *testing.T) {
	s := NewScreen(6, 2)
	s.SetColored(1, 0, '●', ColorRed)
	s.DrawTextColored(2, 1, "ab", ColorPurple)
	s.Set(0, 1, 'x')

	tests := []struct {
		x, y int
		want Cell
	}{
		{1, 0, Cell{Rune: '●', Color: ColorRed}},
		{2, 1, Cell{Rune: 'a', Color: ColorPurple}},
		{3, 1, Cell{Rune: 'b', Color: ColorPurple}},
		{0, 1, Cell{Rune: 'x', Color: ColorDefault}},
		{0, 0, blank},
	}
	for _, tc := range tests {
		if got := s.GetCell(tc.x, tc.y); got != tc.want {
			t.Errorf("GetCell(%d, %d) = %+v, want %+v", tc.x, tc.y, got, tc.want)
		}
	}
	if s.Get(1, 0) != '●' {
		t.Errorf("Get(1, 0) = %q", s.Get(1, 0))
	}

	s.Clear()
	if got := s.GetCell(1, 0); got != blank {
		t.Errorf("Clear should reset rune and color, got %+v", got)
	}
}

func TestScreenDrawTextRunes(t *testing.T) {
	s := NewScreen(8, 3)

	// Multi-byte runes take one column each.
	s.DrawText(0, 0, "●●x")
	if s.Row(0) != "●●x     " {
		t.Errorf("row 0 = %q", s.Row(0))
	}

	s.DrawText(6, 1, "Popped")
	if s.Row(1) != "      Po" {
		t.Errorf("text should be clipped at the right edge, row 1 = %q", s.Row(1))
	}

	s.DrawTextCentered(2, "●ok")
	if s.Row(2) != "  ●ok   " {
		t.Errorf("centered row = %q", s.Row(2))
	}
}

func TestScreenDrawBox(t *testing.T) {
	s := NewScreen(6, 4)
	s.DrawBox(NewRect(0, 0, 6, 4), ColorFrame)

	want := "┌────┐\n" +
		"│    │\n" +
		"│    │\n" +
		"└────┘"
	if s.String() != want {
		t.Errorf("box =\n%s\nwant\n%s", s.String(), want)
	}
	if s.GetCell(0, 0).Color != ColorFrame || s.GetCell(5, 3).Color != ColorFrame {
		t.Error("box edges should carry the box color")
	}
	if s.GetCell(2, 1) != blank {
		t.Error("box interior should stay untouched")
	}
}

func TestScreenResizeKeepsTopLeft(t *testing.T) {
	s := NewScreen(10, 6)
	s.DrawTextColored(0, 0, "Hello", ColorYellow)
	s.DrawText(0, 5, "gone")

	s.Resize(4, 3)
	if s.Width() != 4 || s.Height() != 3 {
		t.Fatalf("size = %dx%d, want 4x3", s.Width(), s.Height())
	}
	if s.Row(0) != "Hell" {
		t.Errorf("row 0 = %q", s.Row(0))
	}
	if s.GetCell(0, 0).Color != ColorYellow {
		t.Error("colors should survive a resize")
	}

	s.Resize(7, 6)
	if s.Row(0) != "Hell   " {
		t.Errorf("row 0 after growing = %q", s.Row(0))
	}
	if s.Row(5) != "       " {
		t.Errorf("rows cut by shrinking should come back blank, got %q", s.Row(5))
	}
}

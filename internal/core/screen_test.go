package core

import (
	"strings"
	"testing"
)

func TestNewScreen(t *testing.T) {
	s := NewScreen(80, 24)

	if s.Width() != 80 || s.Height() != 24 {
		t.Fatalf("size = %dx%d, expected 80x24", s.Width(), s.Height())
	}
	for y := 0; y < s.Height(); y++ {
		for x := 0; x < s.Width(); x++ {
			if c := s.GetCell(x, y); c.Rune != ' ' || c.Color != ColorDefault {
				t.Fatalf("new screen should be blank, got %+v at (%d, %d)", c, x, y)
			}
		}
	}
}

func TestScreenSetColored(t *testing.T) {
	s := NewScreen(10, 10)

	s.SetColored(5, 5, '→', ColorPlayer)
	if c := s.GetCell(5, 5); c.Rune != '→' || c.Color != ColorPlayer {
		t.Errorf("GetCell(5, 5) = %+v", c)
	}

	// Out of bounds writes are ignored and reads return space.
	s.SetColored(-1, 0, 'A', ColorDefault)
	s.SetColored(10, 0, 'A', ColorDefault)
	s.SetColored(0, 10, 'A', ColorDefault)
	if s.Get(-1, 0) != ' ' || s.Get(10, 0) != ' ' || s.Get(0, -1) != ' ' {
		t.Error("out of bounds Get should return space")
	}
}

func TestScreenClear(t *testing.T) {
	s := NewScreen(4, 2)
	s.DrawRectColored(NewRect(0, 0, 4, 2), '█', ColorNavy)
	s.Clear()

	if s.String() != "    \n    " {
		t.Errorf("Clear should blank every cell, got %q", s.String())
	}
	if s.GetCell(1, 1).Color != ColorDefault {
		t.Error("Clear should reset colors")
	}
}

func TestScreenResize(t *testing.T) {
	s := NewScreen(10, 5)
	s.SetColored(1, 1, 'X', ColorDefault)

	s.Resize(20, 3)
	if s.Width() != 20 || s.Height() != 3 {
		t.Fatalf("size = %dx%d, expected 20x3", s.Width(), s.Height())
	}
	if s.Get(1, 1) != ' ' {
		t.Error("resize should clear the buffer")
	}
	s.SetColored(19, 2, 'Y', ColorDefault)
	if s.Get(19, 2) != 'Y' {
		t.Error("resized buffer should be writable to its new edge")
	}

	// Same size keeps content.
	s.Resize(20, 3)
	if s.Get(19, 2) != 'Y' {
		t.Error("resize to the same size should keep content")
	}

	// Negative sizes become empty.
	s.Resize(-1, -1)
	if s.Width() != 0 || s.Height() != 0 || s.String() != "" {
		t.Error("negative resize should give an empty screen")
	}
}

func TestScreenDrawTextColored(t *testing.T) {
	s := NewScreen(10, 2)
	s.DrawTextColored(2, 0, "Score: 7", ColorText)

	if got := strings.Split(s.String(), "\n")[0]; got != "  Score: 7" {
		t.Errorf("row 0 = %q", got)
	}
	if s.GetCell(2, 0).Color != ColorText {
		t.Error("text should carry its color")
	}

	// Clipped at the right edge.
	s.DrawTextColored(8, 1, "Hello", ColorText)
	if got := strings.Split(s.String(), "\n")[1]; got != "        He" {
		t.Errorf("row 1 = %q", got)
	}
}

func TestScreenDrawRectColored(t *testing.T) {
	s := NewScreen(6, 4)
	s.DrawRectColored(NewRect(1, 1, 3, 2), '▓', ColorGround)

	expected := "      \n ▓▓▓  \n ▓▓▓  \n      "
	if s.String() != expected {
		t.Errorf("String() = %q, expected %q", s.String(), expected)
	}
	if s.GetCell(2, 2).Color != ColorGround {
		t.Error("rect should carry its color")
	}

	// Partially off-screen rects are clipped, not rejected.
	s.DrawRectColored(NewRect(4, -1, 5, 2), '█', ColorNavy)
	if s.Get(5, 0) != '█' || s.Get(4, 1) != ' ' {
		t.Error("off-screen rect should be clipped to the visible cells")
	}
}

func TestScreenDrawBox(t *testing.T) {
	s := NewScreen(6, 4)
	s.DrawBox(NewRect(0, 0, 5, 3), ColorButton)

	expected := "┌───┐ \n│   │ \n└───┘ \n      "
	if s.String() != expected {
		t.Errorf("String() =\n%s\nexpected\n%s", s.String(), expected)
	}
	if s.GetCell(0, 0).Color != ColorButton {
		t.Error("box should carry its color")
	}

	// Degenerate boxes draw nothing.
	s.Clear()
	s.DrawBox(NewRect(0, 0, 1, 3), ColorButton)
	if strings.TrimSpace(s.String()) != "" {
		t.Error("box narrower than two cells should not be drawn")
	}
}

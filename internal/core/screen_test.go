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
			if s.Get(x, y).Rune != ' ' {
				t.Errorf("New screen should be filled with spaces, got %q at (%d, %d)", s.Get(x, y).Rune, x, y)
			}
		}
	}
}

func TestNewScreenNegative(t *testing.T) {
	s := NewScreen(-3, -1)
	if s.Width() != 0 || s.Height() != 0 {
		t.Errorf("NewScreen(-3, -1) = %dx%d, expected 0x0", s.Width(), s.Height())
	}
	if s.String() != "" {
		t.Errorf("String() = %q, expected empty", s.String())
	}
}

func TestScreenSetGet(t *testing.T) {
	s := NewScreen(10, 10)

	s.Set(5, 5, Cell{Rune: 'X', Color: ColorRed})
	if got := s.Get(5, 5); got.Rune != 'X' || got.Color != ColorRed {
		t.Errorf("Get(5, 5) = %+v, expected red X", got)
	}

	// Out of bounds should be silent
	s.Set(-1, 0, Cell{Rune: 'A'})
	s.Set(100, 0, Cell{Rune: 'A'})
	s.Set(0, -1, Cell{Rune: 'A'})
	s.Set(0, 100, Cell{Rune: 'A'})

	if s.Get(-1, 0).Rune != ' ' {
		t.Error("Out of bounds Get should return space")
	}
	if s.Get(100, 0).Rune != ' ' {
		t.Error("Out of bounds Get should return space")
	}
}

func TestScreenDrawText(t *testing.T) {
	s := NewScreen(20, 5)
	end := s.DrawText(2, 1, "Hello", ColorGreen)

	if end != 7 {
		t.Errorf("DrawText() = %d, expected 7", end)
	}
	for i, ch := range "Hello" {
		if c := s.Get(2+i, 1); c.Rune != ch || c.Color != ColorGreen {
			t.Errorf("DrawText: expected green %q at (%d, 1), got %+v", ch, 2+i, c)
		}
	}

	// Only "He" fits
	s.DrawText(18, 0, "Hello", ColorDefault)
	if s.Row(0) != strings.Repeat(" ", 18)+"He" {
		t.Errorf("Row(0) = %q, text should be clipped at right boundary", s.Row(0))
	}
}

func TestScreenDrawTextMultibyte(t *testing.T) {
	s := NewScreen(6, 1)
	s.DrawText(0, 0, "╔══╗", ColorDefault)
	if s.Row(0) != "╔══╗  " {
		t.Errorf("Row(0) = %q, expected %q", s.Row(0), "╔══╗  ")
	}
}

func TestScreenClearFrom(t *testing.T) {
	s := NewScreen(8, 2)
	s.DrawText(0, 1, "abcdefgh", ColorDefault)
	s.ClearFrom(3, 1)

	if s.Row(1) != "abc     " {
		t.Errorf("Row(1) = %q, expected %q", s.Row(1), "abc     ")
	}
	// Rows outside the buffer are ignored.
	s.ClearFrom(0, 5)
}

func TestScreenClear(t *testing.T) {
	s := NewScreen(4, 2)
	s.DrawText(0, 0, "XXXX", ColorRed)
	s.Clear()

	if s.String() != "    \n    " {
		t.Errorf("String() after Clear = %q", s.String())
	}
	if s.Get(0, 0).Color != ColorDefault {
		t.Error("Clear should reset colors")
	}
}

func TestScreenString(t *testing.T) {
	s := NewScreen(3, 2)
	s.DrawText(0, 0, "ab", ColorDefault)
	s.DrawText(1, 1, "c", ColorDefault)

	expected := "ab \n c "
	if s.String() != expected {
		t.Errorf("String() = %q, expected %q", s.String(), expected)
	}
	if s.Row(9) != "   " {
		t.Errorf("Row(9) = %q, expected blank row", s.Row(9))
	}
}

package glyph

import (
	"testing"

	"github.com/vovakirdan/tui-hanoi/internal/core"
)

func TestDisk(t *testing.T) {
	tests := []struct {
		name     string
		profile  core.Profile
		units    int
		ends     bool
		expected string
	}{
		{"plain with ends", core.ProfilePlain, 3, true, "[###]"},
		{"plain cloud", core.ProfilePlain, 3, false, "###"},
		{"block with ends", core.ProfileBlock, 2, true, "[████]"},
		{"block cloud", core.ProfileBlock, 1, false, "██"},
		{"zero width", core.ProfilePlain, 0, true, "[]"},
		{"negative width", core.ProfilePlain, -2, false, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := For(tt.profile).Disk(tt.units, tt.ends); got != tt.expected {
				t.Errorf("Disk(%d, %v) = %q, expected %q", tt.units, tt.ends, got, tt.expected)
			}
		})
	}
}

func TestBorders(t *testing.T) {
	block := For(core.ProfileBlock)
	if got := block.TopBorder(4); got != "╔══╗" {
		t.Errorf("TopBorder(4) = %q, expected %q", got, "╔══╗")
	}
	if got := block.BottomBorder(4); got != "╚══╝" {
		t.Errorf("BottomBorder(4) = %q, expected %q", got, "╚══╝")
	}

	plain := For(core.ProfilePlain)
	if got := plain.TopBorder(5); got != "|---|" {
		t.Errorf("TopBorder(5) = %q, expected %q", got, "|---|")
	}
	if got := plain.BottomBorder(2); got != "||" {
		t.Errorf("BottomBorder(2) = %q, expected %q", got, "||")
	}
}

func TestLives(t *testing.T) {
	if got := For(core.ProfilePlain).Lives(3); got != "* * *" {
		t.Errorf("Lives(3) = %q, expected %q", got, "* * *")
	}
	if got := For(core.ProfileBlock).Lives(0); got != "" {
		t.Errorf("Lives(0) = %q, expected empty", got)
	}
}

func TestLookupUnknownPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("Lookup of an unknown name should panic")
		}
	}()
	Lookup(core.ProfileBlock, Name("teapot"))
}

func TestEveryProfileHasEveryName(t *testing.T) {
	names := []Name{
		Rod, DiskLeft, DiskFill, DiskRight, HLine, VLine,
		CornerTopLeft, CornerTopRight, CornerBottomLeft, CornerBottomRight,
		Life, Bird,
	}
	for _, p := range []core.Profile{core.ProfileBlock, core.ProfilePlain} {
		for _, n := range names {
			if Lookup(p, n) == "" {
				t.Errorf("Lookup(%v, %q) is empty", p, n)
			}
		}
	}
}

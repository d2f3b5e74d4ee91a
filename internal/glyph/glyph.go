// Package glyph maps the semantic pieces of the scene to the characters
// drawn for them in each rendering profile.
package glyph

import (
	"fmt"
	"strings"

	"github.com/vovakirdan/tui-hanoi/internal/core"
)

// Name identifies a drawable piece.
type Name string

const (
	Rod               Name = "rod"
	DiskLeft          Name = "disk-left"
	DiskFill          Name = "disk-fill"
	DiskRight         Name = "disk-right"
	HLine             Name = "hline"
	VLine             Name = "vline"
	CornerTopLeft     Name = "corner-top-left"
	CornerTopRight    Name = "corner-top-right"
	CornerBottomLeft  Name = "corner-bottom-left"
	CornerBottomRight Name = "corner-bottom-right"
	Life              Name = "life"
	Bird              Name = "bird"
)

var tables = map[core.Profile]map[Name]string{
	core.ProfileBlock: {
		Rod:               "██",
		DiskLeft:          "[",
		DiskFill:          "██",
		DiskRight:         "]",
		HLine:             "═",
		VLine:             "║",
		CornerTopLeft:     "╔",
		CornerTopRight:    "╗",
		CornerBottomLeft:  "╚",
		CornerBottomRight: "╝",
		Life:              "♡",
		Bird:              "🕊",
	},
	core.ProfilePlain: {
		Rod:               "||",
		DiskLeft:          "[",
		DiskFill:          "#",
		DiskRight:         "]",
		HLine:             "-",
		VLine:             "|",
		CornerTopLeft:     "|",
		CornerTopRight:    "|",
		CornerBottomLeft:  "|",
		CornerBottomRight: "|",
		Life:              "*",
		Bird:              "~v~",
	},
}

// Lookup returns the glyph for name in profile p. An unknown name is a
// caller defect and panics.
func Lookup(p core.Profile, name Name) string {
	table, ok := tables[p]
	if !ok {
		panic(fmt.Sprintf("glyph: unknown profile %d", p))
	}
	g, ok := table[name]
	if !ok {
		panic(fmt.Sprintf("glyph: no glyph named %q", name))
	}
	return g
}

// Set renders composite pieces for one profile.
type Set struct {
	profile core.Profile
}

// For returns the glyph set of profile p.
func For(p core.Profile) Set {
	return Set{profile: p}
}

// Profile reports which profile the set renders.
func (s Set) Profile() core.Profile { return s.profile }

// Get looks up one named glyph in the set's profile.
func (s Set) Get(name Name) string { return Lookup(s.profile, name) }

// Rod is one pole segment.
func (s Set) Rod() string { return s.Get(Rod) }

// Life is the marker repeated once per remaining life.
func (s Set) Life() string { return s.Get(Life) }

// Bird is a single bird under a cloud.
func (s Set) Bird() string { return s.Get(Bird) }

// Disk renders a disk of the given unit width. Without ends only the fill
// is drawn, which is how clouds are built.
func (s Set) Disk(units int, ends bool) string {
	fill := strings.Repeat(s.Get(DiskFill), max(units, 0))
	if !ends {
		return fill
	}
	return s.Get(DiskLeft) + fill + s.Get(DiskRight)
}

// TopBorder renders a box top edge spanning width columns, corners included.
func (s Set) TopBorder(width int) string {
	return s.Get(CornerTopLeft) + s.hline(width-2) + s.Get(CornerTopRight)
}

// BottomBorder renders a box bottom edge spanning width columns.
func (s Set) BottomBorder(width int) string {
	return s.Get(CornerBottomLeft) + s.hline(width-2) + s.Get(CornerBottomRight)
}

func (s Set) hline(n int) string {
	return strings.Repeat(s.Get(HLine), max(n, 0))
}

// Lives renders n life indicators separated by spaces.
func (s Set) Lives(n int) string {
	if n <= 0 {
		return ""
	}
	parts := make([]string, n)
	for i := range parts {
		parts[i] = s.Life()
	}
	return strings.Join(parts, " ")
}

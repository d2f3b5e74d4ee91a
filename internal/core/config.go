package core

import "fmt"

// Dimensions is a terminal size sample.
type Dimensions struct {
	Rows int
	Cols int
}

func (d Dimensions) String() string {
	return fmt.Sprintf("%dx%d", d.Cols, d.Rows)
}

// Profile selects the glyph set used for rendering.
type Profile uint8

const (
	// ProfileBlock draws with box-drawing and full-block characters.
	ProfileBlock Profile = iota
	// ProfilePlain draws with ASCII only.
	ProfilePlain
)

func (p Profile) String() string {
	if p == ProfilePlain {
		return "plain"
	}
	return "block"
}

// InterfaceMode selects how the puzzle state is presented.
type InterfaceMode uint8

const (
	ModeGraphics InterfaceMode = iota
	ModeTextual
)

func (m InterfaceMode) String() string {
	if m == ModeTextual {
		return "textual"
	}
	return "graphics"
}

// ParseInterfaceMode accepts the long names and their short aliases.
func ParseInterfaceMode(s string) (InterfaceMode, error) {
	switch s {
	case "graphics", "g", "tui":
		return ModeGraphics, nil
	case "textual", "t", "text":
		return ModeTextual, nil
	}
	return ModeGraphics, fmt.Errorf("core: unknown interface mode %q", s)
}

// RuntimeConfig is the rendering context a session hands to the scene and
// the watcher. Nothing in those packages reads terminal state from globals.
type RuntimeConfig struct {
	Profile Profile
	Mode    InterfaceMode
	Disks   int   // Disk capacity of the puzzle
	Seed    int64 // RNG seed for colors and bird placement
}

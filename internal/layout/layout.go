// Package layout holds the pure geometry of the scene: how wide a disk unit
// is, how many disks fit, where the towers stand and how boxes are sized.
// Nothing here writes to the terminal.
package layout

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/tui-hanoi/internal/core"
)

// Smallest terminal every formula in this package is defined for.
const (
	MinRows = 14
	MinCols = 48
)

// Rows reserved for banners, frame and prompt.
const reservedRows = 11

var (
	// ErrTerminalTooSmall means the terminal is below the minimum viable size.
	ErrTerminalTooSmall = errors.New("layout: terminal too small")
	// ErrTooManyDisks means the disk capacity exceeds what the width allows.
	ErrTooManyDisks = errors.New("layout: disk capacity over limit")
)

// UnitWidth returns the disk unit width for a terminal of cols columns:
// cols/6 - 5, doubled in the plain profile. Never negative.
func UnitWidth(cols int, p core.Profile) int {
	u := core.Max(cols/6-5, 0)
	if p == core.ProfilePlain {
		u *= 2
	}
	return u
}

// DiskSpan converts a unit width to the number of disks that can be
// stacked within it. The plain profile steps disks by two units.
func DiskSpan(unit int, p core.Profile) int {
	if p == core.ProfilePlain {
		return unit / 2
	}
	return unit
}

// Fit is the outcome of FitCount.
type Fit struct {
	Visible  int  // Disks drawn
	SkyLine  int  // Row of the cloud, 0 when no sky is drawn
	Overflow bool // Whether the [^N] marker is shown
}

// FitCount decides how many of actual disks can be drawn on a terminal of
// size d. The cases are tried in order:
//
//  1. everything fits: draw all, no marker
//  2. rows are the bottleneck: draw rows-13 with a marker
//  3. the sky would collide with the stack: draw span-2 with a marker
//  4. otherwise: draw span-2 with a marker and a sky row
func FitCount(actual int, d core.Dimensions, p core.Profile) Fit {
	available := d.Rows - reservedRows
	span := DiskSpan(UnitWidth(d.Cols, p), p)

	if actual <= span && actual < available {
		return Fit{Visible: actual}
	}

	bottomUp := (span + available + 2) / 2
	skyLine := d.Rows - bottomUp

	switch {
	case span >= available:
		return Fit{Visible: core.Max(available-2, 0), Overflow: true}
	case bottomUp+3 >= available:
		return Fit{Visible: core.Max(span-2, 0), Overflow: true}
	default:
		return Fit{Visible: core.Max(span-2, 0), SkyLine: skyLine, Overflow: true}
	}
}

// GenericMax is the visible disk count the poles are sized for. It is the
// fit of a rod holding as many disks as the unit width.
func GenericMax(d core.Dimensions, p core.Profile) int {
	return FitCount(UnitWidth(d.Cols, p), d, p).Visible
}

// RodUnitCount returns how many pole segments go above a stack of current
// visible disks so all three poles reach the same height.
func RodUnitCount(genericMax, current int) int {
	return core.Max(genericMax+1-current, 0)
}

// MaxDisks is the largest disk capacity a terminal of cols columns can show.
func MaxDisks(cols int) int {
	return DiskSpan(UnitWidth(cols, core.ProfilePlain), core.ProfilePlain)
}

// CheckSize rejects terminals below the minimum viable size.
func CheckSize(d core.Dimensions) error {
	if d.Rows < MinRows || d.Cols < MinCols {
		return fmt.Errorf("%w: %s, need at least %dx%d", ErrTerminalTooSmall, d, MinCols, MinRows)
	}
	return nil
}

// CheckCapacity rejects a disk count wider than the terminal allows.
func CheckCapacity(disks, cols int) error {
	if limit := MaxDisks(cols); disks > limit {
		return fmt.Errorf("%w: %d disks, at most %d for %d columns", ErrTooManyDisks, disks, limit, cols)
	}
	return nil
}

package layout

import (
	"fmt"

	"github.com/vovakirdan/tui-hanoi/internal/core"
)

// Rods is the number of rods in the puzzle.
const Rods = 3

// RodColumn returns the left column of rod 1..3.
// Any other rod number is a caller defect and panics.
func RodColumn(rod, cols int) int {
	switch rod {
	case 1:
		return 3
	case 2:
		return cols/3 - 3
	case 3:
		return (cols/3 - 3) * 2
	}
	panic(fmt.Sprintf("layout: rod %d out of range", rod))
}

// BaseLine is the row of the bottom disk.
func BaseLine(rows int) int {
	return rows - 4
}

// OverflowLine is the row of the [^N] marker above visible disks.
func OverflowLine(rows, visible int) int {
	return rows - visible - 4
}

// PoleColumn is the column of a rod's pole, centered over a bottom disk of
// initUnit units.
func PoleColumn(rodCol, initUnit int, p core.Profile) int {
	if p == core.ProfilePlain {
		return rodCol + initUnit/2
	}
	return rodCol + initUnit
}

// DiskStep is how many units each disk is narrower than the one below it.
func DiskStep(p core.Profile) int {
	if p == core.ProfilePlain {
		return 2
	}
	return 1
}

// DiskOffset is the column offset of a disk of width units on a rod whose
// bottom disk was initUnit units wide.
func DiskOffset(initUnit, width int, p core.Profile) int {
	return core.Max((initUnit-width)/DiskStep(p), 0)
}

// BirdLimit is the right bound of the random bird column offset.
func BirdLimit(unit int, p core.Profile) int {
	if p == core.ProfilePlain {
		return unit
	}
	return unit * 2
}

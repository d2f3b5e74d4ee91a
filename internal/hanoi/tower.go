// Package hanoi holds the puzzle itself: three rods, the legality rule and
// the completion check. It knows nothing about drawing.
package hanoi

import (
	"errors"
	"fmt"
	"math/rand"
)

var (
	// ErrIllegalMove means a larger disk was put over a smaller one.
	ErrIllegalMove = errors.New("hanoi: larger disk can't be put over a smaller disk")
	// ErrEmptySource means the source rod holds no disk.
	ErrEmptySource = errors.New("hanoi: can't move a disk from an empty rod")
	// ErrInvalidRod means a rod number outside 1..3.
	ErrInvalidRod = errors.New("hanoi: rod must be 1, 2 or 3")
	// ErrSameRod means source and destination are the same rod.
	ErrSameRod = errors.New("hanoi: source and destination are the same rod")
)

// Tower is the puzzle state. Disks are identified by size; each rod is a
// stack with the bottom disk first.
type Tower struct {
	disks int
	rods  [3][]int
}

// New creates a tower with all disks on rod 1. Sizes are distinct values in
// 1..disks+1 picked with rng, largest at the bottom; a nil rng gives sizes
// disks..1.
func New(disks int, rng *rand.Rand) (*Tower, error) {
	if disks < 1 {
		return nil, fmt.Errorf("hanoi: need at least one disk, got %d", disks)
	}
	t := &Tower{disks: disks}
	t.rods[0] = sizes(disks, rng)
	return t, nil
}

func sizes(n int, rng *rand.Rand) []int {
	s := make([]int, 0, n)
	if rng == nil {
		for i := n; i >= 1; i-- {
			s = append(s, i)
		}
		return s
	}
	// Drop one value of 1..n+1 to keep n distinct sizes.
	skip := rng.Intn(n+1) + 1
	for i := n + 1; i >= 1; i-- {
		if i != skip {
			s = append(s, i)
		}
	}
	return s
}

// Disks returns the number of disks in the puzzle.
func (t *Tower) Disks() int {
	return t.disks
}

// Move moves the top disk of rod src onto rod dst and reports whether the
// puzzle is now solved. A refused move leaves the tower unchanged.
func (t *Tower) Move(src, dst int) (bool, error) {
	if !validRod(src) || !validRod(dst) {
		return false, fmt.Errorf("%w: %d->%d", ErrInvalidRod, src, dst)
	}
	if src == dst {
		return false, ErrSameRod
	}

	from := &t.rods[src-1]
	to := &t.rods[dst-1]
	if len(*from) == 0 {
		return false, ErrEmptySource
	}

	disk := (*from)[len(*from)-1]
	if n := len(*to); n > 0 && disk > (*to)[n-1] {
		return false, ErrIllegalMove
	}

	*from = (*from)[:len(*from)-1]
	*to = append(*to, disk)
	return t.Solved(), nil
}

// Solved reports whether every disk is on rod 3.
func (t *Tower) Solved() bool {
	return len(t.rods[2]) == t.disks
}

// Rod returns a copy of rod n, bottom first.
func (t *Tower) Rod(n int) []int {
	if !validRod(n) {
		return nil
	}
	return append([]int(nil), t.rods[n-1]...)
}

// Count returns how many disks rod n holds.
func (t *Tower) Count(n int) int {
	if !validRod(n) {
		return 0
	}
	return len(t.rods[n-1])
}

func validRod(n int) bool {
	return n >= 1 && n <= 3
}

// MinimumMoves is the fewest moves that solve a puzzle of n disks.
func MinimumMoves(n int) int {
	if n <= 0 {
		return 0
	}
	return 1<<n - 1
}

// Rating classifies a winning run.
type Rating struct {
	Perfect bool // Solved in exactly the minimum
	Best    bool // Solved within six moves over the minimum
}

// Rate rates a solve of disks disks in moves moves.
func Rate(disks, moves int) Rating {
	least := MinimumMoves(disks)
	return Rating{
		Perfect: moves == least,
		Best:    moves > least && moves <= least+6,
	}
}

// Efficiency is the minimum move count as a percentage of moves used.
func Efficiency(disks, moves int) float64 {
	if moves <= 0 {
		return 0
	}
	return float64(MinimumMoves(disks)) / float64(moves) * 100
}

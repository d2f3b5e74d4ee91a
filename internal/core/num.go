// Package core provides the small shared vocabulary of the hanoi renderer:
// colors, terminal dimensions, glyph profiles and a plain cell buffer.
// It has no dependencies outside the standard library.
package core

// Clamp restricts val to [lo, hi].
func Clamp(val, lo, hi int) int {
	if val < lo {
		return lo
	}
	if val > hi {
		return hi
	}
	return val
}

// Max returns the larger of a and b.
func Max(a, b int) int {
	if a > b {
		return a
	}
	return b
}

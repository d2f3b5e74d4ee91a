package core

import (
	"fmt"
	"math/rand"
)

// Color is a terminal foreground color. Its value is the SGR parameter
// that selects it, so it can be written straight into an escape sequence.
type Color uint8

// The fixed palette. Nothing outside these seven codes is ever emitted.
const (
	ColorDefault Color = 0
	ColorRed     Color = 31
	ColorGreen   Color = 32
	ColorYellow  Color = 33
	ColorBlue    Color = 34
	ColorCyan    Color = 36
	ColorWhite   Color = 97
)

// Palette lists every color in SGR order.
var Palette = []Color{
	ColorDefault,
	ColorRed,
	ColorGreen,
	ColorYellow,
	ColorBlue,
	ColorCyan,
	ColorWhite,
}

var colorNames = map[Color]string{
	ColorDefault: "default",
	ColorRed:     "red",
	ColorGreen:   "green",
	ColorYellow:  "yellow",
	ColorBlue:    "blue",
	ColorCyan:    "cyan",
	ColorWhite:   "white",
}

// SGR returns the select-graphic-rendition parameter for the color.
func (c Color) SGR() int {
	return int(c)
}

func (c Color) String() string {
	if name, ok := colorNames[c]; ok {
		return name
	}
	return fmt.Sprintf("color(%d)", uint8(c))
}

// RandomColor picks one palette entry using rng.
func RandomColor(rng *rand.Rand) Color {
	return Palette[rng.Intn(len(Palette))]
}

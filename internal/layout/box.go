package layout

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/charmbracelet/x/ansi"

	"github.com/vovakirdan/tui-hanoi/internal/core"
)

// ErrUnknownPlacement is returned for a placement with no geometry rule.
var ErrUnknownPlacement = errors.New("layout: unknown placement")

// Placement is where a box goes on screen.
type Placement string

const (
	PlaceCenter     Placement = "center"
	PlaceTopFull    Placement = "top-full"
	PlaceBottomFull Placement = "bottom-full"
	PlaceFullScreen Placement = "full-screen"
)

// Box describes a bordered box. Line and Col address the top border.
type Box struct {
	Placement  Placement
	Vertical   int
	Horizontal int
	Lines      []string
	Line       int
	Col        int
	MaxLineLen int
	Title      string
}

// RightCol is the column of the right-hand border on text rows.
func (b Box) RightCol() int {
	if b.Placement == PlaceFullScreen {
		return b.Col + b.MaxLineLen + 2
	}
	return b.Col + b.MaxLineLen + 1
}

// TitlePos is where the title is drawn, centered above the top border.
func (b Box) TitlePos() (line, col int) {
	return b.Line - 1, b.Col + b.MaxLineLen/2 - ansi.StringWidth(b.Title)/2
}

// Geometry sizes a box for text at the given placement on a terminal of
// size d. Offset indents the text of full-width boxes.
func Geometry(d core.Dimensions, text string, place Placement, offset int, title string) (Box, error) {
	b := Box{Placement: place, Title: title}
	indent := strings.Repeat(" ", core.Max(offset, 0))

	switch place {
	case PlaceCenter:
		b.Lines = strings.Split(text, "\n")
		for _, l := range b.Lines {
			b.MaxLineLen = core.Max(b.MaxLineLen, ansi.StringWidth(l))
		}
		b.Vertical = len(b.Lines) + 1
		b.Horizontal = b.MaxLineLen + 2
		b.Line = d.Rows/2 - b.Vertical/2
		b.Col = d.Cols/2 - b.Horizontal/2
	case PlaceBottomFull:
		b.Lines = []string{indent + text}
		b.MaxLineLen = d.Cols - 7
		b.Horizontal = b.MaxLineLen + 2
		b.Vertical = 1
		b.Line = d.Rows - 3
		b.Col = 3
	case PlaceTopFull:
		b.Lines = []string{"", indent + text, ""}
		b.MaxLineLen = d.Cols - 7
		b.Horizontal = b.MaxLineLen + 2
		b.Vertical = 3
		b.Line = 2
		b.Col = 3
	case PlaceFullScreen:
		b.Lines = make([]string, d.Rows)
		b.MaxLineLen = d.Cols - 3
		b.Horizontal = b.MaxLineLen + 2
		b.Vertical = d.Rows
		b.Line = 1
		b.Col = 0
	default:
		return Box{}, fmt.Errorf("%w: %q", ErrUnknownPlacement, string(place))
	}
	return b, nil
}

// Descriptors keeps the most recent box drawn for each placement so callers
// can ask how much room, say, the top banner has.
type Descriptors struct {
	mu    sync.RWMutex
	boxes map[Placement]Box
}

// NewDescriptors creates an empty descriptor table.
func NewDescriptors() *Descriptors {
	return &Descriptors{boxes: make(map[Placement]Box)}
}

// Record stores b as the latest box for its placement.
func (d *Descriptors) Record(b Box) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.boxes[b.Placement] = b
}

// Last returns the latest box recorded for place.
func (d *Descriptors) Last(place Placement) (Box, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	b, ok := d.boxes[place]
	return b, ok
}

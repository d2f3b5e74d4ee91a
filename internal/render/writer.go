// Package render owns the terminal output: a positional write cache and the
// writer that replays it as cursor-addressed, colored control sequences.
package render

import (
	"bufio"
	"io"
	"sync"

	"github.com/charmbracelet/x/ansi"

	"github.com/vovakirdan/tui-hanoi/internal/core"
)

// Position is an absolute (line, column) cursor address as sent to the
// terminal. Bounds are not checked; what happens off-screen is up to the
// terminal.
type Position struct {
	Line int
	Col  int
}

// Writer renders text at absolute positions and keeps a Cache of what is on
// each line. Every write replays the whole line from the cache so later
// writes to a column supersede earlier ones.
type Writer struct {
	mu       sync.Mutex
	name     string
	out      *bufio.Writer
	cache    *Cache
	dims     core.Dimensions
	detached int
}

// NewWriter creates a writer on w for a terminal of the given size.
func NewWriter(name string, w io.Writer, dims core.Dimensions) *Writer {
	return &Writer{
		name:  name,
		out:   bufio.NewWriterSize(w, 4096),
		cache: NewCache(),
		dims:  dims,
	}
}

// Name returns the handle name the writer was created with.
func (w *Writer) Name() string {
	return w.name
}

// Dimensions returns the terminal size used to resolve anchors.
func (w *Writer) Dimensions() core.Dimensions {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.dims
}

// SetDimensions replaces the terminal size used to resolve anchors.
func (w *Writer) SetDimensions(d core.Dimensions) {
	w.mu.Lock()
	w.dims = d
	w.mu.Unlock()
}

// Write records text at (line, col) and re-renders that line. While the
// writer is detached the text is rendered alone and not recorded.
func (w *Writer) Write(line, col int, text string, style Style) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.detached > 0 {
		w.emit(Entry{Line: line, Col: col, Text: text, Style: style})
		return w.out.Flush()
	}

	w.cache.Put(line, col, text, style)
	for _, e := range w.cache.Line(line) {
		w.emit(e)
	}
	return w.out.Flush()
}

// WriteAt writes text at a symbolic anchor and returns where it landed.
func (w *Writer) WriteAt(a Anchor, text string, style Style) (Position, error) {
	pos, err := w.Resolve(a, text)
	if err != nil {
		return Position{}, err
	}
	return pos, w.Write(pos.Line, pos.Col, text, style)
}

// Resolve maps an anchor to a position for text of the given content,
// using the writer's current dimensions and the rendered width of text.
func (w *Writer) Resolve(a Anchor, text string) (Position, error) {
	return a.Resolve(w.Dimensions(), ansi.StringWidth(text))
}

func (w *Writer) emit(e Entry) {
	if e.Style.Blink {
		w.out.Write(csiBlinkOn)
	}
	writeCursorPos(w.out, e.Line, e.Col)
	writeSGR(w.out, e.Style.Color.SGR())
	w.out.WriteString(e.Text)
	w.out.Write(csiEraseLine)
	w.out.Write(csiBlinkOff)
}

// MoveTo parks the cursor without writing anything.
func (w *Writer) MoveTo(line, col int) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	writeCursorPos(w.out, line, col)
	return w.out.Flush()
}

// Reset erases the terminal and drops the cache. Used at full redraw
// boundaries.
func (w *Writer) Reset() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.cache.Reset()
	w.out.Write(csiReset)
	w.out.Write(csiClearScreen)
	return w.out.Flush()
}

// Print writes raw text at the current cursor position, bypassing the cache.
func (w *Writer) Print(text string) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.out.WriteString(text)
	return w.out.Flush()
}

// SetColor selects the color for whatever is printed next, such as the
// echo of typed input.
func (w *Writer) SetColor(c core.Color) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	writeSGR(w.out, c.SGR())
	return w.out.Flush()
}

// Detached clears the screen and runs fn with caching suspended. Caching is
// restored on every exit path, including a panic in fn.
func (w *Writer) Detached(fn func() error) error {
	w.mu.Lock()
	w.detached++
	w.out.Write(csiClearScreen)
	err := w.out.Flush()
	w.mu.Unlock()

	defer func() {
		w.mu.Lock()
		w.detached--
		w.mu.Unlock()
	}()

	if err != nil {
		return err
	}
	return fn()
}

// IsDetached reports whether caching is currently suspended.
func (w *Writer) IsDetached() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.detached > 0
}

// Entries returns the current cache contents ordered by line and column.
func (w *Writer) Entries() []Entry {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.cache.Entries()
}

// Snapshot renders the cache into a plain cell buffer the size of the
// terminal, applying each line's writes the way the terminal would.
func (w *Writer) Snapshot() *core.Screen {
	w.mu.Lock()
	defer w.mu.Unlock()

	s := core.NewScreen(w.dims.Cols, w.dims.Rows)
	for _, line := range w.cache.Lines() {
		y := core.Max(line, 1) - 1
		for _, e := range w.cache.Line(line) {
			x := core.Max(e.Col, 1) - 1
			end := s.DrawText(x, y, ansi.Strip(e.Text), e.Style.Color)
			s.ClearFrom(end, y)
		}
	}
	return s
}

package render

import (
	"sort"

	"github.com/vovakirdan/tui-hanoi/internal/core"
)

// Style is how an entry is drawn.
type Style struct {
	Color core.Color
	Blink bool
}

// Entry is one cached write. Seq is the cache-wide insertion counter at the
// time of the write.
type Entry struct {
	Seq   uint64
	Line  int
	Col   int
	Text  string
	Style Style
}

// Cache remembers, for every screen line, the latest text written at each
// column. A later write at the same (line, col) replaces the earlier one, so
// stale text is superseded without an explicit erase.
type Cache struct {
	seq   uint64
	lines map[int]map[int]Entry
}

// NewCache creates an empty cache.
func NewCache() *Cache {
	return &Cache{lines: make(map[int]map[int]Entry)}
}

// Put records text at (line, col) and returns the stored entry.
func (c *Cache) Put(line, col int, text string, style Style) Entry {
	c.seq++
	e := Entry{Seq: c.seq, Line: line, Col: col, Text: text, Style: style}
	cols, ok := c.lines[line]
	if !ok {
		cols = make(map[int]Entry)
		c.lines[line] = cols
	}
	cols[col] = e
	return e
}

// Line returns the current entries of a line in ascending column order.
func (c *Cache) Line(line int) []Entry {
	cols := c.lines[line]
	entries := make([]Entry, 0, len(cols))
	for _, e := range cols {
		entries = append(entries, e)
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Col < entries[j].Col
	})
	return entries
}

// Lines returns every line number holding entries, ascending.
func (c *Cache) Lines() []int {
	lines := make([]int, 0, len(c.lines))
	for l := range c.lines {
		lines = append(lines, l)
	}
	sort.Ints(lines)
	return lines
}

// Entries returns all current entries ordered by line, then column.
func (c *Cache) Entries() []Entry {
	var all []Entry
	for _, l := range c.Lines() {
		all = append(all, c.Line(l)...)
	}
	return all
}

// Len returns the number of current entries.
func (c *Cache) Len() int {
	n := 0
	for _, cols := range c.lines {
		n += len(cols)
	}
	return n
}

// Seq returns the last insertion sequence number handed out.
func (c *Cache) Seq() uint64 {
	return c.seq
}

// Reset drops every entry. The sequence counter keeps counting.
func (c *Cache) Reset() {
	c.lines = make(map[int]map[int]Entry)
}

package watch

import (
	"fmt"
	"sync"

	"golang.org/x/term"

	"github.com/vovakirdan/tui-hanoi/internal/core"
)

// SizeSource reports the current terminal size.
type SizeSource interface {
	Size() (core.Dimensions, error)
}

// TermSize queries the size of the terminal behind a file descriptor.
type TermSize struct {
	Fd int
}

// Size returns the terminal size via term.GetSize.
func (t TermSize) Size() (core.Dimensions, error) {
	w, h, err := term.GetSize(t.Fd)
	if err != nil {
		return core.Dimensions{}, fmt.Errorf("watch: cannot query terminal size: %w", err)
	}
	return core.Dimensions{Rows: h, Cols: w}, nil
}

// ManualSize is a SizeSource whose value is pushed in from outside, such as
// window-change requests on an SSH session.
type ManualSize struct {
	mu sync.RWMutex
	d  core.Dimensions
}

// NewManualSize creates a source reporting d until Set is called.
func NewManualSize(d core.Dimensions) *ManualSize {
	return &ManualSize{d: d}
}

// Set replaces the reported size.
func (m *ManualSize) Set(d core.Dimensions) {
	m.mu.Lock()
	m.d = d
	m.mu.Unlock()
}

// Size returns the last size set.
func (m *ManualSize) Size() (core.Dimensions, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.d, nil
}

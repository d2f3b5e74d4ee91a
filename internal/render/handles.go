package render

import (
	"fmt"
	"io"
	"sort"
	"sync"

	"github.com/vovakirdan/tui-hanoi/internal/core"
)

// Handles is a table of writers by logical screen name. All writers share
// one physical terminal but keep separate caches.
type Handles struct {
	mu      sync.RWMutex
	out     io.Writer
	dims    core.Dimensions
	writers map[string]*Writer
}

// NewHandles creates a handle table whose writers write to out.
func NewHandles(out io.Writer, dims core.Dimensions) *Handles {
	return &Handles{
		out:     out,
		dims:    dims,
		writers: make(map[string]*Writer),
	}
}

// Register adds an existing writer under name.
// Panics if the name is already taken.
func (h *Handles) Register(name string, w *Writer) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, exists := h.writers[name]; exists {
		panic(fmt.Sprintf("render: writer %q already registered", name))
	}
	h.writers[name] = w
}

// Get returns the writer registered under name, creating it on first use.
func (h *Handles) Get(name string) *Writer {
	h.mu.RLock()
	w, ok := h.writers[name]
	h.mu.RUnlock()
	if ok {
		return w
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	if w, ok := h.writers[name]; ok {
		return w
	}
	w = NewWriter(name, h.out, h.dims)
	h.writers[name] = w
	return w
}

// Lookup returns the writer under name without creating it.
func (h *Handles) Lookup(name string) (*Writer, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	w, ok := h.writers[name]
	return w, ok
}

// SetDimensions updates the size of every registered writer and of writers
// created later.
func (h *Handles) SetDimensions(d core.Dimensions) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.dims = d
	for _, w := range h.writers {
		w.SetDimensions(d)
	}
}

// Names returns all registered names sorted alphabetically.
func (h *Handles) Names() []string {
	h.mu.RLock()
	defer h.mu.RUnlock()

	names := make([]string, 0, len(h.writers))
	for name := range h.writers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

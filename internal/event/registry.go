// Package event provides the named-callback table that environment changes
// are dispatched through, and the queue that carries them from the watcher
// goroutine to the foreground.
package event

import (
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/vovakirdan/tui-hanoi/internal/core"
)

// Well-known event names raised by the watcher.
const (
	Redraw       = "redraw"
	WidthWarning = "width-warning"
	TimeLimit    = "time-limit"
)

// ErrNoSuchEvent is returned when dispatching a name nobody registered.
var ErrNoSuchEvent = errors.New("event: no such event")

// Event is one notification. Fields beyond Name are filled in as relevant
// to the event kind.
type Event struct {
	Name       string
	Dims       core.Dimensions // New size (redraw, width-warning)
	GenericMax int             // Recomputed pole height (redraw only)
	Remaining  time.Duration   // Time left (time-limit)
}

// Handler reacts to an event.
type Handler func(Event) error

// Sink accepts events. Both Registry and Queue are sinks.
type Sink interface {
	Emit(Event) error
}

// Registry maps event names to one handler each.
type Registry struct {
	mu       sync.RWMutex
	handlers map[string]Handler
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{handlers: make(map[string]Handler)}
}

// Register stores h under name, replacing any earlier handler.
func (r *Registry) Register(name string, h Handler) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.handlers[name] = h
}

// Dispatch calls the handler for ev.Name on the calling goroutine.
func (r *Registry) Dispatch(ev Event) error {
	r.mu.RLock()
	h, ok := r.handlers[ev.Name]
	r.mu.RUnlock()

	if !ok {
		return fmt.Errorf("%w: %q", ErrNoSuchEvent, ev.Name)
	}
	return h(ev)
}

// Emit is Dispatch; it makes the registry usable as a synchronous Sink.
func (r *Registry) Emit(ev Event) error {
	return r.Dispatch(ev)
}

// Names returns the registered event names, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.handlers))
	for name := range r.handlers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

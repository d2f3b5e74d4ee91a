// Package watch samples the terminal size and the time limit on a fixed
// cadence and reports changes as events.
package watch

import (
	"context"
	"io"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-hanoi/internal/core"
	"github.com/vovakirdan/tui-hanoi/internal/event"
	"github.com/vovakirdan/tui-hanoi/internal/layout"
)

// DefaultInterval is the sampling cadence.
const DefaultInterval = 300 * time.Millisecond

// Signal is the run state of a Watcher. Only the owner changes it.
type Signal int32

const (
	Running Signal = iota
	Paused
	Stopped
)

func (s Signal) String() string {
	switch s {
	case Running:
		return "running"
	case Paused:
		return "paused"
	case Stopped:
		return "stopped"
	}
	return "unknown"
}

// Countdown reports the time left on an active, unsuppressed time limit.
// It is called from the watcher goroutine.
type Countdown interface {
	Remaining() (time.Duration, bool)
}

// Config holds watcher settings.
type Config struct {
	Interval  time.Duration      // Sampling cadence
	Runtime   core.RuntimeConfig // Its profile recomputes the generic max
	Countdown Countdown          // Optional
	Logger    *log.Logger        // Optional
}

// Watcher polls a SizeSource and emits redraw, width-warning and
// time-limit events to a Sink. It never touches render state itself.
type Watcher struct {
	size      SizeSource
	sink      event.Sink
	interval  time.Duration
	profile   core.Profile
	countdown Countdown
	logger    *log.Logger

	signal atomic.Int32
	done   chan struct{}

	// Owned by the watcher goroutine.
	dims       core.Dimensions
	genericMax int
}

// New creates a watcher that starts from the initial size.
func New(size SizeSource, sink event.Sink, initial core.Dimensions, cfg Config) *Watcher {
	if cfg.Interval <= 0 {
		cfg.Interval = DefaultInterval
	}
	if cfg.Logger == nil {
		cfg.Logger = log.New(io.Discard)
	}
	return &Watcher{
		size:       size,
		sink:       sink,
		interval:   cfg.Interval,
		profile:    cfg.Runtime.Profile,
		countdown:  cfg.Countdown,
		logger:     cfg.Logger,
		done:       make(chan struct{}),
		dims:       initial,
		genericMax: layout.GenericMax(initial, cfg.Runtime.Profile),
	}
}

// Start runs the watcher in its own goroutine.
func (w *Watcher) Start(ctx context.Context) {
	go w.Run(ctx)
}

// Run samples every interval until the signal is Stopped or ctx is done.
func (w *Watcher) Run(ctx context.Context) {
	defer close(w.done)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	w.logger.Debug("watcher started", "interval", w.interval, "size", w.dims)
	for {
		select {
		case <-ctx.Done():
			w.signal.Store(int32(Stopped))
			w.logger.Debug("watcher cancelled")
			return
		case <-ticker.C:
			if !w.tick() {
				w.logger.Debug("watcher stopped")
				return
			}
		}
	}
}

// Done is closed when Run returns.
func (w *Watcher) Done() <-chan struct{} {
	return w.done
}

// Signal returns the current run state.
func (w *Watcher) Signal() Signal {
	return Signal(w.signal.Load())
}

// Pause makes the watcher skip evaluation until Resume. No effect once stopped.
func (w *Watcher) Pause() {
	w.signal.CompareAndSwap(int32(Running), int32(Paused))
}

// Resume undoes Pause. No effect once stopped.
func (w *Watcher) Resume() {
	w.signal.CompareAndSwap(int32(Paused), int32(Running))
}

// Stop asks the watcher to exit. It is observed on the next tick.
func (w *Watcher) Stop() {
	w.signal.Store(int32(Stopped))
}

// tick performs one sampling step and reports whether to keep running.
func (w *Watcher) tick() bool {
	switch w.Signal() {
	case Stopped:
		return false
	case Paused:
		return true
	}

	d, err := w.size.Size()
	if err != nil {
		w.logger.Debug("size sample failed", "error", err)
		return true
	}

	switch {
	case d.Cols != w.dims.Cols && d.Rows == w.dims.Rows:
		// Width alone only warns; the generic max keeps its old value.
		w.dims.Cols = d.Cols
		w.emit(event.Event{Name: event.WidthWarning, Dims: w.dims})
	case d != w.dims:
		w.dims = d
		w.genericMax = layout.GenericMax(d, w.profile)
		w.logger.Debug("terminal resized", "size", d, "generic_max", w.genericMax)
		w.emit(event.Event{Name: event.Redraw, Dims: d, GenericMax: w.genericMax})
	case w.countdown != nil:
		if left, ok := w.countdown.Remaining(); ok {
			w.emit(event.Event{Name: event.TimeLimit, Remaining: left})
		}
	}
	return true
}

func (w *Watcher) emit(ev event.Event) {
	if w.Signal() == Stopped {
		return
	}
	if err := w.sink.Emit(ev); err != nil {
		w.logger.Debug("event not delivered", "event", ev.Name, "error", err)
	}
}

// Dimensions returns the last size the watcher sampled. Only meaningful
// from the watcher goroutine or after Done.
func (w *Watcher) Dimensions() core.Dimensions {
	return w.dims
}

// GenericMax returns the watcher's current generic max visible disk count.
// Only meaningful from the watcher goroutine or after Done.
func (w *Watcher) GenericMax() int {
	return w.genericMax
}

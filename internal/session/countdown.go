package session

import (
	"fmt"
	"sync"
	"time"
)

// countdown tracks the optional time limit. The watcher polls Remaining on
// every tick; announce picks the ticks worth showing: half the limit, a
// quarter of it and expiry, each once per game.
type countdown struct {
	mu        sync.Mutex
	limit     time.Duration
	start     time.Time
	now       func() time.Time
	muted     bool
	announced map[int]bool
}

func newCountdown(limit time.Duration, now func() time.Time) *countdown {
	return &countdown{
		limit:     limit,
		now:       now,
		start:     now(),
		announced: make(map[int]bool),
	}
}

// Reset restarts the clock for a new game.
func (c *countdown) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.start = c.now()
	c.announced = make(map[int]bool)
}

// Mute stops announcements for the rest of the session.
func (c *countdown) Mute() {
	c.mu.Lock()
	c.muted = true
	c.mu.Unlock()
}

// Left returns the whole seconds remaining, or false without a limit.
func (c *countdown) Left() (time.Duration, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.limit <= 0 {
		return 0, false
	}
	return time.Duration(c.secondsLeft()) * time.Second, true
}

func (c *countdown) secondsLeft() int {
	total := int(c.limit / time.Second)
	elapsed := int(c.now().Sub(c.start) / time.Second)
	return max(total-elapsed, 0)
}

// Remaining implements watch.Countdown.
func (c *countdown) Remaining() (time.Duration, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.limit <= 0 || c.muted {
		return 0, false
	}
	return time.Duration(c.secondsLeft()) * time.Second, true
}

// announce reports whether left is an announcement point not yet shown in
// this game, and marks it shown.
func (c *countdown) announce(left time.Duration) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.limit <= 0 || c.muted {
		return false
	}

	secs := int(left / time.Second)
	total := int(c.limit / time.Second)
	if secs != 0 && secs != total/2 && secs != total/4 {
		return false
	}
	if c.announced[secs] {
		return false
	}
	c.announced[secs] = true
	return true
}

// clock formats d as H:MM:SS.
func clock(d time.Duration) string {
	secs := int(d / time.Second)
	return fmt.Sprintf("%d:%02d:%02d", secs/3600, secs%3600/60, secs%60)
}

// Package session runs one game on one terminal: it reads command lines,
// applies them to the puzzle and keeps the screen current.
//
// The session goroutine is the only one that touches the scene and the
// output cache. The resize watcher runs on its own goroutine and hands its
// events over through an event.Queue; the session applies them while it
// waits for input and again before every redraw.
package session

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-hanoi/internal/config"
	"github.com/vovakirdan/tui-hanoi/internal/core"
	"github.com/vovakirdan/tui-hanoi/internal/event"
	"github.com/vovakirdan/tui-hanoi/internal/hanoi"
	"github.com/vovakirdan/tui-hanoi/internal/layout"
	"github.com/vovakirdan/tui-hanoi/internal/render"
	"github.com/vovakirdan/tui-hanoi/internal/scene"
	"github.com/vovakirdan/tui-hanoi/internal/storage"
	"github.com/vovakirdan/tui-hanoi/internal/watch"
)

const (
	mainHandle = "main"
	textHandle = "text"

	defaultQueueSize = 16
)

// Options configures a Session. Settings and Size are required.
type Options struct {
	Settings config.Settings
	Size     watch.SizeSource
	Store    *storage.Store // Optional; records are kept only in memory without it
	Logger   *log.Logger
	Pager    Pager
	Renderer *lipgloss.Renderer
	Seed     int64 // 0 picks one from the clock

	// ConfigPath is where create-config writes. Defaults to the user
	// config path.
	ConfigPath string

	Interval  time.Duration // Watcher cadence
	QueueSize int
	Sleep     func(time.Duration)
	Now       func() time.Time
}

// Session is one game bound to a terminal.
type Session struct {
	settings config.Settings
	logger   *log.Logger
	store    *storage.Store
	pager    Pager
	styles   styles
	sleep    func(time.Duration)
	now      func() time.Time
	confPath string

	rng     *rand.Rand
	handles *render.Handles
	main    *render.Writer
	text    *render.Writer
	scene   *scene.Scene
	in      *input

	queue   *event.Queue
	events  *event.Registry
	watcher *watch.Watcher
	clock   *countdown

	mode     core.InterfaceMode
	tower    *hanoi.Tower
	player   string
	record   storage.PlayerRecord
	moves    int
	lives    int
	cheat    bool
	finished bool
	done     bool
	started  time.Time
	history  []string
	commands []command
}

// New prepares a session reading lines from in and drawing to out. It fails
// when the terminal is too small or cannot hold the configured disks.
func New(in LineReader, out io.Writer, opts Options) (*Session, error) {
	if err := opts.Settings.Validate(); err != nil {
		return nil, err
	}
	if opts.Size == nil {
		return nil, errors.New("session: no terminal size source")
	}
	dims, err := opts.Size.Size()
	if err != nil {
		return nil, fmt.Errorf("session: cannot read terminal size: %w", err)
	}
	if err := layout.CheckSize(dims); err != nil {
		return nil, err
	}
	if err := layout.CheckCapacity(opts.Settings.DiskCapacity, dims.Cols); err != nil {
		return nil, err
	}

	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	if opts.Sleep == nil {
		opts.Sleep = time.Sleep
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Seed == 0 {
		opts.Seed = opts.Now().UnixNano()
	}
	rc, err := opts.Settings.Runtime(opts.Seed)
	if err != nil {
		return nil, err
	}
	if opts.Renderer == nil {
		opts.Renderer = lipgloss.NewRenderer(out)
	}
	if opts.ConfigPath == "" {
		opts.ConfigPath = config.UserConfigPath()
	}
	if opts.QueueSize <= 0 {
		opts.QueueSize = defaultQueueSize
	}

	s := &Session{
		settings: opts.Settings,
		logger:   opts.Logger,
		store:    opts.Store,
		pager:    opts.Pager,
		styles:   newStyles(opts.Renderer),
		sleep:    opts.Sleep,
		now:      opts.Now,
		confPath: opts.ConfigPath,
		rng:      rand.New(rand.NewSource(rc.Seed)),
		handles:  render.NewHandles(out, dims),
		in:       newInput(in),
		queue:    event.NewQueue(opts.QueueSize),
		events:   event.NewRegistry(),
		mode:     rc.Mode,
		commands: commandTable(),
	}
	s.main = s.handles.Get(mainHandle)
	s.text = render.NewWriter(textHandle, out, dims)
	s.handles.Register(textHandle, s.text)
	s.scene = scene.New(s.main, scene.Options{
		Runtime: rc,
		Rand:    s.rng,
		Hold:    holdTimes(opts.Settings.Hold),
		Sleep:   opts.Sleep,
	})
	s.clock = newCountdown(opts.Settings.TimeLimitDuration(), opts.Now)
	s.watcher = watch.New(opts.Size, s.queue, dims, watch.Config{
		Interval:  opts.Interval,
		Runtime:   rc,
		Countdown: s.clock,
		Logger:    opts.Logger,
	})

	s.events.Register(event.Redraw, s.onRedraw)
	s.events.Register(event.WidthWarning, s.onWidthWarning)
	s.events.Register(event.TimeLimit, s.onTimeLimit)

	if err := s.setPlayer(opts.Settings.PlayerName); err != nil {
		return nil, err
	}
	if err := s.newGame(rc.Disks); err != nil {
		return nil, err
	}
	s.logger.Debug("session ready", "size", dims, "profile", rc.Profile, "events", s.events.Names())
	return s, nil
}

func holdTimes(h config.HoldSeconds) map[scene.Kind]time.Duration {
	out := make(map[scene.Kind]time.Duration)
	for name, d := range h.Durations() {
		out[scene.Kind(name)] = d
	}
	return out
}

// setPlayer switches to the named player, generating a name when empty,
// and loads their record.
func (s *Session) setPlayer(name string) error {
	if name == "" {
		name = "player_1"
		if s.store != nil {
			generated, err := s.store.NextPlayerName()
			if err != nil {
				return err
			}
			name = generated
		}
	}
	s.player = name
	s.record = storage.PlayerRecord{Name: name}
	if s.store == nil {
		return nil
	}
	rec, err := s.store.Player(name)
	if err != nil {
		s.logger.Warn("cannot load player record", "player", name, "error", err)
		return nil
	}
	s.record = rec
	return nil
}

func (s *Session) newGame(disks int) error {
	t, err := hanoi.New(disks, s.rng)
	if err != nil {
		return err
	}
	if err := s.scene.Init(disks); err != nil {
		return err
	}
	s.tower = t
	s.moves = 0
	s.lives = s.settings.Lives
	s.cheat = false
	s.finished = false
	s.started = s.now()
	s.clock.Reset()
	s.logger.Info("new game", "player", s.player, "disks", disks)
	return nil
}

// Run plays until the player quits, loses, input ends or ctx is cancelled.
// Only rendering failures are returned.
func (s *Session) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	s.in.start(ctx)
	s.watcher.Start(ctx)
	if s.mode == core.ModeTextual {
		s.watcher.Pause()
	}
	defer s.restore()

	for !s.done {
		if s.lives <= 0 {
			return s.lose()
		}
		s.drain()
		if err := s.display(); err != nil {
			return err
		}

		line, err := s.next(ctx)
		switch {
		case errors.Is(err, io.EOF), errors.Is(err, context.Canceled):
			s.abandon()
			return nil
		case err != nil:
			return err
		}

		s.history = append(s.history, line)
		if err := s.execute(ctx, line); err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, context.Canceled) {
				s.abandon()
				return nil
			}
			return err
		}
	}
	return nil
}

func (s *Session) restore() {
	s.watcher.Stop()
	if n := s.queue.Dropped(); n > 0 {
		s.logger.Debug("watcher events dropped", "count", n)
	}
	if err := s.main.Reset(); err != nil {
		s.logger.Debug("terminal restore failed", "error", err)
	}
	_ = s.main.MoveTo(1, 1)
}

// drain applies events that arrived while a command was running.
func (s *Session) drain() {
	for _, err := range s.queue.Drain(s.events) {
		s.logger.Debug("event handler failed", "error", err)
	}
}

// next waits for a command line, applying watcher events meanwhile.
func (s *Session) next(ctx context.Context) (string, error) {
	s.in.request()
	for {
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case ev := <-s.queue.C():
			if err := s.events.Dispatch(ev); err != nil {
				return "", err
			}
		case r := <-s.in.lines:
			s.in.received()
			return r.line, r.err
		}
	}
}

// prompt reads one line with the watcher held, for answers that must not
// be interrupted by a redraw.
func (s *Session) prompt(ctx context.Context) (string, error) {
	release := s.hold()
	defer release()

	s.in.request()
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case r := <-s.in.lines:
		s.in.received()
		return r.line, r.err
	}
}

// hold pauses a running watcher and returns the function that resumes it.
func (s *Session) hold() func() {
	if s.watcher.Signal() != watch.Running {
		return func() {}
	}
	s.watcher.Pause()
	return s.watcher.Resume
}

// confirm shows a confirmation box and reports whether the answer was yes.
// offset shifts the answer cursor left.
func (s *Session) confirm(ctx context.Context, msg string, offset int) (bool, error) {
	pos, err := s.scene.Message(scene.KindConfirmation, msg)
	if err != nil {
		return false, err
	}
	if err := s.main.MoveTo(pos.Line, pos.Col-offset); err != nil {
		return false, err
	}
	if err := s.main.SetColor(core.ColorRed); err != nil {
		return false, err
	}
	answer, err := s.prompt(ctx)
	if err != nil {
		return false, err
	}
	return answer == "y" || answer == "Y", nil
}

func (s *Session) status() scene.Status {
	return scene.Status{
		Player:      s.player,
		BestRuns:    s.record.BestRuns,
		PerfectRuns: s.record.PerfectRuns,
		Moves:       s.moves,
		Lives:       s.lives,
	}
}

// display draws the current state in the active interface mode and leaves
// the cursor where input is typed.
func (s *Session) display() error {
	if s.mode == core.ModeTextual {
		return s.showText()
	}
	if err := s.scene.Draw(s.status(), false); err != nil {
		return err
	}
	return s.main.SetColor(core.RandomColor(s.rng))
}

func (s *Session) message(kind scene.Kind, msg string) error {
	_, err := s.scene.Message(kind, msg)
	return err
}

func (s *Session) onRedraw(ev event.Event) error {
	s.handles.SetDimensions(ev.Dims)
	s.scene.Resize(ev.Dims, ev.GenericMax)
	s.logger.Debug("redraw", "size", ev.Dims, "generic_max", ev.GenericMax)
	return s.display()
}

// onWidthWarning takes the new width but keeps the pole height computed for
// the old one.
func (s *Session) onWidthWarning(ev event.Event) error {
	s.handles.SetDimensions(ev.Dims)
	s.scene.Resize(ev.Dims, s.scene.GenericMax())
	err := s.message(scene.KindWarning,
		"Terminal width change detected!\nPlease revert to the original terminal width for an optimal game.")
	if err != nil {
		return err
	}
	return s.display()
}

func (s *Session) onTimeLimit(ev event.Event) error {
	if !s.clock.announce(ev.Remaining) {
		return nil
	}
	if ev.Remaining <= 0 {
		if err := s.message(scene.KindError, "Timelimit Exceeded!"); err != nil {
			return err
		}
	} else {
		if err := s.message(scene.KindInfo, "Remaining time: "+clock(ev.Remaining)+"  "); err != nil {
			return err
		}
		s.sleep(2 * time.Second)
	}
	return s.display()
}

func (s *Session) win() error {
	s.finished = true
	rating := hanoi.Rate(s.tower.Disks(), s.moves)
	s.logger.Info("game won", "player", s.player, "moves", s.moves, "perfect", rating.Perfect)

	if err := s.message(scene.KindWin, scene.WinText(s.tower.Disks(), s.moves)); err != nil {
		return err
	}
	s.save(storage.OutcomeWon, rating)
	if s.store == nil {
		if rating.Best {
			s.record.BestRuns++
		}
		if rating.Perfect {
			s.record.PerfectRuns++
		}
	}
	return nil
}

func (s *Session) lose() error {
	s.watcher.Stop()
	s.finished = true
	s.done = true
	s.logger.Info("game lost", "player", s.player, "moves", s.moves)
	s.save(storage.OutcomeLost, hanoi.Rating{})
	return s.message(scene.KindLoss, scene.LossText)
}

// abandon records an unfinished game when the session ends early.
func (s *Session) abandon() {
	if !s.finished {
		s.save(storage.OutcomeQuit, hanoi.Rating{})
		s.finished = true
	}
	s.done = true
}

// save records the game. Storage failures are logged, never fatal.
func (s *Session) save(outcome storage.Outcome, rating hanoi.Rating) {
	if s.store == nil {
		return
	}
	rec, err := s.store.SaveResult(storage.GameResult{
		Player:   s.player,
		Disks:    s.tower.Disks(),
		Moves:    s.moves,
		Outcome:  outcome,
		Best:     rating.Best,
		Perfect:  rating.Perfect,
		Duration: s.now().Sub(s.started),
	})
	if err != nil {
		s.logger.Warn("cannot save game", "player", s.player, "error", err)
		return
	}
	s.record = rec
}

// Player returns the active player name.
func (s *Session) Player() string { return s.player }

// Mode returns the active interface mode.
func (s *Session) Mode() core.InterfaceMode { return s.mode }

// Watcher exposes the resize watcher, mainly for its run state.
func (s *Session) Watcher() *watch.Watcher { return s.watcher }

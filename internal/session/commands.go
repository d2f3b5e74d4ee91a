package session

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/vovakirdan/tui-hanoi/internal/config"
	"github.com/vovakirdan/tui-hanoi/internal/core"
	"github.com/vovakirdan/tui-hanoi/internal/hanoi"
	"github.com/vovakirdan/tui-hanoi/internal/layout"
	"github.com/vovakirdan/tui-hanoi/internal/render"
	"github.com/vovakirdan/tui-hanoi/internal/scene"
	"github.com/vovakirdan/tui-hanoi/internal/storage"
)

const howToPlay = `Welcome to Hanoi
This is a playable implementation of a mathematical
puzzle called Towers of Hanoi. The game is simple:
move every disk from the first rod to the third,
abiding by two rules:
1: Only one disk can be moved at a time.
2: A bigger disk may not be put over a smaller disk.

Use the list-commands command to list all the
valid commands.

Press Enter to Continue`

type command struct {
	names   []string
	usage   string
	summary string
	minArgs int
	run     func(s *Session, ctx context.Context, args []string) error
}

func commandTable() []command {
	return []command{
		{names: []string{"redraw", "rd"}, summary: "redraw the screen (not in textual mode)", run: (*Session).cmdRedraw},
		{names: []string{"quit", "exit"}, summary: "quit the game", run: (*Session).cmdQuit},
		{names: []string{"move", "m"}, usage: "<src> <dst>", summary: "move the top disk of rod src onto rod dst", minArgs: 2, run: (*Session).cmdMove},
		{names: []string{"register-player", "rg"}, usage: "<name>", summary: "play under another name", minArgs: 1, run: (*Session).cmdRegister},
		{names: []string{"help"}, summary: "show basic help", run: (*Session).cmdHelp},
		{names: []string{"replay"}, usage: "[disks|p]", summary: "start over, optionally with another disk count ('p' keeps the current one)", run: (*Session).cmdReplay},
		{names: []string{"show-minima", "sm"}, summary: "show the minimum moves that solve the puzzle", run: (*Session).cmdShowMinima},
		{names: []string{"seek-top"}, summary: "show only the top disk of every rod", run: (*Session).cmdSeekTop},
		{names: []string{"icheat"}, summary: "illegal moves no longer cost a life", run: (*Session).cmdCheat},
		{names: []string{"inocheat"}, summary: "illegal moves cost a life again", run: (*Session).cmdNoCheat},
		{names: []string{"history"}, summary: "show command history", run: (*Session).cmdHistory},
		{names: []string{"toggle-mode", "tm"}, usage: "<mode>", summary: "switch interface: graphics (g, tui) or textual (t, text)", minArgs: 1, run: (*Session).cmdToggleMode},
		{names: []string{"list-commands", "lc"}, summary: "show this command table", run: (*Session).cmdListCommands},
		{names: []string{"create-config", "cc"}, summary: "write the default config file to the home directory", run: (*Session).cmdCreateConfig},
		{names: []string{"time-limit", "tl"}, summary: "show the time left, if a limit is set", run: (*Session).cmdTimeLimit},
		{names: []string{"no-tld"}, summary: "stop time limit announcements", run: (*Session).cmdMuteClock},
		{names: []string{"dump-cache", "dbc"}, usage: "[handle]", summary: "show the output cache of a screen (main by default)", run: (*Session).cmdDumpCache},
	}
}

func (s *Session) lookup(name string) (command, bool) {
	for _, c := range s.commands {
		for _, n := range c.names {
			if n == name {
				return c, true
			}
		}
	}
	return command{}, false
}

// execute runs one command line.
func (s *Session) execute(ctx context.Context, line string) error {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil
	}
	name, args := fields[0], fields[1:]

	cmd, ok := s.lookup(name)
	if !ok {
		return s.message(scene.KindError, fmt.Sprintf("unrecognised command %q", name))
	}
	if len(args) < cmd.minArgs {
		return s.message(scene.KindError, fmt.Sprintf("'%s' expects some arguments!", name))
	}
	return cmd.run(s, ctx, args)
}

// notice prints a short line in textual mode.
func (s *Session) notice(msg string) error {
	return s.text.Print(s.styles.notice.Render(msg) + "\n")
}

// pause waits for Enter.
func (s *Session) pause(ctx context.Context) error {
	_, err := s.prompt(ctx)
	return err
}

func (s *Session) cmdRedraw(_ context.Context, _ []string) error {
	if s.mode == core.ModeTextual {
		return s.notice("`redraw` is unavailable in this mode")
	}
	// The loop redraws before every prompt.
	return nil
}

func (s *Session) cmdQuit(ctx context.Context, _ []string) error {
	if !s.finished {
		ok, err := s.confirm(ctx, "Are you sure you want to\nend the game abruptly?\nNote that all game data will be lost!", 0)
		if err != nil || !ok {
			return err
		}
	}
	s.abandon()
	return nil
}

func (s *Session) cmdMove(_ context.Context, args []string) error {
	src, err := strconv.Atoi(args[0])
	if err != nil {
		return s.message(scene.KindError, "`move` expects integer arguments!")
	}
	dst, err := strconv.Atoi(args[1])
	if err != nil {
		return s.message(scene.KindError, "`move` expects integer arguments!")
	}
	if s.finished {
		return s.message(scene.KindWarning, "The puzzle is already solved.\nUse replay to start a new game.")
	}

	completed, err := s.tower.Move(src, dst)
	switch {
	case errors.Is(err, hanoi.ErrIllegalMove):
		if s.cheat {
			return nil
		}
		s.lives--
		s.logger.Info("illegal move", "player", s.player, "src", src, "dst", dst, "lives", s.lives)
		return s.message(scene.KindError, "A bigger disk can't be put over a smaller disk")
	case errors.Is(err, hanoi.ErrEmptySource):
		return s.message(scene.KindWarning, "Can't move disk from an empty rod")
	case errors.Is(err, hanoi.ErrSameRod):
		return s.message(scene.KindWarning, "Source and destination are the same rod")
	case errors.Is(err, hanoi.ErrInvalidRod):
		return s.message(scene.KindError, "Rods are numbered 1, 2 and 3")
	case err != nil:
		return err
	}

	if err := s.scene.Move(src, dst); err != nil {
		return err
	}
	s.moves++
	if completed {
		return s.win()
	}
	return nil
}

func (s *Session) cmdRegister(_ context.Context, args []string) error {
	return s.setPlayer(args[0])
}

func (s *Session) cmdHelp(ctx context.Context, _ []string) error {
	if err := s.message(scene.KindInfo, howToPlay); err != nil {
		return err
	}
	return s.pause(ctx)
}

func (s *Session) cmdReplay(ctx context.Context, args []string) error {
	disks := s.tower.Disks()
	if len(args) > 0 && args[0] != "p" {
		n, err := strconv.Atoi(args[0])
		if err != nil || n < 1 {
			return s.message(scene.KindError, "`replay` expects a positive integer argument!")
		}
		disks = n
	}
	if cols := s.scene.Dimensions().Cols; layout.CheckCapacity(disks, cols) != nil {
		return s.message(scene.KindError, fmt.Sprintf("Too many disks for this terminal,\nat most %d fit", layout.MaxDisks(cols)))
	}

	if !s.finished {
		ok, err := s.confirm(ctx, "Current game has not finished yet!\nreplay will cause all game data to be lost", 4)
		if err != nil || !ok {
			return err
		}
		s.save(storage.OutcomeQuit, hanoi.Rating{})
	}
	return s.newGame(disks)
}

func (s *Session) cmdShowMinima(ctx context.Context, _ []string) error {
	text := fmt.Sprintf("MM: %d", hanoi.MinimumMoves(s.tower.Disks()))
	if s.mode == core.ModeTextual {
		return s.notice(text)
	}
	d := s.scene.Dimensions()
	if err := s.main.Write(d.Rows-2, d.Cols-len(text)-5, text, render.Style{}); err != nil {
		return err
	}
	if err := s.promptAt("Press Enter to Continue"); err != nil {
		return err
	}
	return s.pause(ctx)
}

// promptAt writes text where input is typed and leaves the cursor after it.
func (s *Session) promptAt(text string) error {
	pos, err := s.main.WriteAt(render.AnchorAfterPrompt, text, render.Style{})
	if err != nil {
		return err
	}
	return s.main.MoveTo(pos.Line, pos.Col+len(text))
}

func (s *Session) cmdSeekTop(ctx context.Context, _ []string) error {
	if s.mode == core.ModeTextual {
		return s.notice("`seek-top` is unavailable in this mode")
	}
	if err := s.scene.Draw(s.status(), true); err != nil {
		return err
	}
	if err := s.promptAt("Press Enter to continue!"); err != nil {
		return err
	}
	return s.pause(ctx)
}

func (s *Session) cmdCheat(_ context.Context, _ []string) error {
	s.cheat = true
	return nil
}

func (s *Session) cmdNoCheat(_ context.Context, _ []string) error {
	s.cheat = false
	return nil
}

func (s *Session) cmdHistory(ctx context.Context, _ []string) error {
	return s.page(ctx, "history", strings.Join(s.history, "\n"), nil)
}

func (s *Session) cmdToggleMode(_ context.Context, args []string) error {
	mode, err := core.ParseInterfaceMode(args[0])
	if err != nil {
		return s.message(scene.KindError, fmt.Sprintf("unknown interface mode %q", args[0]))
	}
	s.mode = mode
	if mode == core.ModeTextual {
		s.watcher.Pause()
	} else {
		s.watcher.Resume()
	}
	return s.main.Reset()
}

func (s *Session) cmdListCommands(ctx context.Context, _ []string) error {
	return s.page(ctx, "commands", s.commandHelp(), nil)
}

// commandHelp renders the command table.
func (s *Session) commandHelp() string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("Commands", "Description")
	for _, c := range s.commands {
		names := strings.Join(c.names, ", ")
		if c.usage != "" {
			names += " " + c.usage
		}
		t.Row(names, c.summary)
	}
	return t.String()
}

func (s *Session) cmdCreateConfig(ctx context.Context, _ []string) error {
	written, err := config.CreateConfig(s.confPath)
	switch {
	case err != nil:
		s.logger.Warn("cannot create config", "path", s.confPath, "error", err)
		return s.message(scene.KindError, "Could not create the config file")
	case written:
		if err := s.message(scene.KindInfo, "Config file created at\n"+s.confPath); err != nil {
			return err
		}
		return s.pause(ctx)
	}
	return s.message(scene.KindWarning, "A config file already exists at\n"+s.confPath)
}

func (s *Session) cmdTimeLimit(ctx context.Context, _ []string) error {
	left, ok := s.clock.Left()
	if !ok {
		if err := s.message(scene.KindInfo, "No time limit is set"); err != nil {
			return err
		}
		return s.pause(ctx)
	}
	text := "Remaining Time: " + clock(left) + ",  Press Enter to Continue"
	if s.mode == core.ModeTextual {
		if err := s.notice(text); err != nil {
			return err
		}
	} else if err := s.promptAt(text); err != nil {
		return err
	}
	return s.pause(ctx)
}

func (s *Session) cmdMuteClock(_ context.Context, _ []string) error {
	s.clock.Mute()
	return nil
}

func (s *Session) cmdDumpCache(ctx context.Context, args []string) error {
	name := mainHandle
	if len(args) > 0 {
		name = args[0]
	}
	w, ok := s.handles.Lookup(name)
	if !ok {
		return s.message(scene.KindError, fmt.Sprintf("no output handle %q,\nknown: %s", name, strings.Join(s.handles.Names(), ", ")))
	}

	entries := w.Entries()
	var b strings.Builder
	fmt.Fprintf(&b, "%6s %5s %5s %-8s %s\n", "seq", "line", "col", "color", "text")
	for _, e := range entries {
		fmt.Fprintf(&b, "%6d %5d %5d %-8s %q\n", e.Seq, e.Line, e.Col, e.Style.Color, e.Text)
	}
	return s.page(ctx, fmt.Sprintf("output cache of %s (%d entries)", name, len(entries)), b.String(), w.Snapshot())
}

package session

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-hanoi/internal/config"
	"github.com/vovakirdan/tui-hanoi/internal/core"
	"github.com/vovakirdan/tui-hanoi/internal/event"
	"github.com/vovakirdan/tui-hanoi/internal/layout"
	"github.com/vovakirdan/tui-hanoi/internal/scene"
	"github.com/vovakirdan/tui-hanoi/internal/storage"
	"github.com/vovakirdan/tui-hanoi/internal/watch"
)

type scriptedLines struct {
	lines []string
}

func (r *scriptedLines) ReadLine() (string, error) {
	if len(r.lines) == 0 {
		return "", io.EOF
	}
	line := r.lines[0]
	r.lines = r.lines[1:]
	return line, nil
}

type capturePager struct {
	titles []string
	bodies []string
	screen *core.Screen
}

func (p *capturePager) Page(title, body string) error {
	p.titles = append(p.titles, title)
	p.bodies = append(p.bodies, body)
	return nil
}

func (p *capturePager) PageScreen(title, body string, scr *core.Screen) error {
	p.screen = scr
	return p.Page(title, body)
}

type fixture struct {
	session *Session
	out     *bytes.Buffer
	store   *storage.Store
	pager   *capturePager
	confDir string
}

func testSettings(disks int) config.Settings {
	s := config.DefaultSettings()
	s.DiskCapacity = disks
	s.PlayerName = "tester"
	return s
}

func newFixture(t *testing.T, settings config.Settings, lines ...string) *fixture {
	t.Helper()
	dir := t.TempDir()
	store, err := storage.Open(filepath.Join(dir, "hanoi.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	f := &fixture{
		out:     &bytes.Buffer{},
		store:   store,
		pager:   &capturePager{},
		confDir: dir,
	}
	f.session, err = New(&scriptedLines{lines: lines}, f.out, Options{
		Settings:   settings,
		Size:       watch.NewManualSize(core.Dimensions{Rows: 24, Cols: 80}),
		Store:      store,
		Pager:      f.pager,
		Seed:       1,
		ConfigPath: filepath.Join(dir, "config.yaml"),
		Interval:   time.Hour,
		Sleep:      func(time.Duration) {},
	})
	require.NoError(t, err)
	return f
}

func (f *fixture) run(t *testing.T) {
	t.Helper()
	require.NoError(t, f.session.Run(context.Background()))
}

func (f *fixture) lastGame(t *testing.T) storage.GameResult {
	t.Helper()
	games, err := f.store.RecentGames("tester", 10)
	require.NoError(t, err)
	require.NotEmpty(t, games)
	return games[0]
}

func TestNewRejectsSmallTerminal(t *testing.T) {
	_, err := New(&scriptedLines{}, io.Discard, Options{
		Settings: testSettings(3),
		Size:     watch.NewManualSize(core.Dimensions{Rows: 10, Cols: 40}),
	})
	assert.Error(t, err)
}

func TestNewRejectsTooManyDisks(t *testing.T) {
	_, err := New(&scriptedLines{}, io.Discard, Options{
		Settings: testSettings(500),
		Size:     watch.NewManualSize(core.Dimensions{Rows: 24, Cols: 80}),
	})
	assert.Error(t, err)
}

func TestRuntimeConfigReachesSceneAndWatcher(t *testing.T) {
	settings := testSettings(3)
	settings.RenderPlain = true
	f := newFixture(t, settings)

	d := core.Dimensions{Rows: 24, Cols: 80}
	assert.Equal(t, core.ProfilePlain, f.session.scene.Profile())
	assert.Equal(t, layout.GenericMax(d, core.ProfilePlain), f.session.scene.GenericMax())
	assert.Equal(t, layout.GenericMax(d, core.ProfilePlain), f.session.watcher.GenericMax())
	assert.Equal(t, []int{16, 14, 12}, widths(f.session.scene.Rod(1)))
}

func TestSolveSingleDisk(t *testing.T) {
	f := newFixture(t, testSettings(1), "m 1 3")
	f.run(t)

	assert.Contains(t, f.out.String(), "CONGRATULATION!")
	assert.Equal(t, 1, f.session.moves)

	game := f.lastGame(t)
	assert.Equal(t, storage.OutcomeWon, game.Outcome)
	assert.True(t, game.Perfect)

	rec, err := f.store.Player("tester")
	require.NoError(t, err)
	assert.Equal(t, 1, rec.PerfectRuns)
}

func TestMoveAfterWinIsRefused(t *testing.T) {
	f := newFixture(t, testSettings(1), "m 1 3", "m 3 1")
	f.run(t)

	assert.Contains(t, f.out.String(), "already solved")
	assert.Equal(t, 1, f.session.moves)
	assert.Equal(t, 1, f.session.tower.Count(3))
}

func TestIllegalMovesCostLives(t *testing.T) {
	f := newFixture(t, testSettings(2), "m 1 2", "m 1 2", "m 1 2", "m 1 2")
	f.run(t)

	out := f.out.String()
	assert.Contains(t, out, "A bigger disk can't be put over a smaller disk")
	assert.Contains(t, out, "FAILURE")
	assert.Equal(t, 0, f.session.lives)
	assert.Equal(t, storage.OutcomeLost, f.lastGame(t).Outcome)
}

func TestCheatRefusesSilently(t *testing.T) {
	f := newFixture(t, testSettings(2), "icheat", "m 1 2", "m 1 2", "m 1 2", "m 1 2")
	f.run(t)

	assert.NotContains(t, f.out.String(), "A bigger disk")
	assert.Equal(t, 3, f.session.lives)
	assert.Equal(t, 1, f.session.moves)
	assert.Equal(t, storage.OutcomeQuit, f.lastGame(t).Outcome)
}

func TestRefusedMovesKeepLives(t *testing.T) {
	tests := []struct {
		line string
		want string
	}{
		{"m 2 3", "Can't move disk from an empty rod"},
		{"m 1 1", "same rod"},
		{"m 1 4", "Rods are numbered 1, 2 and 3"},
		{"m a b", "expects integer arguments"},
	}
	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			f := newFixture(t, testSettings(3), tt.line)
			f.run(t)
			assert.Contains(t, f.out.String(), tt.want)
			assert.Equal(t, 3, f.session.lives)
			assert.Equal(t, 0, f.session.moves)
		})
	}
}

func TestUnknownCommand(t *testing.T) {
	f := newFixture(t, testSettings(3), "frobnicate")
	f.run(t)
	assert.Contains(t, f.out.String(), `unrecognised command "frobnicate"`)
}

func TestMissingArguments(t *testing.T) {
	f := newFixture(t, testSettings(3), "m 1", "rg")
	f.run(t)
	out := f.out.String()
	assert.Contains(t, out, "'m' expects some arguments!")
	assert.Contains(t, out, "'rg' expects some arguments!")
}

func TestQuitAsksFirst(t *testing.T) {
	f := newFixture(t, testSettings(3), "quit", "n", "m 1 2", "exit", "y", "m 1 3")
	f.run(t)

	assert.Contains(t, f.out.String(), "end the game abruptly?")
	assert.Equal(t, 1, f.session.moves)
	games, err := f.store.RecentGames("tester", 10)
	require.NoError(t, err)
	require.Len(t, games, 1)
	assert.Equal(t, storage.OutcomeQuit, games[0].Outcome)
}

func TestEndOfInputRecordsQuit(t *testing.T) {
	f := newFixture(t, testSettings(3), "m 1 3")
	f.run(t)
	assert.Equal(t, storage.OutcomeQuit, f.lastGame(t).Outcome)
	assert.Equal(t, 1, f.lastGame(t).Moves)
}

func TestReplay(t *testing.T) {
	f := newFixture(t, testSettings(3), "m 1 3", "replay 2", "y")
	f.run(t)

	assert.Equal(t, 2, f.session.tower.Disks())
	assert.Equal(t, 0, f.session.moves)
	games, err := f.store.RecentGames("tester", 10)
	require.NoError(t, err)
	assert.Len(t, games, 2)
}

func TestReplayKeepsDisks(t *testing.T) {
	f := newFixture(t, testSettings(3), "m 1 3", "replay p", "y")
	f.run(t)
	assert.Equal(t, 3, f.session.tower.Disks())
	assert.Equal(t, 0, f.session.moves)
}

func TestReplayTooManyDisks(t *testing.T) {
	f := newFixture(t, testSettings(3), "replay 500")
	f.run(t)
	assert.Contains(t, f.out.String(), "Too many disks")
	assert.Equal(t, 3, f.session.tower.Disks())
}

func TestReplayKeptDisksRecheckedAfterShrink(t *testing.T) {
	f := newFixture(t, testSettings(8), "replay p", "y")
	narrow := core.Dimensions{Rows: 24, Cols: 48}
	require.NoError(t, f.session.queue.Emit(event.Event{Name: event.WidthWarning, Dims: narrow}))
	f.run(t)

	assert.Contains(t, f.out.String(), "Too many disks for this terminal")
	assert.Equal(t, 8, f.session.tower.Disks())
	assert.Equal(t, narrow, f.session.scene.Dimensions())
	for _, w := range widths(f.session.scene.Rod(1)) {
		assert.Positive(t, w)
	}
}

func widths(rod []scene.DiskVisual) []int {
	out := make([]int, len(rod))
	for i, d := range rod {
		out[i] = d.Width
	}
	return out
}

func TestRegisterPlayer(t *testing.T) {
	f := newFixture(t, testSettings(3), "rg alice")
	f.run(t)
	assert.Equal(t, "alice", f.session.Player())

	games, err := f.store.RecentGames("alice", 10)
	require.NoError(t, err)
	assert.Len(t, games, 1)
}

func TestGeneratedPlayerName(t *testing.T) {
	settings := testSettings(3)
	settings.PlayerName = ""
	f := newFixture(t, settings)
	assert.Equal(t, "player_1", f.session.Player())
}

func TestListCommandsUsesPager(t *testing.T) {
	f := newFixture(t, testSettings(3), "lc")
	f.run(t)

	require.Len(t, f.pager.bodies, 1)
	body := f.pager.bodies[0]
	assert.Contains(t, body, "list-commands, lc")
	assert.Contains(t, body, "move, m <src> <dst>")
	assert.Contains(t, body, "Description")
}

func TestHistory(t *testing.T) {
	f := newFixture(t, testSettings(3), "rd", "sm", "", "history")
	f.run(t)

	require.Len(t, f.pager.bodies, 1)
	assert.Equal(t, "rd\nsm\nhistory", f.pager.bodies[0])
	assert.Contains(t, f.out.String(), "MM: 7")
}

func TestHistoryWithoutPager(t *testing.T) {
	f := newFixture(t, testSettings(3), "rd", "history", "")
	f.session.pager = nil
	f.run(t)
	assert.Contains(t, f.out.String(), "rd\nhistory\nPress Enter to Continue!")
}

func TestDumpCacheSendsScreen(t *testing.T) {
	f := newFixture(t, testSettings(3), "dbc")
	f.run(t)

	require.NotNil(t, f.pager.screen)
	assert.Equal(t, 80, f.pager.screen.Width())
	require.Len(t, f.pager.bodies, 1)
	assert.Contains(t, f.pager.titles[0], "output cache of main")
	assert.Contains(t, f.pager.bodies[0], ">>")
}

func TestDumpCacheByHandle(t *testing.T) {
	f := newFixture(t, testSettings(3), "dbc text", "dbc nope")
	f.run(t)

	require.Len(t, f.pager.titles, 1)
	assert.Equal(t, "output cache of text (0 entries)", f.pager.titles[0])
	assert.Contains(t, f.out.String(), `no output handle "nope"`)
	assert.Contains(t, f.out.String(), "known: main, text")
}

func TestCreateConfig(t *testing.T) {
	f := newFixture(t, testSettings(3), "cc", "", "cc")
	f.run(t)

	_, err := os.Stat(filepath.Join(f.confDir, "config.yaml"))
	assert.NoError(t, err)
	assert.Contains(t, f.out.String(), "already exists")
}

func TestTextualMode(t *testing.T) {
	settings := testSettings(1)
	settings.InterfaceMode = "textual"
	f := newFixture(t, settings, "rd", "m 1 2")
	f.run(t)

	out := f.out.String()
	assert.Contains(t, out, "unavailable in this mode")
	assert.Contains(t, out, "[]\n")
	assert.Contains(t, out, ">> ")
}

func TestToggleModePausesWatcher(t *testing.T) {
	f := newFixture(t, testSettings(3))
	ctx := context.Background()

	require.NoError(t, f.session.execute(ctx, "tm t"))
	assert.Equal(t, core.ModeTextual, f.session.Mode())
	assert.Equal(t, watch.Paused, f.session.Watcher().Signal())

	require.NoError(t, f.session.execute(ctx, "tm graphics"))
	assert.Equal(t, core.ModeGraphics, f.session.Mode())
	assert.Equal(t, watch.Running, f.session.Watcher().Signal())

	require.NoError(t, f.session.execute(ctx, "tm sideways"))
	assert.Contains(t, f.out.String(), `unknown interface mode "sideways"`)
}

func TestCheatToggles(t *testing.T) {
	f := newFixture(t, testSettings(3))
	ctx := context.Background()
	require.NoError(t, f.session.execute(ctx, "icheat"))
	assert.True(t, f.session.cheat)
	require.NoError(t, f.session.execute(ctx, "inocheat"))
	assert.False(t, f.session.cheat)
}

func TestRedrawEventRecomputesPoles(t *testing.T) {
	f := newFixture(t, testSettings(3))
	d := core.Dimensions{Rows: 40, Cols: 100}

	require.NoError(t, f.session.onRedraw(event.Event{Name: event.Redraw, Dims: d, GenericMax: 5}))
	assert.Equal(t, d, f.session.scene.Dimensions())
	assert.Equal(t, 5, f.session.scene.GenericMax())
	assert.Equal(t, d, f.session.main.Dimensions())
}

// A width-only change keeps the pole height of the old size, unlike a
// full redraw.
func TestWidthWarningKeepsPoleHeight(t *testing.T) {
	f := newFixture(t, testSettings(3))
	before := f.session.scene.GenericMax()
	d := core.Dimensions{Rows: 24, Cols: 120}

	require.NoError(t, f.session.onWidthWarning(event.Event{Name: event.WidthWarning, Dims: d}))
	assert.Equal(t, before, f.session.scene.GenericMax())
	assert.Equal(t, 120, f.session.scene.Dimensions().Cols)
	assert.Contains(t, f.out.String(), "Terminal width change detected!")
}

func TestTimeLimitEvents(t *testing.T) {
	settings := testSettings(3)
	settings.TimeLimit = 180
	f := newFixture(t, settings)
	var slept []time.Duration
	f.session.sleep = func(d time.Duration) { slept = append(slept, d) }

	require.NoError(t, f.session.onTimeLimit(event.Event{Name: event.TimeLimit, Remaining: 90 * time.Second}))
	assert.Contains(t, f.out.String(), "Remaining time: 0:01:30")
	assert.Equal(t, []time.Duration{2 * time.Second}, slept)

	require.NoError(t, f.session.onTimeLimit(event.Event{Name: event.TimeLimit}))
	assert.Contains(t, f.out.String(), "Timelimit Exceeded!")
}

func TestTimeLimitTicksBetweenAnnouncements(t *testing.T) {
	settings := testSettings(3)
	settings.TimeLimit = 180
	f := newFixture(t, settings)
	var slept []time.Duration
	f.session.sleep = func(d time.Duration) { slept = append(slept, d) }

	for _, left := range []time.Duration{100 * time.Second, 90 * time.Second, 90 * time.Second, 89 * time.Second} {
		require.NoError(t, f.session.onTimeLimit(event.Event{Name: event.TimeLimit, Remaining: left}))
	}
	assert.Equal(t, 1, strings.Count(f.out.String(), "Remaining time: "))
	assert.Equal(t, []time.Duration{2 * time.Second}, slept)
}

func TestTimeLimitCommand(t *testing.T) {
	settings := testSettings(3)
	f := newFixture(t, settings, "tl", "")
	f.run(t)
	assert.Contains(t, f.out.String(), "No time limit is set")

	settings.TimeLimit = 120
	f = newFixture(t, settings, "tl", "")
	f.run(t)
	assert.Contains(t, f.out.String(), "Remaining Time: 0:02:00,  Press Enter to Continue")
}

func TestQueuedEventsApplyBeforeDisplay(t *testing.T) {
	f := newFixture(t, testSettings(3))
	d := core.Dimensions{Rows: 30, Cols: 90}
	require.NoError(t, f.session.queue.Emit(event.Event{Name: event.Redraw, Dims: d, GenericMax: 4}))

	f.session.drain()
	assert.Equal(t, d, f.session.scene.Dimensions())
	assert.Equal(t, 0, f.session.queue.Len())
}

func TestRunStopsOnCancel(t *testing.T) {
	f := newFixture(t, testSettings(3))
	f.session.in = newInput(blockingLines{})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	require.NoError(t, f.session.Run(ctx))
	assert.Equal(t, storage.OutcomeQuit, f.lastGame(t).Outcome)
}

type blockingLines struct{}

func (blockingLines) ReadLine() (string, error) {
	select {}
}

func TestNewLineReader(t *testing.T) {
	r := NewLineReader(strings.NewReader("m 1 3\r\nquit\nlast"))
	var got []string
	for {
		line, err := r.ReadLine()
		if err != nil {
			assert.ErrorIs(t, err, io.EOF)
			break
		}
		got = append(got, line)
	}
	assert.Equal(t, []string{"m 1 3", "quit", "last"}, got)
}

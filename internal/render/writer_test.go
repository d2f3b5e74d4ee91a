package render

import (
	"bytes"
	"fmt"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-hanoi/internal/core"
)

var cupPattern = regexp.MustCompile(`\x1b\[(\d+);(\d+)H`)

func newTestWriter() (*Writer, *bytes.Buffer) {
	var buf bytes.Buffer
	return NewWriter("test", &buf, core.Dimensions{Rows: 24, Cols: 80}), &buf
}

func cup(line, col int) string {
	return fmt.Sprintf("\x1b[%d;%dH", line, col)
}

func TestWriteEmitsOneGroup(t *testing.T) {
	w, buf := newTestWriter()

	require.NoError(t, w.Write(3, 5, "hi", Style{Color: core.ColorRed}))
	assert.Equal(t, "\x1b[3;5H\x1b[31mhi\x1b[0K\x1b[25m", buf.String())
}

func TestWriteBlink(t *testing.T) {
	w, buf := newTestWriter()

	require.NoError(t, w.Write(1, 1, "!", Style{Color: core.ColorYellow, Blink: true}))
	assert.Equal(t, "\x1b[5m\x1b[1;1H\x1b[33m!\x1b[0K\x1b[25m", buf.String())
}

func TestWriteReplaysLineInColumnOrder(t *testing.T) {
	w, buf := newTestWriter()

	require.NoError(t, w.Write(4, 10, "right", Style{}))
	require.NoError(t, w.Write(2, 1, "other line", Style{}))
	buf.Reset()
	require.NoError(t, w.Write(4, 2, "left", Style{Color: core.ColorBlue}))

	out := buf.String()
	matches := cupPattern.FindAllStringSubmatch(out, -1)
	require.Len(t, matches, 2, "only line 4 is replayed")
	assert.Equal(t, []string{"4", "2"}, matches[0][1:])
	assert.Equal(t, []string{"4", "10"}, matches[1][1:])
	assert.Less(t, strings.Index(out, "left"), strings.Index(out, "right"))
	assert.NotContains(t, out, "other line")
}

func TestWriteIdempotent(t *testing.T) {
	w, buf := newTestWriter()
	style := Style{Color: core.ColorGreen}

	require.NoError(t, w.Write(5, 3, "[###]", style))
	first := buf.String()
	buf.Reset()
	require.NoError(t, w.Write(5, 3, "[###]", style))

	assert.Equal(t, first, buf.String())
	assert.Len(t, w.Entries(), 1)
}

func TestWriteSupersedesSameColumn(t *testing.T) {
	w, buf := newTestWriter()

	require.NoError(t, w.Write(7, 4, "stale text", Style{}))
	require.NoError(t, w.Write(7, 4, "new", Style{Color: core.ColorCyan}))

	entries := w.Entries()
	require.Len(t, entries, 1)
	assert.Equal(t, "new", entries[0].Text)
	assert.Equal(t, uint64(2), entries[0].Seq)

	last := buf.String()[strings.LastIndex(buf.String(), cup(7, 4)):]
	assert.NotContains(t, last, "stale")
}

func TestDetachedSkipsCache(t *testing.T) {
	w, buf := newTestWriter()
	require.NoError(t, w.Write(1, 1, "kept", Style{}))
	buf.Reset()

	err := w.Detached(func() error {
		assert.True(t, w.IsDetached())
		return w.Write(2, 2, "transient", Style{})
	})
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(buf.String(), "\x1b[2J"), "detached scope clears the screen first")
	assert.Contains(t, buf.String(), "transient")
	assert.NotContains(t, buf.String(), "kept", "detached writes do not replay the line")
	assert.False(t, w.IsDetached())

	entries := w.Entries()
	require.Len(t, entries, 1)
	assert.Equal(t, "kept", entries[0].Text)
}

func TestDetachedRestoresOnError(t *testing.T) {
	w, _ := newTestWriter()
	boom := fmt.Errorf("boom")

	err := w.Detached(func() error { return boom })
	assert.ErrorIs(t, err, boom)
	assert.False(t, w.IsDetached())
}

func TestDetachedRestoresOnPanic(t *testing.T) {
	w, _ := newTestWriter()

	assert.Panics(t, func() {
		_ = w.Detached(func() error { panic("draw failed") })
	})
	assert.False(t, w.IsDetached())

	require.NoError(t, w.Write(1, 1, "x", Style{}))
	assert.Len(t, w.Entries(), 1)
}

func TestResetDropsCache(t *testing.T) {
	w, buf := newTestWriter()
	require.NoError(t, w.Write(1, 1, "x", Style{}))
	require.NoError(t, w.Reset())

	assert.Empty(t, w.Entries())
	assert.True(t, strings.HasSuffix(buf.String(), "\x1b[0m\x1b[2J"))
}

func TestMoveTo(t *testing.T) {
	w, buf := newTestWriter()
	require.NoError(t, w.MoveTo(22, 7))
	assert.Equal(t, cup(22, 7), buf.String())
}

func TestWriteAtRoundTrip(t *testing.T) {
	anchors := []Anchor{
		AnchorCenter, AnchorTopLeft, AnchorTopRight,
		AnchorBottomLeft, AnchorBottomRight, AnchorAfterPrompt,
	}

	for _, a := range anchors {
		t.Run(string(a), func(t *testing.T) {
			w, buf := newTestWriter()

			pos, err := w.WriteAt(a, "hello", Style{})
			require.NoError(t, err)

			resolved, err := w.Resolve(a, "hello")
			require.NoError(t, err)
			assert.Equal(t, pos, resolved)
			assert.Contains(t, buf.String(), cup(pos.Line, pos.Col)+"\x1b[0mhello")
		})
	}
}

func TestWriteAtUnknownAnchor(t *testing.T) {
	w, buf := newTestWriter()

	_, err := w.WriteAt(Anchor("middle-ish"), "x", Style{})
	assert.ErrorIs(t, err, ErrUnknownAnchor)
	assert.Empty(t, buf.String())
	assert.Empty(t, w.Entries())
}

func TestSnapshot(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter("snap", &buf, core.Dimensions{Rows: 3, Cols: 10})

	require.NoError(t, w.Write(1, 1, "╔══╗", Style{}))
	require.NoError(t, w.Write(2, 1, "abcdefgh", Style{}))
	require.NoError(t, w.Write(2, 4, "XY", Style{Color: core.ColorRed}))
	require.NoError(t, w.Write(3, 0, "\x1b[31mz\x1b[0m", Style{}))

	s := w.Snapshot()
	assert.Equal(t, "╔══╗      ", s.Row(0))
	assert.Equal(t, "abcXY     ", s.Row(1), "erase-to-end-of-line cuts the earlier, longer text")
	assert.Equal(t, "z         ", s.Row(2))
	assert.Equal(t, core.ColorRed, s.Get(3, 1).Color)
}

func TestSetDimensions(t *testing.T) {
	w, _ := newTestWriter()
	w.SetDimensions(core.Dimensions{Rows: 30, Cols: 100})

	pos, err := w.Resolve(AnchorAfterPrompt, "")
	require.NoError(t, err)
	assert.Equal(t, Position{Line: 28, Col: 7}, pos)
}

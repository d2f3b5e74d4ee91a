// Package scene draws the puzzle onto a render.Writer: three towers, the
// sky decoration, the status banner, the frame and the message boxes.
//
// A Scene is owned by a single goroutine. It keeps the disk visuals and the
// layout inputs (dimensions, generic max) that the watcher reports through
// the session.
package scene

import (
	"errors"
	"fmt"
	"math/rand"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/x/ansi"

	"github.com/vovakirdan/tui-hanoi/internal/core"
	"github.com/vovakirdan/tui-hanoi/internal/glyph"
	"github.com/vovakirdan/tui-hanoi/internal/layout"
	"github.com/vovakirdan/tui-hanoi/internal/render"
)

// ErrEmptyRod is returned when a disk is moved off a rod with no visuals.
var ErrEmptyRod = errors.New("scene: rod has no disks")

// DiskVisual is how one disk looks on screen. It travels with the disk from
// rod to rod.
type DiskVisual struct {
	Width  int
	Color  core.Color
	Offset int
}

// Status feeds the top banner.
type Status struct {
	Player      string
	BestRuns    int
	PerfectRuns int
	Moves       int
	Lives       int
}

// Options configures a Scene.
type Options struct {
	Runtime core.RuntimeConfig
	// Rand overrides the generator seeded from Runtime.Seed.
	Rand *rand.Rand
	// Hold is how long each message kind stays on screen.
	Hold map[Kind]time.Duration
	// Sleep replaces time.Sleep for holding messages.
	Sleep func(time.Duration)
}

// Scene renders the game for one terminal.
type Scene struct {
	w      *render.Writer
	glyphs glyph.Set
	rng    *rand.Rand
	boxes  *layout.Descriptors
	hold   map[Kind]time.Duration
	sleep  func(time.Duration)

	dims       core.Dimensions
	genericMax int
	initUnit   int
	disks      int
	rods       [layout.Rods][]DiskVisual
}

// New creates a scene drawing through w. The writer's dimensions are the
// starting terminal size.
func New(w *render.Writer, opts Options) *Scene {
	rng := opts.Rand
	if rng == nil {
		seed := opts.Runtime.Seed
		if seed == 0 {
			seed = time.Now().UnixNano()
		}
		rng = rand.New(rand.NewSource(seed))
	}
	sleep := opts.Sleep
	if sleep == nil {
		sleep = time.Sleep
	}
	hold := make(map[Kind]time.Duration, len(opts.Hold))
	for k, v := range opts.Hold {
		hold[k] = v
	}

	d := w.Dimensions()
	return &Scene{
		w:          w,
		glyphs:     glyph.For(opts.Runtime.Profile),
		rng:        rng,
		boxes:      layout.NewDescriptors(),
		hold:       hold,
		sleep:      sleep,
		dims:       d,
		genericMax: layout.GenericMax(d, opts.Runtime.Profile),
	}
}

// Profile is the glyph profile the scene draws with.
func (s *Scene) Profile() core.Profile { return s.glyphs.Profile() }

// Dimensions is the terminal size the scene lays out for.
func (s *Scene) Dimensions() core.Dimensions { return s.dims }

// GenericMax is the visible disk count every pole is sized for.
func (s *Scene) GenericMax() int { return s.genericMax }

// Writer returns the writer the scene draws through.
func (s *Scene) Writer() *render.Writer { return s.w }

// Init places disks visuals on rod 1, widest at the bottom, and empties the
// other rods. The pole column is fixed by the unit width of the first Init.
// Init fails, leaving the rods as they were, when the smallest disk would
// have no width at the current terminal size.
func (s *Scene) Init(disks int) error {
	p := s.Profile()
	unit := layout.UnitWidth(s.dims.Cols, p)
	if span := layout.DiskSpan(unit, p); disks > span {
		return fmt.Errorf("%w: %d disks, at most %d for %d columns", layout.ErrTooManyDisks, disks, span, s.dims.Cols)
	}
	if s.initUnit == 0 {
		s.initUnit = unit
	}
	s.disks = disks
	for i := range s.rods {
		s.rods[i] = nil
	}

	width := unit
	for i := 0; i < disks; i++ {
		s.rods[0] = append(s.rods[0], DiskVisual{
			Width:  width,
			Color:  core.RandomColor(s.rng),
			Offset: i,
		})
		width -= layout.DiskStep(p)
	}
	return nil
}

// Resize applies a new terminal size and the generic max computed for it.
func (s *Scene) Resize(d core.Dimensions, genericMax int) {
	s.dims = d
	s.genericMax = genericMax
	s.w.SetDimensions(d)
}

// Move relocates the top disk visual of src onto dst.
func (s *Scene) Move(src, dst int) error {
	from, to := rodIndex(src), rodIndex(dst)
	n := len(s.rods[from])
	if n == 0 {
		return fmt.Errorf("%w: %d", ErrEmptyRod, src)
	}
	d := s.rods[from][n-1]
	s.rods[from] = s.rods[from][:n-1]
	d.Offset = layout.DiskOffset(s.initUnit, d.Width, s.Profile())
	s.rods[to] = append(s.rods[to], d)
	return nil
}

// Rod returns a copy of the visuals on rod n, bottom first.
func (s *Scene) Rod(n int) []DiskVisual {
	r := s.rods[rodIndex(n)]
	out := make([]DiskVisual, len(r))
	copy(out, r)
	return out
}

func rodIndex(n int) int {
	if n < 1 || n > layout.Rods {
		panic(fmt.Sprintf("scene: rod %d out of range", n))
	}
	return n - 1
}

// Draw clears the terminal and draws the whole scene. With topOnly each rod
// shows just its top disk under a single pole segment.
func (s *Scene) Draw(st Status, topOnly bool) error {
	if err := layout.CheckSize(s.dims); err != nil {
		return err
	}
	if err := s.w.Reset(); err != nil {
		return err
	}

	for rod := 1; rod <= layout.Rods; rod++ {
		if err := s.drawRod(rod, topOnly); err != nil {
			return err
		}
	}

	if err := s.drawBox(s.banner(st), layout.PlaceTopFull, boxStyle{text: s.random()}); err != nil {
		return err
	}
	if err := s.drawBox("", layout.PlaceFullScreen, boxStyle{text: core.ColorGreen}); err != nil {
		return err
	}
	if err := s.drawBox(">>", layout.PlaceBottomFull, boxStyle{text: core.ColorGreen}); err != nil {
		return err
	}
	pos, err := s.w.Resolve(render.AnchorAfterPrompt, "")
	if err != nil {
		return err
	}
	return s.w.MoveTo(pos.Line, pos.Col)
}

func (s *Scene) drawRod(rod int, topOnly bool) error {
	p := s.Profile()
	disks := s.rods[rod-1]
	fit := layout.FitCount(len(disks), s.dims, p)
	col := layout.RodColumn(rod, s.dims.Cols)

	if fit.SkyLine != 0 {
		if err := s.drawSky(rod, fit.SkyLine, col); err != nil {
			return err
		}
	}
	if fit.Overflow {
		line := layout.OverflowLine(s.dims.Rows, fit.Visible)
		if err := s.w.Write(line, col, overflowMarker(len(disks)-fit.Visible), render.Style{}); err != nil {
			return err
		}
	}

	visible := fit.Visible
	poles := layout.RodUnitCount(s.genericMax, visible)
	if topOnly {
		if len(disks) > 0 {
			disks = disks[len(disks)-1:]
			visible = 1
		}
		poles = 1
	}

	line := layout.BaseLine(s.dims.Rows)
	for i := 0; i < visible && i < len(disks); i++ {
		d := disks[i]
		if err := s.w.Write(line, col+d.Offset, s.glyphs.Disk(d.Width, true), render.Style{Color: d.Color}); err != nil {
			return err
		}
		line--
	}

	pole := layout.PoleColumn(col, s.initUnit, p)
	for i := 0; i < poles; i++ {
		if err := s.w.Write(line, pole, s.glyphs.Rod(), render.Style{}); err != nil {
			return err
		}
		line--
	}
	return nil
}

// drawSky draws a cloud at line growing upward and birds below it.
func (s *Scene) drawSky(rod, line, col int) error {
	p := s.Profile()
	unit := layout.UnitWidth(s.dims.Cols, p)
	for i := 0; i < 3; i++ {
		if err := s.w.Write(line-i, col+i, s.glyphs.Disk(unit-i, false), render.Style{Color: core.ColorCyan}); err != nil {
			return err
		}
	}

	limit := layout.BirdLimit(unit, p)
	if limit < 2 {
		return fmt.Errorf("%w: no room for the sky", layout.ErrTerminalTooSmall)
	}
	for _, ln := range birdLines(rod, line) {
		c := col + 2 + s.rng.Intn(limit-1)
		if err := s.w.Write(ln, c, s.glyphs.Bird(), render.Style{}); err != nil {
			return err
		}
	}
	return nil
}

// birdLines lists the rows birds fly on below a cloud at line. The first rod
// has a single bird; the others have a flock of three, the last rod's final
// bird sharing a row with the one before it.
func birdLines(rod, line int) []int {
	if rod == 1 {
		return []int{line + 1}
	}
	lines := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		if !(rod == 3 && i == 2) {
			line++
		}
		lines = append(lines, line)
	}
	return lines
}

func overflowMarker(hidden int) string {
	return "[\x1b[1;31;5m^\x1b[0m" + strconv.Itoa(hidden) + "]"
}

// banner builds the status line shown in the top box.
func (s *Scene) banner(st Status) string {
	items := []string{
		"Player Name: " + st.Player,
		"Best Runs: " + strconv.Itoa(st.BestRuns),
		"Perfect Runs: " + strconv.Itoa(st.PerfectRuns),
		"Current Moves: " + strconv.Itoa(st.Moves),
	}
	room := s.geometry(layout.PlaceTopFull).MaxLineLen

	used := st.Lives*2 + 17
	for _, it := range items {
		used += ansi.StringWidth(it)
	}
	pad := strings.Repeat(" ", core.Max((room-used)/4, 0))

	out := strings.Join(append(items, "Remaining Lives: "+s.glyphs.Lives(st.Lives)), pad)
	if ansi.StringWidth(out) > room {
		out = ansi.Truncate(out, core.Max(room-1, 0), "...")
	}
	return out
}

// Measure returns the box last drawn at place, or the geometry an empty box
// would have there now.
func (s *Scene) Measure(place layout.Placement) layout.Box {
	if b, ok := s.boxes.Last(place); ok {
		return b
	}
	return s.geometry(place)
}

// geometry sizes an empty box at place for the current dimensions. An
// unknown placement is a caller defect.
func (s *Scene) geometry(place layout.Placement) layout.Box {
	b, err := layout.Geometry(s.dims, "", place, 0, "")
	if err != nil {
		panic(err)
	}
	return b
}

type boxStyle struct {
	text  core.Color
	title core.Color
	blink bool
}

func (s *Scene) random() core.Color {
	return core.RandomColor(s.rng)
}

// drawBox draws text inside a bordered box at place. The border color is
// picked at random for every box.
func (s *Scene) drawBox(text string, place layout.Placement, style boxStyle, title ...string) error {
	var t string
	if len(title) > 0 {
		t = title[0]
	}
	b, err := layout.Geometry(s.dims, text, place, 0, t)
	if err != nil {
		return err
	}
	s.boxes.Record(b)

	if b.Title != "" {
		line, col := b.TitlePos()
		if err := s.w.Write(line, col, b.Title, render.Style{Color: style.title, Blink: style.blink}); err != nil {
			return err
		}
	}

	border := render.Style{Color: s.random()}
	line := b.Line
	if err := s.w.Write(line, b.Col, s.glyphs.TopBorder(b.Horizontal), border); err != nil {
		return err
	}
	line++

	vline := s.glyphs.Get(glyph.VLine)
	body := render.Style{Color: style.text}
	for _, l := range b.Lines {
		if err := s.w.Write(line, b.Col, vline+l, body); err != nil {
			return err
		}
		if err := s.w.Write(line, b.RightCol(), vline, body); err != nil {
			return err
		}
		line++
	}
	return s.w.Write(line, b.Col, s.glyphs.BottomBorder(b.Horizontal), border)
}

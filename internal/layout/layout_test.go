package layout

import (
	"errors"
	"testing"

	"github.com/vovakirdan/tui-hanoi/internal/core"
)

func TestUnitWidth(t *testing.T) {
	tests := []struct {
		cols     int
		profile  core.Profile
		expected int
	}{
		{80, core.ProfileBlock, 8},
		{80, core.ProfilePlain, 16},
		{48, core.ProfileBlock, 3},
		{53, core.ProfileBlock, 3}, // floor division
		{54, core.ProfileBlock, 4},
		{30, core.ProfileBlock, 0},
		{10, core.ProfilePlain, 0}, // never negative
	}

	for _, tt := range tests {
		if got := UnitWidth(tt.cols, tt.profile); got != tt.expected {
			t.Errorf("UnitWidth(%d, %v) = %d, expected %d", tt.cols, tt.profile, got, tt.expected)
		}
	}
}

func TestUnitWidthMonotonic(t *testing.T) {
	for _, p := range []core.Profile{core.ProfileBlock, core.ProfilePlain} {
		prev := UnitWidth(0, p)
		for cols := 1; cols <= 400; cols++ {
			got := UnitWidth(cols, p)
			if got < prev {
				t.Fatalf("UnitWidth(%d, %v) = %d, below UnitWidth(%d) = %d", cols, p, got, cols-1, prev)
			}
			prev = got
		}
	}
}

func TestFitCount(t *testing.T) {
	tests := []struct {
		name     string
		actual   int
		dims     core.Dimensions
		profile  core.Profile
		expected Fit
	}{
		{"all fit", 3, core.Dimensions{Rows: 24, Cols: 80}, core.ProfileBlock, Fit{Visible: 3}},
		{"exactly unit width", 8, core.Dimensions{Rows: 24, Cols: 80}, core.ProfileBlock, Fit{Visible: 8}},
		{"rows bottleneck", 3, core.Dimensions{Rows: 14, Cols: 80}, core.ProfileBlock, Fit{Visible: 1, Overflow: true}},
		{"small stack still fits short terminal", 2, core.Dimensions{Rows: 14, Cols: 80}, core.ProfileBlock, Fit{Visible: 2}},
		{"sky collides", 9, core.Dimensions{Rows: 24, Cols: 80}, core.ProfileBlock, Fit{Visible: 6, Overflow: true}},
		{"sky drawn", 10, core.Dimensions{Rows: 60, Cols: 80}, core.ProfileBlock, Fit{Visible: 6, SkyLine: 31, Overflow: true}},
		{"plain sky drawn", 10, core.Dimensions{Rows: 60, Cols: 80}, core.ProfilePlain, Fit{Visible: 6, SkyLine: 31, Overflow: true}},
		{"plain fits", 8, core.Dimensions{Rows: 24, Cols: 80}, core.ProfilePlain, Fit{Visible: 8}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FitCount(tt.actual, tt.dims, tt.profile); got != tt.expected {
				t.Errorf("FitCount(%d, %v) = %+v, expected %+v", tt.actual, tt.dims, got, tt.expected)
			}
		})
	}
}

func TestFitCountBounds(t *testing.T) {
	for _, p := range []core.Profile{core.ProfileBlock, core.ProfilePlain} {
		for rows := MinRows; rows <= 70; rows++ {
			for cols := MinCols; cols <= 220; cols += 7 {
				d := core.Dimensions{Rows: rows, Cols: cols}
				for actual := 1; actual <= 40; actual++ {
					fit := FitCount(actual, d, p)
					if fit.Visible <= 0 || fit.Visible > actual {
						t.Fatalf("FitCount(%d, %v, %v).Visible = %d, out of (0, %d]", actual, d, p, fit.Visible, actual)
					}
					if fit.Overflow != (fit.Visible < actual) {
						t.Fatalf("FitCount(%d, %v, %v) = %+v, overflow flag disagrees with count", actual, d, p, fit)
					}
				}
			}
		}
	}
}

func TestGenericMax(t *testing.T) {
	d := core.Dimensions{Rows: 24, Cols: 80}
	if got := GenericMax(d, core.ProfileBlock); got != 8 {
		t.Errorf("GenericMax(%v, block) = %d, expected 8", d, got)
	}
	if got := GenericMax(d, core.ProfilePlain); got != 6 {
		t.Errorf("GenericMax(%v, plain) = %d, expected 6", d, got)
	}
}

func TestRodUnitCount(t *testing.T) {
	tests := []struct {
		genericMax, current, expected int
	}{
		{5, 2, 4},
		{8, 8, 1},
		{8, 0, 9},
		{6, 8, 0}, // clamped, never negative
	}

	for _, tt := range tests {
		if got := RodUnitCount(tt.genericMax, tt.current); got != tt.expected {
			t.Errorf("RodUnitCount(%d, %d) = %d, expected %d", tt.genericMax, tt.current, got, tt.expected)
		}
	}
}

func TestCheckSize(t *testing.T) {
	if err := CheckSize(core.Dimensions{Rows: MinRows, Cols: MinCols}); err != nil {
		t.Errorf("CheckSize(minimum) = %v, expected nil", err)
	}
	for _, d := range []core.Dimensions{{Rows: 13, Cols: 80}, {Rows: 24, Cols: 47}} {
		if err := CheckSize(d); !errors.Is(err, ErrTerminalTooSmall) {
			t.Errorf("CheckSize(%v) = %v, expected ErrTerminalTooSmall", d, err)
		}
	}
}

func TestCheckCapacity(t *testing.T) {
	if MaxDisks(80) != 8 {
		t.Errorf("MaxDisks(80) = %d, expected 8", MaxDisks(80))
	}
	if err := CheckCapacity(8, 80); err != nil {
		t.Errorf("CheckCapacity(8, 80) = %v, expected nil", err)
	}
	if err := CheckCapacity(9, 80); !errors.Is(err, ErrTooManyDisks) {
		t.Errorf("CheckCapacity(9, 80) = %v, expected ErrTooManyDisks", err)
	}
}

func TestTowerColumns(t *testing.T) {
	expected := []int{3, 23, 46}
	for rod := 1; rod <= Rods; rod++ {
		if got := RodColumn(rod, 80); got != expected[rod-1] {
			t.Errorf("RodColumn(%d, 80) = %d, expected %d", rod, got, expected[rod-1])
		}
	}

	if got := PoleColumn(3, 8, core.ProfileBlock); got != 11 {
		t.Errorf("PoleColumn(block) = %d, expected 11", got)
	}
	if got := PoleColumn(3, 16, core.ProfilePlain); got != 11 {
		t.Errorf("PoleColumn(plain) = %d, expected 11", got)
	}
	if got := DiskOffset(8, 6, core.ProfileBlock); got != 2 {
		t.Errorf("DiskOffset(block) = %d, expected 2", got)
	}
	if got := DiskOffset(16, 12, core.ProfilePlain); got != 2 {
		t.Errorf("DiskOffset(plain) = %d, expected 2", got)
	}
	if BaseLine(24) != 20 || OverflowLine(24, 3) != 17 {
		t.Errorf("BaseLine/OverflowLine = %d/%d, expected 20/17", BaseLine(24), OverflowLine(24, 3))
	}
}

func TestRodColumnPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("RodColumn(4) should panic")
		}
	}()
	RodColumn(4, 80)
}

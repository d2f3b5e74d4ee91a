package render

import (
	"errors"
	"testing"

	"github.com/vovakirdan/tui-hanoi/internal/core"
)

func TestAnchorResolve(t *testing.T) {
	d := core.Dimensions{Rows: 24, Cols: 80}

	tests := []struct {
		anchor   Anchor
		width    int
		expected Position
	}{
		{AnchorCenter, 4, Position{Line: 12, Col: 38}},
		{AnchorCenter, 5, Position{Line: 12, Col: 38}},
		{AnchorTopLeft, 10, Position{Line: 0, Col: 0}},
		{AnchorTopRight, 10, Position{Line: 0, Col: 70}},
		{AnchorBottomLeft, 3, Position{Line: 24, Col: 0}},
		{AnchorBottomRight, 3, Position{Line: 24, Col: 77}},
		{AnchorAfterPrompt, 30, Position{Line: 22, Col: 7}},
	}

	for _, tt := range tests {
		got, err := tt.anchor.Resolve(d, tt.width)
		if err != nil {
			t.Errorf("Resolve(%q) error = %v", tt.anchor, err)
			continue
		}
		if got != tt.expected {
			t.Errorf("Resolve(%q, %d) = %+v, expected %+v", tt.anchor, tt.width, got, tt.expected)
		}
	}
}

func TestAnchorResolveUnknown(t *testing.T) {
	_, err := Anchor("upper-middle").Resolve(core.Dimensions{Rows: 24, Cols: 80}, 1)
	if !errors.Is(err, ErrUnknownAnchor) {
		t.Errorf("Resolve(upper-middle) error = %v, expected ErrUnknownAnchor", err)
	}
}

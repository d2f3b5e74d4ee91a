package render

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/tui-hanoi/internal/core"
)

// ErrUnknownAnchor is returned for an anchor name that has no rule.
var ErrUnknownAnchor = errors.New("render: unknown anchor")

// Anchor is a named screen location resolved against the current size.
type Anchor string

const (
	AnchorCenter      Anchor = "center"
	AnchorTopLeft     Anchor = "top-left"
	AnchorTopRight    Anchor = "top-right"
	AnchorBottomLeft  Anchor = "bottom-left"
	AnchorBottomRight Anchor = "bottom-right"
	AnchorAfterPrompt Anchor = "after-prompt"
)

// Resolve returns the position of text with rendered width textWidth placed
// at the anchor on a terminal of size d.
func (a Anchor) Resolve(d core.Dimensions, textWidth int) (Position, error) {
	switch a {
	case AnchorCenter:
		return Position{Line: d.Rows / 2, Col: d.Cols/2 - textWidth/2}, nil
	case AnchorTopLeft:
		return Position{Line: 0, Col: 0}, nil
	case AnchorTopRight:
		return Position{Line: 0, Col: d.Cols - textWidth}, nil
	case AnchorBottomLeft:
		return Position{Line: d.Rows, Col: 0}, nil
	case AnchorBottomRight:
		return Position{Line: d.Rows, Col: d.Cols - textWidth}, nil
	case AnchorAfterPrompt:
		return Position{Line: d.Rows - 2, Col: 7}, nil
	}
	return Position{}, fmt.Errorf("%w: %q", ErrUnknownAnchor, string(a))
}

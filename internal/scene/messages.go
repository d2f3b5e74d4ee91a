package scene

import (
	"fmt"
	"strings"

	"github.com/vovakirdan/tui-hanoi/internal/core"
	"github.com/vovakirdan/tui-hanoi/internal/hanoi"
	"github.com/vovakirdan/tui-hanoi/internal/layout"
	"github.com/vovakirdan/tui-hanoi/internal/render"
)

// Kind selects the look of a message box.
type Kind string

const (
	KindInfo         Kind = "info"
	KindWarning      Kind = "warning"
	KindError        Kind = "error"
	KindConfirmation Kind = "confirmation"
	KindWin          Kind = "win"
	KindLoss         Kind = "loss"
)

// LossText is shown when the player runs out of lives.
const LossText = "YOU ARE A FAILURE!"

type kindStyle struct {
	title  string
	color  core.Color
	random bool
}

var kinds = map[Kind]kindStyle{
	KindInfo:         {title: "INFO", color: core.ColorBlue},
	KindWarning:      {title: "WARNING", color: core.ColorYellow},
	KindError:        {title: "ERROR", color: core.ColorRed},
	KindConfirmation: {title: "CONFIRMATION", color: core.ColorYellow},
	KindWin:          {title: "CONGRATULATION!", random: true},
	KindLoss:         {title: "FAILURE", color: core.ColorRed},
}

// ParseKind validates a message kind name.
func ParseKind(name string) (Kind, error) {
	k := Kind(strings.ToLower(strings.TrimSpace(name)))
	if _, ok := kinds[k]; !ok {
		return "", fmt.Errorf("scene: unknown message kind %q", name)
	}
	return k, nil
}

// WinText is the body of the win box for a game of disks solved in moves.
func WinText(disks, moves int) string {
	return fmt.Sprintf("You have successfully solved the puzzle!\nMinimum Moves Required: %d\nNo of Moves Used: %d\nPlaying Efficiency: %f%%",
		hanoi.MinimumMoves(disks), moves, hanoi.Efficiency(disks, moves))
}

func messageBody(kind Kind, msg string) string {
	switch kind {
	case KindConfirmation:
		return "\nMESSAGE:\n    " + msg + "\n=> Continue with the action [Y/n]:   \n"
	case KindInfo, KindWarning, KindError:
		return "\nMESSAGE:\n    " + msg + "\n"
	}
	return msg
}

// Message clears the terminal, draws a centered box of the given kind
// without touching the cache, then holds it on screen for the kind's
// configured duration. The returned position is where a confirmation
// answer should be typed; it is zero for the other kinds.
func (s *Scene) Message(kind Kind, msg string) (render.Position, error) {
	ks, ok := kinds[kind]
	if !ok {
		panic(fmt.Sprintf("scene: unknown message kind %q", kind))
	}

	color := ks.color
	if ks.random {
		color = s.random()
	}
	var pos render.Position
	if kind == KindConfirmation {
		pos = render.Position{
			Line: s.dims.Rows/2 + len(strings.Split(msg, "\n"))/2 + 1,
			Col:  s.dims.Cols/2 + 18,
		}
	}

	err := s.w.Detached(func() error {
		return s.drawBox(messageBody(kind, msg), layout.PlaceCenter,
			boxStyle{text: color, title: color, blink: true}, ks.title)
	})
	if err != nil {
		return render.Position{}, err
	}
	if kind == KindConfirmation {
		if err := s.w.MoveTo(pos.Line, pos.Col); err != nil {
			return render.Position{}, err
		}
	}
	if d := s.hold[kind]; d > 0 {
		s.sleep(d)
	}
	return pos, nil
}

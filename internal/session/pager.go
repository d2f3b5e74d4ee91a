package session

import (
	"context"

	"github.com/vovakirdan/tui-hanoi/internal/core"
	"github.com/vovakirdan/tui-hanoi/internal/scene"
)

// Pager shows long text in a scrollable view and returns once the player
// dismisses it.
type Pager interface {
	Page(title, body string) error
}

// ScreenPager can also show a rendered copy of the screen next to the text.
type ScreenPager interface {
	Pager
	PageScreen(title, body string, scr *core.Screen) error
}

// page shows body through the pager with the watcher held. Without a pager,
// or when it fails, the text is printed on a cleared screen instead.
func (s *Session) page(ctx context.Context, title, body string, scr *core.Screen) error {
	if s.pager != nil {
		release := s.hold()
		err := s.showPage(title, body, scr)
		release()
		if err == nil {
			return s.main.Reset()
		}
		s.logger.Warn("pager failed", "title", title, "error", err)
		if err := s.message(scene.KindWarning, "Could not open the pager,\nprinting instead"); err != nil {
			return err
		}
	}

	if err := s.main.Reset(); err != nil {
		return err
	}
	if err := s.main.MoveTo(1, 1); err != nil {
		return err
	}
	if err := s.text.Print(body + "\nPress Enter to Continue!"); err != nil {
		return err
	}
	if err := s.pause(ctx); err != nil {
		return err
	}
	return s.main.Reset()
}

func (s *Session) showPage(title, body string, scr *core.Screen) error {
	if sp, ok := s.pager.(ScreenPager); ok && scr != nil {
		return sp.PageScreen(title, body, scr)
	}
	return s.pager.Page(title, body)
}

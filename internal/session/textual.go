package session

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

type styles struct {
	rods   [3]lipgloss.Style
	prompt lipgloss.Style
	notice lipgloss.Style
}

func newStyles(r *lipgloss.Renderer) styles {
	return styles{
		rods: [3]lipgloss.Style{
			r.NewStyle().Foreground(lipgloss.Color("1")),
			r.NewStyle().Foreground(lipgloss.Color("2")),
			r.NewStyle().Foreground(lipgloss.Color("4")),
		},
		prompt: r.NewStyle().Bold(true),
		notice: r.NewStyle().Foreground(lipgloss.Color("3")),
	}
}

// showText prints every rod as its list of disk sizes, bottom first.
func (s *Session) showText() error {
	var b strings.Builder
	for n := 1; n <= 3; n++ {
		b.WriteString(s.styles.rods[n-1].Render(fmt.Sprint(s.tower.Rod(n))))
		b.WriteString("\n")
	}
	b.WriteString(s.styles.prompt.Render(">>"))
	b.WriteString(" ")
	return s.text.Print(b.String())
}

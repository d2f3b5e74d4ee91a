package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-hanoi/internal/core"
)

// Pager layout constants
const (
	pagerHeaderHeight = 2
	pagerFooterHeight = 2
)

// PagerKeyMap defines the key bindings for the pager.
type PagerKeyMap struct {
	Up   key.Binding
	Down key.Binding
	Page key.Binding
	Done key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k PagerKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Page, k.Done}
}

// FullHelp returns key bindings for the full help view.
func (k PagerKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Up, k.Down, k.Page}, {k.Done}}
}

// DefaultPagerKeyMap returns default key bindings.
func DefaultPagerKeyMap() PagerKeyMap {
	return PagerKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		Page: key.NewBinding(
			key.WithKeys("pgup", "pgdown"),
			key.WithHelp("pgup/pgdn", "page"),
		),
		Done: key.NewBinding(
			key.WithKeys("q", "esc", "enter", "ctrl+c"),
			key.WithHelp("q/enter", "back to game"),
		),
	}
}

// PagerModel shows a block of text in a scrollable viewport.
type PagerModel struct {
	title    string
	body     string
	viewport viewport.Model
	help     help.Model
	keys     PagerKeyMap
	ready    bool
	width    int
	done     bool
}

// NewPagerModel creates a pager for body. The viewport is sized on the
// first WindowSizeMsg.
func NewPagerModel(title, body string) PagerModel {
	return PagerModel{
		title: title,
		body:  body,
		help:  help.New(),
		keys:  DefaultPagerKeyMap(),
	}
}

// Init initializes the pager model.
func (m PagerModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the pager.
func (m PagerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Done) {
			m.done = true
			return m, tea.Quit
		}

	case tea.WindowSizeMsg:
		height := core.Max(msg.Height-pagerHeaderHeight-pagerFooterHeight, 1)
		if !m.ready {
			m.viewport = viewport.New(msg.Width, height)
			m.viewport.SetContent(m.body)
			m.ready = true
		} else {
			m.viewport.Width = msg.Width
			m.viewport.Height = height
		}
		m.width = msg.Width
		m.help.Width = msg.Width
		return m, nil
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// View renders the pager.
func (m PagerModel) View() string {
	if m.done {
		return ""
	}
	if !m.ready {
		return "\n  Loading..."
	}

	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	helpStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

	var b strings.Builder
	header := fmt.Sprintf("%s  %3.f%%", m.title, m.viewport.ScrollPercent()*100)
	b.WriteString(titleStyle.Render(header))
	b.WriteString("\n\n")
	b.WriteString(m.viewport.View())
	b.WriteString("\n\n")
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))
	return b.String()
}

// Done reports whether the player dismissed the pager.
func (m PagerModel) Done() bool {
	return m.done
}

// Pager runs a PagerModel program per call. It satisfies the session's
// pager interfaces.
type Pager struct {
	opts []tea.ProgramOption
}

// NewPager creates a pager whose programs get the given options on top of
// the alternate screen.
func NewPager(opts ...tea.ProgramOption) *Pager {
	return &Pager{opts: opts}
}

// Page shows body until the player dismisses it.
func (p *Pager) Page(title, body string) error {
	opts := append([]tea.ProgramOption{tea.WithAltScreen()}, p.opts...)
	_, err := tea.NewProgram(NewPagerModel(title, body), opts...).Run()
	return err
}

// PageScreen shows a rendered screen snapshot above body.
func (p *Pager) PageScreen(title, body string, scr *core.Screen) error {
	return p.Page(title, RenderScreen(scr)+"\n\n"+body)
}

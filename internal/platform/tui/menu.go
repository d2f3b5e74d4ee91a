package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-hanoi/internal/config"
	"github.com/vovakirdan/tui-hanoi/internal/core"
)

// setupRow identifies one line of the setup menu.
type setupRow int

const (
	rowDifficulty setupRow = iota
	rowDisks
	rowGlyphs
	rowInterface
	rowStart
	rowScores
	rowQuit
	rowCount
)

// SetupModel is the Bubble Tea model for the pre-game setup menu.
type SetupModel struct {
	settings  config.Settings
	preset    int // Index into config.Presets()
	maxDisks  int
	cursor    setupRow
	width     int
	height    int
	keyMapper *KeyMapper
	quitting  bool
	started   bool
	scores    bool
}

// NewSetupModel creates a setup menu starting from settings. maxDisks is the
// largest disk count the terminal can show.
func NewSetupModel(settings config.Settings, maxDisks, width, height int) SetupModel {
	presets := config.Presets()
	return SetupModel{
		settings:  settings,
		preset:    len(presets) - 1, // Custom: whatever the file and flags say
		maxDisks:  core.Max(maxDisks, 1),
		width:     width,
		height:    height,
		keyMapper: NewKeyMapper(),
	}
}

// Init initializes the menu model.
func (m SetupModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m SetupModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	}

	return m, nil
}

func (m SetupModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.keyMapper.MapKeyToMenuAction(msg) {
	case MenuActionQuit, MenuActionBack:
		m.quitting = true
		return m, tea.Quit

	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}

	case MenuActionDown:
		if m.cursor < rowCount-1 {
			m.cursor++
		}

	case MenuActionLeft:
		m.adjust(-1)

	case MenuActionRight:
		m.adjust(1)

	case MenuActionScoreboard:
		m.scores = true
		return m, tea.Quit

	case MenuActionSelect:
		switch m.cursor {
		case rowStart:
			m.started = true
			return m, tea.Quit
		case rowScores:
			m.scores = true
			return m, tea.Quit
		case rowQuit:
			m.quitting = true
			return m, tea.Quit
		default:
			m.adjust(1)
		}
	}

	return m, nil
}

// adjust changes the value on the cursor row by delta steps.
func (m *SetupModel) adjust(delta int) {
	switch m.cursor {
	case rowDifficulty:
		presets := config.Presets()
		m.preset = (m.preset + delta + len(presets)) % len(presets)
		config.ApplyPreset(&m.settings, presets[m.preset])
		m.settings.DiskCapacity = core.Clamp(m.settings.DiskCapacity, 1, m.maxDisks)
	case rowDisks:
		m.settings.DiskCapacity = core.Clamp(m.settings.DiskCapacity+delta, 1, m.maxDisks)
		m.preset = len(config.Presets()) - 1
	case rowGlyphs:
		m.settings.RenderPlain = !m.settings.RenderPlain
	case rowInterface:
		next := core.ModeTextual
		if mode, _ := m.settings.Mode(); mode == core.ModeTextual {
			next = core.ModeGraphics
		}
		m.settings.InterfaceMode = next.String()
	}
}

// View renders the menu.
func (m SetupModel) View() string {
	if m.quitting {
		return ""
	}

	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	hintStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(titleStyle.Render(centerText("T O W E R S   O F   H A N O I", m.width)))
	b.WriteString("\n\n")

	preset := config.Presets()[m.preset]
	mode, _ := m.settings.Mode()
	rows := []string{
		fmt.Sprintf("Difficulty   < %s >", preset),
		fmt.Sprintf("Disks        < %d >", m.settings.DiskCapacity),
		fmt.Sprintf("Glyphs       < %s >", m.settings.Profile()),
		fmt.Sprintf("Interface    < %s >", mode),
		"Start",
		"Scores",
		"Quit",
	}
	for i, row := range rows {
		cursor := "  "
		if setupRow(i) == m.cursor {
			cursor = "> "
		}
		b.WriteString(centerText(fmt.Sprintf("%s%-24s", cursor, row), m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(hintStyle.Render(centerText(preset.Describe(), m.width)))
	b.WriteString("\n\n")
	controls := "Up/Down: Navigate  |  Left/Right: Change  |  Enter: Select  |  Tab: Scores  |  Q: Quit"
	b.WriteString(centerText(controls, m.width))
	b.WriteString("\n")

	return b.String()
}

// Settings returns the settings as edited so far.
func (m SetupModel) Settings() config.Settings {
	return m.settings
}

// centerText centers text within given width.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	padding := (width - w) / 2
	return strings.Repeat(" ", padding) + text
}

// SetupResult holds the result of running the setup menu.
type SetupResult struct {
	Settings        config.Settings
	Start           bool
	WantsScoreboard bool
	Quit            bool
}

// RunSetup runs the setup menu and returns what the player picked.
func RunSetup(settings config.Settings, maxDisks, width, height int, opts ...tea.ProgramOption) (SetupResult, error) {
	model := NewSetupModel(settings, maxDisks, width, height)

	p := tea.NewProgram(model, append([]tea.ProgramOption{tea.WithAltScreen()}, opts...)...)

	finalModel, err := p.Run()
	if err != nil {
		return SetupResult{Settings: settings}, err
	}

	m, ok := finalModel.(SetupModel)
	if !ok {
		return SetupResult{Settings: settings, Quit: true}, nil
	}

	result := SetupResult{Settings: m.Settings()}
	switch {
	case m.scores:
		result.WantsScoreboard = true
	case m.started:
		result.Start = true
	default:
		result.Quit = true
	}
	return result, nil
}

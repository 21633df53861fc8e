package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-invaders/internal/config"
	"github.com/vovakirdan/tui-invaders/internal/core"
	"github.com/vovakirdan/tui-invaders/internal/settings"
)

// MenuChoice is what the launcher menu was closed with.
type MenuChoice int

const (
	ChoiceNone MenuChoice = iota
	ChoicePlay
	ChoiceScores
	ChoiceQuit
)

type menuRow int

const (
	rowPlay menuRow = iota
	rowMode
	rowDifficulty
	rowScores
	rowQuit
	rowCount
)

var difficulties = []config.DifficultyPreset{
	config.DifficultyEasy,
	config.DifficultyNormal,
	config.DifficultyHard,
	config.DifficultyFixed,
}

var (
	menuTitleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10"))
	menuCursorStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
)

// MenuModel is the launcher: pick mode and difficulty, then play or look at
// the scores. Changes are written to the settings on close.
type MenuModel struct {
	prefs   *settings.Manager
	profile string
	cursor  menuRow
	width   int
	height  int
	config  core.RuntimeConfig
	choice  MenuChoice
}

// NewMenuModel creates a launcher over the given settings.
func NewMenuModel(prefs *settings.Manager, profile string, cfg core.RuntimeConfig) MenuModel {
	return MenuModel{
		prefs:   prefs,
		profile: profile,
		width:   cfg.ScreenW,
		height:  cfg.ScreenH,
		config:  cfg,
	}
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
	}
	return m, nil
}

func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q", "esc":
		return m.close(ChoiceQuit)
	case "up", "k":
		m.cursor = (m.cursor + rowCount - 1) % rowCount
	case "down", "j":
		m.cursor = (m.cursor + 1) % rowCount
	case "left", "h":
		m.cycle(-1)
	case "right", "l":
		m.cycle(1)
	case "tab":
		return m.close(ChoiceScores)
	case "enter", " ":
		switch m.cursor {
		case rowPlay:
			return m.close(ChoicePlay)
		case rowScores:
			return m.close(ChoiceScores)
		case rowQuit:
			return m.close(ChoiceQuit)
		default:
			m.cycle(1)
		}
	}
	return m, nil
}

// cycle changes the option under the cursor.
func (m *MenuModel) cycle(dir int) {
	s := m.prefs.Get()
	switch m.cursor {
	case rowMode:
		m.prefs.SetTwoPlayer(!s.TwoPlayer)
	case rowDifficulty:
		i := 0
		for j, d := range difficulties {
			if string(d) == s.Difficulty {
				i = j
			}
		}
		i = (i + dir + len(difficulties)) % len(difficulties)
		m.prefs.SetDifficulty(string(difficulties[i])) //nolint:errcheck // names come from the list above
	}
}

func (m MenuModel) close(choice MenuChoice) (tea.Model, tea.Cmd) {
	m.choice = choice
	return m, tea.Quit
}

// View renders the menu.
func (m MenuModel) View() string {
	if m.choice != ChoiceNone {
		return ""
	}

	s := m.prefs.Get()
	mode := "1 player"
	if s.TwoPlayer {
		mode = "2 players"
	}

	labels := [rowCount]string{
		rowPlay:       "Play",
		rowMode:       fmt.Sprintf("Mode: < %s >", mode),
		rowDifficulty: fmt.Sprintf("Difficulty: < %s >", s.Difficulty),
		rowScores:     "High scores",
		rowQuit:       "Quit",
	}

	lines := []string{
		menuTitleStyle.Render("S P A C E   I N V A D E R S"),
		"",
		"profile: " + m.profile,
		"",
	}
	for i, label := range labels {
		if menuRow(i) == m.cursor {
			lines = append(lines, menuCursorStyle.Render("> "+label+" <"))
		} else {
			lines = append(lines, "  "+label+"  ")
		}
	}
	lines = append(lines, "", "Up/Down: Navigate  Left/Right: Change  Enter: Select  Q: Quit")

	body := lipgloss.JoinVertical(lipgloss.Center, lines...)
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, body)
}

// Choice returns how the menu was closed.
func (m MenuModel) Choice() MenuChoice {
	return m.choice
}

// Config returns the runtime config, updated by resizes.
func (m MenuModel) Config() core.RuntimeConfig {
	return m.config
}

// MenuResult is returned by RunMenu.
type MenuResult struct {
	Choice MenuChoice
	Config core.RuntimeConfig
}

// RunMenu shows the launcher and saves the settings it changed.
func RunMenu(prefs *settings.Manager, profile string, cfg core.RuntimeConfig) (MenuResult, error) {
	p := tea.NewProgram(NewMenuModel(prefs, profile, cfg), tea.WithAltScreen())

	final, err := p.Run()
	if err != nil {
		return MenuResult{Choice: ChoiceQuit, Config: cfg}, err
	}

	m, ok := final.(MenuModel)
	if !ok {
		return MenuResult{Choice: ChoiceQuit, Config: cfg}, nil
	}
	if m.choice == ChoiceNone {
		m.choice = ChoiceQuit
	}
	if err := prefs.Save(); err != nil {
		return MenuResult{Choice: m.choice, Config: m.config}, err
	}
	return MenuResult{Choice: m.choice, Config: m.config}, nil
}

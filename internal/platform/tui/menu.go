package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-timestep/internal/core"
	"github.com/vovakirdan/tui-timestep/internal/registry"
)

var (
	bannerStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	blurbStyle    = lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("241"))
	highlightLine = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
)

// MenuChoice is how the picker was left.
type MenuChoice int

const (
	ChoiceNone MenuChoice = iota
	ChoiceDemo
	ChoiceRuns
	ChoiceQuit
)

// MenuKeyMap binds the demo picker keys.
type MenuKeyMap struct {
	Up    key.Binding
	Down  key.Binding
	Run   key.Binding
	Runs  key.Binding
	Leave key.Binding
}

func (k MenuKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Run, k.Runs, k.Leave}
}

func (k MenuKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

// DefaultMenuKeyMap returns the picker bindings.
func DefaultMenuKeyMap() MenuKeyMap {
	return MenuKeyMap{
		Up:    key.NewBinding(key.WithKeys("up", "k", "w"), key.WithHelp("↑/k", "up")),
		Down:  key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Run:   key.NewBinding(key.WithKeys("enter", " "), key.WithHelp("enter", "run")),
		Runs:  key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "runs")),
		Leave: key.NewBinding(key.WithKeys("q", "ctrl+c", "esc", "b"), key.WithHelp("q", "quit")),
	}
}

// MenuModel picks a demo from the registry.
type MenuModel struct {
	demos  []registry.DemoInfo
	cursor int
	config core.RuntimeConfig
	keys   MenuKeyMap
	help   help.Model
	choice MenuChoice
}

func NewMenuModel(cfg core.RuntimeConfig) MenuModel {
	return MenuModel{
		demos:  registry.List(),
		config: cfg,
		keys:   DefaultMenuKeyMap(),
		help:   help.New(),
	}
}

func (m MenuModel) Init() tea.Cmd { return nil }

func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.config.ScreenW, m.config.ScreenH = msg.Width, msg.Height
		m.help.Width = msg.Width
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Leave):
			return m.finish(ChoiceQuit)
		case key.Matches(msg, m.keys.Runs):
			return m.finish(ChoiceRuns)
		case key.Matches(msg, m.keys.Run) && len(m.demos) > 0:
			return m.finish(ChoiceDemo)
		case key.Matches(msg, m.keys.Up):
			m.cursor = max(m.cursor-1, 0)
		case key.Matches(msg, m.keys.Down):
			if m.cursor < len(m.demos)-1 {
				m.cursor++
			}
		}
	}
	return m, nil
}

func (m MenuModel) finish(c MenuChoice) (tea.Model, tea.Cmd) {
	m.choice = c
	return m, tea.Quit
}

func (m MenuModel) View() string {
	if m.choice == ChoiceQuit {
		return ""
	}

	lines := []string{
		"",
		bannerStyle.Render("T I M E S T E P"),
		"game loop stepping policies, one per demo",
		"",
	}
	for i, d := range m.demos {
		if i == m.cursor {
			lines = append(lines, highlightLine.Render(fmt.Sprintf("▸ %-26s", d.Title)))
			continue
		}
		lines = append(lines, fmt.Sprintf("  %-26s", d.Title))
	}
	if len(m.demos) > 0 {
		lines = append(lines, "", blurbStyle.Render(m.demos[m.cursor].Description))
	}
	lines = append(lines, "", m.help.View(m.keys))

	var b strings.Builder
	for _, l := range lines {
		b.WriteString(centerText(l, m.config.ScreenW))
		b.WriteByte('\n')
	}
	return b.String()
}

// Choice reports how the picker ended; ChoiceNone while it is still open.
func (m MenuModel) Choice() MenuChoice { return m.choice }

// SelectedID is the demo under the cursor when Choice is ChoiceDemo.
func (m MenuModel) SelectedID() string {
	if m.choice != ChoiceDemo {
		return ""
	}
	return m.demos[m.cursor].ID
}

// Config carries the terminal size seen by the picker.
func (m MenuModel) Config() core.RuntimeConfig { return m.config }

func centerText(text string, width int) string {
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, text)
}

// MenuResult is what RunMenu hands back to the caller's loop.
type MenuResult struct {
	Choice MenuChoice
	DemoID string
	Config core.RuntimeConfig
}

// RunMenu shows the picker full screen until a choice is made.
func RunMenu(cfg core.RuntimeConfig) (MenuResult, error) {
	final, err := tea.NewProgram(NewMenuModel(cfg), tea.WithAltScreen()).Run()
	if err != nil {
		return MenuResult{Config: cfg}, err
	}
	m, ok := final.(MenuModel)
	if !ok || m.Choice() == ChoiceNone {
		return MenuResult{Choice: ChoiceQuit, Config: cfg}, nil
	}
	return MenuResult{Choice: m.Choice(), DemoID: m.SelectedID(), Config: m.Config()}, nil
}

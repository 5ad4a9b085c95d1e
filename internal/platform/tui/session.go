package tui

import (
	"io"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-timestep/internal/core"
	"github.com/vovakirdan/tui-timestep/internal/registry"
	"github.com/vovakirdan/tui-timestep/internal/storage"
)

type sessionView int

const (
	viewMenu sessionView = iota
	viewDemo
	viewRuns
)

// SessionModel is one SSH client's whole visit: the picker, then a demo or
// the runs browser, then back to the picker.
type SessionModel struct {
	store    *storage.Store
	config   core.RuntimeConfig
	logger   *log.Logger
	view     sessionView
	menu     MenuModel
	demo     Model
	runs     RunsModel
	quitting bool
}

func NewSessionModel(store *storage.Store, cfg core.RuntimeConfig, logger *log.Logger) SessionModel {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return SessionModel{store: store, config: cfg, logger: logger, menu: NewMenuModel(cfg)}
}

func (m SessionModel) Init() tea.Cmd { return m.menu.Init() }

func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if size, ok := msg.(tea.WindowSizeMsg); ok {
		m.config.ScreenW, m.config.ScreenH = size.Width, size.Height
	}

	var (
		cmd          tea.Cmd
		quit, goBack bool
		child        tea.Model
	)
	switch m.view {
	case viewDemo:
		child, cmd = m.demo.Update(msg)
		m.demo = child.(Model)
		quit, goBack = m.demo.IsQuitting(), m.demo.BackToMenu()
	case viewRuns:
		child, cmd = m.runs.Update(msg)
		m.runs = child.(RunsModel)
		quit, goBack = m.runs.IsQuitting(), m.runs.IsGoingBack()
	default:
		child, cmd = m.menu.Update(msg)
		m.menu = child.(MenuModel)
		return m.leaveMenu(cmd)
	}

	switch {
	case quit:
		m.quitting = true
		return m, tea.Quit
	case goBack:
		m.view = viewMenu
		m.menu = NewMenuModel(m.config)
		return m, m.menu.Init()
	}
	return m, cmd
}

// leaveMenu swaps in whatever the picker chose. The picker's own tea.Quit is
// dropped unless the client is leaving.
func (m SessionModel) leaveMenu(cmd tea.Cmd) (tea.Model, tea.Cmd) {
	switch m.menu.Choice() {
	case ChoiceQuit:
		m.quitting = true
		return m, tea.Quit
	case ChoiceRuns:
		m.view = viewRuns
		m.runs = NewRunsModel(m.store, m.config.ScreenW, m.config.ScreenH, "")
		return m, m.runs.Init()
	case ChoiceDemo:
		demo, err := registry.Create(m.menu.SelectedID())
		if err != nil {
			m.logger.Warn("cannot create demo", "id", m.menu.SelectedID(), "error", err)
			m.menu = NewMenuModel(m.config)
			return m, nil
		}
		m.view = viewDemo
		m.demo = NewModel(demo, m.store, m.config, m.logger).WithMode(storage.ModeSSH)
		m.demo.embedded = true
		return m, m.demo.Init()
	}
	return m, cmd
}

func (m SessionModel) View() string {
	switch {
	case m.quitting:
		return ""
	case m.view == viewDemo:
		return m.demo.View()
	case m.view == viewRuns:
		return m.runs.View()
	}
	return m.menu.View()
}

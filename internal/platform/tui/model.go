package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-timestep/internal/clock"
	"github.com/vovakirdan/tui-timestep/internal/config"
	"github.com/vovakirdan/tui-timestep/internal/core"
	"github.com/vovakirdan/tui-timestep/internal/registry"
	"github.com/vovakirdan/tui-timestep/internal/storage"
)

// configured is implemented by demos that carry a YAML configuration.
type configured interface {
	Config() config.DemoConfig
}

var helpStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

// Model is the Bubble Tea model hosting one running demo.
// Every tick it turns the wall clock into a FrameContext, lets the demo
// update, and schedules the next frame.
type Model struct {
	demo       registry.Demo
	screen     *core.Screen
	store      *storage.Store
	logger     *log.Logger
	config     core.RuntimeConfig
	clock      *clock.Clock
	keys       *KeyMapper
	help       help.Model
	input      core.InputFrame
	hint       core.RenderHint
	mode       string
	seq        uint64
	frameRate  int
	slow       bool
	embedded   bool // Hosted inside a SessionModel; back returns to its menu
	quitting   bool
	backToMenu bool
	saved      bool // Whether the run has been recorded
}

// NewModel creates a model for the given demo and resets the demo.
// A nil store disables run recording; a nil logger discards diagnostics.
func NewModel(demo registry.Demo, store *storage.Store, cfg core.RuntimeConfig, logger *log.Logger) Model {
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}

	demo.Reset(cfg)

	frameRate := cfg.FrameRate
	if c, ok := demo.(configured); ok && c.Config().Presentation.FrameRate > 0 {
		frameRate = c.Config().Presentation.FrameRate
	}

	return Model{
		demo:      demo,
		screen:    core.NewScreen(cfg.ScreenW, max(cfg.ScreenH-1, 1)),
		store:     store,
		logger:    logger,
		config:    cfg,
		clock:     clock.New(),
		keys:      NewKeyMapper(),
		help:      help.New(),
		input:     core.NewInputFrame(),
		mode:      storage.ModeInteractive,
		seq:       nextLoop(),
		frameRate: frameRate,
	}
}

// WithMode sets the run mode recorded in the run log.
func (m Model) WithMode(mode string) Model {
	m.mode = mode
	return m
}

// Init starts the frame loop.
func (m Model) Init() tea.Cmd {
	m.logger.Info("demo started", "demo", m.demo.ID(), "frame_rate", m.frameRate)
	return tickCmd(m.seq, frameInterval(m.frameRate, m.slow, 0))
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.screen.Resize(msg.Width, max(msg.Height-1, 1))
		m.help.Width = msg.Width
		return m, nil

	case TickMsg:
		if msg.Seq != m.seq || m.quitting || m.backToMenu {
			return m, nil
		}
		return m.handleTick(msg.At)
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.keys.IsScreenshot(msg) {
		m.saveScreenshot()
		return m, nil
	}

	action, isQuit := m.keys.MapKey(msg)
	if isQuit {
		m.quitting = true
		m.recordRun()
		return m, tea.Quit
	}

	switch action {
	case core.ActionBack:
		m.backToMenu = true
		m.recordRun()
		if m.embedded {
			return m, nil
		}
		return m, tea.Quit
	case core.ActionSlow:
		m.slow = !m.slow
	case core.ActionPause, core.ActionRestart:
		m.input.Set(action)
	}

	return m, nil
}

// handleTick runs one frame: pending input, clock, update.
func (m Model) handleTick(now time.Time) (tea.Model, tea.Cmd) {
	if m.input.Any() {
		m.demo.HandleInput(m.input)
		m.input.Clear()
	}

	frame := m.clock.Tick(now)
	res := m.demo.OnUpdate(frame)
	m.hint = core.RenderHint{Frame: frame, Alpha: res.Report.Alpha}

	m.logger.Debug("[update]",
		"tick", frame.Ticks,
		"steps", res.Report.Steps,
		"distance", res.Report.Distance,
	)
	m.logger.Debug("[draw]",
		"tick", frame.Ticks,
		"fps", frame.FPS,
		"delta", frame.Delta,
	)

	return m, tickCmd(m.seq, frameInterval(m.frameRate, m.slow, res.PresentDelay))
}

// recordRun stores the run summary once. Storage failures are logged only.
func (m *Model) recordRun() {
	if m.saved || m.store == nil {
		return
	}
	m.saved = true

	stats := m.demo.Stats()
	if stats.Frames == 0 {
		return
	}

	_, err := m.store.SaveRun(storage.RunEntry{
		DemoID:        m.demo.ID(),
		Mode:          m.mode,
		Frames:        int(stats.Frames),
		SimSteps:      stats.Steps,
		FinalPosition: stats.Position,
		AvgFPS:        m.clock.FPS(),
		Duration:      m.hint.Frame.Elapsed,
	})
	if err != nil {
		m.logger.Warn("could not save run", "demo", m.demo.ID(), "error", err)
	}
}

// saveScreenshot writes the current screen as plain text.
func (m *Model) saveScreenshot() {
	m.screen.Clear()
	m.demo.OnRender(m.hint, m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		m.logger.Warn("screenshot skipped", "error", err)
		return
	}
	dir := filepath.Join(home, ".timestep", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.logger.Warn("screenshot skipped", "error", err)
		return
	}

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.demo.ID(), timestamp))
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.logger.Warn("screenshot failed", "path", path, "error", err)
		return
	}
	m.logger.Info("screenshot saved", "path", path)
}

// View renders the demo followed by a key help line.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.screen.Clear()
	m.demo.OnRender(m.hint, m.screen)

	status := ""
	if m.slow {
		status = "  [slow]"
	}
	return RenderScreen(m.screen) + "\n" + helpStyle.Render(m.help.View(m.keys)+status)
}

// BackToMenu reports whether the user asked to return to the menu.
func (m Model) BackToMenu() bool {
	return m.backToMenu
}

// IsQuitting reports whether the user asked to exit.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// Frame returns the most recent frame context.
func (m Model) Frame() core.FrameContext {
	return m.hint.Frame
}

// Run starts a Bubble Tea program for the demo.
// Returns true if the user asked to go back to the menu.
func Run(demo registry.Demo, store *storage.Store, cfg core.RuntimeConfig, logger *log.Logger) (backToMenu bool, err error) {
	model := NewModel(demo, store, cfg, logger)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return false, err
	}

	m, ok := finalModel.(Model)
	if !ok {
		return false, nil
	}
	return m.BackToMenu(), nil
}

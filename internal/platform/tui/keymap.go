package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-timestep/internal/core"
)

// KeyMapper translates Bubble Tea key messages to demo and menu actions.
// It doubles as the help.KeyMap shown under a running demo.
type KeyMapper struct {
	Pause      key.Binding
	Restart    key.Binding
	Slow       key.Binding
	Screenshot key.Binding
	Back       key.Binding
	Quit       key.Binding
}

// NewKeyMapper creates a key mapper with the default bindings.
func NewKeyMapper() *KeyMapper {
	return &KeyMapper{
		Pause: key.NewBinding(
			key.WithKeys("p", " "),
			key.WithHelp("p", "pause"),
		),
		Restart: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "restart"),
		),
		Slow: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "slow motion"),
		),
		Screenshot: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "screenshot"),
		),
		Back: key.NewBinding(
			key.WithKeys("b", "esc"),
			key.WithHelp("esc/b", "menu"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp returns key bindings for the short help view.
func (km *KeyMapper) ShortHelp() []key.Binding {
	return []key.Binding{km.Pause, km.Restart, km.Slow, km.Back, km.Quit}
}

// FullHelp returns key bindings for the full help view.
func (km *KeyMapper) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{km.Pause, km.Restart, km.Slow},
		{km.Screenshot, km.Back, km.Quit},
	}
}

// MapKey translates a key message to a demo action.
// Returns the action (may be ActionNone) and whether it's a quit request.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) (action core.Action, isQuit bool) {
	switch {
	case key.Matches(msg, km.Quit):
		return core.ActionQuit, true
	case key.Matches(msg, km.Pause):
		return core.ActionPause, false
	case key.Matches(msg, km.Restart):
		return core.ActionRestart, false
	case key.Matches(msg, km.Slow):
		return core.ActionSlow, false
	case key.Matches(msg, km.Back):
		return core.ActionBack, false
	}
	return core.ActionNone, false
}

// IsScreenshot reports whether the key requests a screenshot.
func (km *KeyMapper) IsScreenshot(msg tea.KeyMsg) bool {
	return key.Matches(msg, km.Screenshot)
}

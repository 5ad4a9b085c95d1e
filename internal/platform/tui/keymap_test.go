package tui

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-timestep/internal/core"
)

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestMapKey(t *testing.T) {
	km := NewKeyMapper()

	tests := []struct {
		name   string
		msg    tea.KeyMsg
		action core.Action
		quit   bool
	}{
		{"pause", runeKey('p'), core.ActionPause, false},
		{"pause space", tea.KeyMsg{Type: tea.KeySpace}, core.ActionPause, false},
		{"restart", runeKey('r'), core.ActionRestart, false},
		{"slow", runeKey('s'), core.ActionSlow, false},
		{"back b", runeKey('b'), core.ActionBack, false},
		{"back esc", tea.KeyMsg{Type: tea.KeyEsc}, core.ActionBack, false},
		{"quit q", runeKey('q'), core.ActionQuit, true},
		{"quit ctrl+c", tea.KeyMsg{Type: tea.KeyCtrlC}, core.ActionQuit, true},
		{"unbound", runeKey('x'), core.ActionNone, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			action, quit := km.MapKey(tt.msg)
			if action != tt.action || quit != tt.quit {
				t.Errorf("MapKey(%q) = %v, %v; expected %v, %v", tt.msg.String(), action, quit, tt.action, tt.quit)
			}
		})
	}
}

func TestScreenshotKey(t *testing.T) {
	km := NewKeyMapper()
	if !km.IsScreenshot(tea.KeyMsg{Type: tea.KeyCtrlS}) {
		t.Error("ctrl+s should request a screenshot")
	}
	if km.IsScreenshot(runeKey('s')) {
		t.Error("plain s is slow motion, not a screenshot")
	}
}

func TestMenuKeys(t *testing.T) {
	tests := []struct {
		name string
		msg  tea.KeyMsg
		want MenuChoice
	}{
		{"enter runs the demo", tea.KeyMsg{Type: tea.KeyEnter}, ChoiceDemo},
		{"tab opens runs", tea.KeyMsg{Type: tea.KeyTab}, ChoiceRuns},
		{"esc leaves", tea.KeyMsg{Type: tea.KeyEsc}, ChoiceQuit},
		{"q leaves", runeKey('q'), ChoiceQuit},
		{"arrows keep the menu open", tea.KeyMsg{Type: tea.KeyDown}, ChoiceNone},
		{"unbound", runeKey('z'), ChoiceNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			next, _ := NewMenuModel(testConfig()).Update(tt.msg)
			if got := next.(MenuModel).Choice(); got != tt.want {
				t.Errorf("Choice() = %v, expected %v", got, tt.want)
			}
		})
	}
}

func TestMenuCursorStaysInRange(t *testing.T) {
	m := NewMenuModel(testConfig())
	up := tea.KeyMsg{Type: tea.KeyUp}
	down := runeKey('j')

	next, _ := m.Update(up)
	if next.(MenuModel).cursor != 0 {
		t.Error("cursor moved above the first demo")
	}

	for range len(m.demos) + 3 {
		next, _ = next.Update(down)
	}
	if got := next.(MenuModel).cursor; got != len(m.demos)-1 {
		t.Errorf("cursor = %d, expected %d", got, len(m.demos)-1)
	}

	next, _ = next.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if next.(MenuModel).SelectedID() == "" {
		t.Error("enter should select the demo under the cursor")
	}
}

func TestFrameInterval(t *testing.T) {
	tests := []struct {
		name     string
		rate     int
		slow     bool
		delay    time.Duration
		expected time.Duration
	}{
		{"60 fps", 60, false, 0, time.Second / 60},
		{"slow 60 fps", 60, true, 0, time.Second / 15},
		{"slow never below 1 fps", 2, true, 0, time.Second},
		{"delay wins", 60, false, 2 * time.Second, 2 * time.Second},
		{"interval wins", 10, false, time.Millisecond, 100 * time.Millisecond},
		{"default rate", 0, false, 0, time.Second / 60},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := frameInterval(tt.rate, tt.slow, tt.delay); got != tt.expected {
				t.Errorf("frameInterval() = %v, expected %v", got, tt.expected)
			}
		})
	}
}

package tui

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-timestep/internal/core"
	"github.com/vovakirdan/tui-timestep/internal/registry"
	"github.com/vovakirdan/tui-timestep/internal/storage"
)

// countingDemo moves one unit per frame and records what the host sent it.
type countingDemo struct {
	deltas  []time.Duration
	inputs  int
	paused  bool
	frames  uint64
	delay   time.Duration
	resetTo core.RuntimeConfig
}

func (d *countingDemo) ID() string          { return "counting" }
func (d *countingDemo) Title() string       { return "Counting" }
func (d *countingDemo) Description() string { return "one unit per frame" }

func (d *countingDemo) Reset(cfg core.RuntimeConfig) {
	d.resetTo = cfg
	d.frames = 0
}

func (d *countingDemo) OnUpdate(frame core.FrameContext) core.UpdateResult {
	d.deltas = append(d.deltas, frame.Delta)
	if d.paused {
		return core.UpdateResult{}
	}
	d.frames++
	return core.UpdateResult{PresentDelay: d.delay}
}

func (d *countingDemo) OnRender(_ core.RenderHint, dst *core.Screen) {
	dst.DrawText(0, 0, "counting")
}

func (d *countingDemo) HandleInput(in core.InputFrame) {
	d.inputs++
	if in.Has(core.ActionPause) {
		d.paused = !d.paused
	}
}

func (d *countingDemo) Stats() core.DemoStats {
	return core.DemoStats{Frames: d.frames, Steps: int(d.frames), Position: float64(d.frames), Paused: d.paused}
}

func init() {
	registry.Register("counting", func() registry.Demo { return &countingDemo{} })
}

func testConfig() core.RuntimeConfig {
	return core.RuntimeConfig{ScreenW: 40, ScreenH: 12, FrameRate: 60, Seed: 1}
}

func tick(m Model, at time.Time) Model {
	next, _ := m.Update(TickMsg{At: at, Seq: m.seq})
	return next.(Model)
}

func TestModelTicksDriveDemo(t *testing.T) {
	demo := &countingDemo{}
	m := NewModel(demo, nil, testConfig(), nil)

	start := time.Unix(100, 0)
	m = tick(m, start)
	m = tick(m, start.Add(20*time.Millisecond))
	m = tick(m, start.Add(50*time.Millisecond))

	expected := []time.Duration{0, 20 * time.Millisecond, 30 * time.Millisecond}
	if len(demo.deltas) != len(expected) {
		t.Fatalf("expected %d updates, got %d", len(expected), len(demo.deltas))
	}
	for i, d := range expected {
		if demo.deltas[i] != d {
			t.Errorf("delta[%d] = %v, expected %v", i, demo.deltas[i], d)
		}
	}

	if m.Frame().Ticks != 3 || m.Frame().Elapsed != 50*time.Millisecond {
		t.Errorf("unexpected frame context: %+v", m.Frame())
	}
}

func TestModelIgnoresStaleTicks(t *testing.T) {
	demo := &countingDemo{}
	m := NewModel(demo, nil, testConfig(), nil)

	next, cmd := m.Update(TickMsg{At: time.Now(), Seq: m.seq + 1000})
	m = next.(Model)

	if cmd != nil || len(demo.deltas) != 0 {
		t.Error("a tick from another frame loop should be ignored")
	}
}

func TestModelSchedulesNextTick(t *testing.T) {
	m := NewModel(&countingDemo{}, nil, testConfig(), nil)

	_, cmd := m.Update(TickMsg{At: time.Now(), Seq: m.seq})
	if cmd == nil {
		t.Fatal("a tick should schedule the next frame")
	}
}

func TestModelPauseAppliedOnNextFrame(t *testing.T) {
	demo := &countingDemo{}
	m := NewModel(demo, nil, testConfig(), nil)

	next, _ := m.Update(runeKey('p'))
	m = next.(Model)
	if demo.inputs != 0 {
		t.Error("input should wait for the next frame")
	}

	m = tick(m, time.Unix(0, 0))
	if demo.inputs != 1 || !demo.paused {
		t.Errorf("pause should reach the demo on the next frame, inputs=%d paused=%v", demo.inputs, demo.paused)
	}

	m = tick(m, time.Unix(1, 0))
	if demo.inputs != 1 {
		t.Error("input should be cleared after being applied")
	}
}

func TestModelSlowToggle(t *testing.T) {
	m := NewModel(&countingDemo{}, nil, testConfig(), nil)

	next, _ := m.Update(runeKey('s'))
	m = next.(Model)
	if !m.slow {
		t.Fatal("s should enable slow motion")
	}
	if !strings.Contains(m.View(), "[slow]") {
		t.Error("view should show slow motion status")
	}

	next, _ = m.Update(runeKey('s'))
	if next.(Model).slow {
		t.Error("s should toggle slow motion off")
	}
}

func TestModelQuitRecordsRun(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "runs.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	m := NewModel(&countingDemo{}, store, testConfig(), nil)
	start := time.Unix(0, 0)
	for i := range 5 {
		m = tick(m, start.Add(time.Duration(i)*100*time.Millisecond))
	}

	next, cmd := m.Update(runeKey('q'))
	m = next.(Model)
	if cmd == nil || !m.IsQuitting() {
		t.Fatal("q should quit")
	}

	runs, err := store.RecentRuns("counting", 10)
	if err != nil {
		t.Fatalf("RecentRuns() failed: %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("expected 1 recorded run, got %d", len(runs))
	}
	r := runs[0]
	if r.Frames != 5 || r.SimSteps != 5 || r.Mode != storage.ModeInteractive {
		t.Errorf("unexpected run: %+v", r)
	}
	if r.Duration != 400*time.Millisecond {
		t.Errorf("Duration = %v, expected 400ms", r.Duration)
	}

	// A second quit must not record again.
	m.Update(runeKey('q'))
	if n, _ := store.RunCount("counting"); n != 1 {
		t.Errorf("run recorded %d times", n)
	}
}

func TestModelBack(t *testing.T) {
	m := NewModel(&countingDemo{}, nil, testConfig(), nil)

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	m = next.(Model)
	if !m.BackToMenu() {
		t.Error("esc should request the menu")
	}
	if cmd == nil {
		t.Error("standalone model should exit its program on back")
	}

	embedded := NewModel(&countingDemo{}, nil, testConfig(), nil)
	embedded.embedded = true
	next, cmd = embedded.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if !next.(Model).BackToMenu() || cmd != nil {
		t.Error("embedded model should hand back to the session without quitting")
	}
}

func TestModelView(t *testing.T) {
	m := NewModel(&countingDemo{}, nil, testConfig(), nil)
	m = tick(m, time.Unix(0, 0))

	view := m.View()
	if !strings.Contains(view, "counting") {
		t.Error("view should contain the demo's drawing")
	}
	if !strings.Contains(view, "pause") || !strings.Contains(view, "quit") {
		t.Error("view should contain key help")
	}
}

func TestModelResize(t *testing.T) {
	m := NewModel(&countingDemo{}, nil, testConfig(), nil)

	next, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	m = next.(Model)

	if m.screen.Width() != 100 || m.screen.Height() != 29 {
		t.Errorf("screen = %dx%d, expected 100x29 (one row for help)", m.screen.Width(), m.screen.Height())
	}
}

func TestRenderScreenKeepsText(t *testing.T) {
	s := core.NewScreen(10, 2)
	s.DrawTextColored(0, 0, "abc", core.ColorRed)
	s.DrawText(0, 1, "xyz")

	out := RenderScreen(s)
	if !strings.Contains(out, "abc") || !strings.Contains(out, "xyz") {
		t.Errorf("rendered output lost text: %q", out)
	}
	if strings.Count(out, "\n") != 1 {
		t.Errorf("expected 2 lines, got %q", out)
	}
}

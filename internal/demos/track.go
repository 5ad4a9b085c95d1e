// Package demos implements the timestep demos: a body circling an 800-unit
// track under one stepping policy each.
package demos

import (
	"fmt"
	"sync"

	"github.com/vovakirdan/tui-timestep/internal/config"
	"github.com/vovakirdan/tui-timestep/internal/core"
	"github.com/vovakirdan/tui-timestep/internal/timestep"
)

// Body geometry in track units, scaled to the screen at render time.
const (
	BodyRadius = 100.0
	BodyChar   = '●'
	GhostChar  = '○'
	GroundChar = '─'
)

// Vertical placement as a fraction of the screen height.
const (
	mainRow  = 380.0 / 600.0
	upperRow = 150.0 / 600.0
)

var (
	settingsMu sync.RWMutex
	configPath string
	pacePreset config.PacePreset
)

// SetConfigPath sets a custom config file used by demos created afterwards.
func SetConfigPath(path string) {
	settingsMu.Lock()
	defer settingsMu.Unlock()
	configPath = path
}

// SetPace sets the pace preset applied to demos created afterwards.
func SetPace(preset config.PacePreset) {
	settingsMu.Lock()
	defer settingsMu.Unlock()
	pacePreset = preset
}

func currentSettings() (string, config.PacePreset) {
	settingsMu.RLock()
	defer settingsMu.RUnlock()
	return configPath, pacePreset
}

// Track holds what every demo shares: the simulated body, its stepping
// policy and frame bookkeeping. Demos embed it and add their own rendering.
type Track struct {
	id          string
	title       string
	description string

	cfg     config.DemoConfig
	runtime core.RuntimeConfig
	state   *timestep.State
	policy  timestep.Policy
	err     error

	frames uint64
	steps  int
	paused bool
	last   timestep.Report
}

func newTrack(id, title, description string) Track {
	return Track{id: id, title: title, description: description}
}

// ID returns the unique identifier for this demo.
func (t *Track) ID() string { return t.id }

// Title returns the display name for this demo.
func (t *Track) Title() string { return t.title }

// Description returns a one-line summary of the stepping strategy.
func (t *Track) Description() string { return t.description }

// Reset loads the demo configuration and puts the body back at the start.
// A configuration that cannot be loaded falls back to the built-in default
// and is reported by Err.
func (t *Track) Reset(cfg core.RuntimeConfig) {
	t.runtime = cfg
	t.frames = 0
	t.steps = 0
	t.paused = false
	t.last = timestep.Report{}
	t.err = nil

	path, pace := currentSettings()
	demoCfg, err := config.Load(t.id, path)
	if err != nil {
		t.err = err
		demoCfg = config.Default(t.id)
	}
	if err := config.ApplyPace(&demoCfg, pace); err != nil && t.err == nil {
		t.err = err
	}

	policy, err := demoCfg.NewPolicy()
	if err != nil {
		t.err = err
		demoCfg = config.Default(t.id)
		if policy, err = demoCfg.NewPolicy(); err != nil {
			panic(fmt.Sprintf("demos: default config of %q does not build: %v", t.id, err))
		}
	}

	t.cfg = demoCfg
	t.policy = policy
	t.state = timestep.NewState(demoCfg.Simulation.Velocity)
}

// Configure replaces the loaded configuration and resets the simulation.
func (t *Track) Configure(cfg config.DemoConfig) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	policy, err := cfg.NewPolicy()
	if err != nil {
		return err
	}
	t.cfg = cfg
	t.policy = policy
	t.state = timestep.NewState(cfg.Simulation.Velocity)
	t.frames = 0
	t.steps = 0
	t.last = timestep.Report{}
	return nil
}

// OnUpdate hands the frame delta to the stepping policy.
func (t *Track) OnUpdate(frame core.FrameContext) core.UpdateResult {
	t.frames++
	if t.paused {
		// No steps, but the blend point stays where it was drawn last.
		t.last = timestep.Report{Alpha: t.last.Alpha}
		return core.UpdateResult{Report: t.last}
	}

	t.last = t.policy.Advance(t.state, frame.Delta)
	t.steps += t.last.Steps

	return core.UpdateResult{
		Report:       t.last,
		PresentDelay: t.cfg.Presentation.PresentDelay,
	}
}

// HandleInput applies pause and restart actions.
func (t *Track) HandleInput(in core.InputFrame) {
	if in.Has(core.ActionRestart) {
		t.state.Reset()
		t.policy.Reset()
		t.steps = 0
		t.frames = 0
		t.last = timestep.Report{}
	}
	if in.Has(core.ActionPause) {
		t.paused = !t.paused
	}
}

// Stats returns progress since the last reset.
func (t *Track) Stats() core.DemoStats {
	return core.DemoStats{
		Frames:   t.frames,
		Steps:    t.steps,
		Position: t.state.Position,
		Paused:   t.paused,
	}
}

// Config returns the active demo configuration.
func (t *Track) Config() config.DemoConfig { return t.cfg }

// State returns the simulated body.
func (t *Track) State() *timestep.State { return t.state }

// Policy returns the active stepping policy.
func (t *Track) Policy() timestep.Policy { return t.policy }

// Err reports a configuration problem hit by the last Reset.
func (t *Track) Err() error { return t.err }

// drawHUD writes the frame statistics line in the top-left corner.
func (t *Track) drawHUD(dst *core.Screen, frame core.FrameContext) {
	dst.DrawTextColored(0, 0, fmt.Sprintf("FPS: %.1f, delta: %v", frame.FPS, frame.Delta), core.ColorCyan)
	dst.DrawTextColored(0, 1, t.title, core.ColorYellow)

	status := fmt.Sprintf("policy: %s  steps: %d  frames: %d", t.policy.Kind(), t.steps, t.frames)
	dst.DrawTextColored(0, 2, status, core.ColorGray)

	if t.paused {
		dst.DrawTextCentered(dst.Height()/2-1, "PAUSED")
	}
	if t.err != nil {
		dst.DrawTextColored(0, dst.Height()-1, "config: "+t.err.Error(), core.ColorRed)
	}
}

// drawRuler draws the track as a dotted line with a marker under position x.
func drawRuler(dst *core.Screen, x float64, marker rune) {
	y := dst.Height() - 2
	if y < 3 {
		return
	}
	for col := 0; col < dst.Width(); col++ {
		dst.SetColored(col, y, '·', core.ColorGray)
	}
	dst.SetColored(core.TrackToColumn(x, dst.Width()), y, marker, core.ColorGreen)
}

// drawBody draws a body centered at track coordinate x on the given row
// fraction, with a ground line beneath it.
func drawBody(dst *core.Screen, x, rowFrac float64, r rune, c core.Color) {
	w, h := dst.Width(), dst.Height()
	if w == 0 || h == 0 {
		return
	}

	rx := max(int(BodyRadius/timestep.TrackLength*float64(w)), 1)
	ry := core.Clamp(rx/2, 1, max(h/6, 1))
	cx := int(x / timestep.TrackLength * float64(w))
	cy := int(rowFrac * float64(h))

	dst.DrawDisc(cx, cy, rx, ry, r, c)
	dst.DrawHLine(0, cy+ry+1, w, GroundChar)
}

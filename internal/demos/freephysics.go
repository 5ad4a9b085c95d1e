package demos

import (
	"fmt"

	"github.com/vovakirdan/tui-timestep/internal/core"
	"github.com/vovakirdan/tui-timestep/internal/registry"
)

func init() {
	registry.Register("freephysics", func() registry.Demo { return NewFreePhysics() })
}

// FreePhysics runs a slow fixed update rate, simulates at most one update per
// frame and holds every frame on screen for a while, so it is easy to see
// updates being dropped when presentation falls behind.
type FreePhysics struct {
	Track
	dropped int
}

// NewFreePhysics creates the free-the-physics demo.
func NewFreePhysics() *FreePhysics {
	return &FreePhysics{Track: newTrack("freephysics", "Free The Physics",
		"5 Hz updates, one per frame at most, slowed presentation")}
}

// Reset also clears the dropped update counter.
func (d *FreePhysics) Reset(cfg core.RuntimeConfig) {
	d.Track.Reset(cfg)
	d.dropped = 0
}

// HandleInput also clears the dropped update counter on restart.
func (d *FreePhysics) HandleInput(in core.InputFrame) {
	d.Track.HandleInput(in)
	if in.Has(core.ActionRestart) {
		d.dropped = 0
	}
}

// OnUpdate counts updates drained without simulation.
func (d *FreePhysics) OnUpdate(frame core.FrameContext) core.UpdateResult {
	res := d.Track.OnUpdate(frame)
	d.dropped += res.Report.Drained
	return res
}

// OnRender draws the body and the number of dropped updates.
func (d *FreePhysics) OnRender(hint core.RenderHint, dst *core.Screen) {
	d.drawHUD(dst, hint.Frame)
	dst.DrawText(0, 3, fmt.Sprintf("dropped updates: %d  present delay: %v",
		d.dropped, d.cfg.Presentation.PresentDelay))
	drawBody(dst, d.state.Position, mainRow, BodyChar, core.ColorWhite)
	drawRuler(dst, d.state.Position, '^')
}

// Dropped returns how many due updates were skipped since the last reset.
func (d *FreePhysics) Dropped() int {
	return d.dropped
}

package demos

import (
	"fmt"

	"github.com/vovakirdan/tui-timestep/internal/core"
	"github.com/vovakirdan/tui-timestep/internal/registry"
)

func init() {
	registry.Register("fixed", func() registry.Demo { return NewFixed() })
}

// Fixed runs the simulation at a constant update rate decoupled from the
// frame rate. Frames may see zero, one or several updates.
type Fixed struct {
	Track
}

// NewFixed creates the fixed delta time demo.
func NewFixed() *Fixed {
	return &Fixed{Track: newTrack("fixed", "Fixed Delta Time",
		"constant-size updates at 24 Hz, independent of frame rate")}
}

// OnRender draws update ticks against frame ticks.
func (d *Fixed) OnRender(hint core.RenderHint, dst *core.Screen) {
	d.drawHUD(dst, hint.Frame)
	line := fmt.Sprintf("tick: %d  update_tick: %d  updates this frame: %d",
		hint.Frame.Ticks, d.steps, d.last.Steps)
	dst.DrawText(0, 3, line)
	drawBody(dst, d.state.Position, mainRow, BodyChar, core.ColorWhite)
	drawRuler(dst, d.state.Position, '^')
}

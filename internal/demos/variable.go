package demos

import (
	"github.com/vovakirdan/tui-timestep/internal/core"
	"github.com/vovakirdan/tui-timestep/internal/registry"
)

func init() {
	registry.Register("variable", func() registry.Demo { return NewVariable() })
}

// Variable steps once per frame with whatever time the frame took.
// Motion speed is correct on average but the result depends on frame timing.
type Variable struct {
	Track
}

// NewVariable creates the variable delta time demo.
func NewVariable() *Variable {
	return &Variable{Track: newTrack("variable", "Variable Delta Time",
		"one step per frame using the raw frame delta")}
}

// OnRender draws the HUD and the body at its simulated position.
func (d *Variable) OnRender(hint core.RenderHint, dst *core.Screen) {
	d.drawHUD(dst, hint.Frame)
	drawBody(dst, d.state.Position, mainRow, BodyChar, core.ColorWhite)
	drawRuler(dst, d.state.Position, '^')
}

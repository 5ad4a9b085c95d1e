package demos

import (
	"fmt"

	"github.com/vovakirdan/tui-timestep/internal/core"
	"github.com/vovakirdan/tui-timestep/internal/registry"
)

func init() {
	registry.Register("finaltouch", func() registry.Demo { return NewFinalTouch() })
}

// FinalTouch runs a fast fixed update rate and renders a position
// interpolated between the last two updates. The raw simulated body is drawn
// above the interpolated one for comparison.
type FinalTouch struct {
	Track
}

// NewFinalTouch creates the interpolation demo.
func NewFinalTouch() *FinalTouch {
	return &FinalTouch{Track: newTrack("finaltouch", "The Final Touch",
		"100 Hz fixed updates with interpolated rendering")}
}

// Blended returns the render position for an interpolation alpha.
// The simulated state is not changed.
func (d *FinalTouch) Blended(alpha float64) float64 {
	return d.state.Interpolate(core.Clamp(alpha, 0, 1))
}

// OnRender draws the raw body on the upper row and the blended one below.
func (d *FinalTouch) OnRender(hint core.RenderHint, dst *core.Screen) {
	d.drawHUD(dst, hint.Frame)
	blended := d.Blended(hint.Alpha)
	dst.DrawText(0, 3, fmt.Sprintf("simulated: %.2f  rendered: %.2f  alpha: %.2f",
		d.state.Position, blended, hint.Alpha))

	drawBody(dst, d.state.Position, upperRow, GhostChar, core.ColorGray)
	drawBody(dst, blended, mainRow, BodyChar, core.ColorWhite)
	drawRuler(dst, blended, '^')
}

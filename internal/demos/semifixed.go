package demos

import (
	"fmt"

	"github.com/vovakirdan/tui-timestep/internal/core"
	"github.com/vovakirdan/tui-timestep/internal/registry"
)

func init() {
	registry.Register("semifixed", func() registry.Demo { return NewSemiFixed() })
}

// SemiFixed consumes each frame in steps no larger than a cap, so long
// frames are split while short frames take a single smaller step.
type SemiFixed struct {
	Track
}

// NewSemiFixed creates the semi-fixed timestep demo.
func NewSemiFixed() *SemiFixed {
	return &SemiFixed{Track: newTrack("semifixed", "Semi-Fixed Timestep",
		"frame time consumed in steps of at most 1/60 s")}
}

// OnRender draws the body and how the last frame was split.
func (d *SemiFixed) OnRender(hint core.RenderHint, dst *core.Screen) {
	d.drawHUD(dst, hint.Frame)
	dst.DrawText(0, 3, fmt.Sprintf("sub-steps last frame: %d", d.last.Steps))
	drawBody(dst, d.state.Position, mainRow, BodyChar, core.ColorWhite)
	drawRuler(dst, d.state.Position, '^')
}

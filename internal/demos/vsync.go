package demos

import (
	"fmt"

	"github.com/vovakirdan/tui-timestep/internal/core"
	"github.com/vovakirdan/tui-timestep/internal/registry"
)

func init() {
	registry.Register("vsync", func() registry.Demo { return NewVSync() })
}

// VSync never steps on its own; it only shows how the host paces frames.
type VSync struct {
	Track
}

// NewVSync creates the vsync-locked demo.
func NewVSync() *VSync {
	return &VSync{Track: newTrack("vsync", "VSync",
		"no stepping, one frame is one implicit tick")}
}

// OnRender draws the frame counters only.
func (d *VSync) OnRender(hint core.RenderHint, dst *core.Screen) {
	d.drawHUD(dst, hint.Frame)
	f := hint.Frame
	dst.DrawTextCentered(dst.Height()/2,
		fmt.Sprintf("ticks: %d  fps: %.1f  delta: %v", f.Ticks, f.FPS, f.Delta))
}

package core

import (
	"cmp"

	"github.com/vovakirdan/tui-timestep/internal/timestep"
)

// TrackToColumn maps a track coordinate onto one of width columns.
func TrackToColumn(x float64, width int) int {
	if width <= 0 {
		return 0
	}
	return Clamp(int(x/timestep.TrackLength*float64(width)), 0, width-1)
}

// Clamp bounds v to [lo, hi].
func Clamp[T cmp.Ordered](v, lo, hi T) T {
	return min(max(v, lo), hi)
}

// Package tui provides the Bubble Tea host loop for the timestep demos.
// It owns the frame clock, input mapping, pacing and run recording.
package tui

import (
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-timestep/internal/timestep"
)

// TickMsg is sent when the next frame is due. Seq identifies the model whose
// frame loop scheduled it, so a stale tick from a closed demo is ignored.
type TickMsg struct {
	At  time.Time
	Seq uint64
}

var loopSeq atomic.Uint64

// nextLoop returns a fresh frame loop identifier.
func nextLoop() uint64 {
	return loopSeq.Add(1)
}

// slowFactor divides the frame rate while slow motion is on.
const slowFactor = 4

// tickCmd returns a Bubble Tea command that sends one tick after interval.
func tickCmd(seq uint64, interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg{At: t, Seq: seq}
	})
}

// frameInterval returns how long to wait before presenting the next frame.
// A present delay longer than the frame interval holds the frame back.
func frameInterval(frameRate int, slow bool, delay time.Duration) time.Duration {
	if frameRate <= 0 {
		frameRate = 60
	}
	if slow {
		frameRate = max(frameRate/slowFactor, 1)
	}
	return max(timestep.Interval(frameRate), delay)
}

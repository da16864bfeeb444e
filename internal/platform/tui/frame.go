// Package tui hosts games in the terminal with Bubble Tea. It runs the
// frame loop, maps keys to actions, and draws the game screen.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg starts a host frame. It carries the wall-clock time the frame
// fired so the model can measure the real delta between frames.
type TickMsg time.Time

// tickCmd schedules the next frame at the given rate.
func tickCmd(tickRate int) tea.Cmd {
	return tea.Tick(time.Second/time.Duration(tickRate), func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// fpsMeter counts host frames over one-second windows.
type fpsMeter struct {
	frames int
	start  time.Time
	fps    float64
}

// tick records a frame at now.
func (f *fpsMeter) tick(now time.Time) {
	if f.start.IsZero() {
		f.start = now
		return
	}
	f.frames++
	if d := now.Sub(f.start); d >= time.Second {
		f.fps = float64(f.frames) / d.Seconds()
		f.frames = 0
		f.start = now
	}
}

// FPS returns the rate measured over the last complete window.
func (f *fpsMeter) FPS() float64 {
	return f.fps
}

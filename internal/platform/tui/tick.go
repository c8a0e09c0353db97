// Package tui provides the Bubble Tea integration for the submarine runner.
// It handles the terminal UI loop, input mapping, asset preloading and
// the score screens.
package tui

import (
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// loopIDs hands out a unique ID to each game loop so that ticks scheduled by
// a loop that has since been left are ignored by its successor.
var loopIDs atomic.Int64

func nextLoopID() int64 {
	return loopIDs.Add(1)
}

// TickMsg is sent to trigger a game simulation tick.
type TickMsg struct {
	Loop int64
	At   time.Time
}

// tickCmd returns a Bubble Tea command that sends tick messages at the specified rate.
func tickCmd(loop int64, tickRate int) tea.Cmd {
	if tickRate <= 0 {
		tickRate = 60
	}
	interval := time.Second / time.Duration(tickRate)
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg{Loop: loop, At: t}
	})
}

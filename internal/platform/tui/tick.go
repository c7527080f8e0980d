// Package tui provides the Bubble Tea integration for dotpop.
// It handles the terminal UI loop, input mapping, and session bookkeeping.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/dotpop/internal/core"
)

// TickMsg advances the game by one step.
type TickMsg time.Time

// tickCmd schedules the next TickMsg tickRate times per second.
func tickCmd(tickRate int) tea.Cmd {
	if tickRate <= 0 {
		tickRate = core.DefaultTickRate
	}
	interval := time.Second / time.Duration(tickRate)
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

package oracle

import (
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/aura/internal/reading"
	"github.com/abhisek/aura/internal/store"
)

// ticketMsg delivers an orchestrator ticket once its delay has elapsed.
type ticketMsg struct {
	Ticket reading.Ticket
}

// pulseMsg advances the aura core animation. Messages from a chain that has
// since been stopped carry an old gen and are dropped.
type pulseMsg struct {
	gen int
}

// journaledMsg reports the outcome of a journal write.
type journaledMsg struct {
	Reading store.Reading
	Err     error
}

func ticketCmd(t reading.Ticket) tea.Cmd {
	return tea.Tick(t.Delay, func(time.Time) tea.Msg {
		return ticketMsg{Ticket: t}
	})
}

func pulseCmd(d time.Duration, gen int) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return pulseMsg{gen: gen}
	})
}

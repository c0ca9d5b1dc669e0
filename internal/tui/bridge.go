package tui

import (
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/agbru/limbkern/internal/calibration"
	"github.com/agbru/limbkern/internal/sysmon"
)

// programRef is a shared reference to the tea.Program.
// Because bubbletea copies the model on every Update, we need a pointer
// that survives copies so the probe goroutines can send messages.
type programRef struct {
	mu      sync.RWMutex
	program *tea.Program
}

// SetProgram sets the tea.Program reference (thread-safe).
func (r *programRef) SetProgram(p *tea.Program) {
	r.mu.Lock()
	r.program = p
	r.mu.Unlock()
}

// Send sends a message to the bubbletea program (thread-safe).
func (r *programRef) Send(msg tea.Msg) {
	r.mu.RLock()
	p := r.program
	r.mu.RUnlock()
	if p != nil {
		p.Send(msg)
	}
}

// TickMsg drives periodic load sampling.
type TickMsg time.Time

// SysStatsMsg carries a system load sample.
type SysStatsMsg sysmon.Stats

// ProbeMsg carries one finished probe.
type ProbeMsg struct {
	Probe calibration.ProbeResult
}

// DoneMsg carries the outcome of the whole calibration run.
type DoneMsg struct {
	Result calibration.Result
	Err    error
}

// onProbe returns a calibration.Options.OnProbe hook that forwards probes
// to the program and then calls next, if set.
func (r *programRef) onProbe(next func(calibration.ProbeResult)) func(calibration.ProbeResult) {
	return func(p calibration.ProbeResult) {
		r.Send(ProbeMsg{Probe: p})
		if next != nil {
			next(p)
		}
	}
}

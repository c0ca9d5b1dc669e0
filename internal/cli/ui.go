// Package cli renders calibration progress and kernel reports on the terminal.
package cli

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/agbru/limbkern/internal/calibration"
	"github.com/briandowns/spinner"
)

const (
	// ProgressRefreshRate defines the refresh frequency of the spinner.
	ProgressRefreshRate = 200 * time.Millisecond
	// ProgressBarWidth defines the width in characters of the progress bar.
	ProgressBarWidth = 30
)

// Spinner is an interface that abstracts the behavior of a terminal spinner,
// so DisplayProgress can be tested without a terminal.
type Spinner interface {
	// Start begins the spinner animation.
	Start()
	// Stop halts the spinner animation.
	Stop()
	// UpdateSuffix sets the text that is displayed after the spinner.
	UpdateSuffix(suffix string)
}

// realSpinner adapts spinner.Spinner to the Spinner interface.
type realSpinner struct {
	s *spinner.Spinner
}

func (rs *realSpinner) Start() { rs.s.Start() }

func (rs *realSpinner) Stop() { rs.s.Stop() }

func (rs *realSpinner) UpdateSuffix(suffix string) {
	rs.s.Lock()
	rs.s.Suffix = suffix
	rs.s.Unlock()
}

var newSpinner = func(options ...spinner.Option) Spinner {
	s := spinner.New(spinner.CharSets[11], ProgressRefreshRate, options...)
	return &realSpinner{s}
}

// ProgressState counts finished calibration probes.
type ProgressState struct {
	mu    sync.Mutex
	done  int
	total int
	last  calibration.ProbeResult
}

// NewProgressState creates a ProgressState expecting total probes.
func NewProgressState(total int) *ProgressState {
	return &ProgressState{total: total}
}

// Update records a finished probe.
func (ps *ProgressState) Update(p calibration.ProbeResult) {
	ps.mu.Lock()
	defer ps.mu.Unlock()
	ps.done++
	ps.last = p
}

// Fraction returns the finished share of probes, from 0 to 1.
func (ps *ProgressState) Fraction() float64 {
	ps.mu.Lock()
	defer ps.mu.Unlock()
	if ps.total == 0 {
		return 0
	}
	return float64(ps.done) / float64(ps.total)
}

// Suffix renders the spinner text for the current state.
func (ps *ProgressState) Suffix() string {
	frac := ps.Fraction()
	ps.mu.Lock()
	defer ps.mu.Unlock()
	s := fmt.Sprintf(" Calibrating %s %d/%d probes", progressBar(frac, ProgressBarWidth), ps.done, ps.total)
	if ps.done > 0 && ps.last.Err == nil {
		s += fmt.Sprintf(" (last: %d limbs, %.2fx)", ps.last.Size, ps.last.Speedup())
	}
	return s
}

// DisplayProgress shows a spinner with a progress bar until probes is
// closed. It calls wg.Done on return.
func DisplayProgress(wg *sync.WaitGroup, probes <-chan calibration.ProbeResult, total int, out io.Writer) {
	defer wg.Done()
	if total == 0 {
		for range probes {
		}
		return
	}
	state := NewProgressState(total)
	s := newSpinner(spinner.WithWriter(out))
	s.UpdateSuffix(state.Suffix())
	s.Start()
	defer s.Stop()
	for p := range probes {
		state.Update(p)
		s.UpdateSuffix(state.Suffix())
	}
}

// progressBar generates a textual progress bar of the given width.
func progressBar(progress float64, length int) string {
	progress = min(max(progress, 0), 1)
	count := int(progress * float64(length))
	return strings.Repeat("█", count) + strings.Repeat("░", length-count)
}

// Package tui renders a live calibration dashboard with bubbletea.
package tui

import (
	"context"
	"fmt"
	"io"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/agbru/limbkern/internal/calibration"
	"github.com/agbru/limbkern/internal/format"
	"github.com/agbru/limbkern/internal/sysmon"
)

const (
	// tickInterval is the system load sampling period.
	tickInterval = 500 * time.Millisecond
	// cpuHistoryLen is the number of load samples kept for the sparkline.
	cpuHistoryLen = 40
)

type runFunc func(context.Context, calibration.Options) (calibration.Result, error)

// Model is the bubbletea model of the calibration dashboard.
type Model struct {
	ctx    context.Context
	cancel context.CancelFunc
	ref    *programRef
	opts   calibration.Options
	run    runFunc
	sample func() sysmon.Stats
	keymap KeyMap

	total   int
	probes  []calibration.ProbeResult
	result  calibration.Result
	err     error
	done    bool
	aborted bool
	width   int
	start   time.Time

	sys        sysmon.Stats
	cpuHistory []float64
}

// NewModel creates a dashboard that will calibrate with opts.
func NewModel(ctx context.Context, opts calibration.Options) Model {
	ctx, cancel := context.WithCancel(ctx)
	sizes := slices.Clone(opts.Sizes)
	slices.Sort(sizes)
	sizes = slices.Compact(sizes)
	return Model{
		ctx:    ctx,
		cancel: cancel,
		ref:    &programRef{},
		opts:   opts,
		run:    calibration.Run,
		sample: sysmon.Sample,
		keymap: DefaultKeyMap(),
		total:  len(sizes),
		start:  time.Now(),
	}
}

// Init starts the calibration and the load sampler.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.startCmd(), tickCmd())
}

// tickCmd returns a command that sends a TickMsg after tickInterval.
func tickCmd() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// sampleSysStatsCmd reads system-wide CPU and memory stats and returns a SysStatsMsg.
func (m Model) sampleSysStatsCmd() tea.Cmd {
	sample := m.sample
	return func() tea.Msg {
		return SysStatsMsg(sample())
	}
}

// startCmd runs the calibration off the UI goroutine. Probes stream in as
// ProbeMsg through the program reference; the command itself yields DoneMsg.
func (m Model) startCmd() tea.Cmd {
	ctx, ref, opts, run := m.ctx, m.ref, m.opts, m.run
	return func() tea.Msg {
		opts.OnProbe = ref.onProbe(opts.OnProbe)
		res, err := run(ctx, opts)
		return DoneMsg{Result: res, Err: err}
	}
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
	case tea.KeyMsg:
		if key.Matches(msg, m.keymap.Quit) && !m.done {
			// The run observes the cancellation and reports back with DoneMsg.
			m.aborted = true
			m.cancel()
		}
	case TickMsg:
		if m.done {
			return m, nil
		}
		return m, tea.Batch(m.sampleSysStatsCmd(), tickCmd())
	case SysStatsMsg:
		m.sys = sysmon.Stats(msg)
		m.cpuHistory = append(m.cpuHistory, msg.CPUPercent)
		if len(m.cpuHistory) > cpuHistoryLen {
			m.cpuHistory = m.cpuHistory[len(m.cpuHistory)-cpuHistoryLen:]
		}
	case ProbeMsg:
		i, _ := slices.BinarySearchFunc(m.probes, msg.Probe.Size, func(p calibration.ProbeResult, size int) int {
			return p.Size - size
		})
		m.probes = slices.Insert(m.probes, i, msg.Probe)
	case DoneMsg:
		m.done = true
		m.result, m.err = msg.Result, msg.Err
		m.cancel()
		return m, tea.Quit
	}
	return m, nil
}

// Result returns the calibration outcome once DoneMsg has arrived.
func (m Model) Result() (calibration.Result, error) {
	return m.result, m.err
}

// View renders the dashboard.
func (m Model) View() string {
	var b strings.Builder
	b.WriteString(m.headerView())
	b.WriteString("\n\n")
	b.WriteString(m.tableView())
	if spark := m.sparklineView(); spark != "" {
		b.WriteString("\n")
		b.WriteString(spark)
	}
	if load := m.loadView(); load != "" {
		b.WriteString("\n")
		b.WriteString(load)
	}
	if m.done {
		b.WriteString("\n")
		b.WriteString(m.summaryView())
	}

	panel := panelStyle
	if m.width > 4 {
		panel = panel.Width(m.width - 2)
	}
	body := panel.Render(b.String())
	if m.done {
		return body + "\n"
	}
	return lipgloss.JoinVertical(lipgloss.Left, body, m.footerView())
}

func (m Model) headerView() string {
	var status string
	switch {
	case m.done && m.err != nil && m.aborted:
		status = errorStyle.Render("aborted")
	case m.done && m.err != nil:
		status = errorStyle.Render("failed")
	case m.done:
		status = statusDoneStyle.Render("done")
	default:
		status = statusRunStyle.Render(fmt.Sprintf("probing %d/%d", len(m.probes), m.total))
	}
	elapsed := time.Since(m.start)
	if m.done && m.result.Elapsed > 0 {
		elapsed = m.result.Elapsed
	}
	return fmt.Sprintf("%s  %s  %s", titleStyle.Render("limbkern calibration"), status,
		labelStyle.Render(format.FormatExecutionDuration(elapsed)))
}

func (m Model) tableView() string {
	var b strings.Builder
	b.WriteString(labelStyle.Render(fmt.Sprintf("%8s  %12s  %12s  %8s", "limbs", "schoolbook", "strassen", "speedup")))
	for _, p := range m.probes {
		b.WriteString("\n")
		if p.Err != nil {
			fmt.Fprintf(&b, "%8d  %s", p.Size, errorStyle.Render(p.Err.Error()))
			continue
		}
		row := fmt.Sprintf("%8d  %12s  %12s  %7.2fx", p.Size,
			format.FormatExecutionDuration(p.Schoolbook),
			format.FormatExecutionDuration(p.Strassen),
			p.Speedup())
		if p.StrassenWins() {
			b.WriteString(winStyle.Render(row))
		} else {
			b.WriteString(loseStyle.Render(row))
		}
	}
	return b.String()
}

func (m Model) sparklineView() string {
	if len(m.probes) < 2 {
		return ""
	}
	speedups := make([]float64, 0, len(m.probes))
	for _, p := range m.probes {
		if p.Err == nil {
			speedups = append(speedups, p.Speedup())
		}
	}
	if len(speedups) < 2 {
		return ""
	}
	return labelStyle.Render("speedup  ") + sparkStyle.Render(RenderSparkline(speedupPercents(speedups)))
}

func (m Model) loadView() string {
	if len(m.cpuHistory) == 0 {
		return ""
	}
	line := labelStyle.Render("load     ") + sparkStyle.Render(RenderSparkline(m.cpuHistory)) + " " + m.sys.String()
	if m.sys.Busy() {
		line += " " + errorStyle.Render("busy, timings may be noisy")
	}
	return line
}

func (m Model) summaryView() string {
	if m.err != nil {
		return errorStyle.Render("error: " + m.err.Error())
	}
	line := labelStyle.Render("strassen threshold: ") + valueStyle.Render(fmt.Sprintf("%d limbs", m.result.Threshold))
	if !m.result.Crossover {
		line += labelStyle.Render(" (no crossover, lower bound)")
	}
	return line
}

func (m Model) footerView() string {
	h := m.keymap.Quit.Help()
	return footerKeyStyle.Render(h.Key) + " " + footerDescStyle.Render(h.Desc)
}

// Run shows the dashboard on out while calibrating with opts, and returns
// the calibration outcome. Pressing the quit key cancels the run.
func Run(ctx context.Context, opts calibration.Options, out io.Writer) (calibration.Result, error) {
	// Rebuild styles from the current ui theme (set by the app via InitTheme).
	initTUIStyles()

	model := NewModel(ctx, opts)
	defer model.cancel()

	p := tea.NewProgram(model, tea.WithOutput(out))
	// Inject the program reference before running so probes can Send.
	model.ref.SetProgram(p)

	finalModel, err := p.Run()
	if err != nil {
		return calibration.Result{}, fmt.Errorf("calibration dashboard: %w", err)
	}
	m, ok := finalModel.(Model)
	if !ok {
		return calibration.Result{}, fmt.Errorf("calibration dashboard: unexpected model %T", finalModel)
	}
	return m.Result()
}

// Package sysmon samples system-wide CPU and memory usage, so calibration
// can flag timings taken on a loaded machine.
package sysmon

import (
	"fmt"

	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/mem"
)

// BusyCPUPercent is the system CPU load above which probe timings are
// considered unreliable.
const BusyCPUPercent = 50.0

// Stats holds a single snapshot of system-wide resource usage.
type Stats struct {
	CPUPercent float64 // 0.0 .. 100.0
	MemPercent float64 // 0.0 .. 100.0
}

// Sample collects a single system-wide CPU and memory snapshot.
// CPU uses interval=0 (delta since last call). Returns zero values on error.
func Sample() Stats {
	var s Stats
	cpuPcts, err := cpu.Percent(0, false)
	if err == nil && len(cpuPcts) > 0 {
		s.CPUPercent = cpuPcts[0]
	}
	vmem, err := mem.VirtualMemory()
	if err == nil && vmem != nil {
		s.MemPercent = vmem.UsedPercent
	}
	return s
}

// Busy reports whether other work is likely to skew kernel timings.
func (s Stats) Busy() bool { return s.CPUPercent > BusyCPUPercent }

func (s Stats) String() string {
	return fmt.Sprintf("cpu %.0f%% mem %.0f%%", s.CPUPercent, s.MemPercent)
}

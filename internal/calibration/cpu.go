package calibration

import "golang.org/x/sys/cpu"

// CPUFeatures lists the instruction set extensions relevant to limb
// arithmetic that the current CPU reports, in a fixed order.
func CPUFeatures() []string {
	features := []struct {
		name string
		has  bool
	}{
		{"bmi2", cpu.X86.HasBMI2},
		{"adx", cpu.X86.HasADX},
		{"avx2", cpu.X86.HasAVX2},
		{"avx512f", cpu.X86.HasAVX512F},
		{"asimd", cpu.ARM64.HasASIMD},
		{"pmull", cpu.ARM64.HasPMULL},
		{"sve", cpu.ARM64.HasSVE},
	}
	var out []string
	for _, f := range features {
		if f.has {
			out = append(out, f.name)
		}
	}
	return out
}

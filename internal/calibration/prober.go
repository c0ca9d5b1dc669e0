//go:generate mockgen -source=prober.go -destination=mocks/mock_prober.go -package=mocks

package calibration

import (
	"context"
	"fmt"
	"time"

	"github.com/agbru/limbkern/internal/arith"
	apperrors "github.com/agbru/limbkern/internal/errors"
	"github.com/agbru/limbkern/internal/matrix22"
	"github.com/agbru/limbkern/internal/metrics"
)

// Measurement is the outcome of timing one multiplication path.
type Measurement struct {
	// Elapsed is the time spent inside the kernel over all calls.
	Elapsed time.Duration
	// Calls is the number of kernel calls timed.
	Calls int
	// Digest is the xxhash of the last result (see Digest).
	Digest uint64
	// Allocated is the number of heap bytes allocated while timing.
	Allocated uint64
}

// PerCall returns the mean duration of one kernel call.
func (m Measurement) PerCall() time.Duration {
	if m.Calls == 0 {
		return 0
	}
	return m.Elapsed / time.Duration(m.Calls)
}

// Prober times the matrix product of size×size-limb operands on the path mp
// selects.
type Prober interface {
	Measure(ctx context.Context, size int, mp matrix22.Multiplier) (Measurement, error)
}

// KernelProber is the Prober that runs the real kernel on operands derived
// from Seed.
type KernelProber struct {
	Iterations int
	Seed       uint64
	Memory     *metrics.MemoryCollector
}

// NewKernelProber returns a KernelProber timing iterations calls per path.
func NewKernelProber(iterations int, seed uint64) *KernelProber {
	return &KernelProber{Iterations: iterations, Seed: seed, Memory: metrics.NewMemoryCollector()}
}

// Measure implements Prober. A kernel precondition violation is returned as
// a CalculationError instead of crashing the run.
func (p *KernelProber) Measure(ctx context.Context, size int, mp matrix22.Multiplier) (m Measurement, err error) {
	defer func() {
		if r := recover(); r != nil {
			pe, ok := apperrors.AsPrecondition(r)
			if !ok {
				panic(r)
			}
			m, err = Measurement{}, apperrors.CalculationError{Cause: pe}
		}
	}()

	iterations := max(p.Iterations, 1)
	ops := NewOperands(p.Seed, size, size)
	out := ops.NewOutput()
	scratch := arith.AcquireScratch(mp.ScratchLen(size, size))
	defer arith.ReleaseWords(scratch)

	memory := p.Memory
	if memory == nil {
		memory = metrics.NewMemoryCollector()
	}
	before := memory.Snapshot()
	for i := 0; i < iterations; i++ {
		if err := ctx.Err(); err != nil {
			return Measurement{}, fmt.Errorf("probe of %d limbs interrupted: %w", size, err)
		}
		start := time.Now()
		ops.Mul(mp, out, scratch)
		m.Elapsed += time.Since(start)
		m.Calls++
	}
	m.Allocated = memory.Snapshot().Since(before).Bytes
	m.Digest = Digest(out)
	return m, nil
}

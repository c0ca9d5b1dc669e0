package calibration

import (
	"bytes"
	"context"
	"errors"
	"math/big"
	"strings"
	"testing"
	"time"

	"github.com/agbru/limbkern/internal/arith"
	apperrors "github.com/agbru/limbkern/internal/errors"
	"github.com/agbru/limbkern/internal/matrix22"
	"github.com/agbru/limbkern/internal/ui"
)

func toBig(v []arith.Word) *big.Int {
	return new(big.Int).SetBits(append([]big.Word(nil), v...))
}

func TestOperands_Deterministic(t *testing.T) {
	t.Parallel()
	a, b := NewOperands(7, 5, 3), NewOperands(7, 5, 3)
	c := NewOperands(8, 5, 3)
	for i := 0; i < 4; i++ {
		if toBig(a.X(i)).Cmp(toBig(b.X(i))) != 0 || toBig(a.Y(i)).Cmp(toBig(b.Y(i))) != 0 {
			t.Fatalf("entry %d differs between identical seeds", i)
		}
	}
	if toBig(a.X(0)).Cmp(toBig(c.X(0))) == 0 {
		t.Error("Expected different seeds to give different operands")
	}
	if len(a.X(0)) != 5 || len(a.Y(0)) != 3 || a.OutLen() != 9 {
		t.Errorf("unexpected lengths: x=%d y=%d out=%d", len(a.X(0)), len(a.Y(0)), a.OutLen())
	}
}

func TestOperands_MulMatchesBigInt(t *testing.T) {
	t.Parallel()
	for _, size := range []int{1, 4, 31, 40} {
		ops := NewOperands(3, size, size)
		out := ops.NewOutput()
		mp := matrix22.Multiplier{Threshold: matrix22.StrassenThreshold}
		ops.Mul(mp, out, make([]arith.Word, mp.ScratchLen(size, size)))

		dot := func(a, b, c, d []arith.Word) *big.Int {
			s := new(big.Int).Mul(toBig(a), toBig(b))
			return s.Add(s, new(big.Int).Mul(toBig(c), toBig(d)))
		}
		want := [4]*big.Int{
			dot(ops.X(0), ops.Y(0), ops.X(1), ops.Y(2)),
			dot(ops.X(0), ops.Y(1), ops.X(1), ops.Y(3)),
			dot(ops.X(2), ops.Y(0), ops.X(3), ops.Y(2)),
			dot(ops.X(2), ops.Y(1), ops.X(3), ops.Y(3)),
		}
		for i := range out {
			if toBig(out[i]).Cmp(want[i]) != 0 {
				t.Errorf("size %d entry %d: wrong product", size, i)
			}
		}
	}
}

func TestDigest(t *testing.T) {
	t.Parallel()
	ops := NewOperands(1, 2, 2)
	out := ops.NewOutput()
	d0 := Digest(out)
	out[3][len(out[3])-1] = 1
	if Digest(out) == d0 {
		t.Error("Expected digest to change with a single limb")
	}
	out[3][len(out[3])-1] = 0
	if Digest(out) != d0 {
		t.Error("Expected digest to be a pure function of the limbs")
	}
}

func TestKernelProber_PathsAgree(t *testing.T) {
	t.Parallel()
	p := NewKernelProber(2, 11)
	for _, size := range []int{1, 8, 33} {
		small, err := p.Measure(context.Background(), size, schoolbookPath)
		if err != nil {
			t.Fatalf("schoolbook at %d: %v", size, err)
		}
		fast, err := p.Measure(context.Background(), size, strassenPath)
		if err != nil {
			t.Fatalf("strassen at %d: %v", size, err)
		}
		if small.Digest != fast.Digest {
			t.Errorf("size %d: digests differ (%x vs %x)", size, small.Digest, fast.Digest)
		}
		if small.Calls != 2 || fast.Calls != 2 {
			t.Errorf("size %d: calls = %d/%d, want 2", size, small.Calls, fast.Calls)
		}
	}
}

func TestKernelProber_Canceled(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewKernelProber(1, 1).Measure(ctx, 8, strassenPath)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled, got %v", err)
	}
}

func TestKernelProber_PreconditionBecomesError(t *testing.T) {
	t.Parallel()
	_, err := NewKernelProber(1, 1).Measure(context.Background(), 0, schoolbookPath)
	var calcErr apperrors.CalculationError
	if !errors.As(err, &calcErr) {
		t.Fatalf("Expected CalculationError, got %v", err)
	}
	if !strings.Contains(err.Error(), "matrix22.Mul") {
		t.Errorf("Expected the kernel name in %q", err.Error())
	}
}

func TestMeasurement_PerCall(t *testing.T) {
	t.Parallel()
	if got := (Measurement{Elapsed: time.Second, Calls: 4}).PerCall(); got != 250*time.Millisecond {
		t.Errorf("PerCall = %v, want 250ms", got)
	}
	if got := (Measurement{}).PerCall(); got != 0 {
		t.Errorf("PerCall of empty measurement = %v, want 0", got)
	}
}

func TestChooseThreshold(t *testing.T) {
	t.Parallel()
	win := func(size int) ProbeResult { return ProbeResult{Size: size, Schoolbook: 2, Strassen: 1} }
	lose := func(size int) ProbeResult { return ProbeResult{Size: size, Schoolbook: 1, Strassen: 2} }

	tests := []struct {
		name      string
		probes    []ProbeResult
		want      int
		crossover bool
	}{
		{"CleanCrossover", []ProbeResult{lose(8), lose(16), win(32), win(64)}, 32, true},
		{"NoisyWinIgnored", []ProbeResult{lose(8), win(16), lose(24), win(32), win(64)}, 32, true},
		{"AlwaysWins", []ProbeResult{win(8), win(16)}, 8, true},
		{"NeverWinsSmall", []ProbeResult{lose(8), lose(16)}, matrix22.StrassenThreshold, false},
		{"NeverWinsLarge", []ProbeResult{lose(64), lose(128)}, 129, false},
		{"LastLoses", []ProbeResult{win(64), lose(128)}, 129, false},
		{"Empty", nil, matrix22.StrassenThreshold, false},
	}
	for _, tt := range tests {
		got, crossover := chooseThreshold(tt.probes)
		if got != tt.want || crossover != tt.crossover {
			t.Errorf("%s: chooseThreshold = (%d, %v), want (%d, %v)", tt.name, got, crossover, tt.want, tt.crossover)
		}
	}
}

func TestPrintResults(t *testing.T) {
	orig := ui.GetCurrentTheme()
	ui.SetCurrentTheme(ui.NoColorTheme)
	t.Cleanup(func() { ui.SetCurrentTheme(orig) })

	var buf bytes.Buffer
	PrintResults(&buf, Result{
		Probes: []ProbeResult{
			{Size: 16, Schoolbook: 4 * time.Microsecond, Strassen: 5 * time.Microsecond},
			{Size: 32, Schoolbook: 20 * time.Microsecond, Strassen: 10 * time.Microsecond},
		},
		Threshold: 32,
		Crossover: true,
	})
	out := buf.String()
	for _, want := range []string{"Calibration Summary", "(threshold)", "2.00x", "Strassen threshold: 32 limbs"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}

	buf.Reset()
	PrintResults(&buf, Result{Probes: []ProbeResult{{Size: 8, Err: ErrPathMismatch}}, Threshold: 30})
	if !strings.Contains(buf.String(), "N/A") || !strings.Contains(buf.String(), "at least 30 limbs") {
		t.Errorf("unexpected failure output:\n%s", buf.String())
	}
}

func TestWarmScratch(t *testing.T) {
	t.Parallel()
	limbs, count := warmScratch([]int{8, 40, 16}, 8)
	if want := matrix22.ScratchLen(40, 40); limbs != want {
		t.Errorf("limbs = %d, want %d", limbs, want)
	}
	if count != 3 {
		t.Errorf("count = %d, want one per probe size (3)", count)
	}
	if _, count := warmScratch([]int{8, 16, 24, 32}, 2); count != 2 {
		t.Errorf("count = %d, want the worker limit (2)", count)
	}
}

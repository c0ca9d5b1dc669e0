// Package calibration measures where the seven-multiplication matrix22 path
// overtakes the schoolbook path on the current machine, and persists the
// result as a profile.
package calibration

import (
	"context"
	"errors"
	"fmt"
	"math"
	"runtime"
	"slices"
	"time"

	"github.com/agbru/limbkern/internal/arith"
	apperrors "github.com/agbru/limbkern/internal/errors"
	"github.com/agbru/limbkern/internal/logging"
	"github.com/agbru/limbkern/internal/matrix22"
	"github.com/agbru/limbkern/internal/metrics"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"
)

// ErrPathMismatch reports that the two multiplication paths disagreed on
// the same operands.
var ErrPathMismatch = errors.New("schoolbook and strassen results differ")

var (
	schoolbookPath = matrix22.Multiplier{Threshold: math.MaxInt}
	strassenPath   = matrix22.Multiplier{Threshold: 0}
)

// ProbeResult holds the timings of both paths at one operand size.
type ProbeResult struct {
	Size       int
	Schoolbook time.Duration // per call
	Strassen   time.Duration // per call
	Digest     uint64
	Err        error
}

// StrassenWins reports whether the seven-multiplication path was strictly
// faster.
func (p ProbeResult) StrassenWins() bool {
	return p.Err == nil && p.Strassen < p.Schoolbook
}

// Speedup is the schoolbook time divided by the Strassen time.
func (p ProbeResult) Speedup() float64 {
	if p.Strassen <= 0 {
		return 0
	}
	return float64(p.Schoolbook) / float64(p.Strassen)
}

// Options configures Run.
type Options struct {
	// Sizes are the probe sizes in limbs. Duplicates are ignored.
	Sizes []int
	// Concurrency bounds the probes in flight; zero means runtime.NumCPU().
	Concurrency int
	// Prober times the kernel. Required.
	Prober Prober
	// Recorder, if set, receives timing metrics.
	Recorder *metrics.Recorder
	// Logger, if set, receives one debug line per probe.
	Logger logging.Logger
	// OnProbe, if set, is called from the probe goroutines as each size
	// completes. It must be safe for concurrent use.
	OnProbe func(ProbeResult)
}

// Result is the outcome of a calibration run.
type Result struct {
	// Probes are sorted by size.
	Probes []ProbeResult
	// Threshold is the chosen Strassen threshold in limbs.
	Threshold int
	// Crossover is false when Strassen never stayed ahead within the probed
	// sizes; Threshold is then a lower bound.
	Crossover bool
	Elapsed   time.Duration
}

// Run probes every size concurrently and chooses the Strassen threshold.
// The first failing probe cancels the others; a path mismatch is reported
// as ErrPathMismatch.
func Run(ctx context.Context, opts Options) (Result, error) {
	if opts.Prober == nil {
		return Result{}, apperrors.NewConfigError("calibration requires a prober")
	}
	sizes := slices.Clone(opts.Sizes)
	slices.Sort(sizes)
	sizes = slices.Compact(sizes)
	if len(sizes) == 0 {
		return Result{}, apperrors.NewConfigError("calibration requires at least one size")
	}

	start := time.Now()
	ctx, span := otel.Tracer("calibration").Start(ctx, "calibration.Run",
		trace.WithAttributes(attribute.IntSlice("limbkern.sizes", sizes)))
	defer span.End()

	conc := opts.Concurrency
	if conc <= 0 {
		conc = runtime.NumCPU()
	}
	warmScratch(sizes, conc)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(conc)

	probes := make([]ProbeResult, len(sizes))
	for i, size := range sizes {
		g.Go(func() error {
			res := probe(gctx, opts, size)
			probes[i] = res
			if opts.OnProbe != nil {
				opts.OnProbe(res)
			}
			return res.Err
		})
	}
	err := g.Wait()

	result := Result{Probes: probes, Elapsed: time.Since(start)}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "calibration failed")
		return result, err
	}
	result.Threshold, result.Crossover = chooseThreshold(probes)
	span.SetAttributes(
		attribute.Int("limbkern.threshold", result.Threshold),
		attribute.Bool("limbkern.crossover", result.Crossover),
	)
	if opts.Recorder != nil {
		opts.Recorder.SetThreshold(result.Threshold)
	}
	if opts.Logger != nil {
		opts.Logger.Info("calibration complete",
			logging.Int("threshold", result.Threshold),
			logging.String("elapsed", result.Elapsed.String()))
	}
	return result, nil
}

// warmScratch seeds the scratch pool with one buffer per worker, sized for
// the largest probe on the Strassen path, and returns the limbs and count used.
func warmScratch(sizes []int, conc int) (limbs, count int) {
	largest := slices.Max(sizes)
	limbs = strassenPath.ScratchLen(largest, largest)
	count = min(conc, len(sizes))
	arith.PreWarm(limbs, count)
	return limbs, count
}

func probe(ctx context.Context, opts Options, size int) (res ProbeResult) {
	ctx, span := otel.Tracer("calibration").Start(ctx, "calibration.probe",
		trace.WithAttributes(attribute.Int("limbkern.limbs", size)))
	defer span.End()

	res.Size = size
	outcome := "ok"
	defer func() {
		if res.Err != nil {
			span.RecordError(res.Err)
			span.SetStatus(codes.Error, outcome)
		}
		if opts.Recorder != nil {
			opts.Recorder.ProbeDone(outcome)
		}
	}()

	small, err := opts.Prober.Measure(ctx, size, schoolbookPath)
	if err != nil {
		outcome, res.Err = "error", fmt.Errorf("schoolbook probe at %d limbs: %w", size, err)
		return res
	}
	fast, err := opts.Prober.Measure(ctx, size, strassenPath)
	if err != nil {
		outcome, res.Err = "error", fmt.Errorf("strassen probe at %d limbs: %w", size, err)
		return res
	}

	res.Schoolbook, res.Strassen, res.Digest = small.PerCall(), fast.PerCall(), small.Digest
	if small.Digest != fast.Digest {
		outcome = "mismatch"
		res.Err = fmt.Errorf("%w at %d limbs (digests %016x and %016x)", ErrPathMismatch, size, small.Digest, fast.Digest)
		return res
	}

	if opts.Recorder != nil {
		opts.Recorder.ObserveProbe("schoolbook", size, res.Schoolbook)
		opts.Recorder.ObserveProbe("strassen", size, res.Strassen)
		opts.Recorder.ObserveAllocated("schoolbook", small.Allocated)
		opts.Recorder.ObserveAllocated("strassen", fast.Allocated)
	}
	if opts.Logger != nil {
		opts.Logger.Debug("probe complete",
			logging.Int("limbs", size),
			logging.String("schoolbook", res.Schoolbook.String()),
			logging.String("strassen", res.Strassen.String()),
			logging.Float64("speedup", res.Speedup()))
	}
	return res
}

// chooseThreshold returns the smallest probed size from which Strassen wins
// at every larger probed size. Without such a size it returns a lower bound
// one past the largest size, never below the built-in threshold.
func chooseThreshold(probes []ProbeResult) (int, bool) {
	idx := len(probes)
	for i := len(probes) - 1; i >= 0 && probes[i].StrassenWins(); i-- {
		idx = i
	}
	if idx < len(probes) {
		return probes[idx].Size, true
	}
	if len(probes) == 0 {
		return matrix22.StrassenThreshold, false
	}
	return max(probes[len(probes)-1].Size+1, matrix22.StrassenThreshold), false
}

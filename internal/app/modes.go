package app

import (
	"context"
	"fmt"
	"io"
	"math"
	"slices"
	"sync"
	"time"

	"github.com/agbru/limbkern/internal/arith"
	"github.com/agbru/limbkern/internal/calibration"
	"github.com/agbru/limbkern/internal/cli"
	"github.com/agbru/limbkern/internal/config"
	apperrors "github.com/agbru/limbkern/internal/errors"
	"github.com/agbru/limbkern/internal/logging"
	"github.com/agbru/limbkern/internal/matrix22"
	"github.com/agbru/limbkern/internal/metrics"
	"github.com/agbru/limbkern/internal/modpow"
	"github.com/agbru/limbkern/internal/sysmon"
	"github.com/agbru/limbkern/internal/tui"
)

// guard turns a kernel precondition panic into a CalculationError.
func guard(err *error) {
	if r := recover(); r != nil {
		pe, ok := apperrors.AsPrecondition(r)
		if !ok {
			panic(r)
		}
		*err = apperrors.CalculationError{Cause: pe}
	}
}

// runModPow evaluates x^e mod m with the precomputed-reciprocal kernel and
// checks it against the plain square-and-multiply reference.
func (a *Application) runModPow(out io.Writer) (err error) {
	defer guard(&err)
	cfg := a.Config

	var r cli.ModPowReport
	switch cfg.Width {
	case 8:
		r = evalModPow[uint8](cfg.Base, cfg.Exponent, cfg.Modulus)
	case 16:
		r = evalModPow[uint16](cfg.Base, cfg.Exponent, cfg.Modulus)
	case 32:
		r = evalModPow[uint32](cfg.Base, cfg.Exponent, cfg.Modulus)
	default:
		r = evalModPow[uint64](cfg.Base, cfg.Exponent, cfg.Modulus)
	}
	r.Width = cfg.Width

	if cfg.Quiet {
		fmt.Fprintln(out, cli.FormatQuietModPow(r))
	} else {
		cli.DisplayModPowResult(out, r)
	}
	if !r.Agree() {
		return fmt.Errorf("%w: %d^%d mod %d gave %d and %d", errMismatch, r.Base, r.Exponent, r.Modulus, r.Fast, r.Reference)
	}
	return nil
}

func evalModPow[T modpow.Unsigned](x, exp, m uint64) cli.ModPowReport {
	r := cli.ModPowReport{Base: x, Exponent: exp, Modulus: m}

	start := time.Now()
	r.Fast = uint64(modpow.ModPow(T(x), exp, T(m)))
	r.FastTime = time.Since(start)

	start = time.Now()
	r.Reference = uint64(modpow.SimpleBinaryModPow(T(x), exp, T(m)))
	r.RefTime = time.Since(start)
	return r
}

// runMatrix multiplies seeded operands on both matrix22 paths and compares
// their digests.
func (a *Application) runMatrix(ctx context.Context, out io.Writer) error {
	cfg := a.Config
	ops := calibration.NewOperands(cfg.Seed, cfg.XsLen, cfg.YsLen)
	mp := matrix22.Multiplier{Threshold: cfg.StrassenThreshold}
	r := cli.MatrixReport{
		XsLen:     cfg.XsLen,
		YsLen:     cfg.YsLen,
		WordBits:  arith.W,
		Threshold: cfg.StrassenThreshold,
		Path:      mp.Path(cfg.XsLen, cfg.YsLen),
	}

	var err error
	collector := metrics.NewMemoryCollector()
	before := collector.Snapshot()
	if r.Schoolbook, r.SchoolbookTime, err = multiply(ctx, ops, matrix22.Multiplier{Threshold: math.MaxInt}); err != nil {
		return err
	}
	if r.Strassen, r.StrassenTime, err = multiply(ctx, ops, matrix22.Multiplier{Threshold: 0}); err != nil {
		return err
	}
	delta := collector.Snapshot().Since(before)
	a.Logger.Debug("matrix products complete",
		logging.Int("xs_len", cfg.XsLen),
		logging.Int("ys_len", cfg.YsLen),
		logging.Uint64("allocated_bytes", delta.Bytes),
		logging.Uint64("gc_cycles", uint64(delta.GCs)))

	if cfg.Quiet {
		fmt.Fprintln(out, cli.FormatQuietMatrix(r))
	} else {
		cli.DisplayMatrixResult(out, r)
	}
	if !r.Agree() {
		return fmt.Errorf("%w: digests %s and %s", errMismatch, cli.FormatDigest(r.Schoolbook), cli.FormatDigest(r.Strassen))
	}
	return nil
}

func multiply(ctx context.Context, ops *calibration.Operands, mp matrix22.Multiplier) (digest uint64, elapsed time.Duration, err error) {
	if err := ctx.Err(); err != nil {
		return 0, 0, err
	}
	defer guard(&err)

	out := ops.NewOutput()
	scratch := arith.AcquireScratch(mp.ScratchLen(ops.XsLen, ops.YsLen))
	defer arith.ReleaseWords(scratch)

	start := time.Now()
	ops.Mul(mp, out, scratch)
	elapsed = time.Since(start)
	return calibration.Digest(out), elapsed, nil
}

// probeSizes returns the configured sizes, or sizes spread around the
// hardware estimate when none were given.
func probeSizes(cfg config.AppConfig) []int {
	sizes := cfg.Sizes
	if len(sizes) == 0 {
		sizes = calibration.GenerateProbeSizes(config.EstimateOptimalStrassenThreshold())
	}
	sizes = slices.Clone(sizes)
	slices.Sort(sizes)
	return slices.Compact(sizes)
}

// runCalibrate measures the Strassen crossover, prints the table, and
// saves the profile for later runs.
func (a *Application) runCalibrate(ctx context.Context, out io.Writer) error {
	cfg := a.Config
	sizes := probeSizes(cfg)
	rec := metrics.NewRecorder()
	opts := calibration.Options{
		Sizes:       sizes,
		Concurrency: cfg.Concurrency,
		Prober:      calibration.NewKernelProber(cfg.Iterations, cfg.Seed),
		Recorder:    rec,
		Logger:      a.Logger,
	}

	if load := sysmon.Sample(); load.Busy() {
		zl := a.Logger.Zerolog()
		zl.Warn().Str("load", load.String()).Msg("system is busy, calibration timings may be noisy")
	}

	var res calibration.Result
	var err error
	switch {
	case cfg.TUI:
		res, err = tui.Run(ctx, opts, out)
	case cfg.Quiet:
		res, err = calibration.Run(ctx, opts)
	default:
		probes := make(chan calibration.ProbeResult, len(sizes))
		opts.OnProbe = func(p calibration.ProbeResult) { probes <- p }
		var wg sync.WaitGroup
		wg.Add(1)
		go cli.DisplayProgress(&wg, probes, len(sizes), out)
		res, err = calibration.Run(ctx, opts)
		close(probes)
		wg.Wait()
	}

	if cfg.MetricsOut != "" {
		if werr := rec.WriteTextfile(cfg.MetricsOut); werr != nil {
			a.Logger.Error("writing metrics", werr, logging.String("path", cfg.MetricsOut))
		}
	}
	if err != nil {
		return fmt.Errorf("calibration: %w", err)
	}

	if cfg.Quiet {
		fmt.Fprintln(out, res.Threshold)
	} else if !cfg.TUI {
		calibration.PrintResults(out, res)
	}

	profile := res.Profile(cfg.Iterations)
	if err := profile.Save(cfg.CalibrationProfile); err != nil {
		return apperrors.WrapError(err, "saving calibration profile")
	}
	if !cfg.Quiet {
		fmt.Fprintf(out, "Profile saved to %s\n", cfg.CalibrationProfile)
	}
	return nil
}

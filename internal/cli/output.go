// # Naming Conventions
//
//   - Display* functions write formatted output to an [io.Writer].
//     They handle presentation logic and colorization.
//
//   - Format* functions return a formatted string without performing I/O.

package cli

import (
	"fmt"
	"io"
	"time"

	"github.com/agbru/limbkern/internal/format"
	"github.com/agbru/limbkern/internal/ui"
)

// ModPowReport is the outcome of one modpow evaluation on both paths.
type ModPowReport struct {
	Width     int
	Base      uint64
	Exponent  uint64
	Modulus   uint64
	Fast      uint64
	Reference uint64
	FastTime  time.Duration
	RefTime   time.Duration
}

// Agree reports whether both paths returned the same residue.
func (r ModPowReport) Agree() bool { return r.Fast == r.Reference }

// MatrixReport is the outcome of one matrix22 product on both paths.
type MatrixReport struct {
	XsLen          int
	YsLen          int
	WordBits       int
	Threshold      int
	Path           string
	Schoolbook     uint64
	Strassen       uint64
	SchoolbookTime time.Duration
	StrassenTime   time.Duration
}

// Agree reports whether both paths produced the same digest.
func (r MatrixReport) Agree() bool { return r.Schoolbook == r.Strassen }

// FormatDigest renders a 64-bit digest as fixed-width hex.
func FormatDigest(d uint64) string { return fmt.Sprintf("%016x", d) }

// FormatQuietModPow returns the bare residue, for scripts.
func FormatQuietModPow(r ModPowReport) string { return fmt.Sprint(r.Fast) }

// FormatQuietMatrix returns the digest of the configured path, for scripts.
func FormatQuietMatrix(r MatrixReport) string {
	if r.Path == "strassen" {
		return FormatDigest(r.Strassen)
	}
	return FormatDigest(r.Schoolbook)
}

func agreement(t ui.Theme, ok bool) string {
	if ok {
		return t.Paint(t.Success, "paths agree")
	}
	return t.Paint(t.Error, "PATHS DISAGREE")
}

// DisplayModPowResult writes the modpow report.
func DisplayModPowResult(out io.Writer, r ModPowReport) {
	t := ui.GetCurrentTheme()
	fmt.Fprintf(out, "%s%d^%d mod %d%s (%d-bit words)\n", t.Bold, r.Base, r.Exponent, r.Modulus, t.Reset, r.Width)
	fmt.Fprintf(out, "  Result:      %s\n", t.Paint(t.Primary, fmt.Sprint(r.Fast)))
	fmt.Fprintf(out, "  Precomputed: %s\n", format.FormatExecutionDuration(r.FastTime))
	fmt.Fprintf(out, "  Reference:   %s (%d)\n", format.FormatExecutionDuration(r.RefTime), r.Reference)
	fmt.Fprintf(out, "  Check:       %s\n", agreement(t, r.Agree()))
}

// DisplayMatrixResult writes the matrix report.
func DisplayMatrixResult(out io.Writer, r MatrixReport) {
	t := ui.GetCurrentTheme()
	fmt.Fprintf(out, "%s2x2 matrix product%s: X %s by Y %s\n", t.Bold, t.Reset,
		format.FormatLimbs(r.XsLen, r.WordBits), format.FormatLimbs(r.YsLen, r.WordBits))
	fmt.Fprintf(out, "  Threshold:  %d limbs, selected path %s\n", r.Threshold, t.Paint(t.Primary, r.Path))
	fmt.Fprintf(out, "  Schoolbook: %s  %s\n", format.FormatExecutionDuration(r.SchoolbookTime), FormatDigest(r.Schoolbook))
	fmt.Fprintf(out, "  Strassen:   %s  %s\n", format.FormatExecutionDuration(r.StrassenTime), FormatDigest(r.Strassen))
	fmt.Fprintf(out, "  Check:      %s\n", agreement(t, r.Agree()))
}

package matrix22

import (
	"github.com/agbru/limbkern/internal/arith"
	apperrors "github.com/agbru/limbkern/internal/errors"
)

// signed is a magnitude with a sign. neg marks a negative value; a zero
// magnitude may carry either sign and is treated as zero both ways.
type signed struct {
	mag []arith.Word
	neg bool
}

func (s signed) negate() signed {
	s.neg = !s.neg
	return s
}

// absSub sets rp = |a - b| over len(rp) limbs and reports whether a < b.
// rp may alias a or b.
func absSub(rp, a, b []arith.Word) bool {
	n := len(rp)
	for n > 0 {
		n--
		x, y := a[n], b[n]
		if x != y {
			n++
			if x > y {
				arith.SubVV(rp[:n], a[:n], b[:n])
				return false
			}
			arith.SubVV(rp[:n], b[:n], a[:n])
			return true
		}
		rp[n] = 0
	}
	return false
}

// addSigned sets rp = a + b over len(rp) limbs and returns the sign of the
// sum. When a and b share a sign the magnitudes must add without carry.
func addSigned(rp []arith.Word, a, b signed) bool {
	if a.neg != b.neg {
		return a.neg != absSub(rp, a.mag, b.mag)
	}
	assertNoCarry(arith.AddVV(rp, a.mag, b.mag), "signed sum")
	return a.neg
}

// assertBelow panics if the high limb v of an intermediate exceeds its
// headroom. A failure is an internal bug, not an input error.
func assertBelow(v, bound arith.Word, what string) {
	if v >= bound {
		apperrors.Precondition("matrix22.Mul", "%s high limb %d, expected below %d", what, v, bound)
	}
}

func assertNoCarry(c arith.Word, what string) {
	if c != 0 {
		apperrors.Precondition("matrix22.Mul", "%s carried out", what)
	}
}

// assertNonNegative panics if s is below zero. Equal magnitudes of opposite
// sign cancel to a zero that may still carry neg.
func assertNonNegative(s signed, what string) {
	if s.neg && !arith.IsZero(s.mag) {
		apperrors.Precondition("matrix22.Mul", "%s came out negative", what)
	}
}

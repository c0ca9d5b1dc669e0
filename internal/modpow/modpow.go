package modpow

import (
	"math/bits"

	apperrors "github.com/agbru/limbkern/internal/errors"
)

// Context is the precomputed data for one modulus: the reciprocal of the
// normalized modulus and the normalization shift. It is immutable and safe to
// share between goroutines.
type Context[T Limb] struct {
	Inverse T
	Shift   uint64
}

// Precompute returns the reduction context for modulus m.
// It panics if m is zero.
func Precompute[T Limb](m T) Context[T] {
	if m == 0 {
		apperrors.Precondition("modpow.Precompute", "modulus is zero")
	}
	shift := leadingZeros(m)
	return Context[T]{Inverse: invertLimb(m << shift), Shift: shift}
}

// modPreinverted returns (n1<<W + n0) mod d for a normalized d with
// reciprocal inv. It requires n1 < d.
func modPreinverted[T Limb](n1, n0, d, inv T) T {
	qh, ql := mulWide(n1, inv)
	var c T
	ql, c = addCarry(ql, n0)
	qh += n1 + 1 + c
	r := n0 - qh*d
	if r > ql {
		r += d
	}
	if r >= d {
		r -= d
	}
	return r
}

// mulModNormalized returns x*y mod m. m must be normalized with reciprocal
// inv, and x, y must both be below m.
func mulModNormalized[T Limb](x, y, m, inv T) T {
	hi, lo := mulWide(x, y)
	return modPreinverted(hi, lo, m, inv)
}

// mulShifted multiplies two shifted-domain values, keeping the result in the
// shifted domain. The second operand is taken unshifted, which keeps the high
// product limb below m.
func mulShifted[T Limb](x, y, m, inv T, shift uint64) T {
	return mulModNormalized(x, y>>shift, m, inv)
}

// powModNormalized returns x^exp in the shifted domain, where x and m are
// already shifted left by shift.
func powModNormalized[T Limb](x T, exp uint64, m, inv T, shift uint64) T {
	if exp == 0 {
		one := T(1) << shift
		if one == m {
			return 0
		}
		return one
	}
	if x == 0 {
		return 0
	}
	out := x
	for i := bits.Len64(exp) - 2; i >= 0; i-- {
		out = mulShifted(out, out, m, inv, shift)
		if exp>>uint(i)&1 == 1 {
			out = mulShifted(out, x, m, inv, shift)
		}
	}
	return out
}

// ModPowPrecomputed returns x^exp mod m using a context from Precompute(m).
// x must be below m. 0^0 is 1 (0 when m is 1).
func ModPowPrecomputed[T Limb](x T, exp uint64, m T, ctx Context[T]) T {
	if x >= m {
		apperrors.Precondition("modpow.ModPowPrecomputed", "x = %d is not reduced mod %d", x, m)
	}
	s := ctx.Shift
	return powModNormalized(x<<s, exp, m<<s, ctx.Inverse, s) >> s
}

// MulModPrecomputed returns x*y mod m using a context from Precompute(m).
// x and y must both be below m.
func MulModPrecomputed[T Limb](x, y, m T, ctx Context[T]) T {
	if x >= m || y >= m {
		apperrors.Precondition("modpow.MulModPrecomputed", "operands %d, %d are not reduced mod %d", x, y, m)
	}
	s := ctx.Shift
	return mulModNormalized(x<<s, y, m<<s, ctx.Inverse) >> s
}

// PrecomputeNarrow returns the uint32 context used for a narrow modulus.
func PrecomputeNarrow[T Narrow](m T) Context[uint32] {
	return Precompute(uint32(m))
}

// ModPowPrecomputedNarrow computes x^exp mod m for uint8 and uint16 by
// promoting to uint32.
func ModPowPrecomputedNarrow[T Narrow](x T, exp uint64, m T, ctx Context[uint32]) T {
	return T(ModPowPrecomputed(uint32(x), exp, uint32(m), ctx))
}

// ModPow returns x^exp mod m for any unsigned width, precomputing the
// context on every call. Use Precompute and ModPowPrecomputed when the
// modulus is reused.
func ModPow[T Unsigned](x T, exp uint64, m T) T {
	if widthOf[T]() <= 32 {
		m32 := uint32(m)
		if m32 == 0 {
			apperrors.Precondition("modpow.ModPow", "modulus is zero")
		}
		return T(ModPowPrecomputed(uint32(x), exp, m32, Precompute(m32)))
	}
	m64 := uint64(m)
	if m64 == 0 {
		apperrors.Precondition("modpow.ModPow", "modulus is zero")
	}
	return T(ModPowPrecomputed(uint64(x), exp, m64, Precompute(m64)))
}

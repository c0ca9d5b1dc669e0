package modpow

import (
	"math/bits"

	apperrors "github.com/agbru/limbkern/internal/errors"
)

// mulModDiv returns x*y mod m with a hardware division. x and y are below m,
// so the high product limb is too and Div64 cannot overflow.
func mulModDiv(x, y, m uint64) uint64 {
	hi, lo := bits.Mul64(x, y)
	_, r := bits.Div64(hi, lo, m)
	return r
}

// SimpleBinaryModPow returns x^exp mod m by right-to-left square-and-multiply
// with a division per step. It needs no precomputation and serves as the
// reference for the reciprocal path. x must be below m.
func SimpleBinaryModPow[T Unsigned](x T, exp uint64, m T) T {
	if m == 0 {
		apperrors.Precondition("modpow.SimpleBinaryModPow", "modulus is zero")
	}
	if x >= m {
		apperrors.Precondition("modpow.SimpleBinaryModPow", "x = %d is not reduced mod %d", x, m)
	}
	if m == 1 {
		return 0
	}
	mod := uint64(m)
	base := uint64(x)
	out := uint64(1)
	for e := exp; e != 0; e >>= 1 {
		if e&1 == 1 {
			out = mulModDiv(out, base, mod)
		}
		if e > 1 {
			base = mulModDiv(base, base, mod)
		}
	}
	return T(out)
}

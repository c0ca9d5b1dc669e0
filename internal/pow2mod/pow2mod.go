package pow2mod

import (
	"math/bits"

	apperrors "github.com/agbru/limbkern/internal/errors"
)

// Unsigned is the set of unsigned integer types.
type Unsigned interface {
	~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uint
}

// Signed is the set of signed integer types.
type Signed interface {
	~int8 | ~int16 | ~int32 | ~int64 | ~int
}

func unsignedWidth[T Unsigned]() uint64 {
	return uint64(bits.Len64(uint64(^T(0))))
}

// signedWidth finds the width of T as the first position at which a
// single set bit turns the value negative.
func signedWidth[T Signed]() uint64 {
	var one T = 1
	for _, w := range [...]uint64{8, 16, 32} {
		if one<<(w-1) < 0 {
			return w
		}
	}
	return 64
}

// lowBits keeps the low pow bits of v.
func lowBits(v, pow uint64) uint64 {
	if pow >= 64 {
		return v
	}
	return v & (1<<pow - 1)
}

// ModPowerOf2 returns x mod 2^pow. The result is below 2^pow; when pow is at
// least the width of T it is x itself.
func ModPowerOf2[T Unsigned](x T, pow uint64) T {
	if pow >= unsignedWidth[T]() {
		return x
	}
	return x & (T(1)<<pow - 1)
}

// RemPowerOf2 is ModPowerOf2; for unsigned values remainder and modulus agree.
func RemPowerOf2[T Unsigned](x T, pow uint64) T {
	return ModPowerOf2(x, pow)
}

// NegModPowerOf2 returns r with 0 <= r < 2^pow and x + r ≡ 0 (mod 2^pow).
// It panics if x is non-zero and pow exceeds the width of T, since 2^pow - x
// would not fit.
func NegModPowerOf2[T Unsigned](x T, pow uint64) T {
	if x != 0 && pow > unsignedWidth[T]() {
		apperrors.Precondition("pow2mod.NegModPowerOf2", "pow %d exceeds width %d for non-zero x", pow, unsignedWidth[T]())
	}
	return ModPowerOf2(-x, pow)
}

// RemPowerOf2Signed returns the truncated remainder of x by 2^pow: its sign
// follows x and its magnitude is below 2^pow.
func RemPowerOf2Signed[T Signed](x T, pow uint64) T {
	if x >= 0 {
		if pow >= signedWidth[T]() {
			return x
		}
		return x & (T(1)<<pow - 1)
	}
	// -uint64(x) is |x| even for the minimum value.
	r := lowBits(-uint64(x), pow)
	return -T(r)
}

// ModPowerOf2Signed returns the non-negative residue of x modulo 2^pow as an
// unsigned value of the same width as T. It panics if x is negative and pow
// exceeds the width of T.
func ModPowerOf2Signed[T Signed](x T, pow uint64) uint64 {
	w := signedWidth[T]()
	if x < 0 && pow > w {
		apperrors.Precondition("pow2mod.ModPowerOf2Signed", "pow %d exceeds width %d for negative x", pow, w)
	}
	// Two's complement of x within w bits.
	u := lowBits(uint64(x), w)
	return lowBits(u, pow)
}

// CeilingModPowerOf2 returns r with -2^pow < r <= 0 and x ≡ r (mod 2^pow).
// It panics when r is not representable in T, which happens only when pow
// is at least the width of T and x is positive or the minimum value.
func CeilingModPowerOf2[T Signed](x T, pow uint64) T {
	w := signedWidth[T]()
	var abs uint64
	if x >= 0 {
		u := uint64(x)
		if u != 0 && pow > w {
			apperrors.Precondition("pow2mod.CeilingModPowerOf2", "pow %d exceeds width %d for positive x", pow, w)
		}
		abs = lowBits(lowBits(-u, w), pow)
	} else {
		abs = lowBits(-uint64(x), pow)
	}
	if abs > uint64(1)<<(w-1)-1 {
		apperrors.Precondition("pow2mod.CeilingModPowerOf2", "result -%d does not fit in %d bits", abs, w)
	}
	return -T(abs)
}

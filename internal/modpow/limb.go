package modpow

import "math/bits"

// Unsigned is every unsigned word type the engine accepts.
type Unsigned interface {
	~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uint
}

// Limb is the set of computation widths with a native double-width multiply.
type Limb interface {
	~uint32 | ~uint64 | ~uint
}

// Narrow is the set of widths promoted to uint32 before computing.
type Narrow interface {
	~uint8 | ~uint16
}

// widthOf returns the bit width of T.
func widthOf[T Unsigned]() uint {
	return uint(bits.Len64(uint64(^T(0))))
}

// mulWide returns the double-width product hi<<W + lo = x*y.
func mulWide[T Limb](x, y T) (hi, lo T) {
	if widthOf[T]() == 32 {
		p := uint64(x) * uint64(y)
		return T(p >> 32), T(p)
	}
	h, l := bits.Mul64(uint64(x), uint64(y))
	return T(h), T(l)
}

// addCarry returns x+y and the carry out.
func addCarry[T Limb](x, y T) (sum, carry T) {
	sum = x + y
	if sum < x {
		carry = 1
	}
	return
}

// leadingZeros counts the leading zero bits of x within the width of T.
func leadingZeros[T Limb](x T) uint64 {
	return uint64(bits.LeadingZeros64(uint64(x)) - (64 - int(widthOf[T]())))
}

// invertLimb returns floor((2^(2W) - 1) / d) - 2^W for a normalized d (top
// bit set). The quotient of that division always has its top limb equal to
// 1, so only the low limb is returned.
func invertLimb[T Limb](d T) T {
	if widthOf[T]() == 32 {
		q, _ := bits.Div32(^uint32(d), ^uint32(0), uint32(d))
		return T(q)
	}
	q, _ := bits.Div64(^uint64(d), ^uint64(0), uint64(d))
	return T(q)
}

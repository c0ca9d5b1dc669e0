package arith

import (
	"math/big"

	apperrors "github.com/agbru/limbkern/internal/errors"
)

// KaratsubaThreshold is the operand length (in limbs) from which Mul hands the
// product to math/big, whose Karatsuba multiplication wins over the quadratic
// loop.
const KaratsubaThreshold = 40

// Mul sets z[:len(x)+len(y)] = x*y. z must not overlap x or y, and both
// operands must be non-empty. Limbs of z beyond len(x)+len(y) are untouched.
func Mul(z, x, y []Word) {
	n := len(x) + len(y)
	if len(z) < n {
		apperrors.Precondition("arith.Mul", "destination has %d limbs, need %d", len(z), n)
	}
	if len(x) < KaratsubaThreshold || len(y) < KaratsubaThreshold {
		basicMul(z[:n], x, y)
		return
	}
	bigMul(z[:n], x, y)
}

// basicMul is the schoolbook product; cost is proportional to len(x)*len(y).
func basicMul(z, x, y []Word) {
	clear(z)
	for i, d := range y {
		if d != 0 {
			z[len(x)+i] = AddMulVVW(z[i:i+len(x)], x, d)
		}
	}
}

// bigMul routes the product through math/big. The operands are aliased
// read-only by SetBits; the product is allocated by big.Int and copied out.
func bigMul(z, x, y []Word) {
	var xb, yb, zb big.Int
	xb.SetBits(x)
	yb.SetBits(y)
	zb.Mul(&xb, &yb)
	n := copy(z, zb.Bits())
	clear(z[n:])
}

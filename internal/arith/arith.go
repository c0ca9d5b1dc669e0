package arith

import (
	"math/big"
	"math/bits"
)

// Word is a single limb of a multi-precision magnitude.
type Word = big.Word

// W is the limb width in bits.
const W = bits.UintSize

// Loops below are of the form
//
//	for i := 0; i < len(z) && i < len(x) && i < len(y); i++
//
// where i < len(z) is the real condition; the extra checks let the compiler
// drop bounds checks in the body.

// AddVV sets z = x + y over len(z) limbs and returns the carry (0 or 1).
func AddVV(z, x, y []Word) (c Word) {
	for i := 0; i < len(z) && i < len(x) && i < len(y); i++ {
		zi, cc := bits.Add(uint(x[i]), uint(y[i]), uint(c))
		z[i] = Word(zi)
		c = Word(cc)
	}
	return
}

// SubVV sets z = x - y over len(z) limbs and returns the borrow (0 or 1).
func SubVV(z, x, y []Word) (c Word) {
	for i := 0; i < len(z) && i < len(x) && i < len(y); i++ {
		zi, cc := bits.Sub(uint(x[i]), uint(y[i]), uint(c))
		z[i] = Word(zi)
		c = Word(cc)
	}
	return
}

// mulAddWWW returns z1<<W + z0 = x*y + c.
func mulAddWWW(x, y, c Word) (z1, z0 Word) {
	hi, lo := bits.Mul(uint(x), uint(y))
	var cc uint
	lo, cc = bits.Add(lo, uint(c), 0)
	return Word(hi + cc), Word(lo)
}

// AddMulVVW sets z += x*y and returns the high limb.
func AddMulVVW(z, x []Word, y Word) (c Word) {
	for i := 0; i < len(z) && i < len(x); i++ {
		z1, z0 := mulAddWWW(x[i], y, z[i])
		lo, cc := bits.Add(uint(z0), uint(c), 0)
		c, z[i] = Word(cc), Word(lo)
		c += z1
	}
	return
}

// IsZero reports whether every limb of x is zero.
func IsZero(x []Word) bool {
	for _, w := range x {
		if w != 0 {
			return false
		}
	}
	return true
}

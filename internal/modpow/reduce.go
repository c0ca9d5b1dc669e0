package modpow

import apperrors "github.com/agbru/limbkern/internal/errors"

// ReduceLimbs returns the residue of the little-endian limb vector xs modulo
// the single-limb modulus m, using a context from Precompute(m). The vector
// is conceptually shifted left by ctx.Shift so that every step divides by the
// normalized modulus; the residue is shifted back at the end.
func ReduceLimbs[T Limb](xs []T, m T, ctx Context[T]) T {
	if m == 0 {
		apperrors.Precondition("modpow.ReduceLimbs", "modulus is zero")
	}
	if len(xs) == 0 {
		return 0
	}
	w := uint64(widthOf[T]())
	s := ctx.Shift
	d := m << s
	// Bits shifted out of the top limb; below 2^s, hence below d.
	r := xs[len(xs)-1] >> (w - s)
	for i := len(xs) - 1; i >= 0; i-- {
		limb := xs[i] << s
		if i > 0 {
			limb |= xs[i-1] >> (w - s)
		}
		r = modPreinverted(r, limb, d, ctx.Inverse)
	}
	return r >> s
}

// Package pow2mod implements reduction modulo a power of two for fixed-width
// integers: plain, negated and ceiling residues, and the truncated remainder
// of signed values. All operations are masks and negations; none of them
// divides.
//
// pow is the exponent of the modulus 2^pow and may exceed the width of the
// operand type. Operations whose result would not fit the type panic with
// *apperrors.PreconditionError.
package pow2mod

// Package modpow is the word-sized modular reduction engine.
//
// A modulus m is normalized by shifting it left until its top bit is set, and
// a reciprocal of the normalized modulus is computed once (Precompute). Every
// subsequent modular multiplication is then a pair of double-width multiplies
// plus at most two conditional corrections; no division instruction is issued.
//
// The algorithm is written once, generic over the native limb widths (Limb),
// and instantiated for uint32, uint64 and uint (which includes big.Word).
// Narrower types are promoted to uint32 and the result narrowed back.
//
// Exponentiation runs in the shifted domain: a value a is represented as
// a<<Shift, products multiply one shifted operand by one unshifted operand,
// and the final residue is shifted back down. SimpleBinaryModPow is the
// division-based reference the fast path is tested against.
//
// Violated preconditions (zero modulus, unreduced operand) panic with
// *apperrors.PreconditionError.
package modpow

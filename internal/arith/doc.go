// Package arith provides the limb-vector primitives the kernels are built on:
// carry-propagating add/sub over word slices, full multiplication into
// caller-provided storage, and a size-classed pool of scratch buffers.
//
// All vector functions operate on len(z) limbs and never allocate, with the
// exception of Mul for operands above KaratsubaThreshold, which delegates to
// math/big and copies the product out.
package arith

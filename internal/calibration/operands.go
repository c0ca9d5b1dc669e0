package calibration

import (
	"encoding/binary"
	"math/rand/v2"

	"github.com/agbru/limbkern/internal/arith"
	"github.com/agbru/limbkern/internal/matrix22"
	"github.com/cespare/xxhash/v2"
)

// Operands is a reproducible matrix22 problem: a cofactor row pair X of
// XsLen limbs per entry and a matrix Y of YsLen limbs per entry.
type Operands struct {
	XsLen int
	YsLen int
	xs    [4][]arith.Word
	ys    [4][]arith.Word
}

// NewOperands derives operands from seed. The same seed and lengths always
// produce the same limbs.
func NewOperands(seed uint64, xsLen, ysLen int) *Operands {
	rng := rand.New(rand.NewPCG(seed, uint64(xsLen)<<32|uint64(ysLen)))
	o := &Operands{XsLen: xsLen, YsLen: ysLen}
	for i := range o.xs {
		o.xs[i] = randomLimbs(rng, xsLen)
		o.ys[i] = randomLimbs(rng, ysLen)
	}
	return o
}

func randomLimbs(rng *rand.Rand, n int) []arith.Word {
	v := make([]arith.Word, n)
	for i := range v {
		v[i] = arith.Word(rng.Uint64())
	}
	return v
}

// OutLen is the length of each result entry.
func (o *Operands) OutLen() int { return o.XsLen + o.YsLen + 1 }

// NewOutput allocates four result buffers of OutLen limbs.
func (o *Operands) NewOutput() [4][]arith.Word {
	var out [4][]arith.Word
	for i := range out {
		out[i] = make([]arith.Word, o.OutLen())
	}
	return out
}

// X returns a copy of entry i of the cofactor row pair.
func (o *Operands) X(i int) []arith.Word { return append([]arith.Word(nil), o.xs[i]...) }

// Y returns a copy of entry i of the matrix.
func (o *Operands) Y(i int) []arith.Word { return append([]arith.Word(nil), o.ys[i]...) }

// Mul loads X into out and multiplies it in place by Y with mp. scratch
// must hold mp.ScratchLen(o.XsLen, o.YsLen) limbs.
func (o *Operands) Mul(mp matrix22.Multiplier, out [4][]arith.Word, scratch []arith.Word) {
	for i := range out {
		copy(out[i], o.xs[i])
	}
	mp.Mul(out[0], out[1], out[2], out[3], o.XsLen, o.ys[0], o.ys[1], o.ys[2], o.ys[3], scratch)
}

// Digest hashes the four result entries in order, each limb as eight
// little-endian bytes regardless of the platform word size.
func Digest(out [4][]arith.Word) uint64 {
	d := xxhash.New()
	var buf [8]byte
	for _, entry := range out {
		for _, w := range entry {
			binary.LittleEndian.PutUint64(buf[:], uint64(w))
			_, _ = d.Write(buf[:])
		}
	}
	return d.Sum64()
}

package matrix22

import (
	"unsafe"

	"github.com/agbru/limbkern/internal/arith"
	apperrors "github.com/agbru/limbkern/internal/errors"
)

// StrassenThreshold is the operand length, in limbs, from which Mul switches
// to the seven-multiplication algorithm. Both xsLen and ysLen must reach it.
const StrassenThreshold = 30

// Multiplier performs the matrix product with an explicit algorithm
// threshold. A Threshold of 0 always selects the seven-multiplication path;
// math.MaxInt always selects the schoolbook path. The zero value is usable.
type Multiplier struct {
	Threshold int
}

// Path names the algorithm chosen for the given operand lengths.
func (mp Multiplier) Path(xsLen, ysLen int) string {
	if mp.useStrassen(xsLen, ysLen) {
		return "strassen"
	}
	return "schoolbook"
}

func (mp Multiplier) useStrassen(xsLen, ysLen int) bool {
	return xsLen >= mp.Threshold && ysLen >= mp.Threshold
}

// ScratchLen returns the minimum scratch length, in limbs, for Mul.
func (mp Multiplier) ScratchLen(xsLen, ysLen int) int {
	if mp.useStrassen(xsLen, ysLen) {
		return 3*(xsLen+ysLen) + 5
	}
	return 3*xsLen + 2*ysLen
}

// Mul sets X = X·Y where X = [xs00 xs01; xs10 xs11] and Y = [ys00 ys01;
// ys10 ys11]:
//
//	xs00' = xs00·ys00 + xs01·ys10    xs01' = xs00·ys01 + xs01·ys11
//	xs10' = xs10·ys00 + xs11·ys10    xs11' = xs10·ys01 + xs11·ys11
//
// The inputs are the low xsLen limbs of each xs buffer and the four ys
// buffers, which must share one non-zero length. Each xs buffer needs at
// least xsLen+ysLen+1 limbs and receives its result in exactly that many.
// scratch needs ScratchLen(xsLen, ysLen) limbs and may hold garbage. The
// limbs Mul writes (xs entries and scratch) must not overlap each other or
// the ys entries; the ys entries may share memory. Violations panic.
func (mp Multiplier) Mul(xs00, xs01, xs10, xs11 []arith.Word, xsLen int, ys00, ys01, ys10, ys11 []arith.Word, scratch []arith.Word) {
	const op = "matrix22.Mul"
	ysLen := len(ys00)
	if xsLen < 1 || ysLen < 1 {
		apperrors.Precondition(op, "operand lengths must be positive, got xsLen=%d ysLen=%d", xsLen, ysLen)
	}
	if len(ys01) != ysLen || len(ys10) != ysLen || len(ys11) != ysLen {
		apperrors.Precondition(op, "ys entries differ in length: %d, %d, %d, %d", ysLen, len(ys01), len(ys10), len(ys11))
	}
	outLen := xsLen + ysLen + 1
	for i, xs := range [...][]arith.Word{xs00, xs01, xs10, xs11} {
		if len(xs) < outLen {
			apperrors.Precondition(op, "xs entry %d has %d limbs, need %d", i, len(xs), outLen)
		}
	}
	need := mp.ScratchLen(xsLen, ysLen)
	if len(scratch) < need {
		apperrors.Precondition(op, "scratch has %d limbs, need %d", len(scratch), need)
	}
	written := [...][]arith.Word{xs00[:outLen], xs01[:outLen], xs10[:outLen], xs11[:outLen], scratch[:need]}
	for i, w := range written {
		for j := i + 1; j < len(written); j++ {
			if overlaps(w, written[j]) {
				apperrors.Precondition(op, "buffers %s and %s overlap", bufferNames[i], bufferNames[j])
			}
		}
		for j, ys := range [...][]arith.Word{ys00, ys01, ys10, ys11} {
			if overlaps(w, ys) {
				apperrors.Precondition(op, "buffers %s and %s overlap", bufferNames[i], bufferNames[len(written)+j])
			}
		}
	}

	if mp.useStrassen(xsLen, ysLen) {
		mulStrassen(xs00, xs01, xs10, xs11, xsLen, ys00, ys01, ys10, ys11, scratch)
		return
	}
	mulSchoolbook(xs00, xs01, xs10, xs11, xsLen, ys00, ys01, ys10, ys11, scratch)
}

var bufferNames = [...]string{"xs00", "xs01", "xs10", "xs11", "scratch", "ys00", "ys01", "ys10", "ys11"}

// overlaps reports whether a and b share any limb.
func overlaps(a, b []arith.Word) bool {
	if len(a) == 0 || len(b) == 0 {
		return false
	}
	const size = unsafe.Sizeof(arith.Word(0))
	a0 := uintptr(unsafe.Pointer(&a[0]))
	b0 := uintptr(unsafe.Pointer(&b[0]))
	return a0 < b0+uintptr(len(b))*size && b0 < a0+uintptr(len(a))*size
}

// mulShorterFirst sets z = x*y, passing the shorter operand as the
// multiplier so the quadratic loop runs over fewer limbs.
func mulShorterFirst(z, x, y []arith.Word) {
	long, short := byLength(x, y)
	arith.Mul(z, long, short)
}

// byLength orders two operands longest first; ties keep their order.
func byLength(x, y []arith.Word) (long, short []arith.Word) {
	if len(y) > len(x) {
		return y, x
	}
	return x, y
}

// ScratchLen returns the scratch length Mul needs for the given lengths.
func ScratchLen(xsLen, ysLen int) int {
	return Multiplier{Threshold: StrassenThreshold}.ScratchLen(xsLen, ysLen)
}

// Mul multiplies with the default threshold; see Multiplier.Mul.
func Mul(xs00, xs01, xs10, xs11 []arith.Word, xsLen int, ys00, ys01, ys10, ys11 []arith.Word, scratch []arith.Word) {
	Multiplier{Threshold: StrassenThreshold}.Mul(xs00, xs01, xs10, xs11, xsLen, ys00, ys01, ys10, ys11, scratch)
}

// mulSchoolbook computes each output row with four products. scratch holds
// a copy of the row's first entry (n limbs) followed by two n+k-limb
// products.
func mulSchoolbook(r0, r1, r2, r3 []arith.Word, n int, m0, m1, m2, m3 []arith.Word, scratch []arith.Word) {
	k := len(m0)
	nk := n + k
	tp := scratch[:n]
	p0 := scratch[n : n+nk]
	p1 := scratch[n+nk : n+2*nk]

	for _, row := range [2][2][]arith.Word{{r0, r1}, {r2, r3}} {
		a, b := row[0], row[1]
		copy(tp, a[:n])
		mulShorterFirst(p0, a[:n], m0)
		mulShorterFirst(p1, b[:n], m3)
		mulShorterFirst(a, b[:n], m2)
		mulShorterFirst(b, tp, m1)
		a[nk] = arith.AddVV(a[:nk], a[:nk], p0)
		b[nk] = arith.AddVV(b[:nk], b[:nk], p1)
	}
}

package matrix22

import "github.com/agbru/limbkern/internal/arith"

// mulStrassen is the seven-multiplication product. With the rows of X as
// (r0, r1), (r2, r3) and the columns of Y as (m0, m2), (m1, m3):
//
//	s0 = r0               t0 = m0
//	s1 = r1 + r3          t1 = m1 + m3
//	s2 = r3 - r2          t2 = m3 - m2
//	s3 = r1 - r2 + r3     t3 = m1 - m2 + m3
//	s4 = -r0 + r1 - r2 + r3
//	                      t4 = -m0 + m1 - m2 + m3
//	s5 = r1               t5 = m1
//	s6 = r2               t6 = m2
//
//	u0 = s0·t0  u1 = s1·t1  u2 = s2·t2  u3 = s3·t3
//	u4 = s4·t5  u5 = s5·t6  u6 = s6·t4
//
//	r0' = u0 + u5             r1' = -u2 + u3 - u4 + u5
//	r2' = u1 - u3 - u5 - u6   r3' = u1 + u2 - u3 - u5
//
// The schedule below reuses the output buffers for intermediates. scratch
// is laid out as s0 (n+1) | t0 (k+1) | u0 (n+k+1) | u1 (n+k+2); the names of
// the scratch areas do not always match the formula names above.
func mulStrassen(r0, r1, r2, r3 []arith.Word, n int, m0, m1, m2, m3 []arith.Word, scratch []arith.Word) {
	k := len(m0)
	nk := n + k
	s0 := scratch[:n+1]
	t0 := scratch[n+1 : n+k+2]
	u0 := scratch[n+k+2 : 2*nk+3]
	u1 := scratch[2*nk+3 : 3*nk+5]

	// u0 = u5 = r1·m2
	arith.Mul(u0, r1[:n], m2)

	// r3 = s2
	r3Neg := absSub(r3[:n], r3[:n], r2[:n])

	// r1 = s3 = r1 + s2, n+1 limbs
	var r1Neg bool
	if r3Neg {
		r1Neg = absSub(r1[:n], r1[:n], r3[:n])
		r1[n] = 0
	} else {
		r1[n] = arith.AddVV(r1[:n], r1[:n], r3[:n])
	}

	// s0 = -s4 = r0 - s3, n+1 limbs
	var s0Neg bool
	switch {
	case r1Neg:
		s0[n] = arith.AddVV(s0[:n], r1[:n], r0[:n])
	case r1[n] != 0:
		s0[n] = r1[n] - arith.SubVV(s0[:n], r1[:n], r0[:n])
		s0Neg = true
	default:
		s0Neg = absSub(s0[:n], r0[:n], r1[:n])
		s0[n] = 0
	}

	// r0' = u0 + u5
	arith.Mul(u1, r0[:n], m0)
	r0[nk] = arith.AddVV(r0[:nk], u0[:nk], u1[:nk])
	assertBelow(r0[nk], 2, "r0")

	// t0 = t2; u1 = -u2
	t0Neg := absSub(t0[:k], m3, m2)
	negU2 := signed{mag: u1, neg: r3Neg != t0Neg}.negate()
	arith.Mul(u1, r3[:n], t0[:k])
	u1[nk] = 0

	// t0 = t3 = m1 + t2, k+1 limbs
	if t0Neg {
		t0Neg = absSub(t0[:k], m1, t0[:k])
		t0[k] = 0
	} else {
		t0[k] = arith.AddVV(t0[:k], t0[:k], m1)
	}

	// r3 = |u3| = |s3·t3|
	if t0[k] != 0 {
		arith.Mul(r3, r1[:n], t0[:k+1])
		assertBelow(r1[n], 2, "s3")
		if r1[n] != 0 {
			arith.AddVV(r3[n:nk+1], r3[n:nk+1], t0[:k+1])
		}
	} else {
		arith.Mul(r3, r1[:n+1], t0[:k])
	}
	assertBelow(r3[nk], 4, "u3")

	// r3 = u3 + u5
	u0[nk] = 0
	if r1Neg != t0Neg {
		r3Neg = absSub(r3[:nk+1], u0[:nk+1], r3[:nk+1])
	} else {
		assertNoCarry(arith.AddVV(r3[:nk+1], r3[:nk+1], u0[:nk+1]), "u3 + u5")
		r3Neg = false
	}

	// t0 = t4 = t3 - m0
	switch {
	case t0Neg:
		t0[k] = arith.AddVV(t0[:k], t0[:k], m0)
	case t0[k] != 0:
		t0[k] -= arith.SubVV(t0[:k], t0[:k], m0)
	default:
		t0Neg = absSub(t0[:k], t0[:k], m0)
	}

	// u0 = u6 = r2·t4
	arith.Mul(u0, r2[:n], t0[:k+1])
	assertBelow(u0[nk], 2, "u6")

	// r1 = s1 = s3 + r2
	if r1Neg {
		assertNoCarry(arith.SubVV(r1[:n], r2[:n], r1[:n]), "s1")
	} else {
		r1[n] += arith.AddVV(r1[:n], r1[:n], r2[:n])
	}

	m := nk + 1
	u35 := signed{mag: r3[:m], neg: r3Neg}
	u6 := signed{mag: u0[:m], neg: t0Neg}
	negU2.mag = u1[:m]

	// r2 = u3 + u5 + u6
	r2Neg := addSigned(r2[:m], u35, u6)
	assertBelow(r2[m-1], 4, "u3 + u5 + u6")

	// r3 = -u2 + u3 + u5
	r3Neg = addSigned(r3[:m], u35, negU2)
	assertBelow(r3[m-1], 3, "-u2 + u3 + u5")

	// u0 = -u4 = (-s4)·t5
	arith.Mul(u0, s0[:n+1], m1)
	assertBelow(u0[m-1], 2, "u4")
	negU4 := signed{mag: u0[:m], neg: s0Neg}

	// u1 = s1·t1
	t0[k] = arith.AddVV(t0[:k], m3, m1)
	arith.Mul(u1, r1[:n+1], t0[:k+1])
	assertBelow(u1[m-1], 4, "u1")
	assertNoCarry(u1[m], "u1")

	// r1' = -u2 + u3 - u4 + u5
	r1Neg = addSigned(r1[:m], signed{mag: r3[:m], neg: r3Neg}, negU4)
	assertNonNegative(signed{mag: r1[:m], neg: r1Neg}, "r1")
	assertBelow(r1[m-1], 2, "r1")

	// r3' = u1 - (-u2 + u3 + u5)
	if r3Neg {
		assertNoCarry(arith.AddVV(r3[:m], u1[:m], r3[:m]), "r3")
	} else {
		assertNoCarry(arith.SubVV(r3[:m], u1[:m], r3[:m]), "r3")
	}
	assertBelow(r3[m-1], 2, "r3")

	// r2' = u1 - (u3 + u5 + u6)
	if r2Neg {
		assertNoCarry(arith.AddVV(r2[:m], u1[:m], r2[:m]), "r2")
	} else {
		assertNoCarry(arith.SubVV(r2[:m], u1[:m], r2[:m]), "r2")
	}
	assertBelow(r2[m-1], 2, "r2")
}

package matrix22

import (
	"math/rand/v2"
	"testing"
)

// FuzzMul runs both algorithms on fuzzer-chosen shapes and seeds.
func FuzzMul(f *testing.F) {
	f.Add(uint64(0), uint8(1), uint8(1), uint8(0))
	f.Add(uint64(1), uint8(30), uint8(30), uint8(1))
	f.Add(uint64(2), uint8(31), uint8(7), uint8(3))
	f.Add(uint64(3), uint8(64), uint8(40), uint8(2))

	f.Fuzz(func(t *testing.T, seed uint64, n, k, p uint8) {
		if n == 0 || k == 0 || n > 96 || k > 96 {
			return
		}
		rng := rand.New(rand.NewPCG(seed, seed^0x9E3779B97F4A7C15))
		a := newProblem(rng, int(n), int(k), pattern(p%4))
		b := a.clone()
		a.run(schoolbook)
		b.run(strassen)
		a.check(t)
		b.check(t)
	})
}

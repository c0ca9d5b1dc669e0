//go:build gmp

// GMP oracle for the reduction engine. Requires libgmp and -tags=gmp.

package modpow

import (
	"math/big"
	"math/rand/v2"
	"testing"

	"github.com/ncw/gmp"
)

func toGMP(x uint64) *gmp.Int {
	return new(gmp.Int).SetBytes(new(big.Int).SetUint64(x).Bytes())
}

func fromGMP(g *gmp.Int) uint64 {
	return new(big.Int).SetBytes(g.Bytes()).Uint64()
}

func TestModPowPrecomputed_GMPOracle(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	for i := 0; i < 20000; i++ {
		m := rng.Uint64() | 2
		x := rng.Uint64() % m
		exp := rng.Uint64()

		want := fromGMP(new(gmp.Int).Exp(toGMP(x), toGMP(exp), toGMP(m)))
		if got := ModPowPrecomputed(x, exp, m, Precompute(m)); got != want {
			t.Fatalf("%d^%d mod %d: got %d, gmp %d", x, exp, m, got, want)
		}
	}
}

package modpow

import (
	"math"
	"math/big"
	"math/bits"
	"testing"

	"github.com/agbru/limbkern/internal/arith"
	apperrors "github.com/agbru/limbkern/internal/errors"
	"github.com/stretchr/testify/require"
)

// requirePrecondition asserts that fn panics with a PreconditionError for op
// and returns its detail.
func requirePrecondition(t *testing.T, op string, fn func()) (detail string) {
	t.Helper()
	defer func() {
		r := recover()
		require.NotNil(t, r, "expected a panic from %s", op)
		pe, ok := apperrors.AsPrecondition(r)
		require.True(t, ok, "panic value %v is not a PreconditionError", r)
		require.Equal(t, op, pe.Op)
		detail = pe.Detail
	}()
	fn()
	return ""
}

// expectedInverse computes floor((2^(2W)-1)/(m<<shift)) - 2^W with big.Int.
func expectedInverse(m uint64, width uint) *big.Int {
	shift := uint(bits.LeadingZeros64(m)) - (64 - width)
	d := new(big.Int).Lsh(new(big.Int).SetUint64(m), shift)
	num := new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 2*width), big.NewInt(1))
	q := new(big.Int).Quo(num, d)
	return q.Sub(q, new(big.Int).Lsh(big.NewInt(1), width))
}

func TestPrecompute(t *testing.T) {
	t.Parallel()

	t.Run("uint32", func(t *testing.T) {
		t.Parallel()
		for _, m := range []uint32{1, 2, 3, 30, 497, 1 << 31, math.MaxUint32 - 1, math.MaxUint32} {
			ctx := Precompute(m)
			require.Equal(t, uint64(bits.LeadingZeros32(m)), ctx.Shift, "m=%d", m)
			require.Equal(t, expectedInverse(uint64(m), 32).Uint64(), uint64(ctx.Inverse), "m=%d", m)
		}
	})

	t.Run("uint64", func(t *testing.T) {
		t.Parallel()
		for _, m := range []uint64{1, 2, 3, 30, 497, 1 << 63, math.MaxUint64 - 58, math.MaxUint64} {
			ctx := Precompute(m)
			require.Equal(t, uint64(bits.LeadingZeros64(m)), ctx.Shift, "m=%d", m)
			require.Equal(t, expectedInverse(m, 64).Uint64(), ctx.Inverse, "m=%d", m)
		}
	})

	t.Run("modulus one", func(t *testing.T) {
		t.Parallel()
		ctx := Precompute(uint64(1))
		require.Equal(t, uint64(63), ctx.Shift)
		require.Equal(t, uint64(math.MaxUint64), ctx.Inverse)
	})

	t.Run("zero modulus panics", func(t *testing.T) {
		t.Parallel()
		requirePrecondition(t, "modpow.Precompute", func() { Precompute(uint32(0)) })
		requirePrecondition(t, "modpow.Precompute", func() { Precompute(uint64(0)) })
	})
}

func TestModPowPrecomputed_Literals(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		x, exp uint64
		m      uint64
		want   uint64
	}{
		{"4^13 mod 497", 4, 13, 497, 445},
		{"5^3 mod 497", 5, 3, 497, 125},
		{"4^100 mod 497", 4, 100, 497, 116},
		{"10^1000 mod 30", 10, 1000, 30, 10},
		{"5^8 mod 30", 5, 8, 30, 25},
		{"0^0 mod 1", 0, 0, 1, 0},
		{"0^0 mod 7", 0, 0, 7, 1},
		{"0^5 mod 7", 0, 5, 7, 0},
		{"x^1 is x", 123456789, 1, 1000000007, 123456789},
		{"fermat", 2, 1000000006, 1000000007, 1},
		{"top modulus", math.MaxUint64 - 1, 2, math.MaxUint64, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := ModPowPrecomputed(tt.x, tt.exp, tt.m, Precompute(tt.m))
			require.Equal(t, tt.want, got)
			require.Equal(t, tt.want, SimpleBinaryModPow(tt.x, tt.exp, tt.m))
			if tt.m <= math.MaxUint32 {
				m32 := uint32(tt.m)
				got32 := ModPowPrecomputed(uint32(tt.x), tt.exp, m32, Precompute(m32))
				require.Equal(t, uint32(tt.want), got32)
			}
		})
	}
}

func TestModPowPrecomputed_ZeroExponent(t *testing.T) {
	t.Parallel()
	for _, m := range []uint64{1, 2, 3, 497, 1 << 63, math.MaxUint64} {
		ctx := Precompute(m)
		want := uint64(1)
		if m == 1 {
			want = 0
		}
		for _, x := range []uint64{0, m / 2, m - 1} {
			require.Equal(t, want, ModPowPrecomputed(x, 0, m, ctx), "x=%d m=%d", x, m)
		}
	}
}

func TestModPowPrecomputed_Preconditions(t *testing.T) {
	t.Parallel()
	ctx := Precompute(uint64(497))
	requirePrecondition(t, "modpow.ModPowPrecomputed", func() { ModPowPrecomputed(uint64(497), 3, 497, ctx) })
	requirePrecondition(t, "modpow.SimpleBinaryModPow", func() { SimpleBinaryModPow(uint64(500), 3, 497) })
	detail := requirePrecondition(t, "modpow.SimpleBinaryModPow", func() { SimpleBinaryModPow(uint8(0), 3, 0) })
	require.Equal(t, "modulus is zero", detail)
	detail = requirePrecondition(t, "modpow.SimpleBinaryModPow", func() { SimpleBinaryModPow(uint64(7), 3, 0) })
	require.Equal(t, "modulus is zero", detail)
	requirePrecondition(t, "modpow.MulModPrecomputed", func() { MulModPrecomputed(uint64(3), 497, 497, ctx) })
	requirePrecondition(t, "modpow.ModPow", func() { ModPow(uint16(0), 1, 0) })
}

func TestModPow_NarrowWidths(t *testing.T) {
	t.Parallel()

	exps := []uint64{0, 1, 2, 3, 7, 64, 255, 1 << 40, math.MaxUint64}

	t.Run("uint8 exhaustive", func(t *testing.T) {
		t.Parallel()
		for m := 1; m <= math.MaxUint8; m++ {
			ctx := PrecomputeNarrow(uint8(m))
			for x := 0; x < m; x++ {
				for _, e := range exps {
					want := SimpleBinaryModPow(uint8(x), e, uint8(m))
					if got := ModPowPrecomputedNarrow(uint8(x), e, uint8(m), ctx); got != want {
						t.Fatalf("%d^%d mod %d: got %d, want %d", x, e, m, got, want)
					}
				}
			}
		}
	})

	t.Run("uint16 sampled", func(t *testing.T) {
		t.Parallel()
		for _, m := range []uint16{1, 2, 255, 256, 257, 40000, math.MaxUint16} {
			ctx := PrecomputeNarrow(m)
			for _, x := range []uint16{0, 1, m / 3, m / 2, m - 1} {
				if x >= m {
					continue
				}
				for _, e := range exps {
					require.Equal(t, SimpleBinaryModPow(x, e, m), ModPowPrecomputedNarrow(x, e, m, ctx),
						"%d^%d mod %d", x, e, m)
					require.Equal(t, SimpleBinaryModPow(x, e, m), ModPow(x, e, m))
				}
			}
		}
	})

	t.Run("uint and Word", func(t *testing.T) {
		t.Parallel()
		m := uint(497)
		require.Equal(t, uint(445), ModPow(uint(4), 13, m))
		require.Equal(t, uint(445), ModPowPrecomputed(uint(4), 13, m, Precompute(m)))
		w := arith.Word(30)
		require.Equal(t, arith.Word(25), ModPowPrecomputed(arith.Word(5), 8, w, Precompute(w)))
	})
}

func TestMulModPrecomputed(t *testing.T) {
	t.Parallel()
	moduli := []uint64{1, 2, 3, 30, 497, 1000000007, 1 << 63, (1 << 63) + 1, math.MaxUint64}
	for _, m := range moduli {
		ctx := Precompute(m)
		bm := new(big.Int).SetUint64(m)
		operands := []uint64{0, 1, m / 3, m / 2, m - 1}
		for _, x := range operands {
			for _, y := range operands {
				if x >= m || y >= m {
					continue
				}
				want := new(big.Int).Mul(new(big.Int).SetUint64(x), new(big.Int).SetUint64(y))
				want.Mod(want, bm)
				require.Equal(t, want.Uint64(), MulModPrecomputed(x, y, m, ctx), "%d*%d mod %d", x, y, m)
			}
		}
	}
}

func TestModPowPrecomputed_Purity(t *testing.T) {
	t.Parallel()
	m := uint64(1000000007)
	ctx := Precompute(m)
	first := ModPowPrecomputed(uint64(12345), 987654321, m, ctx)
	for i := 0; i < 10; i++ {
		require.Equal(t, first, ModPowPrecomputed(uint64(12345), 987654321, m, ctx))
	}
	require.Equal(t, Precompute(m), ctx)
}

func TestReduceLimbs(t *testing.T) {
	t.Parallel()

	vectors := [][]arith.Word{
		nil,
		{0},
		{5},
		{^arith.Word(0)},
		{^arith.Word(0), ^arith.Word(0), ^arith.Word(0)},
		{1, 2, 3, 4, 5, 6, 7, 8},
		{0, 0, 0, 1},
	}
	moduli := []arith.Word{1, 2, 3, 10, 497, 1 << (arith.W - 1), ^arith.Word(0)}

	for _, m := range moduli {
		ctx := Precompute(m)
		for _, xs := range vectors {
			want := new(big.Int).SetBits(append([]big.Word(nil), xs...))
			want.Mod(want, new(big.Int).SetUint64(uint64(m)))
			require.Equal(t, want.Uint64(), uint64(ReduceLimbs(xs, m, ctx)), "xs=%v m=%d", xs, m)
		}
	}

	requirePrecondition(t, "modpow.ReduceLimbs", func() {
		ReduceLimbs([]arith.Word{1}, 0, Context[arith.Word]{})
	})
}

func BenchmarkModPowPrecomputed64(b *testing.B) {
	m := uint64(0xFFFFFFFFFFFFFFC5)
	ctx := Precompute(m)
	for i := 0; i < b.N; i++ {
		ModPowPrecomputed(uint64(i)%m, 0xDEADBEEFCAFEBABE, m, ctx)
	}
}

func BenchmarkSimpleBinaryModPow64(b *testing.B) {
	m := uint64(0xFFFFFFFFFFFFFFC5)
	for i := 0; i < b.N; i++ {
		SimpleBinaryModPow(uint64(i)%m, 0xDEADBEEFCAFEBABE, m)
	}
}

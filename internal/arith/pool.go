// This file provides pooled scratch buffers so that repeated kernel calls
// (GCD loops, calibration probes) do not churn the garbage collector.

package arith

import (
	"math/bits"
	"sync"
)

// ─────────────────────────────────────────────────────────────────────────────
// Word Slice Pools
// ─────────────────────────────────────────────────────────────────────────────

// wordSlicePools pools []Word slices by size class: 64, 256, 1K, 4K, 16K, 64K,
// 256K and 1M limbs.
var wordSlicePools = [...]sync.Pool{
	{New: func() any { return make([]Word, 64) }},
	{New: func() any { return make([]Word, 256) }},
	{New: func() any { return make([]Word, 1024) }},
	{New: func() any { return make([]Word, 4096) }},
	{New: func() any { return make([]Word, 16384) }},
	{New: func() any { return make([]Word, 65536) }},
	{New: func() any { return make([]Word, 262144) }},
	{New: func() any { return make([]Word, 1048576) }}, // 1M words = 8MB on 64-bit
}

// wordSliceSizes defines the size classes for word slice pools.
var wordSliceSizes = [...]int{64, 256, 1024, 4096, 16384, 65536, 262144, 1048576}

// wordSlicePoolIndex returns the pool index for a given size, or -1 if the
// size is too large for pooling.
//
// Sizes are powers of 4 starting from 4^3 = 64, so index i holds 4^(i+3) and
// bits.Len(size-1) maps directly onto the index.
func wordSlicePoolIndex(size int) int {
	if size <= 0 {
		return 0
	}
	if size > wordSliceSizes[len(wordSliceSizes)-1] {
		return -1
	}
	idx := (bits.Len(uint(size-1)) - 5) / 2
	if idx < 0 {
		idx = 0
	}
	return idx
}

// wordSlicePoolIndexLinear is the linear-scan equivalent of
// wordSlicePoolIndex, kept to cross-check it in tests.
func wordSlicePoolIndexLinear(size int) int {
	for i, s := range wordSliceSizes {
		if size <= s {
			return i
		}
	}
	return -1
}

// AcquireScratch returns a slice of exactly size limbs with unspecified
// contents. Release it with ReleaseWords:
//
//	scratch := arith.AcquireScratch(n)
//	defer arith.ReleaseWords(scratch)
func AcquireScratch(size int) []Word {
	idx := wordSlicePoolIndex(size)
	if idx < 0 {
		return make([]Word, size)
	}
	s := wordSlicePools[idx].Get().([]Word)
	return s[:size]
}

// ReleaseWords returns a slice obtained from AcquireScratch to
// its pool. Slices whose capacity is not a pool size class are left to the
// garbage collector. Safe to call with nil.
func ReleaseWords(s []Word) {
	if s == nil {
		return
	}
	c := cap(s)
	idx := wordSlicePoolIndex(c)
	if idx >= 0 && wordSliceSizes[idx] == c {
		wordSlicePools[idx].Put(s[:c])
	}
}

// PreWarm places count buffers of the size class serving size limbs into
// the pool, so that a tight loop of kernel calls starts without allocation.
func PreWarm(size, count int) {
	idx := wordSlicePoolIndex(size)
	if idx < 0 {
		return
	}
	for i := 0; i < count; i++ {
		wordSlicePools[idx].Put(make([]Word, wordSliceSizes[idx]))
	}
}

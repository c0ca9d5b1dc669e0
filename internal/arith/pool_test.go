package arith

import "testing"

func TestAcquireScratch_Length(t *testing.T) {
	t.Parallel()
	for _, size := range []int{0, 1, 63, 64, 65, 4096, 300000} {
		s := AcquireScratch(size)
		if len(s) != size {
			t.Errorf("AcquireScratch(%d) got length %d", size, len(s))
		}
		ReleaseWords(s)
	}
}

func TestReleaseWords_NilAndForeign(t *testing.T) {
	t.Parallel()
	ReleaseWords(nil)
	ReleaseWords(make([]Word, 100)) // capacity is not a size class; ignored
}

func TestWordSlicePoolIndexConsistency(t *testing.T) {
	t.Parallel()
	maxSize := wordSliceSizes[len(wordSliceSizes)-1]
	for size := 0; size <= maxSize+100; size += 7 {
		got := wordSlicePoolIndex(size)
		want := wordSlicePoolIndexLinear(size)
		if size == 0 {
			want = 0
		}
		if got != want {
			t.Fatalf("wordSlicePoolIndex(%d): got %d, want %d", size, got, want)
		}
	}
}

func TestWordSlicePoolIndexBoundaries(t *testing.T) {
	t.Parallel()
	for i, size := range wordSliceSizes {
		if got := wordSlicePoolIndex(size); got != i {
			t.Errorf("wordSlicePoolIndex(%d) = %d, want %d", size, got, i)
		}
		if i > 0 {
			if got := wordSlicePoolIndex(wordSliceSizes[i-1] + 1); got != i {
				t.Errorf("wordSlicePoolIndex(%d) = %d, want %d", wordSliceSizes[i-1]+1, got, i)
			}
		}
	}
	if got := wordSlicePoolIndex(wordSliceSizes[len(wordSliceSizes)-1] + 1); got != -1 {
		t.Errorf("wordSlicePoolIndex(max+1) = %d, want -1", got)
	}
}

func TestPreWarm(t *testing.T) {
	t.Parallel()
	PreWarm(500, 2)
	PreWarm(10_000_000, 1) // beyond the largest class; no-op
	s := AcquireScratch(500)
	if cap(s) != 1024 {
		t.Errorf("expected a 1024-limb class buffer, got cap %d", cap(s))
	}
	ReleaseWords(s)
}

func BenchmarkAcquireScratch(b *testing.B) {
	for i := 0; i < b.N; i++ {
		s := AcquireScratch(3000)
		ReleaseWords(s)
	}
}

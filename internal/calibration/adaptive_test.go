package calibration

import (
	"slices"
	"testing"
)

func TestGenerateProbeSizes(t *testing.T) {
	t.Parallel()

	sizes := GenerateProbeSizes(32)
	want := []int{8, 16, 24, 32, 40, 48, 64, 96, 128}
	if !slices.Equal(sizes, want) {
		t.Errorf("GenerateProbeSizes(32) = %v, want %v", sizes, want)
	}

	for _, estimate := range []int{-5, 0, 1, 7, 30, 45, 1000} {
		sizes := GenerateProbeSizes(estimate)
		if len(sizes) == 0 {
			t.Fatalf("GenerateProbeSizes(%d) returned no sizes", estimate)
		}
		if !slices.IsSorted(sizes) {
			t.Errorf("GenerateProbeSizes(%d) = %v is not sorted", estimate, sizes)
		}
		if len(slices.Compact(slices.Clone(sizes))) != len(sizes) {
			t.Errorf("GenerateProbeSizes(%d) = %v has duplicates", estimate, sizes)
		}
		if sizes[0] < 2 {
			t.Errorf("GenerateProbeSizes(%d) starts below two limbs: %v", estimate, sizes)
		}
	}
}

func TestGenerateQuickProbeSizes(t *testing.T) {
	t.Parallel()
	if got := GenerateQuickProbeSizes(30); !slices.Equal(got, []int{15, 30, 60}) {
		t.Errorf("GenerateQuickProbeSizes(30) = %v", got)
	}
	if got := GenerateQuickProbeSizes(0); !slices.Equal(got, []int{4, 8, 16}) {
		t.Errorf("GenerateQuickProbeSizes(0) = %v", got)
	}
}

func TestCPUFeatures_Stable(t *testing.T) {
	t.Parallel()
	if !slices.Equal(CPUFeatures(), CPUFeatures()) {
		t.Error("CPUFeatures must be deterministic")
	}
}

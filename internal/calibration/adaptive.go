// This file generates probe sizes from the hardware threshold estimate.

package calibration

import "slices"

// probeScale spreads probes around the estimate, in eighths of it.
var probeScale = []int{2, 4, 6, 8, 10, 12, 16, 24, 32}

// GenerateProbeSizes returns probe sizes in limbs bracketing estimate, from
// a quarter of it to four times it, sorted and deduplicated. Sizes below
// two limbs are dropped since both paths coincide there.
func GenerateProbeSizes(estimate int) []int {
	estimate = max(estimate, 8)
	sizes := make([]int, 0, len(probeScale))
	for _, eighths := range probeScale {
		if s := estimate * eighths / 8; s >= 2 {
			sizes = append(sizes, s)
		}
	}
	slices.Sort(sizes)
	return slices.Compact(sizes)
}

// GenerateQuickProbeSizes returns a short list for a fast sanity run.
func GenerateQuickProbeSizes(estimate int) []int {
	estimate = max(estimate, 8)
	return []int{estimate / 2, estimate, estimate * 2}
}

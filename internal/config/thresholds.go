package config

import (
	"runtime"

	"github.com/agbru/limbkern/internal/matrix22"
)

// Strassen threshold resolution chain (highest priority first):
//   1. CLI flag (-strassen-threshold)
//   2. Environment variable (LIMBKERN_STRASSEN_THRESHOLD)
//   3. Cached calibration profile (~/.limbkern_calibration.json)
//   4. Hardware estimation (this file)

// ApplyAdaptiveThresholds fills a zero StrassenThreshold with a hardware
// estimate. Non-zero values are user overrides and are kept.
func ApplyAdaptiveThresholds(cfg AppConfig) AppConfig {
	if cfg.StrassenThreshold == 0 {
		cfg.StrassenThreshold = EstimateOptimalStrassenThreshold()
	}
	return cfg
}

// EstimateOptimalStrassenThreshold estimates, without benchmarking, the limb
// length from which the seven-multiplication matrix product wins.
func EstimateOptimalStrassenThreshold() int {
	return estimateStrassenThreshold(runtime.GOARCH, 32<<(^uint(0)>>63))
}

func estimateStrassenThreshold(goarch string, wordSize int) int {
	switch {
	case wordSize == 32:
		// Narrow limbs make each schoolbook product cheaper relative to the
		// extra additions of the seven-multiplication schedule.
		return matrix22.StrassenThreshold + matrix22.StrassenThreshold/2
	case goarch == "amd64" || goarch == "arm64":
		return matrix22.StrassenThreshold
	default:
		return matrix22.StrassenThreshold + 10
	}
}

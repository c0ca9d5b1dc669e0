package tui

// sparklineChars maps values 0..7 to Unicode block elements ▁▂▃▄▅▆▇█.
var sparklineChars = [8]rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

// RenderSparkline converts values (0..100) into a sparkline string using Unicode blocks.
func RenderSparkline(values []float64) string {
	if len(values) == 0 {
		return ""
	}
	runes := make([]rune, len(values))
	for i, v := range values {
		v = min(max(v, 0), 100)
		idx := min(int(v/100.0*7.0), 7)
		runes[i] = sparklineChars[idx]
	}
	return string(runes)
}

// speedupPercents scales speedups onto 0..100 against the largest one, so
// the sparkline shows where the Strassen advantage grows.
func speedupPercents(speedups []float64) []float64 {
	peak := 0.0
	for _, s := range speedups {
		peak = max(peak, s)
	}
	out := make([]float64, len(speedups))
	if peak == 0 {
		return out
	}
	for i, s := range speedups {
		out[i] = s / peak * 100
	}
	return out
}

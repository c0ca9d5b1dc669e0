package tui

import "testing"

func TestRenderSparkline(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name   string
		values []float64
		want   string
	}{
		{"empty", nil, ""},
		{"range", []float64{0, 50, 100}, "▁▄█"},
		{"clamped", []float64{-10, 150}, "▁█"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := RenderSparkline(tt.values); got != tt.want {
				t.Errorf("RenderSparkline(%v) = %q, want %q", tt.values, got, tt.want)
			}
		})
	}
}

func TestSpeedupPercents(t *testing.T) {
	t.Parallel()
	got := speedupPercents([]float64{0.5, 1, 2})
	want := []float64{25, 50, 100}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("speedupPercents[%d] = %v, want %v", i, got[i], want[i])
		}
	}
	for _, v := range speedupPercents([]float64{0, 0}) {
		if v != 0 {
			t.Errorf("Expected zeros, got %v", v)
		}
	}
}

func TestDefaultKeyMap(t *testing.T) {
	t.Parallel()
	km := DefaultKeyMap()
	if !km.Quit.Enabled() || len(km.Quit.Keys()) == 0 {
		t.Error("Expected an enabled quit binding")
	}
}

// Package metrics collects calibration measurements: Prometheus histograms
// on a private registry, exported as a text file, and runtime memory readings.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder holds the calibration metrics. Each Recorder owns its registry so
// concurrent runs and tests never share state with the global one.
type Recorder struct {
	registry   *prometheus.Registry
	probe      *prometheus.HistogramVec
	probes     *prometheus.CounterVec
	mismatches prometheus.Counter
	threshold  prometheus.Gauge
	allocated  *prometheus.CounterVec
}

// NewRecorder creates a Recorder with a fresh registry.
func NewRecorder() *Recorder {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)
	return &Recorder{
		registry: reg,
		probe: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "limbkern_matrix22_probe_seconds",
			Help:    "Wall time of one timed matrix22 product, by path and size in limbs.",
			Buckets: prometheus.ExponentialBuckets(1e-7, 2, 24),
		}, []string{"path", "size"}),
		probes: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "limbkern_calibration_probes_total",
			Help: "Calibration probes run, by outcome.",
		}, []string{"outcome"}),
		mismatches: factory.NewCounter(prometheus.CounterOpts{
			Name: "limbkern_calibration_mismatches_total",
			Help: "Probes whose schoolbook and Strassen outputs differed.",
		}),
		threshold: factory.NewGauge(prometheus.GaugeOpts{
			Name: "limbkern_strassen_threshold_limbs",
			Help: "Strassen threshold chosen by the last calibration.",
		}),
		allocated: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "limbkern_matrix22_allocated_bytes_total",
			Help: "Heap bytes allocated while timing a path.",
		}, []string{"path"}),
	}
}

// Registry exposes the recorder's registry as a Gatherer.
func (r *Recorder) Registry() prometheus.Gatherer { return r.registry }

// ObserveProbe records the per-call duration of one timed path.
func (r *Recorder) ObserveProbe(path string, size int, perCall time.Duration) {
	r.probe.WithLabelValues(path, strconv.Itoa(size)).Observe(perCall.Seconds())
}

// ObserveAllocated adds the bytes a path allocated while it was timed.
func (r *Recorder) ObserveAllocated(path string, bytes uint64) {
	r.allocated.WithLabelValues(path).Add(float64(bytes))
}

// ProbeDone counts a finished probe; outcome is "ok", "mismatch" or "error".
func (r *Recorder) ProbeDone(outcome string) {
	r.probes.WithLabelValues(outcome).Inc()
	if outcome == "mismatch" {
		r.mismatches.Inc()
	}
}

// SetThreshold records the chosen Strassen threshold.
func (r *Recorder) SetThreshold(limbs int) {
	r.threshold.Set(float64(limbs))
}

// WriteTextfile writes every metric to path in the text exposition format,
// atomically, for node_exporter's textfile collector.
func (r *Recorder) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, r.registry)
}

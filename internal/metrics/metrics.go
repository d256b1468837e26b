package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Recorder collects per-run generation metrics on its own registry, so
// several generators in one process do not clash.
type Recorder struct {
	Registry  *prometheus.Registry
	generated *prometheus.CounterVec
	failures  *prometheus.CounterVec
	duration  prometheus.Histogram
}

// New creates a Recorder with its collectors registered.
func New() *Recorder {
	r := &Recorder{
		Registry: prometheus.NewRegistry(),
		generated: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "gensvc_units_generated_total",
				Help: "Total number of service descriptors written",
			},
			[]string{"sink"},
		),
		failures: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "gensvc_unit_failures_total",
				Help: "Total number of service descriptors that could not be written",
			},
			[]string{"sink"},
		),
		duration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "gensvc_generation_duration_seconds",
				Help:    "Duration of complete generation runs",
				Buckets: prometheus.ExponentialBuckets(0.001, 4, 8),
			},
		),
	}
	r.Registry.MustRegister(r.generated, r.failures, r.duration)
	return r
}

// Generated records one written descriptor.
func (r *Recorder) Generated(sink string) {
	r.generated.WithLabelValues(sink).Inc()
}

// Failed records one descriptor that could not be written.
func (r *Recorder) Failed(sink string) {
	r.failures.WithLabelValues(sink).Inc()
}

// ObserveRun records the duration of a whole run.
func (r *Recorder) ObserveRun(d time.Duration) {
	r.duration.Observe(d.Seconds())
}

// WriteTextfile writes the metrics in the node_exporter textfile format.
func (r *Recorder) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, r.Registry); err != nil {
		return fmt.Errorf("failed to write metrics textfile: %w", err)
	}
	return nil
}

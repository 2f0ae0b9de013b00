package common

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

type Metrics struct {
	BenchDurationSeconds *prometheus.HistogramVec
	BenchBytesTotal      *prometheus.CounterVec
	BenchFailuresTotal   *prometheus.CounterVec
}

func NewMetrics(registry *prometheus.Registry) *Metrics {
	metrics := &Metrics{
		BenchDurationSeconds: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name: "bench_duration_seconds",
				Help: "Wall-clock duration of a single benchmark invocation",
				// 1us .. ~16min
				Buckets: prometheus.ExponentialBuckets(1e-6, 4, 16),
			},
			[]string{"benchmark"},
		),
		BenchBytesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "bench_bytes_total",
				Help: "Bytes processed by benchmark invocations",
			},
			[]string{"benchmark"},
		),
		BenchFailuresTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "bench_failures_total",
				Help: "Benchmark invocations that returned an error",
			},
			[]string{"benchmark"},
		),
	}

	registry.MustRegister(
		metrics.BenchDurationSeconds,
		metrics.BenchBytesTotal,
		metrics.BenchFailuresTotal,
	)

	return metrics
}

func (metrics *Metrics) Observe(name string, elapsed time.Duration) {
	metrics.BenchDurationSeconds.WithLabelValues(name).Observe(elapsed.Seconds())
}

func (metrics *Metrics) AddBytes(name string, bytes uint64) {
	metrics.BenchBytesTotal.WithLabelValues(name).Add(float64(bytes))
}

func (metrics *Metrics) Fail(name string) {
	metrics.BenchFailuresTotal.WithLabelValues(name).Inc()
}

// TelemetryExporter owns a registry and dumps it in the text exposition
// format, for pickup by node_exporter's textfile collector.
type TelemetryExporter struct {
	path     string
	registry *prometheus.Registry
	metrics  *Metrics
}

func NewTelemetryExporter(path string) *TelemetryExporter {
	telemetry := &TelemetryExporter{
		path:     path,
		registry: prometheus.NewRegistry(),
	}

	buildInfo := prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "bench_build_info",
			Help: "Build metadata",
		},
		[]string{"version", "git_commit"},
	)

	telemetry.registry.MustRegister(buildInfo)
	buildInfo.WithLabelValues(Version, GitCommit).Set(1)

	telemetry.metrics = NewMetrics(telemetry.registry)

	return telemetry
}

func (telemetry *TelemetryExporter) GetRegistry() *prometheus.Registry {
	return telemetry.registry
}

func (telemetry *TelemetryExporter) GetMetrics() *Metrics {
	return telemetry.metrics
}

func (telemetry *TelemetryExporter) Enabled() bool {
	return telemetry.path != ""
}

// Write is a no-op when no path was configured.
func (telemetry *TelemetryExporter) Write() error {
	if !telemetry.Enabled() {
		return nil
	}

	if err := prometheus.WriteToTextfile(telemetry.path, telemetry.registry); err != nil {
		return fmt.Errorf("WriteToTextfile: %w", err)
	}
	return nil
}

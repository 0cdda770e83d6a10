package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Translation run metrics
var (
	TranslationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tlsubs_translations_total",
			Help: "Total number of translation runs by outcome.",
		},
		[]string{"status"},
	)

	StepDurationSeconds = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "tlsubs_step_duration_seconds",
			Help:    "Duration of each browser pipeline step.",
			Buckets: []float64{0.1, 0.5, 1, 2.5, 5, 10, 30, 60, 120, 300},
		},
		[]string{"step", "status"},
	)

	TranslatedBytes = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "tlsubs_translated_bytes",
			Help: "Size of the last translated subtitle file.",
		},
	)
)

// Status label values
const (
	StatusSuccess = "success"
	StatusError   = "error"
	StatusTimeout = "timeout"
)

func init() {
	prometheus.MustRegister(
		TranslationsTotal,
		StepDurationSeconds,
		TranslatedBytes,
	)
}

// WriteTextfile writes every registered metric to path in the Prometheus
// text format, for node_exporter's textfile collector.
func WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, prometheus.DefaultGatherer)
}

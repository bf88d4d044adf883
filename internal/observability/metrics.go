package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for the
// report pipeline.
type Metrics struct {
	LoadsAttempted prometheus.Counter
	LoadsSucceeded prometheus.Counter
	LoadsFailed    prometheus.Counter
	LoadDuration   prometheus.Histogram

	RowsDecoded   prometheus.Counter
	RowsDiscarded prometheus.Counter
	ParseFailures *prometheus.CounterVec // label: field={date,coords}

	ObservationsLoaded prometheus.Gauge

	// Kafka export metrics.
	ObservationsExported prometheus.Counter
	ExportErrors         prometheus.Counter
	ExportEnabled        prometheus.Gauge
}

// NewMetrics creates and registers all pipeline metrics with the default
// Prometheus registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		LoadsAttempted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "ice_report",
			Name:      "loads_attempted_total",
			Help:      "Total sheet load attempts.",
		}),
		LoadsSucceeded: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "ice_report",
			Name:      "loads_succeeded_total",
			Help:      "Total sheet loads that replaced the working set.",
		}),
		LoadsFailed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "ice_report",
			Name:      "loads_failed_total",
			Help:      "Total sheet loads aborted by transport or decode failure.",
		}),
		LoadDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "ice_report",
			Name:      "load_duration_seconds",
			Help:      "Duration of a complete fetch-decode-normalize cycle.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}),
		RowsDecoded: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "ice_report",
			Name:      "rows_decoded_total",
			Help:      "Total raw rows decoded from sheet exports.",
		}),
		RowsDiscarded: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "ice_report",
			Name:      "rows_discarded_total",
			Help:      "Total fully blank rows dropped at load time.",
		}),
		ParseFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "ice_report",
			Name:      "parse_failures_total",
			Help:      "Cells with non-empty raw text that matched no recognized pattern.",
		}, []string{"field"}),
		ObservationsLoaded: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "ice_report",
			Name:      "observations_loaded",
			Help:      "Observations in the current working set.",
		}),
		ObservationsExported: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "ice_report",
			Name:      "observations_exported_total",
			Help:      "Observations published to the export topic.",
		}),
		ExportErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "ice_report",
			Name:      "export_errors_total",
			Help:      "Failed export publishes.",
		}),
		ExportEnabled: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "ice_report",
			Name:      "export_enabled",
			Help:      "1 when the Kafka exporter is enabled, 0 otherwise.",
		}),
	}

	prometheus.MustRegister(
		m.LoadsAttempted,
		m.LoadsSucceeded,
		m.LoadsFailed,
		m.LoadDuration,
		m.RowsDecoded,
		m.RowsDiscarded,
		m.ParseFailures,
		m.ObservationsLoaded,
		m.ObservationsExported,
		m.ExportErrors,
		m.ExportEnabled,
	)

	return m
}

// NewMetricsForTesting creates Metrics without registering them, to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return &Metrics{
		LoadsAttempted:       prometheus.NewCounter(prometheus.CounterOpts{Namespace: "ice_report", Name: "loads_attempted_total"}),
		LoadsSucceeded:       prometheus.NewCounter(prometheus.CounterOpts{Namespace: "ice_report", Name: "loads_succeeded_total"}),
		LoadsFailed:          prometheus.NewCounter(prometheus.CounterOpts{Namespace: "ice_report", Name: "loads_failed_total"}),
		LoadDuration:         prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "ice_report", Name: "load_duration_seconds"}),
		RowsDecoded:          prometheus.NewCounter(prometheus.CounterOpts{Namespace: "ice_report", Name: "rows_decoded_total"}),
		RowsDiscarded:        prometheus.NewCounter(prometheus.CounterOpts{Namespace: "ice_report", Name: "rows_discarded_total"}),
		ParseFailures:        prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "ice_report", Name: "parse_failures_total"}, []string{"field"}),
		ObservationsLoaded:   prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "ice_report", Name: "observations_loaded"}),
		ObservationsExported: prometheus.NewCounter(prometheus.CounterOpts{Namespace: "ice_report", Name: "observations_exported_total"}),
		ExportErrors:         prometheus.NewCounter(prometheus.CounterOpts{Namespace: "ice_report", Name: "export_errors_total"}),
		ExportEnabled:        prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "ice_report", Name: "export_enabled"}),
	}
}

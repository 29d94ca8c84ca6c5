package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "gapdash"

var (
	// HTTPRequests counts served requests.
	// Labels: method, route (registered pattern), status
	HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "Total HTTP requests by method, route and status",
	}, []string{"method", "route", "status"})

	// HTTPRequestDuration measures handler latency.
	// Labels: method, route
	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "HTTP request latency in seconds",
		Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
	}, []string{"method", "route"})

	// ChartRenders counts SVG chart lookups.
	// Labels: kind (bar, bubble, histogram, scatter), result (hit, miss, error)
	ChartRenders = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "chart",
		Name:      "renders_total",
		Help:      "Chart render requests by kind and cache result",
	}, []string{"kind", "result"})

	// DatasetRows is the number of rows in the loaded snapshot.
	DatasetRows = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: "dataset",
		Name:      "rows",
		Help:      "Rows in the loaded dataset snapshot",
	})

	// DatasetLoadSeconds is how long the startup download and parse took.
	DatasetLoadSeconds = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: "dataset",
		Name:      "load_seconds",
		Help:      "Time spent downloading and parsing the dataset at startup",
	})
)

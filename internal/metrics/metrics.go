package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP Metrics
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameHTTPRequestsTotal,
			Help: HelpTextHTTPRequestsTotal,
		},
		[]string{LabelMethod, LabelPath, LabelStatus},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    MetricNameHTTPRequestDuration,
			Help:    HelpTextHTTPRequestDuration,
			Buckets: HTTPLatencyBuckets,
		},
		[]string{LabelMethod, LabelPath},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNameHTTPRequestsInFlight,
			Help: HelpTextHTTPRequestsInFlight,
		},
	)
)

// State Metrics
var (
	StateWrites = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameStateWrites,
			Help: HelpTextStateWrites,
		},
		[]string{LabelOperation},
	)

	StateRejections = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameStateRejections,
			Help: HelpTextStateRejections,
		},
		[]string{LabelOperation},
	)

	CorruptStateReads = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameCorruptStateReads,
			Help: HelpTextCorruptStateReads,
		},
	)

	MigrationFallbacks = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameMigrationFallbacks,
			Help: HelpTextMigrationFallbacks,
		},
		[]string{LabelVersion},
	)

	FileTransfers = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameFileTransfers,
			Help: HelpTextFileTransfers,
		},
		[]string{LabelDirection, LabelResult},
	)
)

// Planner Metrics
var (
	ShortfallComputed = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameShortfallComputed,
			Help: HelpTextShortfallComputed,
		},
	)

	ShortfallCacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameShortfallCacheHits,
			Help: HelpTextShortfallCacheHits,
		},
	)

	CatalogEntries = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: MetricNameCatalogEntries,
			Help: HelpTextCatalogEntries,
		},
		[]string{LabelTable},
	)
)

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

// Lock Metrics
var (
	LockAcquisitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameLockAcquisitions,
			Help: HelpTextLockAcquisitions,
		},
		[]string{LabelOperation},
	)

	LockTimeouts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameLockTimeouts,
			Help: HelpTextLockTimeouts,
		},
		[]string{LabelOperation},
	)
)

// Ledger Metrics
var (
	PointsAwarded = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNamePointsAwarded,
			Help: HelpTextPointsAwarded,
		},
		[]string{LabelEntryType},
	)

	PointsSpent = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNamePointsSpent,
			Help: HelpTextPointsSpent,
		},
	)
)

// Mail Queue Metrics
var (
	JobsProcessed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameJobsProcessed,
			Help: HelpTextJobsProcessed,
		},
		[]string{LabelResult},
	)

	JobsDeadLettered = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameJobsDeadLettered,
			Help: HelpTextJobsDeadLettered,
		},
	)

	QueueDepth = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNameQueueDepth,
			Help: HelpTextQueueDepth,
		},
	)

	DeadLetterDepth = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNameDeadLetterDepth,
			Help: HelpTextDeadLetterDepth,
		},
	)
)

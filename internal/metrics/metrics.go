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

// Link Flow Metrics
var (
	LinkFlowsStarted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameLinkFlowsStarted,
			Help: HelpTextLinkFlowsStarted,
		},
		[]string{LabelProvider},
	)

	LinkFlowsCompleted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameLinkFlowsCompleted,
			Help: HelpTextLinkFlowsCompleted,
		},
		[]string{LabelProvider},
	)

	LinkFlowsFailed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameLinkFlowsFailed,
			Help: HelpTextLinkFlowsFailed,
		},
		[]string{LabelProvider, LabelReason},
	)

	NotificationFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameNotifyFailures,
			Help: HelpTextNotifyFailures,
		},
	)
)

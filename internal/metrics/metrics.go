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

// Event Metrics
var (
	EventsPublished = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameEventsPublished,
			Help: HelpTextEventsPublished,
		},
		[]string{LabelType},
	)

	EventHandlerErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameEventHandlerErrors,
			Help: HelpTextEventHandlerErrors,
		},
		[]string{LabelType},
	)
)

// Business Metrics
var (
	XPGranted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameXPGranted,
			Help: HelpTextXPGranted,
		},
		[]string{LabelAction},
	)

	LevelUps = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameLevelUps,
			Help: HelpTextLevelUps,
		},
	)

	AchievementsUnlocked = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameAchievementsUnlocked,
			Help: HelpTextAchievementsUnlocked,
		},
		[]string{LabelRarity},
	)

	CaseDraws = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameCaseDraws,
			Help: HelpTextCaseDraws,
		},
		[]string{LabelCase},
	)

	CheckIns = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameCheckIns,
			Help: HelpTextCheckIns,
		},
	)

	VersionConflicts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameVersionConflicts,
			Help: HelpTextVersionConflicts,
		},
		[]string{LabelOp},
	)

	CASRetriesExhausted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameCASRetriesExhausted,
			Help: HelpTextCASRetriesExhausted,
		},
		[]string{LabelOp},
	)
)

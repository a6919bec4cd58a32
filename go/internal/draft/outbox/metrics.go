package outbox

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// MetricsCollector defines the interface for collecting outbox metrics
type MetricsCollector interface {
	RecordEventProcessed(eventType string, success bool, duration time.Duration)
	RecordBatchProcessed(count int, duration time.Duration)
	RecordOutboxLag(lag int)
	RecordPublishAttempt(eventType string, attempt int, success bool)
}

// NoOpMetricsCollector is a no-op implementation for when metrics aren't needed
type NoOpMetricsCollector struct{}

func (n *NoOpMetricsCollector) RecordEventProcessed(eventType string, success bool, duration time.Duration) {
}
func (n *NoOpMetricsCollector) RecordBatchProcessed(count int, duration time.Duration)           {}
func (n *NoOpMetricsCollector) RecordOutboxLag(lag int)                                          {}
func (n *NoOpMetricsCollector) RecordPublishAttempt(eventType string, attempt int, success bool) {}

// PrometheusMetrics implements MetricsCollector using Prometheus
type PrometheusMetrics struct {
	eventCounter    *prometheus.CounterVec
	eventDuration   *prometheus.HistogramVec
	batchSize       prometheus.Histogram
	batchDuration   prometheus.Histogram
	outboxLag       prometheus.Gauge
	publishAttempts *prometheus.CounterVec
}

// NewPrometheusMetrics registers the outbox collectors on reg.
func NewPrometheusMetrics(reg prometheus.Registerer) *PrometheusMetrics {
	factory := promauto.With(reg)
	return &PrometheusMetrics{
		eventCounter: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "cubedraft",
			Subsystem: "outbox",
			Name:      "events_processed_total",
			Help:      "Outbox events relayed, by type and outcome.",
		}, []string{"event_type", "status"}),
		eventDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "cubedraft",
			Subsystem: "outbox",
			Name:      "event_publish_seconds",
			Help:      "Time spent publishing one event, retries included.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"event_type"}),
		batchSize: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: "cubedraft",
			Subsystem: "outbox",
			Name:      "batch_size",
			Help:      "Events relayed per fallback batch.",
			Buckets:   []float64{0, 1, 5, 10, 25, 50, 100},
		}),
		batchDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: "cubedraft",
			Subsystem: "outbox",
			Name:      "batch_seconds",
			Help:      "Time spent relaying one fallback batch.",
			Buckets:   prometheus.DefBuckets,
		}),
		outboxLag: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: "cubedraft",
			Subsystem: "outbox",
			Name:      "pending_events",
			Help:      "Unsent rows in draft_outbox.",
		}),
		publishAttempts: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "cubedraft",
			Subsystem: "outbox",
			Name:      "publish_attempts_total",
			Help:      "Publish attempts, by type, attempt number and outcome.",
		}, []string{"event_type", "attempt", "status"}),
	}
}

func status(success bool) string {
	if success {
		return "success"
	}
	return "failure"
}

func (m *PrometheusMetrics) RecordEventProcessed(eventType string, success bool, duration time.Duration) {
	m.eventCounter.WithLabelValues(eventType, status(success)).Inc()
	m.eventDuration.WithLabelValues(eventType).Observe(duration.Seconds())
}

func (m *PrometheusMetrics) RecordBatchProcessed(count int, duration time.Duration) {
	m.batchSize.Observe(float64(count))
	m.batchDuration.Observe(duration.Seconds())
}

func (m *PrometheusMetrics) RecordOutboxLag(lag int) {
	m.outboxLag.Set(float64(lag))
}

func (m *PrometheusMetrics) RecordPublishAttempt(eventType string, attempt int, success bool) {
	m.publishAttempts.WithLabelValues(eventType, strconv.Itoa(attempt), status(success)).Inc()
}

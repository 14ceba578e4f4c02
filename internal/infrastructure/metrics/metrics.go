package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the SSI bridge
type Metrics struct {
	// Subscription metrics
	SubscriptionRequestsTotal   prometheus.Counter
	SubscriptionRequestErrors   *prometheus.CounterVec
	SubscriptionUpdatesTotal    prometheus.Counter
	SubscriptionDeletesTotal    prometheus.Counter
	SubscriptionRequestDuration prometheus.Histogram

	// Channel metrics
	ChannelsCreatedTotal prometheus.Counter

	// Identity metrics
	IdentitiesCreatedTotal prometheus.Counter

	// Authentication metrics
	AuthProofsTotal   prometheus.Counter
	AuthProofFailures *prometheus.CounterVec

	// Kafka metrics
	KafkaMessagesProduced prometheus.Counter
	KafkaProduceErrors    *prometheus.CounterVec

	// Streams gateway metrics
	StreamsRequestDuration prometheus.Histogram
	StreamsRequestErrors   prometheus.Counter
}

var (
	// DefaultMetrics is the default metrics instance
	DefaultMetrics *Metrics
	once           sync.Once
)

// GetDefaultMetrics returns the singleton metrics instance
func GetDefaultMetrics() *Metrics {
	once.Do(func() {
		DefaultMetrics = NewMetrics()
	})
	return DefaultMetrics
}

func init() {
	GetDefaultMetrics()
}

// NewMetrics creates a new Metrics instance with all counters and gauges
func NewMetrics() *Metrics {
	return &Metrics{
		SubscriptionRequestsTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name: "ssi_bridge_subscription_requests_total",
			Help: "Total number of channel subscription requests",
		}),
		SubscriptionRequestErrors: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ssi_bridge_subscription_request_errors_total",
				Help: "Total number of failed subscription requests",
			},
			[]string{"error_type"},
		),
		SubscriptionUpdatesTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name: "ssi_bridge_subscription_updates_total",
			Help: "Total number of subscription updates",
		}),
		SubscriptionDeletesTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name: "ssi_bridge_subscription_deletes_total",
			Help: "Total number of subscription deletions",
		}),
		SubscriptionRequestDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "ssi_bridge_subscription_request_duration_seconds",
			Help:    "Duration of subscription request flows in seconds",
			Buckets: []float64{0.1, 0.5, 1, 2, 5, 10, 30},
		}),

		ChannelsCreatedTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name: "ssi_bridge_channels_created_total",
			Help: "Total number of channels registered",
		}),

		IdentitiesCreatedTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name: "ssi_bridge_identities_created_total",
			Help: "Total number of identities registered",
		}),

		AuthProofsTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name: "ssi_bridge_auth_proofs_total",
			Help: "Total number of successful ownership proofs",
		}),
		AuthProofFailures: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ssi_bridge_auth_proof_failures_total",
				Help: "Total number of failed ownership proofs",
			},
			[]string{"reason"},
		),

		KafkaMessagesProduced: promauto.NewCounter(prometheus.CounterOpts{
			Name: "ssi_bridge_kafka_messages_produced_total",
			Help: "Total number of messages produced to Kafka",
		}),
		KafkaProduceErrors: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ssi_bridge_kafka_produce_errors_total",
				Help: "Total number of Kafka produce errors",
			},
			[]string{"error_type"},
		),

		StreamsRequestDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "ssi_bridge_streams_request_duration_seconds",
			Help:    "Duration of streams gateway calls in seconds",
			Buckets: []float64{0.1, 0.5, 1, 2.5, 5, 10, 30, 60},
		}),
		StreamsRequestErrors: promauto.NewCounter(prometheus.CounterOpts{
			Name: "ssi_bridge_streams_request_errors_total",
			Help: "Total number of failed streams gateway calls",
		}),
	}
}

// RecordSubscriptionRequest records a successful subscription request
func (m *Metrics) RecordSubscriptionRequest(duration float64) {
	m.SubscriptionRequestsTotal.Inc()
	m.SubscriptionRequestDuration.Observe(duration)
}

// RecordSubscriptionRequestError records a failed subscription request
func (m *Metrics) RecordSubscriptionRequestError(errorType string) {
	if errorType == "" {
		errorType = "unknown"
	}
	m.SubscriptionRequestErrors.WithLabelValues(errorType).Inc()
}

// RecordAuthProofFailure records a failed ownership proof
func (m *Metrics) RecordAuthProofFailure(reason string) {
	if reason == "" {
		reason = "unknown"
	}
	m.AuthProofFailures.WithLabelValues(reason).Inc()
}

// RecordKafkaError records a Kafka production error with error type
func (m *Metrics) RecordKafkaError(errorType string) {
	if errorType == "" {
		errorType = "unknown"
	}
	m.KafkaProduceErrors.WithLabelValues(errorType).Inc()
}

package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the application
type Metrics struct {
	// Feed metrics
	FeedMessagesTotal    *prometheus.CounterVec
	FeedParseErrorsTotal *prometheus.CounterVec
	FeedReconnectsTotal  *prometheus.CounterVec
	FeedGiveUpsTotal     *prometheus.CounterVec
	FeedConnectionState  *prometheus.GaugeVec
	FeedPollsTotal       *prometheus.CounterVec
	FeedPollDuration     prometheus.Histogram

	// Chatbot metrics
	ChatRequestsTotal *prometheus.CounterVec
	ChatDuration      *prometheus.HistogramVec

	// External API metrics
	ExternalAPIRequestsTotal *prometheus.CounterVec
	ExternalAPIErrorsTotal   *prometheus.CounterVec
	ExternalAPIDuration      *prometheus.HistogramVec

	// Database metrics
	DBQueryDuration *prometheus.HistogramVec
	DBQueryTotal    *prometheus.CounterVec
	DBErrorsTotal   *prometheus.CounterVec

	// HTTP metrics
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	// Circuit breaker metrics
	CircuitBreakerState *prometheus.GaugeVec
	CircuitBreakerTrips *prometheus.CounterVec
}

// defaultBuckets are the default histogram buckets for duration metrics (in seconds)
var defaultBuckets = []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10, 30}

// globalMetrics is the global metrics instance
var globalMetrics *Metrics

// NewMetrics creates and registers all Prometheus metrics
func NewMetrics(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	factory := promauto.With(reg)

	m := &Metrics{
		// Feed metrics
		FeedMessagesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "finpulse",
				Subsystem: "feed",
				Name:      "messages_total",
				Help:      "Total number of websocket frames received",
			},
			[]string{"channel", "type"},
		),
		FeedParseErrorsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "finpulse",
				Subsystem: "feed",
				Name:      "parse_errors_total",
				Help:      "Total number of malformed frames dropped",
			},
			[]string{"channel"},
		),
		FeedReconnectsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "finpulse",
				Subsystem: "feed",
				Name:      "reconnects_total",
				Help:      "Total number of reconnection attempts",
			},
			[]string{"channel"},
		),
		FeedGiveUpsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "finpulse",
				Subsystem: "feed",
				Name:      "give_ups_total",
				Help:      "Total number of channels abandoned after exhausting reconnect attempts",
			},
			[]string{"channel"},
		),
		FeedConnectionState: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: "finpulse",
				Subsystem: "feed",
				Name:      "connection_state",
				Help:      "Current channel state (0=disconnected, 1=connecting, 2=connected)",
			},
			[]string{"channel"},
		),
		FeedPollsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "finpulse",
				Subsystem: "feed",
				Name:      "polls_total",
				Help:      "Total number of polling fallback runs by tick source",
			},
			[]string{"source"},
		),
		FeedPollDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: "finpulse",
				Subsystem: "feed",
				Name:      "poll_duration_seconds",
				Help:      "Duration of polling fallback runs in seconds",
				Buckets:   defaultBuckets,
			},
		),

		// Chatbot metrics
		ChatRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "finpulse",
				Subsystem: "chatbot",
				Name:      "requests_total",
				Help:      "Total number of chatbot requests by response category",
			},
			[]string{"category"},
		),
		ChatDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "finpulse",
				Subsystem: "chatbot",
				Name:      "duration_seconds",
				Help:      "Duration of chatbot request processing in seconds",
				Buckets:   defaultBuckets,
			},
			[]string{"category"},
		),

		// External API metrics
		ExternalAPIRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "finpulse",
				Subsystem: "external_api",
				Name:      "requests_total",
				Help:      "Total number of external API requests",
			},
			[]string{"service", "operation"},
		),
		ExternalAPIErrorsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "finpulse",
				Subsystem: "external_api",
				Name:      "errors_total",
				Help:      "Total number of external API errors",
			},
			[]string{"service", "operation", "error_type"},
		),
		ExternalAPIDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "finpulse",
				Subsystem: "external_api",
				Name:      "duration_seconds",
				Help:      "Duration of external API calls in seconds",
				Buckets:   defaultBuckets,
			},
			[]string{"service", "operation"},
		),

		// Database metrics
		DBQueryDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "finpulse",
				Subsystem: "database",
				Name:      "query_duration_seconds",
				Help:      "Duration of database queries in seconds",
				Buckets:   defaultBuckets,
			},
			[]string{"operation", "table"},
		),
		DBQueryTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "finpulse",
				Subsystem: "database",
				Name:      "queries_total",
				Help:      "Total number of database queries",
			},
			[]string{"operation", "table"},
		),
		DBErrorsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "finpulse",
				Subsystem: "database",
				Name:      "errors_total",
				Help:      "Total number of database errors",
			},
			[]string{"operation", "table"},
		),

		// HTTP metrics
		HTTPRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "finpulse",
				Subsystem: "http",
				Name:      "requests_total",
				Help:      "Total number of HTTP requests",
			},
			[]string{"method", "path", "status_code"},
		),
		HTTPRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "finpulse",
				Subsystem: "http",
				Name:      "request_duration_seconds",
				Help:      "Duration of HTTP requests in seconds",
				Buckets:   defaultBuckets,
			},
			[]string{"method", "path"},
		),

		// Circuit breaker metrics
		CircuitBreakerState: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: "finpulse",
				Subsystem: "circuit_breaker",
				Name:      "state",
				Help:      "Current state of circuit breakers (0=closed, 1=half-open, 2=open)",
			},
			[]string{"service"},
		),
		CircuitBreakerTrips: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "finpulse",
				Subsystem: "circuit_breaker",
				Name:      "trips_total",
				Help:      "Total number of circuit breaker trips",
			},
			[]string{"service"},
		),
	}

	return m
}

// InitMetrics initializes the global metrics instance
func InitMetrics() *Metrics {
	globalMetrics = NewMetrics(nil)
	return globalMetrics
}

// GetMetrics returns the global metrics instance
func GetMetrics() *Metrics {
	if globalMetrics == nil {
		return InitMetrics()
	}
	return globalMetrics
}

// SetMetrics overrides the global metrics instance (useful for testing)
func SetMetrics(m *Metrics) {
	globalMetrics = m
}

// RecordFeedMessage records a received websocket frame
func (m *Metrics) RecordFeedMessage(channel, frameType string) {
	m.FeedMessagesTotal.WithLabelValues(channel, frameType).Inc()
}

// RecordFeedParseError records a malformed frame
func (m *Metrics) RecordFeedParseError(channel string) {
	m.FeedParseErrorsTotal.WithLabelValues(channel).Inc()
}

// RecordFeedReconnect records a reconnection attempt
func (m *Metrics) RecordFeedReconnect(channel string) {
	m.FeedReconnectsTotal.WithLabelValues(channel).Inc()
}

// RecordFeedGiveUp records a channel abandoning reconnection
func (m *Metrics) RecordFeedGiveUp(channel string) {
	m.FeedGiveUpsTotal.WithLabelValues(channel).Inc()
}

// SetFeedConnectionState records a channel state transition
func (m *Metrics) SetFeedConnectionState(channel string, state int) {
	m.FeedConnectionState.WithLabelValues(channel).Set(float64(state))
}

// RecordFeedPoll records a polling fallback run and its tick source
func (m *Metrics) RecordFeedPoll(source string, duration time.Duration) {
	m.FeedPollsTotal.WithLabelValues(source).Inc()
	m.FeedPollDuration.Observe(duration.Seconds())
}

// RecordChatRequest records a chatbot request and its duration
func (m *Metrics) RecordChatRequest(category string, duration time.Duration) {
	m.ChatRequestsTotal.WithLabelValues(category).Inc()
	m.ChatDuration.WithLabelValues(category).Observe(duration.Seconds())
}

// RecordExternalAPIRequest records an external API request with duration
func (m *Metrics) RecordExternalAPIRequest(service, operation string, duration time.Duration) {
	m.ExternalAPIRequestsTotal.WithLabelValues(service, operation).Inc()
	m.ExternalAPIDuration.WithLabelValues(service, operation).Observe(duration.Seconds())
}

// RecordExternalAPIError records an external API error
func (m *Metrics) RecordExternalAPIError(service, operation, errorType string) {
	m.ExternalAPIErrorsTotal.WithLabelValues(service, operation, errorType).Inc()
}

// RecordDBQuery records a database query with duration
func (m *Metrics) RecordDBQuery(operation, table string, duration time.Duration) {
	m.DBQueryTotal.WithLabelValues(operation, table).Inc()
	m.DBQueryDuration.WithLabelValues(operation, table).Observe(duration.Seconds())
}

// RecordDBError records a database error
func (m *Metrics) RecordDBError(operation, table string) {
	m.DBErrorsTotal.WithLabelValues(operation, table).Inc()
}

// RecordHTTPRequest records an HTTP request
func (m *Metrics) RecordHTTPRequest(method, path, statusCode string, duration time.Duration) {
	m.HTTPRequestsTotal.WithLabelValues(method, path, statusCode).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

// SetCircuitBreakerState records a circuit breaker state change
func (m *Metrics) SetCircuitBreakerState(service string, state int) {
	m.CircuitBreakerState.WithLabelValues(service).Set(float64(state))
}

// RecordCircuitBreakerTrip records a circuit breaker trip
func (m *Metrics) RecordCircuitBreakerTrip(service string) {
	m.CircuitBreakerTrips.WithLabelValues(service).Inc()
}

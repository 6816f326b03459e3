package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"gorm.io/gorm"
)

var (
	// RedisErrorRate counts Redis errors by operation type.
	RedisErrorRate = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "medconnect_redis_error_rate_total",
		Help: "Total number of Redis errors by operation type",
	}, []string{"operation"})

	// DatabaseQueryLatency records database query latency by operation and table.
	DatabaseQueryLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "medconnect_database_query_latency_seconds",
		Help:    "Database query latency in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation", "table"})

	// ConnectionTransitions counts connection request state transitions.
	ConnectionTransitions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "medconnect_connection_transitions_total",
		Help: "Total connection request transitions by outcome",
	}, []string{"outcome"})

	// PostsCreated counts posts created by visibility.
	PostsCreated = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "medconnect_posts_created_total",
		Help: "Total posts created by visibility",
	}, []string{"visibility"})

	// UploadsTotal counts upload relay attempts by outcome.
	UploadsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "medconnect_uploads_total",
		Help: "Total upload attempts by outcome",
	}, []string{"outcome"})
)

// DatabaseMetrics wraps DB access for recording query latency.
type DatabaseMetrics struct {
	db *gorm.DB
}

// NewDatabaseMetrics returns a new DatabaseMetrics instance.
func NewDatabaseMetrics(db *gorm.DB) *DatabaseMetrics {
	return &DatabaseMetrics{db: db}
}

// ObserveQuery records the latency of a database query.
func (m *DatabaseMetrics) ObserveQuery(operation, table string, start time.Time) {
	latency := time.Since(start).Seconds()
	DatabaseQueryLatency.WithLabelValues(operation, table).Observe(latency)
}

// TrackQuery returns a function that records query latency when called (e.g. defer).
func (m *DatabaseMetrics) TrackQuery(operation, table string) func() {
	start := time.Now()
	return func() {
		m.ObserveQuery(operation, table, start)
	}
}

// RecordConnectionTransition increments the transition counter for an outcome
// such as "requested", "accepted", "rejected" or "removed".
func RecordConnectionTransition(outcome string) {
	ConnectionTransitions.WithLabelValues(outcome).Inc()
}

// RecordPostCreated increments the created-posts counter for a visibility.
func RecordPostCreated(visibility string) {
	PostsCreated.WithLabelValues(visibility).Inc()
}

// RecordUpload increments the uploads counter for "ok" or "failed".
func RecordUpload(outcome string) {
	UploadsTotal.WithLabelValues(outcome).Inc()
}

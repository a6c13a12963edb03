package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// StorefrontMetrics counts session transitions and collection operations.
type StorefrontMetrics struct {
	sessions    *prometheus.CounterVec
	collections *prometheus.CounterVec
	storage     *prometheus.CounterVec
}

// NewStorefrontMetrics registers the storefront metrics on the provided registerer.
func NewStorefrontMetrics(reg prometheus.Registerer) *StorefrontMetrics {
	if reg == nil {
		return &StorefrontMetrics{}
	}
	sessions := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "storefront_session_transitions_total",
		Help: "Session transitions by operation and outcome.",
	}, []string{"op", "outcome"})
	collections := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "storefront_collection_operations_total",
		Help: "User-scoped collection operations by collection, operation and outcome.",
	}, []string{"collection", "op", "outcome"})
	storage := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "storefront_storage_failures_total",
		Help: "Durable storage reads or writes that failed.",
	}, []string{"op"})
	reg.MustRegister(sessions, collections, storage)
	return &StorefrontMetrics{
		sessions:    sessions,
		collections: collections,
		storage:     storage,
	}
}

// IncSession records a login/logout outcome.
func (m *StorefrontMetrics) IncSession(op, outcome string) {
	if m == nil || m.sessions == nil {
		return
	}
	m.sessions.WithLabelValues(normalizeLabel(op), normalizeLabel(outcome)).Inc()
}

// IncCollection records an add/clear outcome for the named collection.
func (m *StorefrontMetrics) IncCollection(collection, op, outcome string) {
	if m == nil || m.collections == nil {
		return
	}
	m.collections.WithLabelValues(normalizeLabel(collection), normalizeLabel(op), normalizeLabel(outcome)).Inc()
}

// IncStorageFailure records a failed durable read or write.
func (m *StorefrontMetrics) IncStorageFailure(op string) {
	if m == nil || m.storage == nil {
		return
	}
	m.storage.WithLabelValues(normalizeLabel(op)).Inc()
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}

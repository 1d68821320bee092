// Package metrics exposes Prometheus collectors for engagement activity,
// notification fan-out and the AI proxy circuit breaker.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// EngagementActionsTotal counts state changes by kind (like, bookmark,
	// rating, comment, follow) and action (add, remove).
	EngagementActionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cookbook_engagement_actions_total",
			Help: "Total number of engagement state changes",
		},
		[]string{"kind", "action"},
	)

	NotificationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cookbook_notifications_total",
			Help: "Notification requests by outcome (created, self, duplicate, failed)",
		},
		[]string{"type", "outcome"},
	)

	BestEffortFailuresTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cookbook_best_effort_failures_total",
			Help: "Swallowed failures of side effects that must not fail the request",
		},
		[]string{"operation"},
	)

	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "cookbook_circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	CircuitBreakerRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cookbook_circuit_breaker_requests_total",
			Help: "Requests through a circuit breaker by result (success, failure, rejected)",
		},
		[]string{"name", "result"},
	)
)

func RecordEngagement(kind, action string) {
	EngagementActionsTotal.WithLabelValues(kind, action).Inc()
}

func RecordNotification(notificationType, outcome string) {
	NotificationsTotal.WithLabelValues(notificationType, outcome).Inc()
}

func RecordBestEffortFailure(operation string) {
	BestEffortFailuresTotal.WithLabelValues(operation).Inc()
}

package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Request-level counters exposed on GET /metrics.
var (
	IngestedRecords = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "loghive_ingested_records_total",
		Help: "Log records persisted, by tenant and severity.",
	}, []string{"tenant", "severity"})

	LogQueries = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "loghive_log_queries_total",
		Help: "Log list queries served, by tenant.",
	}, []string{"tenant"})

	AuthFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "loghive_auth_failures_total",
		Help: "Requests rejected because the bearer credential matched no tenant.",
	})

	ForbiddenOverrides = promauto.NewCounter(prometheus.CounterOpts{
		Name: "loghive_forbidden_tenant_overrides_total",
		Help: "List queries rejected for naming a tenant other than the authenticated one.",
	})
)

package util

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	UpstreamRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "upstream_requests_total",
		Help: "Total number of requests sent to the upstream API",
	}, []string{"method", "endpoint", "status"})

	UpstreamRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "upstream_request_duration_seconds",
		Help:    "Latency of upstream API requests",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "endpoint"})

	RecalculationsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "order_total_recalculations_total",
		Help: "Total number of order total recalculations pushed upstream",
	})

	RecalculationsFailedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "order_total_recalculations_failed_total",
		Help: "Total number of failed order total recalculations",
	}, []string{"reason"})

	UnresolvedLineItemsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "unresolved_line_items_total",
		Help: "Line items whose product reference was absent from the catalog snapshot",
	})

	ReportsGeneratedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "reports_generated_total",
		Help: "Total number of reports aggregated",
	}, []string{"type"})

	ReportRowsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "report_rows_total",
		Help: "Total number of raw report rows ingested",
	}, []string{"type"})

	SnapshotRefreshTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "snapshot_refresh_total",
		Help: "Total number of catalog snapshot refreshes",
	}, []string{"result"})

	SnapshotCacheHitsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "snapshot_cache_hits_total",
		Help: "Snapshot loads served from the redis cache",
	})

	SnapshotCacheMissesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "snapshot_cache_misses_total",
		Help: "Snapshot loads that fell through to the upstream API",
	})

	AuditEventsPublishedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "audit_events_published_total",
		Help: "Audit events published to the broker",
	}, []string{"type"})

	AuditEventsFailedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "audit_events_failed_total",
		Help: "Audit events that could not be published",
	})

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "HTTP request latency",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})
)

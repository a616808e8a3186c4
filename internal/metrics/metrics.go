package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "HTTP requests by method, path and status.",
	}, []string{"method", "path", "status"})

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "HTTP request latency in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path"})

	QuotationsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "quotations_created_total",
		Help: "Quotation records persisted.",
	})

	PDFRenders = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "quotation_pdf_renders_total",
		Help: "PDF render attempts by outcome.",
	}, []string{"outcome"})

	AllocatorChecks = promauto.NewCounter(prometheus.CounterOpts{
		Name: "quotation_number_checks_total",
		Help: "Uniqueness checks performed by the number allocator.",
	})
)

package httpapi

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	RequestDuration *prometheus.HistogramVec
	TotalRequests   *prometheus.CounterVec
	RateLimited     prometheus.Counter
}

// NewMetrics registers the HTTP collectors on reg. A nil reg gets a private
// registry that nothing scrapes.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.NewRegistry()
	}

	return &Metrics{
		RequestDuration: promauto.With(reg).NewHistogramVec(prometheus.HistogramOpts{
			Name:    "insights_http_request_duration_seconds",
			Help:    "Histogram of request latencies.",
			Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
		}, []string{"route", "method", "status"}),

		TotalRequests: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "insights_http_requests_total",
			Help: "Total number of processed requests.",
		}, []string{"route", "method", "status"}),

		RateLimited: promauto.With(reg).NewCounter(prometheus.CounterOpts{
			Name: "insights_http_rate_limited_total",
			Help: "Requests rejected by the rate limiter.",
		}),
	}
}

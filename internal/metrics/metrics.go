// Package metrics holds the Prometheus collectors exported on /metrics.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	requestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "restaurant_http_requests_total",
		Help: "HTTP requests by method, route and status code",
	}, []string{"method", "route", "code"})

	requestLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "restaurant_http_request_duration_seconds",
		Help:    "HTTP request latency in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route"})

	probeUp = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "restaurant_probe_up",
		Help: "Whether the last /ping found the resource reachable (1) or not (0)",
	}, []string{"resource"})

	reviewsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "restaurant_reviews_created_total",
		Help: "Reviews stored since process start",
	})
)

// ObserveRequest records one served request.
func ObserveRequest(method, route string, code int, elapsed time.Duration) {
	requestsTotal.WithLabelValues(method, route, strconv.Itoa(code)).Inc()
	requestLatency.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

// SetProbeStatus records the outcome of the latest probe of resource.
func SetProbeStatus(resource string, status int) {
	probeUp.WithLabelValues(resource).Set(float64(status))
}

// ReviewCreated counts a stored review.
func ReviewCreated() { reviewsCreated.Inc() }

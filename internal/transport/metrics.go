package transport

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	requestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "codevf",
			Subsystem: "transport",
			Name:      "requests_total",
			Help:      "HTTP requests issued, by method and final status code.",
		},
		[]string{"method", "status"},
	)

	retriesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "codevf",
			Subsystem: "transport",
			Name:      "retries_total",
			Help:      "Retry attempts after retryable failures.",
		},
		[]string{"method"},
	)

	requestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "codevf",
			Subsystem: "transport",
			Name:      "request_duration_seconds",
			Help:      "Single-attempt request latency.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method"},
	)
)

func statusLabel(status int) string {
	if status <= 0 {
		return "error"
	}
	return strconv.Itoa(status)
}

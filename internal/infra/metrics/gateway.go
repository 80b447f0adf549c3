package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	gatewayRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gateway_requests_total",
			Help: "Outbound requests to external data providers by outcome.",
		},
		[]string{"gateway", "operation", "outcome"},
	)

	gatewayRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "gateway_request_duration_seconds",
			Help:    "Latency of outbound provider requests.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"gateway", "operation"},
	)
)

func init() {
	register(gatewayRequestsTotal, gatewayRequestDuration)
}

// ObserveGateway records one provider call.
func ObserveGateway(gateway, operation string, err error, elapsed time.Duration) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	gatewayRequestsTotal.WithLabelValues(gateway, operation, outcome).Inc()
	gatewayRequestDuration.WithLabelValues(gateway, operation).Observe(elapsed.Seconds())
}

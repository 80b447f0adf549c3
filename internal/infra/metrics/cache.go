package metrics

import "github.com/prometheus/client_golang/prometheus"

var cacheOpsTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "cache_ops_total",
		Help: "City lookup cache operations: hit, miss, error.",
	},
	[]string{"cache", "outcome"},
)

func init() {
	register(cacheOpsTotal)
}

func IncCache(cache, outcome string) {
	cacheOpsTotal.WithLabelValues(cache, outcome).Inc()
}

package metrics

import "github.com/prometheus/client_golang/prometheus"

var commandsTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "bot_commands_total",
		Help: "Handled bot commands by outcome.",
	},
	[]string{"command", "outcome"},
)

func init() {
	register(commandsTotal)
}

// IncCommand records one handled command; outcome is "ok" or "error".
func IncCommand(command, outcome string) {
	commandsTotal.WithLabelValues(command, outcome).Inc()
}

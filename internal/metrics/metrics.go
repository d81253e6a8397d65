package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the bot's command handling.
type Metrics struct {
	CommandsHandled *prometheus.CounterVec
	CommandDuration prometheus.Histogram
}

// New creates a Metrics instance with all collectors registered on the
// default registry.
func New() *Metrics {
	return &Metrics{
		CommandsHandled: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "cartobot_commands_handled_total",
			Help: "Total number of bot commands handled, by command and outcome",
		}, []string{"command", "outcome"}),
		CommandDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "cartobot_command_duration_seconds",
			Help:    "Duration of bot command handling",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		}),
	}
}

// ObserveCommand records one handled command. Call with time.Now() taken at
// dispatch.
func (m *Metrics) ObserveCommand(command, outcome string, start time.Time) {
	m.CommandsHandled.WithLabelValues(command, outcome).Inc()
	m.CommandDuration.Observe(time.Since(start).Seconds())
}

package windowstack

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type metrics struct {
	depth     prometheus.Gauge
	opens     *prometheus.CounterVec
	closes    prometheus.Counter
	teardowns *prometheus.CounterVec
}

// newMetrics builds the controller collectors. A nil registerer leaves them
// unregistered, which keeps several controllers in one process from colliding.
func newMetrics(reg prometheus.Registerer) *metrics {
	factory := promauto.With(reg)
	return &metrics{
		// depth tracks the number of pushed screens
		depth: factory.NewGauge(prometheus.GaugeOpts{
			Name: "windowstack_depth",
			Help: "Number of screens pushed above the root",
		}),
		// opens counts presentations by kind (root or push)
		opens: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "windowstack_opens_total",
			Help: "Total number of screens opened by kind",
		}, []string{"kind"}),
		closes: factory.NewCounter(prometheus.CounterOpts{
			Name: "windowstack_closes_total",
			Help: "Total number of tracked screens removed by close notifications",
		}),
		teardowns: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "windowstack_teardowns_total",
			Help: "Total number of teardowns started by mode",
		}, []string{"mode"}),
	}
}

package token

import (
	"github.com/houssamboudiar/mockusdt-tron/common"
	"github.com/prometheus/client_golang/prometheus"
)

const metricsNamespace = "token"

// Metrics groups Prometheus collectors of the Engine. Nil Metrics collects
// nothing.
type Metrics struct {
	operations *prometheus.CounterVec
	height     prometheus.Gauge
}

// NewMetrics initializes Engine collectors. They should be registered with
// Register to be exported.
func NewMetrics() *Metrics {
	return &Metrics{
		operations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Name:      "operations_total",
				Help:      "Number of token operations by kind and result code",
			},
			[]string{"kind", "code"},
		),
		height: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: metricsNamespace,
				Name:      "height",
				Help:      "Number of applied token operations",
			},
		),
	}
}

// Register registers all collectors in r.
func (m *Metrics) Register(r prometheus.Registerer) error {
	for _, c := range []prometheus.Collector{m.operations, m.height} {
		if err := r.Register(c); err != nil {
			return err
		}
	}
	return nil
}

func (m *Metrics) observe(kind Kind, err error) {
	if m == nil {
		return
	}
	m.operations.WithLabelValues(kind.String(), string(common.GetCode(err))).Inc()
}

func (m *Metrics) setHeight(h uint64) {
	if m == nil {
		return
	}
	m.height.Set(float64(h))
}

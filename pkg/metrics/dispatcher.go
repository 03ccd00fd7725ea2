package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const (
	dispatcherSubsystem = "dispatcher"
	operationLabelKey   = "operation"
	resultLabelKey      = "result"
)

type dispatcherMetrics struct {
	envelopes *prometheus.CounterVec
	status    prometheus.Gauge
}

func newDispatcherMetrics() dispatcherMetrics {
	return dispatcherMetrics{
		envelopes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: dispatcherSubsystem,
			Name:      "envelopes_total",
			Help:      "Number of handled envelopes by operation and result",
		}, []string{operationLabelKey, resultLabelKey}),
		status: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: dispatcherSubsystem,
			Name:      "status",
			Help:      "Current status of the dispatcher",
		}),
	}
}

func (m dispatcherMetrics) register(reg prometheus.Registerer) {
	reg.MustRegister(m.envelopes)
	reg.MustRegister(m.status)
}

// IncEnvelopeCount counts handled envelope of the operation.
func (m dispatcherMetrics) IncEnvelopeCount(operation string, success bool) {
	result := "success"
	if !success {
		result = "failure"
	}

	m.envelopes.With(prometheus.Labels{
		operationLabelKey: operation,
		resultLabelKey:    result,
	}).Inc()
}

// SetStatus sets numeric status of the dispatcher.
func (m dispatcherMetrics) SetStatus(status uint32) {
	m.status.Set(float64(status))
}

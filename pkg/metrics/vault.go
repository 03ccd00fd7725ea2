package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	vaultSubsystem = "vault"
	opLabelKey     = "op"
)

type vaultMetrics struct {
	duration *prometheus.HistogramVec
	errors   *prometheus.CounterVec
}

func newVaultMetrics() vaultMetrics {
	return vaultMetrics{
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: vaultSubsystem,
			Name:      "operation_duration_seconds",
			Help:      "Vault operations handling time",
		}, []string{opLabelKey}),
		errors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: vaultSubsystem,
			Name:      "operation_errors_total",
			Help:      "Number of failed vault operations",
		}, []string{opLabelKey}),
	}
}

func (m vaultMetrics) register(reg prometheus.Registerer) {
	reg.MustRegister(m.duration)
	reg.MustRegister(m.errors)
}

func (m vaultMetrics) observe(op string, d time.Duration) {
	m.duration.With(prometheus.Labels{opLabelKey: op}).Observe(d.Seconds())
}

func (m vaultMetrics) AddSaveDuration(d time.Duration) {
	m.observe("SAVE", d)
}

func (m vaultMetrics) AddLoadDuration(d time.Duration) {
	m.observe("LOAD", d)
}

func (m vaultMetrics) AddDeleteDuration(d time.Duration) {
	m.observe("DELETE", d)
}

func (m vaultMetrics) AddListDuration(d time.Duration) {
	m.observe("LIST", d)
}

func (m vaultMetrics) IncErrorCount(op string) {
	m.errors.With(prometheus.Labels{opLabelKey: op}).Inc()
}

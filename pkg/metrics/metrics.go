package metrics

import "github.com/prometheus/client_golang/prometheus"

const namespace = "infovault"

// InfoVaultMetrics groups all metrics of the application. It implements
// metric registers of the vault and of the operation dispatcher.
type InfoVaultMetrics struct {
	vaultMetrics
	dispatcherMetrics
}

// New creates and registers application metrics. Default prometheus
// registerer is used if reg is nil.
func New(reg prometheus.Registerer) *InfoVaultMetrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	v := newVaultMetrics()
	v.register(reg)

	d := newDispatcherMetrics()
	d.register(reg)

	return &InfoVaultMetrics{
		vaultMetrics:      v,
		dispatcherMetrics: d,
	}
}

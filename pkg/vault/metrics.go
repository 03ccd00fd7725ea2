package vault

import "time"

// MetricRegister collects statistics of the vault operations.
type MetricRegister interface {
	AddSaveDuration(d time.Duration)
	AddLoadDuration(d time.Duration)
	AddDeleteDuration(d time.Duration)
	AddListDuration(d time.Duration)

	// IncErrorCount is called for every failed operation. op is one of
	// "SAVE", "LOAD", "DELETE" and "LIST".
	IncErrorCount(op string)
}

const (
	opSave   = "SAVE"
	opLoad   = "LOAD"
	opDelete = "DELETE"
	opList   = "LIST"
)

func elapsed(addFunc func(d time.Duration)) func() {
	t := time.Now()

	return func() {
		addFunc(time.Since(t))
	}
}

func (v *Vault) reportError(op string, err error) {
	if err != nil && v.metrics != nil {
		v.metrics.IncErrorCount(op)
	}
}

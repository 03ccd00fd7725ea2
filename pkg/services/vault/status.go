package vaultsvc

import (
	"errors"
	"fmt"

	"go.uber.org/zap"
)

// Status is a lifecycle state of the Dispatcher.
type Status uint32

const (
	StatusStopped Status = iota
	StatusStarting
	StatusRunning
	StatusShuttingDown
	StatusShutdown
)

// String implements fmt.Stringer.
func (s Status) String() string {
	switch s {
	case StatusStopped:
		return "STOPPED"
	case StatusStarting:
		return "STARTING"
	case StatusRunning:
		return "RUNNING"
	case StatusShuttingDown:
		return "SHUTTING_DOWN"
	case StatusShutdown:
		return "SHUTDOWN"
	default:
		return fmt.Sprintf("UNKNOWN(%d)", uint32(s))
	}
}

// StatusListener is notified about every status transition.
type StatusListener func(Status)

// ErrInvalidTransition is returned by Start and Stop when the dispatcher
// is not in a state to perform the transition.
var ErrInvalidTransition = errors.New("invalid dispatcher status transition")

// Status returns current lifecycle state of the dispatcher.
func (d *Dispatcher) Status() Status {
	return Status(d.status.Load())
}

// Start makes the dispatcher accept envelopes. Stopped and shut down
// dispatchers can be started, start of a running one is a no-op.
func (d *Dispatcher) Start() error {
	d.mtx.Lock()
	defer d.mtx.Unlock()

	switch st := d.Status(); st {
	case StatusRunning:
		return nil
	case StatusStopped, StatusShutdown:
	default:
		return fmt.Errorf("%w: start from %s", ErrInvalidTransition, st)
	}

	d.setStatus(StatusStarting)
	d.setStatus(StatusRunning)

	d.log.Info("dispatcher started")

	return nil
}

// Stop makes the dispatcher reject new envelopes. Envelopes being handled
// are not interrupted. Stop of a not running dispatcher is a no-op.
func (d *Dispatcher) Stop() error {
	d.mtx.Lock()
	defer d.mtx.Unlock()

	if st := d.Status(); st != StatusRunning {
		d.log.Debug("dispatcher is not running, skip stop", zap.Stringer("status", st))
		return nil
	}

	d.setStatus(StatusShuttingDown)
	d.setStatus(StatusShutdown)

	d.log.Info("dispatcher stopped")

	return nil
}

func (d *Dispatcher) setStatus(s Status) {
	d.status.Store(uint32(s))

	if d.metrics != nil {
		d.metrics.SetStatus(uint32(s))
	}

	if d.listener != nil {
		d.listener(s)
	}
}

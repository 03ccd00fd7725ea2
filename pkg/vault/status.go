package vault

// Status is a state of the Vault.
type Status uint32

const (
	// StatusStopped means the Vault is not initialized yet.
	StatusStopped Status = iota
	// StatusReady means the storage roots are prepared and operations can be served.
	StatusReady
	// StatusClosed means the Vault has been closed.
	StatusClosed
)

// String implements fmt.Stringer.
func (s Status) String() string {
	switch s {
	case StatusStopped:
		return "STOPPED"
	case StatusReady:
		return "READY"
	case StatusClosed:
		return "CLOSED"
	default:
		return "UNKNOWN"
	}
}

// Status returns current state of the Vault.
func (v *Vault) Status() Status {
	return Status(v.status.Load())
}

package vault

import (
	"fmt"
	"io/fs"
	"os"

	"github.com/nspcc-dev/infovault/pkg/util"
)

// Root selects the storage root an operation is performed in.
type Root uint8

const (
	// RootInternal is the <base location>/<name> directory, it is always available.
	RootInternal Root = iota
	// RootExternal is the optional operator-supplied directory.
	RootExternal
)

// String implements fmt.Stringer.
func (r Root) String() string {
	switch r {
	case RootInternal:
		return "internal"
	case RootExternal:
		return "external"
	default:
		return fmt.Sprintf("unknown root %d", r)
	}
}

// InternalRoot returns absolute path to the internal storage root.
// Returns empty string before Init.
func (v *Vault) InternalRoot() string {
	return v.internal
}

// ExternalRoot returns absolute path to the external storage root and
// a flag whether it is configured.
func (v *Vault) ExternalRoot() (string, bool) {
	return v.external, v.external != ""
}

func (v *Vault) rootPath(r Root) (string, error) {
	if v.Status() != StatusReady {
		return "", ErrNotReady
	}

	switch r {
	case RootInternal:
		return v.internal, nil
	case RootExternal:
		if v.external == "" {
			return "", fmt.Errorf("%w: external storage is not configured", ErrStorageUnavailable)
		}
		return v.external, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrStorageUnavailable, r)
	}
}

// prepareDir creates the directory if it is missing and makes it
// writable for the owner.
func prepareDir(p string, perm fs.FileMode) error {
	err := util.MkdirAllX(p, perm|writeBit)
	if err != nil {
		return fmt.Errorf("mkdir all for %q: %w", p, err)
	}

	fi, err := os.Stat(p)
	if err != nil {
		return fmt.Errorf("stat %q: %w", p, err)
	}

	if !fi.IsDir() {
		return fmt.Errorf("%q is not a directory", p)
	}

	return ensureWritable(p)
}

// ensureWritable adds owner write bit to the file system entry if
// it is not writable for the current process.
func ensureWritable(p string) error {
	if writable(p) {
		return nil
	}

	fi, err := os.Stat(p)
	if err != nil {
		return err
	}

	err = os.Chmod(p, fi.Mode().Perm()|writeBit)
	if err != nil {
		return fmt.Errorf("make %q writable: %w", p, err)
	}

	return nil
}

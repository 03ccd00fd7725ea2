package vault

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	storagelog "github.com/nspcc-dev/infovault/pkg/vault/internal/log"
)

// DeletePrm groups the parameters of Delete operation.
type DeletePrm struct {
	// Address of the record, key is required.
	Address Address
	// Root to delete the record from.
	Root Root
}

// Delete removes the record. Missing label or record is not an error, so
// Delete can be called repeatedly.
//
// Returns ErrDelete only if existing record file can not be removed.
func (v *Vault) Delete(prm DeletePrm) error {
	if v.metrics != nil {
		defer elapsed(v.metrics.AddDeleteDuration)()
	}

	err := v.delete(prm)
	v.reportError(opDelete, err)

	return err
}

func (v *Vault) delete(prm DeletePrm) error {
	root, err := v.rootPath(prm.Root)
	if err != nil {
		return err
	}

	if err = prm.Address.validate(); err != nil {
		return err
	}

	v.uncache(newCacheKey(prm.Root, prm.Address))

	dir, err := v.partition(root, prm.Address.Label, false)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			return nil
		case errors.Is(err, ErrInvalidName):
			return err
		}
		return fmt.Errorf("%w: %w", ErrDelete, err)
	}

	p, err := recordPath(root, dir, prm.Address.Key)
	if err != nil {
		return err
	}

	fi, err := os.Lstat(p)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return nil
	case err != nil:
		return fmt.Errorf("%w: stat file %q: %w", ErrDelete, p, err)
	case fi.IsDir():
		// labels are never removed
		return nil
	}

	err = os.Remove(p)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%w: remove file %q: %w", ErrDelete, p, err)
	}

	storagelog.Write(v.log,
		storagelog.OpField(opDelete),
		storagelog.RootField(prm.Root),
		storagelog.LabelField(prm.Address.Label),
		storagelog.KeyField(prm.Address.Key))

	return nil
}

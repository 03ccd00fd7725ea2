package vault

import (
	"fmt"
	"io/fs"
	"os"

	storagelog "github.com/nspcc-dev/infovault/pkg/vault/internal/log"
)

// SavePrm groups the parameters of Save operation.
type SavePrm struct {
	// Address of the record, key is required.
	Address Address
	// Data is the full record payload.
	Data []byte
	// AutoCreate allows creating missing label directory.
	AutoCreate bool
	// Root to save the record in.
	Root Root
}

// Save writes record data replacing any previous contents of the record.
//
// Returns ErrNotFound if the label does not exist and AutoCreate is not set.
// Returns ErrWrite if the label or the record file can not be created or written.
// Returns ErrStorageUnavailable if external root was requested but is not configured.
func (v *Vault) Save(prm SavePrm) error {
	if v.metrics != nil {
		defer elapsed(v.metrics.AddSaveDuration)()
	}

	err := v.save(prm)
	v.reportError(opSave, err)

	return err
}

func (v *Vault) save(prm SavePrm) error {
	root, err := v.rootPath(prm.Root)
	if err != nil {
		return err
	}

	if err = prm.Address.validate(); err != nil {
		return err
	}

	dir, err := v.partition(root, prm.Address.Label, prm.AutoCreate)
	if err != nil {
		return err
	}

	p, err := recordPath(root, dir, prm.Address.Key)
	if err != nil {
		return err
	}

	if err = v.writeFile(p, v.compress.Compress(prm.Data)); err != nil {
		v.uncache(newCacheKey(prm.Root, prm.Address))
		return err
	}

	v.cacheRecord(newCacheKey(prm.Root, prm.Address), prm.Data)

	storagelog.Write(v.log,
		storagelog.OpField(opSave),
		storagelog.RootField(prm.Root),
		storagelog.LabelField(prm.Address.Label),
		storagelog.KeyField(prm.Address.Key))

	return nil
}

// writeFile replaces contents of the file with data creating the file if
// it is missing. Symbolic links are refused. File is always closed.
func (v *Vault) writeFile(p string, data []byte) error {
	flags := os.O_WRONLY | os.O_CREATE | os.O_TRUNC | noFollow
	if !v.noSync {
		flags |= os.O_SYNC
	}

	if fi, err := os.Lstat(p); err == nil {
		if fi.Mode()&fs.ModeSymlink != 0 {
			return fmt.Errorf("%w: %q is a symbolic link", ErrInvalidName, p)
		}
		if err = ensureWritable(p); err != nil {
			return fmt.Errorf("%w: %w", ErrWrite, err)
		}
	}

	f, err := os.OpenFile(p, flags, v.perm|writeBit)
	if err != nil {
		return fmt.Errorf("%w: open file %q: %w", ErrWrite, p, err)
	}

	_, err = f.Write(data)
	if err != nil {
		_ = f.Close()
		return fmt.Errorf("%w: write data to %q: %w", ErrWrite, p, err)
	}

	if err = f.Close(); err != nil {
		return fmt.Errorf("%w: close file %q: %w", ErrWrite, p, err)
	}

	return nil
}

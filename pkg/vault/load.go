package vault

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	storagelog "github.com/nspcc-dev/infovault/pkg/vault/internal/log"
)

// LoadPrm groups the parameters of Load operation.
type LoadPrm struct {
	// Address of the record, key is required.
	Address Address
	// Root to load the record from.
	Root Root
}

// Load reads full record payload.
//
// Returns ErrNotFound if the label or the record does not exist.
// Returns ErrRead if existing record can not be read.
func (v *Vault) Load(prm LoadPrm) ([]byte, error) {
	if v.metrics != nil {
		defer elapsed(v.metrics.AddLoadDuration)()
	}

	data, err := v.load(prm)
	v.reportError(opLoad, err)

	return data, err
}

func (v *Vault) load(prm LoadPrm) ([]byte, error) {
	root, err := v.rootPath(prm.Root)
	if err != nil {
		return nil, err
	}

	if err = prm.Address.validate(); err != nil {
		return nil, err
	}

	dir, err := v.partition(root, prm.Address.Label, false)
	if err != nil {
		return nil, err
	}

	data, err := v.get(prm.Root, root, dir, prm.Address)
	if err != nil {
		return nil, err
	}

	storagelog.Write(v.log,
		storagelog.OpField(opLoad),
		storagelog.RootField(prm.Root),
		storagelog.LabelField(prm.Address.Label),
		storagelog.KeyField(prm.Address.Key))

	return data, nil
}

// get returns record payload from the cache or from the partition directory.
func (v *Vault) get(r Root, root, dir string, addr Address) ([]byte, error) {
	k := newCacheKey(r, addr)

	if data, ok := v.cached(k); ok {
		return data, nil
	}

	p, err := recordPath(root, dir, addr.Key)
	if err != nil {
		return nil, err
	}

	data, err := v.readFile(p)
	if err != nil {
		return nil, err
	}

	v.cacheRecord(k, data)

	return data, nil
}

// readFile reads the whole file. Missing file (or a directory in its place)
// results in ErrNotFound, any failure after the file is opened is ErrRead.
// Symbolic link in place of the file is ErrInvalidName.
func (v *Vault) readFile(p string) ([]byte, error) {
	if fi, err := os.Lstat(p); err == nil && fi.Mode()&fs.ModeSymlink != 0 {
		return nil, fmt.Errorf("%w: %q is a symbolic link", ErrInvalidName, p)
	}

	f, err := os.OpenFile(p, os.O_RDONLY|noFollow, 0)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: record %q", ErrNotFound, p)
		}
		return nil, fmt.Errorf("%w: open file %q: %w", ErrRead, p, err)
	}
	defer f.Close()

	fi, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("%w: stat file %q: %w", ErrRead, p, err)
	}

	if fi.IsDir() {
		return nil, fmt.Errorf("%w: %q is a directory", ErrNotFound, p)
	}

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("%w: read file %q: %w", ErrRead, p, err)
	}

	data, err = v.compress.Decompress(data)
	if err != nil {
		return nil, fmt.Errorf("%w: decompress %q: %w", ErrRead, p, err)
	}

	return data, nil
}

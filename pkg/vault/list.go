package vault

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sort"
)

// RecordInfo describes stored record without its payload.
type RecordInfo struct {
	Key string
	// Size is the size of the record file, it differs from the payload
	// size if compression is enabled.
	Size int64
}

// ListPrm groups the parameters of List operation.
type ListPrm struct {
	// Label to list, empty label means records stored directly under the root.
	Label string
	// Root to list.
	Root Root
}

// List returns descriptions of all records of the label sorted by key.
// Payloads are not read. Missing label results in an empty listing.
func (v *Vault) List(prm ListPrm) ([]RecordInfo, error) {
	if v.metrics != nil {
		defer elapsed(v.metrics.AddListDuration)()
	}

	res, err := v.list(prm)
	v.reportError(opList, err)

	return res, err
}

func (v *Vault) list(prm ListPrm) ([]RecordInfo, error) {
	_, dir, ok, err := v.labelDir(prm.Root, prm.Label)
	if err != nil || !ok {
		return nil, err
	}

	entries, err := recordEntries(dir)
	if err != nil {
		return nil, err
	}

	res := make([]RecordInfo, 0, len(entries))

	for _, e := range entries {
		fi, err := e.Info()
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return nil, fmt.Errorf("%w: stat record %q: %w", ErrRead, e.Name(), err)
		}

		res = append(res, RecordInfo{Key: e.Name(), Size: fi.Size()})
	}

	sort.Slice(res, func(i, j int) bool { return res[i].Key < res[j].Key })

	return res, nil
}

// Labels returns sorted names of all labels of the root.
func (v *Vault) Labels(r Root) ([]string, error) {
	root, err := v.rootPath(r)
	if err != nil {
		return nil, err
	}

	entries, err := os.ReadDir(root)
	if err != nil {
		v.reportError(opList, err)
		return nil, fmt.Errorf("%w: read directory %q: %w", ErrRead, root, err)
	}

	var res []string
	for _, e := range entries {
		if e.IsDir() {
			res = append(res, e.Name())
		}
	}

	return res, nil
}

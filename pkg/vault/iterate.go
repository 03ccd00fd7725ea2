package vault

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sort"

	"go.uber.org/zap"
)

// IterateHandler is called for every record of the label with its key
// and payload. Returned error stops the iteration and is forwarded.
type IterateHandler func(key string, data []byte) error

// IteratePrm groups the parameters of Iterate operation.
type IteratePrm struct {
	// Label to iterate over, empty label means records stored directly
	// under the root.
	Label string
	// Root to iterate over.
	Root Root
	// Handler is required.
	Handler IterateHandler
}

// Iterate passes every record of the label to the handler in the file
// system enumeration order. Missing label is treated as an empty one.
// Records removed during the iteration are skipped.
func (v *Vault) Iterate(prm IteratePrm) error {
	if v.metrics != nil {
		defer elapsed(v.metrics.AddListDuration)()
	}

	err := v.iterate(prm)
	v.reportError(opList, err)

	return err
}

func (v *Vault) iterate(prm IteratePrm) error {
	if prm.Handler == nil {
		return errors.New("missing iteration handler")
	}

	root, dir, ok, err := v.labelDir(prm.Root, prm.Label)
	if err != nil || !ok {
		return err
	}

	names, err := recordNames(dir)
	if err != nil {
		return err
	}

	return v.readRecords(prm.Root, root, dir, prm.Label, names, prm.Handler)
}

// readRecords reads records with the given keys from the label directory
// and passes them to the handler. Missing records are skipped.
func (v *Vault) readRecords(r Root, root, dir, label string, keys []string, h IterateHandler) error {
	for _, key := range keys {
		data, err := v.get(r, root, dir, Address{Label: label, Key: key})
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				v.log.Warn("record disappeared during listing, skipping",
					zap.Stringer("root", r),
					zap.String("label", label),
					zap.String("key", key))
				continue
			}
			return err
		}

		if err = h(key, data); err != nil {
			return err
		}
	}

	return nil
}

// labelDir returns root and label directory paths for listing operations.
// The flag is false if the label does not exist.
func (v *Vault) labelDir(r Root, label string) (string, string, bool, error) {
	root, err := v.rootPath(r)
	if err != nil {
		return "", "", false, err
	}

	if label != "" {
		if err = validateName("label", label); err != nil {
			return "", "", false, err
		}
	}

	dir, err := v.partition(root, label, false)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			return "", "", false, nil
		case errors.Is(err, ErrInvalidName):
			return "", "", false, err
		}
		return "", "", false, fmt.Errorf("%w: %w", ErrRead, err)
	}

	return root, dir, true, nil
}

// recordEntries returns regular files of the directory in the file
// system enumeration order.
func recordEntries(dir string) ([]fs.DirEntry, error) {
	f, err := os.Open(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: open directory %q: %w", ErrRead, dir, err)
	}
	defer f.Close()

	entries, err := f.ReadDir(-1)
	if err != nil {
		return nil, fmt.Errorf("%w: read directory %q: %w", ErrRead, dir, err)
	}

	res := entries[:0]
	for _, e := range entries {
		if e.Type().IsRegular() {
			res = append(res, e)
		}
	}

	return res, nil
}

func recordNames(dir string) ([]string, error) {
	entries, err := recordEntries(dir)
	if err != nil {
		return nil, err
	}

	names := make([]string, len(entries))
	for i := range entries {
		names[i] = entries[i].Name()
	}

	return names, nil
}

func sortedRecordNames(dir string) ([]string, error) {
	names, err := recordNames(dir)
	if err != nil {
		return nil, err
	}

	sort.Strings(names)

	return names, nil
}

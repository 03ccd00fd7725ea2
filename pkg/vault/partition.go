package vault

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// partition returns directory of the label inside the root. Empty label
// means the root itself. Missing label directory is created only if
// autoCreate is set, ErrNotFound is returned otherwise. Symbolic links are
// never followed.
func (v *Vault) partition(root, label string, autoCreate bool) (string, error) {
	if label == "" {
		return root, nil
	}

	dir := filepath.Join(root, label)

	fi, err := os.Lstat(dir)
	switch {
	case err == nil:
		if fi.Mode()&fs.ModeSymlink != 0 {
			return "", fmt.Errorf("%w: label %q is a symbolic link", ErrInvalidName, label)
		}
		if !fi.IsDir() {
			return "", fmt.Errorf("%w: label %q is not a directory", ErrNotFound, label)
		}
		return dir, nil
	case !errors.Is(err, fs.ErrNotExist):
		return "", fmt.Errorf("stat label %q: %w", label, err)
	case !autoCreate:
		return "", fmt.Errorf("%w: label %q doesn't exist and auto-create is disabled", ErrNotFound, label)
	}

	if err = prepareDir(dir, v.perm); err != nil {
		return "", fmt.Errorf("%w: create label %q: %w", ErrWrite, label, err)
	}

	return dir, nil
}

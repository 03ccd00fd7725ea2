package vault

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Address is a location of the record within a storage root.
type Address struct {
	// Label is a partition of the record, empty label means the record is
	// stored directly under the root.
	Label string
	// Key identifies the record within its label.
	Key string
}

// String implements fmt.Stringer.
func (a Address) String() string {
	if a.Label == "" {
		return a.Key
	}
	return a.Label + "/" + a.Key
}

func (a Address) validate() error {
	if a.Label != "" {
		if err := validateName("label", a.Label); err != nil {
			return err
		}
	}
	return validateName("key", a.Key)
}

// validateName checks that name can be used as a single path component.
func validateName(kind, name string) error {
	switch {
	case name == "":
		return fmt.Errorf("%w: empty %s", ErrInvalidName, kind)
	case name == "." || name == "..":
		return fmt.Errorf("%w: %s %q", ErrInvalidName, kind, name)
	case strings.ContainsAny(name, `/\`+"\x00"):
		return fmt.Errorf("%w: %s %q contains forbidden characters", ErrInvalidName, kind, name)
	case filepath.IsAbs(name) || filepath.VolumeName(name) != "":
		return fmt.Errorf("%w: %s %q is an absolute path", ErrInvalidName, kind, name)
	}
	return nil
}

// recordPath returns path to the record file in the partition directory.
// The resulting path must stay within the root.
func recordPath(root, partition, key string) (string, error) {
	p := filepath.Join(partition, key)

	rel, err := filepath.Rel(root, p)
	if err != nil || rel == "." || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("%w: %q is outside of the storage root", ErrInvalidName, p)
	}

	return p, nil
}

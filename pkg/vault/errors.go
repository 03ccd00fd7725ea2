package vault

import (
	"errors"

	"github.com/nspcc-dev/infovault/pkg/util/logicerr"
)

var (
	// ErrConfiguration is returned by Init when the storage roots can not be
	// configured. It is fatal for the vault.
	ErrConfiguration = errors.New("invalid vault configuration")

	// ErrNotFound is returned when the requested label or record is missing.
	ErrNotFound = logicerr.New("not found")

	// ErrInvalidName is returned when a label or a key can not be used as a
	// single path component inside the storage root.
	ErrInvalidName = logicerr.New("invalid name")

	// ErrWrite is returned when a record (or its label) can not be created or written.
	ErrWrite = errors.New("write failed")

	// ErrRead is returned when an existing record can not be read.
	ErrRead = errors.New("read failed")

	// ErrDelete is returned when an existing record can not be removed.
	ErrDelete = errors.New("delete failed")

	// ErrStorageUnavailable is returned when external storage is requested
	// but was not configured.
	ErrStorageUnavailable = errors.New("storage unavailable")

	// ErrNotReady is returned for any operation on a vault which has not been
	// initialized or has been closed already.
	ErrNotReady = errors.New("vault is not ready")
)

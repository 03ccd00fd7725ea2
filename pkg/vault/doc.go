/*
Package vault implements a directory-backed storage of opaque binary records.

Every record is addressed by an optional label and a key. The label is a
partition of the storage and is mapped to a subdirectory of the storage root,
the key is mapped to a file name within that partition:

	<root>/<label>/<key>
	<root>/<key>        (no label)

There are two storage roots. The internal one is always present and is
located at <base location>/<name>. The external one is an operator-supplied
directory which is used only when an operation explicitly asks for it
(see [RootExternal]). If the external directory is configured but missing
at [Vault.Init], the vault works without it.

Records are saved as is (or zstd-compressed, see [WithCompression]), a later
save to the same address replaces the whole record. Labels are created on
demand only when a save asks for it and are never removed by the vault.
Deleting a record that does not exist is not an error.

Labels and keys must be single path components: they can not contain path
separators or NUL bytes and can not be "." or "..". This guarantees that
every resolved file lies inside the chosen root.

The vault performs no locking on its own. Concurrent saves to the same
address race with the last writer winning, a concurrent load and delete may
result in [ErrNotFound].
*/
package vault

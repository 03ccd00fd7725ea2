//go:build !unix

package vault

import "os"

const noFollow = 0

func writable(p string) bool {
	fi, err := os.Stat(p)
	return err == nil && fi.Mode().Perm()&writeBit != 0
}

//go:build unix

package vault

import "golang.org/x/sys/unix"

const noFollow = unix.O_NOFOLLOW

func writable(p string) bool {
	return unix.Access(p, unix.W_OK) == nil
}

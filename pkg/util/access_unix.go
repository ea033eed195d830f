//go:build unix

package util

import "golang.org/x/sys/unix"

// Executable reports whether the current effective user may execute path.
// faccessat with AT_EACCESS asks the kernel the real access-control
// question, so ACLs and capability rules are honored rather than just the
// permission bits.
func Executable(path string) bool {
	return unix.Faccessat(unix.AT_FDCWD, path, unix.X_OK, unix.AT_EACCESS) == nil
}

//go:build !unix

package util

import (
	"io/fs"
	"os"
)

// Executable falls back to the permission bits on platforms without
// faccessat.
func Executable(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.Mode().Perm()&0o111 != 0 && info.Mode().Type()&fs.ModeDir == 0
}

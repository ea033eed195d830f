// Package util holds small path and permission helpers shared by the
// classification packages.
package util

import "strings"

// Basename returns the final path element of a slash- or OS-separated
// path. Unlike filepath.Base it treats both separators as boundaries, so
// interpreter paths from shebang lines resolve the same way on every
// platform.
func Basename(path string) string {
	if i := strings.LastIndexAny(path, "/\\"); i >= 0 {
		return path[i+1:]
	}
	return path
}

// SplitExtension returns the lowercased extension of name (text after the
// last dot) and whether one exists. A leading dot alone, as in ".bashrc",
// is a hidden-file marker rather than an extension.
func SplitExtension(name string) (string, bool) {
	i := strings.LastIndexByte(name, '.')
	if i <= 0 || i == len(name)-1 {
		return "", false
	}
	if strings.Trim(name[:i], ".") == "" {
		return "", false
	}
	return strings.ToLower(name[i+1:]), true
}

// TrimSuffixCandidates yields name and then each progressively shorter
// dot-delimited prefix: "python3.9.1" gives "python3.9.1", "python3.9",
// "python3". Used for interpreter table lookups.
func TrimSuffixCandidates(name string) []string {
	var out []string
	for name != "" {
		out = append(out, name)
		i := strings.LastIndexByte(name, '.')
		if i < 0 {
			break
		}
		name = name[:i]
	}
	return out
}

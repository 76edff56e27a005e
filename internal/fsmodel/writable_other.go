//go:build !unix

package fsmodel

import "os"

// Writable reports whether path carries the owner write bit.
func Writable(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.Mode().Perm()&0o200 != 0
}

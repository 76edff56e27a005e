//go:build unix

package fsmodel

import (
	"slices"

	"golang.org/x/sys/unix"
)

// Writable reports whether the permission bits of path grant write access
// to the effective user through the owner, group or other class. Root gets
// no bypass: a read-only file stays read-only, so a delete batch skips it
// even when running as root. The Properties overlay says so.
func Writable(path string) bool {
	var st unix.Stat_t
	if err := unix.Stat(path, &st); err != nil {
		return false
	}
	perm := uint32(st.Mode) & 0o777
	switch {
	case st.Uid == uint32(unix.Geteuid()):
		return perm&0o200 != 0
	case inGroup(st.Gid):
		return perm&0o020 != 0
	default:
		return perm&0o002 != 0
	}
}

func inGroup(gid uint32) bool {
	if gid == uint32(unix.Getegid()) {
		return true
	}
	groups, err := unix.Getgroups()
	if err != nil {
		return false
	}
	return slices.Contains(groups, int(gid))
}

package util

import (
	"fmt"
	"os"
	"sort"

	"golang.org/x/sys/unix"
)

// Subdirs lists the children of the open directory dir in lexicographic
// order. Every child must itself be a directory; anything else fails with
// ErrExpectedDirectory. The handle's read offset is consumed, so a handle
// can be listed only once.
func Subdirs(dir *os.File) (names []string, err error) {
	names, err = dir.Readdirnames(-1)
	if err != nil {
		return nil, err
	}
	fd := int(dir.Fd())
	for _, name := range names {
		var st unix.Stat_t
		if err = unix.Fstatat(fd, name, &st, unix.AT_SYMLINK_NOFOLLOW); err != nil {
			return nil, fmt.Errorf("stat %s: %w", name, err)
		}
		if st.Mode&unix.S_IFMT != unix.S_IFDIR {
			return nil, fmt.Errorf("%w: %s", ErrExpectedDirectory, name)
		}
	}
	sort.Strings(names)
	return names, nil
}

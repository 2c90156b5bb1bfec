package tree

import (
	"errors"
	"fmt"
	"os"

	"github.com/dendrascience/filetree/util"
	"golang.org/x/sys/unix"
)

const dirFlags = unix.O_RDONLY | unix.O_DIRECTORY | unix.O_CLOEXEC

// Chains get arbitrarily deep, far past PATH_MAX, so every directory is
// reached relative to its parent's handle and never by path.

func openRoot(path string) (*os.File, error) {
	fd, err := unix.Open(path, dirFlags, 0)
	if err != nil {
		return nil, &os.PathError{Op: "open", Path: path, Err: err}
	}
	return os.NewFile(uintptr(fd), path), nil
}

func openChild(parent *os.File, name string) (*os.File, error) {
	fd, err := unix.Openat(int(parent.Fd()), name, dirFlags|unix.O_NOFOLLOW, 0)
	if err != nil {
		return nil, &os.PathError{Op: "openat", Path: name, Err: err}
	}
	return os.NewFile(uintptr(fd), name), nil
}

func mkdirChild(parent *os.File, name string) (*os.File, error) {
	if err := unix.Mkdirat(int(parent.Fd()), name, 0o755); err != nil {
		return nil, &os.PathError{Op: "mkdirat", Path: name, Err: err}
	}
	return openChild(parent, name)
}

// chain is the open end of one bucket: the deepest directory reached so far.
type chain struct {
	dir   *os.File
	name  string
	depth int
	done  bool
}

// advance moves the chain one level down, releasing the superseded handle.
func (c *chain) advance(next *os.File, name string) error {
	old := c.dir
	c.dir, c.name = next, name
	c.depth++
	if old == nil {
		return nil
	}
	if err := old.Close(); err != nil {
		return fmt.Errorf("%w: close %s: %w", util.ErrIOFailure, old.Name(), err)
	}
	return nil
}

// children lists the chain's current directory.
func (c *chain) children() ([]string, error) {
	names, err := util.Subdirs(c.dir)
	switch {
	case errors.Is(err, util.ErrExpectedDirectory):
		return nil, fmt.Errorf("%w: below %s: %w", util.ErrMalformedTree, c.name, err)
	case err != nil:
		return nil, fmt.Errorf("%w: list %s: %w", util.ErrIOFailure, c.name, err)
	}
	return names, nil
}

// descend lists the chain's directory and steps into its only child. It
// reports false, leaving the chain in place, when the chain has ended.
func (c *chain) descend() (bool, error) {
	names, err := c.children()
	if err != nil {
		return false, err
	}
	switch len(names) {
	case 0:
		return false, nil
	case 1:
	default:
		return false, fmt.Errorf("%w: %s has %d children, chains never branch",
			util.ErrMalformedTree, c.name, len(names))
	}
	next, err := openChild(c.dir, names[0])
	if err != nil {
		return false, fmt.Errorf("%w: %w", util.ErrIOFailure, err)
	}
	return true, c.advance(next, names[0])
}

func closeChains(chains []chain) error {
	var errs []error
	for i := range chains {
		if chains[i].dir == nil {
			continue
		}
		if err := chains[i].dir.Close(); err != nil {
			errs = append(errs, err)
		}
		chains[i].dir = nil
	}
	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", util.ErrIOFailure, errors.Join(errs...))
	}
	return nil
}

package tree

import (
	"errors"
	"fmt"
	"io"

	"github.com/dendrascience/filetree/util"
	"go.uber.org/zap"
)

// Decode walks the tree under root and writes the recovered stream to dst,
// returning the number of bytes written. Chains are visited round-robin in
// the order given by their bucket prefixes; the termination rule is chosen
// with WithTermination. Nothing under root is modified.
//
// The stream length is implied by where the walk stops. Bytes already
// written stay written when a malformed name or tree aborts the decode.
func Decode(root string, dst io.Writer, order util.ByteOrder, opts ...Option) (written int64, err error) {
	if !order.Valid() {
		return 0, fmt.Errorf("%w: unknown byte order %s", util.ErrInvalidConfiguration, order)
	}
	o := newOptions(opts)

	chains, err := openLevelOne(root, order, o.width)
	if err != nil {
		return 0, err
	}
	defer func() {
		err = errors.Join(err, closeChains(chains))
	}()

	width := int64(len(chains))
	if width == 0 {
		o.log.Info("tree is empty", zap.String("root", root))
		return 0, nil
	}
	// A root with fewer chains than the expected width only comes from a
	// stream shorter than one round, so every chain must be a single node.
	short := o.width > 0 && int(width) < o.width

	var i int64
	for ; ; i++ {
		c := &chains[i%width]
		if c.done {
			if err := allDone(chains); err != nil {
				return written, err
			}
			break
		}

		_, payload, err := util.DecodeName(c.name, i < width, order)
		if err != nil {
			return written, fmt.Errorf("sub-chunk %d: %w", i, err)
		}
		n, err := dst.Write(payload)
		written += int64(n)
		if err != nil {
			return written, fmt.Errorf("%w: write sub-chunk %d: %w", util.ErrIOFailure, i, err)
		}
		o.report(written)

		more, err := c.descend()
		if err != nil {
			return written, err
		}
		if more && short {
			return written, fmt.Errorf("%w: %d chains for width %d but %s continues",
				util.ErrMalformedTree, width, o.width, c.name)
		}
		if !more {
			c.done = true
			if o.termination == StopAtFirstLeaf {
				i++
				break
			}
		}
	}

	o.log.Info("tree decoded",
		zap.String("root", root),
		zap.Int64("width", width),
		zap.Int64("subchunks", i),
		zap.Int64("bytes", written),
		zap.Stringer("termination", o.termination))
	return written, nil
}

// allDone checks the shape of the final round: once the walk reaches an
// ended chain, no chain may be deeper than the ones before it.
func allDone(chains []chain) error {
	for b := range chains {
		if !chains[b].done {
			return fmt.Errorf("%w: chain %d continues past the end of the stream at depth %d",
				util.ErrMalformedTree, b, chains[b].depth)
		}
	}
	return nil
}

// openLevelOne opens one handle per root entry and validates the bucket
// prefixes: the k-th entry in sorted order must carry prefix k, and every
// prefix must have the same width. If expectedWidth is positive the root
// must fit a tree encoded with that width.
func openLevelOne(root string, order util.ByteOrder, expectedWidth int) (chains []chain, err error) {
	rootDir, err := openRoot(root)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", util.ErrIOFailure, err)
	}
	defer rootDir.Close()

	rc := chain{dir: rootDir, name: root}
	names, err := rc.children()
	if err != nil {
		return nil, err
	}
	if err := checkLevelOne(names, order, expectedWidth); err != nil {
		return nil, err
	}

	chains = make([]chain, len(names))
	for b, name := range names {
		dir, err := openChild(rootDir, name)
		if err != nil {
			closeChains(chains)
			return nil, fmt.Errorf("%w: %w", util.ErrIOFailure, err)
		}
		chains[b] = chain{dir: dir, name: name, depth: 1}
	}
	return chains, nil
}

func checkLevelOne(names []string, order util.ByteOrder, expectedWidth int) error {
	if expectedWidth > 0 && len(names) > expectedWidth {
		return fmt.Errorf("%w: root has %d entries, expected at most %d",
			util.ErrMalformedTree, len(names), expectedWidth)
	}
	if len(names) == 0 {
		return nil
	}

	prefixWidth := util.PrefixWidth(names[0])
	minWidth := util.BucketDigits(len(names))
	if expectedWidth > 0 {
		minWidth = util.BucketDigits(expectedWidth)
	}
	for k, name := range names {
		bucket, _, err := util.DecodeName(name, true, order)
		if err != nil {
			return fmt.Errorf("root entry %d: %w", k, err)
		}
		if w := util.PrefixWidth(name); w != prefixWidth {
			return fmt.Errorf("%w: root entry %q has a %d digit prefix, %q has %d",
				util.ErrMalformedTree, name, w, names[0], prefixWidth)
		}
		if bucket != k {
			return fmt.Errorf("%w: root entry %q sorts at position %d", util.ErrMalformedTree, name, k)
		}
	}
	if prefixWidth < minWidth || (expectedWidth > 0 && prefixWidth != minWidth) {
		return fmt.Errorf("%w: bucket prefixes are %d digits wide, want %d",
			util.ErrMalformedTree, prefixWidth, minWidth)
	}
	return nil
}

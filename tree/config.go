package tree

import (
	"fmt"

	"github.com/dendrascience/filetree/util"
)

// Config is the shape of a tree. None of it is stored on disk: the same
// values have to be supplied again by anything that interprets the tree
// beyond a plain Decode.
type Config struct {
	ChunkSize int            // bytes per directory name
	Width     int            // number of chains under the root
	ByteOrder util.ByteOrder // how a chunk is read as an integer
}

// Validate rejects shapes the encoder cannot materialize.
func (c Config) Validate() error {
	if c.ChunkSize <= 0 {
		return fmt.Errorf("%w: chunk size %d must be positive", util.ErrInvalidConfiguration, c.ChunkSize)
	}
	if c.Width <= 0 {
		return fmt.Errorf("%w: width %d must be positive", util.ErrInvalidConfiguration, c.Width)
	}
	if !c.ByteOrder.Valid() {
		return fmt.Errorf("%w: unknown byte order %s", util.ErrInvalidConfiguration, c.ByteOrder)
	}
	if n := util.NameLength(c.ChunkSize, c.Width); n > util.MaxNameLength {
		return fmt.Errorf("%w: names of %d bytes exceed the %d byte limit, lower the chunk size",
			util.ErrInvalidConfiguration, n, util.MaxNameLength)
	}
	return nil
}

// Quantum is the number of source bytes consumed per read: one sub-chunk
// for every chain.
func (c Config) Quantum() int {
	return c.ChunkSize * c.Width
}

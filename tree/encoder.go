package tree

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/dendrascience/filetree/util"
	"go.uber.org/zap"
)

// Encode materializes src as a directory tree under root, creating root if
// needed. Sub-chunk i becomes a directory in chain i mod Width, nested one
// level below the chain's previous sub-chunk. A failure leaves whatever was
// already created on disk.
func Encode(root string, src io.Reader, cfg Config, opts ...Option) (err error) {
	if err := cfg.Validate(); err != nil {
		return err
	}
	o := newOptions(opts)

	if err := os.MkdirAll(root, 0o755); err != nil {
		return fmt.Errorf("%w: %w", util.ErrIOFailure, err)
	}
	rootDir, err := openRoot(root)
	if err != nil {
		return fmt.Errorf("%w: %w", util.ErrIOFailure, err)
	}

	e := &encoder{
		cfg:    cfg,
		root:   rootDir,
		chains: make([]chain, cfg.Width),
		digits: util.BucketDigits(cfg.Width),
	}
	defer func() {
		err = errors.Join(err, closeChains(e.chains))
		if cerr := rootDir.Close(); cerr != nil {
			err = errors.Join(err, fmt.Errorf("%w: %w", util.ErrIOFailure, cerr))
		}
	}()

	o.log.Debug("encoding tree",
		zap.String("root", root),
		zap.Int("chunk_size", cfg.ChunkSize),
		zap.Int("width", cfg.Width),
		zap.Stringer("byte_order", cfg.ByteOrder))

	quantum := make([]byte, cfg.Quantum())
	var consumed int64
	for {
		n, rerr := io.ReadFull(src, quantum)
		if n > 0 {
			if err := e.writeQuantum(quantum[:n]); err != nil {
				return err
			}
			consumed += int64(n)
			o.report(consumed)
		}
		if rerr == io.EOF || rerr == io.ErrUnexpectedEOF {
			break
		}
		if rerr != nil {
			return fmt.Errorf("%w: read source after %d bytes: %w", util.ErrIOFailure, consumed, rerr)
		}
	}

	o.log.Info("tree encoded",
		zap.String("root", root),
		zap.Int64("bytes", consumed),
		zap.Int64("subchunks", e.index),
		zap.Int("width", cfg.Width))
	return nil
}

type encoder struct {
	cfg    Config
	root   *os.File
	chains []chain
	digits int
	index  int64 // global sub-chunk index, never reset
}

func (e *encoder) writeQuantum(q []byte) error {
	for off := 0; off < len(q); off += e.cfg.ChunkSize {
		end := min(off+e.cfg.ChunkSize, len(q))
		if err := e.put(q[off:end]); err != nil {
			return err
		}
	}
	return nil
}

// put creates the directory for one sub-chunk under its chain's cursor and
// moves the cursor onto it.
func (e *encoder) put(chunk []byte) error {
	width := int64(e.cfg.Width)
	bucket := int(e.index % width)
	levelOne := e.index < width
	name := util.EncodeName(chunk, bucket, levelOne, e.digits, e.cfg.ByteOrder)

	c := &e.chains[bucket]
	parent := c.dir
	if parent == nil {
		parent = e.root
	}
	next, err := mkdirChild(parent, name)
	if err != nil {
		return fmt.Errorf("%w: sub-chunk %d: %w", util.ErrIOFailure, e.index, err)
	}
	if err := c.advance(next, name); err != nil {
		return err
	}
	e.index++
	return nil
}

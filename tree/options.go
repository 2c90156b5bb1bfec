package tree

import (
	"go.uber.org/zap"
)

// Termination selects when Decode stops walking.
type Termination int

const (
	// DrainChains keeps visiting buckets round-robin until it reaches one
	// whose chain has already ended. Every sub-chunk in the tree is emitted.
	DrainChains Termination = iota

	// StopAtFirstLeaf ends the whole decode right after the first directory
	// without children has been emitted. Older hide/unhide tools stop this
	// way; for W > 1 it drops the last W-1 sub-chunks of the stream.
	StopAtFirstLeaf
)

func (t Termination) String() string {
	switch t {
	case DrainChains:
		return "drain"
	case StopAtFirstLeaf:
		return "first-leaf"
	}
	return "unknown"
}

// Progress receives the running number of bytes consumed (Encode) or
// written (Decode).
type Progress func(n int64)

type options struct {
	log         *zap.Logger
	progress    Progress
	termination Termination
	width       int
}

// Option configures Encode, Decode and Inspect.
type Option func(*options)

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *zap.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.log = l
		}
	}
}

// WithProgress installs a progress hook.
func WithProgress(p Progress) Option {
	return func(o *options) {
		o.progress = p
	}
}

// WithTermination picks the decode termination rule.
func WithTermination(t Termination) Option {
	return func(o *options) {
		o.termination = t
	}
}

// WithExpectedWidth makes Decode and Inspect reject trees whose root does
// not match a tree encoded with width w.
func WithExpectedWidth(w int) Option {
	return func(o *options) {
		o.width = w
	}
}

func newOptions(opts []Option) *options {
	o := &options{
		log:         zap.NewNop(),
		termination: DrainChains,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

func (o *options) report(n int64) {
	if o.progress != nil {
		o.progress(n)
	}
}

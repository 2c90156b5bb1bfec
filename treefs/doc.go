// Package treefs exposes an encoded directory tree as a read-only FUSE
// filesystem holding a single file: the stream the tree decodes to.
//
// The tree is decoded lazily, the first time the file's attributes or
// contents are requested, and the result is cached for the life of the
// mount. A tree that fails to decode reports the same error on every
// access.
//
//	mountpoint/
//	└── data    (0444, size = decoded stream length)
package treefs

// Package tree stores a byte stream in the names of nested directories and
// reads it back.
//
// Encode cuts the stream into sub-chunks of Config.ChunkSize bytes and
// deals them round-robin over Config.Width chains rooted directly under the
// tree root. Each sub-chunk becomes one directory, named by the util
// package's convention, created inside the previous directory of its chain:
//
//	root/
//	  0-0A/0C/      chain 0: sub-chunks 0, 2
//	  1-0B/         chain 1: sub-chunk 1
//
// Decode lists the root, orders the chains by their bucket prefix and walks
// them round-robin, emitting one name per step. Inspect checks a tree's
// shape without producing output.
//
// Every directory is reached through the open handle of its parent, so
// chains may be nested far deeper than PATH_MAX allows. All work is done
// synchronously on the calling goroutine.
package tree

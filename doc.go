// Package main provides the filetree command-line interface.
//
// filetree hides a file in the names of a tree of empty directories and
// recovers it again. The file is cut into fixed-size chunks, each written as
// an uppercase hex directory name, and the chunks are dealt round-robin
// across a fixed number of nested chains.
//
// The binary supports these subcommands:
//   - hide: Encode a file into a directory tree
//   - unhide: Decode a directory tree back into a file
//   - inspect: Check a tree's shape and report on it
//   - verify: Compare a tree with a reference file
//   - mount: Mount the decoded stream read-only through FUSE
//   - seed: Write a test payload
package main

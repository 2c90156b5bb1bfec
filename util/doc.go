// Package util implements the naming convention shared by the filetree
// encoder and decoder, plus the small helpers around it.
//
// A byte stream is cut into sub-chunks of a fixed size and each sub-chunk
// becomes the name of one directory:
//
//   - The payload is the uppercase hexadecimal form of the sub-chunk read as
//     an unsigned integer in a configurable byte order, padded to two digits
//     per byte.
//   - Direct children of the tree root carry a zero-padded decimal bucket
//     index and a '-' in front of the payload ("07-1F2E"), so bucket order
//     can be recovered from a sorted directory listing.
//   - Deeper directories carry the bare payload ("1F2E").
//
// The package also holds the sentinel errors used across filetree, the
// directory listing helper that works on open handles, SHA-256 hashing and
// the TreeInfo report printed by the inspect command.
package util

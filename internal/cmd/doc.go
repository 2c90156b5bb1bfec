// Package cmd provides the command-line interface implementation for filetree.
//
// Each command lives in its own file with a constructor returning a
// *cobra.Command; NewRootCmd wires them into command groups. Flags are
// resolved through a per-command viper instance so every setting can also
// come from a FILETREE_* environment variable or the YAML config file.
//
// Commands:
//   - hide: encode a file into a directory tree
//   - unhide: decode a directory tree back into a file
//   - inspect: check a tree's shape and report on it
//   - verify: decode a tree and compare it with a reference file
//   - mount: serve the decoded stream through a read-only FUSE mount
//   - seed: write a test payload
package cmd

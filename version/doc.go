// Package version reports the filetree build.
//
// Version, Commit and Date are meant to be set at link time:
//
//	go build -ldflags "-X github.com/dendrascience/filetree/version.Version=v1.2.0 \
//	  -X github.com/dendrascience/filetree/version.Commit=$(git rev-parse HEAD)"
//
// Unset values fall back to the module version and VCS stamps recorded by
// the Go toolchain, and then to development placeholders.
package version

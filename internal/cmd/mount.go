package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"bazil.org/fuse"
	"bazil.org/fuse/fs"
	"github.com/dendrascience/filetree/treefs"
	"github.com/dendrascience/filetree/util"
	"github.com/dendrascience/filetree/version"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// NewMountCmd creates and returns the mount subcommand for the filetree CLI.
// It serves the decoded stream of a tree through a read-only FUSE mount.
func NewMountCmd() *cobra.Command {
	var order util.ByteOrder

	cmd := &cobra.Command{
		Use:   "mount TREE_PATH MOUNTPOINT",
		Short: "Mount the decoded stream of a tree read-only",
		Long: `Mount a read-only filesystem at MOUNTPOINT that holds a single file, the
stream TREE_PATH decodes to. The tree is decoded on first access.

TREE_PATH is the root of an encoded tree.
MOUNTPOINT is the directory where the filesystem will be mounted. It must not
lie inside the tree, nor the tree inside it.`,
		Args: cobra.ExactArgs(2),
		RunE: runMount,
	}

	cmd.Flags().VarP(&order, flagByteOrder, "b", `Byte order the tree was encoded with, "big" or "little"`)
	cmd.Flags().IntP(flagWidth, "w", 0, "Width W the tree was encoded with, checked against the tree if set")
	cmd.Flags().Bool(flagLegacyStop, false, "Stop at the first chain end")
	cmd.Flags().StringP("name", "n", treefs.DefaultFileName, "Name of the file in the mount")

	return cmd
}

func runMount(cmd *cobra.Command, args []string) error {
	log := logger(cmd)
	log.Info("filetree starting", zap.String("version", version.GetFullVersion()))

	treePath := args[0]
	mountpoint := args[1]

	if pathsOverlap(treePath, mountpoint) {
		return fmt.Errorf("%w: mountpoint %s overlaps tree %s", util.ErrInvalidConfiguration, mountpoint, treePath)
	}

	v, err := newViper(cmd)
	if err != nil {
		return err
	}
	order, err := byteOrder(v)
	if err != nil {
		return err
	}
	filesystem := treefs.NewFS(treePath, v.GetString("name"), order, log, decodeOptions(cmd, v)...)

	c, err := fuse.Mount(
		mountpoint,
		fuse.FSName("filetree"),
		fuse.Subtype("filetree"),
		fuse.ReadOnly(),
	)
	if err != nil {
		return fmt.Errorf("%w: mount %s: %w", util.ErrIOFailure, mountpoint, err)
	}
	defer c.Close()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt)
	go func() {
		<-sigChan
		log.Info("received interrupt signal, unmounting")
		if err := fuse.Unmount(mountpoint); err != nil {
			log.Error("unmount failed", zap.Error(err))
		}
	}()

	log.Info("tree mounted",
		zap.String("tree", treePath),
		zap.String("mountpoint", mountpoint),
		zap.String("file", filesystem.FileName))
	if err := fs.Serve(c, filesystem); err != nil {
		return fmt.Errorf("%w: serve: %w", util.ErrIOFailure, err)
	}
	log.Info("shutdown complete")
	return nil
}

// pathsOverlap reports whether one path is equal to or nested inside the
// other. Relative paths are resolved against the working directory.
func pathsOverlap(path1, path2 string) bool {
	abs1, err1 := filepath.Abs(path1)
	abs2, err2 := filepath.Abs(path2)
	if err1 != nil || err2 != nil {
		abs1, abs2 = filepath.Clean(path1), filepath.Clean(path2)
	}
	return within(abs1, abs2) || within(abs2, abs1)
}

func within(child, parent string) bool {
	if child == parent {
		return true
	}
	if !strings.HasSuffix(parent, string(filepath.Separator)) {
		parent += string(filepath.Separator)
	}
	return strings.HasPrefix(child, parent)
}

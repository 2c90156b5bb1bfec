package cmd

import (
	"bufio"
	"fmt"
	"os"
	"time"

	"github.com/dendrascience/filetree/tree"
	"github.com/dendrascience/filetree/util"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// NewHideCmd creates and returns the hide subcommand for the filetree CLI.
// It encodes a file into a directory tree.
func NewHideCmd() *cobra.Command {
	var order util.ByteOrder

	cmd := &cobra.Command{
		Use:   "hide",
		Short: "Encode a file into a directory tree",
		Long: `Encode a file into a tree of empty directories under --path.

The file is read C bytes (--count) at a time. Each chunk becomes one directory
name of uppercase hex, and chunks are dealt round-robin across W (--width)
chains. The first directory of every chain carries its zero-padded chain index
as a prefix, e.g. "03-DEADBEEF".

Keep C, W and the byte order: they are not stored with the tree and are needed
to read it back. The tree root must not already contain an encoded tree.`,
		Args: cobra.NoArgs,
		RunE: runHide,
	}

	cmd.Flags().StringP(flagPath, "p", "", "Path of the tree root to create (required)")
	cmd.Flags().StringP(flagFile, "f", "", "File to hide (required)")
	cmd.Flags().IntP(flagCount, "c", 0, "Chunk size C in bytes (required)")
	cmd.Flags().IntP(flagWidth, "w", 0, "Number of chains W (required)")
	cmd.Flags().VarP(&order, flagByteOrder, "b", `Byte order used to render chunks, "big" or "little"`)
	cmd.Flags().Duration(flagThrottle, 0, "Pause after every C*W bytes")
	cmd.Flags().Bool(flagNoProgress, false, "Do not draw a progress bar")

	return cmd
}

func runHide(cmd *cobra.Command, args []string) error {
	v, err := newViper(cmd)
	if err != nil {
		return err
	}
	if err := requireSet(cmd, v, flagPath, flagFile, flagCount, flagWidth); err != nil {
		return err
	}
	order, err := byteOrder(v)
	if err != nil {
		return err
	}
	cfg := tree.Config{
		ChunkSize: v.GetInt(flagCount),
		Width:     v.GetInt(flagWidth),
		ByteOrder: order,
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	treePath, filePath := v.GetString(flagPath), v.GetString(flagFile)
	log := logger(cmd)

	f, err := os.Open(filePath)
	if err != nil {
		return fmt.Errorf("%w: %w", util.ErrIOFailure, err)
	}
	defer f.Close()
	info, err := f.Stat()
	if err != nil {
		return fmt.Errorf("%w: %w", util.ErrIOFailure, err)
	}
	if info.IsDir() {
		return fmt.Errorf("%w: %s", util.ErrExpectedFile, filePath)
	}

	p := newProgress(cmd.ErrOrStderr(), info.Size(), !v.GetBool(flagNoProgress), v.GetDuration(flagThrottle))
	start := time.Now()
	err = tree.Encode(treePath, bufio.NewReader(f), cfg, tree.WithLogger(log), p.option())
	p.finish()
	if err != nil {
		return err
	}

	log.Debug("hide finished", zap.Duration("took", time.Since(start)))
	cmd.Printf("Hid %d bytes of %s in %s (count %d, width %d, %s endian)\n",
		info.Size(), filePath, treePath, cfg.ChunkSize, cfg.Width, cfg.ByteOrder)
	return nil
}

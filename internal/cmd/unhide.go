package cmd

import (
	"bufio"
	"fmt"
	"path/filepath"

	"github.com/dendrascience/filetree/tree"
	"github.com/dendrascience/filetree/util"
	"github.com/google/renameio"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// NewUnhideCmd creates and returns the unhide subcommand for the filetree CLI.
// It decodes a directory tree back into a file.
func NewUnhideCmd() *cobra.Command {
	var order util.ByteOrder

	cmd := &cobra.Command{
		Use:   "unhide",
		Short: "Decode a directory tree back into a file",
		Long: `Decode the tree under --path and write the recovered stream to --file.

The file is replaced atomically: it only appears, or changes, once the whole
tree has been decoded. The tree itself is never modified.

By default every chain is read to its end. --legacy-stop ends the decode at
the first chain end instead, which drops up to W-1 trailing chunks but matches
trees read by older tools byte for byte.`,
		Args: cobra.NoArgs,
		RunE: runUnhide,
	}

	cmd.Flags().StringP(flagPath, "p", "", "Path of the tree root (required)")
	cmd.Flags().StringP(flagFile, "f", "", "File to write (required)")
	cmd.Flags().VarP(&order, flagByteOrder, "b", `Byte order the tree was encoded with, "big" or "little"`)
	cmd.Flags().IntP(flagWidth, "w", 0, "Width W the tree was encoded with, checked against the tree if set")
	cmd.Flags().Bool(flagLegacyStop, false, "Stop at the first chain end")
	cmd.Flags().Bool(flagNoProgress, false, "Do not draw a progress bar")

	return cmd
}

// decodeOptions collects the decode settings shared by unhide, verify and
// mount.
func decodeOptions(cmd *cobra.Command, v *viper.Viper) []tree.Option {
	opts := []tree.Option{tree.WithLogger(logger(cmd))}
	if w := v.GetInt(flagWidth); w > 0 {
		opts = append(opts, tree.WithExpectedWidth(w))
	}
	if v.GetBool(flagLegacyStop) {
		opts = append(opts, tree.WithTermination(tree.StopAtFirstLeaf))
	}
	return opts
}

func runUnhide(cmd *cobra.Command, args []string) (err error) {
	v, err := newViper(cmd)
	if err != nil {
		return err
	}
	if err := requireSet(cmd, v, flagPath, flagFile); err != nil {
		return err
	}
	order, err := byteOrder(v)
	if err != nil {
		return err
	}
	treePath, filePath := v.GetString(flagPath), v.GetString(flagFile)

	out, err := renameio.TempFile("", filePath)
	if err != nil {
		return fmt.Errorf("%w: %w", util.ErrIOFailure, err)
	}
	defer out.Cleanup()

	w := bufio.NewWriter(out)
	p := newProgress(cmd.ErrOrStderr(), 0, !v.GetBool(flagNoProgress), 0)
	n, err := tree.Decode(treePath, w, order, append(decodeOptions(cmd, v), p.option())...)
	p.finish()
	if err != nil {
		return err
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("%w: %w", util.ErrIOFailure, err)
	}
	if err := out.CloseAtomicallyReplace(); err != nil {
		return fmt.Errorf("%w: %w", util.ErrIOFailure, err)
	}

	cmd.Printf("Recovered %d bytes from %s into %s\n", n, treePath, filepath.Clean(filePath))
	return nil
}

package cmd

import (
	"crypto/sha256"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/dendrascience/filetree/tree"
	"github.com/dendrascience/filetree/util"
	"github.com/hlubek/readercomp"
	"github.com/spf13/cobra"
)

var errMismatch = errors.New("decoded stream differs from reference file")

// NewVerifyCmd creates and returns the verify subcommand for the filetree CLI.
// It decodes a tree and compares the result with a reference file.
func NewVerifyCmd() *cobra.Command {
	var order util.ByteOrder

	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Compare a tree with a reference file",
		Long: `Decode the tree under --path and compare the stream with --file without
writing it anywhere. Prints the SHA-256 digest of both and fails if they
differ.`,
		Args: cobra.NoArgs,
		RunE: runVerify,
	}

	cmd.Flags().StringP(flagPath, "p", "", "Path of the tree root (required)")
	cmd.Flags().StringP(flagFile, "f", "", "Reference file (required)")
	cmd.Flags().VarP(&order, flagByteOrder, "b", `Byte order the tree was encoded with, "big" or "little"`)
	cmd.Flags().IntP(flagWidth, "w", 0, "Width W the tree was encoded with, checked against the tree if set")
	cmd.Flags().Bool(flagLegacyStop, false, "Stop at the first chain end")

	return cmd
}

func runVerify(cmd *cobra.Command, args []string) error {
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

	ref, err := os.Open(filePath)
	if err != nil {
		return fmt.Errorf("%w: %w", util.ErrIOFailure, err)
	}
	defer ref.Close()

	pr, pw := io.Pipe()
	decoded := make(chan error, 1)
	go func() {
		_, err := tree.Decode(treePath, pw, order, decodeOptions(cmd, v)...)
		pw.CloseWithError(err)
		decoded <- err
	}()

	h := sha256.New()
	stream := io.TeeReader(pr, h)
	equal, cmpErr := readercomp.Equal(ref, stream, 4096)
	// Drain so the decoder can finish and the digest covers the whole stream.
	_, _ = io.Copy(io.Discard, stream)
	pr.Close()
	if err := <-decoded; err != nil {
		return err
	}
	if cmpErr != nil {
		return fmt.Errorf("%w: %w", util.ErrIOFailure, cmpErr)
	}

	refHash, err := util.GetFileHash(filePath)
	if err != nil {
		return fmt.Errorf("%w: %w", util.ErrIOFailure, err)
	}
	cmd.Printf("%x  %s\n", h.Sum(nil), treePath)
	cmd.Printf("%s  %s\n", refHash, filePath)
	if !equal {
		return errMismatch
	}
	cmd.Println("OK")
	return nil
}

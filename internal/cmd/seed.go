package cmd

import (
	"bufio"
	"fmt"
	"os"

	"github.com/dendrascience/filetree/util"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// NewSeedCmd creates and returns the seed subcommand for the filetree CLI.
// It writes a test payload to hide.
func NewSeedCmd() *cobra.Command {
	var (
		outputPath string
		lineCount  int
	)

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Write a test payload of random UUID lines",
		Long: `Write a file of random UUID lines, one per line, to use as a payload for
hide. Each line is 37 bytes, so --count 1000 gives a 37000 byte file.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSeed(cmd, outputPath, lineCount)
		},
	}

	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Path to output file (required)")
	cmd.Flags().IntVarP(&lineCount, "count", "c", 1000, "Number of lines to generate")

	cmd.MarkFlagRequired("output")

	return cmd
}

func runSeed(cmd *cobra.Command, outputPath string, lineCount int) error {
	if lineCount < 0 {
		return fmt.Errorf("%w: line count %d", util.ErrInvalidConfiguration, lineCount)
	}

	f, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("%w: %w", util.ErrIOFailure, err)
	}
	w := bufio.NewWriter(f)
	for range lineCount {
		if _, err := w.WriteString(uuid.New().String() + "\n"); err != nil {
			f.Close()
			return fmt.Errorf("%w: %w", util.ErrIOFailure, err)
		}
	}
	if err := w.Flush(); err != nil {
		f.Close()
		return fmt.Errorf("%w: %w", util.ErrIOFailure, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("%w: %w", util.ErrIOFailure, err)
	}

	logger(cmd).Debug("seed written", zap.String("output", outputPath), zap.Int("lines", lineCount))
	cmd.Printf("Wrote %d lines to %s\n", lineCount, outputPath)
	return nil
}

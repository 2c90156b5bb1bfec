package cmd

import (
	"github.com/dendrascience/filetree/tree"
	"github.com/dendrascience/filetree/util"
	"github.com/spf13/cobra"
)

// NewInspectCmd creates and returns the inspect subcommand for the filetree CLI.
// It checks a tree's shape without decoding it and reports on it.
func NewInspectCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Check a tree's shape and report on it",
		Long: `Walk every chain of the tree under --path and check that it has the shape
hide produces: numbered chain prefixes, no files, no branching, well-formed
names, and chain depths that differ by at most one.

Reports the width, node count, chain depths, payload size and a short tag that
tells trees apart at a glance. --json prints the report as a JSON document.`,
		Args: cobra.NoArgs,
		RunE: runInspect,
	}

	cmd.Flags().StringP(flagPath, "p", "", "Path of the tree root (required)")
	cmd.Flags().IntP(flagWidth, "w", 0, "Width W the tree was encoded with, checked against the tree if set")
	cmd.Flags().Bool("json", false, "Print the report as JSON")

	return cmd
}

func runInspect(cmd *cobra.Command, args []string) error {
	v, err := newViper(cmd)
	if err != nil {
		return err
	}
	if err := requireSet(cmd, v, flagPath); err != nil {
		return err
	}
	treePath := v.GetString(flagPath)

	opts := []tree.Option{tree.WithLogger(logger(cmd))}
	if w := v.GetInt(flagWidth); w > 0 {
		opts = append(opts, tree.WithExpectedWidth(w))
	}
	info, err := tree.Inspect(treePath, opts...)
	if err != nil {
		return err
	}

	if v.GetBool("json") {
		return info.Encode(cmd.OutOrStdout())
	}
	printTreeInfo(cmd, treePath, info)
	return nil
}

func printTreeInfo(cmd *cobra.Command, treePath string, info util.TreeInfo) {
	cmd.Printf("Tree:         %s\n", treePath)
	cmd.Printf("Tag:          %s\n", info.Tag)
	cmd.Printf("Width:        %d\n", info.Width)
	cmd.Printf("Nodes:        %d\n", info.Nodes)
	cmd.Printf("Max depth:    %d\n", info.MaxDepth())
	cmd.Printf("Payload:      %d bytes\n", info.PayloadSize)
	cmd.Printf("Longest name: %d\n", info.LongestName)
	if len(info.ChainDepths) > 0 {
		cmd.Printf("Chain depths: %v\n", info.ChainDepths)
	}
}

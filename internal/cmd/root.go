package cmd

import (
	"github.com/dendrascience/filetree/version"
	"github.com/spf13/cobra"
)

// NewRootCmd creates and returns the root cobra command for the filetree CLI.
// It sets up all subcommands, command groups, and the global flags.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "filetree",
		Short: "filetree - hide a file in the names of a directory tree",
		Long: `filetree stores a byte stream entirely in the names of nested, empty
directories and recovers it again.

The stream is cut into chunks of C bytes, each written as an uppercase hex
directory name, and the chunks are dealt round-robin across W chains. C and W
are not stored with the tree; they must be supplied again to read it back.

Use subcommands to perform different operations:
  - hide: Encode a file into a directory tree
  - unhide: Decode a directory tree back into a file
  - inspect: Check a tree's shape and report on it
  - verify: Compare a tree with a reference file
  - mount: Mount the decoded stream read-only
  - seed: Write a test payload`,
		Version:      version.GetFullVersion(),
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			verbose, _ := cmd.Flags().GetBool(flagVerbose)
			setLogger(cmd, newLogger(cmd.ErrOrStderr(), verbose))
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = logger(cmd).Sync()
		},
	}

	rootCmd.PersistentFlags().String(flagConfig, "", "config file (default is $HOME/.config/filetree.yaml)")
	rootCmd.PersistentFlags().Bool(flagVerbose, false, "Enable debug logging")

	groupTree := "tree"
	groupUtilities := "utilities"

	rootCmd.AddGroup(&cobra.Group{
		ID:    groupTree,
		Title: "Tree Operations",
	})
	rootCmd.AddGroup(&cobra.Group{
		ID:    groupUtilities,
		Title: "Utility Commands",
	})

	hideCmd := NewHideCmd()
	unhideCmd := NewUnhideCmd()
	inspectCmd := NewInspectCmd()
	verifyCmd := NewVerifyCmd()
	mountCmd := NewMountCmd()
	seedCmd := NewSeedCmd()

	hideCmd.GroupID = groupTree
	unhideCmd.GroupID = groupTree
	mountCmd.GroupID = groupTree
	inspectCmd.GroupID = groupUtilities
	verifyCmd.GroupID = groupUtilities
	seedCmd.GroupID = groupUtilities

	rootCmd.AddCommand(hideCmd)
	rootCmd.AddCommand(unhideCmd)
	rootCmd.AddCommand(inspectCmd)
	rootCmd.AddCommand(verifyCmd)
	rootCmd.AddCommand(mountCmd)
	rootCmd.AddCommand(seedCmd)

	return rootCmd
}

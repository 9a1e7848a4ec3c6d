// Package cli wires the git façade to a cobra command tree. Every command
// resolves the enclosing repository first, then runs one façade operation.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"gitbridge.dev/gitbridge/internal/contents"
	"gitbridge.dev/gitbridge/internal/git"
	"gitbridge.dev/gitbridge/internal/output"
)

// repoPath is the persistent --repo flag shared by all subcommands.
var repoPath string

// NewRootCmd creates the root cobra command
func NewRootCmd(version, commit, date string) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "gitbridge",
		Short: "Gitbridge exposes git repositories through structured operations",
		Long: `Gitbridge runs git as a child process and turns its text output into
structured results, for both human use and machine callers via the invoke
command.`,
		Version: fmt.Sprintf("%s (commit %s, built %s)", version, commit, date),
	}

	rootCmd.PersistentFlags().StringVarP(&repoPath, "repo", "C", ".", "Path inside the repository to operate on")

	rootCmd.AddCommand(newStatusCmd())
	rootCmd.AddCommand(newLogCmd())
	rootCmd.AddCommand(newBranchCmd())
	rootCmd.AddCommand(newCloneCmd())
	rootCmd.AddCommand(newInvokeCmd())
	rootCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the gitbridge version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "gitbridge %s (commit %s, built %s)\n", version, commit, date)
		},
	})

	return rootCmd
}

// openFacade locates the repository enclosing the --repo path and builds a
// façade rooted there, logging to the shared rotated log file.
func openFacade() (*git.Git, *output.Splog, error) {
	root, err := git.FindRepoRoot(repoPath)
	if err != nil {
		return nil, nil, err
	}

	splog, err := output.NewSplogWithFile(output.GetLogFilePath())
	if err != nil {
		// Fall back to console-only logging rather than refusing to run.
		splog = output.NewSplog()
	}

	facade := git.NewWithBackends(root, git.NewCommandRunner(), git.PtyAuthRunner{}, contents.NewDir(root), splog.Logger())
	return facade, splog, nil
}

package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"gitbridge.dev/gitbridge/internal/git"
)

// newLogCmd creates the log command
func newLogCmd() *cobra.Command {
	var count int

	cmd := &cobra.Command{
		Use:     "log",
		Short:   "Show recent commits, newest first",
		Aliases: []string{"l"},
		RunE: func(cmd *cobra.Command, args []string) error {
			facade, splog, err := openFacade()
			if err != nil {
				return err
			}
			defer func() { _ = splog.Close() }()

			res := facade.Log(cmd.Context(), "", count)
			if res.Code != 0 {
				return fmt.Errorf("log failed: %s", res.Message)
			}

			for _, commit := range res.Commits {
				splog.Info("%s %s", ColorCyan(shortID(commit)), commit.Subject)
				splog.Info("  %s, %s", commit.Author, commit.RelativeDate)
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&count, "count", "n", git.DefaultHistoryCount, "Number of commits to show")

	return cmd
}

func shortID(commit git.LogEntry) string {
	if len(commit.CommitID) > 8 {
		return commit.CommitID[:8]
	}
	return commit.CommitID
}

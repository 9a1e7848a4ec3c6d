package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// newStatusCmd creates the status command
func newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show changed files with their index and working-tree states",
		RunE: func(cmd *cobra.Command, args []string) error {
			facade, splog, err := openFacade()
			if err != nil {
				return err
			}
			defer func() { _ = splog.Close() }()

			res := facade.Status(cmd.Context(), "")
			if res.Code != 0 {
				return fmt.Errorf("status failed: %s", res.Message)
			}

			if len(res.Files) == 0 {
				splog.Info("working tree clean")
				return nil
			}

			for _, entry := range res.Files {
				state := entry.IndexState + entry.WorktreeState
				line := fmt.Sprintf("%s %s", ColorYellow(state), entry.Path)
				if entry.RenamedFrom != "" {
					line = fmt.Sprintf("%s %s -> %s", ColorYellow(state), entry.RenamedFrom, entry.Path)
				}
				splog.Info("%s", line)
			}
			return nil
		},
	}
}

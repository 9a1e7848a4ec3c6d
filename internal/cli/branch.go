package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// newBranchCmd creates the branch command
func newBranchCmd() *cobra.Command {
	var showRemotes bool

	cmd := &cobra.Command{
		Use:   "branch",
		Short: "List branches, marking the current one",
		RunE: func(cmd *cobra.Command, args []string) error {
			facade, splog, err := openFacade()
			if err != nil {
				return err
			}
			defer func() { _ = splog.Close() }()

			res := facade.Branch(cmd.Context(), "")
			if res.Code != 0 {
				return fmt.Errorf("branch failed: %s", res.Message)
			}

			for _, branch := range res.Branches {
				if branch.IsRemote && !showRemotes {
					continue
				}
				name := branch.Name
				switch {
				case branch.IsCurrent:
					name = "* " + ColorGreen(name)
				case branch.IsRemote:
					name = "  " + ColorRed(name)
				default:
					name = "  " + name
				}
				if branch.Upstream != nil && *branch.Upstream != "" {
					name += ColorCyan(fmt.Sprintf(" [%s]", *branch.Upstream))
				}
				splog.Info("%s", name)
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&showRemotes, "all", "a", false, "Include remote-tracking branches")

	return cmd
}

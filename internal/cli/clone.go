package cli

import (
	"fmt"
	"os"

	"github.com/AlecAivazis/survey/v2"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"gitbridge.dev/gitbridge/internal/git"
	"gitbridge.dev/gitbridge/internal/output"
)

// newCloneCmd creates the clone command
func newCloneCmd() *cobra.Command {
	var withAuth bool

	cmd := &cobra.Command{
		Use:   "clone <url>",
		Short: "Clone a repository, optionally prompting for credentials",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			splog, err := output.NewSplogWithFile(output.GetLogFilePath())
			if err != nil {
				splog = output.NewSplog()
			}
			defer func() { _ = splog.Close() }()

			// Cloning targets a directory, not an existing repository, so
			// the façade is rooted at the destination rather than discovered.
			facade := git.New(repoPath, nil)

			var creds *git.Credentials
			if withAuth {
				creds, err = promptCredentials()
				if err != nil {
					return err
				}
			}

			res := facade.Clone(cmd.Context(), "", args[0], creds)
			if res.Code != 0 {
				return fmt.Errorf("clone failed: %s", res.Message)
			}

			splog.Info("cloned %s", args[0])
			return nil
		},
	}

	cmd.Flags().BoolVar(&withAuth, "auth", false, "Prompt for a username and password")

	return cmd
}

// promptCredentials asks for a username and password on the terminal. The
// answers live only in memory for this invocation and are never logged.
func promptCredentials() (*git.Credentials, error) {
	if !isatty.IsTerminal(os.Stdin.Fd()) && !isatty.IsCygwinTerminal(os.Stdin.Fd()) {
		return nil, fmt.Errorf("--auth requires an interactive terminal")
	}

	var creds git.Credentials
	if err := survey.AskOne(&survey.Input{Message: "Username:"}, &creds.Username, survey.WithValidator(survey.Required)); err != nil {
		return nil, err
	}
	if err := survey.AskOne(&survey.Password{Message: "Password:"}, &creds.Password, survey.WithValidator(survey.Required)); err != nil {
		return nil, err
	}
	return &creds, nil
}

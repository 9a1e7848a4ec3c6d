package git

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"regexp"

	"github.com/creack/pty"
	"github.com/kballard/go-shellquote"
)

// Credentials hold a username/password pair for a single authenticated git
// invocation. They live only in memory for the duration of that call and are
// transmitted once each over the pseudo-terminal, never persisted or logged.
type Credentials struct {
	Username string
	Password string
}

// Prompt patterns emitted by git when terminal prompting is enabled. Some
// providers embed the username in the remote URL, in which case git skips
// straight to the password prompt.
var (
	usernamePromptPattern = regexp.MustCompile(`Username for .*: `)
	passwordPromptPattern = regexp.MustCompile(`Password for .*:`)
)

// AuthRunner runs a git command attached to a pseudo-terminal, watches for
// credential prompts and answers them.
type AuthRunner interface {
	RunInteractive(ctx context.Context, commandLine, cwd string, creds Credentials) (CommandResult, error)
}

// PtyAuthRunner drives the real git binary over a pseudo-terminal.
//
// The returned CommandResult carries the full session transcript in Stdout;
// a pty has a single combined output stream, so Stderr is always empty. When
// the stream ends before a prompt was ever matched (git did not need
// interaction, or rejected the operation outright) the transcript and exit
// status collected so far are returned as a best-effort result rather than a
// distinct error: callers must treat that path as potentially incomplete.
type PtyAuthRunner struct{}

func (PtyAuthRunner) RunInteractive(ctx context.Context, commandLine, cwd string, creds Credentials) (CommandResult, error) {
	words, err := shellquote.Split(commandLine)
	if err != nil {
		return CommandResult{}, fmt.Errorf("parse command line: %w", err)
	}
	if len(words) == 0 {
		return CommandResult{}, fmt.Errorf("empty command line")
	}

	if ctx == nil {
		ctx = context.Background()
	}
	cmd := exec.CommandContext(ctx, words[0], words[1:]...)
	if cwd != "" {
		cmd.Dir = cwd
	}
	// Terminal prompting is forced for this child only; the host process
	// environment is left untouched.
	cmd.Env = append(os.Environ(), "GIT_TERMINAL_PROMPT=1")

	ptmx, err := pty.Start(cmd)
	if err != nil {
		return CommandResult{}, fmt.Errorf("start pty: %w", err)
	}

	var transcript bytes.Buffer
	which, expectErr := expect(ptmx, &transcript, usernamePromptPattern, passwordPromptPattern)
	if expectErr == nil {
		switch which {
		case 0:
			// Username first, then await the password prompt.
			if err := sendLine(ptmx, creds.Username); err == nil {
				if _, err := expect(ptmx, &transcript, passwordPromptPattern); err == nil {
					_ = sendLine(ptmx, creds.Password)
				}
			}
		case 1:
			_ = sendLine(ptmx, creds.Password)
		}
	}

	// Drain to end-of-stream regardless of whether the prompts matched.
	// Reads on a Linux pty fail with EIO once the child closes its side;
	// that is the normal end of session, not a failure.
	_, _ = io.Copy(&transcript, ptmx)
	_ = ptmx.Close()

	result := CommandResult{Stdout: transcript.Bytes()}
	if err := cmd.Wait(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			result.ExitCode = exitErr.ExitCode()
			return result, nil
		}
		return result, fmt.Errorf("wait for %s: %w", words[0], err)
	}
	return result, nil
}

// expect reads from r into transcript until one of the patterns matches the
// collected text or the stream ends. It returns the index of the pattern
// that matched.
func expect(r io.Reader, transcript *bytes.Buffer, patterns ...*regexp.Regexp) (int, error) {
	buf := make([]byte, 4096)
	for {
		for i, pattern := range patterns {
			if pattern.Match(transcript.Bytes()) {
				return i, nil
			}
		}
		n, err := r.Read(buf)
		if n > 0 {
			transcript.Write(buf[:n])
			continue
		}
		if err != nil {
			return -1, err
		}
	}
}

func sendLine(w io.Writer, line string) error {
	_, err := w.Write([]byte(line + "\n"))
	return err
}

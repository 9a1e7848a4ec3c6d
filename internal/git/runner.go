package git

import (
	"bytes"
	"context"
	"errors"
	"os"
	"os/exec"
	"strings"
	"time"

	gberrors "gitbridge.dev/gitbridge/internal/errors"
)

// DefaultCommandTimeout is the default timeout for git commands
const DefaultCommandTimeout = 5 * time.Minute

// CommandResult captures everything a finished child process left behind.
// A non-zero exit status is data for the caller to interpret, not an error.
type CommandResult struct {
	ExitCode int
	Stdout   []byte
	Stderr   []byte
}

// Ok reports whether the process exited zero.
func (r CommandResult) Ok() bool {
	return r.ExitCode == 0
}

// StderrText returns the stderr stream as trimmed text.
func (r CommandResult) StderrText() string {
	return strings.TrimSpace(string(r.Stderr))
}

// Runner executes the git binary with the given argv in a working directory,
// blocking until exit and capturing both output streams in full. An error is
// returned only when the process could not be run at all.
type Runner interface {
	Run(ctx context.Context, cwd string, args ...string) (CommandResult, error)
	RunWithEnv(ctx context.Context, cwd string, env []string, args ...string) (CommandResult, error)
	RunWithInput(ctx context.Context, cwd string, input string, args ...string) (CommandResult, error)
}

// CommandRunner runs the configured git binary as a child process.
type CommandRunner struct {
	GitBin string
}

// NewCommandRunner creates a CommandRunner using the git binary from PATH.
func NewCommandRunner() *CommandRunner {
	return &CommandRunner{GitBin: "git"}
}

func (r *CommandRunner) Run(ctx context.Context, cwd string, args ...string) (CommandResult, error) {
	return r.run(ctx, cwd, nil, "", args...)
}

func (r *CommandRunner) RunWithEnv(ctx context.Context, cwd string, env []string, args ...string) (CommandResult, error) {
	return r.run(ctx, cwd, env, "", args...)
}

func (r *CommandRunner) RunWithInput(ctx context.Context, cwd string, input string, args ...string) (CommandResult, error) {
	return r.run(ctx, cwd, nil, input, args...)
}

func (r *CommandRunner) run(ctx context.Context, cwd string, env []string, input string, args ...string) (CommandResult, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	// If no timeout/deadline is set in the context, add the default one
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, DefaultCommandTimeout)
		defer cancel()
	}

	bin := r.GitBin
	if bin == "" {
		bin = "git"
	}

	cmd := exec.CommandContext(ctx, bin, args...)
	if cwd != "" {
		cmd.Dir = cwd
	}
	if len(env) > 0 {
		// Overlay on the inherited environment. The ambient process
		// environment is never mutated.
		cmd.Env = append(os.Environ(), env...)
	}
	if input != "" {
		cmd.Stdin = strings.NewReader(input)
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	result := CommandResult{Stdout: stdout.Bytes(), Stderr: stderr.Bytes()}
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			result.ExitCode = exitErr.ExitCode()
			return result, nil
		}
		return result, gberrors.NewGitCommandError(bin, args, stdout.String(), stderr.String(), err)
	}
	return result, nil
}

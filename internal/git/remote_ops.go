package git

import (
	"context"
	"fmt"
	"net/url"
	"strings"
)

// Clone clones a repository from repoURL into the directory at path. With
// credentials the clone runs attached to a pseudo-terminal and prompts are
// answered automatically; without them terminal prompting is disabled so the
// child process can never hang waiting for input.
func (g *Git) Clone(ctx context.Context, path, repoURL string, creds *Credentials) Result {
	decoded, err := url.PathUnescape(repoURL)
	if err != nil {
		return contractViolation(fmt.Sprintf("invalid repository URL escape: %v", err))
	}

	if creds != nil {
		return g.authenticated(ctx, path, fmt.Sprintf("git clone %s -q", decoded), *creds)
	}
	return g.unauthenticated(ctx, path, "clone", decoded)
}

// Pull fetches and integrates remote changes without committing the merge.
func (g *Git) Pull(ctx context.Context, path string, creds *Credentials) Result {
	if creds != nil {
		return g.authenticated(ctx, path, "git pull --no-commit", *creds)
	}
	return g.unauthenticated(ctx, path, "pull", "--no-commit")
}

// Push pushes branch to remote. The choice of remote and branch is up to the
// caller; remote may be a URL and is percent-decoded before use.
func (g *Git) Push(ctx context.Context, remote, branch, path string, creds *Credentials) Result {
	decoded, err := url.PathUnescape(remote)
	if err != nil {
		return contractViolation(fmt.Sprintf("invalid remote escape: %v", err))
	}

	if creds != nil {
		return g.authenticated(ctx, path, fmt.Sprintf("git push %s %s", decoded, branch), *creds)
	}
	return g.unauthenticated(ctx, path, "push", decoded, branch)
}

// authenticated runs commandLine over the pty auth channel. On failure the
// session transcript is the message, which may be incomplete if the channel
// never saw a prompt.
func (g *Git) authenticated(ctx context.Context, path, commandLine string, creds Credentials) Result {
	res, err := g.auth.RunInteractive(ctx, commandLine, g.at(path), creds)
	if err != nil {
		return internalFailure(commandLine, err)
	}
	if !res.Ok() {
		return Result{Code: res.ExitCode, Message: strings.TrimSpace(string(res.Stdout))}
	}
	return Result{}
}

// unauthenticated runs argv with terminal prompting disabled for the child.
func (g *Git) unauthenticated(ctx context.Context, path string, args ...string) Result {
	res, err := g.runner.RunWithEnv(ctx, g.at(path), []string{"GIT_TERMINAL_PROMPT=0"}, args...)
	if err != nil {
		return internalFailure(commandString(args), err)
	}
	if !res.Ok() {
		return Result{Code: res.ExitCode, Message: res.StderrText()}
	}
	return Result{}
}

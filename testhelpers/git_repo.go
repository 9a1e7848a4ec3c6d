// Package testhelpers provides disposable git repositories for integration
// tests. Tests that need the real git binary should call RequireGit first so
// they skip cleanly on hosts without it.
package testhelpers

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
)

// GitRepo represents a Git repository for testing purposes.
type GitRepo struct {
	Dir string
}

// RequireGit skips the test when no git binary is on PATH.
func RequireGit(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git binary not available")
	}
}

// NewGitRepo creates a repository in a fresh temporary directory, registered
// for cleanup with the test. The repository has a configured user so commits
// work immediately.
func NewGitRepo(t *testing.T) *GitRepo {
	t.Helper()
	RequireGit(t)

	dir := t.TempDir()
	repo := &GitRepo{Dir: dir}

	// Pin the default branch and skip global config so tests behave the same
	// on every host.
	cmd := exec.Command("git", "-c", "init.defaultBranch=main", "-c", "core.autocrlf=false", "init", dir, "-b", "main")
	cmd.Env = append(os.Environ(), "GIT_CONFIG_GLOBAL=/dev/null")
	if err := cmd.Run(); err != nil {
		t.Fatalf("failed to init repo: %v", err)
	}

	repo.MustRun(t, "config", "user.name", "Test User")
	repo.MustRun(t, "config", "user.email", "test@example.com")

	return repo
}

// Run executes a git command in the repository directory.
func (r *GitRepo) Run(args ...string) error {
	cmd := exec.Command("git", args...)
	cmd.Dir = r.Dir
	cmd.Env = append(os.Environ(), "GIT_CONFIG_GLOBAL=/dev/null")
	return cmd.Run()
}

// MustRun executes a git command and fails the test on error.
func (r *GitRepo) MustRun(t *testing.T, args ...string) {
	t.Helper()
	if err := r.Run(args...); err != nil {
		t.Fatalf("git %s failed: %v", strings.Join(args, " "), err)
	}
}

// Output executes a git command and returns its trimmed stdout.
func (r *GitRepo) Output(args ...string) (string, error) {
	cmd := exec.Command("git", args...)
	cmd.Dir = r.Dir
	cmd.Env = append(os.Environ(), "GIT_CONFIG_GLOBAL=/dev/null")
	output, err := cmd.Output()
	if err != nil {
		return "", fmt.Errorf("git command failed: %w", err)
	}
	return strings.TrimSpace(string(output)), nil
}

// WriteFile writes content to a file inside the repository, creating parent
// directories as needed.
func (r *GitRepo) WriteFile(t *testing.T, name, content string) {
	t.Helper()
	path := filepath.Join(r.Dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		t.Fatalf("failed to create directory for %s: %v", name, err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
}

// CreateChangeAndCommit writes a file and commits it.
func (r *GitRepo) CreateChangeAndCommit(t *testing.T, name, content, message string) {
	t.Helper()
	r.WriteFile(t, name, content)
	r.MustRun(t, "add", name)
	r.MustRun(t, "commit", "-m", message)
}

// HeadCommit returns the SHA of the current HEAD.
func (r *GitRepo) HeadCommit(t *testing.T) string {
	t.Helper()
	sha, err := r.Output("rev-parse", "HEAD")
	if err != nil {
		t.Fatalf("failed to resolve HEAD: %v", err)
	}
	return sha
}

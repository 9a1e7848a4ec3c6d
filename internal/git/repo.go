package git

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	gogit "github.com/go-git/go-git/v5"
)

// ShowTopLevel resolves the repository root containing path.
func (g *Git) ShowTopLevel(ctx context.Context, path string) PathResult {
	args := []string{"rev-parse", "--show-toplevel"}
	res, err := g.runner.Run(ctx, g.at(path), args...)
	if err != nil {
		return PathResult{Result: internalFailure(commandString(args), err)}
	}
	if !res.Ok() {
		return PathResult{Result: commandFailure(commandString(args), res)}
	}
	return PathResult{Path: strings.TrimRight(string(res.Stdout), "\n")}
}

// ShowPrefix resolves the path of the current directory relative to the
// repository root.
func (g *Git) ShowPrefix(ctx context.Context, path string) PathResult {
	args := []string{"rev-parse", "--show-prefix"}
	res, err := g.runner.Run(ctx, g.at(path), args...)
	if err != nil {
		return PathResult{Result: internalFailure(commandString(args), err)}
	}
	if !res.Ok() {
		return PathResult{Result: commandFailure(commandString(args), res)}
	}
	return PathResult{Path: strings.TrimRight(string(res.Stdout), "\n")}
}

// FindRepoRoot locates the repository containing dir using go-git's
// discovery rules (walking up until a .git is found) and returns its
// working-tree root. The CLI uses this to root a façade without spawning a
// subprocess first.
func FindRepoRoot(dir string) (string, error) {
	absPath, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("failed to resolve path: %w", err)
	}

	repo, err := gogit.PlainOpenWithOptions(absPath, &gogit.PlainOpenOptions{
		DetectDotGit: true,
	})
	if err != nil {
		return "", fmt.Errorf("not a git repository: %w", err)
	}

	worktree, err := repo.Worktree()
	if err != nil {
		return "", fmt.Errorf("failed to get worktree: %w", err)
	}
	return worktree.Filesystem.Root(), nil
}

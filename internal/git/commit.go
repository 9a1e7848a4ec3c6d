package git

import "context"

// Commit records the staged changes with the given message.
func (g *Git) Commit(ctx context.Context, path, message string) Result {
	return g.simple(ctx, path, "commit", "-m", message)
}

// Init initializes a new repository at path.
func (g *Git) Init(ctx context.Context, path string) Result {
	return g.simple(ctx, path, "init")
}

// DeleteCommit reverts the named commit without committing the revert, so
// the caller can inspect and commit the removal explicitly.
func (g *Git) DeleteCommit(ctx context.Context, path, commitID string) Result {
	return g.simple(ctx, path, "revert", "--no-commit", commitID)
}

// ResetToCommit hard-resets the current branch to the named commit, or to
// HEAD when commitID is empty.
func (g *Git) ResetToCommit(ctx context.Context, path, commitID string) Result {
	args := []string{"reset", "--hard"}
	if commitID != "" {
		args = append(args, commitID)
	}
	return g.simple(ctx, path, args...)
}

package git

import (
	"context"
	"strings"
)

// CheckoutFile restores one file from the index, discarding its working-tree
// edits.
func (g *Git) CheckoutFile(ctx context.Context, path, file string) Result {
	return g.simple(ctx, path, "checkout", "--", file)
}

// CheckoutAll restores the whole working tree from the index.
func (g *Git) CheckoutAll(ctx context.Context, path string) Result {
	return g.simple(ctx, path, "checkout", "--", ".")
}

// CheckoutNewBranch creates and switches to a new branch.
func (g *Git) CheckoutNewBranch(ctx context.Context, path, name string) Result {
	return g.verbose(ctx, path, "checkout", "-b", name)
}

// CheckoutBranch switches to a branch, using --track when the name resolves
// to a remote-tracking ref so a local branch is created for it.
func (g *Git) CheckoutBranch(ctx context.Context, path, name string) Result {
	if strings.HasPrefix(g.branchReference(ctx, path, name), "refs/remotes/") {
		return g.verbose(ctx, path, "checkout", "--track", name)
	}
	return g.verbose(ctx, path, "checkout", name)
}

// branchReference resolves a branch name to its full symbolic ref, or ""
// when it does not resolve.
func (g *Git) branchReference(ctx context.Context, path, name string) string {
	res, err := g.runner.Run(ctx, g.at(path), "rev-parse", "--symbolic-full-name", name)
	if err != nil || !res.Ok() {
		return ""
	}
	return strings.TrimSpace(string(res.Stdout))
}

package git

import (
	"context"
	"errors"
	"fmt"
	"strings"

	gberrors "gitbridge.dev/gitbridge/internal/errors"
)

// for-each-ref field layout, tab separated.
// Reference: https://git-scm.com/docs/git-for-each-ref#_field_names
const (
	headsRefFormat   = "%(refname:short)%09%(objectname)%09%(upstream:short)%09%(HEAD)"
	remotesRefFormat = "%(refname:short)%09%(objectname)"
)

// Branch lists local and remote branches at path. The current-branch flag
// comes from the local listing; when no local ref resolves (a freshly
// initialized repository with no commits) a current-branch entry is
// synthesized from the symbolic-ref lookup instead of failing.
func (g *Git) Branch(ctx context.Context, path string) BranchResult {
	heads := g.branchHeads(ctx, path)
	if heads.Code != 0 {
		return heads
	}
	remotes := g.branchRemotes(ctx, path)
	if remotes.Code != 0 {
		return remotes
	}
	heads.Branches = append(heads.Branches, remotes.Branches...)
	return heads
}

func (g *Git) branchHeads(ctx context.Context, path string) BranchResult {
	args := []string{"for-each-ref", "--format=" + headsRefFormat, "refs/heads/"}
	res, err := g.runner.Run(ctx, g.at(path), args...)
	if err != nil {
		return BranchResult{Result: internalFailure(commandString(args), err)}
	}
	if !res.Ok() {
		return BranchResult{Result: commandFailure(commandString(args), res)}
	}

	var current *BranchEntry
	var branches []BranchEntry
	for _, line := range splitLines(res.Stdout) {
		fields := strings.Split(line, "\t")
		if len(fields) != 4 {
			return BranchResult{Result: internalFailure(commandString(args), fmt.Errorf("unexpected for-each-ref line %q", line))}
		}
		sha := fields[1]
		entry := BranchEntry{
			Name:      fields[0],
			IsCurrent: strings.TrimSpace(fields[3]) != "",
			TopCommit: &sha,
			Upstream:  optional(fields[2]),
		}
		branches = append(branches, entry)
		if entry.IsCurrent {
			picked := entry
			current = &picked
		}
	}

	// The listing is empty for a repository with no commits; fall back to
	// resolving just the current branch name.
	if current == nil {
		name, err := g.CurrentBranch(ctx, path)
		if err != nil {
			return BranchResult{Result: internalFailure(commandString(args), err)}
		}
		synthesized := BranchEntry{Name: name, IsCurrent: true}
		branches = append(branches, synthesized)
		current = &synthesized
	}

	return BranchResult{Branches: branches, CurrentBranch: current}
}

func (g *Git) branchRemotes(ctx context.Context, path string) BranchResult {
	args := []string{"for-each-ref", "--format=" + remotesRefFormat, "refs/remotes/"}
	res, err := g.runner.Run(ctx, g.at(path), args...)
	if err != nil {
		return BranchResult{Result: internalFailure(commandString(args), err)}
	}
	if !res.Ok() {
		return BranchResult{Result: commandFailure(commandString(args), res)}
	}

	var branches []BranchEntry
	for _, line := range splitLines(res.Stdout) {
		fields := strings.Split(line, "\t")
		if len(fields) != 2 {
			return BranchResult{Result: internalFailure(commandString(args), fmt.Errorf("unexpected for-each-ref line %q", line))}
		}
		sha := fields[1]
		branches = append(branches, BranchEntry{
			Name:      fields[0],
			IsRemote:  true,
			TopCommit: &sha,
		})
	}
	return BranchResult{Branches: branches}
}

// CurrentBranch resolves the checked-out branch name with a symbolic-ref
// lookup, falling back to scanning the branch listing when HEAD is detached.
// Any other failure is an UnexpectedToolError carrying the raw diagnostic.
// See https://git-blame.blogspot.com/2013/06/checking-current-branch-programatically.html
func (g *Git) CurrentBranch(ctx context.Context, path string) (string, error) {
	args := []string{"symbolic-ref", "HEAD"}
	res, err := g.runner.Run(ctx, g.at(path), args...)
	if err != nil {
		return "", err
	}
	if res.Ok() {
		ref := strings.TrimSpace(string(res.Stdout))
		parts := strings.Split(ref, "/")
		return parts[len(parts)-1], nil
	}
	if strings.Contains(strings.ToLower(string(res.Stderr)), "not a symbolic ref") {
		return g.currentBranchDetached(ctx, path)
	}
	return "", gberrors.NewUnexpectedToolError(commandString(args), string(res.Stderr))
}

// currentBranchDetached scans `git branch -a` for the entry marked current.
func (g *Git) currentBranchDetached(ctx context.Context, path string) (string, error) {
	args := []string{"branch", "-a"}
	res, err := g.runner.Run(ctx, g.at(path), args...)
	if err != nil {
		return "", err
	}
	if !res.Ok() {
		return "", gberrors.NewUnexpectedToolError(commandString(args), string(res.Stderr))
	}
	for _, line := range splitLines(res.Stdout) {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, "*") {
			return strings.TrimLeft(line, "* "), nil
		}
	}
	return "", gberrors.NewUnexpectedToolError(commandString(args), "no current branch in listing")
}

// UpstreamBranch returns the upstream tracked by branch, or ErrNoUpstream
// when none is configured. Any failure outside the two expected diagnostics
// is an UnexpectedToolError.
func (g *Git) UpstreamBranch(ctx context.Context, path, branch string) (string, error) {
	args := []string{"rev-parse", "--abbrev-ref", branch + "@{upstream}"}
	res, err := g.runner.Run(ctx, g.at(path), args...)
	if err != nil {
		return "", err
	}
	if res.Ok() {
		return strings.TrimSpace(string(res.Stdout)), nil
	}
	stderr := strings.ToLower(string(res.Stderr))
	if strings.Contains(stderr, "fatal: no upstream configured for branch") ||
		strings.Contains(stderr, "unknown revision or path not in the working tree") {
		return "", gberrors.ErrNoUpstream
	}
	return "", gberrors.NewUnexpectedToolError(commandString(args), string(res.Stderr))
}

// NearestTag returns the closest tag describing sha, or ErrNoTag when no tag
// reaches it.
func (g *Git) NearestTag(ctx context.Context, path, sha string) (string, error) {
	args := []string{"describe", "--tags", sha}
	res, err := g.runner.Run(ctx, g.at(path), args...)
	if err != nil {
		return "", err
	}
	if res.Ok() {
		return strings.TrimSpace(string(res.Stdout)), nil
	}
	stderr := strings.ToLower(string(res.Stderr))
	if strings.Contains(stderr, fmt.Sprintf("fatal: no tags can describe '%s'", strings.ToLower(sha))) ||
		strings.Contains(stderr, "fatal: no names found") {
		return "", gberrors.ErrNoTag
	}
	return "", gberrors.NewUnexpectedToolError(commandString(args), string(res.Stderr))
}

// Upstream wraps UpstreamBranch in an envelope; no configured upstream is a
// success with an empty payload.
func (g *Git) Upstream(ctx context.Context, path, branch string) UpstreamResult {
	name, err := g.UpstreamBranch(ctx, path, branch)
	switch {
	case err == nil:
		return UpstreamResult{Upstream: name}
	case errors.Is(err, gberrors.ErrNoUpstream):
		return UpstreamResult{}
	default:
		return UpstreamResult{Result: internalFailure("git rev-parse --abbrev-ref "+branch+"@{upstream}", err)}
	}
}

// Tag wraps NearestTag in an envelope; an undescribable commit is a success
// with an empty payload.
func (g *Git) Tag(ctx context.Context, path, sha string) TagResult {
	tag, err := g.NearestTag(ctx, path, sha)
	switch {
	case err == nil:
		return TagResult{Tag: tag}
	case errors.Is(err, gberrors.ErrNoTag):
		return TagResult{}
	default:
		return TagResult{Result: internalFailure("git describe --tags "+sha, err)}
	}
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

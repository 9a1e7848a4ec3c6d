package git

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	gberrors "gitbridge.dev/gitbridge/internal/errors"
)

// endpointKind enumerates the closed set of comparison endpoints. The
// working tree and the index are first-class endpoints rather than reserved
// ref strings, so every diff view shares one code path; extend by adding a
// variant, never a string sentinel.
type endpointKind int

const (
	committedRef endpointKind = iota
	workingTree
	stagingIndex
)

// Endpoint is one side of a comparison: a committed ref, the live working
// tree, or the staging index.
type Endpoint struct {
	kind endpointKind
	ref  string
}

// CommittedRef is an endpoint naming a commit by sha, branch or other ref.
func CommittedRef(ref string) Endpoint {
	return Endpoint{kind: committedRef, ref: ref}
}

// WorkingTree is the endpoint for the files currently on disk, including
// uncommitted edits.
func WorkingTree() Endpoint {
	return Endpoint{kind: workingTree}
}

// Index is the endpoint for the staging area.
func Index() Endpoint {
	return Endpoint{kind: stagingIndex}
}

// Ref returns the committed ref name, if the endpoint carries one.
func (e Endpoint) Ref() string {
	return e.ref
}

// IsCommitted reports whether the endpoint names a committed ref.
func (e Endpoint) IsCommitted() bool {
	return e.kind == committedRef
}

func (e Endpoint) String() string {
	switch e.kind {
	case workingTree:
		return "working tree"
	case stagingIndex:
		return "index"
	default:
		return e.ref
	}
}

// ChangedFiles lists the paths changed between two endpoints, or within a
// single commit (compared against its sole parent). Exactly one of
// singleCommit or the (base, remote) pair must be supplied; any other
// combination is a caller error reported before a subprocess is spawned.
func (g *Git) ChangedFiles(ctx context.Context, base, remote *Endpoint, singleCommit string) ChangedFilesResult {
	pairGiven := base != nil && remote != nil
	if singleCommit != "" && (base != nil || remote != nil) {
		return ChangedFilesResult{Result: contractViolation("either singleCommit or (base and remote) must be provided, not both")}
	}
	if singleCommit == "" && !pairGiven {
		return ChangedFilesResult{Result: contractViolation("either singleCommit or (base and remote) must be provided")}
	}

	var args []string
	if singleCommit != "" {
		args = []string{"diff", singleCommit + "^!", "--name-only"}
	} else {
		if !remote.IsCommitted() {
			return ChangedFilesResult{Result: contractViolation("remote endpoint must be a committed ref")}
		}
		switch base.kind {
		case workingTree:
			args = []string{"diff", remote.ref, "--name-only"}
		case stagingIndex:
			args = []string{"diff", "--staged", remote.ref, "--name-only"}
		default:
			args = []string{"diff", base.ref, remote.ref, "--name-only"}
		}
	}

	res, err := g.runner.Run(ctx, g.rootDir, args...)
	if err != nil {
		return ChangedFilesResult{Result: internalFailure(commandString(args), err)}
	}
	if !res.Ok() {
		// diff interleaves its diagnostics across both streams; report
		// whatever it said.
		message := strings.TrimSpace(string(res.Stdout) + string(res.Stderr))
		return ChangedFilesResult{Result: Result{Code: res.ExitCode, Command: commandString(args), Message: message}}
	}
	return ChangedFilesResult{Files: splitLines(res.Stdout)}
}

// Show returns the content of filename at ref in the repository at path.
// A path that does not exist at that ref yields empty content, not an error,
// since a file may be newly added or deleted; any other diagnostic is an
// UnexpectedToolError.
func (g *Git) Show(ctx context.Context, path, filename, ref string) (string, error) {
	spec := fmt.Sprintf("%s:%s", ref, filename)
	args := []string{"show", spec}
	res, err := g.runner.Run(ctx, g.at(path), args...)
	if err != nil {
		return "", err
	}
	if res.Ok() {
		return string(res.Stdout), nil
	}

	stderr := strings.ToLower(string(res.Stderr))
	absent := []string{
		strings.ToLower(fmt.Sprintf("fatal: path '%s' exists on disk, but not in '%s'", filename, ref)),
		strings.ToLower(fmt.Sprintf("fatal: path '%s' does not exist (neither on disk nor in the index)", filename)),
	}
	for _, diagnostic := range absent {
		if strings.Contains(stderr, diagnostic) {
			return "", nil
		}
	}
	return "", gberrors.NewUnexpectedToolError(commandString(args), string(res.Stderr))
}

// ShowFile wraps Show in an envelope.
func (g *Git) ShowFile(ctx context.Context, path, filename, ref string) ShowResult {
	content, err := g.Show(ctx, path, filename, ref)
	if err != nil {
		return ShowResult{Result: internalFailure("git show "+ref+":"+filename, err)}
	}
	return ShowResult{Content: content}
}

// DiffContent returns the content of filename at both comparison endpoints.
// The previous endpoint is always read from the object at its ref. The
// current endpoint additionally supports the working tree, read through the
// contents store so uncommitted edits are reflected, and the index, read via
// the empty-ref convention for the staged blob.
func (g *Git) DiffContent(ctx context.Context, path, filename string, prev, curr Endpoint) DiffContentResult {
	if !prev.IsCommitted() {
		return DiffContentResult{Result: contractViolation("previous endpoint must be a committed ref")}
	}

	prevContent, err := g.Show(ctx, path, filename, prev.ref)
	if err != nil {
		return DiffContentResult{Result: internalFailure("git show "+prev.ref+":"+filename, err)}
	}

	var currContent string
	switch curr.kind {
	case workingTree:
		currContent, err = g.contents.Get(filepath.Join(path, filename))
		if err != nil {
			return DiffContentResult{Result: internalFailure("read "+filename, err)}
		}
	case stagingIndex:
		currContent, err = g.Show(ctx, path, filename, "")
		if err != nil {
			return DiffContentResult{Result: internalFailure("git show :"+filename, err)}
		}
	default:
		currContent, err = g.Show(ctx, path, filename, curr.ref)
		if err != nil {
			return DiffContentResult{Result: internalFailure("git show "+curr.ref+":"+filename, err)}
		}
	}

	return DiffContentResult{PrevContent: prevContent, CurrContent: currContent}
}

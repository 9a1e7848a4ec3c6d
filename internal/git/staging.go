package git

import "context"

// Add stages the given files.
func (g *Git) Add(ctx context.Context, path string, files ...string) Result {
	args := append([]string{"add"}, files...)
	return g.simple(ctx, path, args...)
}

// AddAll stages all changes including untracked files.
func (g *Git) AddAll(ctx context.Context, path string) Result {
	return g.simple(ctx, path, "add", "-A")
}

// AddAllUnstaged stages updates to tracked files only.
func (g *Git) AddAllUnstaged(ctx context.Context, path string) Result {
	return g.simple(ctx, path, "add", "-u")
}

// addInteractiveScript walks `git add -i` through its menu: choose "a"
// (add untracked), select "*" (everything), then "q" (quit).
const addInteractiveScript = "a\n*\nq\n"

// AddAllUntracked stages all untracked files by driving the interactive add
// menu with a scripted session.
func (g *Git) AddAllUntracked(ctx context.Context, path string) Result {
	args := []string{"add", "-i"}
	res, err := g.runner.RunWithInput(ctx, g.at(path), addInteractiveScript, args...)
	if err != nil {
		return internalFailure(commandString(args), err)
	}
	if !res.Ok() {
		return commandFailure(commandString(args), res)
	}
	return Result{}
}

// Reset unstages the given file.
func (g *Git) Reset(ctx context.Context, path, file string) Result {
	return g.simple(ctx, path, "reset", "--", file)
}

// ResetAll unstages everything.
func (g *Git) ResetAll(ctx context.Context, path string) Result {
	return g.simple(ctx, path, "reset")
}

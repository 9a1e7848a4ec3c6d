// Package git is a façade over the git executable. It launches git as a
// child process, normalizes its text output into structured records, and
// supports an interactive pseudo-terminal credential flow for clone, pull
// and push. It implements no version-control semantics of its own: each
// operation is an independent, stateless subprocess invocation rooted at the
// façade's base directory.
package git

import (
	"context"
	"log/slog"
	"path/filepath"
	"strings"

	"gitbridge.dev/gitbridge/internal/contents"
)

// Git is the repository façade: one method per operation. Every public
// method returns a result envelope; helper-level assumption violations
// (UnexpectedToolError) are caught at the operation boundary and folded into
// the envelope, so no error ever escapes an operation.
type Git struct {
	rootDir  string
	runner   Runner
	auth     AuthRunner
	contents contents.Store
	log      *slog.Logger
}

// New creates a façade rooted at rootDir. Operation paths are interpreted
// relative to this root. Working-tree content reads go through store.
func New(rootDir string, store contents.Store) *Git {
	return NewWithBackends(rootDir, NewCommandRunner(), PtyAuthRunner{}, store, nil)
}

// NewWithBackends creates a façade with explicit runner and auth channel
// implementations. Tests use this to substitute scripted backends.
func NewWithBackends(rootDir string, runner Runner, auth AuthRunner, store contents.Store, logger *slog.Logger) *Git {
	if logger == nil {
		logger = slog.Default()
	}
	if store == nil {
		store = contents.NewDir(rootDir)
	}
	return &Git{
		rootDir:  rootDir,
		runner:   runner,
		auth:     auth,
		contents: store,
		log:      logger,
	}
}

// RootDir returns the directory the façade is rooted at.
func (g *Git) RootDir() string {
	return g.rootDir
}

// at resolves a root-relative operation path to a working directory.
func (g *Git) at(path string) string {
	if path == "" {
		return g.rootDir
	}
	return filepath.Join(g.rootDir, path)
}

// simple runs argv and reduces the outcome to a bare envelope.
func (g *Git) simple(ctx context.Context, path string, args ...string) Result {
	res, err := g.runner.Run(ctx, g.at(path), args...)
	if err != nil {
		return internalFailure(commandString(args), err)
	}
	if !res.Ok() {
		return commandFailure(commandString(args), res)
	}
	return Result{}
}

// verbose is simple, but reports the process stdout as the success message.
func (g *Git) verbose(ctx context.Context, path string, args ...string) Result {
	res, err := g.runner.Run(ctx, g.at(path), args...)
	if err != nil {
		return internalFailure(commandString(args), err)
	}
	if !res.Ok() {
		return commandFailure(commandString(args), res)
	}
	return Result{Message: string(res.Stdout)}
}

// splitLines splits command output into lines, treating empty output as no
// lines rather than one empty line.
func splitLines(out []byte) []string {
	text := strings.TrimRight(string(out), "\n")
	if text == "" {
		return nil
	}
	return strings.Split(text, "\n")
}

// Package errors provides sentinel errors and custom error types for gitbridge.
// Use errors.Is() and errors.As() to check for specific error types.
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for expected non-error conditions reported by git helpers.
var (
	// ErrNoUpstream indicates that a branch has no upstream configured
	ErrNoUpstream = errors.New("no upstream configured")

	// ErrNoTag indicates that no tag describes a commit
	ErrNoTag = errors.New("no tag describes commit")
)

// ContractError reports an invalid argument combination supplied by the
// caller. Operations reject these before any subprocess is spawned.
type ContractError struct {
	Reason string
}

func (e *ContractError) Error() string {
	return e.Reason
}

// NewContractError creates a new ContractError
func NewContractError(reason string) *ContractError {
	return &ContractError{Reason: reason}
}

// GitCommandError represents a failure to execute a git command at all, such
// as a missing binary or an unusable working directory. A git process that
// ran and exited non-zero is not a GitCommandError; its exit status travels
// in the result envelope instead.
type GitCommandError struct {
	Command string
	Args    []string
	Stdout  string
	Stderr  string
	Err     error
}

func (e *GitCommandError) Error() string {
	msg := fmt.Sprintf("git command failed: %s", e.Command)
	if len(e.Args) > 0 {
		msg += fmt.Sprintf(" %v", e.Args)
	}
	if e.Stderr != "" {
		msg += fmt.Sprintf("\nstderr: %s", e.Stderr)
	}
	if e.Stdout != "" {
		msg += fmt.Sprintf("\nstdout: %s", e.Stdout)
	}
	if e.Err != nil {
		msg += fmt.Sprintf("\n%v", e.Err)
	}
	return msg
}

func (e *GitCommandError) Unwrap() error {
	return e.Err
}

// NewGitCommandError creates a new GitCommandError
func NewGitCommandError(command string, args []string, stdout, stderr string, err error) *GitCommandError {
	return &GitCommandError{
		Command: command,
		Args:    args,
		Stdout:  stdout,
		Stderr:  stderr,
		Err:     err,
	}
}

// UnexpectedToolError reports a git failure outside the small set of
// diagnostics a helper knows how to absorb, such as "no upstream configured".
// These indicate an assumption violation and are surfaced with the raw
// diagnostic text rather than masked.
type UnexpectedToolError struct {
	Command string
	Stderr  string
}

func (e *UnexpectedToolError) Error() string {
	return fmt.Sprintf("error [%s] occurred while executing [%s]", strings.TrimSpace(e.Stderr), e.Command)
}

// NewUnexpectedToolError creates a new UnexpectedToolError
func NewUnexpectedToolError(command, stderr string) *UnexpectedToolError {
	return &UnexpectedToolError{Command: command, Stderr: stderr}
}

package git

import "strings"

// Result is the universal response shape shared by every operation. Code 0
// signals success; a non-zero code carries the failure message and, for
// debugging, the literal command line. Callers branch only on Code.
type Result struct {
	Code    int    `json:"code"`
	Message string `json:"message,omitempty"`
	Command string `json:"command,omitempty"`
}

// Client-error class codes. Process exit codes occupy the small positive
// range, so these cannot collide.
const (
	// codeContractViolation reports an invalid argument combination; the
	// operation is rejected before any subprocess is spawned.
	codeContractViolation = 400
	// codeInternal reports a spawn-level or parse-level failure, where no
	// meaningful process exit status exists.
	codeInternal = -1
)

// StatusEntry describes one changed path from the porcelain status output.
type StatusEntry struct {
	IndexState    string `json:"indexState"`
	WorktreeState string `json:"worktreeState"`
	Path          string `json:"path"`
	RenamedFrom   string `json:"renamedFrom,omitempty"`
}

// LogEntry describes one commit, newest first. ParentID is borrowed from the
// following entry and is empty for the last entry returned.
type LogEntry struct {
	CommitID     string `json:"commitId"`
	Author       string `json:"author"`
	RelativeDate string `json:"relativeDate"`
	Subject      string `json:"subject"`
	ParentID     string `json:"parentId"`
}

// BranchEntry describes a local or remote branch. Exactly one local entry
// has IsCurrent set; a synthetic entry is produced when no local ref exists.
type BranchEntry struct {
	Name      string  `json:"name"`
	IsCurrent bool    `json:"isCurrent"`
	IsRemote  bool    `json:"isRemote"`
	TopCommit *string `json:"topCommit"`
	Upstream  *string `json:"upstream"`
}

// DiffStatEntry carries per-file insertion and deletion counts.
type DiffStatEntry struct {
	Path       string `json:"path"`
	Insertions int    `json:"insertions"`
	Deletions  int    `json:"deletions"`
}

// Per-operation result envelopes. Each embeds Result so that success and
// failure share one shape.

type StatusResult struct {
	Result
	Files []StatusEntry `json:"files,omitempty"`
}

type LogResult struct {
	Result
	Commits []LogEntry `json:"commits,omitempty"`
}

type DetailedLogResult struct {
	Result
	ModifiedFiles      []DiffStatEntry `json:"modifiedFiles,omitempty"`
	ModifiedFilesCount int             `json:"modifiedFilesCount"`
	Insertions         int             `json:"insertions"`
	Deletions          int             `json:"deletions"`
}

type DiffResult struct {
	Result
	Entries []DiffStatEntry `json:"result,omitempty"`
}

type BranchResult struct {
	Result
	Branches      []BranchEntry `json:"branches,omitempty"`
	CurrentBranch *BranchEntry  `json:"currentBranch,omitempty"`
}

type ChangedFilesResult struct {
	Result
	Files []string `json:"files,omitempty"`
}

type ConfigResult struct {
	Result
	Options map[string]string `json:"options,omitempty"`
}

type PathResult struct {
	Result
	Path string `json:"path,omitempty"`
}

type ShowResult struct {
	Result
	Content string `json:"content"`
}

type UpstreamResult struct {
	Result
	Upstream string `json:"upstream,omitempty"`
}

type TagResult struct {
	Result
	Tag string `json:"tag,omitempty"`
}

type DiffContentResult struct {
	Result
	PrevContent string `json:"prevContent"`
	CurrContent string `json:"currContent"`
}

// commandFailure builds the envelope for a process that ran and exited
// non-zero: the exit status verbatim, raw stderr as the message.
func commandFailure(command string, res CommandResult) Result {
	return Result{Code: res.ExitCode, Command: command, Message: res.StderrText()}
}

// internalFailure builds the envelope for a command that could not run at
// all or whose output defeated the parser.
func internalFailure(command string, err error) Result {
	return Result{Code: codeInternal, Command: command, Message: err.Error()}
}

func contractViolation(reason string) Result {
	return Result{Code: codeContractViolation, Message: reason}
}

func commandString(args []string) string {
	return "git " + strings.Join(args, " ")
}

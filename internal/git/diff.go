package git

import (
	"context"
	"strconv"
	"strings"
)

// Diff reports unstaged per-file insertion and deletion counts for the
// repository at path.
func (g *Git) Diff(ctx context.Context, path string) DiffResult {
	args := []string{"diff", "--numstat"}
	res, err := g.runner.Run(ctx, g.at(path), args...)
	if err != nil {
		return DiffResult{Result: internalFailure(commandString(args), err)}
	}
	if !res.Ok() {
		return DiffResult{Result: commandFailure(commandString(args), res)}
	}
	return DiffResult{Entries: ParseDiffNumstat(res.Stdout)}
}

// ParseDiffNumstat splits each numstat line into insertions, deletions and
// path. Binary files report "-" for both counts, which parse as zero. A path
// containing whitespace is truncated at its first space; this is a known
// limitation kept for compatibility with existing callers.
func ParseDiffNumstat(out []byte) []DiffStatEntry {
	var entries []DiffStatEntry
	for _, line := range splitLines(out) {
		fields := strings.Fields(line)
		if len(fields) < 3 {
			continue
		}
		insertions, _ := strconv.Atoi(fields[0])
		deletions, _ := strconv.Atoi(fields[1])
		entries = append(entries, DiffStatEntry{
			Path:       fields[2],
			Insertions: insertions,
			Deletions:  deletions,
		})
	}
	return entries
}

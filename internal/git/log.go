package git

import (
	"context"
	"fmt"
	"strconv"
	"strings"
)

// DefaultHistoryCount is the number of commits Log returns when the caller
// does not say otherwise.
const DefaultHistoryCount = 10

// logEntryStride is the number of logical output lines per commit in the
// pretty format below: id, author, relative date, subject, back to back with
// no separator.
const logEntryStride = 4

// Log returns up to count commits at path, newest first. Each entry borrows
// its parent id from the following group in the same linear scan, so the
// history reads as a linked list without a second pass; the last entry has
// no successor and its parent id is empty.
func (g *Git) Log(ctx context.Context, path string, count int) LogResult {
	if count <= 0 {
		count = DefaultHistoryCount
	}
	args := []string{"log", "--pretty=format:%H%n%an%n%ar%n%s", fmt.Sprintf("-%d", count)}
	res, err := g.runner.Run(ctx, g.at(path), args...)
	if err != nil {
		return LogResult{Result: internalFailure(commandString(args), err)}
	}
	if !res.Ok() {
		return LogResult{Result: commandFailure(commandString(args), res)}
	}
	return LogResult{Commits: ParseLog(res.Stdout)}
}

// ParseLog groups the four-line-per-commit output by slicing in fixed
// strides of four.
func ParseLog(out []byte) []LogEntry {
	lines := splitLines(out)
	var commits []LogEntry
	for i := 0; i+logEntryStride <= len(lines); i += logEntryStride {
		entry := LogEntry{
			CommitID:     lines[i],
			Author:       lines[i+1],
			RelativeDate: lines[i+2],
			Subject:      lines[i+3],
		}
		if i+logEntryStride < len(lines) {
			entry.ParentID = lines[i+logEntryStride]
		}
		commits = append(commits, entry)
	}
	return commits
}

// DetailedLog reports per-file numstat counts and the summary totals for a
// single commit.
func (g *Git) DetailedLog(ctx context.Context, commitID, path string) DetailedLogResult {
	args := []string{"log", "-1", "--stat", "--numstat", "--oneline", commitID}
	res, err := g.runner.Run(ctx, g.at(path), args...)
	if err != nil {
		return DetailedLogResult{Result: internalFailure(commandString(args), err)}
	}
	if !res.Ok() {
		return DetailedLogResult{Result: commandFailure(commandString(args), res)}
	}
	return ParseDetailedLog(res.Stdout)
}

// ParseDetailedLog reads the combined --stat --numstat --oneline output: one
// header line, the numstat block in the first half of the output, and a
// human-readable footer holding the files-changed / insertions / deletions
// counts.
//
// When only one of insertions/deletions is non-zero, git omits the
// zero-valued count from the footer entirely, so the third slot is never
// assigned. Only in that case, and only when a "-" marker is present in the
// footer line, the second and third counts are swapped so that a
// deletions-only footer lands in the deletions slot. This mirrors a quirk of
// git's stat footer and is preserved exactly; do not generalize it.
func ParseDetailedLog(out []byte) DetailedLogResult {
	lines := splitLines(out)
	result := DetailedLogResult{}
	if len(lines) <= 1 {
		return result
	}

	footer := lines[len(lines)-1]
	var counts [3]int
	assigned := 0
	for _, word := range strings.Fields(footer) {
		if assigned >= len(counts) {
			break
		}
		if n, err := strconv.Atoi(word); err == nil {
			counts[assigned] = n
			assigned++
		}
	}

	for i := 1; i < len(lines)/2; i++ {
		fields := strings.SplitN(lines[i], "\t", 3)
		if len(fields) < 3 {
			fields = splitCounts(lines[i])
		}
		if len(fields) < 3 {
			continue
		}
		insertions, _ := strconv.Atoi(fields[0])
		deletions, _ := strconv.Atoi(fields[1])
		result.ModifiedFiles = append(result.ModifiedFiles, DiffStatEntry{
			Path:       fields[2],
			Insertions: insertions,
			Deletions:  deletions,
		})
	}

	if assigned < 3 && strings.Contains(footer, "-") {
		counts[1], counts[2] = counts[2], counts[1]
	}

	result.ModifiedFilesCount = counts[0]
	result.Insertions = counts[1]
	result.Deletions = counts[2]
	return result
}

// splitCounts splits a whitespace-separated numstat line into at most three
// fields, keeping any further whitespace inside the third.
func splitCounts(line string) []string {
	fields := strings.Fields(line)
	if len(fields) <= 3 {
		return fields
	}
	second := strings.Index(line, fields[1])
	rest := strings.TrimSpace(line[second+len(fields[1]):])
	return []string{fields[0], fields[1], rest}
}

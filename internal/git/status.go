package git

import (
	"context"
	"strings"
)

// Status reports the porcelain status of the repository at path, one entry
// per changed file.
func (g *Git) Status(ctx context.Context, path string) StatusResult {
	args := []string{"status", "--porcelain"}
	res, err := g.runner.Run(ctx, g.at(path), args...)
	if err != nil {
		return StatusResult{Result: internalFailure(commandString(args), err)}
	}
	if !res.Ok() {
		return StatusResult{Result: commandFailure(commandString(args), res)}
	}
	return StatusResult{Files: ParseStatus(res.Stdout)}
}

// ParseStatus converts porcelain status output into entries. Each line has
// the fixed-width prefix "XY " followed by the path; rename lines carry both
// endpoints around " -> " and the new path is the one taken. Paths with
// special characters arrive quoted and the quotes are stripped.
func ParseStatus(out []byte) []StatusEntry {
	var entries []StatusEntry
	for _, line := range splitLines(out) {
		if len(line) < 4 {
			continue
		}
		entry := StatusEntry{
			IndexState:    line[0:1],
			WorktreeState: line[1:2],
		}
		rest := line[3:]
		if strings.Contains(rest, " -> ") {
			parts := strings.Split(rest, " -> ")
			entry.RenamedFrom = stripQuotes(parts[0])
			entry.Path = stripQuotes(parts[len(parts)-1])
		} else {
			entry.Path = stripQuotes(rest)
		}
		entries = append(entries, entry)
	}
	return entries
}

func stripQuotes(path string) string {
	path = strings.TrimPrefix(path, `"`)
	return strings.TrimSuffix(path, `"`)
}

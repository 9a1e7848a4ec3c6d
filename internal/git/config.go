package git

import (
	"context"
	"slices"
	"sort"
	"strings"
)

// allowedOptions is the closed set of config keys readable and writable
// through this surface. The filtering is a capability restriction, not an
// optimization: every other configured key is silently dropped so arbitrary
// repository configuration never leaks across this boundary.
var allowedOptions = []string{"user.name", "user.email"}

// Config gets or sets git options at path. With an empty options map all
// recognized options are returned; otherwise each allowed key is set in
// turn, aborting and reporting on the first failure. Keys already set before
// a failure are not rolled back.
func (g *Git) Config(ctx context.Context, path string, options map[string]string) ConfigResult {
	if len(options) > 0 {
		return g.setConfig(ctx, path, options)
	}
	return g.getConfig(ctx, path)
}

func (g *Git) getConfig(ctx context.Context, path string) ConfigResult {
	args := []string{"config", "--list"}
	res, err := g.runner.Run(ctx, g.at(path), args...)
	if err != nil {
		return ConfigResult{Result: internalFailure(commandString(args), err)}
	}
	if !res.Ok() {
		return ConfigResult{Result: commandFailure(commandString(args), res)}
	}

	recognized := make(map[string]string)
	previousKey := ""
	for _, line := range splitLines(res.Stdout) {
		switch {
		case strings.HasPrefix(line, `"`) && allowed(previousKey):
			// Multi-line values continue on quoted lines belonging to
			// the previous key.
			recognized[previousKey] += line
		case strings.Contains(line, "="):
			key, value, _ := strings.Cut(line, "=")
			previousKey = key
			if allowed(key) {
				recognized[key] = value
			}
		default:
			g.log.Debug("unable to interpret git option", "line", line)
		}
	}
	return ConfigResult{Options: recognized}
}

func (g *Git) setConfig(ctx context.Context, path string, options map[string]string) ConfigResult {
	keys := make([]string, 0, len(options))
	for key := range options {
		if allowed(key) {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)

	// Nothing recognized means nothing was set; the envelope stays in its
	// failed state.
	code := 1
	var output []string
	for _, key := range keys {
		args := []string{"config", "--add", key, options[key]}
		res, err := g.runner.Run(ctx, g.at(path), args...)
		if err != nil {
			return ConfigResult{Result: internalFailure(commandString(args), err)}
		}
		if !res.Ok() {
			return ConfigResult{Result: commandFailure(commandString(args), res)}
		}
		code = 0
		output = append(output, strings.TrimSpace(string(res.Stdout)))
	}
	return ConfigResult{Result: Result{Code: code, Message: strings.TrimSpace(strings.Join(output, "\n"))}}
}

func allowed(key string) bool {
	return slices.Contains(allowedOptions, key)
}

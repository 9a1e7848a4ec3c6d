package git

import (
	"context"
	"strings"
)

// recordedCall captures one subprocess request made through the fake runner.
type recordedCall struct {
	Cwd   string
	Args  []string
	Env   []string
	Input string
}

// fakeRunner is a scripted Runner. Responses are keyed by the joined argv;
// unmatched commands fall through to the Default response.
type fakeRunner struct {
	Responses map[string]CommandResult
	Errors    map[string]error
	Default   CommandResult
	Calls     []recordedCall
}

func newFakeRunner() *fakeRunner {
	return &fakeRunner{
		Responses: make(map[string]CommandResult),
		Errors:    make(map[string]error),
	}
}

func (f *fakeRunner) respond(key string, stdout string) {
	f.Responses[key] = CommandResult{Stdout: []byte(stdout)}
}

func (f *fakeRunner) fail(key string, exitCode int, stderr string) {
	f.Responses[key] = CommandResult{ExitCode: exitCode, Stderr: []byte(stderr)}
}

func (f *fakeRunner) lookup(args []string) (CommandResult, error) {
	key := strings.Join(args, " ")
	if err, ok := f.Errors[key]; ok {
		return CommandResult{}, err
	}
	if res, ok := f.Responses[key]; ok {
		return res, nil
	}
	return f.Default, nil
}

func (f *fakeRunner) Run(_ context.Context, cwd string, args ...string) (CommandResult, error) {
	f.Calls = append(f.Calls, recordedCall{Cwd: cwd, Args: args})
	return f.lookup(args)
}

func (f *fakeRunner) RunWithEnv(_ context.Context, cwd string, env []string, args ...string) (CommandResult, error) {
	f.Calls = append(f.Calls, recordedCall{Cwd: cwd, Args: args, Env: env})
	return f.lookup(args)
}

func (f *fakeRunner) RunWithInput(_ context.Context, cwd string, input string, args ...string) (CommandResult, error) {
	f.Calls = append(f.Calls, recordedCall{Cwd: cwd, Args: args, Input: input})
	return f.lookup(args)
}

// mapStore is an in-memory contents store.
type mapStore map[string]string

func (m mapStore) Get(path string) (string, error) {
	return m[path], nil
}

// newTestFacade builds a façade over the fake runner, rooted at /repo.
func newTestFacade(runner *fakeRunner) *Git {
	return NewWithBackends("/repo", runner, nil, mapStore{}, nil)
}

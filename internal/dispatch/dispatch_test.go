package dispatch_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"gitbridge.dev/gitbridge/internal/dispatch"
	"gitbridge.dev/gitbridge/internal/git"
	"gitbridge.dev/gitbridge/testhelpers"
)

type envelope struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func decode(t *testing.T, raw json.RawMessage) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(raw, &env))
	return env
}

func newDispatcher(t *testing.T) (*testhelpers.GitRepo, *dispatch.Dispatcher) {
	t.Helper()
	repo := testhelpers.NewGitRepo(t)
	return repo, dispatch.New(git.New(repo.Dir, nil))
}

func TestInvokeUnknownOperation(t *testing.T) {
	_, d := newDispatcher(t)

	env := decode(t, d.Invoke(context.Background(), "frobnicate", nil))

	require.Equal(t, 400, env.Code)
	require.Contains(t, env.Message, "frobnicate")
}

func TestInvokeMalformedArguments(t *testing.T) {
	_, d := newDispatcher(t)

	env := decode(t, d.Invoke(context.Background(), "status", json.RawMessage("{not json")))

	require.Equal(t, 400, env.Code)
}

func TestInvokeStatus(t *testing.T) {
	repo, d := newDispatcher(t)
	repo.CreateChangeAndCommit(t, "a.txt", "a\n", "initial")
	repo.WriteFile(t, "b.txt", "b\n")

	raw := d.Invoke(context.Background(), "status", nil)

	var res struct {
		Code  int `json:"code"`
		Files []struct {
			Path          string `json:"path"`
			WorktreeState string `json:"worktreeState"`
		} `json:"files"`
	}
	require.NoError(t, json.Unmarshal(raw, &res))
	require.Equal(t, 0, res.Code)
	require.Len(t, res.Files, 1)
	require.Equal(t, "b.txt", res.Files[0].Path)
}

func TestInvokeLogWithCount(t *testing.T) {
	repo, d := newDispatcher(t)
	repo.CreateChangeAndCommit(t, "a.txt", "a\n", "first")
	repo.CreateChangeAndCommit(t, "b.txt", "b\n", "second")

	raw := d.Invoke(context.Background(), "log", json.RawMessage(`{"count": 1}`))

	var res struct {
		Code    int `json:"code"`
		Commits []struct {
			Subject string `json:"subject"`
		} `json:"commits"`
	}
	require.NoError(t, json.Unmarshal(raw, &res))
	require.Equal(t, 0, res.Code)
	require.Len(t, res.Commits, 1)
	require.Equal(t, "second", res.Commits[0].Subject)
}

func TestInvokeChangedFilesEndpointWire(t *testing.T) {
	repo, d := newDispatcher(t)
	repo.CreateChangeAndCommit(t, "a.txt", "a\n", "initial")
	repo.WriteFile(t, "a.txt", "edited\n")

	t.Run("WORKING maps to the working tree endpoint", func(t *testing.T) {
		raw := d.Invoke(context.Background(), "changedFiles", json.RawMessage(`{"base": "WORKING", "remoteRef": "HEAD"}`))

		var res struct {
			Code  int      `json:"code"`
			Files []string `json:"files"`
		}
		require.NoError(t, json.Unmarshal(raw, &res))
		require.Equal(t, 0, res.Code)
		require.Equal(t, []string{"a.txt"}, res.Files)
	})

	t.Run("both selectors are rejected", func(t *testing.T) {
		env := decode(t, d.Invoke(context.Background(), "changedFiles", json.RawMessage(`{"base": "WORKING", "remoteRef": "HEAD", "singleCommit": "HEAD"}`)))

		require.Equal(t, 400, env.Code)
	})

	t.Run("reserved name as the remote is rejected", func(t *testing.T) {
		env := decode(t, d.Invoke(context.Background(), "changedFiles", json.RawMessage(`{"base": "HEAD", "remoteRef": "INDEX"}`)))

		require.Equal(t, 400, env.Code)
	})
}

func TestInvokeDiffContent(t *testing.T) {
	repo, d := newDispatcher(t)
	repo.CreateChangeAndCommit(t, "a.txt", "old\n", "initial")
	repo.WriteFile(t, "a.txt", "new\n")

	raw := d.Invoke(context.Background(), "diffContent", json.RawMessage(`{"filename": "a.txt", "prevRef": "HEAD", "currRef": "WORKING"}`))

	var res struct {
		Code        int    `json:"code"`
		PrevContent string `json:"prevContent"`
		CurrContent string `json:"currContent"`
	}
	require.NoError(t, json.Unmarshal(raw, &res))
	require.Equal(t, 0, res.Code)
	require.Equal(t, "old\n", res.PrevContent)
	require.Equal(t, "new\n", res.CurrContent)
}

func TestInvokeDiffContentMissingEndpoints(t *testing.T) {
	_, d := newDispatcher(t)

	env := decode(t, d.Invoke(context.Background(), "diffContent", json.RawMessage(`{"filename": "a.txt"}`)))

	require.Equal(t, 400, env.Code)
}

func TestInvokeConfigRoundTrip(t *testing.T) {
	_, d := newDispatcher(t)

	set := decode(t, d.Invoke(context.Background(), "config", json.RawMessage(`{"options": {"user.name": "Dispatch User"}}`)))
	require.Equal(t, 0, set.Code)

	raw := d.Invoke(context.Background(), "config", nil)
	var res struct {
		Code    int               `json:"code"`
		Options map[string]string `json:"options"`
	}
	require.NoError(t, json.Unmarshal(raw, &res))
	require.Equal(t, 0, res.Code)
	require.Equal(t, "Dispatch User", res.Options["user.name"])
}

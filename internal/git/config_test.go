package git

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestConfigGet(t *testing.T) {
	t.Run("only recognized options pass the filter", func(t *testing.T) {
		runner := newFakeRunner()
		runner.respond("config --list", "user.name=Alice\nuser.email=alice@example.com\ncore.editor=vim\nremote.origin.url=https://example.com/r.git\n")
		facade := newTestFacade(runner)

		res := facade.Config(context.Background(), "", nil)

		require.Equal(t, 0, res.Code)
		require.Equal(t, map[string]string{
			"user.name":  "Alice",
			"user.email": "alice@example.com",
		}, res.Options)
	})

	t.Run("quoted continuation lines extend the previous recognized key", func(t *testing.T) {
		runner := newFakeRunner()
		runner.respond("config --list", "user.name=Line One\n\"Line Two\ncore.editor=vim\n\"ignored continuation\n")
		facade := newTestFacade(runner)

		res := facade.Config(context.Background(), "", nil)

		require.Equal(t, "Line One\"Line Two", res.Options["user.name"])
		require.NotContains(t, res.Options, "core.editor")
	})

	t.Run("command failure surfaces", func(t *testing.T) {
		runner := newFakeRunner()
		runner.fail("config --list", 128, "fatal: not in a git directory\n")
		facade := newTestFacade(runner)

		res := facade.Config(context.Background(), "", nil)

		require.Equal(t, 128, res.Code)
	})
}

func TestConfigSet(t *testing.T) {
	t.Run("allowed keys are set in sorted order", func(t *testing.T) {
		runner := newFakeRunner()
		facade := newTestFacade(runner)

		res := facade.Config(context.Background(), "", map[string]string{
			"user.name":   "Alice",
			"user.email":  "alice@example.com",
			"core.editor": "vim",
		})

		require.Equal(t, 0, res.Code)
		require.Len(t, runner.Calls, 2)
		require.Equal(t, []string{"config", "--add", "user.email", "alice@example.com"}, runner.Calls[0].Args)
		require.Equal(t, []string{"config", "--add", "user.name", "Alice"}, runner.Calls[1].Args)
	})

	t.Run("nothing recognized leaves the envelope failed", func(t *testing.T) {
		runner := newFakeRunner()
		facade := newTestFacade(runner)

		res := facade.Config(context.Background(), "", map[string]string{"core.editor": "vim"})

		require.Equal(t, 1, res.Code)
		require.Empty(t, runner.Calls)
	})

	t.Run("aborts on the first failing key", func(t *testing.T) {
		runner := newFakeRunner()
		runner.fail("config --add user.email bad", 1, "error: invalid value\n")
		facade := newTestFacade(runner)

		res := facade.Config(context.Background(), "", map[string]string{
			"user.email": "bad",
			"user.name":  "Alice",
		})

		require.Equal(t, 1, res.Code)
		require.Equal(t, "error: invalid value", res.Message)
		require.Len(t, runner.Calls, 1)
	})
}

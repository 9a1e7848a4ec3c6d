package git

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	gberrors "gitbridge.dev/gitbridge/internal/errors"
)

const (
	headsKey   = "for-each-ref --format=" + headsRefFormat + " refs/heads/"
	remotesKey = "for-each-ref --format=" + remotesRefFormat + " refs/remotes/"
)

func TestBranch(t *testing.T) {
	t.Run("local and remote branches are merged", func(t *testing.T) {
		runner := newFakeRunner()
		runner.respond(headsKey, "main\taaa111\torigin/main\t*\nfeature\tbbb222\t\t\n")
		runner.respond(remotesKey, "origin/main\taaa111\n")
		facade := newTestFacade(runner)

		res := facade.Branch(context.Background(), "")

		require.Equal(t, 0, res.Code)
		require.Len(t, res.Branches, 3)

		main := res.Branches[0]
		require.Equal(t, "main", main.Name)
		require.True(t, main.IsCurrent)
		require.False(t, main.IsRemote)
		require.NotNil(t, main.TopCommit)
		require.Equal(t, "aaa111", *main.TopCommit)
		require.NotNil(t, main.Upstream)
		require.Equal(t, "origin/main", *main.Upstream)

		feature := res.Branches[1]
		require.False(t, feature.IsCurrent)
		require.Nil(t, feature.Upstream)

		remote := res.Branches[2]
		require.True(t, remote.IsRemote)
		require.Equal(t, "origin/main", remote.Name)

		require.NotNil(t, res.CurrentBranch)
		require.Equal(t, "main", res.CurrentBranch.Name)
	})

	t.Run("empty listing synthesizes the current branch", func(t *testing.T) {
		runner := newFakeRunner()
		runner.respond(headsKey, "")
		runner.respond(remotesKey, "")
		runner.respond("symbolic-ref HEAD", "refs/heads/main\n")
		facade := newTestFacade(runner)

		res := facade.Branch(context.Background(), "")

		require.Equal(t, 0, res.Code)
		require.Len(t, res.Branches, 1)
		require.Equal(t, "main", res.Branches[0].Name)
		require.True(t, res.Branches[0].IsCurrent)
		require.Nil(t, res.Branches[0].TopCommit)
	})

	t.Run("malformed listing is an internal failure", func(t *testing.T) {
		runner := newFakeRunner()
		runner.respond(headsKey, "just-one-field\n")
		facade := newTestFacade(runner)

		res := facade.Branch(context.Background(), "")

		require.Equal(t, -1, res.Code)
		require.Contains(t, res.Message, "unexpected for-each-ref line")
	})
}

func TestCurrentBranch(t *testing.T) {
	t.Run("symbolic ref resolves directly", func(t *testing.T) {
		runner := newFakeRunner()
		runner.respond("symbolic-ref HEAD", "refs/heads/feature/x\n")
		facade := newTestFacade(runner)

		name, err := facade.CurrentBranch(context.Background(), "")

		require.NoError(t, err)
		require.Equal(t, "x", name)
	})

	t.Run("detached head falls back to the branch listing", func(t *testing.T) {
		runner := newFakeRunner()
		runner.fail("symbolic-ref HEAD", 128, "fatal: ref HEAD is not a symbolic ref\n")
		runner.respond("branch -a", "  main\n* (HEAD detached at abc1234)\n")
		facade := newTestFacade(runner)

		name, err := facade.CurrentBranch(context.Background(), "")

		require.NoError(t, err)
		require.Equal(t, "(HEAD detached at abc1234)", name)
	})

	t.Run("unrecognized diagnostic is an unexpected tool error", func(t *testing.T) {
		runner := newFakeRunner()
		runner.fail("symbolic-ref HEAD", 128, "fatal: something else entirely\n")
		facade := newTestFacade(runner)

		_, err := facade.CurrentBranch(context.Background(), "")

		var toolErr *gberrors.UnexpectedToolError
		require.ErrorAs(t, err, &toolErr)
	})
}

func TestUpstreamBranch(t *testing.T) {
	t.Run("configured upstream", func(t *testing.T) {
		runner := newFakeRunner()
		runner.respond("rev-parse --abbrev-ref main@{upstream}", "origin/main\n")
		facade := newTestFacade(runner)

		name, err := facade.UpstreamBranch(context.Background(), "", "main")

		require.NoError(t, err)
		require.Equal(t, "origin/main", name)
	})

	t.Run("missing upstream maps to the sentinel", func(t *testing.T) {
		runner := newFakeRunner()
		runner.fail("rev-parse --abbrev-ref main@{upstream}", 128, "fatal: no upstream configured for branch 'main'\n")
		facade := newTestFacade(runner)

		_, err := facade.UpstreamBranch(context.Background(), "", "main")

		require.ErrorIs(t, err, gberrors.ErrNoUpstream)
	})

	t.Run("envelope wrapper treats no upstream as empty success", func(t *testing.T) {
		runner := newFakeRunner()
		runner.fail("rev-parse --abbrev-ref main@{upstream}", 128, "fatal: no upstream configured for branch 'main'\n")
		facade := newTestFacade(runner)

		res := facade.Upstream(context.Background(), "", "main")

		require.Equal(t, 0, res.Code)
		require.Equal(t, "", res.Upstream)
	})
}

func TestNearestTag(t *testing.T) {
	t.Run("described tag", func(t *testing.T) {
		runner := newFakeRunner()
		runner.respond("describe --tags abc123", "v1.2.0-3-gabc123\n")
		facade := newTestFacade(runner)

		tag, err := facade.NearestTag(context.Background(), "", "abc123")

		require.NoError(t, err)
		require.Equal(t, "v1.2.0-3-gabc123", tag)
	})

	t.Run("undescribable commit maps to the sentinel", func(t *testing.T) {
		runner := newFakeRunner()
		runner.fail("describe --tags abc123", 128, "fatal: No tags can describe 'abc123'.\n")
		facade := newTestFacade(runner)

		_, err := facade.NearestTag(context.Background(), "", "abc123")

		require.ErrorIs(t, err, gberrors.ErrNoTag)
	})

	t.Run("envelope wrapper treats no tag as empty success", func(t *testing.T) {
		runner := newFakeRunner()
		runner.fail("describe --tags abc123", 128, "fatal: No names found, cannot describe anything.\n")
		facade := newTestFacade(runner)

		res := facade.Tag(context.Background(), "", "abc123")

		require.Equal(t, 0, res.Code)
		require.Equal(t, "", res.Tag)
	})
}

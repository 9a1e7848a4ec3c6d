package git

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseDiffNumstat(t *testing.T) {
	t.Run("per-file counts", func(t *testing.T) {
		out := "12\t4\tsrc/app.go\n0\t9\tdocs/old.md\n"
		entries := ParseDiffNumstat([]byte(out))

		require.Equal(t, []DiffStatEntry{
			{Path: "src/app.go", Insertions: 12, Deletions: 4},
			{Path: "docs/old.md", Insertions: 0, Deletions: 9},
		}, entries)
	})

	t.Run("binary files count as zero", func(t *testing.T) {
		entries := ParseDiffNumstat([]byte("-\t-\tlogo.png\n"))

		require.Equal(t, []DiffStatEntry{{Path: "logo.png", Insertions: 0, Deletions: 0}}, entries)
	})

	t.Run("malformed lines are skipped", func(t *testing.T) {
		require.Empty(t, ParseDiffNumstat([]byte("not numstat\n")))
		require.Empty(t, ParseDiffNumstat(nil))
	})
}

func TestDiff(t *testing.T) {
	runner := newFakeRunner()
	runner.respond("diff --numstat", "1\t1\ta.txt\n")
	facade := newTestFacade(runner)

	res := facade.Diff(context.Background(), "")

	require.Equal(t, 0, res.Code)
	require.Len(t, res.Entries, 1)
	require.Equal(t, []string{"diff", "--numstat"}, runner.Calls[0].Args)
}

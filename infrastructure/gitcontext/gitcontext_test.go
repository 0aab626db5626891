package gitcontext_test

import (
	"testing"
	"time"

	git "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/depdoctor/infrastructure/gitcontext"
)

// initRepo creates a repository with one commit on the given branch.
func initRepo(t *testing.T, branch string) string {
	t.Helper()
	root := t.TempDir()

	repo, err := git.PlainInit(root, false)
	require.NoError(t, err)

	worktree, err := repo.Worktree()
	require.NoError(t, err)

	_, err = worktree.Commit("initial commit", &git.CommitOptions{
		AllowEmptyCommits: true,
		Author: &object.Signature{
			Name:  "tester",
			Email: "tester@example.com",
			When:  time.Now(),
		},
	})
	require.NoError(t, err)

	if branch != "" {
		err = worktree.Checkout(&git.CheckoutOptions{
			Branch: plumbing.NewBranchReferenceName(branch),
			Create: true,
		})
		require.NoError(t, err)
	}

	return root
}

func TestExtract(t *testing.T) {
	t.Parallel()

	t.Run("should classify a feature branch", func(t *testing.T) {
		t.Parallel()

		// given
		root := initRepo(t, "feature/add-login")

		// when
		ctx, err := gitcontext.Extract(root)

		// then
		require.NoError(t, err)
		assert.Equal(t, "feature/add-login", ctx.Branch)
		assert.False(t, ctx.IsDefaultBranch)
		assert.Equal(t, gitcontext.TaskFeature, ctx.TaskType)
		assert.Equal(t, "add login", ctx.TaskHint)
	})

	t.Run("should classify fix prefixes as bugfix", func(t *testing.T) {
		t.Parallel()

		// given
		root := initRepo(t, "fix/cache_invalidation")

		// when
		ctx, err := gitcontext.Extract(root)

		// then
		require.NoError(t, err)
		assert.Equal(t, gitcontext.TaskBugfix, ctx.TaskType)
		assert.Equal(t, "cache invalidation", ctx.TaskHint)
	})

	t.Run("should carry no hint on a default branch", func(t *testing.T) {
		t.Parallel()

		// given a repository still on its initial branch
		root := initRepo(t, "")

		// when
		ctx, err := gitcontext.Extract(root)

		// then
		require.NoError(t, err)
		assert.True(t, ctx.IsDefaultBranch)
		assert.Equal(t, gitcontext.TaskUnknown, ctx.TaskType)
		assert.Empty(t, ctx.TaskHint)
	})

	t.Run("should mark unrecognized branch names as unknown with a hint", func(t *testing.T) {
		t.Parallel()

		// given
		root := initRepo(t, "spike-new-parser")

		// when
		ctx, err := gitcontext.Extract(root)

		// then
		require.NoError(t, err)
		assert.Equal(t, gitcontext.TaskUnknown, ctx.TaskType)
		assert.Equal(t, "spike new parser", ctx.TaskHint)
	})

	t.Run("should fail outside a git repository", func(t *testing.T) {
		t.Parallel()

		// when
		_, err := gitcontext.Extract(t.TempDir())

		// then
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to open repository")
	})
}

func TestContext_Summary(t *testing.T) {
	t.Parallel()

	t.Run("should describe a default branch", func(t *testing.T) {
		t.Parallel()

		// given
		ctx := &gitcontext.Context{Branch: "main", IsDefaultBranch: true}

		// then
		assert.Equal(t, `On default branch "main"`, ctx.Summary())
	})

	t.Run("should describe a classified branch with its hint", func(t *testing.T) {
		t.Parallel()

		// given
		ctx := &gitcontext.Context{
			Branch:   "feature/add-login",
			TaskType: gitcontext.TaskFeature,
			TaskHint: "add login",
		}

		// then
		assert.Equal(t, `On branch "feature/add-login" (feature: add login)`, ctx.Summary())
	})

	t.Run("should describe an unclassified branch plainly", func(t *testing.T) {
		t.Parallel()

		// given
		ctx := &gitcontext.Context{Branch: "spike-new-parser", TaskType: gitcontext.TaskUnknown}

		// then
		assert.Equal(t, `On branch "spike-new-parser"`, ctx.Summary())
	})
}

// Package gitcontext extracts lightweight task context from a repository's
// git state: the current branch, a task-type classification, and a
// human-readable task hint. Everything is read through go-git, so no git
// binary or subprocess is involved.
package gitcontext

import (
	"fmt"
	"strings"

	git "github.com/go-git/go-git/v5"
)

// Task types inferred from branch naming conventions.
const (
	TaskFeature  = "feature"
	TaskBugfix   = "bugfix"
	TaskRefactor = "refactor"
	TaskDocs     = "docs"
	TaskChore    = "chore"
	TaskUnknown  = "unknown"
)

// branchPrefixes maps branch-name prefixes to task types, probed in order.
var branchPrefixes = []struct {
	prefix   string
	taskType string
}{
	{"feature/", TaskFeature},
	{"feat/", TaskFeature},
	{"fix/", TaskBugfix},
	{"bugfix/", TaskBugfix},
	{"hotfix/", TaskBugfix},
	{"refactor/", TaskRefactor},
	{"docs/", TaskDocs},
	{"chore/", TaskChore},
}

// defaultBranches carry no task hint.
var defaultBranches = map[string]bool{
	"main":    true,
	"master":  true,
	"develop": true,
	"dev":     true,
}

// Context is the extracted git task context for one repository.
type Context struct {
	Branch          string // Current branch short name
	IsDefaultBranch bool   // True for main/master/develop/dev
	TaskType        string // One of the Task* constants
	TaskHint        string // Branch remainder with separators spaced out
}

// Extract reads the task context from the repository at root. It returns an
// error when root is not a git repository or HEAD cannot be resolved.
func Extract(root string) (*Context, error) {
	repo, err := git.PlainOpen(root)
	if err != nil {
		return nil, fmt.Errorf("failed to open repository at %q: %w", root, err)
	}

	head, err := repo.Head()
	if err != nil {
		return nil, fmt.Errorf("failed to resolve HEAD: %w", err)
	}

	branch := head.Name().Short()
	ctx := &Context{
		Branch:          branch,
		IsDefaultBranch: defaultBranches[branch],
		TaskType:        TaskUnknown,
	}
	if ctx.IsDefaultBranch {
		return ctx, nil
	}

	remainder := branch
	for _, entry := range branchPrefixes {
		if strings.HasPrefix(branch, entry.prefix) {
			ctx.TaskType = entry.taskType
			remainder = strings.TrimPrefix(branch, entry.prefix)
			break
		}
	}
	ctx.TaskHint = humanize(remainder)

	return ctx, nil
}

// Summary returns a one-line description of the context.
func (c *Context) Summary() string {
	if c.IsDefaultBranch {
		return fmt.Sprintf("On default branch %q", c.Branch)
	}
	if c.TaskType == TaskUnknown {
		return fmt.Sprintf("On branch %q", c.Branch)
	}
	return fmt.Sprintf("On branch %q (%s: %s)", c.Branch, c.TaskType, c.TaskHint)
}

// humanize turns a branch remainder like "add-login_form" into
// "add login form".
func humanize(remainder string) string {
	replaced := strings.NewReplacer("-", " ", "_", " ", "/", " ").Replace(remainder)
	return strings.Join(strings.Fields(replaced), " ")
}

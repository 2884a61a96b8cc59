// Package fleet implements the batch-operation engine: a fixed set of
// actions applied uniformly across the resolved project set, with
// per-project outcomes reduced into one human-readable report.
package fleet

// Action is one of the fixed fleet operations. The set is closed: new
// behavior means a new constant here, never a stringly-typed branch in the
// runner.
type Action string

const (
	ActionList       Action = "list"
	ActionUpdateDeps Action = "update_deps"
	ActionOutdated   Action = "outdated"
	ActionGitPull    Action = "git_pull"
	ActionGitPush    Action = "git_push"
	ActionGitStatus  Action = "git_status"
	ActionRefresh    Action = "refresh"
	ActionDelete     Action = "delete"
	ActionIgnore     Action = "ignore"
	ActionUnignore   Action = "unignore"
)

// actionOrder fixes the listing order used in the unknown-action message.
var actionOrder = []Action{
	ActionList,
	ActionUpdateDeps,
	ActionOutdated,
	ActionGitPull,
	ActionGitPush,
	ActionGitStatus,
	ActionRefresh,
	ActionDelete,
	ActionIgnore,
	ActionUnignore,
}

// ParseAction resolves an action name once at the dispatch boundary.
func ParseAction(s string) (Action, bool) {
	for _, a := range actionOrder {
		if string(a) == s {
			return a, true
		}
	}
	return "", false
}

// ActionNames returns all valid action names in listing order.
func ActionNames() []string {
	names := make([]string, len(actionOrder))
	for i, a := range actionOrder {
		names[i] = string(a)
	}
	return names
}

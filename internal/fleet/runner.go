package fleet

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"mixfleet/internal/execx"
	"mixfleet/internal/projects"
)

const noProjectsMsg = "No Elixir projects found"

// Runner executes one fleet operation across a project set, sequentially,
// and renders a single report. Commands run with no deadline: dependency
// updates and git transfers can legitimately take minutes, so the caller's
// context is the only cancellation path.
type Runner struct {
	Exec   execx.Runner
	Logger *slog.Logger
}

func (r *Runner) log() *slog.Logger {
	if r.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return r.Logger
}

// UpdateDeps runs `mix deps.update --all` in every project.
func (r *Runner) UpdateDeps(ctx context.Context, ps []projects.Project) string {
	if len(ps) == 0 {
		return noProjectsMsg
	}
	r.log().Debug("updating deps", "projects", len(ps))

	results := make([]string, 0, len(ps))
	for _, p := range ps {
		res, err := r.Exec.Run(ctx, p.Path, "mix", "deps.update", "--all")
		var status string
		switch {
		case err != nil:
			status = "✗ " + err.Error()
		case res.Success():
			status = "✓"
		default:
			status = "✗ " + res.FirstStderrLine("failed")
		}
		results = append(results, fmt.Sprintf("%s %s", status, p.Path))
	}
	return fmt.Sprintf("Updated %d projects:\n%s", len(ps), strings.Join(results, "\n"))
}

// Outdated runs `mix hex.outdated` in every project and summarizes which
// ones have newer dependency versions available. hex.outdated exits
// non-zero when anything is outdated, but some versions also just print
// "Newer versions", so both signals flag a project.
func (r *Runner) Outdated(ctx context.Context, ps []projects.Project) string {
	if len(ps) == 0 {
		return noProjectsMsg
	}
	r.log().Debug("checking outdated deps", "projects", len(ps))

	var blocks []string
	flagged := 0
	for _, p := range ps {
		res, err := r.Exec.Run(ctx, p.Path, "mix", "hex.outdated")
		if err != nil {
			blocks = append(blocks, fmt.Sprintf("\n✗ %s - error: %v", p.Name(), err))
			continue
		}
		stdout := string(res.Stdout)
		if res.Success() && !strings.Contains(stdout, "Newer versions") {
			continue
		}
		flagged++
		deps := outdatedDepLines(stdout)
		if len(deps) > 0 {
			blocks = append(blocks, fmt.Sprintf("\n📦 %s (%d outdated):\n  %s",
				p.Name(), len(deps), strings.Join(deps, "\n  ")))
		}
	}

	if flagged == 0 {
		return fmt.Sprintf("All %d projects are up to date!", len(ps))
	}
	return fmt.Sprintf("%d/%d projects have outdated dependencies:%s",
		flagged, len(ps), strings.Join(blocks, ""))
}

// outdatedDepLines picks the per-dependency rows out of hex.outdated's
// table: lines with a version arrow, or indented data rows that are not
// the table header.
func outdatedDepLines(stdout string) []string {
	var deps []string
	for _, line := range strings.Split(stdout, "\n") {
		if strings.Contains(line, "->") {
			deps = append(deps, line)
			continue
		}
		if strings.HasPrefix(line, "  ") && strings.TrimSpace(line) != "" &&
			!strings.Contains(line, "Dependency") {
			deps = append(deps, line)
		}
	}
	return deps
}

// GitPull runs `git pull` in every project.
func (r *Runner) GitPull(ctx context.Context, ps []projects.Project) string {
	return r.gitSync(ctx, ps, "pull")
}

// GitPush runs `git push` in every project.
func (r *Runner) GitPush(ctx context.Context, ps []projects.Project) string {
	return r.gitSync(ctx, ps, "push")
}

func (r *Runner) gitSync(ctx context.Context, ps []projects.Project, verb string) string {
	if len(ps) == 0 {
		return noProjectsMsg
	}
	r.log().Debug("git sync", "verb", verb, "projects", len(ps))

	results := make([]string, 0, len(ps))
	for _, p := range ps {
		res, err := r.Exec.Run(ctx, p.Path, "git", verb)
		var status string
		switch {
		case err != nil:
			status = "✗ " + err.Error()
		case res.Success():
			status = gitSyncOutcome(verb, res)
		default:
			status = "✗ " + res.FirstStderrLine("failed")
		}
		results = append(results, fmt.Sprintf("%s %s", p.Name(), status))
	}
	return fmt.Sprintf("Git %s on %d projects:\n%s", verb, len(ps), strings.Join(results, "\n"))
}

// gitSyncOutcome distinguishes a no-op sync from one that moved commits.
// git pull reports "Already up to date" on stdout; git push reports
// "Everything up-to-date" on stderr.
func gitSyncOutcome(verb string, res execx.Result) string {
	if verb == "pull" {
		if strings.Contains(string(res.Stdout), "Already up to date") {
			return "✓ (up to date)"
		}
		return "✓ (updated)"
	}
	if strings.Contains(string(res.Stderr), "Everything up-to-date") {
		return "✓ (up to date)"
	}
	return "✓ (pushed)"
}

// GitStatus reports which projects have uncommitted changes or unpushed
// commits. A project whose status commands fail to run counts as clean.
func (r *Runner) GitStatus(ctx context.Context, ps []projects.Project) string {
	if len(ps) == 0 {
		return noProjectsMsg
	}
	r.log().Debug("checking git status", "projects", len(ps))

	var dirty, ahead []string
	clean := 0
	for _, p := range ps {
		st, errStatus := r.Exec.Run(ctx, p.Path, "git", "status", "--porcelain")
		hasChanges := errStatus == nil && len(st.Stdout) > 0

		br, errBranch := r.Exec.Run(ctx, p.Path, "git", "status", "--branch", "--porcelain=v2")
		isAhead := errBranch == nil && strings.Contains(string(br.Stdout), "ahead")

		if hasChanges {
			dirty = append(dirty, p.Name())
		}
		if isAhead {
			ahead = append(ahead, p.Name())
		}
		if !hasChanges && !isAhead {
			clean++
		}
	}

	if len(dirty) == 0 && len(ahead) == 0 {
		return fmt.Sprintf("✅ All %d projects are clean and pushed!", len(ps))
	}

	var b strings.Builder
	if len(dirty) > 0 {
		fmt.Fprintf(&b, "⚠️  Uncommitted changes (%d):\n  %s\n\n",
			len(dirty), strings.Join(dirty, "\n  "))
	}
	if len(ahead) > 0 {
		fmt.Fprintf(&b, "📤 Unpushed commits (%d):\n  %s\n\n",
			len(ahead), strings.Join(ahead, "\n  "))
	}
	fmt.Fprintf(&b, "✓ %d projects clean", clean)
	return b.String()
}

// Delete removes the given project trees from disk. Failures are reported
// per project; the caller is responsible for resyncing the cache afterwards
// regardless of outcome.
func (r *Runner) Delete(ps []projects.Project) string {
	results := make([]string, 0, len(ps))
	for _, p := range ps {
		if err := os.RemoveAll(p.Path); err != nil {
			r.log().Warn("delete failed", "path", p.Path, "error", err)
			results = append(results, fmt.Sprintf("✗ Failed to delete %s: %v", p.Name(), err))
			continue
		}
		r.log().Info("deleted project", "path", p.Path)
		results = append(results, fmt.Sprintf("✓ Deleted %s", p.Name()))
	}
	return strings.Join(results, "\n")
}

package fleet

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"mixfleet/internal/projects"
)

// Request is one fleet invocation. Project narrows the target set by
// case-insensitive name substring; Path overrides the discovery root for
// this call only.
type Request struct {
	Action  string `json:"action"`
	Project string `json:"project,omitempty"`
	Path    string `json:"path,omitempty"`
}

// Recorder receives a summary of each completed batch operation. Recording
// is best effort; implementations must not fail the operation.
type Recorder interface {
	RecordRun(action string, projectCount, failureCount int, duration time.Duration)
}

// Dispatcher resolves a request's target set and routes it to the matching
// operation. All action-name validation happens here; the runner only ever
// sees a concrete operation.
type Dispatcher struct {
	Resolver *projects.Resolver
	Runner   *Runner
	History  Recorder
	Logger   *slog.Logger
}

func (d *Dispatcher) log() *slog.Logger {
	if d.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return d.Logger
}

// Dispatch executes one request and returns the report text. Every outcome,
// including bad input, is a report: errors surface to the user as text,
// never as a failed call.
func (d *Dispatcher) Dispatch(ctx context.Context, req Request) string {
	action, ok := ParseAction(req.Action)
	if !ok {
		return fmt.Sprintf("Unknown action '%s'. Use: %s",
			req.Action, strings.Join(ActionNames(), ", "))
	}

	d.log().Info("dispatching fleet action",
		"action", action, "project", req.Project, "path", req.Path)

	// Ignore mutations work on the unfiltered known set and never touch
	// the project cache, so they bypass the shared resolution below.
	switch action {
	case ActionIgnore:
		return d.handleIgnore(req)
	case ActionUnignore:
		return d.handleUnignore(req)
	}

	ps := d.Resolver.Resolve(projects.ResolveOptions{
		PathOverride: req.Path,
		ForceRefresh: action == ActionRefresh,
	})
	ps = projects.FilterByName(ps, req.Project)

	switch action {
	case ActionList:
		return d.handleList(ps)
	case ActionRefresh:
		return d.handleRefresh(ps)
	case ActionDelete:
		return d.handleDelete(req, ps)
	}

	start := time.Now()
	var out string
	switch action {
	case ActionUpdateDeps:
		out = d.Runner.UpdateDeps(ctx, ps)
	case ActionOutdated:
		out = d.Runner.Outdated(ctx, ps)
	case ActionGitPull:
		out = d.Runner.GitPull(ctx, ps)
	case ActionGitPush:
		out = d.Runner.GitPush(ctx, ps)
	case ActionGitStatus:
		out = d.Runner.GitStatus(ctx, ps)
	}
	d.record(action, len(ps), out, time.Since(start))
	return out
}

func (d *Dispatcher) handleList(ps []projects.Project) string {
	if len(ps) == 0 {
		return noProjectsMsg
	}
	return fmt.Sprintf("Found %d projects: %s", len(ps), strings.Join(projects.Names(ps), ", "))
}

func (d *Dispatcher) handleRefresh(ps []projects.Project) string {
	paths := make([]string, len(ps))
	for i, p := range ps {
		paths[i] = p.Path
	}
	return fmt.Sprintf("Refreshed project cache. Found %d Elixir projects:\n%s",
		len(ps), strings.Join(paths, "\n"))
}

func (d *Dispatcher) handleDelete(req Request, ps []projects.Project) string {
	if req.Project == "" {
		return "Error: 'project' filter is required for delete action"
	}
	if len(ps) == 0 {
		return "No matching projects found"
	}

	start := time.Now()
	out := d.Runner.Delete(ps)
	// The cache must reflect the filesystem again even when some
	// deletions failed partway.
	d.Resolver.RefreshCache()
	d.record(ActionDelete, len(ps), out, time.Since(start))
	return out
}

// handleIgnore lists the ignore set when no filter is given, otherwise adds
// every known project whose name contains the filter. Matching here is by
// substring, deliberately looser than the exact-name check applied when
// filtering resolved project sets.
func (d *Dispatcher) handleIgnore(req Request) string {
	ignored := d.Resolver.Ignore.Load()

	if req.Project == "" {
		if len(ignored) == 0 {
			return "No projects are currently ignored"
		}
		names := make([]string, 0, len(ignored))
		for name := range ignored {
			names = append(names, name)
		}
		sort.Strings(names)
		return "Ignored projects: " + strings.Join(names, ", ")
	}

	known := d.Resolver.Known(req.Path)
	filter := strings.ToLower(req.Project)
	var added []string
	for _, p := range known {
		name := p.Name()
		if strings.Contains(strings.ToLower(name), filter) && !ignored[name] {
			ignored[name] = true
			added = append(added, name)
		}
	}
	if len(added) == 0 {
		return "No matching projects found to ignore"
	}
	if err := d.Resolver.Ignore.Save(ignored); err != nil {
		d.log().Debug("ignore store save failed", "error", err)
	}
	return "Ignored: " + strings.Join(added, ", ")
}

func (d *Dispatcher) handleUnignore(req Request) string {
	if req.Project == "" {
		return "Error: 'project' filter is required for unignore action"
	}

	ignored := d.Resolver.Ignore.Load()
	filter := strings.ToLower(req.Project)
	var removed []string
	for name := range ignored {
		if strings.Contains(strings.ToLower(name), filter) {
			delete(ignored, name)
			removed = append(removed, name)
		}
	}
	if len(removed) == 0 {
		return "No matching ignored projects found"
	}
	sort.Strings(removed)
	if err := d.Resolver.Ignore.Save(ignored); err != nil {
		d.log().Debug("ignore store save failed", "error", err)
	}
	return "Unignored: " + strings.Join(removed, ", ")
}

func (d *Dispatcher) record(action Action, count int, report string, dur time.Duration) {
	if d.History == nil {
		return
	}
	// Failure marks are the only place ✗ appears in a report.
	failures := strings.Count(report, "✗")
	d.History.RecordRun(string(action), count, failures, dur)
}

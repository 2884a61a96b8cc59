package projects

import (
	"log/slog"

	"mixfleet/internal/paths"
)

// ResolveOptions selects how the authoritative project set is produced.
type ResolveOptions struct {
	// PathOverride, when non-empty, is scanned directly and the cache is
	// bypassed entirely. A leading "~/" expands against the home dir.
	PathOverride string

	// ForceRefresh skips the cache and rescans the default root,
	// persisting the result.
	ForceRefresh bool
}

// Resolver composes cache-or-scan, path override, and ignore filtering into
// the single authoritative project set for a request.
type Resolver struct {
	Cache   *CacheStore
	Ignore  *IgnoreStore
	Scanner *Scanner

	// Root is the default discovery root used when no override is given.
	Root string

	Logger *slog.Logger
}

// Resolve produces the project set for one request. The ignore set is
// loaded fresh on every call and applied by exact name membership; only
// projects whose display name is verbatim in the set are removed.
func (r *Resolver) Resolve(opts ResolveOptions) []Project {
	ignored := r.Ignore.Load()

	if opts.PathOverride != "" {
		ps := r.Scanner.Scan(paths.ExpandHome(opts.PathOverride))
		return dropIgnored(ps, ignored)
	}

	if !opts.ForceRefresh {
		if ps, ok := r.Cache.Load(); ok {
			return dropIgnored(ps, ignored)
		}
	}

	ps := r.Scanner.Scan(r.Root)
	if err := r.Cache.Save(ps); err != nil {
		// Persistence is best-effort; the scan result is still good.
		if r.Logger != nil {
			r.Logger.Debug("cache save failed", "error", err)
		}
	}
	return dropIgnored(ps, ignored)
}

// Known returns the unfiltered project set used when mutating the ignore
// list: the cache when present, else a fresh scan of the override or
// default root. No ignore filtering is applied — already-ignored projects
// must remain matchable.
func (r *Resolver) Known(pathOverride string) []Project {
	if ps, ok := r.Cache.Load(); ok {
		return ps
	}
	root := r.Root
	if pathOverride != "" {
		root = paths.ExpandHome(pathOverride)
	}
	return r.Scanner.Scan(root)
}

// RefreshCache rescans the default root and overwrites the cache,
// returning the scanned set. Used by refresh and by delete's post-removal
// resync.
func (r *Resolver) RefreshCache() []Project {
	ps := r.Scanner.Scan(r.Root)
	if err := r.Cache.Save(ps); err != nil {
		if r.Logger != nil {
			r.Logger.Debug("cache save failed", "error", err)
		}
	}
	return ps
}

func dropIgnored(ps []Project, ignored map[string]bool) []Project {
	if len(ignored) == 0 {
		return ps
	}
	var out []Project
	for _, p := range ps {
		if !ignored[p.Name()] {
			out = append(out, p)
		}
	}
	return out
}

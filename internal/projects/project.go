// Package projects implements the project-fleet registry: discovery of
// Elixir project roots, the persistent path cache, the ignore list, and the
// resolver that combines them into the authoritative project set for a
// request.
package projects

import (
	"path/filepath"
	"sort"
	"strings"
)

// Project is a directory identified as a project root because it directly
// contains the marker file. Identity is the absolute path; the display name
// is derived and not guaranteed unique across roots.
type Project struct {
	Path string
}

// Name returns the display name (final path segment).
func (p Project) Name() string {
	return filepath.Base(p.Path)
}

// SortByPath orders a project set lexicographically by path ascending.
func SortByPath(ps []Project) {
	sort.Slice(ps, func(i, j int) bool { return ps[i].Path < ps[j].Path })
}

// Names returns the display names of a project set, in set order.
func Names(ps []Project) []string {
	names := make([]string, 0, len(ps))
	for _, p := range ps {
		names = append(names, p.Name())
	}
	return names
}

// FilterByName keeps projects whose display name contains the given
// substring, case-insensitively. An empty filter keeps everything.
func FilterByName(ps []Project, substr string) []Project {
	if substr == "" {
		return ps
	}
	needle := strings.ToLower(substr)
	var out []Project
	for _, p := range ps {
		if strings.Contains(strings.ToLower(p.Name()), needle) {
			out = append(out, p)
		}
	}
	return out
}

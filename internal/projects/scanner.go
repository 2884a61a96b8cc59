package projects

import (
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
)

// Scanner discovers project roots by walking a filesystem subtree.
//
// Directories named in Skip are pruned from traversal entirely. Symbolic
// links to directories are followed; a visited set of resolved paths guards
// against link cycles. The scanner never consults or mutates the cache.
type Scanner struct {
	// Marker is the filename whose direct presence qualifies a directory
	// as a project root (mix.exs for Elixir).
	Marker string

	// Skip lists directory names never descended into (dependency caches,
	// build output, VCS metadata).
	Skip []string

	Logger *slog.Logger
}

// Scan enumerates project roots under root, sorted by path ascending.
// A missing root is not an error: it yields an empty set.
func (s *Scanner) Scan(root string) []Project {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil
	}
	if _, err := os.Stat(abs); err != nil {
		return nil
	}

	skip := make(map[string]bool, len(s.Skip))
	for _, name := range s.Skip {
		skip[name] = true
	}

	var out []Project
	visited := make(map[string]bool)
	s.walk(abs, skip, visited, &out)

	SortByPath(out)
	return out
}

func (s *Scanner) walk(dir string, skip, visited map[string]bool, out *[]Project) {
	// Resolve through symlinks so a link cycle terminates.
	real, err := filepath.EvalSymlinks(dir)
	if err != nil {
		return
	}
	if visited[real] {
		return
	}
	visited[real] = true

	if s.isProjectRoot(dir) {
		*out = append(*out, Project{Path: dir})
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		if s.Logger != nil {
			s.Logger.Debug("skipping unreadable directory", "dir", dir, "error", err)
		}
		return
	}

	for _, entry := range entries {
		name := entry.Name()
		if skip[name] {
			continue
		}
		child := filepath.Join(dir, name)

		isDir := entry.IsDir()
		if !isDir && entry.Type()&fs.ModeSymlink != 0 {
			if info, err := os.Stat(child); err == nil && info.IsDir() {
				isDir = true
			}
		}
		if isDir {
			s.walk(child, skip, visited, out)
		}
	}
}

func (s *Scanner) isProjectRoot(dir string) bool {
	return IsProjectDir(dir, s.Marker)
}

// IsProjectDir reports whether dir exists and directly contains the marker
// file. Used by both the scanner and the cache's self-healing load.
func IsProjectDir(dir, marker string) bool {
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return false
	}
	minfo, err := os.Stat(filepath.Join(dir, marker))
	return err == nil && !minfo.IsDir()
}

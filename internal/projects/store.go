package projects

import (
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// LineStore persists a list of lines. Both fleet state files (project path
// cache, ignored names) are plain text, one entry per line, LF-terminated.
// The interface exists so a future implementation could swap in an embedded
// store without changing the resolver or runner contracts.
type LineStore interface {
	// Load returns the stored lines and whether the store exists at all.
	Load() (lines []string, exists bool, err error)
	// Save overwrites the store with the given lines, creating parent
	// directories as needed.
	Save(lines []string) error
}

// FileStore is the file-backed LineStore used in production.
//
// No locking is performed: two concurrent writers race and the last one
// wins. This is an accepted limitation — persistence here is an
// optimization, not a correctness requirement, since discovery can always
// be re-run.
type FileStore struct {
	Path string
}

// Load reads the file, dropping empty lines. A missing file is not an
// error; it reports exists=false.
func (f *FileStore) Load() ([]string, bool, error) {
	data, err := os.ReadFile(f.Path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	var lines []string
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimRight(line, "\r")
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines, true, nil
}

// Save overwrites the file, one line per entry, creating parent directories.
func (f *FileStore) Save(lines []string) error {
	if err := os.MkdirAll(filepath.Dir(f.Path), 0o755); err != nil {
		return err
	}
	var b strings.Builder
	for _, line := range lines {
		b.WriteString(line)
		b.WriteByte('\n')
	}
	return os.WriteFile(f.Path, []byte(b.String()), 0o644)
}

// CacheStore persists the discovered project set, one absolute path per
// line, with staleness self-healing on read.
type CacheStore struct {
	Store  LineStore
	Marker string
	Logger *slog.Logger
}

// Load returns the cached project set, or ok=false when no cache exists.
// Entries that no longer exist or no longer qualify as a project are
// dropped; if anything was dropped the pruned set is persisted back
// immediately, so this nominally read-only call can write.
func (c *CacheStore) Load() ([]Project, bool) {
	lines, exists, err := c.Store.Load()
	if err != nil {
		c.debug("cache unreadable, treating as absent", "error", err)
		return nil, false
	}
	if !exists {
		return nil, false
	}

	kept := []Project{}
	dropped := 0
	for _, path := range lines {
		if IsProjectDir(path, c.Marker) {
			kept = append(kept, Project{Path: path})
		} else {
			dropped++
		}
	}

	if dropped > 0 {
		c.debug("pruned stale cache entries", "dropped", dropped, "kept", len(kept))
		if err := c.Save(kept); err != nil {
			c.debug("cache rewrite failed", "error", err)
		}
	}

	return kept, true
}

// Save overwrites the cache with the given project set.
func (c *CacheStore) Save(ps []Project) error {
	lines := make([]string, 0, len(ps))
	for _, p := range ps {
		lines = append(lines, p.Path)
	}
	return c.Store.Save(lines)
}

func (c *CacheStore) debug(msg string, args ...any) {
	if c.Logger != nil {
		c.Logger.Debug(msg, args...)
	}
}

// IgnoreStore persists the set of project display names excluded from all
// fleet operations, one name per line.
type IgnoreStore struct {
	Store LineStore
}

// Load returns the ignore set, empty when the file is absent or unreadable.
func (s *IgnoreStore) Load() map[string]bool {
	lines, _, err := s.Store.Load()
	if err != nil {
		return map[string]bool{}
	}
	set := make(map[string]bool, len(lines))
	for _, name := range lines {
		set[name] = true
	}
	return set
}

// Save overwrites the ignore file with the given names, sorted for a
// deterministic file layout.
func (s *IgnoreStore) Save(names map[string]bool) error {
	lines := make([]string, 0, len(names))
	for name := range names {
		lines = append(lines, name)
	}
	sort.Strings(lines)
	return s.Store.Save(lines)
}

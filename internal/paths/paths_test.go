package paths

import (
	"path/filepath"
	"strings"
	"testing"
)

func TestCacheLayout(t *testing.T) {
	cacheDir, err := CacheDir()
	if err != nil {
		t.Fatalf("CacheDir() error = %v", err)
	}
	if filepath.Base(cacheDir) != "mixfleet" {
		t.Errorf("CacheDir() = %q, want a mixfleet directory", cacheDir)
	}

	tests := []struct {
		name string
		fn   func() (string, error)
		base string
	}{
		{"project cache", ProjectCacheFile, "projects"},
		{"ignore file", IgnoreFile, "ignored"},
		{"history db", HistoryDBFile, "history.db"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.fn()
			if err != nil {
				t.Fatalf("error = %v", err)
			}
			if filepath.Base(got) != tt.base {
				t.Errorf("got %q, want basename %q", got, tt.base)
			}
			if filepath.Dir(got) != cacheDir {
				t.Errorf("got %q, want it under %q", got, cacheDir)
			}
		})
	}
}

func TestConfigFile(t *testing.T) {
	got, err := ConfigFile()
	if err != nil {
		t.Fatalf("ConfigFile() error = %v", err)
	}
	if filepath.Base(got) != "config.yaml" {
		t.Errorf("ConfigFile() = %q, want config.yaml basename", got)
	}
	if !strings.Contains(got, "mixfleet") {
		t.Errorf("ConfigFile() = %q, want a mixfleet directory", got)
	}
}

func TestExpandHome(t *testing.T) {
	t.Setenv("HOME", "/home/tester")

	tests := []struct {
		input string
		want  string
	}{
		{"~/src/flt", "/home/tester/src/flt"},
		{"~/", "/home/tester"},
		{"/abs/path", "/abs/path"},
		{"relative/path", "relative/path"},
		{"~", "~"},
		{"~user/x", "~user/x"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := ExpandHome(tt.input); got != tt.want {
				t.Errorf("ExpandHome(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestDefaultScanRoot(t *testing.T) {
	t.Setenv("HOME", "/home/tester")

	want := filepath.Join("/home/tester", "src", "flt")
	if got := DefaultScanRoot(); got != want {
		t.Errorf("DefaultScanRoot() = %q, want %q", got, want)
	}
}

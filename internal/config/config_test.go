package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.MarkerFile != "mix.exs" {
		t.Errorf("MarkerFile = %q, want mix.exs", cfg.MarkerFile)
	}
	if cfg.Logging.Format != "json" {
		t.Errorf("Logging.Format = %q, want json", cfg.Logging.Format)
	}
	if !cfg.History.Enabled {
		t.Error("History.Enabled = false, want true")
	}

	wantSkip := map[string]bool{
		"deps": true, "_build": true, ".elixir_ls": true,
		"node_modules": true, ".git": true, "_checkouts": true,
	}
	if len(cfg.SkipDirs) != len(wantSkip) {
		t.Fatalf("SkipDirs = %v, want %d entries", cfg.SkipDirs, len(wantSkip))
	}
	for _, d := range cfg.SkipDirs {
		if !wantSkip[d] {
			t.Errorf("unexpected skip dir %q", d)
		}
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate, got %v", err)
	}
}

func TestLoadFromMissingFile(t *testing.T) {
	cfg, err := LoadFrom(t.TempDir())
	if err != nil {
		t.Fatalf("LoadFrom() error = %v", err)
	}
	if cfg.MarkerFile != "mix.exs" {
		t.Errorf("missing file should yield defaults, got MarkerFile = %q", cfg.MarkerFile)
	}
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	content := []byte(`scanRoot: ~/work/elixir
markerFile: mix.exs
player: spotify
logging:
  format: human
  level: debug
history:
  enabled: false
`)
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), content, 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFrom(dir)
	if err != nil {
		t.Fatalf("LoadFrom() error = %v", err)
	}

	if cfg.ScanRoot != "~/work/elixir" {
		t.Errorf("ScanRoot = %q, want ~/work/elixir", cfg.ScanRoot)
	}
	if cfg.Player != "spotify" {
		t.Errorf("Player = %q, want spotify", cfg.Player)
	}
	if cfg.Logging.Format != "human" || cfg.Logging.Level != "debug" {
		t.Errorf("Logging = %+v, want human/debug", cfg.Logging)
	}
	if cfg.History.Enabled {
		t.Error("History.Enabled = true, want false")
	}
	// Unset keys keep their defaults.
	if len(cfg.SkipDirs) == 0 {
		t.Error("SkipDirs should keep defaults when unset")
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("MIXFLEET_PLAYER", "vlc")
	t.Setenv("MIXFLEET_SCANROOT", "/srv/elixir")
	t.Setenv("MIXFLEET_LOGGING_LEVEL", "debug")
	t.Setenv("MIXFLEET_LOGGING_FORMAT", "human")
	t.Setenv("MIXFLEET_HISTORY_ENABLED", "false")

	cfg, err := LoadFrom(t.TempDir())
	if err != nil {
		t.Fatalf("LoadFrom() error = %v", err)
	}

	if cfg.Player != "vlc" {
		t.Errorf("Player = %q, want vlc", cfg.Player)
	}
	if cfg.ScanRoot != "/srv/elixir" {
		t.Errorf("ScanRoot = %q, want /srv/elixir", cfg.ScanRoot)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Logging.Level = %q, want debug", cfg.Logging.Level)
	}
	if cfg.Logging.Format != "human" {
		t.Errorf("Logging.Format = %q, want human", cfg.Logging.Format)
	}
	if cfg.History.Enabled {
		t.Error("History.Enabled = true, want false")
	}
}

func TestEnvOverridesBeatFileValues(t *testing.T) {
	dir := t.TempDir()
	content := []byte("logging:\n  level: warn\n")
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), content, 0o644); err != nil {
		t.Fatal(err)
	}

	t.Setenv("MIXFLEET_LOGGING_LEVEL", "error")

	cfg, err := LoadFrom(dir)
	if err != nil {
		t.Fatalf("LoadFrom() error = %v", err)
	}
	if cfg.Logging.Level != "error" {
		t.Errorf("Logging.Level = %q, want error (env over file)", cfg.Logging.Level)
	}
}

func TestLoadFromInvalidValues(t *testing.T) {
	dir := t.TempDir()
	content := []byte("logging:\n  format: xml\n")
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), content, 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := LoadFrom(dir); err == nil {
		t.Fatal("expected validation error for logging.format=xml")
	}
}

func TestSaveRoundTrip(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "config")

	cfg := DefaultConfig()
	cfg.ScanRoot = "/srv/projects"
	cfg.Player = "vlc"

	if err := cfg.Save(dir); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	loaded, err := LoadFrom(dir)
	if err != nil {
		t.Fatalf("LoadFrom() error = %v", err)
	}
	if loaded.ScanRoot != "/srv/projects" {
		t.Errorf("ScanRoot = %q, want /srv/projects", loaded.ScanRoot)
	}
	if loaded.Player != "vlc" {
		t.Errorf("Player = %q, want vlc", loaded.Player)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"valid", func(c *Config) {}, false},
		{"bad format", func(c *Config) { c.Logging.Format = "xml" }, true},
		{"bad level", func(c *Config) { c.Logging.Level = "trace" }, true},
		{"empty marker", func(c *Config) { c.MarkerFile = "" }, true},
		{"marker with path", func(c *Config) { c.MarkerFile = "sub/mix.exs" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestEffectiveScanRoot(t *testing.T) {
	t.Setenv("HOME", "/home/tester")

	cfg := DefaultConfig()
	if got := cfg.EffectiveScanRoot(); got != filepath.Join("/home/tester", "src", "flt") {
		t.Errorf("empty ScanRoot: got %q, want default root", got)
	}

	cfg.ScanRoot = "~/work"
	if got := cfg.EffectiveScanRoot(); got != "/home/tester/work" {
		t.Errorf("tilde ScanRoot: got %q, want /home/tester/work", got)
	}

	cfg.ScanRoot = "/opt/src"
	if got := cfg.EffectiveScanRoot(); got != "/opt/src" {
		t.Errorf("absolute ScanRoot: got %q, want /opt/src", got)
	}
}

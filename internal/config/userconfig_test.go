package config

import (
	"path/filepath"
	"testing"
)

func TestLoadUserConfigFallsBackWhenMissing(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg, err := LoadUserConfig()
	if err != nil {
		t.Fatalf("LoadUserConfig() error = %v", err)
	}
	if cfg.Shell.Command == "" {
		t.Error("LoadUserConfig() with no file should still set a default shell")
	}
	if cfg.Timeouts.ClickMS != int(ClickTimeout/1e6) {
		t.Errorf("Timeouts.ClickMS = %d, want %d", cfg.Timeouts.ClickMS, int(ClickTimeout/1e6))
	}
}

func TestWriteDefaultConfigThenLoadRoundTrips(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	path, err := WriteDefaultConfig()
	if err != nil {
		t.Fatalf("WriteDefaultConfig() error = %v", err)
	}
	if filepath.Base(path) != "config.toml" {
		t.Errorf("WriteDefaultConfig() path = %q, want a config.toml file", path)
	}

	second, err := WriteDefaultConfig()
	if err != nil {
		t.Fatalf("second WriteDefaultConfig() error = %v", err)
	}
	if second != path {
		t.Errorf("WriteDefaultConfig() is not idempotent: %q != %q", second, path)
	}

	cfg, err := LoadUserConfig()
	if err != nil {
		t.Fatalf("LoadUserConfig() error = %v", err)
	}
	if cfg.Shell.Command != DefaultConfig().Shell.Command {
		t.Errorf("round-tripped shell = %q, want %q", cfg.Shell.Command, DefaultConfig().Shell.Command)
	}
}

func TestGetConfigPathUnderXDGConfigHome(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)

	path, err := GetConfigPath()
	if err != nil {
		t.Fatalf("GetConfigPath() error = %v", err)
	}
	want := filepath.Join(dir, "termdrive", "config.toml")
	if path != want {
		t.Errorf("GetConfigPath() = %q, want %q", path, want)
	}
}

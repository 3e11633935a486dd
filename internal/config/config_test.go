package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadFromMissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadFrom(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Database.Path == "" || cfg.Log.Path == "" {
		t.Fatalf("defaults not applied: %+v", cfg)
	}
	if cfg.App.Timezone != "" {
		t.Fatalf("expected empty default timezone, got %q", cfg.App.Timezone)
	}
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	contents := `
[database]
path = "/tmp/routined-test.db"

[app]
timezone = "America/New_York"

[log]
debug = true
`
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Database.Path != "/tmp/routined-test.db" {
		t.Fatalf("unexpected db path: %q", cfg.Database.Path)
	}
	if cfg.App.Timezone != "America/New_York" {
		t.Fatalf("unexpected timezone: %q", cfg.App.Timezone)
	}
	if !cfg.Log.Debug {
		t.Fatal("expected debug logging enabled")
	}
	loc, err := cfg.Location()
	if err != nil {
		t.Fatalf("location: %v", err)
	}
	if loc.String() != "America/New_York" {
		t.Fatalf("unexpected location: %s", loc)
	}
}

func TestLoadFromRejectsUnknownTimezone(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[app]\ntimezone = \"Mars/Olympus\"\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := LoadFrom(path); err == nil {
		t.Fatal("expected error for unknown timezone")
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("ROUTINED_DB_PATH", "/tmp/override.db")
	t.Setenv("ROUTINED_TIMEZONE", "UTC")
	t.Setenv("ROUTINED_DEBUG", "yes")

	cfg, err := LoadFrom(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Database.Path != "/tmp/override.db" {
		t.Fatalf("db path override not applied: %q", cfg.Database.Path)
	}
	if cfg.App.Timezone != "UTC" {
		t.Fatalf("timezone override not applied: %q", cfg.App.Timezone)
	}
	if !cfg.Log.Debug {
		t.Fatal("debug override not applied")
	}
}

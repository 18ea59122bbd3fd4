package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"moodvibe/internal/errors"
)

func TestLoad_CreatesTemplates(t *testing.T) {
	dir := t.TempDir()

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	for _, name := range []string{"config.toml", "credentials.toml"} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			t.Errorf("%s was not created: %v", name, err)
		}
	}
	info, err := os.Stat(filepath.Join(dir, "credentials.toml"))
	if err == nil && info.Mode().Perm() != 0600 {
		t.Errorf("credentials.toml mode = %v, want 0600", info.Mode().Perm())
	}

	if cfg.Storage.DBPath != filepath.Join(dir, "moodvibe.db") {
		t.Errorf("DBPath = %s", cfg.Storage.DBPath)
	}
	if cfg.Recommendations.Timeout != 10*time.Second {
		t.Errorf("Timeout = %v", cfg.Recommendations.Timeout)
	}
	if cfg.Recommendations.RandomCount != 3 || cfg.Export.Format != "text" || cfg.Logging.Level != "warn" {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
	if cfg.HasSpotify() || cfg.HasTMDB() {
		t.Error("template credentials should be empty")
	}
}

func TestLoad_ReadsExistingFiles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "config.toml", `
[recommendations]
live = true
timeout = "3s"

[export]
format = "csv"
`)
	writeFile(t, dir, "credentials.toml", `
[tmdb]
api_key = "abc"
`)

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !cfg.Recommendations.Live || cfg.Recommendations.Timeout != 3*time.Second {
		t.Errorf("recommendations = %+v", cfg.Recommendations)
	}
	if cfg.Export.Format != "csv" {
		t.Errorf("format = %s", cfg.Export.Format)
	}
	// Unset keys keep their defaults.
	if cfg.Logging.MaxSize != 10 {
		t.Errorf("MaxSize = %d", cfg.Logging.MaxSize)
	}
	if !cfg.HasTMDB() {
		t.Error("TMDB key not loaded")
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("MOODVIBE_DB_PATH", "/tmp/other.db")
	t.Setenv("MOODVIBE_LIVE", "true")
	t.Setenv("SPOTIFY_CLIENT_ID", "id")
	t.Setenv("SPOTIFY_CLIENT_SECRET", "secret")
	t.Setenv("MOODVIBE_SYNC_KEY", "sync-key")

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Storage.DBPath != "/tmp/other.db" {
		t.Errorf("DBPath = %s", cfg.Storage.DBPath)
	}
	if !cfg.Recommendations.Live {
		t.Error("MOODVIBE_LIVE not applied")
	}
	if !cfg.HasSpotify() {
		t.Error("Spotify credentials not applied")
	}
	if cfg.Credentials.Sync.APIKey != "sync-key" {
		t.Errorf("sync key = %q", cfg.Credentials.Sync.APIKey)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
		ok     bool
	}{
		{"valid", func(c *Config) {}, true},
		{"bad log level", func(c *Config) { c.Logging.Level = "loud" }, false},
		{"bad export format", func(c *Config) { c.Export.Format = "xml" }, false},
		{"negative timeout", func(c *Config) { c.Recommendations.Timeout = -time.Second }, false},
		{"sync without url", func(c *Config) { c.Sync.Enabled = true }, false},
		{"sync bad scheme", func(c *Config) { c.Sync.Enabled = true; c.Sync.URL = "ftp://x" }, false},
		{"sync ok", func(c *Config) { c.Sync.Enabled = true; c.Sync.URL = "https://x.supabase.co" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{
				Logging: LoggingConfig{Level: "info"},
				Export:  ExportConfig{Format: "text"},
			}
			tt.modify(cfg)
			err := cfg.Validate()
			if tt.ok && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
			if !tt.ok && !errors.Is(err, errors.ErrConfigInvalid) {
				t.Errorf("error = %v, want ErrConfigInvalid", err)
			}
		})
	}
}

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0600); err != nil {
		t.Fatal(err)
	}
}

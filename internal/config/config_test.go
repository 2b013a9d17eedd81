package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"gopkg.in/yaml.v3"
)

var envKeys = []string{
	"PORT", "CLIENT_ORIGIN", "JWT_SECRET", "SSH_ADDR", "DICTIONARY_MODE", "DICTIONARY_URL",
	"STATS_DRIVER", "STATS_DB", "REMOTE_STATS_URL", "DAILY_SALT", "WORD_LENGTH", "MAX_ATTEMPTS",
	"REVEAL_DELAY",
}

// isolate clears overrides and points HOME at an empty directory.
func isolate(t *testing.T) {
	t.Helper()
	for _, k := range envKeys {
		t.Setenv(k, "")
	}
	t.Setenv("HOME", t.TempDir())
	t.Chdir(t.TempDir())
}

func TestEmbeddedDefaultMatchesDefault(t *testing.T) {
	var cfg Config
	if err := yaml.Unmarshal(defaultYAML, &cfg); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(Default(), cfg); diff != "" {
		t.Errorf("embedded yaml differs from Default() (-want +got):\n%s", diff)
	}
}

func TestLoadCustomPathAndEnv(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "wordle.yaml")
	body := "game:\n  word_length: 6\n  max_attempts: 7\nreveal_delay: 250ms\ndictionary:\n  mode: cached\n"
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("MAX_ATTEMPTS", "8")
	t.Setenv("PORT", "9090")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.Game.WordLength != 6 || cfg.Game.MaxAttempts != 8 {
		t.Errorf("game = %+v, want length 6 attempts 8", cfg.Game)
	}
	if cfg.RevealDelay != 250*time.Millisecond {
		t.Errorf("RevealDelay = %v", cfg.RevealDelay)
	}
	if cfg.Dictionary.Mode != "cached" || cfg.Server.Port != "9090" {
		t.Errorf("cfg = %+v", cfg)
	}
	// Unset sections keep their defaults.
	if cfg.Daily.Salt != "wordle-daily" {
		t.Errorf("Daily.Salt = %q", cfg.Daily.Salt)
	}
}

func TestLoadSearchOrder(t *testing.T) {
	isolate(t)
	if err := os.MkdirAll("configs", 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile("configs/wordle.yaml", []byte("daily:\n  salt: local\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Daily.Salt != "local" {
		t.Errorf("Daily.Salt = %q, want local", cfg.Daily.Salt)
	}

	home := os.Getenv("HOME")
	if err := os.MkdirAll(filepath.Join(home, ".wordle"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(home, ".wordle", "config.yaml"), []byte("daily:\n  salt: home\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	cfg, _ = Load("")
	if cfg.Daily.Salt != "home" {
		t.Errorf("Daily.Salt = %q, want home", cfg.Daily.Salt)
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	isolate(t)
	t.Setenv("WORD_LENGTH", "1")
	if _, err := Load(""); err == nil {
		t.Error("expected validation error for word length 1")
	}

	t.Setenv("WORD_LENGTH", "five")
	if _, err := Load(""); err == nil {
		t.Error("expected parse error")
	}

	t.Setenv("WORD_LENGTH", "")
	t.Setenv("MAX_ATTEMPTS", "0")
	if _, err := Load(""); err == nil {
		t.Error("expected validation error for zero attempts")
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing custom file")
	}
}

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoad_DefaultsWhenMissing(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Coach.BaseURL != DefaultCoachBaseURL || cfg.Coach.Model != DefaultCoachModel {
		t.Errorf("coach defaults = %+v", cfg.Coach)
	}
	if Exists() {
		t.Error("Exists() true before Save")
	}
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg := DefaultConfig()
	cfg.Coach.APIKey = "sk-or-test"
	cfg.Coach.TimeoutSec = 12
	cfg.Server.Addr = ":9000"
	if err := Save(cfg); err != nil {
		t.Fatalf("Save: %v", err)
	}

	info, err := os.Stat(ConfigPath())
	if err != nil {
		t.Fatal(err)
	}
	if info.Mode().Perm() != 0o600 {
		t.Errorf("config perms = %v, want 0600", info.Mode().Perm())
	}

	got, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got != cfg {
		t.Errorf("round trip mismatch\n got: %+v\nwant: %+v", got, cfg)
	}
}

func TestLoad_ParseError(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	if err := os.MkdirAll(filepath.Join(dir, "spendora"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(ConfigPath(), []byte("[coach\nmodel ="), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestGetCoachAPIKey_Precedence(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Coach.APIKey = "from-config"

	t.Setenv("OPENROUTER_API_KEY", "")
	t.Setenv("OPENAI_API_KEY", "")
	if got := GetCoachAPIKey(cfg); got != "from-config" {
		t.Errorf("got %q, want from-config", got)
	}

	t.Setenv("OPENAI_API_KEY", "from-openai")
	if got := GetCoachAPIKey(cfg); got != "from-openai" {
		t.Errorf("got %q, want from-openai", got)
	}

	t.Setenv("OPENROUTER_API_KEY", "from-openrouter")
	if got := GetCoachAPIKey(cfg); got != "from-openrouter" {
		t.Errorf("got %q, want from-openrouter", got)
	}
}

func TestLoadEnv_DoesNotOverride(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	if err := os.MkdirAll(ConfigDir(), 0o755); err != nil {
		t.Fatal(err)
	}
	env := "OPENROUTER_API_KEY=from-dotenv\nLOG_LEVEL=debug\n"
	if err := os.WriteFile(filepath.Join(ConfigDir(), ".env"), []byte(env), 0o600); err != nil {
		t.Fatal(err)
	}

	t.Setenv("OPENROUTER_API_KEY", "already-set")
	t.Setenv("LOG_LEVEL", "")
	os.Unsetenv("LOG_LEVEL")

	LoadEnv()

	if got := os.Getenv("OPENROUTER_API_KEY"); got != "already-set" {
		t.Errorf("OPENROUTER_API_KEY = %q, want already-set", got)
	}
	if got := os.Getenv("LOG_LEVEL"); got != "debug" {
		t.Errorf("LOG_LEVEL = %q, want debug", got)
	}
	os.Unsetenv("LOG_LEVEL")
}

func TestDataDirAndTimeout(t *testing.T) {
	cfg := DefaultConfig()
	cfg.General.DataDir = "/tmp/spendora-data"
	if got := DBPath(cfg); got != "/tmp/spendora-data/spendora.db" {
		t.Errorf("DBPath = %q", got)
	}
	if got := CoachTimeout(cfg); got != 30*time.Second {
		t.Errorf("CoachTimeout = %v", got)
	}
	cfg.Coach.TimeoutSec = 0
	if got := CoachTimeout(cfg); got != 30*time.Second {
		t.Errorf("CoachTimeout(0) = %v", got)
	}
}

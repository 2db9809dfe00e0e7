package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// Default coach endpoint settings.
const (
	DefaultCoachBaseURL = "https://openrouter.ai/api/v1"
	DefaultCoachModel   = "openai/gpt-4o-mini"
	DefaultCoachReferer = "http://localhost:3000"
	DefaultCoachTitle   = "Spendora - The Explorer"
	DefaultServerAddr   = "127.0.0.1:8787"
)

// Config holds all spendora configuration.
type Config struct {
	General GeneralConfig `toml:"general"`
	Coach   CoachConfig   `toml:"coach"`
	Server  ServerConfig  `toml:"server"`
	Log     LogConfig     `toml:"log"`
}

// GeneralConfig holds general preferences.
type GeneralConfig struct {
	DataDir string `toml:"data_dir,omitempty"`
	Theme   string `toml:"theme"`
}

// CoachConfig holds language-model endpoint settings.
type CoachConfig struct {
	APIKey     string `toml:"api_key,omitempty"`
	BaseURL    string `toml:"base_url,omitempty"`
	Model      string `toml:"model,omitempty"`
	Referer    string `toml:"referer,omitempty"`
	Title      string `toml:"title,omitempty"`
	TimeoutSec int    `toml:"timeout_sec"`
}

// ServerConfig holds the forwarding server settings.
type ServerConfig struct {
	Addr string `toml:"addr"`
}

// LogConfig holds diagnostic logging settings.
type LogConfig struct {
	Level string `toml:"level"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		General: GeneralConfig{
			Theme: "flexoki-dark",
		},
		Coach: CoachConfig{
			BaseURL:    DefaultCoachBaseURL,
			Model:      DefaultCoachModel,
			Referer:    DefaultCoachReferer,
			Title:      DefaultCoachTitle,
			TimeoutSec: 30,
		},
		Server: ServerConfig{
			Addr: DefaultServerAddr,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// ConfigDir returns the XDG-compliant config directory.
func ConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "spendora")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "spendora")
}

// ConfigPath returns the full path to the config file.
func ConfigPath() string {
	return filepath.Join(ConfigDir(), "config.toml")
}

// DataDir returns where the ledger database and log file live.
func DataDir(cfg Config) string {
	if cfg.General.DataDir != "" {
		return cfg.General.DataDir
	}
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, "spendora")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".local", "share", "spendora")
}

// DBPath returns the ledger database path.
func DBPath(cfg Config) string {
	return filepath.Join(DataDir(cfg), "spendora.db")
}

// LogPath returns the diagnostic log file path.
func LogPath(cfg Config) string {
	return filepath.Join(DataDir(cfg), "spendora.log")
}

// LoadEnv loads .env files from the working directory and the config
// directory. Variables already set in the environment are kept.
func LoadEnv() {
	for _, path := range []string{".env", filepath.Join(ConfigDir(), ".env")} {
		if _, err := os.Stat(path); err == nil {
			_ = godotenv.Load(path)
		}
	}
}

// Load reads the config file, returning defaults if it doesn't exist.
func Load() (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(ConfigPath())
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config: %w", err)
	}

	return cfg, nil
}

// Save writes the config to disk.
func Save(cfg Config) error {
	dir := ConfigDir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	f, err := os.OpenFile(ConfigPath(), os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("creating config file: %w", err)
	}
	defer f.Close()

	enc := toml.NewEncoder(f)
	return enc.Encode(cfg)
}

// GetCoachAPIKey returns the coach API key from OPENROUTER_API_KEY,
// OPENAI_API_KEY or the config file, in that order.
func GetCoachAPIKey(cfg Config) string {
	for _, env := range []string{"OPENROUTER_API_KEY", "OPENAI_API_KEY"} {
		if key := os.Getenv(env); key != "" {
			return key
		}
	}
	return cfg.Coach.APIKey
}

// GetCoachReferer returns SPENDORA_APP_URL or NEXT_PUBLIC_APP_URL when set,
// otherwise the configured referer.
func GetCoachReferer(cfg Config) string {
	for _, env := range []string{"SPENDORA_APP_URL", "NEXT_PUBLIC_APP_URL"} {
		if v := os.Getenv(env); v != "" {
			return v
		}
	}
	if cfg.Coach.Referer != "" {
		return cfg.Coach.Referer
	}
	return DefaultCoachReferer
}

// GetLogLevel returns LOG_LEVEL when set, otherwise the configured level.
func GetLogLevel(cfg Config) string {
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		return v
	}
	if cfg.Log.Level != "" {
		return cfg.Log.Level
	}
	return "info"
}

// CoachTimeout returns the per-call timeout for coach requests.
func CoachTimeout(cfg Config) time.Duration {
	if cfg.Coach.TimeoutSec <= 0 {
		return 30 * time.Second
	}
	return time.Duration(cfg.Coach.TimeoutSec) * time.Second
}

// Exists returns true if a config file exists on disk.
func Exists() bool {
	_, err := os.Stat(ConfigPath())
	return err == nil
}

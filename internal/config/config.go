// Package config loads and saves the hidralife TOML configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

// Config holds all hidralife configuration. User hydration settings
// (goal, reminder interval, notifications) live in the state store, not here.
type Config struct {
	General    GeneralConfig    `toml:"general"`
	Advice     AdviceConfig     `toml:"advice"`
	Reminder   ReminderConfig   `toml:"reminder"`
	Daemon     DaemonConfig     `toml:"daemon"`
	Appearance AppearanceConfig `toml:"appearance"`
}

// GeneralConfig holds general preferences.
type GeneralConfig struct {
	DataDir     string `toml:"data_dir,omitempty"`
	DefaultDays int    `toml:"default_days"`
}

// AdviceConfig selects and configures the text generation provider.
type AdviceConfig struct {
	Provider string   `toml:"provider"` // gemini, ollama or static
	Model    string   `toml:"model,omitempty"`
	APIKey   string   `toml:"api_key,omitempty"`
	Endpoint string   `toml:"endpoint,omitempty"`
	Language string   `toml:"language"`
	Timeout  Duration `toml:"timeout"`
}

// ReminderConfig controls the reminder loop.
type ReminderConfig struct {
	PollInterval Duration `toml:"poll_interval"`
	Desktop      bool     `toml:"desktop"`
}

// DaemonConfig holds daemon listener settings.
type DaemonConfig struct {
	Addr         string `toml:"addr"`
	EventsBuffer int    `toml:"events_buffer"`
}

// AppearanceConfig holds theme settings.
type AppearanceConfig struct {
	Theme string `toml:"theme"`
}

// Duration wraps time.Duration for TOML text encoding ("20s", "1m").
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// Provider names.
const (
	ProviderGemini = "gemini"
	ProviderOllama = "ollama"
	ProviderStatic = "static"
)

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		General: GeneralConfig{
			DefaultDays: 7,
		},
		Advice: AdviceConfig{
			Provider: ProviderGemini,
			Model:    "gemini-2.5-flash",
			Endpoint: "http://localhost:11434",
			Language: "English",
			Timeout:  Duration{20 * time.Second},
		},
		Reminder: ReminderConfig{
			PollInterval: Duration{time.Minute},
			Desktop:      true,
		},
		Daemon: DaemonConfig{
			Addr:         "127.0.0.1:8788",
			EventsBuffer: 200,
		},
		Appearance: AppearanceConfig{
			Theme: "flexoki-dark",
		},
	}
}

// Dir returns the XDG-compliant config directory.
func Dir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "hidralife")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "hidralife")
}

// Path returns the full path to the config file.
func Path() string {
	return filepath.Join(Dir(), "config.toml")
}

// DefaultDataDir returns the XDG data directory for the state store.
func DefaultDataDir() string {
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, "hidralife")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".local", "share", "hidralife")
}

// Load reads the config file, returning defaults if it doesn't exist.
func Load() (Config, error) {
	return LoadFile(Path())
}

// LoadFile reads config from path, returning defaults if it doesn't exist.
func LoadFile(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path) //nolint:gosec // config path is chosen by the local user
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
	return SaveFile(Path(), cfg)
}

// SaveFile writes the config to path.
func SaveFile(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600) //nolint:gosec // see LoadFile
	if err != nil {
		return fmt.Errorf("creating config file: %w", err)
	}
	defer f.Close()

	enc := toml.NewEncoder(f)
	return enc.Encode(cfg)
}

// Exists returns true if a config file exists on disk.
func Exists() bool {
	_, err := os.Stat(Path())
	return err == nil
}

// DataDir resolves the state directory: env var, then config, then XDG default.
func DataDir(cfg Config) string {
	if dir := os.Getenv("HIDRALIFE_DATA_DIR"); dir != "" {
		return dir
	}
	if cfg.General.DataDir != "" {
		return cfg.General.DataDir
	}
	return DefaultDataDir()
}

// StoreFile is the state database file name. sqlite adds -wal and -shm
// siblings with the same prefix.
const StoreFile = "hidralife.db"

// StorePath returns the state database path inside dataDir.
func StorePath(dataDir string) string {
	return filepath.Join(dataDir, StoreFile)
}

// IsStoreFile reports whether path names the state database or one of its
// sqlite siblings.
func IsStoreFile(path string) bool {
	return strings.HasPrefix(filepath.Base(path), StoreFile)
}

// GetAPIKey returns the advice API key from env vars or config, in that order.
func GetAPIKey(cfg Config) string {
	for _, name := range []string{"GEMINI_API_KEY", "GOOGLE_API_KEY", "API_KEY"} {
		if key := os.Getenv(name); key != "" {
			return key
		}
	}
	return cfg.Advice.APIKey
}

// GetProvider returns the advice provider from env var or config.
func GetProvider(cfg Config) string {
	if p := os.Getenv("HIDRALIFE_ADVICE_PROVIDER"); p != "" {
		return p
	}
	return cfg.Advice.Provider
}

package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/caarlos0/env/v11"
)

// AppName names the configuration and data directories.
const AppName = "bgg-shelf"

// API modes.
const (
	ModeDirect = "direct"
	ModeProxy  = "proxy"
)

// Config represents the application configuration.
type Config struct {
	API     APIConfig     `toml:"api"`
	Storage StorageConfig `toml:"storage"`
	Browse  BrowseConfig  `toml:"browse"`
	Display DisplayConfig `toml:"display"`
	Log     LogConfig     `toml:"log"`
}

// APIConfig contains API-related configuration.
type APIConfig struct {
	Token             string   `toml:"token" env:"BGG_TOKEN"`
	Mode              string   `toml:"mode" env:"BGG_SHELF_API_MODE"` // "direct", "proxy"
	Proxies           []string `toml:"proxies" env:"BGG_SHELF_API_PROXIES" envSeparator:","`
	ProxyForwardToken bool     `toml:"proxy_forward_token" env:"BGG_SHELF_API_PROXY_FORWARD_TOKEN"` // send the token to proxy hosts
	TimeoutSeconds    int      `toml:"timeout_seconds" env:"BGG_SHELF_API_TIMEOUT_SECONDS"`
	RequestsPerSecond float64  `toml:"requests_per_second" env:"BGG_SHELF_API_REQUESTS_PER_SECOND"` // 0 = unpaced
}

// StorageConfig selects where the watchlist is persisted.
type StorageConfig struct {
	Backend string `toml:"backend" env:"BGG_SHELF_STORAGE_BACKEND"` // "file", "sqlite", "memory"
	Path    string `toml:"path" env:"BGG_SHELF_STORAGE_PATH"`       // empty = under the config directory
}

// BrowseConfig contains defaults for the catalog browser.
type BrowseConfig struct {
	DefaultSort string `toml:"default_sort" env:"BGG_SHELF_DEFAULT_SORT"`
	Locale      string `toml:"locale" env:"BGG_SHELF_LOCALE"`
}

// DisplayConfig contains display-related configuration.
type DisplayConfig struct {
	ListWidth   int `toml:"list_width"`
	DetailWidth int `toml:"detail_width"`
}

// LogConfig controls the log file.
type LogConfig struct {
	Level string `toml:"level" env:"BGG_SHELF_LOG_LEVEL"` // "debug", "info", "warn", "error"
	File  string `toml:"file" env:"BGG_SHELF_LOG_FILE"`   // empty = under the config directory
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		API: APIConfig{
			Token:             "",
			Mode:              ModeDirect,
			TimeoutSeconds:    30,
			RequestsPerSecond: 2,
		},
		Storage: StorageConfig{
			Backend: "file",
		},
		Browse: BrowseConfig{
			DefaultSort: "rank",
			Locale:      "en",
		},
		Display: DisplayConfig{
			ListWidth:   90,
			DetailWidth: 100,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Dir returns the configuration directory.
func Dir() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, AppName), nil
}

// ConfigPath returns the path to the configuration file.
func ConfigPath() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// Load loads the configuration from the default path and applies the
// environment overlay.
func Load() (*Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return nil, err
	}
	cfg, err := LoadFromPath(path)
	if err != nil {
		return nil, err
	}
	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}
	return cfg, cfg.Validate()
}

// LoadFromPath loads the configuration from the specified path.
func LoadFromPath(path string) (*Config, error) {
	cfg := DefaultConfig()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		// Unreadable TOML: keep a backup and fall back to defaults.
		raw, readErr := os.ReadFile(path)
		if readErr == nil {
			_ = os.Rename(path, path+".bak")
			// Best effort: keep the token from the broken file.
			cfg = DefaultConfig()
			if token := extractToken(raw); token != "" {
				cfg.API.Token = token
			}
		}
		return cfg, nil
	}

	return cfg, nil
}

// extractToken attempts to extract the API token from raw config bytes
// using regex when TOML parsing has failed.
func extractToken(raw []byte) string {
	re := regexp.MustCompile(`(?m)^\s*token\s*=\s*"([^"]*)"`)
	if m := re.FindSubmatch(raw); len(m) > 1 {
		return string(m[1])
	}
	return ""
}

// ApplyEnv overrides fields from environment variables. Unset variables
// leave the current value alone.
func (c *Config) ApplyEnv() error {
	if err := env.Parse(c); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Validate checks enumerated settings.
func (c *Config) Validate() error {
	switch strings.ToLower(c.API.Mode) {
	case "", ModeDirect, ModeProxy:
	default:
		return fmt.Errorf("invalid api mode %q (want %q or %q)", c.API.Mode, ModeDirect, ModeProxy)
	}
	switch strings.ToLower(c.Storage.Backend) {
	case "", "file", "sqlite", "memory":
	default:
		return fmt.Errorf("invalid storage backend %q", c.Storage.Backend)
	}
	if c.API.TimeoutSeconds < 0 {
		return fmt.Errorf("api timeout must not be negative")
	}
	if c.API.RequestsPerSecond < 0 {
		return fmt.Errorf("api requests_per_second must not be negative")
	}
	return nil
}

// Save saves the configuration to the default path.
func (c *Config) Save() error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	return c.SaveToPath(path)
}

// SaveToPath saves the configuration to the specified path.
func (c *Config) SaveToPath(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	encoder := toml.NewEncoder(f)
	return encoder.Encode(c)
}

// HasToken returns true if a token is configured.
func (c *Config) HasToken() bool {
	return strings.TrimSpace(c.API.Token) != ""
}

// UseProxy reports whether requests go through the proxy chain.
func (c *Config) UseProxy() bool {
	return strings.EqualFold(c.API.Mode, ModeProxy)
}

// Timeout returns the HTTP request timeout.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.API.TimeoutSeconds) * time.Second
}

// StoragePath resolves the storage location, defaulting to a directory (file
// backend) or database file (sqlite backend) under the config directory.
func (c *Config) StoragePath() (string, error) {
	if c.Storage.Path != "" {
		return c.Storage.Path, nil
	}
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	if strings.EqualFold(c.Storage.Backend, "sqlite") {
		return filepath.Join(dir, "shelf.db"), nil
	}
	return filepath.Join(dir, "data"), nil
}

// LogPath resolves the log file location.
func (c *Config) LogPath() (string, error) {
	if c.Log.File != "" {
		return c.Log.File, nil
	}
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, AppName+".log"), nil
}

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.API.Token != "" {
		t.Error("expected empty token")
	}

	if cfg.API.Mode != ModeDirect {
		t.Errorf("expected Mode 'direct', got '%s'", cfg.API.Mode)
	}

	if cfg.API.ProxyForwardToken {
		t.Error("expected the token to stay off proxy hosts by default")
	}

	if cfg.Timeout() != 30*time.Second {
		t.Errorf("expected 30s timeout, got %v", cfg.Timeout())
	}

	if cfg.Storage.Backend != "file" {
		t.Errorf("expected Backend 'file', got '%s'", cfg.Storage.Backend)
	}

	if cfg.Browse.DefaultSort != "rank" {
		t.Errorf("expected DefaultSort 'rank', got '%s'", cfg.Browse.DefaultSort)
	}

	if cfg.Browse.Locale != "en" {
		t.Errorf("expected Locale 'en', got '%s'", cfg.Browse.Locale)
	}

	if cfg.Log.Level != "info" {
		t.Errorf("expected Level 'info', got '%s'", cfg.Log.Level)
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestLoadFromPath_NonExistent(t *testing.T) {
	cfg, err := LoadFromPath("/nonexistent/path/config.toml")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Should return default config
	if cfg.Display.ListWidth != 90 {
		t.Errorf("expected default ListWidth 90, got %d", cfg.Display.ListWidth)
	}
}

func TestSaveAndLoad(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "config.toml")

	cfg := DefaultConfig()
	cfg.API.Token = "test-token-123"
	cfg.API.Mode = ModeProxy
	cfg.API.Proxies = []string{"https://proxy.example/?u="}
	cfg.Storage.Backend = "sqlite"
	cfg.Browse.DefaultSort = "rating"
	if err := cfg.SaveToPath(path); err != nil {
		t.Fatalf("failed to save config: %v", err)
	}

	// Verify file was created
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Fatal("config file was not created")
	}

	// Load and verify
	loaded, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if loaded.API.Token != "test-token-123" {
		t.Errorf("expected token 'test-token-123', got '%s'", loaded.API.Token)
	}

	if !loaded.UseProxy() {
		t.Error("expected proxy mode")
	}

	if len(loaded.API.Proxies) != 1 || loaded.API.Proxies[0] != "https://proxy.example/?u=" {
		t.Errorf("unexpected proxies %v", loaded.API.Proxies)
	}

	if loaded.Storage.Backend != "sqlite" {
		t.Errorf("expected Backend 'sqlite', got '%s'", loaded.Storage.Backend)
	}

	if loaded.Browse.DefaultSort != "rating" {
		t.Errorf("expected DefaultSort 'rating', got '%s'", loaded.Browse.DefaultSort)
	}
}

func TestPartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[api]\ntoken = \"abc\"\n"), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	cfg, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.API.Token != "abc" {
		t.Errorf("expected token 'abc', got '%s'", cfg.API.Token)
	}
	if cfg.API.TimeoutSeconds != 30 || cfg.Browse.Locale != "en" {
		t.Errorf("expected defaults to survive, got %+v", cfg)
	}
}

func TestHasToken(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.HasToken() {
		t.Error("expected HasToken to be false for empty token")
	}

	cfg.API.Token = "   "
	if cfg.HasToken() {
		t.Error("expected HasToken to be false for blank token")
	}

	cfg.API.Token = "some-token"
	if !cfg.HasToken() {
		t.Error("expected HasToken to be true for non-empty token")
	}
}

func TestApplyEnv(t *testing.T) {
	t.Setenv("BGG_TOKEN", "env-token")
	t.Setenv("BGG_SHELF_API_MODE", "proxy")
	t.Setenv("BGG_SHELF_API_PROXIES", "https://a/?url=,https://b/?url=")
	t.Setenv("BGG_SHELF_API_PROXY_FORWARD_TOKEN", "true")
	t.Setenv("BGG_SHELF_STORAGE_BACKEND", "memory")
	t.Setenv("BGG_SHELF_LOG_LEVEL", "debug")

	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[api]\ntoken = \"file-token\"\n[browse]\nlocale = \"de\"\n"), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	cfg, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := cfg.ApplyEnv(); err != nil {
		t.Fatalf("ApplyEnv() error = %v", err)
	}

	if cfg.API.Token != "env-token" {
		t.Errorf("expected env token to win, got '%s'", cfg.API.Token)
	}
	if !cfg.UseProxy() {
		t.Error("expected proxy mode from env")
	}
	if len(cfg.API.Proxies) != 2 {
		t.Errorf("expected 2 proxies, got %v", cfg.API.Proxies)
	}
	if !cfg.API.ProxyForwardToken {
		t.Error("expected proxy token forwarding from env")
	}
	if cfg.Storage.Backend != "memory" {
		t.Errorf("expected Backend 'memory', got '%s'", cfg.Storage.Backend)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("expected Level 'debug', got '%s'", cfg.Log.Level)
	}
	// Unset variables leave file values alone.
	if cfg.Browse.Locale != "de" {
		t.Errorf("expected Locale 'de' from file, got '%s'", cfg.Browse.Locale)
	}
}

func TestApplyEnv_InvalidNumber(t *testing.T) {
	t.Setenv("BGG_SHELF_API_TIMEOUT_SECONDS", "soon")

	cfg := DefaultConfig()
	if err := cfg.ApplyEnv(); err == nil {
		t.Error("expected error for non-numeric timeout")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{name: "default", mutate: func(c *Config) {}},
		{name: "proxy mode", mutate: func(c *Config) { c.API.Mode = "PROXY" }},
		{name: "bad mode", mutate: func(c *Config) { c.API.Mode = "carrier-pigeon" }, wantErr: true},
		{name: "bad backend", mutate: func(c *Config) { c.Storage.Backend = "redis" }, wantErr: true},
		{name: "negative timeout", mutate: func(c *Config) { c.API.TimeoutSeconds = -1 }, wantErr: true},
		{name: "negative rate", mutate: func(c *Config) { c.API.RequestsPerSecond = -0.5 }, wantErr: true},
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

func TestStoragePath(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Storage.Path = "/tmp/shelf"
	got, err := cfg.StoragePath()
	if err != nil || got != "/tmp/shelf" {
		t.Errorf("StoragePath() = %q, %v", got, err)
	}

	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	cfg.Storage.Path = ""
	cfg.Storage.Backend = "sqlite"
	got, err = cfg.StoragePath()
	if err != nil {
		t.Fatalf("StoragePath() error = %v", err)
	}
	if filepath.Base(got) != "shelf.db" {
		t.Errorf("expected sqlite default file, got %q", got)
	}
}

func TestLoadFromPath_BrokenConfig(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "config.toml")

	brokenTOML := []byte("[api\ntoken = broken\n")
	if err := os.WriteFile(path, brokenTOML, 0644); err != nil {
		t.Fatalf("failed to write broken config: %v", err)
	}

	cfg, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("expected no error for broken config, got: %v", err)
	}

	// Defaults are returned
	if cfg.Storage.Backend != "file" {
		t.Errorf("expected default Backend 'file', got '%s'", cfg.Storage.Backend)
	}
	if cfg.API.Token != "" {
		t.Errorf("expected no token, got '%s'", cfg.API.Token)
	}

	// A .bak file is created
	bakPath := path + ".bak"
	if _, err := os.Stat(bakPath); os.IsNotExist(err) {
		t.Error("expected .bak file to be created")
	}

	// The original file has been renamed
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("expected original config file to be renamed")
	}
}

func TestLoadFromPath_BrokenConfigWithToken(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "config.toml")

	brokenTOML := []byte("[api]\ntoken = \"my-secret-token\"\n\n[storage\ninvalid line\n")
	if err := os.WriteFile(path, brokenTOML, 0644); err != nil {
		t.Fatalf("failed to write broken config: %v", err)
	}

	cfg, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("expected no error for broken config, got: %v", err)
	}

	// The token is recovered
	if cfg.API.Token != "my-secret-token" {
		t.Errorf("expected token 'my-secret-token', got '%s'", cfg.API.Token)
	}

	// Everything else is default
	if cfg.Storage.Backend != "file" {
		t.Errorf("expected default Backend 'file', got '%s'", cfg.Storage.Backend)
	}
}

func TestExtractToken(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		expected string
	}{
		{
			name:     "valid token line",
			raw:      "[api]\ntoken = \"abc123\"\n",
			expected: "abc123",
		},
		{
			name:     "token with spaces",
			raw:      "  token = \"spaced-token\"  \n",
			expected: "spaced-token",
		},
		{
			name:     "no token",
			raw:      "[api]\nother = \"value\"\n",
			expected: "",
		},
		{
			name:     "completely broken",
			raw:      "!!!garbage data!!!",
			expected: "",
		},
		{
			name:     "empty input",
			raw:      "",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := extractToken([]byte(tt.raw))
			if got != tt.expected {
				t.Errorf("extractToken() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestSaveCreatesDirectory(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "nested", "dir", "config.toml")

	cfg := DefaultConfig()
	if err := cfg.SaveToPath(path); err != nil {
		t.Fatalf("failed to save config: %v", err)
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Fatal("config file was not created in nested directory")
	}
}

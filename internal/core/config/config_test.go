package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

// envBackup stores environment variable values for restoration
type envBackup map[string]string

// backupAndClearEnvVars backs up and clears the specified environment variables
func backupAndClearEnvVars(keys []string) envBackup {
	backup := make(envBackup)
	for _, key := range keys {
		backup[key] = os.Getenv(key)
		os.Unsetenv(key)
	}
	return backup
}

// restore restores the backed up environment variables
func (b envBackup) restore() {
	for key, value := range b {
		if value == "" {
			os.Unsetenv(key)
		} else {
			os.Setenv(key, value)
		}
	}
}

// overrideEnvVars is the list of environment variables loadEnv reads
var overrideEnvVars = []string{
	"YTDL_BIN_PATH", "USER_AGENT", "VGRAB_REDIS_ADDR", "VGRAB_LOG_LEVEL", "PORT", "VGRAB_PORT", EnvConfigDir,
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "Empty path",
			input:    "",
			expected: "",
		},
		{
			name:     "Absolute path",
			input:    "/usr/local/bin/yt-dlp",
			expected: "/usr/local/bin/yt-dlp",
		},
		{
			name:     "Bare binary name",
			input:    "yt-dlp",
			expected: "yt-dlp",
		},
		{
			name:     "Home directory with forward slash",
			input:    "~/bin/yt-dlp",
			expected: filepath.Join(home, "bin", "yt-dlp"),
		},
		{
			name:     "Home directory with backslash (simulated)",
			input:    `~\bin`,
			expected: filepath.Join(home, "bin"),
		},
		{
			name:     "Invalid tilde use (no separator)",
			input:    "~user/yt-dlp",
			expected: "~user/yt-dlp",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := expandPath(tt.input)
			if got != tt.expected {
				t.Errorf("expandPath(%q) = %q; want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestLoadEnv(t *testing.T) {
	backup := backupAndClearEnvVars(overrideEnvVars)
	defer backup.restore()

	os.Setenv("YTDL_BIN_PATH", "/opt/yt-dlp")
	os.Setenv("USER_AGENT", "agent/1.0")
	os.Setenv("VGRAB_REDIS_ADDR", "redis:6379")
	os.Setenv("VGRAB_PORT", "9001")
	os.Setenv("PORT", "9000")

	cfg := DefaultConfig()
	loadEnv(cfg)

	if cfg.Extractor.BinaryPath != "/opt/yt-dlp" {
		t.Errorf("binary path = %q", cfg.Extractor.BinaryPath)
	}
	if cfg.Extractor.UserAgent != "agent/1.0" {
		t.Errorf("user agent = %q", cfg.Extractor.UserAgent)
	}
	if cfg.Waitlist.RedisAddr != "redis:6379" {
		t.Errorf("redis addr = %q", cfg.Waitlist.RedisAddr)
	}
	if cfg.Server.Port != 9000 {
		t.Errorf("PORT should take precedence, got %d", cfg.Server.Port)
	}
}

func TestLoadEnvInvalidPort(t *testing.T) {
	backup := backupAndClearEnvVars(overrideEnvVars)
	defer backup.restore()

	os.Setenv("PORT", "not-a-port")

	cfg := DefaultConfig()
	loadEnv(cfg)

	if cfg.Server.Port != 8080 {
		t.Errorf("invalid PORT should be ignored, got %d", cfg.Server.Port)
	}
}

func TestLoadEnvNil(t *testing.T) {
	// must not panic
	loadEnv(nil)
}

func TestSaveAndLoad(t *testing.T) {
	backup := backupAndClearEnvVars(overrideEnvVars)
	defer backup.restore()

	dir := t.TempDir()
	os.Setenv(EnvConfigDir, dir)

	if Exists() {
		t.Fatal("config should not exist yet")
	}
	if err := Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}
	if err := Init(); err == nil {
		t.Error("second Init should fail")
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Port != 8080 || cfg.Extractor.BinaryPath != "yt-dlp" {
		t.Errorf("unexpected defaults after round trip: %+v", cfg)
	}
	if got := cfg.Extractor.Options().RequestTimeout; got != 60*time.Second {
		t.Errorf("timeout = %v", got)
	}
}

func TestLoadPartialFileKeepsDefaults(t *testing.T) {
	backup := backupAndClearEnvVars(overrideEnvVars)
	defer backup.restore()

	dir := t.TempDir()
	os.Setenv(EnvConfigDir, dir)

	content := "language: zh\nserver:\n  port: 9999\nextractor:\n  timeout_seconds: 5\n"
	if err := os.WriteFile(filepath.Join(dir, ConfigFileName), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Language != "zh" || cfg.Server.Port != 9999 {
		t.Errorf("file values not applied: %+v", cfg)
	}
	if cfg.Server.MaxConcurrent != 10 {
		t.Errorf("max_concurrent should keep default, got %d", cfg.Server.MaxConcurrent)
	}
	if cfg.Extractor.UserAgent != "Mozilla/5.0" {
		t.Errorf("user agent should keep default, got %q", cfg.Extractor.UserAgent)
	}
	if got := cfg.Extractor.Options().RequestTimeout; got != 5*time.Second {
		t.Errorf("timeout = %v", got)
	}
}

func TestLoadOrDefaultWithoutFile(t *testing.T) {
	backup := backupAndClearEnvVars(overrideEnvVars)
	defer backup.restore()

	os.Setenv(EnvConfigDir, t.TempDir())
	os.Setenv("USER_AGENT", "from-env")

	cfg := LoadOrDefault()
	if cfg.Extractor.UserAgent != "from-env" {
		t.Errorf("env override should apply without a file, got %q", cfg.Extractor.UserAgent)
	}
}

package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"time"

	"github.com/guiyumin/vgrab/internal/core/extractor"
	"gopkg.in/yaml.v3"
)

const (
	ConfigFileName = "config.yml"
	AppDirName     = "vgrab"

	// EnvConfigDir overrides the config directory
	EnvConfigDir = "VGRAB_CONFIG_DIR"
)

// ConfigDir returns the standard config directory for vgrab.
// Windows: %APPDATA%\vgrab\
// macOS/Linux: ~/.config/vgrab/
func ConfigDir() (string, error) {
	if dir := os.Getenv(EnvConfigDir); dir != "" {
		return dir, nil
	}

	if runtime.GOOS == "windows" {
		appData := os.Getenv("APPDATA")
		if appData != "" {
			return filepath.Join(appData, AppDirName), nil
		}
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", AppDirName), nil
}

// ConfigPath returns the path to the config file.
// e.g., ~/.config/vgrab/config.yml
func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, ConfigFileName), nil
}

type Config struct {
	// Language for user-facing messages ("en", "zh")
	Language string `yaml:"language,omitempty"`

	// LogLevel is a logrus level name (panic, fatal, error, warn, info, debug, trace)
	LogLevel string `yaml:"log_level,omitempty"`

	// LogJSON switches log output to JSON
	LogJSON bool `yaml:"log_json,omitempty"`

	// Extractor configures the yt-dlp invocation
	Extractor ExtractorConfig `yaml:"extractor,omitempty"`

	// Server configuration for `vgrab serve`
	Server ServerConfig `yaml:"server,omitempty"`

	// Waitlist storage
	Waitlist WaitlistConfig `yaml:"waitlist,omitempty"`
}

// ExtractorConfig holds yt-dlp settings
type ExtractorConfig struct {
	// BinaryPath is the yt-dlp executable (default: yt-dlp on $PATH)
	BinaryPath string `yaml:"binary_path,omitempty"`

	// TimeoutSeconds bounds one extraction (default: 60)
	TimeoutSeconds int `yaml:"timeout_seconds,omitempty"`

	// UserAgent sent to the site
	UserAgent string `yaml:"user_agent,omitempty"`

	// Headers are extra request headers (e.g., referer)
	Headers map[string]string `yaml:"headers,omitempty"`
}

// Options converts the config into extractor options
func (e ExtractorConfig) Options() extractor.Options {
	return extractor.Options{
		BinaryPath:     e.BinaryPath,
		RequestTimeout: time.Duration(e.TimeoutSeconds) * time.Second,
		UserAgent:      e.UserAgent,
		ExtraHeaders:   e.Headers,
	}
}

// ServerConfig holds HTTP server settings for `vgrab serve`
type ServerConfig struct {
	// Port is the HTTP listen port (default: 8080)
	Port int `yaml:"port,omitempty"`

	// MaxConcurrent is the max number of concurrent extractions (default: 10)
	MaxConcurrent int `yaml:"max_concurrent,omitempty"`

	// APIKey for authentication (optional, if set /api/info requires X-API-Key header)
	APIKey string `yaml:"api_key,omitempty"`

	// RateLimit is the allowed requests per second across the server (0 = unlimited)
	RateLimit float64 `yaml:"rate_limit,omitempty"`

	// RateBurst is the token bucket size (default: 20)
	RateBurst int `yaml:"rate_burst,omitempty"`
}

// WaitlistConfig holds the waitlist store settings.
// An empty RedisAddr keeps entries in memory.
type WaitlistConfig struct {
	RedisAddr     string `yaml:"redis_addr,omitempty"`
	RedisPassword string `yaml:"redis_password,omitempty"`
	RedisDB       int    `yaml:"redis_db,omitempty"`
	KeyPrefix     string `yaml:"key_prefix,omitempty"`
}

// DefaultConfig returns a config with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Language: "en",
		LogLevel: "info",
		Extractor: ExtractorConfig{
			BinaryPath:     extractor.DefaultBinaryPath,
			TimeoutSeconds: int(extractor.DefaultRequestTimeout / time.Second),
			UserAgent:      extractor.DefaultUserAgent,
			Headers:        map[string]string{"referer": "youtube.com"},
		},
		Server: ServerConfig{
			Port:          8080,
			MaxConcurrent: 10,
			RateBurst:     20,
		},
		Waitlist: WaitlistConfig{
			KeyPrefix: "vgrab:waitlist",
		},
	}
}

// Exists checks if config file exists
func Exists() bool {
	path, err := ConfigPath()
	if err != nil {
		return false
	}
	_, err = os.Stat(path)
	return err == nil
}

// Load reads the config from ~/.config/vgrab/config.yml.
// Fields missing from the file keep their defaults; environment overrides win.
func Load() (*Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config file not found: %w", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	cfg.Extractor.BinaryPath = expandPath(cfg.Extractor.BinaryPath)
	loadEnv(cfg)

	return cfg, nil
}

// envOverrides lists the environment variables read on top of the config file
var envOverrides = []struct {
	keys  []string
	apply func(cfg *Config, value string)
}{
	{[]string{"YTDL_BIN_PATH"}, func(cfg *Config, v string) { cfg.Extractor.BinaryPath = expandPath(v) }},
	{[]string{"USER_AGENT"}, func(cfg *Config, v string) { cfg.Extractor.UserAgent = v }},
	{[]string{"VGRAB_REDIS_ADDR"}, func(cfg *Config, v string) { cfg.Waitlist.RedisAddr = v }},
	{[]string{"VGRAB_LOG_LEVEL"}, func(cfg *Config, v string) { cfg.LogLevel = v }},
	{[]string{"PORT", "VGRAB_PORT"}, func(cfg *Config, v string) {
		if port, err := strconv.Atoi(v); err == nil && port > 0 {
			cfg.Server.Port = port
		}
	}},
}

// loadEnv applies environment overrides. For entries with several keys the
// first non-empty one wins.
func loadEnv(cfg *Config) {
	if cfg == nil {
		return
	}
	for _, o := range envOverrides {
		for _, key := range o.keys {
			if v := strings.TrimSpace(os.Getenv(key)); v != "" {
				o.apply(cfg, v)
				break
			}
		}
	}
}

// expandPath expands the tilde (~) in the path to the user's home directory.
// It handles both forward and backward slashes to ensure cross-platform compatibility
// for configuration files.
func expandPath(path string) string {
	if path == "" {
		return ""
	}

	if strings.HasPrefix(path, "~") {
		// Only expand if it's explicitly "~", "~/", or "~\"
		if len(path) == 1 || path[1] == '/' || path[1] == '\\' {
			home, err := os.UserHomeDir()
			if err == nil {
				subPath := path[1:]
				if len(subPath) > 0 && (subPath[0] == '/' || subPath[0] == '\\') {
					subPath = subPath[1:]
				}
				return filepath.Join(home, subPath)
			}
		}
	}

	return path
}

// Save writes the config to ~/.config/vgrab/config.yml
func Save(cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to serialize config: %w", err)
	}

	configPath, err := ConfigPath()
	if err != nil {
		return fmt.Errorf("failed to get config path: %w", err)
	}

	// Ensure config directory exists
	configDir := filepath.Dir(configPath)
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	header := "# vgrab configuration file\n# Run 'vgrab init' to regenerate with defaults\n\n"
	content := header + string(data)

	return os.WriteFile(configPath, []byte(content), 0644)
}

// SavePath returns the path where config will be saved
func SavePath() string {
	if path, err := ConfigPath(); err == nil {
		return path
	}
	return "config.yml"
}

// Init creates a new config.yml with default values
func Init() error {
	if Exists() {
		path, _ := ConfigPath()
		return fmt.Errorf("%s already exists", path)
	}
	return Save(DefaultConfig())
}

// LoadOrDefault loads config if it exists, otherwise returns defaults.
// Environment overrides apply either way.
func LoadOrDefault() *Config {
	cfg, err := Load()
	if err != nil {
		cfg = DefaultConfig()
		loadEnv(cfg)
	}
	return cfg
}

package cli

import (
	"fmt"
	"os"
	"strconv"

	"github.com/guiyumin/vgrab/internal/core/config"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage vgrab configuration",
	Long:  "View and modify vgrab settings",
}

// vgrab config show - show current config
var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	Run: func(cmd *cobra.Command, args []string) {
		cfg := config.LoadOrDefault()

		fmt.Println("Current configuration:")
		fmt.Printf("  Language:  %s\n", cfg.Language)
		fmt.Printf("  Log level: %s\n", cfg.LogLevel)
		fmt.Printf("  Config:    %s\n", config.SavePath())

		fmt.Println("\nExtractor:")
		fmt.Printf("  binary_path:     %s\n", cfg.Extractor.BinaryPath)
		fmt.Printf("  timeout_seconds: %d\n", cfg.Extractor.TimeoutSeconds)
		fmt.Printf("  user_agent:      %s\n", cfg.Extractor.UserAgent)
		for k, v := range cfg.Extractor.Headers {
			fmt.Printf("  header %s: %s\n", k, v)
		}

		fmt.Println("\nServer:")
		fmt.Printf("  port:           %d\n", cfg.Server.Port)
		fmt.Printf("  max_concurrent: %d\n", cfg.Server.MaxConcurrent)
		if cfg.Server.RateLimit > 0 {
			fmt.Printf("  rate_limit:     %g/s (burst %d)\n", cfg.Server.RateLimit, cfg.Server.RateBurst)
		}
		if cfg.Server.APIKey != "" {
			fmt.Printf("  api_key:        %s\n", maskSecret(cfg.Server.APIKey))
		}

		if cfg.Waitlist.RedisAddr != "" {
			fmt.Println("\nWaitlist:")
			fmt.Printf("  redis_addr: %s (db %d)\n", cfg.Waitlist.RedisAddr, cfg.Waitlist.RedisDB)
		}
	},
}

// vgrab config path - show config file path
var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Show config file path",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(config.SavePath())
	},
}

// vgrab config set KEY VALUE - set a config value
var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Long: `Set a configuration value in config.yml.

Supported keys:
  language                 Language code (en, zh)
  log_level                debug, info, warn, error
  extractor.binary_path    Path to yt-dlp
  extractor.timeout_seconds  Max seconds per extraction
  extractor.user_agent     User-Agent sent to the site
  server.port              Server listen port
  server.max_concurrent    Max concurrent extractions
  server.api_key           Server API key
  waitlist.redis_addr      Redis address for the waitlist

Examples:
  vgrab config set language zh
  vgrab config set extractor.binary_path ~/bin/yt-dlp`,
	Args: cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		key := args[0]
		value := args[1]

		cfg := config.LoadOrDefault()

		if err := setConfigValue(cfg, key, value); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		if err := config.Save(cfg); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to save config: %v\n", err)
			os.Exit(1)
		}

		fmt.Printf("Set %s = %s\n", key, value)
	},
}

// vgrab config get KEY - get a config value
var configGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Get a configuration value",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		value, err := getConfigValue(config.LoadOrDefault(), args[0])
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Println(value)
	},
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configPathCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configGetCmd)
	rootCmd.AddCommand(configCmd)
}

// configKeys are the keys accepted by config get/set
var configKeys = []string{
	"language",
	"log_level",
	"extractor.binary_path",
	"extractor.timeout_seconds",
	"extractor.user_agent",
	"server.port",
	"server.max_concurrent",
	"server.api_key",
	"waitlist.redis_addr",
}

// setConfigValue sets a config value by key
func setConfigValue(cfg *config.Config, key, value string) error {
	switch key {
	case "language":
		cfg.Language = value
	case "log_level":
		cfg.LogLevel = value
	case "extractor.binary_path":
		cfg.Extractor.BinaryPath = value
	case "extractor.timeout_seconds":
		n, err := positiveInt(value)
		if err != nil {
			return err
		}
		cfg.Extractor.TimeoutSeconds = n
	case "extractor.user_agent":
		cfg.Extractor.UserAgent = value
	case "server.port":
		port, err := positiveInt(value)
		if err != nil {
			return fmt.Errorf("invalid port number: %s", value)
		}
		cfg.Server.Port = port
	case "server.max_concurrent":
		n, err := positiveInt(value)
		if err != nil {
			return err
		}
		cfg.Server.MaxConcurrent = n
	case "server.api_key":
		cfg.Server.APIKey = value
	case "waitlist.redis_addr":
		cfg.Waitlist.RedisAddr = value
	default:
		return fmt.Errorf("unknown config key: %s\nRun 'vgrab config set --help' to see supported keys", key)
	}
	return nil
}

// getConfigValue gets a config value by key
func getConfigValue(cfg *config.Config, key string) (string, error) {
	switch key {
	case "language":
		return cfg.Language, nil
	case "log_level":
		return cfg.LogLevel, nil
	case "extractor.binary_path":
		return cfg.Extractor.BinaryPath, nil
	case "extractor.timeout_seconds":
		return strconv.Itoa(cfg.Extractor.TimeoutSeconds), nil
	case "extractor.user_agent":
		return cfg.Extractor.UserAgent, nil
	case "server.port":
		return strconv.Itoa(cfg.Server.Port), nil
	case "server.max_concurrent":
		return strconv.Itoa(cfg.Server.MaxConcurrent), nil
	case "server.api_key":
		return cfg.Server.APIKey, nil
	case "waitlist.redis_addr":
		return cfg.Waitlist.RedisAddr, nil
	default:
		return "", fmt.Errorf("unknown config key: %s", key)
	}
}

func positiveInt(value string) (int, error) {
	n, err := strconv.Atoi(value)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("invalid number: %s", value)
	}
	return n, nil
}

// maskSecret keeps the first and last two characters
func maskSecret(s string) string {
	if len(s) <= 4 {
		return "****"
	}
	return s[:2] + "****" + s[len(s)-2:]
}

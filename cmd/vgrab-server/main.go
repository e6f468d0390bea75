package main

import (
	"flag"
	"fmt"

	"github.com/guiyumin/vgrab/internal/core/config"
	"github.com/guiyumin/vgrab/internal/core/logging"
	"github.com/guiyumin/vgrab/internal/core/version"
	"github.com/guiyumin/vgrab/internal/server"
	log "github.com/sirupsen/logrus"
)

func main() {
	// Command-line flags
	port := flag.Int("port", 0, "HTTP listen port (default: 8080)")
	ytdlp := flag.String("yt-dlp", "", "path to the yt-dlp binary")
	showVersion := flag.Bool("version", false, "show version")
	flag.Parse()

	if *showVersion {
		fmt.Printf("vgrab-server %s\n", version.Version)
		return
	}

	// Load configuration
	cfg := config.LoadOrDefault()
	logging.Setup(cfg.LogLevel, cfg.LogJSON, nil)

	// Resolve port (flag > env > config > default)
	if *port > 0 {
		cfg.Server.Port = *port
	}
	if *ytdlp != "" {
		cfg.Extractor.BinaryPath = *ytdlp
	}

	if err := server.Run(cfg); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}

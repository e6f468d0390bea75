package cli

import (
	"fmt"
	"os"

	"github.com/guiyumin/vgrab/internal/core/config"
	"github.com/guiyumin/vgrab/internal/server"
	"github.com/spf13/cobra"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	Long: `Start an HTTP server that resolves video URLs into grouped formats.

Examples:
  vgrab serve              # Start server on port 8080
  vgrab serve -p 9000      # Start server on port 9000

API Endpoints:
  GET  /api/health         # Health check
  POST /api/info           # Resolve a URL: {"url": "..."}
  POST /api/waitlist       # Join the waitlist: {"email": "..."}
  GET  /api/waitlist       # Waitlist size, or ?email= membership`,
	Run: func(cmd *cobra.Command, args []string) {
		if err := runServe(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	serveCmd.Flags().IntVarP(&servePort, "port", "p", 0, "HTTP listen port (default: 8080)")

	rootCmd.AddCommand(serveCmd)
}

func runServe() error {
	cfg := config.LoadOrDefault()

	// flag > env > config > default
	if servePort > 0 {
		cfg.Server.Port = servePort
	}
	if ytdlpPath != "" {
		cfg.Extractor.BinaryPath = ytdlpPath
	}

	return server.Run(cfg)
}

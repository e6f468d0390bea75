package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/fatih/color"
	"github.com/guiyumin/vgrab/internal/core/config"
	"github.com/guiyumin/vgrab/internal/core/extractor"
	"github.com/guiyumin/vgrab/internal/core/i18n"
	"github.com/guiyumin/vgrab/internal/core/logging"
	"github.com/guiyumin/vgrab/internal/core/version"
	"github.com/guiyumin/vgrab/internal/core/video"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var (
	jsonOutput bool
	pick       bool
	logLevel   string
	ytdlpPath  string
)

var rootCmd = &cobra.Command{
	Use:     "vgrab [url]",
	Short:   "List the downloadable video and audio formats of a YouTube URL",
	Version: version.Version,
	Args:    cobra.MaximumNArgs(1),
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		cfg := config.LoadOrDefault()
		level := cfg.LogLevel
		if logLevel != "" {
			level = logLevel
		}
		logging.Setup(level, cfg.LogJSON, nil)
	},
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) == 0 {
			cmd.Help()
			return
		}
		if err := runInspect(args[0]); err != nil {
			fmt.Fprintln(os.Stderr, color.RedString("Error: %v", err))
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.Flags().BoolVar(&jsonOutput, "json", false, "print the result as JSON")
	rootCmd.Flags().BoolVarP(&pick, "pick", "p", false, "choose a format interactively and print its URL")
	rootCmd.Flags().StringVar(&ytdlpPath, "yt-dlp", "", "path to the yt-dlp binary")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error)")
}

func Execute() error {
	return rootCmd.Execute()
}

// isTerminal reports whether stdout is attached to a terminal
func isTerminal() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

func runInspect(rawURL string) error {
	cfg := config.LoadOrDefault()
	t := i18n.T(cfg.Language)

	opts := cfg.Extractor.Options()
	if ytdlpPath != "" {
		opts.BinaryPath = ytdlpPath
	}

	ext := extractor.NewDefaultRegistry(opts).Match(rawURL)
	if ext == nil {
		return fmt.Errorf("%s", t.Errors.InvalidURL)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var (
		info *extractor.Info
		err  error
	)
	if isTerminal() && !jsonOutput {
		info, err = runExtractWithSpinner(ctx, ext, rawURL, cfg.Language)
	} else {
		info, err = ext.Extract(ctx, rawURL)
	}
	if err != nil {
		return fmt.Errorf("%s: %w", video.ErrorMessage(t, err), err)
	}

	resp := video.Build(rawURL, info)

	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(resp)
	}

	if pick {
		if !isTerminal() {
			return fmt.Errorf("--pick needs a terminal")
		}
		chosen, err := runPicker(resp, cfg.Language)
		if err != nil {
			return err
		}
		if chosen != nil {
			fmt.Println(chosen.URL)
		}
		return nil
	}

	fmt.Print(renderVideo(resp, t))
	return nil
}

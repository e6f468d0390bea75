package extractor

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/url"
	"os/exec"
	"sort"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
)

const (
	DefaultBinaryPath     = "yt-dlp"
	DefaultRequestTimeout = 60 * time.Second
	DefaultUserAgent      = "Mozilla/5.0"

	// formatSelector asks yt-dlp to resolve URLs for mp4/m4a where possible
	formatSelector = "bestvideo[ext=mp4]+bestaudio[ext=m4a]/best"
)

// Options configures a yt-dlp backed extractor
type Options struct {
	// BinaryPath is the yt-dlp executable (name on $PATH or absolute path)
	BinaryPath string

	// RequestTimeout bounds a single yt-dlp invocation
	RequestTimeout time.Duration

	// UserAgent is sent as the user-agent header
	UserAgent string

	// ExtraHeaders are passed through as --add-header key:value
	ExtraHeaders map[string]string
}

// DefaultOptions returns options with sensible defaults
func DefaultOptions() Options {
	return Options{
		BinaryPath:     DefaultBinaryPath,
		RequestTimeout: DefaultRequestTimeout,
		UserAgent:      DefaultUserAgent,
		ExtraHeaders:   map[string]string{"referer": "youtube.com"},
	}
}

// YtdlpExtractor runs yt-dlp to extract metadata and formats for a URL
type YtdlpExtractor struct {
	opts Options
}

// NewYtdlp creates a yt-dlp extractor. Zero fields in opts fall back to defaults.
func NewYtdlp(opts Options) *YtdlpExtractor {
	def := DefaultOptions()
	if opts.BinaryPath == "" {
		opts.BinaryPath = def.BinaryPath
	}
	if opts.RequestTimeout <= 0 {
		opts.RequestTimeout = def.RequestTimeout
	}
	if opts.UserAgent == "" {
		opts.UserAgent = def.UserAgent
	}
	if opts.ExtraHeaders == nil {
		opts.ExtraHeaders = def.ExtraHeaders
	}
	return &YtdlpExtractor{opts: opts}
}

func (e *YtdlpExtractor) Name() string {
	return "youtube"
}

func (e *YtdlpExtractor) Match(u *url.URL) bool {
	return isYouTubeHost(u.Hostname())
}

// Options returns the effective options
func (e *YtdlpExtractor) Options() Options {
	return e.opts
}

// args builds the yt-dlp command line for a URL
func (e *YtdlpExtractor) args(rawURL string) []string {
	args := []string{
		rawURL,
		"--dump-single-json",
		"--no-warnings",
		"--no-playlist",
		"--prefer-free-formats",
		"--no-check-certificates",
		"--format", formatSelector,
	}

	keys := make([]string, 0, len(e.opts.ExtraHeaders))
	for k := range e.opts.ExtraHeaders {
		if strings.EqualFold(k, "user-agent") {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		args = append(args, "--add-header", k+":"+e.opts.ExtraHeaders[k])
	}
	args = append(args, "--add-header", "user-agent:"+e.opts.UserAgent)

	return args
}

// Extract runs yt-dlp once against rawURL
func (e *YtdlpExtractor) Extract(ctx context.Context, rawURL string) (*Info, error) {
	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		return nil, &Error{Kind: KindInvalidURL, URL: rawURL, Err: errors.New("malformed url")}
	}

	ctx, cancel := context.WithTimeout(ctx, e.opts.RequestTimeout)
	defer cancel()

	start := time.Now()
	cmd := exec.CommandContext(ctx, e.opts.BinaryPath, e.args(rawURL)...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if ctxErr := ctx.Err(); ctxErr != nil {
			log.WithFields(log.Fields{"url": rawURL, "elapsed": time.Since(start)}).Warn("yt-dlp cancelled")
			return nil, &Error{Kind: KindTransient, URL: rawURL, Err: ctxErr}
		}
		kind := classifyStderr(msg)
		log.WithFields(log.Fields{"url": rawURL, "kind": kind}).Debugf("yt-dlp failed: %s", msg)
		return nil, &Error{Kind: kind, URL: rawURL, Err: fmt.Errorf("yt-dlp error: %v | %s", err, msg)}
	}

	info, err := decodeInfo(stdout.Bytes())
	if err != nil {
		return nil, &Error{Kind: KindTransient, URL: rawURL, Err: err}
	}

	log.WithFields(log.Fields{
		"url":     rawURL,
		"id":      info.ID,
		"formats": len(info.Formats),
		"elapsed": time.Since(start),
	}).Debug("yt-dlp extraction finished")

	return info, nil
}

package extractor

import (
	"net/url"
	"strings"
)

// youtubeHosts are the hostnames handled by the yt-dlp extractor
var youtubeHosts = []string{
	"youtube.com",
	"www.youtube.com",
	"m.youtube.com",
	"music.youtube.com",
	"youtu.be",
}

func isYouTubeHost(host string) bool {
	host = strings.ToLower(host)
	for _, h := range youtubeHosts {
		if host == h {
			return true
		}
	}
	return false
}

// Registry maps hostnames to extractors
type Registry struct {
	byHost map[string]Extractor
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{byHost: make(map[string]Extractor)}
}

// NewDefaultRegistry creates a registry with the yt-dlp extractor registered
// for all YouTube hosts
func NewDefaultRegistry(opts Options) *Registry {
	r := NewRegistry()
	r.Register(NewYtdlp(opts), youtubeHosts...)
	return r
}

// Register adds an extractor for the given hostnames
func (r *Registry) Register(e Extractor, hosts ...string) {
	for _, host := range hosts {
		r.byHost[strings.ToLower(host)] = e
	}
}

// Match finds the extractor for a URL using hostname lookup.
// Returns nil for unparsable URLs and unknown hosts.
func (r *Registry) Match(rawURL string) Extractor {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil || u.Host == "" {
		return nil
	}

	host := strings.ToLower(u.Hostname())
	if e, ok := r.byHost[host]; ok && e.Match(u) {
		return e
	}

	// Try without www. prefix
	if strings.HasPrefix(host, "www.") {
		if e, ok := r.byHost[host[4:]]; ok && e.Match(u) {
			return e
		}
	}

	return nil
}

// List returns all unique registered extractors
func (r *Registry) List() []Extractor {
	seen := make(map[string]bool)
	var result []Extractor
	for _, e := range r.byHost {
		if !seen[e.Name()] {
			seen[e.Name()] = true
			result = append(result, e)
		}
	}
	return result
}

// VideoID extracts the YouTube video ID from a watch, short, embed or
// youtu.be URL. Returns "" when none is present.
func VideoID(rawURL string) string {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return ""
	}

	host := strings.ToLower(u.Hostname())
	if host == "youtu.be" {
		return firstSegment(u.Path)
	}
	if !isYouTubeHost(host) {
		return ""
	}

	if v := u.Query().Get("v"); v != "" {
		return v
	}
	for _, prefix := range []string{"/shorts/", "/embed/", "/live/"} {
		if strings.HasPrefix(u.Path, prefix) {
			return firstSegment(strings.TrimPrefix(u.Path, prefix))
		}
	}
	return ""
}

func firstSegment(p string) string {
	p = strings.TrimPrefix(p, "/")
	if i := strings.IndexByte(p, '/'); i >= 0 {
		p = p[:i]
	}
	return p
}

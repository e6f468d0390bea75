package extractor

import (
	"context"
	"net/url"

	"github.com/samber/mo"
)

// CodecNone is the codec tag yt-dlp reports for an absent track
const CodecNone = "none"

// Extractor defines the interface for metadata extractors
type Extractor interface {
	// Name returns the extractor name (e.g., "youtube")
	Name() string

	// Match returns true if this extractor can handle the URL
	// The URL is pre-parsed so extractors can reliably check the host/domain
	Match(u *url.URL) bool

	// Extract retrieves media metadata and the raw format list for the URL
	Extract(ctx context.Context, url string) (*Info, error)
}

// Info is the metadata returned for one source URL
type Info struct {
	ID           string
	Title        string
	Thumbnail    string
	DurationText string // "1:02:03" as reported by the extractor
	Uploader     string
	ViewCount    mo.Option[int64]
	Description  string
	Formats      []RawFormat
}

// RawFormat is one stream descriptor as reported by the extractor.
// Optional fields are None when the extractor omitted them or sent
// something that could not be read as the expected type.
type RawFormat struct {
	ID       string
	Ext      mo.Option[string]
	Height   mo.Option[int]
	VCodec   string
	ACodec   string
	FileSize mo.Option[int64]
	FPS      mo.Option[float64]
	ABR      mo.Option[float64] // kbps
	Note     string
	URL      mo.Option[string]
}

// HasVideo reports whether the descriptor carries a video track
func (f *RawFormat) HasVideo() bool {
	return f.VCodec != CodecNone
}

// HasAudio reports whether the descriptor carries an audio track
func (f *RawFormat) HasAudio() bool {
	return f.ACodec != CodecNone
}

// Playable reports whether the descriptor has a resolved URL
func (f *RawFormat) Playable() bool {
	return f.URL.IsPresent()
}

// Package format turns the raw stream descriptors reported by an extractor
// into display-ready formats grouped by quality tier, plus one recommended
// pick per stream kind.
package format

// Kind is the stream kind of a display format
type Kind string

const (
	KindVideoAudio Kind = "video+audio"
	KindAudioOnly  Kind = "audio-only"
)

// KindFromFlags derives the stream kind from track presence. Classify only
// passes rows carrying audio, so a row without video is audio-only.
func KindFromFlags(hasAudio, hasVideo bool) Kind {
	if hasVideo && hasAudio {
		return KindVideoAudio
	}
	return KindAudioOnly
}

// Display is a normalized, display-ready stream format.
// Values are built once by Normalize and never modified.
type Display struct {
	ID           string   `json:"itag"`
	Quality      string   `json:"quality"`
	MimeType     string   `json:"mimeType"`
	URL          string   `json:"url"`
	HasAudio     bool     `json:"hasAudio"`
	HasVideo     bool     `json:"hasVideo"`
	FileSize     string   `json:"fileSize,omitempty"`
	FPS          *float64 `json:"fps,omitempty"`
	AudioBitrate string   `json:"audioBitrate,omitempty"`
	VideoQuality string   `json:"videoQuality,omitempty"`
	Label        string   `json:"label"`
	Kind         Kind     `json:"type"`
	Ext          string   `json:"ext"`
	Height       int      `json:"height"`

	bitrate float64 // kbps, 0 when unknown
}

// Bitrate returns the audio bitrate in kbps, 0 when unknown
func (d Display) Bitrate() float64 {
	return d.bitrate
}

// Group is a named quality tier. Formats is never empty.
type Group struct {
	Label   string    `json:"label"`
	Formats []Display `json:"formats"`
}

// Result is the grouped output for one extraction
type Result struct {
	BestVideo    *Display `json:"bestVideo,omitempty"`
	BestAudio    *Display `json:"bestAudio,omitempty"`
	VideoFormats []Group  `json:"videoFormats"`
	AudioFormats []Group  `json:"audioFormats"`
}

// Formats returns every format in the given groups, in order
func Formats(groups []Group) []Display {
	var out []Display
	for _, g := range groups {
		out = append(out, g.Formats...)
	}
	return out
}

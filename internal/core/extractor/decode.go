package extractor

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"

	"github.com/samber/mo"
)

// ytdlpJSON matches the subset of `yt-dlp --dump-single-json` output we read.
// Numeric fields use looseNumber because yt-dlp extractors are not consistent
// about null, strings or floats in those slots.
type ytdlpJSON struct {
	ID             string        `json:"id"`
	Title          string        `json:"title"`
	Thumbnail      string        `json:"thumbnail"`
	DurationString string        `json:"duration_string"`
	Uploader       string        `json:"uploader"`
	ViewCount      looseNumber   `json:"view_count"`
	Description    string        `json:"description"`
	Formats        []ytdlpFormat `json:"formats"`
}

type ytdlpFormat struct {
	FormatID   looseString `json:"format_id"`
	Ext        looseString `json:"ext"`
	Height     looseNumber `json:"height"`
	VCodec     looseString `json:"vcodec"`
	ACodec     looseString `json:"acodec"`
	Filesize   looseNumber `json:"filesize"`
	FPS        looseNumber `json:"fps"`
	ABR        looseNumber `json:"abr"`
	FormatNote looseString `json:"format_note"`
	URL        looseString `json:"url"`
}

// looseNumber accepts a JSON number or a numeric string. Anything else
// (null, bool, object, "N/A") leaves it unset instead of failing the decode.
type looseNumber struct {
	value float64
	set   bool
}

func (n *looseNumber) UnmarshalJSON(b []byte) error {
	*n = looseNumber{}
	if bytes.Equal(b, []byte("null")) {
		return nil
	}

	var f float64
	if err := json.Unmarshal(b, &f); err == nil {
		n.value, n.set = f, true
		return nil
	}

	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		if f, err := strconv.ParseFloat(s, 64); err == nil && !math.IsNaN(f) && !math.IsInf(f, 0) {
			n.value, n.set = f, true
		}
	}
	return nil
}

// looseString accepts a JSON string and ignores every other type.
type looseString string

func (s *looseString) UnmarshalJSON(b []byte) error {
	var v string
	if err := json.Unmarshal(b, &v); err != nil {
		*s = ""
		return nil
	}
	*s = looseString(v)
	return nil
}

func (n looseNumber) nonNegative() mo.Option[float64] {
	if !n.set || n.value < 0 {
		return mo.None[float64]()
	}
	return mo.Some(n.value)
}

func (n looseNumber) positive() mo.Option[float64] {
	if !n.set || n.value <= 0 {
		return mo.None[float64]()
	}
	return mo.Some(n.value)
}

// toInt64 narrows a count to int64. Values outside the int64 range are unset.
func toInt64(o mo.Option[float64]) mo.Option[int64] {
	v, ok := o.Get()
	if !ok || v >= math.MaxInt64 {
		return mo.None[int64]()
	}
	return mo.Some(int64(v))
}

func (s looseString) option() mo.Option[string] {
	if s == "" {
		return mo.None[string]()
	}
	return mo.Some(string(s))
}

// decodeInfo parses yt-dlp JSON output into an Info
func decodeInfo(data []byte) (*Info, error) {
	var raw ytdlpJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse yt-dlp output: %w", err)
	}

	info := &Info{
		ID:           raw.ID,
		Title:        raw.Title,
		Thumbnail:    raw.Thumbnail,
		DurationText: raw.DurationString,
		Uploader:     raw.Uploader,
		Description:  raw.Description,
		ViewCount:    toInt64(raw.ViewCount.nonNegative()),
		Formats:      make([]RawFormat, 0, len(raw.Formats)),
	}

	for _, f := range raw.Formats {
		info.Formats = append(info.Formats, f.toRawFormat())
	}

	return info, nil
}

func (f ytdlpFormat) toRawFormat() RawFormat {
	rf := RawFormat{
		ID:       string(f.FormatID),
		Ext:      f.Ext.option(),
		Height:   mo.None[int](),
		FileSize: toInt64(f.Filesize.positive()),
		VCodec:   string(f.VCodec),
		ACodec:   string(f.ACodec),
		FPS:      f.FPS.positive(),
		ABR:      f.ABR.nonNegative(),
		Note:     string(f.FormatNote),
		URL:      f.URL.option(),
	}
	if h, ok := f.Height.nonNegative().Get(); ok && h <= math.MaxInt32 {
		rf.Height = mo.Some(int(h))
	}
	return rf
}

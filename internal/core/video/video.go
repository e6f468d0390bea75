// Package video assembles the response for a resolved video URL. The HTTP
// server and the CLI share it.
package video

import (
	"github.com/dustin/go-humanize"
	"github.com/guiyumin/vgrab/internal/core/extractor"
	"github.com/guiyumin/vgrab/internal/core/format"
	"github.com/guiyumin/vgrab/internal/core/i18n"
)

const descriptionLimit = 200

// Response is the payload returned for a resolved URL
type Response struct {
	Title        string        `json:"title"`
	Thumbnail    string        `json:"thumbnail"`
	Duration     string        `json:"duration"`
	Author       string        `json:"author"`
	Views        string        `json:"views"`
	Description  string        `json:"description"`
	FormatGroups format.Result `json:"formatGroups"`
}

// Build fills display defaults for missing metadata and runs the format
// pipeline
func Build(rawURL string, info *extractor.Info) Response {
	resp := Response{
		Title:        info.Title,
		Thumbnail:    info.Thumbnail,
		Duration:     info.DurationText,
		Author:       info.Uploader,
		Views:        humanize.Comma(info.ViewCount.OrElse(0)),
		Description:  "No description available",
		FormatGroups: format.Process(info.Formats),
	}

	if resp.Title == "" {
		resp.Title = "Untitled Video"
	}
	if resp.Thumbnail == "" {
		id := info.ID
		if id == "" {
			id = extractor.VideoID(rawURL)
		}
		resp.Thumbnail = "https://i.ytimg.com/vi/" + id + "/maxresdefault.jpg"
	}
	if resp.Duration == "" {
		resp.Duration = "0:00"
	}
	resp.Duration = format.Duration(resp.Duration)
	if resp.Author == "" {
		resp.Author = "Unknown Author"
	}
	if info.Description != "" {
		resp.Description = truncateRunes(info.Description, descriptionLimit) + "..."
	}

	return resp
}

func truncateRunes(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}

// ErrorMessage returns the localized message for an extraction failure
func ErrorMessage(t *i18n.Translations, err error) string {
	if extractor.IsTimeout(err) {
		return t.Errors.Timeout
	}
	switch extractor.KindOf(err) {
	case extractor.KindInvalidURL:
		return t.Errors.InvalidURL
	case extractor.KindUnavailable:
		return t.Errors.Unavailable
	case extractor.KindPrivate:
		return t.Errors.Private
	case extractor.KindAgeRestricted:
		return t.Errors.AgeRestricted
	case extractor.KindNotFound:
		return t.Errors.NotFound
	default:
		return t.Errors.Generic
	}
}

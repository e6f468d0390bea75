package video

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/guiyumin/vgrab/internal/core/extractor"
	"github.com/guiyumin/vgrab/internal/core/i18n"
	"github.com/samber/mo"
)

func TestBuild(t *testing.T) {
	long := strings.Repeat("é", 250)
	info := &extractor.Info{
		Title:       "Song",
		Thumbnail:   "https://img/x.jpg",
		Uploader:    "Band",
		Description: long,
	}

	resp := Build("https://youtu.be/x", info)
	if resp.Title != "Song" || resp.Thumbnail != "https://img/x.jpg" || resp.Author != "Band" {
		t.Errorf("fields not carried: %+v", resp)
	}
	if resp.Views != "0" || resp.Duration != "0:00" {
		t.Errorf("views = %q, duration = %q", resp.Views, resp.Duration)
	}
	if want := strings.Repeat("é", 200) + "..."; resp.Description != want {
		t.Errorf("description has %d runes", len([]rune(resp.Description)))
	}
	if resp.FormatGroups.VideoFormats == nil || resp.FormatGroups.AudioFormats == nil {
		t.Error("empty groups must be non-nil")
	}

	short := Build("https://youtu.be/x", &extractor.Info{Description: "hi"})
	if short.Description != "hi..." {
		t.Errorf("short description = %q", short.Description)
	}
	if short.Thumbnail != "https://i.ytimg.com/vi/x/maxresdefault.jpg" {
		t.Errorf("thumbnail fallback = %q", short.Thumbnail)
	}
}

func TestBuildDefaults(t *testing.T) {
	resp := Build("https://youtu.be/x", &extractor.Info{
		ID:           "abc",
		DurationText: "0:03:25",
		ViewCount:    mo.Some(int64(1234567)),
	})

	if resp.Title != "Untitled Video" || resp.Author != "Unknown Author" {
		t.Errorf("title/author defaults = %q/%q", resp.Title, resp.Author)
	}
	if resp.Description != "No description available" {
		t.Errorf("description default = %q", resp.Description)
	}
	if resp.Thumbnail != "https://i.ytimg.com/vi/abc/maxresdefault.jpg" {
		t.Errorf("thumbnail should prefer the extracted id, got %q", resp.Thumbnail)
	}
	if resp.Duration != "3:25" || resp.Views != "1,234,567" {
		t.Errorf("duration = %q, views = %q", resp.Duration, resp.Views)
	}
}

func TestErrorMessage(t *testing.T) {
	en := i18n.T("en")

	tests := []struct {
		name string
		err  error
		want string
	}{
		{"invalid", &extractor.Error{Kind: extractor.KindInvalidURL}, en.Errors.InvalidURL},
		{"unavailable", &extractor.Error{Kind: extractor.KindUnavailable}, en.Errors.Unavailable},
		{"private", &extractor.Error{Kind: extractor.KindPrivate}, en.Errors.Private},
		{"age restricted", &extractor.Error{Kind: extractor.KindAgeRestricted}, en.Errors.AgeRestricted},
		{"not found", &extractor.Error{Kind: extractor.KindNotFound}, en.Errors.NotFound},
		{"timeout", fmt.Errorf("run: %w", context.DeadlineExceeded), en.Errors.Timeout},
		{"other", errors.New("boom"), en.Errors.Generic},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ErrorMessage(en, tt.err); got != tt.want {
				t.Errorf("ErrorMessage = %q, want %q", got, tt.want)
			}
		})
	}
}

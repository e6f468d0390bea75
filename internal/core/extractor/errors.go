package extractor

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// ErrorKind classifies extraction failures into the categories callers
// show to users.
type ErrorKind string

const (
	KindInvalidURL    ErrorKind = "invalid_url"
	KindUnavailable   ErrorKind = "unavailable"
	KindPrivate       ErrorKind = "private"
	KindAgeRestricted ErrorKind = "age_restricted"
	KindNotFound      ErrorKind = "not_found"
	KindTransient     ErrorKind = "transient"
)

// Error is returned by extractors when a URL cannot be resolved
type Error struct {
	Kind ErrorKind
	URL  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("extract %s: %s", e.URL, e.Kind)
	}
	return fmt.Sprintf("extract %s: %s: %v", e.URL, e.Kind, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// KindOf returns the ErrorKind carried by err, or KindTransient for
// errors that did not come from an extractor.
func KindOf(err error) ErrorKind {
	var extErr *Error
	if errors.As(err, &extErr) {
		return extErr.Kind
	}
	return KindTransient
}

// stderrPatterns maps yt-dlp error output to a kind. Order matters:
// "Private video. Sign in..." must hit private before the age check.
var stderrPatterns = []struct {
	kind    ErrorKind
	needles []string
}{
	{KindPrivate, []string{"private video", "this video is private"}},
	{KindAgeRestricted, []string{"age-restricted", "age restricted", "confirm your age", "inappropriate for some users"}},
	{KindNotFound, []string{"http error 404", "not found", "does not exist", "no video formats found"}},
	{KindUnavailable, []string{"video unavailable", "is not available", "has been removed", "members-only", "premieres in", "this live event will begin"}},
	{KindInvalidURL, []string{"unsupported url", "is not a valid url", "incomplete youtube id"}},
}

// classifyStderr picks a kind for a failed yt-dlp run from its stderr
func classifyStderr(stderr string) ErrorKind {
	lower := strings.ToLower(stderr)
	for _, p := range stderrPatterns {
		for _, needle := range p.needles {
			if strings.Contains(lower, needle) {
				return p.kind
			}
		}
	}
	return KindTransient
}

// IsTimeout reports whether err was caused by the request timeout
func IsTimeout(err error) bool {
	return errors.Is(err, context.DeadlineExceeded)
}

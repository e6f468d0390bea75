package extractor

import "testing"

func TestRegistryMatch(t *testing.T) {
	r := NewDefaultRegistry(DefaultOptions())

	tests := []struct {
		url   string
		match bool
	}{
		{"https://www.youtube.com/watch?v=dQw4w9WgXcQ", true},
		{"https://youtube.com/watch?v=dQw4w9WgXcQ", true},
		{"https://m.youtube.com/watch?v=dQw4w9WgXcQ", true},
		{"https://music.youtube.com/watch?v=dQw4w9WgXcQ", true},
		{"https://youtu.be/dQw4w9WgXcQ", true},
		{"  https://YOUTU.BE/dQw4w9WgXcQ  ", true},
		{"https://vimeo.com/12345", false},
		{"not a url", false},
		{"", false},
	}

	for _, tt := range tests {
		got := r.Match(tt.url) != nil
		if got != tt.match {
			t.Errorf("Match(%q) = %v, want %v", tt.url, got, tt.match)
		}
	}

	if n := len(r.List()); n != 1 {
		t.Errorf("expected 1 unique extractor, got %d", n)
	}
}

func TestVideoID(t *testing.T) {
	tests := []struct {
		url      string
		expected string
	}{
		{"https://www.youtube.com/watch?v=dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"https://www.youtube.com/watch?feature=share&v=dQw4w9WgXcQ&t=10", "dQw4w9WgXcQ"},
		{"https://youtu.be/dQw4w9WgXcQ?si=abc", "dQw4w9WgXcQ"},
		{"https://www.youtube.com/shorts/abc123", "abc123"},
		{"https://www.youtube.com/embed/abc123/extra", "abc123"},
		{"https://www.youtube.com/channel/xyz", ""},
		{"https://example.com/watch?v=dQw4w9WgXcQ", ""},
	}

	for _, tt := range tests {
		if got := VideoID(tt.url); got != tt.expected {
			t.Errorf("VideoID(%q) = %q, want %q", tt.url, got, tt.expected)
		}
	}
}

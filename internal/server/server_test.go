package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/guiyumin/vgrab/internal/core/config"
	"github.com/guiyumin/vgrab/internal/core/extractor"
	"github.com/guiyumin/vgrab/internal/core/video"
	"github.com/guiyumin/vgrab/internal/core/waitlist"
	"github.com/samber/mo"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// fakeExtractor returns a canned result for every URL
type fakeExtractor struct {
	info  *extractor.Info
	err   error
	calls int
}

func (f *fakeExtractor) Name() string { return "fake" }
func (f *fakeExtractor) Match(u *url.URL) bool { return true }
func (f *fakeExtractor) Extract(ctx context.Context, rawURL string) (*extractor.Info, error) {
	f.calls++
	return f.info, f.err
}

func newTestServer(t *testing.T, fake *fakeExtractor, mutate func(cfg *config.Config)) *Server {
	t.Helper()
	cfg := config.DefaultConfig()
	if mutate != nil {
		mutate(cfg)
	}
	registry := extractor.NewRegistry()
	registry.Register(fake, "youtube.com", "www.youtube.com", "youtu.be")
	return New(cfg, registry, waitlist.NewMemoryStore())
}

func doJSON(t *testing.T, s *Server, method, path string, body interface{}, header map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatal(err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range header {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)
	return w
}

func sampleInfo() *extractor.Info {
	return &extractor.Info{
		ID:           "abc123",
		DurationText: "0:03:25",
		ViewCount:    mo.Some(int64(1234567)),
		Formats: []extractor.RawFormat{
			{
				ID:     "18",
				Ext:    mo.Some("mp4"),
				Height: mo.Some(360),
				VCodec: "avc1",
				ACodec: "mp4a",
				URL:    mo.Some("https://cdn.example/18"),
			},
			{
				ID:     "22",
				Ext:    mo.Some("mp4"),
				Height: mo.Some(720),
				VCodec: "avc1",
				ACodec: "mp4a",
				URL:    mo.Some("https://cdn.example/22"),
			},
			{
				ID:     "140",
				Ext:    mo.Some("m4a"),
				VCodec: extractor.CodecNone,
				ACodec: "mp4a",
				ABR:    mo.Some(129.5),
				URL:    mo.Some("https://cdn.example/140"),
			},
		},
	}
}

type infoEnvelope struct {
	Code    int           `json:"code"`
	Data    video.Response `json:"data"`
	Message string        `json:"message"`
}

func TestHealth(t *testing.T) {
	s := newTestServer(t, &fakeExtractor{}, nil)
	w := doJSON(t, s, http.MethodGet, "/api/health", nil, nil)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if w.Header().Get("X-Request-ID") == "" {
		t.Error("missing X-Request-ID header")
	}
}

func TestRequestIDPassthrough(t *testing.T) {
	s := newTestServer(t, &fakeExtractor{}, nil)
	w := doJSON(t, s, http.MethodGet, "/api/health", nil, map[string]string{"X-Request-ID": "req-1"})
	if got := w.Header().Get("X-Request-ID"); got != "req-1" {
		t.Errorf("X-Request-ID = %q, want req-1", got)
	}
}

func TestInfoSuccess(t *testing.T) {
	fake := &fakeExtractor{info: sampleInfo()}
	s := newTestServer(t, fake, nil)

	w := doJSON(t, s, http.MethodPost, "/api/info", InfoRequest{URL: "https://www.youtube.com/watch?v=abc123"}, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}

	var resp infoEnvelope
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	got := resp.Data

	if got.Title != "Untitled Video" || got.Author != "Unknown Author" {
		t.Errorf("defaults not applied: %+v", got)
	}
	if got.Thumbnail != "https://i.ytimg.com/vi/abc123/maxresdefault.jpg" {
		t.Errorf("thumbnail = %q", got.Thumbnail)
	}
	if got.Duration != "3:25" {
		t.Errorf("duration = %q", got.Duration)
	}
	if got.Views != "1,234,567" {
		t.Errorf("views = %q", got.Views)
	}
	if got.Description != "No description available" {
		t.Errorf("description = %q", got.Description)
	}

	groups := got.FormatGroups
	if groups.BestVideo == nil || groups.BestVideo.ID != "22" {
		t.Errorf("best video = %+v", groups.BestVideo)
	}
	if groups.BestAudio == nil || groups.BestAudio.ID != "140" {
		t.Errorf("best audio = %+v", groups.BestAudio)
	}
	if len(groups.VideoFormats) != 2 || len(groups.AudioFormats) != 1 {
		t.Errorf("groups = %+v", groups)
	}
}

func TestInfoBadRequests(t *testing.T) {
	fake := &fakeExtractor{info: sampleInfo()}
	s := newTestServer(t, fake, nil)

	tests := []struct {
		name string
		body interface{}
	}{
		{"empty url", InfoRequest{URL: "  "}},
		{"missing body", nil},
		{"not youtube", InfoRequest{URL: "https://vimeo.com/123"}},
		{"garbage", InfoRequest{URL: "::::"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doJSON(t, s, http.MethodPost, "/api/info", tt.body, nil)
			if w.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", w.Code)
			}
			if !strings.Contains(w.Body.String(), `"kind":"invalid_url"`) {
				t.Errorf("body = %s", w.Body.String())
			}
		})
	}
	if fake.calls != 0 {
		t.Errorf("extractor should not run for bad input, ran %d times", fake.calls)
	}
}

func TestInfoErrorStatus(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"invalid", &extractor.Error{Kind: extractor.KindInvalidURL}, http.StatusBadRequest},
		{"unavailable", &extractor.Error{Kind: extractor.KindUnavailable}, http.StatusNotFound},
		{"private", &extractor.Error{Kind: extractor.KindPrivate}, http.StatusForbidden},
		{"age", &extractor.Error{Kind: extractor.KindAgeRestricted}, http.StatusForbidden},
		{"not found", &extractor.Error{Kind: extractor.KindNotFound}, http.StatusNotFound},
		{"transient", &extractor.Error{Kind: extractor.KindTransient, Err: errors.New("exit 1")}, http.StatusBadGateway},
		{"timeout", &extractor.Error{Kind: extractor.KindTransient, Err: context.DeadlineExceeded}, http.StatusGatewayTimeout},
		{"plain", errors.New("boom"), http.StatusBadGateway},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestServer(t, &fakeExtractor{err: tt.err}, nil)
			w := doJSON(t, s, http.MethodPost, "/api/info", InfoRequest{URL: "https://youtu.be/abc"}, nil)
			if w.Code != tt.status {
				t.Errorf("status = %d, want %d", w.Code, tt.status)
			}
		})
	}
}

func TestInfoLocalizedMessage(t *testing.T) {
	fake := &fakeExtractor{err: &extractor.Error{Kind: extractor.KindPrivate}}
	s := newTestServer(t, fake, func(cfg *config.Config) { cfg.Language = "zh" })

	w := doJSON(t, s, http.MethodPost, "/api/info", InfoRequest{URL: "https://youtu.be/abc"}, nil)
	var resp Response
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Message != "该视频为私享视频" {
		t.Errorf("message = %q", resp.Message)
	}
}

func TestInfoBusy(t *testing.T) {
	s := newTestServer(t, &fakeExtractor{info: sampleInfo()}, func(cfg *config.Config) {
		cfg.Server.MaxConcurrent = 1
	})
	s.slots <- struct{}{}
	defer s.release()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	body, _ := json.Marshal(InfoRequest{URL: "https://youtu.be/abc"})
	req := httptest.NewRequest(http.MethodPost, "/api/info", bytes.NewReader(body)).WithContext(ctx)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)

	if w.Code != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want 503", w.Code)
	}
}

func TestAPIKey(t *testing.T) {
	s := newTestServer(t, &fakeExtractor{info: sampleInfo()}, func(cfg *config.Config) {
		cfg.Server.APIKey = "secret"
	})

	if w := doJSON(t, s, http.MethodGet, "/api/health", nil, nil); w.Code != http.StatusOK {
		t.Errorf("health should not require a key, got %d", w.Code)
	}
	body := InfoRequest{URL: "https://youtu.be/abc"}
	if w := doJSON(t, s, http.MethodPost, "/api/info", body, nil); w.Code != http.StatusUnauthorized {
		t.Errorf("missing key: status = %d, want 401", w.Code)
	}
	for _, wrong := range []string{"secre", "secret!", "SECRET"} {
		if w := doJSON(t, s, http.MethodPost, "/api/info", body, map[string]string{"X-API-Key": wrong}); w.Code != http.StatusUnauthorized {
			t.Errorf("key %q: status = %d, want 401", wrong, w.Code)
		}
	}
	if w := doJSON(t, s, http.MethodPost, "/api/info", body, map[string]string{"X-API-Key": "secret"}); w.Code != http.StatusOK {
		t.Errorf("valid key: status = %d, want 200", w.Code)
	}
}

func TestRateLimit(t *testing.T) {
	s := newTestServer(t, &fakeExtractor{}, func(cfg *config.Config) {
		cfg.Server.RateLimit = 0.001
		cfg.Server.RateBurst = 1
	})

	if w := doJSON(t, s, http.MethodGet, "/api/health", nil, nil); w.Code != http.StatusOK {
		t.Fatalf("first request: status = %d", w.Code)
	}
	if w := doJSON(t, s, http.MethodGet, "/api/health", nil, nil); w.Code != http.StatusTooManyRequests {
		t.Errorf("second request: status = %d, want 429", w.Code)
	}
}

func TestWaitlistEndpoints(t *testing.T) {
	s := newTestServer(t, &fakeExtractor{}, nil)

	if w := doJSON(t, s, http.MethodPost, "/api/waitlist", WaitlistRequest{Email: "Fan@Example.com"}, nil); w.Code != http.StatusCreated {
		t.Fatalf("join: status = %d, body = %s", w.Code, w.Body.String())
	}
	if w := doJSON(t, s, http.MethodPost, "/api/waitlist", WaitlistRequest{Email: "fan@example.com"}, nil); w.Code != http.StatusConflict {
		t.Errorf("duplicate: status = %d, want 409", w.Code)
	}
	if w := doJSON(t, s, http.MethodPost, "/api/waitlist", WaitlistRequest{Email: "nope"}, nil); w.Code != http.StatusBadRequest {
		t.Errorf("invalid: status = %d, want 400", w.Code)
	}
	if w := doJSON(t, s, http.MethodPost, "/api/waitlist", nil, nil); w.Code != http.StatusBadRequest {
		t.Errorf("empty body: status = %d, want 400", w.Code)
	}

	w := doJSON(t, s, http.MethodGet, "/api/waitlist?email=FAN@example.com", nil, nil)
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), `"exists":true`) {
		t.Errorf("status check: %d %s", w.Code, w.Body.String())
	}

	w = doJSON(t, s, http.MethodGet, "/api/waitlist", nil, nil)
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), `"count":1`) {
		t.Errorf("count: %d %s", w.Code, w.Body.String())
	}
}

func TestNotFound(t *testing.T) {
	s := newTestServer(t, &fakeExtractor{}, nil)
	if w := doJSON(t, s, http.MethodGet, "/api/nope", nil, nil); w.Code != http.StatusNotFound {
		t.Errorf("status = %d", w.Code)
	}
}

func TestOpenWaitlistFallsBackToMemory(t *testing.T) {
	store := OpenWaitlist(context.Background(), config.WaitlistConfig{})
	if _, ok := store.(*waitlist.MemoryStore); !ok {
		t.Errorf("expected memory store, got %T", store)
	}
}

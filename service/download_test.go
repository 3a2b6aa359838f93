package service_test

import (
	"context"
	"enhancer/api/model"
	"enhancer/service"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go.uber.org/zap"
)

func TestDownloadFetch(t *testing.T) {
	payload := []byte("jpeg bytes here")

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("User-Agent"); got != "enhancer-test/1.0" {
			t.Errorf("missing user agent, got %q", got)
		}
		w.Header().Set("Content-Type", "image/jpeg")
		w.Write(payload)
	}))
	defer srv.Close()

	svc := service.NewDownloadService(testConfig(), zap.NewNop())

	file, err := svc.Fetch(context.Background(), model.DownloadRequest{URL: srv.URL})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if file.ContentType != "image/jpeg" {
		t.Errorf("content type = %q", file.ContentType)
	}
	if file.ContentLength != int64(len(payload)) {
		t.Errorf("content length = %d, want %d", file.ContentLength, len(payload))
	}
	if !strings.HasPrefix(file.Filename, "result_") || !strings.HasSuffix(file.Filename, ".jpg") {
		t.Errorf("synthesized filename = %q, want result_<ts>.jpg", file.Filename)
	}
	if string(file.Body) != string(payload) {
		t.Errorf("body mismatch: %q", file.Body)
	}
}

func TestDownloadCallerFilenameWins(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/webp")
		w.Write([]byte("x"))
	}))
	defer srv.Close()

	svc := service.NewDownloadService(testConfig(), zap.NewNop())

	file, err := svc.Fetch(context.Background(), model.DownloadRequest{URL: srv.URL, Filename: "my-picture.webp"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if file.Filename != "my-picture.webp" {
		t.Errorf("filename = %q", file.Filename)
	}
}

func TestDownloadMissingURL(t *testing.T) {
	fetched := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fetched = true
	}))
	defer srv.Close()

	svc := service.NewDownloadService(testConfig(), zap.NewNop())

	_, err := svc.Fetch(context.Background(), model.DownloadRequest{})
	if got := kindOf(t, err); got != model.MissingURL {
		t.Errorf("got kind %s, want %s", got, model.MissingURL)
	}
	if fetched {
		t.Error("outbound fetch happened despite missing url")
	}
}

func TestDownloadRelativeURL(t *testing.T) {
	svc := service.NewDownloadService(testConfig(), zap.NewNop())

	_, err := svc.Fetch(context.Background(), model.DownloadRequest{URL: "/just/a/path"})
	if got := kindOf(t, err); got != model.MissingURL {
		t.Errorf("got kind %s, want %s", got, model.MissingURL)
	}
}

func TestDownloadUpstreamFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusGone)
	}))
	defer srv.Close()

	svc := service.NewDownloadService(testConfig(), zap.NewNop())

	_, err := svc.Fetch(context.Background(), model.DownloadRequest{URL: srv.URL})
	if got := kindOf(t, err); got != model.FetchFailed {
		t.Errorf("got kind %s, want %s", got, model.FetchFailed)
	}
}

func TestDownloadNetworkFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	svc := service.NewDownloadService(testConfig(), zap.NewNop())

	_, err := svc.Fetch(context.Background(), model.DownloadRequest{URL: srv.URL})
	if got := kindOf(t, err); got != model.NetworkUnreachable {
		t.Errorf("got kind %s, want %s", got, model.NetworkUnreachable)
	}
}

func TestDownloadOversizedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(make([]byte, 64))
	}))
	defer srv.Close()

	cfg := testConfig()
	cfg.MaxUploadBytes = 16

	svc := service.NewDownloadService(cfg, zap.NewNop())

	_, err := svc.Fetch(context.Background(), model.DownloadRequest{URL: srv.URL})
	if got := kindOf(t, err); got != model.FetchFailed {
		t.Errorf("got kind %s, want %s", got, model.FetchFailed)
	}
}

func TestExtensionFor(t *testing.T) {
	tests := []struct {
		contentType string
		want        string
	}{
		{"image/jpeg", "jpg"},
		{"image/jpg; charset=binary", "jpg"},
		{"image/webp", "webp"},
		{"image/gif", "gif"},
		{"image/png", "png"},
		{"application/octet-stream", "png"},
		{"", "png"},
	}

	for _, tt := range tests {
		if got := service.ExtensionFor(tt.contentType); got != tt.want {
			t.Errorf("ExtensionFor(%q) = %q, want %q", tt.contentType, got, tt.want)
		}
	}
}

package upstream_test

import (
	"context"
	"enhancer/api/model"
	"enhancer/config"
	"enhancer/upstream"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"
)

func hostingConfig(url string) *config.Config {
	return &config.Config{
		HostingURL:     url,
		UserAgent:      "enhancer-test/1.0",
		MaxUploadBytes: 10 * 1024 * 1024,
	}
}

func TestHTTPHostUpload(t *testing.T) {
	payload := []byte("fake image bytes")

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("User-Agent"); got != "enhancer-test/1.0" {
			t.Errorf("missing user agent, got %q", got)
		}
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Fatalf("not multipart: %v", err)
		}
		if got := r.FormValue("reqtype"); got != "fileupload" {
			t.Errorf("reqtype = %q", got)
		}
		file, header, err := r.FormFile("fileToUpload")
		if err != nil {
			t.Fatalf("missing fileToUpload part: %v", err)
		}
		defer file.Close()
		if header.Filename != "cat.png" {
			t.Errorf("filename = %q", header.Filename)
		}
		if got := header.Header.Get("Content-Type"); got != "image/png" {
			t.Errorf("part content type = %q", got)
		}
		data, _ := io.ReadAll(file)
		if string(data) != string(payload) {
			t.Errorf("payload mismatch: %q", data)
		}

		// trailing newline must be trimmed off the returned URL
		fmt.Fprint(w, "https://host.example/cat.png\n")
	}))
	defer srv.Close()

	host := upstream.NewHTTPHost(hostingConfig(srv.URL), zap.NewNop())

	url, err := host.Upload(context.Background(), payload, "cat.png", "image/png")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if url != "https://host.example/cat.png" {
		t.Errorf("url = %q", url)
	}
}

func TestHTTPHostUploadRejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusForbidden)
	}))
	defer srv.Close()

	host := upstream.NewHTTPHost(hostingConfig(srv.URL), zap.NewNop())

	_, err := host.Upload(context.Background(), []byte("x"), "cat.png", "image/png")
	if got := kindOf(t, err); got != model.UpstreamError {
		t.Errorf("got kind %s, want %s", got, model.UpstreamError)
	}
}

func TestHTTPHostNetworkFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	host := upstream.NewHTTPHost(hostingConfig(srv.URL), zap.NewNop())

	_, err := host.Upload(context.Background(), []byte("x"), "cat.png", "image/png")
	if got := kindOf(t, err); got != model.NetworkUnreachable {
		t.Errorf("got kind %s, want %s", got, model.NetworkUnreachable)
	}
}

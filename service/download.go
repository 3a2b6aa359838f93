package service

import (
	"context"
	"enhancer/api/model"
	"enhancer/config"
	"enhancer/shared/log"
	"fmt"
	"go.uber.org/zap"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// DownloadService fetches a remote result server-side and hands it back
// buffered, so the controller can attach a download filename. Body size is
// bounded by the same ceiling the upload path enforces, so buffering in
// memory is fine.
type DownloadService struct {
	config *config.Config

	client *http.Client
	logger *zap.Logger
}

func NewDownloadService(c *config.Config, logger *zap.Logger) *DownloadService {
	return &DownloadService{config: c, client: &http.Client{}, logger: logger}
}

func (s *DownloadService) Fetch(ctx context.Context, params model.DownloadRequest) (*model.DownloadResult, error) {
	logger := log.LoggerWithTrace(ctx, s.logger)

	if params.URL == "" {
		return nil, model.NewError(model.MissingURL, "No URL provided")
	}

	parsed, err := url.Parse(params.URL)
	if err != nil || !parsed.IsAbs() || !strings.HasPrefix(parsed.Scheme, "http") {
		return nil, model.NewError(model.MissingURL, "URL must be absolute")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, params.URL, nil)
	if err != nil {
		return nil, model.NewError(model.MissingURL, "URL must be absolute")
	}
	// some hosts reject anonymous clients
	req.Header.Set("User-Agent", s.config.UserAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		logger.Error("Error fetching remote file", zap.Error(err))
		return nil, model.NewError(model.NetworkUnreachable, "Could not reach the remote host")
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, model.NewError(model.FetchFailed,
			fmt.Sprintf("Failed to fetch file: remote host returned %d", resp.StatusCode))
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, s.config.MaxUploadBytes+1))
	if err != nil {
		logger.Error("Error reading remote file", zap.Error(err))
		return nil, model.NewError(model.FetchFailed, "Failed to read remote file")
	}
	if int64(len(body)) > s.config.MaxUploadBytes {
		return nil, model.NewError(model.FetchFailed, "Remote file too large")
	}

	contentType := resp.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "image/png"
	}

	filename := params.Filename
	if filename == "" {
		filename = fmt.Sprintf("result_%d.%s", time.Now().Unix(), ExtensionFor(contentType))
	}

	return &model.DownloadResult{
		Filename:      filename,
		ContentType:   contentType,
		ContentLength: int64(len(body)),
		Body:          body,
	}, nil
}

func ExtensionFor(contentType string) string {
	contentType = strings.ToLower(contentType)
	switch {
	case strings.Contains(contentType, "jpeg"), strings.Contains(contentType, "jpg"):
		return "jpg"
	case strings.Contains(contentType, "webp"):
		return "webp"
	case strings.Contains(contentType, "gif"):
		return "gif"
	}

	return "png"
}

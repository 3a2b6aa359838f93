package upstream

import (
	"context"
	"encoding/json"
	"enhancer/api/model"
	"enhancer/config"
	"enhancer/shared/log"
	"fmt"
	"go.uber.org/zap"
	"net/http"
	"net/url"
	"strings"
)

// Transformer turns a hosted source image URL into a result URL.
type Transformer interface {
	Transform(ctx context.Context, sourceURL string) (string, error)
}

// TransformResponse is the wire shape of the transformation API.
type TransformResponse struct {
	Success      bool    `json:"success"`
	Result       string  `json:"result"`
	Timestamp    string  `json:"timestamp,omitempty"`
	ResponseTime float64 `json:"responseTime,omitempty"`
}

type TransformClient struct {
	config *config.Config
	client *http.Client
	logger *zap.Logger
}

func NewTransformClient(c *config.Config, logger *zap.Logger) *TransformClient {
	return &TransformClient{config: c, client: &http.Client{}, logger: logger}
}

func (t *TransformClient) Transform(ctx context.Context, sourceURL string) (string, error) {
	logger := log.LoggerWithTrace(ctx, t.logger)

	endpoint := t.config.TransformURL + "?url=" + url.QueryEscape(sourceURL)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("User-Agent", t.config.UserAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := t.client.Do(req)
	if err != nil {
		logger.Error("Error calling transform service", zap.Error(err))
		return "", model.NewError(model.NetworkUnreachable, "Could not reach the image processing service")
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", classifyStatus(resp.StatusCode)
	}

	contentType := resp.Header.Get("Content-Type")
	if !strings.Contains(contentType, "application/json") {
		logger.Error("Transform service returned non-JSON body", zap.String("content_type", contentType))
		return "", model.NewError(model.UpstreamBadResponse, "Processing service returned an unexpected response")
	}

	parsed := TransformResponse{}
	if err = json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		logger.Error("Error decoding transform response", zap.Error(err))
		return "", model.NewError(model.UpstreamBadResponse, "Processing service returned an unexpected response")
	}

	if !parsed.Success {
		return "", model.NewError(model.UpstreamProcessingFailed, "Image processing failed, please try another image")
	}

	if !strings.HasPrefix(parsed.Result, "http") {
		logger.Error(fmt.Sprintf("Transform service returned invalid result url: %q", parsed.Result))
		return "", model.NewError(model.UpstreamInvalidResult, "Processing service returned an invalid result")
	}

	return parsed.Result, nil
}

func classifyStatus(status int) *model.Error {
	switch {
	case status == http.StatusBadRequest:
		return model.NewError(model.BadImageFormat, "Invalid image format or corrupted file")
	case status == http.StatusNotFound:
		return model.NewError(model.SourceExpired, "Source image expired, please upload again")
	case status == http.StatusTooManyRequests:
		return model.NewError(model.RateLimited, "Too many requests, please wait a moment and retry")
	case status >= 500:
		return model.NewError(model.UpstreamServerError, "Image processing service is temporarily unavailable")
	}

	return model.NewError(model.UpstreamError, fmt.Sprintf("Image processing failed with status %d", status))
}

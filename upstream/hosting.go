package upstream

import (
	"bytes"
	"context"
	"enhancer/api/model"
	"enhancer/config"
	"enhancer/shared/log"
	"fmt"
	"go.uber.org/zap"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strings"
)

// Hoster uploads raw image bytes somewhere public and returns the URL.
// One call, one URL or one typed failure.
type Hoster interface {
	Upload(ctx context.Context, data []byte, filename, mimeType string) (string, error)
}

// HTTPHost posts multipart form data to a catbox-style endpoint that
// answers with a bare URL as response text.
type HTTPHost struct {
	config *config.Config
	client *http.Client
	logger *zap.Logger
}

func NewHTTPHost(c *config.Config, logger *zap.Logger) *HTTPHost {
	return &HTTPHost{config: c, client: &http.Client{}, logger: logger}
}

func (h *HTTPHost) Upload(ctx context.Context, data []byte, filename, mimeType string) (string, error) {
	logger := log.LoggerWithTrace(ctx, h.logger)

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	if err := writer.WriteField("reqtype", "fileupload"); err != nil {
		return "", err
	}

	header := textproto.MIMEHeader{}
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="fileToUpload"; filename="%s"`, filename))
	header.Set("Content-Type", mimeType)

	part, err := writer.CreatePart(header)
	if err != nil {
		return "", err
	}
	if _, err = part.Write(data); err != nil {
		return "", err
	}
	if err = writer.Close(); err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, h.config.HostingURL, body)
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("User-Agent", h.config.UserAgent)

	resp, err := h.client.Do(req)
	if err != nil {
		logger.Error("Error uploading to hosting service", zap.Error(err))
		return "", model.NewError(model.NetworkUnreachable, "Could not reach the image hosting service")
	}
	defer resp.Body.Close()

	text, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", model.NewError(model.UpstreamError, "Failed to read hosting service response")
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		logger.Error("Hosting service rejected upload",
			zap.Int("status", resp.StatusCode), zap.ByteString("body", text))
		return "", model.NewError(model.UpstreamError, "Image hosting failed, please try again")
	}

	return strings.TrimSpace(string(text)), nil
}

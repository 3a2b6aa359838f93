package service

import (
	"context"
	"encoding/base64"
	"enhancer/api/model"
	"enhancer/config"
	"enhancer/shared/log"
	"enhancer/upstream"
	"fmt"
	"go.uber.org/zap"
	"strings"
	"time"
)

// ProcessService sequences the two upstream calls: host the raw bytes,
// then hand the hosted URL to the transformation API. Strictly sequential,
// no retries; the first failure short-circuits.
type ProcessService struct {
	config *config.Config

	host      upstream.Hoster
	transform upstream.Transformer
	logger    *zap.Logger
}

func NewProcessService(c *config.Config, host upstream.Hoster, transform upstream.Transformer, logger *zap.Logger) *ProcessService {
	return &ProcessService{config: c, host: host, transform: transform, logger: logger}
}

func (s *ProcessService) Process(ctx context.Context, params model.ProcessRequest) (*model.ProcessResult, error) {
	logger := log.LoggerWithTrace(ctx, s.logger)
	start := time.Now()

	if params.Image == "" {
		return nil, model.NewError(model.MissingInput, "No image data provided")
	}

	raw, err := base64.StdEncoding.DecodeString(params.Image)
	if err != nil {
		return nil, model.NewError(model.BadImageFormat, "Image data is not valid base64")
	}
	if len(raw) == 0 {
		return nil, model.NewError(model.MissingInput, "No image data provided")
	}
	if int64(len(raw)) > s.config.MaxUploadBytes {
		return nil, model.NewError(model.PayloadTooLarge, "File too large (max 10MB)")
	}

	filename := params.Filename
	if filename == "" {
		filename = "image.png"
	}
	mimeType := params.MimeType
	if mimeType == "" {
		mimeType = "image/png"
	}

	logger.Debug(fmt.Sprintf("Uploading %d bytes as %s (%s)", len(raw), filename, mimeType))

	uploadStart := time.Now()
	hostedURL, err := s.host.Upload(ctx, raw, filename, mimeType)
	if err != nil {
		logger.Error("Error uploading image to hosting", zap.Error(err))
		return nil, err
	}
	uploadMs := time.Since(uploadStart).Milliseconds()

	if hostedURL == "" || !strings.HasPrefix(hostedURL, "http") {
		logger.Error(fmt.Sprintf("Hosting returned invalid url: %q", hostedURL))
		return nil, model.NewError(model.UpstreamHostingInvalid, "Image hosting returned an invalid URL")
	}

	processingStart := time.Now()
	resultURL, err := s.transform.Transform(ctx, hostedURL)
	if err != nil {
		logger.Error("Error transforming image", zap.Error(err))
		return nil, err
	}
	processingMs := time.Since(processingStart).Milliseconds()

	result := &model.ProcessResult{
		Success:     true,
		Result:      resultURL,
		UploadedURL: hostedURL,
		Timestamp:   time.Now().UTC().Format(time.RFC3339),
		Timing: model.Timing{
			UploadMs:     uploadMs,
			ProcessingMs: processingMs,
			TotalMs:      time.Since(start).Milliseconds(),
		},
	}

	logger.Debug(fmt.Sprintf("Processed image in %dms (upload %dms, transform %dms)",
		result.Timing.TotalMs, uploadMs, processingMs))

	return result, nil
}

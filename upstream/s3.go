package upstream

import (
	"bytes"
	"context"
	"enhancer/api/model"
	"enhancer/config"
	"enhancer/shared/log"
	"fmt"
	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/service/s3"
	"go.uber.org/zap"
	"strings"
	"time"
)

// S3Host stores uploads in a bucket and serves them from a public base URL.
// Selected with HOSTING_BACKEND=s3.
type S3Host struct {
	config *config.S3

	s3     *s3.S3
	logger *zap.Logger
}

func NewS3Host(s3 *s3.S3, c *config.S3, logger *zap.Logger) *S3Host {
	return &S3Host{s3: s3, config: c, logger: logger}
}

func (h *S3Host) Upload(ctx context.Context, data []byte, filename, mimeType string) (string, error) {
	logger := log.LoggerWithTrace(ctx, h.logger)

	fileKey := fmt.Sprintf("uploads/%d_%s", time.Now().UnixNano(), filename)

	input := &s3.PutObjectInput{
		Bucket:      &h.config.Bucket,
		Key:         &fileKey,
		Body:        bytes.NewReader(data),
		ContentType: &mimeType,
		ACL:         aws.String(s3.ObjectCannedACLPublicRead),
	}

	if _, err := h.s3.PutObjectWithContext(ctx, input); err != nil {
		logger.Error("Error uploading to s3", zap.Error(err))
		return "", model.NewError(model.UpstreamError, "Image hosting failed, please try again")
	}

	return strings.TrimSuffix(h.config.PublicURL, "/") + "/" + fileKey, nil
}

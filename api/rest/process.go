package rest

import (
	"context"
	"enhancer/api/model"
	"enhancer/config"
	"enhancer/service"
	"enhancer/shared/log"
	"fmt"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"strconv"
	"time"
)

type ProcessController struct {
	cfg       *config.Config
	service   *service.ProcessService
	downloads *service.DownloadService
	logger    *zap.Logger

	started time.Time
}

func NewProcessController(app *fiber.App, cfg *config.Config, svc *service.ProcessService, downloads *service.DownloadService, logger *zap.Logger) *ProcessController {
	p := &ProcessController{cfg: cfg, service: svc, downloads: downloads, logger: logger, started: time.Now()}

	app.Get("/health", p.Health)
	app.Post("/api/process", p.Process)
	app.Get("/api/download", p.Download)

	return p
}

// Health check
//
//	@Summary		Service health
//	@Description	Reports service status and uptime in seconds.
//	@Tags			health
//	@Produce		json
//	@Success		200	{object}	model.Health
//	@Router			/health [get]
func (p *ProcessController) Health(c *fiber.Ctx) error {
	return c.JSON(model.Health{
		Status:    "OK",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Uptime:    int64(time.Since(p.started).Seconds()),
	})
}

// Process image
//
//	@Summary		Upload and transform an image
//	@Description	Hosts the uploaded image publicly, runs it through the transformation API and returns the result URL.
//	@Tags			process
//	@Accept			json
//	@Produce		json
//	@Param			request	body		model.ProcessRequest	true	"Base64 image payload"
//	@Success		200		{object}	model.ProcessResult
//	@Failure		400		{object}	model.ErrorResponse
//	@Router			/api/process [post]
func (p *ProcessController) Process(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), p.cfg.RequestTimeout())
	defer cancel()
	logger := log.LoggerWithTrace(ctx, p.logger)

	params := &model.ProcessRequest{}

	if err := c.BodyParser(params); err != nil {
		logger.Error("Error parsing request body", zap.Error(err))
		return model.NewError(model.MissingInput, "Request body must be JSON with an image field")
	}

	logger.Debug(fmt.Sprintf("Processing image %q (%s)", params.Filename, params.MimeType))

	result, err := p.service.Process(ctx, *params)
	if err != nil {
		logger.Error("Error processing image", zap.Error(err))
		return err
	}

	return c.JSON(result)
}

// Download result
//
//	@Summary		Download a remote file as an attachment
//	@Description	Fetches the given URL server-side and re-streams it under a download filename.
//	@Tags			download
//	@Produce		image/jpeg,image/png,image/webp,image/gif
//	@Param			url			query	string	true	"Absolute source URL"
//	@Param			filename	query	string	false	"Download filename"
//	@Success		200			{file}	file	"Returns the fetched file"
//	@Failure		400			{object}	model.ErrorResponse
//	@Router			/api/download [get]
func (p *ProcessController) Download(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), p.cfg.DownloadTimeout())
	defer cancel()
	logger := log.LoggerWithTrace(ctx, p.logger)

	params := model.DownloadRequest{
		URL:      c.Query("url"),
		Filename: c.Query("filename"),
	}

	file, err := p.downloads.Fetch(ctx, params)
	if err != nil {
		logger.Error("Error relaying download", zap.Error(err))
		return err
	}

	c.Set(fiber.HeaderContentType, file.ContentType)
	c.Set(fiber.HeaderContentLength, strconv.FormatInt(file.ContentLength, 10))
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, file.Filename))
	c.Set(fiber.HeaderCacheControl, "no-cache")

	return c.Send(file.Body)
}

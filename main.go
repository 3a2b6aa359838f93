package main

import (
	"context"
	"enhancer/api/rest"
	"enhancer/config"
	"enhancer/service"
	"enhancer/shared/log"
	"enhancer/shared/trace"
	"enhancer/upstream"
	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/gofiber/contrib/fiberzap/v2"
	"github.com/gofiber/contrib/otelfiber/v2"
	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/etag"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/hyperdxio/otel-config-go/otelconfig"
	"github.com/joho/godotenv"
	"log/slog"
)

//	@title			Image enhancer service
//	@version		1.0
//	@description	Uploads an image to a public host, runs it through a transformation API and relays the result.

// @BasePath	/
func main() {
	_ = godotenv.Load()

	serviceConfig := config.New()

	ctx := context.Background()

	tp := trace.InitTrace()
	defer func() {
		if err := tp.Shutdown(ctx); err != nil {
			slog.Error("Error shutting down tracer provider: %v", err)
		}
	}()

	otelShutdown, err := otelconfig.ConfigureOpenTelemetry()
	if err != nil {
		slog.Error("Error configuring OpenTelemetry: %v", err)
	}
	defer otelShutdown()

	logger := log.InitLogger(ctx, serviceConfig.AppName)
	defer func() {
		if err = logger.Sync(); err != nil {
			slog.Error("Error syncing logger: %v", err)
		}
	}()

	var host upstream.Hoster
	if serviceConfig.HostingBackend == "s3" {
		s3Config := config.NewS3Config()

		awsSession, err := session.NewSession(&aws.Config{
			Region:      aws.String(s3Config.Region),
			Credentials: credentials.NewStaticCredentials(s3Config.AccessKey, s3Config.SecretKey, ""),
			Endpoint:    &s3Config.Endpoint,
		})
		if err != nil {
			logger.Error(err.Error())
			panic("Failed to create aws session")
		}

		host = upstream.NewS3Host(s3.New(awsSession), s3Config, logger)
	} else {
		host = upstream.NewHTTPHost(serviceConfig, logger)
	}

	transformer := upstream.NewTransformClient(serviceConfig, logger)

	app := fiber.New(fiber.Config{
		AppName: serviceConfig.AppName,
		// base64 wire encoding inflates the raw byte ceiling
		BodyLimit:    int(serviceConfig.MaxUploadBytes) * 2,
		ErrorHandler: rest.ErrorHandler(logger),
	})
	app.Use(
		recover.New(),
		otelfiber.Middleware(),
		fiberzap.New(fiberzap.Config{Logger: logger}),
		compress.New(compress.Config{Level: compress.LevelBestSpeed}),
		etag.New(),
		swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: "./docs/swagger.json",
			Path:     "docs",
			Title:    "Image enhancer service",
		}),
	)
	app.Static("/", "./static")

	processService := service.NewProcessService(serviceConfig, host, transformer, logger)
	downloadService := service.NewDownloadService(serviceConfig, logger)

	rest.NewProcessController(app, serviceConfig, processService, downloadService, logger)

	if err = app.Listen(":" + serviceConfig.Port); err != nil {
		logger.Panic(err.Error())
		return
	}
}

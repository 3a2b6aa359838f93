package config

import (
	"github.com/caarlos0/env/v8"
	"log/slog"
	"time"
)

type Config struct {
	AppName string `env:"APP_NAME" envDefault:"Image enhancer"`
	Port    string `env:"PORT" envDefault:"3000"`

	HostingURL   string `env:"HOSTING_URL,required"`
	TransformURL string `env:"TRANSFORM_URL,required"`

	// "http" uploads to HostingURL as multipart form data, "s3" puts the
	// object into a bucket and serves it from S3_PUBLIC_URL.
	HostingBackend string `env:"HOSTING_BACKEND" envDefault:"http"`

	UserAgent string `env:"USER_AGENT" envDefault:"enhancer/1.0 (image relay service)"`

	RequestTimeoutInSec  int   `env:"REQUEST_TIMEOUT_IN_SEC" envDefault:"120"`
	DownloadTimeoutInSec int   `env:"DOWNLOAD_TIMEOUT_IN_SEC" envDefault:"60"`
	MaxUploadBytes       int64 `env:"MAX_UPLOAD_BYTES" envDefault:"10485760"`
}

func New() *Config {
	conf := &Config{}

	if err := env.Parse(conf); err != nil {
		slog.Error(err.Error())

		panic("Failed to parse config")
	}

	return conf
}

func (c *Config) RequestTimeout() time.Duration {
	return time.Duration(c.RequestTimeoutInSec) * time.Second
}

func (c *Config) DownloadTimeout() time.Duration {
	return time.Duration(c.DownloadTimeoutInSec) * time.Second
}

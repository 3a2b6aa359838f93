package config

import (
	"github.com/caarlos0/env/v8"
)

// S3 is parsed only when HOSTING_BACKEND=s3.
type S3 struct {
	Region    string `env:"S3_REGION"`
	Bucket    string `env:"S3_BUCKET,required"`
	AccessKey string `env:"S3_ACCESS_KEY,required"`
	SecretKey string `env:"S3_SECRET_KEY,required"`
	Endpoint  string `env:"S3_ENDPOINT,required"`
	PublicURL string `env:"S3_PUBLIC_URL,required"`
}

func NewS3Config() *S3 {
	conf := &S3{}

	if err := env.Parse(conf); err != nil {
		panic(err)
	}

	return conf
}

package storage

import (
	"context"
	"time"
)

// Storage is the read side of an object store used to publish media.
type Storage interface {
	// List returns the objects whose key starts with prefix, sorted by key.
	List(ctx context.Context, prefix string) ([]Object, error)

	// URL returns a link to key. Public URLs are used unless a signed one is
	// requested or no public base is configured.
	URL(ctx context.Context, key string, opts ...URLOption) (string, error)
}

// Config holds S3-compatible storage settings.
type Config struct {
	Bucket    string `env:"S3_BUCKET"`
	AccessKey string `env:"S3_ACCESS_KEY"`
	SecretKey string `env:"S3_SECRET_KEY"`
	Region    string `env:"S3_REGION" envDefault:"us-east-1"`

	// Endpoint targets MinIO, Scaleway, R2 and other S3-compatible services.
	Endpoint  string `env:"S3_ENDPOINT"`
	PathStyle bool   `env:"S3_PATH_STYLE" envDefault:"false"`

	// PublicURL is a CDN or public bucket base. When empty, URLs are presigned.
	PublicURL string `env:"S3_PUBLIC_URL"`
}

// Enabled reports whether a bucket is configured.
func (c Config) Enabled() bool { return c.Bucket != "" }

func (c *Config) validate() error {
	if c.Bucket == "" || c.AccessKey == "" || c.SecretKey == "" {
		return ErrInvalidConfig
	}
	if c.Region == "" {
		c.Region = DefaultRegion
	}
	return nil
}

// Object describes a stored file.
type Object struct {
	Key          string
	Size         int64
	LastModified time.Time
	ETag         string
}

// DefaultRegion is used when Config.Region is empty.
const DefaultRegion = "us-east-1"

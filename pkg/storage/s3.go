package storage

import (
	"context"
	"fmt"
	"net/url"
	"sort"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

type s3API interface {
	s3.ListObjectsV2APIClient
	HeadBucket(ctx context.Context, params *s3.HeadBucketInput, optFns ...func(*s3.Options)) (*s3.HeadBucketOutput, error)
}

// S3Storage implements Storage on S3-compatible object storage.
type S3Storage struct {
	client    s3API
	presigner *s3.PresignClient
	cfg       Config
}

var _ Storage = (*S3Storage)(nil)

// New creates an S3Storage with static credentials.
func New(cfg Config) (*S3Storage, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	client := s3.New(s3.Options{
		Region:       cfg.Region,
		Credentials:  credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		UsePathStyle: cfg.PathStyle,
	}, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
	})

	return &S3Storage{client: client, presigner: s3.NewPresignClient(client), cfg: cfg}, nil
}

// List pages through every object under prefix. Directory placeholders
// (keys ending in "/") are skipped.
func (s *S3Storage) List(ctx context.Context, prefix string) ([]Object, error) {
	p := s3.NewListObjectsV2Paginator(s.client, &s3.ListObjectsV2Input{
		Bucket: aws.String(s.cfg.Bucket),
		Prefix: aws.String(prefix),
	})

	var objects []Object
	for p.HasMorePages() {
		page, err := p.NextPage(ctx)
		if err != nil {
			return nil, wrapS3Error(err, ErrListFailed)
		}
		for _, o := range page.Contents {
			key := aws.ToString(o.Key)
			if key == "" || strings.HasSuffix(key, "/") {
				continue
			}
			objects = append(objects, Object{
				Key:          key,
				Size:         aws.ToInt64(o.Size),
				LastModified: aws.ToTime(o.LastModified),
				ETag:         strings.Trim(aws.ToString(o.ETag), `"`),
			})
		}
	}

	sort.Slice(objects, func(i, j int) bool { return objects[i].Key < objects[j].Key })
	return objects, nil
}

// URL implements Storage.
func (s *S3Storage) URL(ctx context.Context, key string, opts ...URLOption) (string, error) {
	o := &urlOptions{expiry: DefaultURLExpiry}
	for _, opt := range opts {
		opt(o)
	}
	if !o.signed && s.cfg.PublicURL != "" {
		return s.publicURL(key), nil
	}

	in := &s3.GetObjectInput{Bucket: aws.String(s.cfg.Bucket), Key: aws.String(key)}
	if o.downloadName != "" {
		in.ResponseContentDisposition = aws.String(fmt.Sprintf("attachment; filename=%q", o.downloadName))
	}
	res, err := s.presigner.PresignGetObject(ctx, in, func(po *s3.PresignOptions) {
		po.Expires = o.expiry
	})
	if err != nil {
		return "", wrapS3Error(err, ErrPresignFailed)
	}
	return res.URL, nil
}

// Healthcheck verifies the bucket is reachable with the configured credentials.
func (s *S3Storage) Healthcheck() func(context.Context) error {
	return func(ctx context.Context) error {
		if _, err := s.client.HeadBucket(ctx, &s3.HeadBucketInput{Bucket: aws.String(s.cfg.Bucket)}); err != nil {
			return wrapS3Error(err, ErrAccessDenied)
		}
		return nil
	}
}

func (s *S3Storage) publicURL(key string) string {
	segments := strings.Split(key, "/")
	for i, seg := range segments {
		segments[i] = url.PathEscape(seg)
	}
	return strings.TrimSuffix(s.cfg.PublicURL, "/") + "/" + strings.Join(segments, "/")
}

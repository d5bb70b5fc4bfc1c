package storage

import "time"

// DefaultURLExpiry bounds presigned URLs.
const DefaultURLExpiry = 15 * time.Minute

// URLOption configures URL generation.
type URLOption func(*urlOptions)

type urlOptions struct {
	downloadName string
	expiry       time.Duration
	signed       bool
}

// WithSigned forces a presigned URL. A zero expiry keeps the default.
func WithSigned(expiry time.Duration) URLOption {
	return func(o *urlOptions) {
		o.signed = true
		if expiry > 0 {
			o.expiry = expiry
		}
	}
}

// WithDownload presigns a URL that downloads as filename.
func WithDownload(filename string) URLOption {
	return func(o *urlOptions) {
		o.downloadName = filename
		o.signed = true
	}
}

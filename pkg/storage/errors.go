package storage

import (
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
)

var (
	ErrInvalidConfig = errors.New("storage: invalid configuration")
	ErrNotFound      = errors.New("storage: not found")
	ErrAccessDenied  = errors.New("storage: access denied")
	ErrListFailed    = errors.New("storage: list failed")
	ErrPresignFailed = errors.New("storage: presign failed")
)

// wrapS3Error maps AWS errors onto sentinels. The cause is formatted with %v
// so callers match sentinels, not SDK types.
func wrapS3Error(err, fallback error) error {
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.ErrorCode() {
		case "NoSuchKey", "NoSuchBucket", "NotFound":
			return fmt.Errorf("%w: %v", ErrNotFound, err)
		case "AccessDenied", "Forbidden":
			return fmt.Errorf("%w: %v", ErrAccessDenied, err)
		}
	}
	var noBucket *types.NoSuchBucket
	if errors.As(err, &noBucket) {
		return fmt.Errorf("%w: %v", ErrNotFound, err)
	}
	return fmt.Errorf("%w: %v", fallback, err)
}

package storage

import (
	"context"
	"errors"
	"net/url"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockS3 struct {
	mock.Mock
}

func (m *mockS3) ListObjectsV2(ctx context.Context, in *s3.ListObjectsV2Input, _ ...func(*s3.Options)) (*s3.ListObjectsV2Output, error) {
	args := m.Called(ctx, aws.ToString(in.ContinuationToken))
	out, _ := args.Get(0).(*s3.ListObjectsV2Output)
	return out, args.Error(1)
}

func (m *mockS3) HeadBucket(ctx context.Context, in *s3.HeadBucketInput, _ ...func(*s3.Options)) (*s3.HeadBucketOutput, error) {
	args := m.Called(ctx, aws.ToString(in.Bucket))
	out, _ := args.Get(0).(*s3.HeadBucketOutput)
	return out, args.Error(1)
}

func testConfig() Config {
	return Config{Bucket: "lessencek-media", AccessKey: "AKIATEST", SecretKey: "secret"}
}

func TestNew(t *testing.T) {
	t.Parallel()

	store, err := New(testConfig())
	require.NoError(t, err)
	assert.Equal(t, DefaultRegion, store.cfg.Region)
	assert.NotNil(t, store.presigner)

	_, err = New(Config{Bucket: "b"})
	require.ErrorIs(t, err, ErrInvalidConfig)

	assert.False(t, Config{}.Enabled())
	assert.True(t, testConfig().Enabled())
}

func TestS3Storage_List(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	api := &mockS3{}
	api.On("ListObjectsV2", mock.Anything, "").Return(&s3.ListObjectsV2Output{
		Contents: []types.Object{
			{Key: aws.String("realisations/dressing/b.jpg"), Size: aws.Int64(20), ETag: aws.String(`"etag-b"`), LastModified: &now},
			{Key: aws.String("realisations/dressing/")},
		},
		IsTruncated:           aws.Bool(true),
		NextContinuationToken: aws.String("page-2"),
	}, nil).Once()
	api.On("ListObjectsV2", mock.Anything, "page-2").Return(&s3.ListObjectsV2Output{
		Contents:    []types.Object{{Key: aws.String("realisations/dressing/a.jpg"), Size: aws.Int64(10)}},
		IsTruncated: aws.Bool(false),
	}, nil).Once()

	store := &S3Storage{client: api, cfg: testConfig()}
	objects, err := store.List(context.Background(), "realisations/dressing/")
	require.NoError(t, err)
	require.Len(t, objects, 2)
	assert.Equal(t, "realisations/dressing/a.jpg", objects[0].Key)
	assert.Equal(t, Object{Key: "realisations/dressing/b.jpg", Size: 20, ETag: "etag-b", LastModified: now}, objects[1])
	api.AssertExpectations(t)
}

func TestS3Storage_List_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want error
	}{
		{"access denied", &smithy.GenericAPIError{Code: "AccessDenied"}, ErrAccessDenied},
		{"missing bucket", &types.NoSuchBucket{}, ErrNotFound},
		{"other", errors.New("dial tcp: timeout"), ErrListFailed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			api := &mockS3{}
			api.On("ListObjectsV2", mock.Anything, "").Return(nil, tt.err)
			store := &S3Storage{client: api, cfg: testConfig()}
			_, err := store.List(context.Background(), "realisations/")
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestS3Storage_URL(t *testing.T) {
	t.Parallel()

	t.Run("public base", func(t *testing.T) {
		t.Parallel()
		cfg := testConfig()
		cfg.PublicURL = "https://media.lessencek.fr/"
		store, err := New(cfg)
		require.NoError(t, err)

		u, err := store.URL(context.Background(), "realisations/salle de bain/1.jpg")
		require.NoError(t, err)
		assert.Equal(t, "https://media.lessencek.fr/realisations/salle%20de%20bain/1.jpg", u)
	})

	t.Run("presigned without public base", func(t *testing.T) {
		t.Parallel()
		store, err := New(testConfig())
		require.NoError(t, err)

		raw, err := store.URL(context.Background(), "realisations/dressing/1.jpg", WithSigned(time.Minute))
		require.NoError(t, err)
		u, err := url.Parse(raw)
		require.NoError(t, err)
		assert.Contains(t, u.Path, "realisations/dressing/1.jpg")
		assert.Equal(t, "60", u.Query().Get("X-Amz-Expires"))
		assert.NotEmpty(t, u.Query().Get("X-Amz-Signature"))
	})

	t.Run("download forces signing", func(t *testing.T) {
		t.Parallel()
		cfg := testConfig()
		cfg.PublicURL = "https://media.lessencek.fr"
		store, err := New(cfg)
		require.NoError(t, err)

		raw, err := store.URL(context.Background(), "plans/devis.pdf", WithDownload("devis.pdf"))
		require.NoError(t, err)
		u, err := url.Parse(raw)
		require.NoError(t, err)
		assert.Contains(t, u.Query().Get("response-content-disposition"), `filename="devis.pdf"`)
	})
}

func TestS3Storage_Healthcheck(t *testing.T) {
	t.Parallel()

	api := &mockS3{}
	api.On("HeadBucket", mock.Anything, "lessencek-media").Return(&s3.HeadBucketOutput{}, nil).Once()
	api.On("HeadBucket", mock.Anything, "lessencek-media").Return(nil, &smithy.GenericAPIError{Code: "Forbidden"}).Once()

	check := (&S3Storage{client: api, cfg: testConfig()}).Healthcheck()
	require.NoError(t, check(context.Background()))
	assert.ErrorIs(t, check(context.Background()), ErrAccessDenied)
}

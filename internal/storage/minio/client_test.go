package minio

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockMinioAPI struct {
	mock.Mock
}

func (m *mockMinioAPI) BucketExists(ctx context.Context, bucketName string) (bool, error) {
	args := m.Called(ctx, bucketName)
	return args.Bool(0), args.Error(1)
}

func (m *mockMinioAPI) MakeBucket(ctx context.Context, bucketName string, opts minio.MakeBucketOptions) error {
	args := m.Called(ctx, bucketName, opts)
	return args.Error(0)
}

func (m *mockMinioAPI) PutObject(ctx context.Context, bucketName, objectName string, reader io.Reader, objectSize int64, opts minio.PutObjectOptions) (minio.UploadInfo, error) {
	args := m.Called(ctx, bucketName, objectName, reader, objectSize, opts)
	return args.Get(0).(minio.UploadInfo), args.Error(1)
}

func (m *mockMinioAPI) GetObject(ctx context.Context, bucketName, objectName string, opts minio.GetObjectOptions) (io.ReadCloser, error) {
	args := m.Called(ctx, bucketName, objectName, opts)

	var reader io.ReadCloser
	if args.Get(0) != nil {
		reader = args.Get(0).(io.ReadCloser)
	}

	return reader, args.Error(1)
}

func (m *mockMinioAPI) RemoveObject(ctx context.Context, bucketName, objectName string, opts minio.RemoveObjectOptions) error {
	args := m.Called(ctx, bucketName, objectName, opts)
	return args.Error(0)
}

func (m *mockMinioAPI) StatObject(ctx context.Context, bucketName, objectName string, opts minio.StatObjectOptions) (minio.ObjectInfo, error) {
	args := m.Called(ctx, bucketName, objectName, opts)
	return args.Get(0).(minio.ObjectInfo), args.Error(1)
}

func newTestClient(t *testing.T) (*mockMinioAPI, *Client) {
	t.Helper()

	api := &mockMinioAPI{}
	api.Test(t)
	t.Cleanup(func() { api.AssertExpectations(t) })

	api.On("BucketExists", mock.Anything, "test-bucket").Return(true, nil).Once()

	client, err := NewClientWithAPI(context.Background(), api, "test-bucket")
	require.NoError(t, err)

	return api, client
}

func TestNewClientWithAPI_CreatesMissingBucket(t *testing.T) {
	api := &mockMinioAPI{}
	api.Test(t)
	t.Cleanup(func() { api.AssertExpectations(t) })

	api.On("BucketExists", mock.Anything, "test-bucket").Return(false, nil).Once()
	api.On("MakeBucket", mock.Anything, "test-bucket", mock.Anything).Return(nil).Once()

	_, err := NewClientWithAPI(context.Background(), api, "test-bucket")
	require.NoError(t, err)
}

func TestClient_Upload(t *testing.T) {
	api, client := newTestClient(t)
	body := strings.NewReader("contents")

	api.On("PutObject", mock.Anything, "test-bucket", "user/blob", body, int64(8),
		mock.MatchedBy(func(opts minio.PutObjectOptions) bool {
			return opts.ContentType == "text/plain"
		})).Return(minio.UploadInfo{}, nil)

	require.NoError(t, client.Upload(context.Background(), "user/blob", "text/plain", 8, body))
}

func TestClient_Download(t *testing.T) {
	api, client := newTestClient(t)

	api.On("GetObject", mock.Anything, "test-bucket", "user/blob", mock.Anything).
		Return(io.NopCloser(strings.NewReader("contents")), nil)

	reader, err := client.Download(context.Background(), "user/blob")
	require.NoError(t, err)
	defer reader.Close()

	data, err := io.ReadAll(reader)
	require.NoError(t, err)
	assert.Equal(t, "contents", string(data))
}

func TestClient_Delete(t *testing.T) {
	api, client := newTestClient(t)

	api.On("RemoveObject", mock.Anything, "test-bucket", "user/blob", mock.Anything).
		Return(nil)

	require.NoError(t, client.Delete(context.Background(), "user/blob"))
}

func TestClient_Exists(t *testing.T) {
	t.Run("present", func(t *testing.T) {
		api, client := newTestClient(t)

		api.On("StatObject", mock.Anything, "test-bucket", "user/blob", mock.Anything).
			Return(minio.ObjectInfo{Key: "user/blob"}, nil)

		exists, err := client.Exists(context.Background(), "user/blob")
		require.NoError(t, err)
		assert.True(t, exists)
	})

	t.Run("absent", func(t *testing.T) {
		api, client := newTestClient(t)

		api.On("StatObject", mock.Anything, "test-bucket", "user/gone", mock.Anything).
			Return(minio.ObjectInfo{}, minio.ErrorResponse{Code: "NoSuchKey"})

		exists, err := client.Exists(context.Background(), "user/gone")
		require.NoError(t, err)
		assert.False(t, exists)
	})

	t.Run("infrastructure failure", func(t *testing.T) {
		api, client := newTestClient(t)

		api.On("StatObject", mock.Anything, "test-bucket", "user/blob", mock.Anything).
			Return(minio.ObjectInfo{}, errors.New("connection refused"))

		_, err := client.Exists(context.Background(), "user/blob")
		require.Error(t, err)
	})
}

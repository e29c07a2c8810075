package mocks

import (
	"context"
	"net/url"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/mock"
)

// Client is a mock implementation of storage.Client
type Client struct {
	mock.Mock
}

func (m *Client) BucketExists(ctx context.Context, bucketName string) (bool, error) {
	args := m.Called(ctx, bucketName)
	return args.Bool(0), args.Error(1)
}

func (m *Client) ListObjects(ctx context.Context, bucketName string, opts minio.ListObjectsOptions) <-chan minio.ObjectInfo {
	args := m.Called(ctx, bucketName, opts)
	if ch, ok := args.Get(0).(<-chan minio.ObjectInfo); ok {
		return ch
	}
	ch := make(chan minio.ObjectInfo)
	close(ch)
	return ch
}

func (m *Client) StatObject(ctx context.Context, bucketName, objectName string, opts minio.StatObjectOptions) (minio.ObjectInfo, error) {
	args := m.Called(ctx, bucketName, objectName, opts)
	return args.Get(0).(minio.ObjectInfo), args.Error(1)
}

func (m *Client) RemoveObject(ctx context.Context, bucketName, objectName string, opts minio.RemoveObjectOptions) error {
	args := m.Called(ctx, bucketName, objectName, opts)
	return args.Error(0)
}

func (m *Client) NewMultipartUpload(ctx context.Context, bucketName, objectName string, opts minio.PutObjectOptions) (string, error) {
	args := m.Called(ctx, bucketName, objectName, opts)
	return args.String(0), args.Error(1)
}

func (m *Client) AbortMultipartUpload(ctx context.Context, bucketName, objectName, uploadID string) error {
	args := m.Called(ctx, bucketName, objectName, uploadID)
	return args.Error(0)
}

func (m *Client) CompleteMultipartUpload(ctx context.Context, bucketName, objectName, uploadID string, parts []minio.CompletePart, opts minio.PutObjectOptions) (minio.UploadInfo, error) {
	args := m.Called(ctx, bucketName, objectName, uploadID, parts, opts)
	return args.Get(0).(minio.UploadInfo), args.Error(1)
}

func (m *Client) ListMultipartUploads(ctx context.Context, bucketName, prefix string, maxUploads int) (minio.ListMultipartUploadsResult, error) {
	args := m.Called(ctx, bucketName, prefix, maxUploads)
	return args.Get(0).(minio.ListMultipartUploadsResult), args.Error(1)
}

func (m *Client) PresignUploadPart(ctx context.Context, bucketName, objectName, uploadID string, partNumber int, expires time.Duration) (*url.URL, error) {
	args := m.Called(ctx, bucketName, objectName, uploadID, partNumber, expires)
	if u, ok := args.Get(0).(*url.URL); ok {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

package storage

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// Client defines the interface for storage operations.
type Client interface {
	// BucketExists checks if a bucket exists.
	BucketExists(ctx context.Context, bucketName string) (bool, error)
	// ListObjects lists objects in a bucket under a prefix.
	ListObjects(ctx context.Context, bucketName string, opts minio.ListObjectsOptions) <-chan minio.ObjectInfo
	// StatObject returns metadata for a single object.
	StatObject(ctx context.Context, bucketName, objectName string, opts minio.StatObjectOptions) (minio.ObjectInfo, error)
	// RemoveObject deletes an object from a bucket.
	RemoveObject(ctx context.Context, bucketName, objectName string, opts minio.RemoveObjectOptions) error
	// NewMultipartUpload starts a multipart upload session and returns its upload ID.
	NewMultipartUpload(ctx context.Context, bucketName, objectName string, opts minio.PutObjectOptions) (string, error)
	// AbortMultipartUpload aborts an in-progress multipart upload.
	AbortMultipartUpload(ctx context.Context, bucketName, objectName, uploadID string) error
	// CompleteMultipartUpload combines previously uploaded parts into the final object.
	CompleteMultipartUpload(ctx context.Context, bucketName, objectName, uploadID string, parts []minio.CompletePart, opts minio.PutObjectOptions) (minio.UploadInfo, error)
	// ListMultipartUploads lists in-progress multipart uploads for a bucket.
	ListMultipartUploads(ctx context.Context, bucketName, prefix string, maxUploads int) (minio.ListMultipartUploadsResult, error)
	// PresignUploadPart computes a time-limited URL for uploading one part
	// directly to the store. No remote call is made; the signature is
	// computed locally.
	PresignUploadPart(ctx context.Context, bucketName, objectName, uploadID string, partNumber int, expires time.Duration) (*url.URL, error)
}

// NewClient creates a new Minio core client based on the configuration.
// Construction is pure: no network calls are made until the first operation.
func NewClient(cfg Config) (Client, error) {
	// Minio expects endpoint without scheme
	endpoint := strings.TrimPrefix(cfg.Endpoint, "http://")
	endpoint = strings.TrimPrefix(endpoint, "https://")

	timeout := cfg.TimeoutSeconds
	if timeout <= 0 {
		timeout = 30
	}
	timeoutDuration := time.Duration(timeout) * time.Second

	// Custom transport with strict timeouts
	transport := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   timeoutDuration,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		ForceAttemptHTTP2:     true,
		MaxIdleConns:          100,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   timeoutDuration,
		ExpectContinueTimeout: 1 * time.Second,
		ResponseHeaderTimeout: timeoutDuration,
	}

	core, err := minio.NewCore(endpoint, &minio.Options{
		Creds:     credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure:    cfg.UseSSL,
		Region:    cfg.Region,
		Transport: transport,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create minio client: %w", err)
	}
	// The client connects lazily; operation-level contexts and the transport
	// timeouts bound every actual request.

	return &coreClientWrapper{core: core}, nil
}

// coreClientWrapper adapts minio.Core (multipart API) and its embedded
// high-level client to the Client interface.
type coreClientWrapper struct {
	core *minio.Core
}

func (c *coreClientWrapper) BucketExists(ctx context.Context, bucketName string) (bool, error) {
	return c.core.Client.BucketExists(ctx, bucketName)
}

func (c *coreClientWrapper) ListObjects(ctx context.Context, bucketName string, opts minio.ListObjectsOptions) <-chan minio.ObjectInfo {
	return c.core.Client.ListObjects(ctx, bucketName, opts)
}

func (c *coreClientWrapper) StatObject(ctx context.Context, bucketName, objectName string, opts minio.StatObjectOptions) (minio.ObjectInfo, error) {
	return c.core.Client.StatObject(ctx, bucketName, objectName, opts)
}

func (c *coreClientWrapper) RemoveObject(ctx context.Context, bucketName, objectName string, opts minio.RemoveObjectOptions) error {
	return c.core.Client.RemoveObject(ctx, bucketName, objectName, opts)
}

func (c *coreClientWrapper) NewMultipartUpload(ctx context.Context, bucketName, objectName string, opts minio.PutObjectOptions) (string, error) {
	return c.core.NewMultipartUpload(ctx, bucketName, objectName, opts)
}

func (c *coreClientWrapper) AbortMultipartUpload(ctx context.Context, bucketName, objectName, uploadID string) error {
	return c.core.AbortMultipartUpload(ctx, bucketName, objectName, uploadID)
}

func (c *coreClientWrapper) CompleteMultipartUpload(ctx context.Context, bucketName, objectName, uploadID string, parts []minio.CompletePart, opts minio.PutObjectOptions) (minio.UploadInfo, error) {
	return c.core.CompleteMultipartUpload(ctx, bucketName, objectName, uploadID, parts, opts)
}

func (c *coreClientWrapper) ListMultipartUploads(ctx context.Context, bucketName, prefix string, maxUploads int) (minio.ListMultipartUploadsResult, error) {
	return c.core.ListMultipartUploads(ctx, bucketName, prefix, "", "", "", maxUploads)
}

func (c *coreClientWrapper) PresignUploadPart(ctx context.Context, bucketName, objectName, uploadID string, partNumber int, expires time.Duration) (*url.URL, error) {
	params := make(url.Values)
	params.Set("uploadId", uploadID)
	params.Set("partNumber", strconv.Itoa(partNumber))
	return c.core.Client.Presign(ctx, http.MethodPut, bucketName, objectName, expires, params)
}

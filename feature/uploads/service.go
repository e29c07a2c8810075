package uploads

import (
	"context"
	"fmt"
	"time"

	"medialink/core/storage"

	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
)

// Default cap on a single in-progress uploads listing. Matches the store's
// own page size.
const maxUploadsListing = 1000

// Service proxies the multipart-upload lifecycle to the storage client.
// Each method validates its request, makes exactly one storage call, and
// returns the translated result; storage errors propagate unretried.
type Service struct {
	client     storage.Client
	bucket     string
	logger     *zap.Logger
	signExpiry time.Duration
}

// NewService creates a new uploads service.
func NewService(client storage.Client, bucket string, logger *zap.Logger, signExpiry time.Duration) *Service {
	if signExpiry <= 0 {
		signExpiry = 15 * time.Minute
	}
	return &Service{
		client:     client,
		bucket:     bucket,
		logger:     logger,
		signExpiry: signExpiry,
	}
}

// CreateUploadResult describes a started multipart upload session.
type CreateUploadResult struct {
	Bucket   string `json:"Bucket"`
	Key      string `json:"Key"`
	UploadID string `json:"UploadId"`
}

// AbortUploadResult confirms an abort.
type AbortUploadResult struct {
	Key      string `json:"Key"`
	UploadID string `json:"UploadId"`
	Aborted  bool   `json:"Aborted"`
}

// CompleteUploadResult describes the final combined object.
type CompleteUploadResult struct {
	Bucket   string `json:"Bucket"`
	Key      string `json:"Key"`
	ETag     string `json:"ETag"`
	Location string `json:"Location"`
	Size     int64  `json:"Size"`
}

// UploadSummary is one in-progress multipart upload.
type UploadSummary struct {
	Key       string    `json:"Key"`
	UploadID  string    `json:"UploadId"`
	Initiated time.Time `json:"Initiated"`
	Size      int64     `json:"Size"`
}

// ListUploadsResult lists in-progress multipart uploads for the bucket.
type ListUploadsResult struct {
	Bucket      string          `json:"Bucket"`
	Uploads     []UploadSummary `json:"Uploads"`
	IsTruncated bool            `json:"IsTruncated"`
}

// SignPartResult carries a presigned part-upload URL.
type SignPartResult struct {
	URL       string    `json:"url"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// DeleteObjectResult confirms a deletion.
type DeleteObjectResult struct {
	Key     string `json:"Key"`
	Deleted bool   `json:"Deleted"`
}

// CreateUpload starts a multipart upload session for a key.
func (s *Service) CreateUpload(ctx context.Context, req CreateUploadRequest) (*CreateUploadResult, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	uploadID, err := s.client.NewMultipartUpload(ctx, s.bucket, req.Key, minio.PutObjectOptions{
		ContentType: req.ContentType,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create multipart upload for %q: %w", req.Key, err)
	}

	s.logger.Info("Multipart upload created",
		zap.String("key", req.Key),
		zap.String("upload_id", uploadID),
	)

	return &CreateUploadResult{Bucket: s.bucket, Key: req.Key, UploadID: uploadID}, nil
}

// AbortUpload aborts an in-progress multipart upload, discarding its parts.
func (s *Service) AbortUpload(ctx context.Context, req AbortUploadRequest) (*AbortUploadResult, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	if err := s.client.AbortMultipartUpload(ctx, s.bucket, req.Key, req.UploadID); err != nil {
		return nil, fmt.Errorf("failed to abort upload %q for %q: %w", req.UploadID, req.Key, err)
	}

	s.logger.Info("Multipart upload aborted",
		zap.String("key", req.Key),
		zap.String("upload_id", req.UploadID),
	)

	return &AbortUploadResult{Key: req.Key, UploadID: req.UploadID, Aborted: true}, nil
}

// CompleteUpload combines the uploaded parts into the final object.
func (s *Service) CompleteUpload(ctx context.Context, req CompleteUploadRequest) (*CompleteUploadResult, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	parts := make([]minio.CompletePart, 0, len(req.Parts))
	for _, p := range req.Parts {
		parts = append(parts, minio.CompletePart{PartNumber: p.PartNumber, ETag: p.ETag})
	}

	info, err := s.client.CompleteMultipartUpload(ctx, s.bucket, req.Key, req.UploadID, parts, minio.PutObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to complete upload %q for %q: %w", req.UploadID, req.Key, err)
	}

	s.logger.Info("Multipart upload completed",
		zap.String("key", req.Key),
		zap.String("upload_id", req.UploadID),
		zap.Int("parts", len(parts)),
	)

	return &CompleteUploadResult{
		Bucket:   info.Bucket,
		Key:      info.Key,
		ETag:     info.ETag,
		Location: info.Location,
		Size:     info.Size,
	}, nil
}

// ListUploads lists the in-progress multipart uploads for the bucket.
func (s *Service) ListUploads(ctx context.Context) (*ListUploadsResult, error) {
	result, err := s.client.ListMultipartUploads(ctx, s.bucket, "", maxUploadsListing)
	if err != nil {
		return nil, fmt.Errorf("failed to list multipart uploads: %w", err)
	}

	uploads := make([]UploadSummary, 0, len(result.Uploads))
	for _, u := range result.Uploads {
		uploads = append(uploads, UploadSummary{
			Key:       u.Key,
			UploadID:  u.UploadID,
			Initiated: u.Initiated,
			Size:      u.Size,
		})
	}

	return &ListUploadsResult{
		Bucket:      s.bucket,
		Uploads:     uploads,
		IsTruncated: result.IsTruncated,
	}, nil
}

// SignPart computes a time-limited presigned URL for uploading one part
// directly to the store. The signature is computed locally; no remote
// state changes.
func (s *Service) SignPart(ctx context.Context, req SignPartRequest) (*SignPartResult, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	u, err := s.client.PresignUploadPart(ctx, s.bucket, req.Key, req.UploadID, req.PartNumber, s.signExpiry)
	if err != nil {
		return nil, fmt.Errorf("failed to sign part %d of upload %q: %w", req.PartNumber, req.UploadID, err)
	}

	return &SignPartResult{
		URL:       u.String(),
		ExpiresAt: time.Now().Add(s.signExpiry),
	}, nil
}

// DeleteObject removes an object from the bucket.
func (s *Service) DeleteObject(ctx context.Context, req DeleteObjectRequest) (*DeleteObjectResult, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	if err := s.client.RemoveObject(ctx, s.bucket, req.Key, minio.RemoveObjectOptions{}); err != nil {
		return nil, fmt.Errorf("failed to delete %q: %w", req.Key, err)
	}

	s.logger.Info("Object deleted", zap.String("key", req.Key))

	return &DeleteObjectResult{Key: req.Key, Deleted: true}, nil
}

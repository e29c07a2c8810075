package uploads

import (
	"errors"
	"fmt"
)

// ErrMissingField signals a request body missing a required field. It is
// surfaced before any storage call is made.
var ErrMissingField = errors.New("missing required field")

// Field names follow the store's own parameter casing so upload clients can
// forward their SDK parameter maps unchanged.

// CreateUploadRequest starts a multipart upload session.
type CreateUploadRequest struct {
	Key         string `json:"Key"`
	ContentType string `json:"ContentType"`
}

// Validate checks required fields.
func (r CreateUploadRequest) Validate() error {
	if r.Key == "" {
		return fmt.Errorf("%w: Key", ErrMissingField)
	}
	if r.ContentType == "" {
		return fmt.Errorf("%w: ContentType", ErrMissingField)
	}
	return nil
}

// AbortUploadRequest aborts an in-progress multipart upload.
type AbortUploadRequest struct {
	Key      string `json:"Key"`
	UploadID string `json:"UploadId"`
}

// Validate checks required fields.
func (r AbortUploadRequest) Validate() error {
	if r.Key == "" {
		return fmt.Errorf("%w: Key", ErrMissingField)
	}
	if r.UploadID == "" {
		return fmt.Errorf("%w: UploadId", ErrMissingField)
	}
	return nil
}

// Part is one completed part of a multipart upload.
type Part struct {
	PartNumber int    `json:"PartNumber"`
	ETag       string `json:"ETag"`
}

// CompleteUploadRequest combines uploaded parts into the final object.
type CompleteUploadRequest struct {
	Key      string `json:"Key"`
	UploadID string `json:"UploadId"`
	Parts    []Part `json:"Parts"`
}

// Validate checks required fields.
func (r CompleteUploadRequest) Validate() error {
	if r.Key == "" {
		return fmt.Errorf("%w: Key", ErrMissingField)
	}
	if r.UploadID == "" {
		return fmt.Errorf("%w: UploadId", ErrMissingField)
	}
	if len(r.Parts) == 0 {
		return fmt.Errorf("%w: Parts", ErrMissingField)
	}
	for _, p := range r.Parts {
		if p.PartNumber < 1 || p.ETag == "" {
			return fmt.Errorf("%w: Parts entries need PartNumber and ETag", ErrMissingField)
		}
	}
	return nil
}

// SignPartRequest asks for a presigned URL for one part.
type SignPartRequest struct {
	Key        string `json:"Key"`
	UploadID   string `json:"UploadId"`
	PartNumber int    `json:"PartNumber"`
}

// Validate checks required fields.
func (r SignPartRequest) Validate() error {
	if r.Key == "" {
		return fmt.Errorf("%w: Key", ErrMissingField)
	}
	if r.UploadID == "" {
		return fmt.Errorf("%w: UploadId", ErrMissingField)
	}
	if r.PartNumber < 1 {
		return fmt.Errorf("%w: PartNumber", ErrMissingField)
	}
	return nil
}

// DeleteObjectRequest deletes one object from the bucket.
type DeleteObjectRequest struct {
	Key string `json:"Key"`
}

// Validate checks required fields.
func (r DeleteObjectRequest) Validate() error {
	if r.Key == "" {
		return fmt.Errorf("%w: Key", ErrMissingField)
	}
	return nil
}

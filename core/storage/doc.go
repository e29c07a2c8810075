// Package storage provides an abstraction layer for object storage services.
//
// It wraps the MinIO Go core client to expose the operations medialink
// needs: prefix listings, object deletion, and the multipart-upload
// lifecycle. The abstraction supports both AWS S3 and self-hosted MinIO
// instances.
//
// # Client Interface
//
// The Client interface abstracts the underlying storage provider, making it
// easier to mock storage interactions for unit testing (see core/storage/mocks).
//
// # Operations
//
//   - BucketExists: Verifies access to the target bucket.
//   - ListObjects: Lists objects under a prefix (used by relink).
//   - StatObject: Checks a single object (used for link verification).
//   - RemoveObject: Deletes an object.
//   - NewMultipartUpload / AbortMultipartUpload / CompleteMultipartUpload /
//     ListMultipartUploads: The multipart-upload lifecycle.
//   - PresignUploadPart: Computes a signed part-upload URL locally.
//
// # Usage
//
//	client, err := storage.NewClient(config)
//	uploadID, err := client.NewMultipartUpload(ctx, "media", "photos/a.jpg", opts)
package storage

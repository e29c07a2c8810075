package fields

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"medialink/core/storage"
	"medialink/feature/fields/models"

	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Service handles linked-media field operations.
type Service struct {
	client storage.Client
	bucket string
	logger *zap.Logger
	db     *gorm.DB
}

// NewService creates a new fields service.
func NewService(client storage.Client, bucket string, logger *zap.Logger, db *gorm.DB) *Service {
	return &Service{
		client: client,
		bucket: bucket,
		logger: logger,
		db:     db,
	}
}

// NormalizePrefix strips leading and trailing slashes from a base key and
// appends a single trailing slash. The empty or root prefix normalizes to
// "" so a root-level relink lists the whole bucket unprefixed.
func NormalizePrefix(baseKey string) string {
	trimmed := strings.Trim(baseKey, "/")
	if trimmed == "" {
		return ""
	}
	return trimmed + "/"
}

// GetLinkedItems reads the stored key list for a field and wraps each key
// with the configured bucket. An absent row or a stored value that is not a
// JSON array of strings yields an empty list, never an error.
func (s *Service) GetLinkedItems(ctx context.Context, fieldKey string, postID int64) ([]models.StorageItem, error) {
	keys, err := s.readKeys(ctx, fieldKey, postID)
	if err != nil {
		return nil, err
	}

	items := make([]models.StorageItem, 0, len(keys))
	for _, key := range keys {
		items = append(items, models.StorageItem{Bucket: s.bucket, Key: key})
	}
	return items, nil
}

// VerifyLinkedItems returns the linked items with a per-item existence
// check against the bucket. A missing object marks the item as not
// existing; any other storage failure aborts the whole call.
func (s *Service) VerifyLinkedItems(ctx context.Context, fieldKey string, postID int64) ([]models.LinkedItem, error) {
	items, err := s.GetLinkedItems(ctx, fieldKey, postID)
	if err != nil {
		return nil, err
	}

	verified := make([]models.LinkedItem, 0, len(items))
	for _, item := range items {
		info, err := s.client.StatObject(ctx, item.Bucket, item.Key, minio.StatObjectOptions{})
		if err != nil {
			resp := minio.ToErrorResponse(err)
			if resp.Code != "NoSuchKey" && resp.StatusCode != 404 {
				return nil, fmt.Errorf("failed to stat %q: %w", item.Key, err)
			}
			verified = append(verified, models.LinkedItem{StorageItem: item})
			continue
		}
		verified = append(verified, models.LinkedItem{StorageItem: item, Exists: true, Size: info.Size})
	}
	return verified, nil
}

// UpdateField overwrites the stored key list for a field. The previous
// value is replaced entirely; there is no merge.
func (s *Service) UpdateField(ctx context.Context, fieldKey string, postID int64, keys []string) error {
	if keys == nil {
		keys = []string{}
	}
	encoded, err := json.Marshal(keys)
	if err != nil {
		return fmt.Errorf("failed to encode field value: %w", err)
	}

	row := models.FieldValue{
		FieldKey: fieldKey,
		PostID:   postID,
		Value:    string(encoded),
	}

	err = s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "field_key"}, {Name: "post_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&row).Error
	if err != nil {
		return fmt.Errorf("failed to write field %q for post %d: %w", fieldKey, postID, err)
	}
	return nil
}

// ListKeys lists the bucket under the normalized base key and returns the
// object keys in listing order, dropping the ghost folder placeholder (an
// entry whose key equals the prefix itself).
func (s *Service) ListKeys(ctx context.Context, baseKey string) ([]string, error) {
	prefix := NormalizePrefix(baseKey)

	keys := make([]string, 0)
	for obj := range s.client.ListObjects(ctx, s.bucket, minio.ListObjectsOptions{
		Prefix:    prefix,
		Recursive: true,
	}) {
		if obj.Err != nil {
			return nil, fmt.Errorf("failed to list %q under %q: %w", s.bucket, prefix, obj.Err)
		}
		if obj.Key == prefix {
			// ghost placeholder created by console-made empty folders
			continue
		}
		keys = append(keys, obj.Key)
	}
	return keys, nil
}

// Relink overwrites the field with the keys listed under the base key.
//
// A listing failure propagates before any field write, leaving the field
// untouched. There are no retries; a relink that raced another one ends
// with whichever write landed last.
func (s *Service) Relink(ctx context.Context, fieldKey string, postID int64, baseKey string) ([]string, error) {
	keys, err := s.ListKeys(ctx, baseKey)
	if err != nil {
		return nil, err
	}

	if err := s.UpdateField(ctx, fieldKey, postID, keys); err != nil {
		return nil, err
	}

	s.logger.Info("Field relinked",
		zap.String("field", fieldKey),
		zap.Int64("post", postID),
		zap.String("prefix", NormalizePrefix(baseKey)),
		zap.Int("items", len(keys)),
	)

	return keys, nil
}

// readKeys loads and decodes the stored value, coercing anything that is
// not a JSON string array to an empty list.
func (s *Service) readKeys(ctx context.Context, fieldKey string, postID int64) ([]string, error) {
	var row models.FieldValue
	err := s.db.WithContext(ctx).
		Where("field_key = ? AND post_id = ?", fieldKey, postID).
		First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("failed to read field %q for post %d: %w", fieldKey, postID, err)
	}

	var keys []string
	if err := json.Unmarshal([]byte(row.Value), &keys); err != nil {
		// Tolerate malformed stored values instead of failing the read
		s.logger.Warn("Stored field value is not a key list, treating as empty",
			zap.String("field", fieldKey),
			zap.Int64("post", postID),
		)
		return []string{}, nil
	}
	if keys == nil {
		keys = []string{}
	}
	return keys, nil
}

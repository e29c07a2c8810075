package models

import (
	"time"

	"gorm.io/gorm"
)

// FieldValue is the persisted value of a linked-media field: the
// JSON-encoded ordered list of object keys for one (field, post) pair.
type FieldValue struct {
	ID        uint      `gorm:"column:id;primaryKey"`
	FieldKey  string    `gorm:"column:field_key;size:191;uniqueIndex:idx_field_post"`
	PostID    int64     `gorm:"column:post_id;uniqueIndex:idx_field_post"`
	Value     string    `gorm:"column:value;type:longtext"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

// TableName overrides the table name.
func (FieldValue) TableName() string {
	return "field_values"
}

// Migrate creates or updates the field store schema.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&FieldValue{})
}

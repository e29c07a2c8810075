package models

// StorageItem identifies one object in the store.
type StorageItem struct {
	Bucket string `json:"bucket"`
	Key    string `json:"key"`
}

// LinkedItem is a StorageItem with verification info attached.
type LinkedItem struct {
	StorageItem
	// Exists reports whether the object is present in the bucket.
	Exists bool `json:"exists"`
	// Size is the object size in bytes, zero when the object is missing.
	Size int64 `json:"size"`
}

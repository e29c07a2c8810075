// Package fields manages linked-media fields: per-post ordered lists of
// object keys persisted in the field store and kept in sync with the
// storage bucket.
//
// # Operations
//
//   - GetLinkedItems: reads a field's key list and materializes it as
//     (bucket, key) storage items. Absent or malformed stored values coerce
//     to an empty list rather than erroring.
//   - VerifyLinkedItems: same, plus a per-item existence check against the
//     bucket.
//   - UpdateField: writes a field's key list verbatim (full replacement).
//   - Relink: lists the bucket under a normalized prefix, drops the ghost
//     folder placeholder, and overwrites the field with the listed keys.
//
// Relink is last-write-wins: concurrent relinks of the same field are not
// coordinated, the later write replaces the earlier one. Each write is a
// single atomic upsert, so readers never observe a torn value.
package fields

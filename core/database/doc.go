// Package database manages the MySQL connection for the field store.
//
// The field store is the persistence backend for linked-media field values:
// one row per (field_key, post_id) pair, holding the JSON-encoded ordered
// list of object keys. The schema itself lives in feature/fields/models.
//
// Connect returns a *gorm.DB with pool settings and timeouts applied, and
// verifies connectivity with an initial ping.
package database
